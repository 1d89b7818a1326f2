package catalog

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/media"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
)

type stubEncoder struct{}

func (stubEncoder) Encode(r io.Reader) ([]byte, error) {
	return io.ReadAll(r)
}

type memImages struct {
	keys []string
}

func (m *memImages) Put(_ context.Context, key string, _ []byte, _ string) (string, error) {
	m.keys = append(m.keys, key)
	return "https://cdn.example.com/" + key, nil
}

func TestServicesScopedToBarber(t *testing.T) {
	store := memstore.New()
	c := New(store, stubEncoder{}, nil, nil)
	ctx := context.Background()

	ivan, err := c.CreateBarber(ctx, BarberInput{Name: "Ivan"})
	require.NoError(t, err)
	petar, err := c.CreateBarber(ctx, BarberInput{Name: "Petar"})
	require.NoError(t, err)

	_, err = c.CreateService(ctx, ServiceInput{Name: "Haircut", Price: decimal.NewFromInt(40), DurationMin: 45})
	require.NoError(t, err)
	_, err = c.CreateService(ctx, ServiceInput{Name: "Hot towel shave", Price: decimal.NewFromInt(30), DurationMin: 30, BarberID: &ivan.ID})
	require.NoError(t, err)

	forIvan, err := c.Services(ctx, &ivan.ID, true)
	require.NoError(t, err)
	assert.Len(t, forIvan, 2)

	forPetar, err := c.Services(ctx, &petar.ID, true)
	require.NoError(t, err)
	require.Len(t, forPetar, 1)
	assert.Equal(t, "Haircut", forPetar[0].Name)

	missing := uint(99)
	_, err = c.CreateService(ctx, ServiceInput{Name: "x", DurationMin: 10, BarberID: &missing})
	assert.ErrorIs(t, err, domain.ErrBarberNotFound)
}

func TestDeactivateHidesBarber(t *testing.T) {
	c := New(memstore.New(), stubEncoder{}, nil, nil)
	ctx := context.Background()

	b, err := c.CreateBarber(ctx, BarberInput{Name: "Ivan"})
	require.NoError(t, err)

	_, err = c.SetBarberActive(ctx, b.ID, false)
	require.NoError(t, err)

	active, err := c.Barbers(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = c.SetBarberActive(ctx, 404, false)
	assert.ErrorIs(t, err, domain.ErrBarberNotFound)
}

func TestUploadBarberPhoto(t *testing.T) {
	images := &memImages{}
	c := New(memstore.New(), stubEncoder{}, images, nil)
	ctx := context.Background()

	b, err := c.CreateBarber(ctx, BarberInput{Name: "Ivan"})
	require.NoError(t, err)

	updated, err := c.UploadBarberPhoto(ctx, b.ID, strings.NewReader("img"))
	require.NoError(t, err)
	require.Len(t, images.keys, 1)
	assert.Equal(t, "https://cdn.example.com/"+images.keys[0], updated.ImageURL)
}

func TestUploadWithoutStorage(t *testing.T) {
	c := New(memstore.New(), stubEncoder{}, nil, nil)
	ctx := context.Background()

	b, err := c.CreateBarber(ctx, BarberInput{Name: "Ivan"})
	require.NoError(t, err)

	_, err = c.UploadBarberPhoto(ctx, b.ID, strings.NewReader("img"))
	assert.ErrorIs(t, err, media.ErrStorageDisabled)
	assert.True(t, httperr.IsKind(err, httperr.KindUnavailable))
}

func TestClientsRejectDuplicatePhone(t *testing.T) {
	c := New(memstore.New(), stubEncoder{}, nil, nil)
	ctx := context.Background()

	b, err := c.CreateBarber(ctx, BarberInput{Name: "Ivan"})
	require.NoError(t, err)

	_, err = c.AddClient(ctx, ClientInput{BarberID: b.ID, Name: "Maria", Phone: "0888 123 456"})
	require.NoError(t, err)

	_, err = c.AddClient(ctx, ClientInput{BarberID: b.ID, Name: "Maria P", Phone: "0888-123-456"})
	assert.ErrorIs(t, err, domain.ErrClientExists)

	found, err := c.Clients(ctx, b.ID, "mar")
	require.NoError(t, err)
	assert.Len(t, found, 1)
}
