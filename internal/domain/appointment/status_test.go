package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		from, to    Status
		wantChanged bool
		wantErr     error
	}{
		{StatusConfirmed, StatusConfirmed, false, nil},
		{StatusConfirmed, StatusCompleted, true, nil},
		{StatusConfirmed, StatusCancelled, true, nil},
		{StatusCompleted, StatusCompleted, false, nil},
		{StatusCancelled, StatusCancelled, false, nil},
		{StatusCompleted, StatusCancelled, false, ErrInvalidTransition},
		{StatusCancelled, StatusCompleted, false, ErrInvalidTransition},
		{StatusCancelled, StatusConfirmed, false, ErrInvalidTransition},
		{StatusCompleted, StatusConfirmed, false, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			changed, err := Transition(tt.from, tt.to)
			assert.Equal(t, tt.wantChanged, changed)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	st, err := ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, StatusCompleted, st)

	_, err = ParseStatus("pending")
	assert.Error(t, err)
}

func TestApply(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("complete stamps completion time", func(t *testing.T) {
		ap := &models.Appointment{Status: string(StatusConfirmed)}
		changed, err := Apply(ap, StatusCompleted, nil, now)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, string(StatusCompleted), ap.Status)
		require.NotNil(t, ap.CompletedAt)
		assert.Equal(t, now, *ap.CompletedAt)
		assert.Nil(t, ap.CancelledAt)
	})

	t.Run("same status still applies notes", func(t *testing.T) {
		notes := "walk-in"
		ap := &models.Appointment{Status: string(StatusCompleted)}
		changed, err := Apply(ap, StatusCompleted, &notes, now)
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Equal(t, "walk-in", ap.Notes)
	})

	t.Run("terminal rejects and leaves notes alone", func(t *testing.T) {
		notes := "x"
		ap := &models.Appointment{Status: string(StatusCancelled), Notes: "orig"}
		_, err := Apply(ap, StatusCompleted, &notes, now)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, "orig", ap.Notes)
	})
}
