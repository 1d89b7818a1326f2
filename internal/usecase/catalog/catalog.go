package catalog

import (
	"context"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/BruksfildServices01/barber-booking/internal/audit"
	"github.com/BruksfildServices01/barber-booking/internal/httperr"
	"github.com/BruksfildServices01/barber-booking/internal/infra/media"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

type Repository interface {
	ListServices(ctx context.Context, barberID *uint, activeOnly bool) ([]models.Service, error)
	GetService(ctx context.Context, id uint) (*models.Service, error)
	CreateService(ctx context.Context, svc *models.Service) error
	SetServiceActive(ctx context.Context, id uint, active bool) (*models.Service, error)
	SetServiceImage(ctx context.Context, id uint, url string) (*models.Service, error)

	ListBarbers(ctx context.Context, activeOnly bool) ([]models.Barber, error)
	GetBarber(ctx context.Context, id uint) (*models.Barber, error)
	CreateBarber(ctx context.Context, b *models.Barber) error
	SetBarberActive(ctx context.Context, id uint, active bool) (*models.Barber, error)
	SetBarberImage(ctx context.Context, id uint, url string) (*models.Barber, error)

	ListBarberClients(ctx context.Context, barberID uint, query string) ([]models.BarberClient, error)
	CreateBarberClient(ctx context.Context, c *models.BarberClient) error
}

type ImageEncoder interface {
	Encode(r io.Reader) ([]byte, error)
}

type Catalog struct {
	repo    Repository
	encoder ImageEncoder
	images  media.Store
	audit   *audit.Dispatcher
}

func New(
	repo Repository,
	encoder ImageEncoder,
	images media.Store,
	audit *audit.Dispatcher,
) *Catalog {
	if images == nil {
		images = media.Disabled{}
	}
	return &Catalog{
		repo:    repo,
		encoder: encoder,
		images:  images,
		audit:   audit,
	}
}

// ======================================================
// SERVICES
// ======================================================

func (c *Catalog) Services(ctx context.Context, barberID *uint, activeOnly bool) ([]models.Service, error) {
	return c.repo.ListServices(ctx, barberID, activeOnly)
}

type ServiceInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	DurationMin int
	Category    string
	BarberID    *uint
}

func (c *Catalog) CreateService(ctx context.Context, in ServiceInput) (*models.Service, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.Validation("missing_name", "Service name is required.")
	}
	if in.Price.IsNegative() {
		return nil, httperr.Validation("invalid_price", "Price must not be negative.")
	}
	if in.DurationMin <= 0 {
		return nil, httperr.Validation("invalid_duration", "Duration must be positive.")
	}

	if in.BarberID != nil {
		if _, err := c.repo.GetBarber(ctx, *in.BarberID); err != nil {
			return nil, err
		}
	}

	svc := &models.Service{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		Price:       in.Price.Round(2),
		DurationMin: in.DurationMin,
		Category:    strings.TrimSpace(in.Category),
		BarberID:    in.BarberID,
		Active:      true,
	}
	if err := c.repo.CreateService(ctx, svc); err != nil {
		return nil, err
	}

	c.record("service_created", "service", svc.ID)
	return svc, nil
}

func (c *Catalog) SetServiceActive(ctx context.Context, id uint, active bool) (*models.Service, error) {
	svc, err := c.repo.SetServiceActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	c.record(activeAction("service", active), "service", id)
	return svc, nil
}

func (c *Catalog) UploadServiceImage(ctx context.Context, id uint, r io.Reader) (*models.Service, error) {
	if _, err := c.repo.GetService(ctx, id); err != nil {
		return nil, err
	}

	url, err := c.upload(ctx, "services", id, r)
	if err != nil {
		return nil, err
	}

	svc, err := c.repo.SetServiceImage(ctx, id, url)
	if err != nil {
		return nil, err
	}
	c.record("service_image_uploaded", "service", id)
	return svc, nil
}

// ======================================================
// BARBERS
// ======================================================

func (c *Catalog) Barbers(ctx context.Context, activeOnly bool) ([]models.Barber, error) {
	return c.repo.ListBarbers(ctx, activeOnly)
}

type BarberInput struct {
	Name  string
	Title string
	Bio   string
}

func (c *Catalog) CreateBarber(ctx context.Context, in BarberInput) (*models.Barber, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, httperr.Validation("missing_name", "Barber name is required.")
	}

	b := &models.Barber{
		Name:   name,
		Title:  strings.TrimSpace(in.Title),
		Bio:    strings.TrimSpace(in.Bio),
		Active: true,
	}
	if err := c.repo.CreateBarber(ctx, b); err != nil {
		return nil, err
	}

	c.record("barber_created", "barber", b.ID)
	return b, nil
}

func (c *Catalog) SetBarberActive(ctx context.Context, id uint, active bool) (*models.Barber, error) {
	b, err := c.repo.SetBarberActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	c.record(activeAction("barber", active), "barber", id)
	return b, nil
}

func (c *Catalog) UploadBarberPhoto(ctx context.Context, id uint, r io.Reader) (*models.Barber, error) {
	if _, err := c.repo.GetBarber(ctx, id); err != nil {
		return nil, err
	}

	url, err := c.upload(ctx, "barbers", id, r)
	if err != nil {
		return nil, err
	}

	b, err := c.repo.SetBarberImage(ctx, id, url)
	if err != nil {
		return nil, err
	}
	c.record("barber_photo_uploaded", "barber", id)
	return b, nil
}

// ======================================================
// BARBER CLIENTS
// ======================================================

func (c *Catalog) Clients(ctx context.Context, barberID uint, query string) ([]models.BarberClient, error) {
	if _, err := c.repo.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}
	return c.repo.ListBarberClients(ctx, barberID, query)
}

type ClientInput struct {
	BarberID uint
	Name     string
	Phone    string
	Email    string
	Notes    string
}

func (c *Catalog) AddClient(ctx context.Context, in ClientInput) (*models.BarberClient, error) {
	name := strings.TrimSpace(in.Name)
	phone := validators.NormalizePhone(in.Phone)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" {
		return nil, httperr.Validation("missing_name", "Client name is required.")
	}
	if !validators.IsPhoneValid(phone) {
		return nil, httperr.Validation("invalid_phone", "Phone is not a valid number.")
	}
	if email != "" && !validators.IsEmailFormatValid(email) {
		return nil, httperr.Validation("invalid_email", "Email is not valid.")
	}

	if _, err := c.repo.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	client := &models.BarberClient{
		BarberID: in.BarberID,
		Name:     name,
		Phone:    phone,
		Email:    email,
		Notes:    strings.TrimSpace(in.Notes),
	}
	if err := c.repo.CreateBarberClient(ctx, client); err != nil {
		return nil, err
	}

	c.record("barber_client_created", "barber_client", client.ID)
	return client, nil
}

// ======================================================
// helpers
// ======================================================

func (c *Catalog) upload(ctx context.Context, kind string, id uint, r io.Reader) (string, error) {
	body, err := c.encoder.Encode(r)
	if err != nil {
		return "", err
	}
	return c.images.Put(ctx, media.Key(kind, id), body, "image/webp")
}

func (c *Catalog) record(action, entity string, id uint) {
	c.audit.Dispatch(audit.Event{
		Actor:    audit.ActorAdmin,
		Action:   action,
		Entity:   entity,
		EntityID: &id,
	})
}

func activeAction(entity string, active bool) string {
	if active {
		return entity + "_activated"
	}
	return entity + "_deactivated"
}
