package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

type CatalogGormRepository struct {
	db *gorm.DB
}

func NewCatalogGormRepository(db *gorm.DB) *CatalogGormRepository {
	return &CatalogGormRepository{db: db}
}

// --------------------------------------------------
// Services
// --------------------------------------------------

// ListServices with a barber returns that barber's services plus the ones
// every barber offers.
func (r *CatalogGormRepository) ListServices(
	ctx context.Context,
	barberID *uint,
	activeOnly bool,
) ([]models.Service, error) {

	q := r.db.WithContext(ctx).Order("price ASC").Order("id ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	if barberID != nil {
		q = q.Where("barber_id IS NULL OR barber_id = ?", *barberID)
	}

	var out []models.Service
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, notFound(err, domain.ErrServiceNotFound)
	}
	return &svc, nil
}

func (r *CatalogGormRepository) CreateService(ctx context.Context, svc *models.Service) error {
	return r.db.WithContext(ctx).Create(svc).Error
}

func (r *CatalogGormRepository) SetServiceActive(ctx context.Context, id uint, active bool) (*models.Service, error) {
	if err := r.update(ctx, &models.Service{}, id, "active", active, domain.ErrServiceNotFound); err != nil {
		return nil, err
	}
	return r.GetService(ctx, id)
}

func (r *CatalogGormRepository) SetServiceImage(ctx context.Context, id uint, url string) (*models.Service, error) {
	if err := r.update(ctx, &models.Service{}, id, "image_url", url, domain.ErrServiceNotFound); err != nil {
		return nil, err
	}
	return r.GetService(ctx, id)
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CatalogGormRepository) ListBarbers(ctx context.Context, activeOnly bool) ([]models.Barber, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}

	var out []models.Barber
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) GetBarber(ctx context.Context, id uint) (*models.Barber, error) {
	var b models.Barber
	if err := r.db.WithContext(ctx).First(&b, id).Error; err != nil {
		return nil, notFound(err, domain.ErrBarberNotFound)
	}
	return &b, nil
}

func (r *CatalogGormRepository) CreateBarber(ctx context.Context, b *models.Barber) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *CatalogGormRepository) SetBarberActive(ctx context.Context, id uint, active bool) (*models.Barber, error) {
	if err := r.update(ctx, &models.Barber{}, id, "active", active, domain.ErrBarberNotFound); err != nil {
		return nil, err
	}
	return r.GetBarber(ctx, id)
}

func (r *CatalogGormRepository) SetBarberImage(ctx context.Context, id uint, url string) (*models.Barber, error) {
	if err := r.update(ctx, &models.Barber{}, id, "image_url", url, domain.ErrBarberNotFound); err != nil {
		return nil, err
	}
	return r.GetBarber(ctx, id)
}

func (r *CatalogGormRepository) update(ctx context.Context, model any, id uint, column string, value any, missing error) error {
	res := r.db.WithContext(ctx).Model(model).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missing
	}
	return nil
}

// --------------------------------------------------
// Barber clients
// --------------------------------------------------

func (r *CatalogGormRepository) ListBarberClients(
	ctx context.Context,
	barberID uint,
	query string,
) ([]models.BarberClient, error) {

	q := r.db.WithContext(ctx).Where("barber_id = ?", barberID)

	query = strings.ToLower(strings.TrimSpace(query))
	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(email) LIKE ?",
			like, like, like,
		)
	}

	var out []models.BarberClient
	if err := q.
		Order("last_visit DESC NULLS LAST").
		Order("name ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *CatalogGormRepository) CreateBarberClient(ctx context.Context, c *models.BarberClient) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrClientExists
		}
		return err
	}
	return nil
}
