package audit

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-booking/internal/models"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Filter selects audit entries. Zero values match everything; To is
// exclusive.
type Filter struct {
	Action   string
	Entity   string
	Actor    string
	EntityID *uint
	From     *time.Time
	To       *time.Time

	Page  int
	Limit int
}

// Normalize clamps paging to sane values.
func (f Filter) Normalize() Filter {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 || f.Limit > MaxPageSize {
		f.Limit = DefaultPageSize
	}
	return f
}

func (f Filter) Offset() int {
	return (f.Page - 1) * f.Limit
}

// Matches is the in-process equivalent of the SQL filter.
func (f Filter) Matches(e models.AuditLog) bool {
	switch {
	case f.Action != "" && e.Action != f.Action:
		return false
	case f.Entity != "" && e.Entity != f.Entity:
		return false
	case f.Actor != "" && e.Actor != f.Actor:
		return false
	case f.EntityID != nil && (e.EntityID == nil || *e.EntityID != *f.EntityID):
		return false
	case f.From != nil && e.CreatedAt.Before(*f.From):
		return false
	case f.To != nil && !e.CreatedAt.Before(*f.To):
		return false
	}
	return true
}

// ListAuditLogs returns one page, newest first, and the total match count.
func (l *Logger) ListAuditLogs(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	f = f.Normalize()

	q := l.db.WithContext(ctx).Model(&models.AuditLog{})

	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.Actor != "" {
		q = q.Where("actor = ?", f.Actor)
	}
	if f.EntityID != nil {
		q = q.Where("entity_id = ?", *f.EntityID)
	}
	if f.From != nil {
		q = q.Where("created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("created_at < ?", *f.To)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(f.Limit).
		Offset(f.Offset()).
		Find(&logs).Error; err != nil {
		return nil, 0, err
	}

	return logs, total, nil
}
