package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	unique := &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "ux_appointments_barber_slot"}
	fk := &pgconn.PgError{Code: pgerrcode.ForeignKeyViolation}

	assert.True(t, isUniqueViolation(unique))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(fk))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestNotFound(t *testing.T) {
	sentinel := errors.New("missing")

	assert.Equal(t, sentinel, notFound(gorm.ErrRecordNotFound, sentinel))
	assert.Equal(t, sentinel, notFound(fmt.Errorf("x: %w", gorm.ErrRecordNotFound), sentinel))

	other := errors.New("conn reset")
	assert.Equal(t, other, notFound(other, sentinel))
}
