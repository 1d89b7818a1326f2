package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/barber-booking/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)

	return db, mock
}

func slotAppointment() *models.Appointment {
	return &models.Appointment{
		CustomerName:    "Maria",
		CustomerPhone:   "+359888123456",
		ServiceID:       7,
		BarberID:        5,
		AppointmentDate: time.Date(2025, 6, 1, 7, 0, 0, 0, time.UTC),
		Status:          string(domain.StatusConfirmed),
	}
}

func TestCreateAppointmentMapsIndexViolation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	// The pre-check sees nothing; a concurrent insert wins at the index.
	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "ux_appointments_barber_slot",
		})
	mock.ExpectRollback()

	err := repo.CreateAppointment(context.Background(), slotAppointment())
	assert.ErrorIs(t, err, domain.ErrDuplicateSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentRejectsHeldSlot(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := repo.CreateAppointment(context.Background(), slotAppointment())
	assert.ErrorIs(t, err, domain.ErrDuplicateSlot)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateAppointmentInserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAppointmentGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`INSERT INTO "appointments"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	mock.ExpectCommit()

	ap := slotAppointment()
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))
	assert.Equal(t, uint(42), ap.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
