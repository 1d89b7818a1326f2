package appointment

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-booking/internal/domain/loyalty"
	"github.com/BruksfildServices01/barber-booking/internal/infra/memstore"
	"github.com/BruksfildServices01/barber-booking/internal/infra/notify"
	"github.com/BruksfildServices01/barber-booking/internal/models"
	"github.com/BruksfildServices01/barber-booking/internal/timezone"
	loyaltyuc "github.com/BruksfildServices01/barber-booking/internal/usecase/loyalty"
)

type recordingNotifier struct {
	mu    sync.Mutex
	kinds []notify.Kind
}

func (r *recordingNotifier) Notify(kind notify.Kind, _ notify.Summary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = append(r.kinds, kind)
}

type fixture struct {
	store    *memstore.Store
	ledger   *loyaltyuc.Ledger
	notifier *recordingNotifier
	clock    timezone.Clock
	loc      *time.Location

	create *CreateAppointment
	status *UpdateAppointmentStatus
	del    *DeleteAppointment
	bulk   *BulkAppointments
	avail  *GetAvailability
}

// newFixture seeds barber 5 and a 40.00 haircut, with the clock at
// 2025-05-31 12:00 shop time.
func newFixture(t *testing.T, policy loyalty.AwardPolicy) *fixture {
	t.Helper()

	loc, err := time.LoadLocation("Europe/Sofia")
	require.NoError(t, err)

	clock := timezone.Fixed(time.Date(2025, 5, 31, 12, 0, 0, 0, loc))

	store := memstore.New()
	store.AddBarber(models.Barber{ID: 5, Name: "Ivan", Active: true})
	store.AddService(models.Service{
		ID:          7,
		Name:        "Haircut",
		Price:       decimal.RequireFromString("40.00"),
		DurationMin: 45,
		Active:      true,
	})

	ledger := loyaltyuc.NewLedger(store, policy, clock, nil)
	notifier := &recordingNotifier{}

	status := NewUpdateAppointmentStatus(store, ledger, nil, clock)
	del := NewDeleteAppointment(store, nil)

	return &fixture{
		store:    store,
		ledger:   ledger,
		notifier: notifier,
		clock:    clock,
		loc:      loc,
		create:   NewCreateAppointment(store, ledger, notifier, nil, clock),
		status:   status,
		del:      del,
		bulk:     NewBulkAppointments(del, status, nil),
		avail:    NewGetAvailability(store, nil, clock),
	}
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		CustomerName:    "Maria",
		CustomerPhone:   "+359 888 123 456",
		CustomerEmail:   "maria@example.com",
		ServiceID:       7,
		BarberID:        5,
		AppointmentDate: "2025-06-01T10:00",
	}
}
