package bookings

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointment-booking/internal/domain"
	bookingRepo "github.com/m04kA/appointment-booking/internal/infra/storage/booking"
	"github.com/m04kA/appointment-booking/internal/infra/storage/memory"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
	"github.com/m04kA/appointment-booking/internal/usecase/create_booking"
	"github.com/m04kA/appointment-booking/pkg/logger"
	"github.com/m04kA/appointment-booking/pkg/ptr"
	"github.com/m04kA/appointment-booking/pkg/types"
)

type fakeNotifier struct {
	mu     sync.Mutex
	events []domain.BookingEvent
}

func (n *fakeNotifier) Notify(_ context.Context, event domain.BookingEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeMetrics struct {
	mu          sync.Mutex
	transitions []string
}

func (m *fakeMetrics) IncStatusTransition(from, to string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transitions = append(m.transitions, from+"->"+to)
}

func (m *fakeMetrics) snapshot() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.transitions...)
}

func (m *fakeMetrics) IncBookingCreated()  {}
func (m *fakeMetrics) IncBookingConflict() {}

var (
	admin    = domain.Principal{ID: 1, Role: domain.RoleAdmin}
	owner    = domain.Principal{ID: 50, Role: domain.RoleBusiness}
	customer = domain.Principal{ID: 8, Role: domain.RoleUser}
	stranger = domain.Principal{ID: 9, Role: domain.RoleUser}
)

type fixture struct {
	svc      *Service
	store    *memory.Store
	notifier *fakeNotifier
	metrics  *fakeMetrics
	business *domain.Business
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	business, err := store.Businesses().Create(context.Background(), &domain.Business{
		OwnerID: owner.ID, Name: "Dentist", WorkingHours: "09:00-17:00", SlotDurationMinutes: 30,
	})
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	metrics := &fakeMetrics{}
	svc := NewService(store.Bookings(), store.Businesses(), memory.TxManager{}, notifier, metrics, logger.NewNop())

	return &fixture{svc: svc, store: store, notifier: notifier, metrics: metrics, business: business}
}

func (f *fixture) book(t *testing.T, userID int64, date, start string, status domain.BookingStatus) *domain.Booking {
	t.Helper()

	d, err := time.Parse(domain.DateFormat, date)
	require.NoError(t, err)
	st := types.MustParseTimeOfDay(start)

	b, err := f.store.Bookings().Create(context.Background(), &domain.Booking{
		UserID: userID, BusinessID: f.business.ID, Date: d,
		StartTime: st, EndTime: st.AddMinutes(30), Status: status,
	})
	require.NoError(t, err)
	return b
}

func TestGetByID_Authorization(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, customer.ID, "2026-02-15", "10:00", domain.StatusPending)

	for _, p := range []domain.Principal{admin, owner, customer} {
		got, err := f.svc.GetByID(ctx, p, b.ID)
		require.NoError(t, err)
		assert.Equal(t, b.ID, got.ID)
	}

	_, err := f.svc.GetByID(ctx, stranger, b.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.GetByID(ctx, admin, 12345)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, customer.ID, "2026-02-15", "10:00", domain.StatusConfirmed)

	_, err := f.svc.Cancel(ctx, stranger, b.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	cancelled, err := f.svc.Cancel(ctx, customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)

	// Повторная отмена - успешный no-op без события
	again, err := f.svc.Cancel(ctx, owner, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, again.Status)

	require.Len(t, f.notifier.events, 1)
	assert.Equal(t, domain.EventBookingCancelled, f.notifier.events[0].Type)
	assert.Equal(t, domain.StatusConfirmed, f.notifier.events[0].PreviousStatus)
	assert.Equal(t, []string{"confirmed->cancelled"}, f.metrics.snapshot())

	_, err = f.svc.Cancel(ctx, admin, 999)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		from    domain.BookingStatus
		to      string
		actor   domain.Principal
		wantErr error
	}{
		{name: "owner confirms", from: domain.StatusPending, to: "confirmed", actor: owner},
		{name: "admin cancels pending", from: domain.StatusPending, to: "cancelled", actor: admin},
		{name: "owner cancels confirmed", from: domain.StatusConfirmed, to: "cancelled", actor: owner},
		{name: "same status is a no-op", from: domain.StatusConfirmed, to: "confirmed", actor: owner},
		{name: "confirmed back to pending", from: domain.StatusConfirmed, to: "pending", actor: owner, wantErr: domain.ErrInvalidTransition},
		{name: "cancelled is terminal", from: domain.StatusCancelled, to: "confirmed", actor: admin, wantErr: domain.ErrInvalidTransition},
		{name: "unknown status", from: domain.StatusPending, to: "done", actor: owner, wantErr: domain.ErrInvalidTransition},
		{name: "requester may not update", from: domain.StatusPending, to: "confirmed", actor: customer, wantErr: domain.ErrForbidden},
	}

	hour := 9
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := types.TimeOfDay(hour * 60).String()
			hour++
			b := f.book(t, customer.ID, "2026-03-01", start, tt.from)

			got, err := f.svc.UpdateStatus(ctx, tt.actor, b.ID, tt.to)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				stored, getErr := f.store.Bookings().GetByID(ctx, b.ID)
				require.NoError(t, getErr)
				assert.Equal(t, tt.from, stored.Status)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, domain.BookingStatus(tt.to), got.Status)
		})
	}
}

func TestListings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.book(t, customer.ID, "2026-02-15", "10:00", domain.StatusPending)
	f.book(t, customer.ID, "2026-02-16", "10:00", domain.StatusCancelled)
	f.book(t, stranger.ID, "2026-02-15", "11:00", domain.StatusConfirmed)

	mine, err := f.svc.ListMine(ctx, customer, &models.ListMineRequest{})
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	mine, err = f.svc.ListMine(ctx, customer, &models.ListMineRequest{Status: ptr.Ptr("pending")})
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	_, err = f.svc.ListMine(ctx, customer, &models.ListMineRequest{Status: ptr.Ptr("done")})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	all, err := f.svc.ListForBusiness(ctx, owner, &models.ListBusinessRequest{BusinessID: f.business.ID})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	assert.Equal(t, "2026-02-16", all[0].Date.Format(domain.DateFormat))

	day, err := f.svc.ListForBusiness(ctx, admin, &models.ListBusinessRequest{BusinessID: f.business.ID, Date: ptr.Ptr("2026-02-15")})
	require.NoError(t, err)
	require.Len(t, day, 2)
	assert.Equal(t, "10:00", day[0].StartTime.String())

	_, err = f.svc.ListForBusiness(ctx, customer, &models.ListBusinessRequest{BusinessID: f.business.ID})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.ListForBusiness(ctx, admin, &models.ListBusinessRequest{BusinessID: 404})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListAll_Pagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		f.book(t, customer.ID, "2026-02-15", types.TimeOfDay(9*60+30*i).String(), domain.StatusPending)
	}

	page, err := f.svc.ListAll(ctx, admin, &models.ListAllRequest{})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, domain.DefaultPageLimit, page.Limit)
	assert.Len(t, page.Bookings, 10)

	page, err = f.svc.ListAll(ctx, admin, &models.ListAllRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, page.Bookings, 2)

	page, err = f.svc.ListAll(ctx, admin, &models.ListAllRequest{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageLimit, page.Limit)

	_, err = f.svc.ListAll(ctx, owner, &models.ListAllRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.svc.ListAll(ctx, admin, &models.ListAllRequest{DateFrom: ptr.Ptr("yesterday")})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)
}

func TestBookCancelRebookScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	create := create_booking.NewUseCase(f.store.Bookings(), f.store.Businesses(), memory.TxManager{}, f.notifier, f.metrics, logger.NewNop())
	request := func(p domain.Principal) *create_booking.Request {
		return &create_booking.Request{Principal: p, BusinessID: f.business.ID, Date: "2026-02-15", StartTime: "10:00"}
	}

	first, err := create.Execute(ctx, request(customer))
	require.NoError(t, err)
	assert.Equal(t, "10:30", first.EndTime.String())
	assert.Equal(t, domain.StatusPending, first.Status)

	_, err = create.Execute(ctx, request(stranger))
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.svc.Cancel(ctx, customer, first.ID)
	require.NoError(t, err)

	second, err := create.Execute(ctx, request(stranger))
	require.NoError(t, err)
	assert.Equal(t, stranger.ID, second.UserID)
}

func TestConcurrentStatusChanges_ApplyEachTransitionOnce(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, customer.ID, "2026-02-15", "10:00", domain.StatusPending)

	const workers = 20
	var wg sync.WaitGroup
	errs := make([]error, workers)

	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			if i%2 == 0 {
				_, errs[i] = f.svc.UpdateStatus(ctx, owner, b.ID, string(domain.StatusConfirmed))
			} else {
				_, errs[i] = f.svc.Cancel(ctx, customer, b.ID)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			continue
		}
		assert.True(t,
			errors.Is(err, domain.ErrInvalidTransition) || errors.Is(err, domain.ErrConflict),
			"unexpected error: %v", err)
	}

	transitions := f.metrics.snapshot()
	require.NotEmpty(t, transitions)
	seen := make(map[string]bool)
	for _, tr := range transitions {
		assert.False(t, seen[tr], "transition %s applied twice", tr)
		seen[tr] = true
	}
	assert.Subset(t, []string{"pending->confirmed", "pending->cancelled", "confirmed->cancelled"}, transitions)
	assert.False(t, seen["pending->confirmed"] && seen["pending->cancelled"], "two transitions out of pending")

	f.notifier.mu.Lock()
	assert.Len(t, f.notifier.events, len(transitions))
	f.notifier.mu.Unlock()

	final, err := f.svc.GetByID(ctx, admin, b.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(transitions[len(transitions)-1], "->"+string(final.Status)))
}

// lostUpdateRepo имитирует параллельное изменение статуса между чтением и записью
type lostUpdateRepo struct {
	*memory.BookingRepository
}

func (lostUpdateRepo) UpdateStatus(context.Context, int64, domain.BookingStatus, domain.BookingStatus) (time.Time, error) {
	return time.Time{}, bookingRepo.ErrStatusChanged
}

func TestChangeStatus_LostCompareAndSet(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.book(t, customer.ID, "2026-02-15", "10:00", domain.StatusPending)

	svc := NewService(lostUpdateRepo{f.store.Bookings()}, f.store.Businesses(), memory.TxManager{}, f.notifier, f.metrics, logger.NewNop())

	_, err := svc.UpdateStatus(ctx, owner, b.ID, string(domain.StatusConfirmed))
	require.ErrorIs(t, err, ErrConcurrentUpdate)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = svc.Cancel(ctx, customer, b.ID)
	assert.ErrorIs(t, err, ErrConcurrentUpdate)

	assert.Empty(t, f.metrics.snapshot())
	assert.Empty(t, f.notifier.events)

	stored, err := f.store.Bookings().GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, stored.Status)
}
