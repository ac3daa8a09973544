package businesses

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/appointment-booking/internal/domain"
	"github.com/m04kA/appointment-booking/internal/infra/storage/memory"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
	"github.com/m04kA/appointment-booking/pkg/logger"
	"github.com/m04kA/appointment-booking/pkg/ptr"
)

var (
	admin    = domain.Principal{ID: 1, Role: domain.RoleAdmin}
	owner    = domain.Principal{ID: 50, Role: domain.RoleBusiness}
	customer = domain.Principal{ID: 8, Role: domain.RoleUser}
)

func newService() *Service {
	return NewService(memory.NewStore().Businesses(), memory.TxManager{}, logger.NewNop())
}

func TestCreate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{Name: " Spa ", WorkingHours: "10:00 - 18:00"})
	require.NoError(t, err)
	assert.Equal(t, owner.ID, b.OwnerID)
	assert.Equal(t, "Spa", b.Name)
	assert.Equal(t, "10:00 - 18:00", b.WorkingHours)
	assert.Equal(t, domain.DefaultSlotDurationMinutes, b.SlotDurationMinutes)

	_, err = svc.Create(ctx, customer, &models.CreateBusinessRequest{Name: "Spa"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Create(ctx, admin, &models.CreateBusinessRequest{Name: "No hours"})
	assert.NoError(t, err)

	invalid := []*models.CreateBusinessRequest{
		{Name: ""},
		{Name: "Spa", WorkingHours: "18:00-10:00"},
		{Name: "Spa", WorkingHours: "9-18"},
		{Name: "Spa", SlotDurationMinutes: -5},
		{Name: "Spa", SlotDurationMinutes: domain.MaxSlotDurationMinutes + 1},
	}
	for _, req := range invalid {
		_, err := svc.Create(ctx, owner, req)
		assert.ErrorIs(t, err, domain.ErrValidationFailed, "%+v", req)
	}
}

func TestUpdate(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{Name: "Gym", WorkingHours: "06:00-22:00", SlotDurationMinutes: 60})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, &models.UpdateBusinessRequest{ID: b.ID, SlotDurationMinutes: ptr.Ptr(45)})
	require.NoError(t, err)
	assert.Equal(t, 45, updated.SlotDurationMinutes)
	assert.Equal(t, "06:00-22:00", updated.WorkingHours)

	updated, err = svc.Update(ctx, admin, &models.UpdateBusinessRequest{ID: b.ID, WorkingHours: ptr.Ptr("07:00-21:00")})
	require.NoError(t, err)
	assert.Equal(t, "07:00-21:00", updated.WorkingHours)

	_, err = svc.Update(ctx, customer, &models.UpdateBusinessRequest{ID: b.ID, Name: ptr.Ptr("Mine now")})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = svc.Update(ctx, owner, &models.UpdateBusinessRequest{ID: b.ID, WorkingHours: ptr.Ptr("late")})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = svc.Update(ctx, owner, &models.UpdateBusinessRequest{ID: 999, Name: ptr.Ptr("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{Name: "Cafe"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, owner, b.ID), domain.ErrForbidden)
	require.NoError(t, svc.Delete(ctx, admin, b.ID))
	assert.ErrorIs(t, svc.Delete(ctx, admin, b.ID), domain.ErrNotFound)

	_, err = svc.GetByID(ctx, b.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_Profile(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{
		Name:        "Barber",
		Description: " Cuts and shaves ",
		Category:    "beauty",
		Address:     "Main st. 1",
		Phone:       "+1 555 0100",
		Email:       "barber@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "Cuts and shaves", b.Description)
	assert.Equal(t, "beauty", b.Category)
	assert.Equal(t, "barber@example.com", b.Email)
	assert.True(t, b.IsActive)

	hidden, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{Name: "Hidden", IsActive: ptr.Ptr(false)})
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)

	invalid := []*models.CreateBusinessRequest{
		{Name: "Spa", Email: "not-an-email"},
		{Name: "Spa", Email: "Spa <spa@example.com>"},
		{Name: "Spa", Phone: strings.Repeat("1", domain.MaxPhoneLength+1)},
		{Name: "Spa", Description: strings.Repeat("x", domain.MaxDescriptionLength+1)},
	}
	for _, req := range invalid {
		_, err := svc.Create(ctx, owner, req)
		assert.ErrorIs(t, err, domain.ErrValidationFailed, "%+v", req)
	}
}

func TestUpdate_ProfileFields(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	b, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{Name: "Gym", Category: "sport"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, owner, &models.UpdateBusinessRequest{
		ID:       b.ID,
		Address:  ptr.Ptr(" Park ave. 5 "),
		Email:    ptr.Ptr("gym@example.com"),
		IsActive: ptr.Ptr(false),
	})
	require.NoError(t, err)
	assert.Equal(t, "Park ave. 5", updated.Address)
	assert.Equal(t, "gym@example.com", updated.Email)
	assert.Equal(t, "sport", updated.Category)
	assert.False(t, updated.IsActive)

	_, err = svc.Update(ctx, owner, &models.UpdateBusinessRequest{ID: b.ID, Email: ptr.Ptr("gym@")})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	stored, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "gym@example.com", stored.Email)
}

func TestList_Public(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, req := range []*models.CreateBusinessRequest{
		{Name: "Barber Joe", Category: "beauty"},
		{Name: "City Dental", Category: "health"},
		{Name: "Joe's Nails", Category: "beauty"},
	} {
		_, err := svc.Create(ctx, owner, req)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, &models.ListRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	found, err := svc.List(ctx, &models.ListRequest{Search: "joe", Category: "beauty"})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Barber Joe", found[0].Name)
	assert.Equal(t, "Joe's Nails", found[1].Name)

	none, err := svc.List(ctx, &models.ListRequest{Category: "food"})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestListAll_Pagination(t *testing.T) {
	svc := newService()
	ctx := context.Background()
	otherOwner := domain.Principal{ID: 51, Role: domain.RoleBusiness}

	for i := 1; i <= 5; i++ {
		creator := owner
		if i%2 == 0 {
			creator = otherOwner
		}
		_, err := svc.Create(ctx, creator, &models.CreateBusinessRequest{Name: fmt.Sprintf("Shop %d", i), Category: "retail"})
		require.NoError(t, err)
	}

	page, err := svc.ListAll(ctx, admin, &models.ListAllRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Equal(t, 5, page.Total)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 2, page.Limit)
	require.Len(t, page.Businesses, 2)
	assert.Equal(t, "Shop 3", page.Businesses[0].Name)
	assert.Equal(t, "Shop 4", page.Businesses[1].Name)

	byOwner, err := svc.ListAll(ctx, admin, &models.ListAllRequest{OwnerID: ptr.Ptr(otherOwner.ID)})
	require.NoError(t, err)
	assert.Equal(t, 2, byOwner.Total)
	assert.Equal(t, 1, byOwner.Page)
	assert.Equal(t, domain.DefaultPageLimit, byOwner.Limit)

	capped, err := svc.ListAll(ctx, admin, &models.ListAllRequest{Limit: domain.MaxPageLimit + 50})
	require.NoError(t, err)
	assert.Equal(t, domain.MaxPageLimit, capped.Limit)

	_, err = svc.ListAll(ctx, admin, &models.ListAllRequest{Page: -1})
	assert.ErrorIs(t, err, domain.ErrValidationFailed)

	_, err = svc.ListAll(ctx, owner, &models.ListAllRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

type txKey struct{}

// serialTxManager выполняет транзакции по одной, как блокировка строки FOR UPDATE
type serialTxManager struct {
	mu sync.Mutex
}

func (m *serialTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (m *serialTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.Do(ctx, fn)
}

// txCheckingRepo требует, чтобы чтение с блокировкой и запись шли внутри транзакции
type txCheckingRepo struct {
	*memory.BusinessRepository
	mu      sync.Mutex
	outside []string
}

func (r *txCheckingRepo) check(ctx context.Context, op string) {
	if ctx.Value(txKey{}) == nil {
		r.mu.Lock()
		r.outside = append(r.outside, op)
		r.mu.Unlock()
	}
}

func (r *txCheckingRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error) {
	r.check(ctx, "GetByIDForUpdate")
	return r.BusinessRepository.GetByIDForUpdate(ctx, id)
}

func (r *txCheckingRepo) Update(ctx context.Context, b *domain.Business) (*domain.Business, error) {
	r.check(ctx, "Update")
	return r.BusinessRepository.Update(ctx, b)
}

func TestUpdate_ConcurrentPartialUpdatesKeepEveryField(t *testing.T) {
	repo := &txCheckingRepo{BusinessRepository: memory.NewStore().Businesses()}
	svc := NewService(repo, &serialTxManager{}, logger.NewNop())
	ctx := context.Background()

	b, err := svc.Create(ctx, owner, &models.CreateBusinessRequest{Name: "Studio"})
	require.NoError(t, err)

	requests := []*models.UpdateBusinessRequest{
		{ID: b.ID, Description: ptr.Ptr("Yoga and pilates")},
		{ID: b.ID, Category: ptr.Ptr("sport")},
		{ID: b.ID, Address: ptr.Ptr("Lake rd. 3")},
		{ID: b.ID, Phone: ptr.Ptr("+1 555 0199")},
		{ID: b.ID, Email: ptr.Ptr("studio@example.com")},
		{ID: b.ID, WorkingHours: ptr.Ptr("08:00-20:00")},
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(requests))
	for _, req := range requests {
		wg.Add(1)
		go func(req *models.UpdateBusinessRequest) {
			defer wg.Done()
			_, err := svc.Update(ctx, owner, req)
			errs <- err
		}(req)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	stored, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Studio", stored.Name)
	assert.Equal(t, "Yoga and pilates", stored.Description)
	assert.Equal(t, "sport", stored.Category)
	assert.Equal(t, "Lake rd. 3", stored.Address)
	assert.Equal(t, "+1 555 0199", stored.Phone)
	assert.Equal(t, "studio@example.com", stored.Email)
	assert.Equal(t, "08:00-20:00", stored.WorkingHours)
	assert.Empty(t, repo.outside)
}

type failingTxManager struct{}

func (failingTxManager) Do(context.Context, func(ctx context.Context) error) error {
	return errors.New("txmanager: begin transaction: connection refused")
}

func (failingTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return failingTxManager{}.Do(ctx, fn)
}

func TestUpdate_NothingWrittenWithoutTransaction(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	b, err := NewService(store.Businesses(), memory.TxManager{}, logger.NewNop()).
		Create(ctx, owner, &models.CreateBusinessRequest{Name: "Cafe"})
	require.NoError(t, err)

	svc := NewService(store.Businesses(), failingTxManager{}, logger.NewNop())
	_, err = svc.Update(ctx, owner, &models.UpdateBusinessRequest{ID: b.ID, Name: ptr.Ptr("Bistro")})
	require.Error(t, err)

	stored, err := svc.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cafe", stored.Name)
}
