// Package memory holds in-process repositories with the same contracts as
// the PostgreSQL ones, including the uniqueness of active bookings per slot.
// Used by tests of the use cases, services and handlers.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/appointment-booking/internal/domain"
	bookingRepo "github.com/m04kA/appointment-booking/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
)

// Store общее состояние репозиториев
type Store struct {
	mu             sync.Mutex
	bookings       map[int64]*domain.Booking
	businesses     map[int64]*domain.Business
	nextBookingID  int64
	nextBusinessID int64
	now            func() time.Time
}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{
		bookings:   make(map[int64]*domain.Booking),
		businesses: make(map[int64]*domain.Business),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Bookings возвращает репозиторий бронирований поверх хранилища
func (s *Store) Bookings() *BookingRepository {
	return &BookingRepository{s: s}
}

// Businesses возвращает репозиторий бизнесов поверх хранилища
func (s *Store) Businesses() *BusinessRepository {
	return &BusinessRepository{s: s}
}

// TxManager выполняет функцию без транзакции.
// Атомарность вставки обеспечивает проверка уникальности под мьютексом.
type TxManager struct{}

func (TxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (TxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// BookingRepository бронирования в памяти
type BookingRepository struct {
	s *Store
}

func copyBooking(b *domain.Booking) *domain.Booking {
	c := *b
	if b.Notes != nil {
		notes := *b.Notes
		c.Notes = &notes
	}
	return &c
}

func sameDay(a, b time.Time) bool {
	return a.Format(domain.DateFormat) == b.Format(domain.DateFormat)
}

// Create сохраняет бронирование, если слот не занят активным бронированием
func (r *BookingRepository) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if booking.Status != domain.StatusCancelled {
		for _, existing := range r.s.bookings {
			if existing.IsActive() &&
				existing.BusinessID == booking.BusinessID &&
				sameDay(existing.Date, booking.Date) &&
				existing.StartTime == booking.StartTime {
				return nil, bookingRepo.ErrSlotAlreadyBooked
			}
		}
	}

	r.s.nextBookingID++
	now := r.s.now()

	stored := copyBooking(booking)
	stored.ID = r.s.nextBookingID
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.s.bookings[stored.ID] = stored

	booking.ID = stored.ID
	booking.CreatedAt = now
	booking.UpdatedAt = now
	return booking, nil
}

func (r *BookingRepository) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return copyBooking(b), nil
}

func (r *BookingRepository) GetActiveForDay(_ context.Context, businessID int64, date time.Time) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := make([]*domain.Booking, 0)
	for _, b := range r.s.bookings {
		if b.BusinessID == businessID && sameDay(b.Date, date) && b.IsActive() {
			result = append(result, copyBooking(b))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].StartTime < result[j].StartTime })
	return result, nil
}

func (r *BookingRepository) List(_ context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := r.s.filter(filter)
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if !sameDay(a.Date, b.Date) {
			return a.Date.After(b.Date)
		}
		if a.StartTime != b.StartTime {
			return a.StartTime < b.StartTime
		}
		return a.ID < b.ID
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return make([]*domain.Booking, 0), nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *BookingRepository) Count(_ context.Context, filter domain.BookingsFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return len(r.s.filter(filter)), nil
}

// UpdateStatus меняет статус с from на to (compare-and-set)
func (r *BookingRepository) UpdateStatus(_ context.Context, id int64, from, to domain.BookingStatus) (time.Time, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.bookings[id]
	if !ok {
		return time.Time{}, bookingRepo.ErrBookingNotFound
	}
	if b.Status != from {
		return time.Time{}, bookingRepo.ErrStatusChanged
	}

	b.Status = to
	b.UpdatedAt = r.s.now()
	return b.UpdatedAt, nil
}

func (s *Store) filter(filter domain.BookingsFilter) []*domain.Booking {
	result := make([]*domain.Booking, 0)
	for _, b := range s.bookings {
		if filter.UserID != nil && b.UserID != *filter.UserID {
			continue
		}
		if filter.BusinessID != nil && b.BusinessID != *filter.BusinessID {
			continue
		}
		if filter.Status != nil {
			if b.Status != *filter.Status {
				continue
			}
		} else if filter.ActiveOnly && !b.IsActive() {
			continue
		}
		if filter.Date != nil && !sameDay(b.Date, *filter.Date) {
			continue
		}
		if filter.DateFrom != nil && b.Date.Before(*filter.DateFrom) {
			continue
		}
		if filter.DateTo != nil && b.Date.After(*filter.DateTo) {
			continue
		}
		result = append(result, copyBooking(b))
	}
	return result
}

// BusinessRepository бизнесы в памяти
type BusinessRepository struct {
	s *Store
}

func (r *BusinessRepository) Create(_ context.Context, business *domain.Business) (*domain.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextBusinessID++
	now := r.s.now()

	business.ID = r.s.nextBusinessID
	business.CreatedAt = now
	business.UpdatedAt = now

	stored := *business
	r.s.businesses[stored.ID] = &stored
	return business, nil
}

func (r *BusinessRepository) GetByID(_ context.Context, id int64) (*domain.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	b, ok := r.s.businesses[id]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}
	c := *b
	return &c, nil
}

// GetByIDForUpdate совпадает с GetByID: транзакции в памяти не блокируют строки
func (r *BusinessRepository) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Business, error) {
	return r.GetByID(ctx, id)
}

// List получает бизнесы по фильтру, сортировка по ID
func (r *BusinessRepository) List(_ context.Context, filter domain.BusinessesFilter) ([]*domain.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	result := r.s.filterBusinesses(filter)
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return make([]*domain.Business, 0), nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && len(result) > filter.Limit {
		result = result[:filter.Limit]
	}
	return result, nil
}

func (r *BusinessRepository) Count(_ context.Context, filter domain.BusinessesFilter) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return len(r.s.filterBusinesses(filter)), nil
}

func (s *Store) filterBusinesses(filter domain.BusinessesFilter) []*domain.Business {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	result := make([]*domain.Business, 0)
	for _, b := range s.businesses {
		if search != "" && !strings.Contains(strings.ToLower(b.Name), search) {
			continue
		}
		if filter.Category != "" && b.Category != filter.Category {
			continue
		}
		if filter.OwnerID != nil && b.OwnerID != *filter.OwnerID {
			continue
		}
		c := *b
		result = append(result, &c)
	}
	return result
}

func (r *BusinessRepository) Update(_ context.Context, business *domain.Business) (*domain.Business, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.businesses[business.ID]
	if !ok {
		return nil, businessRepo.ErrBusinessNotFound
	}

	business.CreatedAt = existing.CreatedAt
	business.UpdatedAt = r.s.now()

	stored := *business
	r.s.businesses[stored.ID] = &stored
	return business, nil
}

// Delete удаляет бизнес вместе с его бронированиями
func (r *BusinessRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.businesses[id]; !ok {
		return businessRepo.ErrBusinessNotFound
	}
	delete(r.s.businesses, id)

	for bookingID, b := range r.s.bookings {
		if b.BusinessID == id {
			delete(r.s.bookings, bookingID)
		}
	}
	return nil
}
