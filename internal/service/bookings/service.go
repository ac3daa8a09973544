package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/appointment-booking/internal/domain"
	bookingRepo "github.com/m04kA/appointment-booking/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
	"github.com/m04kA/appointment-booking/internal/policy"
	"github.com/m04kA/appointment-booking/internal/service/bookings/models"
)

// Service сервис для чтения бронирований и управления их статусом
type Service struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: realTimeProvider{},
		logger:       logger,
	}
}

// GetByID возвращает бронирование.
// Доступно автору бронирования, владельцу бизнеса и администратору.
func (s *Service) GetByID(ctx context.Context, principal domain.Principal, id int64) (*domain.Booking, error) {
	s.logger.Info("GetByID: booking id=%d requested by user=%d", id, principal.ID)

	booking, err := s.loadBooking(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, "GetByID", principal, policy.ViewBooking, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// ListMine возвращает бронирования текущего пользователя
func (s *Service) ListMine(ctx context.Context, principal domain.Principal, req *models.ListMineRequest) ([]*domain.Booking, error) {
	s.logger.Info("ListMine: user=%d", principal.ID)

	if principal.ID <= 0 {
		return nil, ErrAccessDenied
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{
		UserID:     &principal.ID,
		BusinessID: req.BusinessID,
		Status:     status,
	}

	bookings, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("ListMine: failed to list bookings for user=%d: %v", principal.ID, err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	s.logger.Info("ListMine: found %d bookings for user=%d", len(bookings), principal.ID)
	return bookings, nil
}

// ListForBusiness возвращает бронирования бизнеса.
// Доступно владельцу бизнеса и администратору.
func (s *Service) ListForBusiness(ctx context.Context, principal domain.Principal, req *models.ListBusinessRequest) ([]*domain.Booking, error) {
	s.logger.Info("ListForBusiness: business=%d requested by user=%d", req.BusinessID, principal.ID)

	business, err := s.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("ListForBusiness: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("ListForBusiness: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !policy.CanAct(principal, policy.ListBusinessBookings, policy.Resource{OwnerID: business.OwnerID}) {
		s.logger.Warn("ListForBusiness: user=%d is not allowed to list bookings of business=%d", principal.ID, business.ID)
		return nil, ErrAccessDenied
	}

	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}
	date, err := parseDateFilter("date", req.Date)
	if err != nil {
		return nil, err
	}

	bookings, err := s.bookingRepo.List(ctx, domain.BookingsFilter{
		BusinessID: &business.ID,
		Status:     status,
		Date:       date,
	})
	if err != nil {
		s.logger.Error("ListForBusiness: failed to list bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
	}

	s.logger.Info("ListForBusiness: found %d bookings for business=%d", len(bookings), business.ID)
	return bookings, nil
}

// ListAll постраничный список всех бронирований для администратора
func (s *Service) ListAll(ctx context.Context, principal domain.Principal, req *models.ListAllRequest) (*models.BookingsPage, error) {
	s.logger.Info("ListAll: requested by user=%d", principal.ID)

	if !policy.CanAct(principal, policy.ListAllBookings, policy.Resource{}) {
		s.logger.Warn("ListAll: user=%d is not an admin", principal.ID)
		return nil, ErrAccessDenied
	}

	page, limit, err := normalizePage(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}
	status, err := parseStatusFilter(req.Status)
	if err != nil {
		return nil, err
	}
	dateFrom, err := parseDateFilter("dateFrom", req.DateFrom)
	if err != nil {
		return nil, err
	}
	dateTo, err := parseDateFilter("dateTo", req.DateTo)
	if err != nil {
		return nil, err
	}

	filter := domain.BookingsFilter{
		UserID:     req.UserID,
		BusinessID: req.BusinessID,
		Status:     status,
		DateFrom:   dateFrom,
		DateTo:     dateTo,
	}

	var (
		total    int
		bookings []*domain.Booking
	)

	// Количество и страница из одного снимка
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		total, err = s.bookingRepo.Count(txCtx, filter)
		if err != nil {
			s.logger.Error("ListAll: failed to count bookings: %v", err)
			return fmt.Errorf("%w: failed to count bookings: %v", ErrInternal, err)
		}

		filter.Limit = limit
		filter.Offset = (page - 1) * limit

		bookings, err = s.bookingRepo.List(txCtx, filter)
		if err != nil {
			s.logger.Error("ListAll: failed to list bookings: %v", err)
			return fmt.Errorf("%w: failed to list bookings: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.BookingsPage{
		Total:    total,
		Page:     page,
		Limit:    limit,
		Bookings: bookings,
	}, nil
}

// Cancel отменяет бронирование.
// Повторная отмена уже отмененного бронирования успешна и ничего не меняет.
func (s *Service) Cancel(ctx context.Context, principal domain.Principal, id int64) (*domain.Booking, error) {
	s.logger.Info("Cancel: booking id=%d by user=%d", id, principal.ID)

	booking, previous, err := s.changeStatus(ctx, "Cancel", principal, policy.CancelBooking, id, domain.StatusCancelled)
	if err != nil {
		return nil, err
	}

	if previous != "" {
		s.notifier.Notify(ctx, domain.NewBookingEvent(
			domain.EventBookingCancelled, booking, previous, principal.ID, s.timeProvider.Now()))
	}

	return booking, nil
}

// UpdateStatus меняет статус бронирования.
// Доступно владельцу бизнеса и администратору.
func (s *Service) UpdateStatus(ctx context.Context, principal domain.Principal, id int64, rawStatus string) (*domain.Booking, error) {
	s.logger.Info("UpdateStatus: booking id=%d to %q by user=%d", id, rawStatus, principal.ID)

	next, ok := domain.ParseBookingStatus(rawStatus)
	if !ok {
		s.logger.Warn("UpdateStatus: unknown status %q", rawStatus)
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, rawStatus)
	}

	booking, previous, err := s.changeStatus(ctx, "UpdateStatus", principal, policy.UpdateBookingStatus, id, next)
	if err != nil {
		return nil, err
	}

	if previous != "" {
		s.notifier.Notify(ctx, domain.NewBookingEvent(
			domain.EventBookingStatusChanged, booking, previous, principal.ID, s.timeProvider.Now()))
	}

	return booking, nil
}

// changeStatus переводит бронирование в статус next внутри транзакции.
// Возвращает предыдущий статус или "" если статус уже был next.
func (s *Service) changeStatus(
	ctx context.Context,
	op string,
	principal domain.Principal,
	action policy.Action,
	id int64,
	next domain.BookingStatus,
) (*domain.Booking, domain.BookingStatus, error) {
	var (
		result   *domain.Booking
		previous domain.BookingStatus
	)

	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Блокируем бронирование (FOR UPDATE)
		booking, err := s.loadBooking(txCtx, op, id)
		if err != nil {
			return err
		}

		// 2. Проверяем права
		if err := s.authorize(txCtx, op, principal, action, booking); err != nil {
			return err
		}

		// 3. Тот же статус - ничего не делаем
		if booking.Status == next {
			s.logger.Info("%s: booking id=%d already %s", op, id, next)
			result = booking
			return nil
		}

		if !booking.Status.CanTransitionTo(next) {
			s.logger.Warn("%s: transition %s -> %s is not allowed for booking id=%d", op, booking.Status, next, id)
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, booking.Status, next)
		}

		// 4. Compare-and-set по предыдущему статусу
		updatedAt, err := s.bookingRepo.UpdateStatus(txCtx, id, booking.Status, next)
		if err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			case errors.Is(err, bookingRepo.ErrStatusChanged), errors.Is(err, bookingRepo.ErrSlotAlreadyBooked):
				s.logger.Warn("%s: booking id=%d changed concurrently: %v", op, id, err)
				return fmt.Errorf("%w: %v", ErrConcurrentUpdate, err)
			}
			s.logger.Error("%s: failed to update status of booking id=%d: %v", op, id, err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		previous = booking.Status
		booking.Status = next
		booking.UpdatedAt = updatedAt
		result = booking
		return nil
	})

	if err != nil {
		return nil, "", err
	}

	if previous != "" {
		s.metrics.IncStatusTransition(string(previous), string(next))
		s.logger.Info("%s: booking id=%d %s -> %s", op, id, previous, next)
	}

	return result, previous, nil
}

// loadBooking получает бронирование и переводит ошибки хранилища
func (s *Service) loadBooking(ctx context.Context, op string, id int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found", op, id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("%s: failed to get booking id=%d: %v", op, id, err)
		return nil, fmt.Errorf("%w: failed to get booking: %v", ErrInternal, err)
	}
	return booking, nil
}

// authorize проверяет право principal на action над бронированием
func (s *Service) authorize(ctx context.Context, op string, principal domain.Principal, action policy.Action, booking *domain.Booking) error {
	var ownerID int64

	business, err := s.businessRepo.GetByID(ctx, booking.BusinessID)
	switch {
	case err == nil:
		ownerID = business.OwnerID
	case errors.Is(err, businessRepo.ErrBusinessNotFound):
		// Бизнес удален: остаются только права автора и администратора
	default:
		s.logger.Error("%s: failed to get business id=%d: %v", op, booking.BusinessID, err)
		return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	res := policy.Resource{OwnerID: ownerID, RequesterID: booking.UserID}
	if !policy.CanAct(principal, action, res) {
		s.logger.Warn("%s: user=%d is not allowed to %s booking id=%d", op, principal.ID, action, booking.ID)
		return ErrAccessDenied
	}
	return nil
}
