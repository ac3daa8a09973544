package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/appointment-booking/internal/domain"
	bookingRepo "github.com/m04kA/appointment-booking/internal/infra/storage/booking"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
)

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	txManager    TransactionManager
	notifier     Notifier
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	businessRepo BusinessRepository,
	txManager TransactionManager,
	notifier Notifier,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		txManager:    txManager,
		notifier:     notifier,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Из конкурентных запросов на один слот успешен ровно один,
// остальные получают ошибку вида Conflict.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.Booking, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, date=%s, time=%s",
		req.Principal.ID, req.BusinessID, req.Date, req.StartTime)

	// 1. Валидация входных данных
	input, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Время начала должно совпадать с началом одного из слотов дня
	slots := domain.GenerateSlots(business.WorkingHours, business.SlotDuration())
	slot, ok := domain.FindSlot(slots, input.startTime)
	if !ok {
		uc.logger.Warn("CreateBooking: %s is not a slot of business id=%d (hours=%q, duration=%d)",
			input.startTime, business.ID, business.WorkingHours, business.SlotDuration())
		return nil, fmt.Errorf("%w: %s", ErrSlotNotOffered, input.startTime)
	}

	var result *domain.Booking

	// 4. Проверка и вставка в одной транзакции.
	// Окончательно занятость слота проверяет уникальный индекс при вставке.
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 4.1. Активные бронирования дня с блокировкой (FOR UPDATE)
		bookings, err := uc.bookingRepo.GetActiveForDay(txCtx, business.ID, input.date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		if domain.IsSlotTaken(bookings, slot.Start) {
			return fmt.Errorf("%w: %s %s", ErrSlotTaken, input.date.Format(domain.DateFormat), slot.Start)
		}

		// 4.2. Создаем бронирование
		booking := &domain.Booking{
			UserID:     req.Principal.ID,
			BusinessID: business.ID,
			Date:       input.date,
			StartTime:  slot.Start,
			EndTime:    slot.End,
			Status:     domain.StatusPending,
			Notes:      req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrSlotAlreadyBooked) {
				return fmt.Errorf("%w: %v", ErrSlotTaken, err)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, ErrSlotTaken) {
			uc.metrics.IncBookingConflict()
			uc.logger.Warn("CreateBooking: %v", err)
		}
		return nil, err
	}

	uc.metrics.IncBookingCreated()
	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 5. Событие публикуется после коммита
	uc.notifier.Notify(ctx, domain.NewBookingEvent(
		domain.EventBookingCreated, result, "", req.Principal.ID, uc.timeProvider.Now()))

	return result, nil
}
