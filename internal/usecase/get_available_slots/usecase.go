package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/appointment-booking/internal/domain"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
)

// UseCase use case для получения доступных слотов для бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	businessRepo BusinessRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, businessRepo BusinessRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		businessRepo: businessRepo,
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов.
// Только чтение, без блокировок: ответ может устареть к моменту бронирования.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: business=%d, date=%s", req.BusinessID, req.Date)

	// 1. Валидация входных данных
	if req.BusinessID <= 0 {
		return nil, fmt.Errorf("%w: businessId must be positive", ErrInvalidInput)
	}
	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: invalid date %q", req.Date)
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD, got %q", ErrInvalidInput, req.Date)
	}

	// 2. Получаем бизнес
	business, err := uc.businessRepo.GetByID(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			uc.logger.Warn("GetAvailableSlots: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	// 3. Генерируем слоты дня
	slots := domain.GenerateSlots(business.WorkingHours, business.SlotDuration())
	if len(slots) == 0 {
		uc.logger.Warn("GetAvailableSlots: business id=%d has no slots (hours=%q, duration=%d)",
			business.ID, business.WorkingHours, business.SlotDuration())
	}

	// 4. Активные бронирования дня
	bookings, err := uc.bookingRepo.GetActiveForDay(ctx, business.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	availability := domain.ResolveAvailability(slots, bookings)
	uc.logger.Info("GetAvailableSlots: %d slots, %d booked", len(availability), len(bookings))

	return &Response{
		BusinessID: business.ID,
		Date:       date,
		Slots:      availability,
	}, nil
}
