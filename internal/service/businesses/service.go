package businesses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/appointment-booking/internal/domain"
	businessRepo "github.com/m04kA/appointment-booking/internal/infra/storage/business"
	"github.com/m04kA/appointment-booking/internal/policy"
	"github.com/m04kA/appointment-booking/internal/service/businesses/models"
)

// Service сервис для работы с бизнесами
type Service struct {
	businessRepo BusinessRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService создает новый экземпляр сервиса бизнесов
func NewService(businessRepo BusinessRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		businessRepo: businessRepo,
		txManager:    txManager,
		logger:       logger,
	}
}

// Create создает бизнес, владельцем становится вызывающий.
// Доступно ролям business и admin.
func (s *Service) Create(ctx context.Context, principal domain.Principal, req *models.CreateBusinessRequest) (*domain.Business, error) {
	s.logger.Info("Create: business %q by user=%d", req.Name, principal.ID)

	if !policy.CanAct(principal, policy.CreateBusiness, policy.Resource{}) {
		s.logger.Warn("Create: user=%d with role %q may not create businesses", principal.ID, principal.Role)
		return nil, ErrAccessDenied
	}

	duration := req.SlotDurationMinutes
	if duration == 0 {
		duration = domain.DefaultSlotDurationMinutes
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	business := &domain.Business{
		OwnerID:             principal.ID,
		Name:                strings.TrimSpace(req.Name),
		Description:         strings.TrimSpace(req.Description),
		Category:            strings.TrimSpace(req.Category),
		Address:             strings.TrimSpace(req.Address),
		Phone:               strings.TrimSpace(req.Phone),
		Email:               strings.TrimSpace(req.Email),
		WorkingHours:        strings.TrimSpace(req.WorkingHours),
		SlotDurationMinutes: duration,
		IsActive:            isActive,
	}
	if err := validateProfile(business); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	created, err := s.businessRepo.Create(ctx, business)
	if err != nil {
		s.logger.Error("Create: failed to create business: %v", err)
		return nil, fmt.Errorf("%w: failed to create business: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created business id=%d owner=%d", created.ID, created.OwnerID)
	return created, nil
}

// GetByID возвращает бизнес (публичный доступ)
func (s *Service) GetByID(ctx context.Context, id int64) (*domain.Business, error) {
	business, err := s.businessRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("GetByID: business id=%d not found", id)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("GetByID: failed to get business id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}

// List возвращает каталог бизнесов (публичный доступ), отсортированный по ID
func (s *Service) List(ctx context.Context, req *models.ListRequest) ([]*domain.Business, error) {
	businesses, err := s.businessRepo.List(ctx, domain.BusinessesFilter{
		Search:   req.Search,
		Category: strings.TrimSpace(req.Category),
	})
	if err != nil {
		s.logger.Error("List: failed to list businesses: %v", err)
		return nil, fmt.Errorf("%w: failed to list businesses: %v", ErrInternal, err)
	}
	return businesses, nil
}

// ListAll постраничный список бизнесов для администратора
func (s *Service) ListAll(ctx context.Context, principal domain.Principal, req *models.ListAllRequest) (*models.BusinessesPage, error) {
	s.logger.Info("ListAll: requested by user=%d", principal.ID)

	if !policy.CanAct(principal, policy.ListAllBusinesses, policy.Resource{}) {
		s.logger.Warn("ListAll: user=%d is not an admin", principal.ID)
		return nil, ErrAccessDenied
	}

	page, limit, err := normalizePage(req.Page, req.Limit)
	if err != nil {
		return nil, err
	}

	filter := domain.BusinessesFilter{
		Search:   req.Search,
		Category: strings.TrimSpace(req.Category),
		OwnerID:  req.OwnerID,
	}

	var (
		total      int
		businesses []*domain.Business
	)

	// Количество и страница из одного снимка
	err = s.txManager.DoReadOnly(ctx, func(txCtx context.Context) error {
		var err error
		total, err = s.businessRepo.Count(txCtx, filter)
		if err != nil {
			s.logger.Error("ListAll: failed to count businesses: %v", err)
			return fmt.Errorf("%w: failed to count businesses: %v", ErrInternal, err)
		}

		filter.Limit = limit
		filter.Offset = (page - 1) * limit

		businesses, err = s.businessRepo.List(txCtx, filter)
		if err != nil {
			s.logger.Error("ListAll: failed to list businesses: %v", err)
			return fmt.Errorf("%w: failed to list businesses: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.BusinessesPage{
		Total:      total,
		Page:       page,
		Limit:      limit,
		Businesses: businesses,
	}, nil
}

// Update меняет профиль, рабочие часы или длительность слота.
// Доступно владельцу и администратору. Существующие бронирования не пересматриваются.
// Чтение и запись идут в одной транзакции с блокировкой строки.
func (s *Service) Update(ctx context.Context, principal domain.Principal, req *models.UpdateBusinessRequest) (*domain.Business, error) {
	s.logger.Info("Update: business id=%d by user=%d", req.ID, principal.ID)

	var updated *domain.Business
	err := s.txManager.Do(ctx, func(txCtx context.Context) error {
		business, err := s.businessRepo.GetByIDForUpdate(txCtx, req.ID)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				s.logger.Warn("Update: business id=%d not found", req.ID)
				return ErrBusinessNotFound
			}
			s.logger.Error("Update: failed to get business id=%d: %v", req.ID, err)
			return fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
		}

		if !policy.CanAct(principal, policy.UpdateBusiness, policy.Resource{OwnerID: business.OwnerID}) {
			s.logger.Warn("Update: user=%d is not allowed to update business=%d", principal.ID, business.ID)
			return ErrAccessDenied
		}

		if err := applyUpdate(business, req); err != nil {
			s.logger.Warn("Update: validation failed: %v", err)
			return err
		}

		updated, err = s.businessRepo.Update(txCtx, business)
		if err != nil {
			if errors.Is(err, businessRepo.ErrBusinessNotFound) {
				return ErrBusinessNotFound
			}
			s.logger.Error("Update: failed to update business id=%d: %v", business.ID, err)
			return fmt.Errorf("%w: failed to update business: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Update: business id=%d updated (hours=%q, duration=%d, active=%t)",
		updated.ID, updated.WorkingHours, updated.SlotDurationMinutes, updated.IsActive)
	return updated, nil
}

// applyUpdate проверяет переданные поля запроса и переносит их в бизнес.
// Непереданные поля не проверяются, сохранённые значения остаются как есть.
func applyUpdate(business *domain.Business, req *models.UpdateBusinessRequest) error {
	text := []struct {
		dst      *string
		src      *string
		validate func(string) error
	}{
		{&business.Name, req.Name, validateName},
		{&business.Description, req.Description, lengthCheck("description", domain.MaxDescriptionLength)},
		{&business.Category, req.Category, lengthCheck("category", domain.MaxCategoryLength)},
		{&business.Address, req.Address, lengthCheck("address", domain.MaxAddressLength)},
		{&business.Phone, req.Phone, lengthCheck("phone", domain.MaxPhoneLength)},
		{&business.Email, req.Email, validateEmail},
		{&business.WorkingHours, req.WorkingHours, validateWorkingHours},
	}
	for _, f := range text {
		if f.src == nil {
			continue
		}
		value := strings.TrimSpace(*f.src)
		if err := f.validate(value); err != nil {
			return err
		}
		*f.dst = value
	}

	if req.SlotDurationMinutes != nil {
		if err := validateSlotDuration(*req.SlotDurationMinutes); err != nil {
			return err
		}
		business.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.IsActive != nil {
		business.IsActive = *req.IsActive
	}
	return nil
}

// Delete удаляет бизнес вместе с бронированиями. Только администратор.
func (s *Service) Delete(ctx context.Context, principal domain.Principal, id int64) error {
	s.logger.Info("Delete: business id=%d by user=%d", id, principal.ID)

	if !policy.CanAct(principal, policy.DeleteBusiness, policy.Resource{}) {
		s.logger.Warn("Delete: user=%d is not an admin", principal.ID)
		return ErrAccessDenied
	}

	if err := s.businessRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, businessRepo.ErrBusinessNotFound) {
			s.logger.Warn("Delete: business id=%d not found", id)
			return ErrBusinessNotFound
		}
		s.logger.Error("Delete: failed to delete business id=%d: %v", id, err)
		return fmt.Errorf("%w: failed to delete business: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: business id=%d deleted", id)
	return nil
}
