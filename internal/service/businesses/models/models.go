package models

import "github.com/m04kA/appointment-booking/internal/domain"

// CreateBusinessRequest запрос на создание бизнеса
type CreateBusinessRequest struct {
	Name                string
	Description         string
	Category            string
	Address             string
	Phone               string
	Email               string
	WorkingHours        string // "HH:MM-HH:MM"; пустая строка = слотов нет
	SlotDurationMinutes int    // 0 = значение по умолчанию
	IsActive            *bool  // nil = активен
}

// UpdateBusinessRequest запрос на обновление бизнеса.
// Все поля опциональны - обновляются только переданные значения.
type UpdateBusinessRequest struct {
	ID                  int64
	Name                *string
	Description         *string
	Category            *string
	Address             *string
	Phone               *string
	Email               *string
	WorkingHours        *string
	SlotDurationMinutes *int
	IsActive            *bool
}

// ListRequest фильтр публичного каталога
type ListRequest struct {
	Search   string
	Category string
}

// ListAllRequest параметры административного списка бизнесов
type ListAllRequest struct {
	Page     int
	Limit    int
	Search   string
	Category string
	OwnerID  *int64
}

// BusinessesPage страница бизнесов с общим количеством
type BusinessesPage struct {
	Total      int
	Page       int
	Limit      int
	Businesses []*domain.Business
}
