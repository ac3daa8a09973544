package models

import "github.com/m04kA/appointment-booking/internal/domain"

// ListMineRequest фильтры списка собственных бронирований
type ListMineRequest struct {
	Status     *string // pending | confirmed | cancelled
	BusinessID *int64
}

// ListBusinessRequest фильтры списка бронирований бизнеса
type ListBusinessRequest struct {
	BusinessID int64
	Status     *string
	Date       *string // YYYY-MM-DD
}

// ListAllRequest параметры административного списка
type ListAllRequest struct {
	Page       int // с 1; 0 = первая страница
	Limit      int // 0 = значение по умолчанию
	BusinessID *int64
	UserID     *int64
	Status     *string
	DateFrom   *string // YYYY-MM-DD, включительно
	DateTo     *string // YYYY-MM-DD, включительно
}

// BookingsPage страница административного списка
type BookingsPage struct {
	Total    int
	Page     int
	Limit    int
	Bookings []*domain.Booking
}
