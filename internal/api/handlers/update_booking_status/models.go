package update_booking_status

// UpdateStatusRequest HTTP модель запроса
type UpdateStatusRequest struct {
	Status string `json:"status"` // pending | confirmed | cancelled
}
