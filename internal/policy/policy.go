// Package policy decides whether a principal may perform an action on a
// booking or business. It is pure: callers load the resource first and
// pass the ownership facts in.
package policy

import "github.com/m04kA/appointment-booking/internal/domain"

// Action is an operation subject to authorization
type Action string

const (
	ViewBooking          Action = "booking:view"
	CancelBooking        Action = "booking:cancel"
	UpdateBookingStatus  Action = "booking:update_status"
	ListBusinessBookings Action = "business:list_bookings"
	ListAllBookings      Action = "bookings:list_all"
	CreateBusiness       Action = "business:create"
	UpdateBusiness       Action = "business:update"
	DeleteBusiness       Action = "business:delete"
	ListAllBusinesses    Action = "businesses:list_all"
)

// Resource carries the ownership facts an action is checked against.
// OwnerID is the owner of the business involved; RequesterID is the user
// who made the booking (zero for business-level actions).
type Resource struct {
	OwnerID     int64
	RequesterID int64
}

// CanAct reports whether p may perform action on res. Unknown actions are denied.
func CanAct(p domain.Principal, action Action, res Resource) bool {
	if p.ID <= 0 {
		return false
	}

	isOwner := res.OwnerID > 0 && res.OwnerID == p.ID
	isRequester := res.RequesterID > 0 && res.RequesterID == p.ID

	switch action {
	case ViewBooking, CancelBooking:
		return p.IsAdmin() || isRequester || isOwner
	case UpdateBookingStatus, ListBusinessBookings, UpdateBusiness:
		return p.IsAdmin() || isOwner
	case CreateBusiness:
		return p.IsAdmin() || p.Role == domain.RoleBusiness
	case ListAllBookings, DeleteBusiness, ListAllBusinesses:
		return p.IsAdmin()
	default:
		return false
	}
}
