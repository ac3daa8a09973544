package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/appointment-booking/internal/domain"
)

func TestCanAct(t *testing.T) {
	const (
		ownerID     = int64(10)
		requesterID = int64(20)
		strangerID  = int64(30)
		adminID     = int64(99)
	)

	owner := domain.Principal{ID: ownerID, Role: domain.RoleBusiness}
	requester := domain.Principal{ID: requesterID, Role: domain.RoleUser}
	stranger := domain.Principal{ID: strangerID, Role: domain.RoleUser}
	otherBusiness := domain.Principal{ID: strangerID, Role: domain.RoleBusiness}
	admin := domain.Principal{ID: adminID, Role: domain.RoleAdmin}

	booking := Resource{OwnerID: ownerID, RequesterID: requesterID}
	business := Resource{OwnerID: ownerID}

	tests := []struct {
		name      string
		principal domain.Principal
		action    Action
		resource  Resource
		want      bool
	}{
		{"requester views own booking", requester, ViewBooking, booking, true},
		{"owner views business booking", owner, ViewBooking, booking, true},
		{"admin views any booking", admin, ViewBooking, booking, true},
		{"stranger cannot view", stranger, ViewBooking, booking, false},
		{"other business cannot view", otherBusiness, ViewBooking, booking, false},

		{"requester cancels own booking", requester, CancelBooking, booking, true},
		{"owner cancels business booking", owner, CancelBooking, booking, true},
		{"admin cancels any booking", admin, CancelBooking, booking, true},
		{"stranger cannot cancel", stranger, CancelBooking, booking, false},

		{"owner updates status", owner, UpdateBookingStatus, booking, true},
		{"admin updates status", admin, UpdateBookingStatus, booking, true},
		{"requester cannot update status", requester, UpdateBookingStatus, booking, false},

		{"owner lists business bookings", owner, ListBusinessBookings, business, true},
		{"admin lists business bookings", admin, ListBusinessBookings, business, true},
		{"other business cannot list", otherBusiness, ListBusinessBookings, business, false},

		{"admin lists all", admin, ListAllBookings, Resource{}, true},
		{"owner cannot list all", owner, ListAllBookings, Resource{}, false},

		{"business role creates business", otherBusiness, CreateBusiness, Resource{}, true},
		{"admin creates business", admin, CreateBusiness, Resource{}, true},
		{"user cannot create business", requester, CreateBusiness, Resource{}, false},

		{"owner updates business", owner, UpdateBusiness, business, true},
		{"other business cannot update", otherBusiness, UpdateBusiness, business, false},

		{"admin deletes business", admin, DeleteBusiness, business, true},
		{"owner cannot delete business", owner, DeleteBusiness, business, false},

		{"admin lists all businesses", admin, ListAllBusinesses, Resource{}, true},
		{"owner cannot list all businesses", owner, ListAllBusinesses, Resource{}, false},

		{"unknown action denied", admin, Action("booking:teleport"), booking, false},
		{"anonymous principal denied", domain.Principal{}, ViewBooking, Resource{}, false},
		{"zero ids never match", domain.Principal{ID: 0, Role: domain.RoleUser}, ViewBooking, Resource{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanAct(tt.principal, tt.action, tt.resource))
		})
	}
}
