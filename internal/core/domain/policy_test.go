package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReservationPolicies(t *testing.T) {
	admin := Principal{ID: 1, Role: RoleAdmin}
	owner := Principal{ID: 2, Role: RolePassenger}
	other := Principal{ID: 3, Role: RolePassenger}

	assert.False(t, CanCreateReservation(admin))
	assert.True(t, CanCreateReservation(owner))

	assert.True(t, CanActOnReservation(admin, owner.ID))
	assert.True(t, CanActOnReservation(owner, owner.ID))
	assert.False(t, CanActOnReservation(other, owner.ID))

	assert.True(t, CanOverrideReservationStatus(admin))
	assert.False(t, CanOverrideReservationStatus(owner))
}

func TestTicketPolicies(t *testing.T) {
	admin := Principal{ID: 1, Role: RoleAdmin}
	owner := Principal{ID: 2, Role: RolePassenger}
	other := Principal{ID: 3, Role: RolePassenger}

	assert.True(t, CanIssueTicket(admin, owner.ID))
	assert.True(t, CanIssueTicket(owner, owner.ID))
	assert.False(t, CanIssueTicket(other, owner.ID))

	assert.True(t, CanOperateTicket(admin))
	assert.False(t, CanOperateTicket(owner))
}

func TestCataloguePolicies(t *testing.T) {
	admin := Principal{ID: 1, Role: RoleAdmin}
	passenger := Principal{ID: 2, Role: RolePassenger}

	assert.True(t, CanManageCatalogue(admin))
	assert.False(t, CanManageCatalogue(passenger))

	assert.True(t, CanViewUser(admin, passenger.ID))
	assert.True(t, CanViewUser(passenger, passenger.ID))
	assert.False(t, CanViewUser(passenger, admin.ID))
}

func TestEnumValidation(t *testing.T) {
	tests := []struct {
		name  string
		valid bool
		check func() bool
	}{
		{"role admin", true, Role("ADMIN").Valid},
		{"role lowercase", false, Role("admin").Valid},
		{"role empty", false, Role("").Valid},
		{"flight scheduled", true, FlightStatus("scheduled").Valid},
		{"flight boarding", false, FlightStatus("boarding").Valid},
		{"seat class first", true, SeatClass("first").Valid},
		{"seat class cargo", false, SeatClass("cargo").Valid},
		{"occupancy maintenance", true, SeatOccupancy("maintenance").Valid},
		{"occupancy blocked", false, SeatOccupancy("blocked").Valid},
		{"reservation pending", true, ReservationStatus("P").Valid},
		{"reservation lowercase", false, ReservationStatus("p").Valid},
		{"reservation unknown", false, ReservationStatus("Z").Valid},
		{"ticket used", true, TicketStatus("used").Valid},
		{"ticket refunded", false, TicketStatus("refunded").Valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.check())
		})
	}
}
