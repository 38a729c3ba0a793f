package domain

// Access policy predicates: pure functions over (principal, target), no
// side effects. Every mutating service call consults one of these before
// touching the store; route-level role middleware is only a first gate.

// CanCreateReservation reports whether the principal may open a reservation.
// Only passengers book; admins manage, they do not fly on their own counter.
func CanCreateReservation(p Principal) bool {
	return p.IsPassenger()
}

// CanActOnReservation reports whether the principal may mutate a
// reservation owned by passengerID (seat selection, viewing detail).
func CanActOnReservation(p Principal, passengerID uint) bool {
	return p.IsAdmin() || p.ID == passengerID
}

// CanOverrideReservationStatus reports whether the principal may force a
// reservation status transition outside the normal booking flow.
func CanOverrideReservationStatus(p Principal) bool {
	return p.IsAdmin()
}

// CanIssueTicket reports whether the principal may request ticket issuance
// for a reservation owned by passengerID.
func CanIssueTicket(p Principal, passengerID uint) bool {
	return p.IsAdmin() || p.ID == passengerID
}

// CanOperateTicket reports whether the principal may check in or void a
// ticket. Gate operations are staff-side.
func CanOperateTicket(p Principal) bool {
	return p.IsAdmin()
}

// CanManageCatalogue reports whether the principal may create, update or
// delete aircraft and flights.
func CanManageCatalogue(p Principal) bool {
	return p.IsAdmin()
}

// CanViewUser reports whether the principal may read the user record with
// the given id.
func CanViewUser(p Principal, userID uint) bool {
	return p.IsAdmin() || p.ID == userID
}
