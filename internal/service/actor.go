package service

// Actor describes who is making a request. It is resolved once per request by
// the auth middleware and passed explicitly, rather than read off a mutable
// user entity during validation.
type Actor struct {
	UserID uint
	Admin  bool
	Worker bool
}

// CanActFor reports whether the actor may create or view bookings on behalf
// of the given customer.
func (a Actor) CanActFor(customerID uint) bool {
	return a.Admin || a.UserID == customerID
}
