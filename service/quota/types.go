package quota

// Quota math is pure; the service carries no state.
type service struct{}
