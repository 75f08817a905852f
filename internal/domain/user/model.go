package user

// Principal identifies the authenticated caller on mutating routes.
type Principal struct {
	UserID string
	Email  string
}
