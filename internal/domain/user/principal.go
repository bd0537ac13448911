package user

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
