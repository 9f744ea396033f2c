package auth

// Identity is the verified caller of a request. The zero value is anonymous.
type Identity struct {
	UserID  string
	Email   string
	Name    string
	Picture string
}

// Anonymous reports whether no user was established for the request.
func (i Identity) Anonymous() bool {
	return i.UserID == ""
}
