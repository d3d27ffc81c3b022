package models

// User is the authenticated session held for the duration of a login.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UserAccount is the read-only progress projection shown to admins.
type UserAccount struct {
	ID           int64   `json:"id"`
	Username     string  `json:"username"`
	CreatedAt    string  `json:"createdAt"`
	CardsLearned int     `json:"cardsLearned"`
	TotalCards   int     `json:"totalCards"`
	Progress     float64 `json:"progress"`
}

// AuthMode selects between logging in and registering.
type AuthMode string

const (
	AuthLogin    AuthMode = "login"
	AuthRegister AuthMode = "register"
)

// ParseAuthMode defaults to login for anything other than "register".
func ParseAuthMode(s string) AuthMode {
	if AuthMode(s) == AuthRegister {
		return AuthRegister
	}
	return AuthLogin
}
