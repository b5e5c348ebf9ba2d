package models

// AdminAuthGate decides whether a session token belongs to an authorized admin.
type AdminAuthGate interface {
	Login(username, password string) (string, error)
	Authorized(token string) bool
}

// APIServer is the HTTP front of the service.
type APIServer interface {
	Start()
	Shutdown() error
}
