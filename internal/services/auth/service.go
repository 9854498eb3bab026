package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAdminDisabled      = errors.New("no admin account configured")
)

// Config holds the single admin account
type Config struct {
	Username string
	// PasswordHash is a bcrypt hash of the admin password
	PasswordHash string
}

// Service checks admin credentials
type Service struct {
	username     string
	passwordHash []byte
}

// New creates a new auth service
func New(cfg Config) *Service {
	return &Service{
		username:     cfg.Username,
		passwordHash: []byte(cfg.PasswordHash),
	}
}

// Enabled reports whether an admin account is configured
func (s *Service) Enabled() bool {
	return s.username != "" && len(s.passwordHash) > 0
}

// Authenticate checks a username and password against the admin account
func (s *Service) Authenticate(username, password string) error {
	if !s.Enabled() {
		return ErrAdminDisabled
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	// bcrypt runs for unknown usernames too
	passErr := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword returns the bcrypt hash to put into the admin configuration
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
