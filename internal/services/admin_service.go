package services

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// AdminToken is returned on every successful admin login.
const AdminToken = "admin-token"

// ErrInvalidPassword is returned when the admin password does not match.
var ErrInvalidPassword = errors.New("invalid password")

// AdminService checks the shared admin secret.
type AdminService struct {
	passwordHash []byte
}

// NewAdminService hashes the configured secret so the plain value is not
// kept in memory.
func NewAdminService(password string) (*AdminService, error) {
	hash, err := bcrypt.GenerateFromPassword(prehash(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash admin password: %w", err)
	}
	return &AdminService{passwordHash: hash}, nil
}

// prehash keeps secrets of any length under bcrypt's 72 byte input limit.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return []byte(hex.EncodeToString(sum[:]))
}

// Login returns the static admin token when password matches the secret.
func (s *AdminService) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, prehash(password)); err != nil {
		return "", ErrInvalidPassword
	}
	return AdminToken, nil
}
