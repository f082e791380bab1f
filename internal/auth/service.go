package auth

import (
	"context"
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/assetdesk/assetdesk/internal/shared"
)

// Service wraps authentication business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Login validates username/password credentials and returns the stored role.
// The stored secret is compared exactly; values carrying a bcrypt prefix are
// verified with bcrypt instead, so accounts can be rehashed without a schema
// change. Failures collapse into ErrInvalidCredentials regardless of cause.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return "", shared.ErrInvalidCredentials
	}
	if !secretMatches(user.Secret, password) {
		return "", shared.ErrInvalidCredentials
	}
	return user.Role, nil
}

func secretMatches(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}
