package auth

import "github.com/asvabprep/backend/internal/domain"

// AuthResult is returned by Register, Login and Refresh.
// RefreshToken carries the raw token for the client; only its hash is stored.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         *domain.User
}
