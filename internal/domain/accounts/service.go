package accounts

import (
	"context"

	"github.com/medrec/medrec/internal/platform/auth"
	"github.com/medrec/medrec/internal/platform/db"
	"github.com/medrec/medrec/internal/platform/web"
)

type Service struct {
	users      UserRepository
	issuer     *auth.Issuer
	bcryptCost int
}

func NewService(users UserRepository, issuer *auth.Issuer, bcryptCost int) *Service {
	return &Service{users: users, issuer: issuer, bcryptCost: bcryptCost}
}

// Register creates a new user account. Open to anonymous callers.
func (s *Service) Register(ctx context.Context, in *RegisterInput) error {
	if errs := in.Validate(); errs != nil {
		return errs
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return err
	}

	u := &User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	return s.users.Create(ctx, u)
}

// Login exchanges valid credentials for an access/refresh token pair. The
// same error is returned for an unknown username and a wrong password so
// the response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, in *LoginInput) (*auth.TokenPair, error) {
	if in.Username == "" || in.Password == "" {
		return nil, web.Unauthorized("no active account found with the given credentials")
	}

	u, err := s.users.GetByUsername(ctx, in.Username)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, web.Unauthorized("no active account found with the given credentials")
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, in.Password) {
		return nil, web.Unauthorized("no active account found with the given credentials")
	}

	return s.issuer.IssuePair(u.ID, u.Username)
}

// Refresh exchanges a valid refresh token for a new access token.
func (s *Service) Refresh(ctx context.Context, in *RefreshInput) (string, error) {
	if in.Refresh == "" {
		return "", web.Unauthorized("refresh token is required")
	}

	claims, err := s.issuer.VerifyRefresh(in.Refresh)
	if err != nil {
		return "", web.Unauthorized("token is invalid or expired")
	}

	// Re-check the account still exists before minting a new token.
	u, err := s.users.GetByID(ctx, claims.UserID())
	if err != nil {
		if db.IsNoRows(err) {
			return "", web.Unauthorized("token is invalid or expired")
		}
		return "", err
	}

	return s.issuer.IssueAccess(u.ID, u.Username)
}
