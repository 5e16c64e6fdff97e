package service

import (
	"context"
	"fmt"

	"github.com/portfolio-api/internal/auth"
	"github.com/portfolio-api/internal/models"
	"github.com/portfolio-api/internal/repository"
	"github.com/portfolio-api/internal/validation"
	"github.com/rs/zerolog"
)

// authService is the concrete implementation of AuthService
type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
	log    zerolog.Logger

	// compared against when the email is unknown so both failures cost a bcrypt check
	dummyHash string
}

func newAuthService(users repository.UserRepository, tokens *auth.TokenManager, log zerolog.Logger) *authService {
	dummyHash, _ := auth.HashPassword("portfolio-api-unknown-user")
	return &authService{
		users:     users,
		tokens:    tokens,
		log:       log.With().Str("service", "auth").Logger(),
		dummyHash: dummyHash,
	}
}

// Login verifies credentials and issues a bearer token.
// Unknown email and wrong password both return ErrInvalidCredentials.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if errs := validation.ValidateLogin(req); len(errs) > 0 {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		auth.CheckPassword(s.dummyHash, req.Password)
		s.log.Warn().Msg("Login failed")
		return nil, ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.log.Warn().Str("user_id", user.ID).Msg("Login failed")
		return nil, ErrInvalidCredentials
	}

	token, expires, err := s.tokens.Issue(auth.Principal{UserID: user.ID, Username: user.Username})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("User logged in")
	return &models.LoginResponse{Token: token, Expiration: expires.UTC()}, nil
}

// Authenticate validates a bearer token and returns the caller
func (s *authService) Authenticate(token string) (auth.Principal, error) {
	p, err := s.tokens.Validate(token)
	if err != nil {
		return auth.Principal{}, &Error{Kind: ErrUnauthorized, Message: "invalid or expired token", Err: err}
	}
	return p, nil
}
