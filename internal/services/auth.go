package services

import (
	"context"
	"errors"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/models"
	"github.com/mediavault/mediavault-backend/pkg/utils"
)

// CredentialLookup reads the credential document for an email, password
// hash included. The authenticator is its only consumer.
type CredentialLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// ProfileLookup reads the profile for an email with the password hash
// projected out.
type ProfileLookup interface {
	GetProfile(ctx context.Context, email string) (*models.User, error)
}

// LoginResult is a profile plus the access token minted for it. The token
// is never persisted.
type LoginResult struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
}

// AuthService orchestrates login. It assumes the email was already
// normalized (lowercased, trimmed) at the data-entry boundary.
type AuthService struct {
	creds    CredentialLookup
	profiles ProfileLookup
	tokens   *TokenService
}

func NewAuthService(creds CredentialLookup, profiles ProfileLookup, tokens *TokenService) *AuthService {
	return &AuthService{creds: creds, profiles: profiles, tokens: tokens}
}

// Login verifies the credential, loads the profile and issues an access
// token. An unknown email and a wrong password both return
// common.ErrInvalidCredentials so the response never reveals whether the
// account exists.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.creds.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if user.Password == "" || !utils.VerifyPassword(password, user.Password) {
		return nil, common.ErrInvalidCredentials
	}

	profile, err := s.profiles.GetProfile(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			// Credential exists but the profile read came back empty: a
			// data-consistency fault, reported distinctly.
			return nil, common.ErrProfileNotFound
		}
		return nil, err
	}

	accessToken, err := s.tokens.IssueAccessToken(profile)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: profile, AccessToken: accessToken}, nil
}
