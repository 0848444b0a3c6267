package services

import (
	"context"
	"errors"

	"github.com/mediavault/mediavault-backend/internal/common"
	"github.com/mediavault/mediavault-backend/internal/models"
	"github.com/mediavault/mediavault-backend/pkg/utils"
)

// UserStore is the persistence port for user accounts.
type UserStore interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	GetProfile(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	List(ctx context.Context, skip, take int64) ([]*models.User, int64, error)
}

// UserPage is one page of users plus the total non-deleted count.
type UserPage struct {
	TotalCount int64          `json:"total_count"`
	Items      []*models.User `json:"items"`
}

// VerificationIssue is a freshly minted verification token and the
// one-time code embedded in it. Delivering the code to the user (email,
// SMS) is someone else's job.
type VerificationIssue struct {
	Token string `json:"token"`
	OTP   string `json:"otp"`
}

type UserService struct {
	store  UserStore
	tokens *TokenService
}

func NewUserService(store UserStore, tokens *TokenService) *UserService {
	return &UserService{store: store, tokens: tokens}
}

// Signup creates an account. The email must already be normalized; a
// duplicate reports common.ErrEmailExists. The stored document carries
// only the bcrypt hash, and the returned user has the hash cleared.
func (s *UserService) Signup(ctx context.Context, name, email, password string) (*models.User, error) {
	_, err := s.store.FindByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrEmailExists
	}
	if !errors.Is(err, common.ErrUserNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user, err := s.store.Create(ctx, &models.User{
		Name:     name,
		Email:    email,
		Password: hash,
	})
	if err != nil {
		return nil, err
	}

	user.Password = ""
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.store.FindByID(ctx, id)
}

// List returns a page of users. skip/take are normalized the same way for
// every pageable listing.
func (s *UserService) List(ctx context.Context, skip, take int64) (*UserPage, error) {
	skip, take = utils.HandlePagination(skip, take)

	items, total, err := s.store.List(ctx, skip, take)
	if err != nil {
		return nil, err
	}
	return &UserPage{TotalCount: total, Items: items}, nil
}

// IssueVerification generates a verifyUser one-time code for the account
// behind email and binds it into a short-lived verification token.
func (s *UserService) IssueVerification(ctx context.Context, email string) (*VerificationIssue, error) {
	profile, err := s.store.GetProfile(ctx, email)
	if err != nil {
		return nil, err
	}

	otp, err := utils.GenerateOTP(utils.OTPVerifyUser)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.IssueVerificationToken(profile, otp)
	if err != nil {
		return nil, err
	}

	return &VerificationIssue{Token: token, OTP: otp}, nil
}
