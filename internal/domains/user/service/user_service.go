package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"bookshelf-backend/internal/domains/user"
	"bookshelf-backend/pkg/jwt"
	"bookshelf-backend/pkg/logger"
)

const bcryptCost = 12

type userService struct {
	repo user.Repository
	jwt  *jwt.Manager
}

// NewUserService builds the account service.
func NewUserService(repo user.Repository, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo: repo,
		jwt:  jwtManager,
	}
}

func (s *userService) SignUp(ctx context.Context, req user.SignUpRequest) (*user.AuthResponse, error) {
	// DTO validation ran at the handler layer; re-check here so the
	// service is safe to call from other entry points.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newUser := &user.User{
		ID:             uuid.New(),
		Username:       req.Username,
		Email:          req.Email,
		HashedPassword: string(hashed),
		ImageURL:       user.DefaultImageURL,
		CreationDate:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, newUser); err != nil {
		return nil, err
	}

	token, err := s.jwt.GenerateAccessToken(newUser.ID.String(), newUser.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	logger.Info("account created", map[string]interface{}{
		"user_id":  newUser.ID.String(),
		"username": newUser.Username,
	})

	return &user.AuthResponse{
		AccessToken: token,
		User:        newUser.ToDTO(),
	}, nil
}

func (s *userService) SignIn(ctx context.Context, req user.SignInRequest) (*user.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		// Do not reveal whether the email is registered.
		return nil, user.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	token, err := s.jwt.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &user.AuthResponse{
		AccessToken: token,
		User:        u.ToDTO(),
	}, nil
}

func (s *userService) Profile(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) EditProfile(ctx context.Context, id uuid.UUID, req user.EditProfileRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Profile edits re-verify the account password.
	if err := bcrypt.CompareHashAndPassword([]byte(u.HashedPassword), []byte(req.Password)); err != nil {
		return nil, user.ErrIncorrectPassword
	}

	updated, err := s.repo.UpdateProfile(ctx, id, user.ProfilePatch{
		Username: req.Username,
		Email:    req.Email,
		Bio:      req.Bio,
		Location: req.Location,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	dto := updated.ToDTO()
	return &dto, nil
}

func (s *userService) DeleteAccount(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info("account deleted", map[string]interface{}{
		"user_id": id.String(),
	})

	return nil
}
