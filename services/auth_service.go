//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"fmt"
	"forum-lab/auth"
	"forum-lab/domain"
	"forum-lab/errors"
	"forum-lab/infrastructure/storage"
	"strings"
	"time"

	"github.com/google/uuid"
)

var defaultRoles = []string{"user"}

type IAuthService interface {
	Login(email, password string) (string, error)
	Register(email, password, username string) (string, error)
}

type AuthService struct {
	userRepository storage.IUserRepository
	issuer         *auth.TokenIssuer
}

func NewAuthService(repo storage.IUserRepository, issuer *auth.TokenIssuer) IAuthService {
	return &AuthService{userRepository: repo, issuer: issuer}
}

func (s *AuthService) Register(email, password, username string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	// 1. Validate business rules before any expensive cryptographic operation
	if err := auth.ValidateRegister(auth.RegisterRequest{Email: email, Password: password, Username: username}); err != nil {
		return "", err
	}

	// 2. Hash in the service layer so the repository never sees plain passwords
	hashedPassword, err := auth.HashPassword(password)
	if err != nil {
		return "", fmt.Errorf("hashing failed: %w", err)
	}

	// 3. Persist, ErrUserAlreadyExists propagates if the email is taken
	user := domain.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hashedPassword,
		Username:     username,
		Roles:        defaultRoles,
		CreatedAt:    time.Now().UTC(),
	}
	if err = s.userRepository.CreateUser(user); err != nil {
		return "", err
	}

	// 4. Initial session token
	token, err := s.issuer.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return token, nil
}

func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepository.GetUserByEmail(strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		// Generic error to prevent user enumeration
		return "", errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", errors.ErrInvalidCredentials
	}

	token, err := s.issuer.GenerateToken(user.ID, user.Roles)
	if err != nil {
		return "", errors.ErrTokenGeneration
	}
	return token, nil
}
