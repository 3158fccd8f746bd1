package service

import (
	"context"
	"errors"
	"strings"

	"github.com/vinayaksoni1729/TaskX/internal/model"
	"github.com/vinayaksoni1729/TaskX/internal/repo"
	"github.com/vinayaksoni1729/TaskX/pkg/auth"
)

// Ошибки аутентификации с дружелюбным текстом для формы входа
var (
	ErrAccountNotFound = errors.New("account not found")
	ErrWrongPassword   = errors.New("incorrect password")
	ErrEmailTaken      = errors.New("email already in use")
)

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

type AuthService struct {
	users  repo.UserRepository
	tokens *auth.TokenManager
}

func NewAuthService(users repo.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) SignUp(ctx context.Context, email, password, displayName string) (model.User, TokenPair, error) {
	if err := auth.ValidateEmail(email); err != nil {
		return model.User{}, TokenPair{}, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	if displayName == "" {
		// Как в исходной форме: имя по умолчанию — локальная часть email
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	user, err := s.users.Create(ctx, model.User{
		Email:        email,
		DisplayName:  displayName,
		PasswordHash: hash,
		AuthProvider: model.ProviderEmail,
	})
	if errors.Is(err, repo.ErrorConflict) {
		return model.User{}, TokenPair{}, ErrEmailTaken
	}
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	return user, pair, err
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (model.User, TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, TokenPair{}, ErrAccountNotFound
	}
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	if user.PasswordHash == "" || auth.ComparePassword(user.PasswordHash, password) != nil {
		return model.User{}, TokenPair{}, ErrWrongPassword
	}

	pair, err := s.issuePair(user)
	return user, pair, err
}

// OAuthSignIn завершает вход через внешнего провайдера:
// профиль создается или обновляется по email
func (s *AuthService) OAuthSignIn(ctx context.Context, email, displayName, provider string) (model.User, TokenPair, error) {
	user, err := s.users.UpsertProvider(ctx, model.User{
		Email:        email,
		DisplayName:  displayName,
		AuthProvider: provider,
	})
	if err != nil {
		return model.User{}, TokenPair{}, err
	}

	pair, err := s.issuePair(user)
	return user, pair, err
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, repo.ErrorNotFound) {
		return TokenPair{}, ErrAccountNotFound
	}
	if err != nil {
		return TokenPair{}, err
	}

	return s.issuePair(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrorNotFound) {
		return model.User{}, ErrAccountNotFound
	}
	return user, err
}

func (s *AuthService) issuePair(user model.User) (TokenPair, error) {
	access, refresh, expiresIn, err := s.tokens.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh, ExpiresIn: expiresIn}, nil
}
