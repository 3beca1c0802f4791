package service

import (
	"context"
	"strings"
	"sync"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/xxxsen/remindme/internal/model"
	appErr "github.com/xxxsen/remindme/internal/pkg/errors"
	"github.com/xxxsen/remindme/internal/pkg/jwt"
	"github.com/xxxsen/remindme/internal/pkg/password"
	"github.com/xxxsen/remindme/internal/pkg/validate"
)

// bcrypt ignores input past 72 bytes.
const maxPasswordBytes = 72

type RegisterInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AuthService struct {
	users  UserStore
	tokens *jwt.Manager

	dummyOnce sync.Once
	dummyHash string
}

func NewAuthService(users UserStore, tokens *jwt.Manager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)
	if err := validate.Struct(in); err != nil {
		return nil, "", err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, "", appErr.Invalid("password", "password: must be at most 72 bytes")
	}
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, "", appErr.ErrUserExists
	} else if !appErr.IsNotFound(err) {
		return nil, "", err
	}
	hash, err := password.Hash(in.Password)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if appErr.IsConflict(err) {
			return nil, "", appErr.ErrUserExists
		}
		return nil, "", err
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	logutil.GetLogger(ctx).Info("user registered", zap.Int64("user_id", user.ID))
	return user, token, nil
}

func (s *AuthService) Login(ctx context.Context, in LoginInput) (*model.User, string, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate.Struct(in); err != nil {
		return nil, "", err
	}
	if len(in.Password) > maxPasswordBytes {
		return nil, "", appErr.ErrInvalidCredentials
	}
	user, err := s.users.GetByEmail(ctx, in.Email)
	if err != nil {
		if !appErr.IsNotFound(err) {
			return nil, "", err
		}
		// keep the unknown-email path as slow as a real comparison
		_, _ = password.Verify(s.placeholderHash(), in.Password)
		return nil, "", appErr.ErrInvalidCredentials
	}
	ok, err := password.Verify(user.PasswordHash, in.Password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		logutil.GetLogger(ctx).Debug("login rejected", zap.Int64("user_id", user.ID))
		return nil, "", appErr.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *AuthService) placeholderHash() string {
	s.dummyOnce.Do(func() {
		hash, err := password.Hash("remindme-placeholder-password")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}
