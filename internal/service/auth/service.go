package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/repository"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/security"
)

// Service authenticates users and issues JWTs carrying the app role.
type Service struct {
	users  repository.UserRepository
	hasher security.PasswordHasher
	secret []byte
	expiry time.Duration
}

func NewService(users repository.UserRepository, secret string, expiryHours int) *Service {
	if expiryHours <= 0 {
		expiryHours = 24
	}
	return &Service{
		users:  users,
		hasher: security.NewBcryptHasher(0),
		secret: []byte(secret),
		expiry: time.Duration(expiryHours) * time.Hour,
	}
}

type claims struct {
	UserID string        `json:"user_id"`
	Email  string        `json:"email"`
	Role   model.AppRole `json:"role"`
	jwt.RegisteredClaims
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.Unauthorized(err)
		}
		return nil, apperrors.Internal(err)
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	token, err := s.issueToken(user)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	return &LoginResponse{Token: token, User: user}, nil
}

// UpdateUserRole changes a user's role; restricted to ADMIN at the route level.
func (s *Service) UpdateUserRole(ctx context.Context, id uuid.UUID, role model.AppRole) error {
	if err := s.users.UpdateRole(ctx, id, role); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

func (s *Service) GetUser(ctx context.Context, id uuid.UUID) (*model.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user", err)
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *Service) issueToken(user *model.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	})
	return token.SignedString(s.secret)
}

// VerifyToken parses and validates a bearer token, returning the claims used
// by the auth middleware.
func (s *Service) VerifyToken(tokenString string) (*model.TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, apperrors.Unauthorized(err)
	}

	tokenClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid token"))
	}

	userID, err := uuid.Parse(tokenClaims.UserID)
	if err != nil {
		return nil, apperrors.Unauthorized(fmt.Errorf("invalid user id in token"))
	}

	return &model.TokenClaims{
		UserID: userID,
		Email:  tokenClaims.Email,
		Role:   tokenClaims.Role,
	}, nil
}
