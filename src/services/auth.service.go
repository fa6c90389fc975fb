package services

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"hbs/src/apperrors"
	"hbs/src/models"
	"hbs/src/repositories"
	"hbs/src/types"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	MIN_PASSWORD_LENGTH = 6
	TOKEN_TTL           = 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*types.RegisteredUser, error)
	Login(ctx context.Context, email, password string) (string, error)
}

type authService struct {
	users     repositories.UserRepository
	jwtSecret []byte
	validate  *validator.Validate
}

func NewAuthService(users repositories.UserRepository, jwtSecret []byte) AuthService {
	return &authService{
		users:     users,
		jwtSecret: jwtSecret,
		validate:  validator.New(),
	}
}

func (s *authService) Register(ctx context.Context, name, email, password string) (*types.RegisteredUser, error) {
	if name == "" || email == "" || password == "" {
		return nil, apperrors.Validation("name, email and password are required")
	}
	if err := s.validate.Var(email, "email"); err != nil {
		return nil, apperrors.Validation("invalid email format")
	}
	if len(password) < MIN_PASSWORD_LENGTH {
		return nil, apperrors.Validation("password must be at least 6 characters")
	}

	_, err := s.users.FindByEmail(ctx, email)
	if err == nil {
		return nil, apperrors.Conflict("email already registered")
	}
	if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.Internal("failed to look up email", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.Internal("failed to hash password", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, &user); err != nil {
		// The unique index on email is the arbiter when two registrations race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Conflict("email already registered")
		}
		return nil, apperrors.Internal("failed to create user", err)
	}
	log.Printf("Registered user [%d] %s\n", user.ID, user.Email)

	return &types.RegisteredUser{
		UserID: user.ID,
		Name:   user.Name,
		Email:  user.Email,
	}, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", apperrors.Unauthorized("invalid email or password")
		}
		return "", apperrors.Internal("failed to look up email", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.Unauthorized("invalid email or password")
	}

	now := time.Now()
	claims := types.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TOKEN_TTL)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", apperrors.Internal("failed to sign token", err)
	}
	return token, nil
}
