package services

import (
	"context"
	"strconv"
	"testing"

	"hbs/src/apperrors"
	"hbs/src/models"
	"hbs/src/repositories"
	"hbs/src/types"

	"github.com/go-faker/faker/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

var testJWTSecret = []byte("test-secret")

type fakeUserRepo struct {
	byEmail map[string]*models.User
	nextID  uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: map[string]*models.User{}}
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	f.byEmail[user.Email] = user
	return nil
}

func TestRegisterValidation(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret)

	cases := []struct {
		name     string
		user     string
		email    string
		password string
	}{
		{"empty name", "", "a@x.com", "secret1"},
		{"empty email", "A", "", "secret1"},
		{"empty password", "A", "a@x.com", ""},
		{"bad email format", "A", "not-an-email", "secret1"},
		{"short password", "A", "a@x.com", "five5"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.user, tc.email, tc.password)
			assert.Error(t, err)
			appErr := apperrors.AsAppError(err)
			assert.Equal(t, apperrors.CodeValidation, appErr.Code)
			assert.Equal(t, 422, appErr.StatusCode())
		})
	}
}

func TestRegisterHashesPasswordAndHidesHash(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, testJWTSecret)

	user, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")

	assert.NoError(t, err)
	assert.Equal(t, "A", user.Name)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotZero(t, user.UserID)

	stored := repo.byEmail["a@x.com"]
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secret1")))
}

func TestRegisterDuplicateEmailConflict(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret)

	name, email := faker.Name(), faker.Email()
	_, err := svc.Register(context.Background(), name, email, "secret1")
	assert.NoError(t, err)

	_, err = svc.Register(context.Background(), name, email, "secret1")
	assert.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeConflict, appErr.Code)
	assert.Equal(t, 409, appErr.StatusCode())
}

func TestLoginRoundTrip(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret)

	registered, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	assert.NoError(t, err)

	token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims := &types.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return testJWTSecret, nil
	})
	assert.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, strconv.FormatUint(uint64(registered.UserID), 10), claims.Subject)
	assert.Equal(t, "a@x.com", claims.Email)

	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	assert.Equal(t, TOKEN_TTL, expires.Sub(issued))
}

func TestLoginWrongPassword(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret)

	_, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	assert.NoError(t, err)

	_, err = svc.Login(context.Background(), "a@x.com", "wrong-password")
	assert.Error(t, err)
	appErr := apperrors.AsAppError(err)
	assert.Equal(t, apperrors.CodeUnauthorized, appErr.Code)
	assert.Equal(t, 401, appErr.StatusCode())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret)

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.Error(t, err)
	assert.Equal(t, 401, apperrors.AsAppError(err).StatusCode())
}

func TestLoginTokenRejectedWithOtherSecret(t *testing.T) {
	svc := NewAuthService(newFakeUserRepo(), testJWTSecret)

	_, err := svc.Register(context.Background(), "A", "a@x.com", "secret1")
	assert.NoError(t, err)
	token, err := svc.Login(context.Background(), "a@x.com", "secret1")
	assert.NoError(t, err)

	_, err = jwt.ParseWithClaims(token, &types.Claims{}, func(t *jwt.Token) (any, error) {
		return []byte("another-secret"), nil
	})
	assert.Error(t, err)
}
