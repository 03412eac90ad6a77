package auth

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceelkacz03/lola-crm/internal/model"
	apperrors "github.com/marceelkacz03/lola-crm/pkg/errors"
	"github.com/marceelkacz03/lola-crm/pkg/security"
)

type fakeUserRepo struct {
	byEmail map[string]*model.User
	roles   map[uuid.UUID]model.AppRole
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, ok := f.byEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}
func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role model.AppRole) error {
	if f.roles == nil {
		f.roles = map[uuid.UUID]model.AppRole{}
	}
	f.roles[id] = role
	return nil
}

const testSecret = "test-secret-test-secret-test-secret"

func newTestService(t *testing.T) (*Service, *model.User) {
	t.Helper()
	hasher := security.NewBcryptHasher(4)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	user := &model.User{
		ID:           uuid.New(),
		Email:        "manager@lolacrm.test",
		PasswordHash: hash,
		Role:         model.RoleManager,
		CreatedAt:    time.Now(),
	}
	repo := &fakeUserRepo{byEmail: map[string]*model.User{user.Email: user}}
	return NewService(repo, testSecret, 1), user
}

func TestLoginAndVerifyToken(t *testing.T) {
	svc, user := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := svc.VerifyToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, model.RoleManager, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, user := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    user.Email,
		Password: "wrong-password",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode())
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@lolacrm.test",
		Password: "correct-horse",
	})
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode(), "unknown email must not be distinguishable from a bad password")
}

func TestVerifyTokenGarbage(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.VerifyToken("not.a.token")
	require.Error(t, err)

	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, 401, appErr.StatusCode())
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	svc, user := newTestService(t)

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    user.Email,
		Password: "correct-horse",
	})
	require.NoError(t, err)

	other := NewService(&fakeUserRepo{byEmail: map[string]*model.User{}}, "another-secret-entirely", 1)
	_, err = other.VerifyToken(resp.Token)
	require.Error(t, err)
}
