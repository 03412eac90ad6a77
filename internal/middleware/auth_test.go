package middleware

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marceelkacz03/lola-crm/internal/model"
	"github.com/marceelkacz03/lola-crm/internal/service/auth"
	"github.com/marceelkacz03/lola-crm/pkg/security"
)

type fakeUserRepo struct {
	user *model.User
}

func (f *fakeUserRepo) Get(ctx context.Context, id uuid.UUID) (*model.User, error) {
	if f.user != nil && f.user.ID == id {
		return f.user, nil
	}
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if f.user != nil && f.user.Email == email {
		return f.user, nil
	}
	return nil, sql.ErrNoRows
}
func (f *fakeUserRepo) UpdateRole(ctx context.Context, id uuid.UUID, role model.AppRole) error {
	return nil
}

func setupAuth(t *testing.T, role model.AppRole) (*AuthMiddleware, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := security.NewBcryptHasher(4).Hash("password123")
	require.NoError(t, err)
	user := &model.User{
		ID:           uuid.New(),
		Email:        "user@lolacrm.test",
		PasswordHash: hash,
		Role:         role,
	}

	authSvc := auth.NewService(&fakeUserRepo{user: user}, "middleware-test-secret", 1)
	resp, err := authSvc.Login(context.Background(), &model.LoginRequest{
		Email:    user.Email,
		Password: "password123",
	})
	require.NoError(t, err)

	return NewAuthMiddleware(authSvc), resp.Token
}

func performRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticate(t *testing.T) {
	m, token := setupAuth(t, model.RoleStaff)

	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		require.NotNil(t, claims)
		c.JSON(http.StatusOK, gin.H{"role": claims.Role})
	})

	w := performRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)

	w = performRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = performRequest(r, "garbage-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid token"}`, w.Body.String())
}

func TestAuthenticateRejectsNonBearerScheme(t *testing.T) {
	m, token := setupAuth(t, model.RoleStaff)

	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"invalid authorization format"}`, w.Body.String())
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name     string
		role     model.AppRole
		required model.AppRole
		want     int
	}{
		{"staff blocked from manager route", model.RoleStaff, model.RoleManager, http.StatusForbidden},
		{"manager allowed on manager route", model.RoleManager, model.RoleManager, http.StatusOK},
		{"admin allowed everywhere", model.RoleAdmin, model.RoleBoard, http.StatusOK},
		{"manager blocked from board route", model.RoleManager, model.RoleBoard, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, token := setupAuth(t, tt.role)

			r := gin.New()
			r.GET("/protected", m.Authenticate(), m.RequireRole(tt.required), func(c *gin.Context) {
				c.Status(http.StatusOK)
			})

			w := performRequest(r, token)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusForbidden {
				assert.JSONEq(t, `{"error":"insufficient role"}`, w.Body.String())
			}
		})
	}
}

func TestRequireRoleWithoutClaims(t *testing.T) {
	m, _ := setupAuth(t, model.RoleAdmin)
	gin.SetMode(gin.TestMode)

	r := gin.New()
	// RequireRole without Authenticate in front of it.
	r.GET("/protected", m.RequireRole(model.RoleStaff), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := performRequest(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
