package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/apierror"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/config"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/dto"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/middleware"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/model"
	"github.com/johnwan12/Lab-Reagent-Inventory-System-Backup/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

// ── In-memory UserRepository stub ────────────────────────────────────────────

type stubUserRepo struct {
	users map[uuid.UUID]*model.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[uuid.UUID]*model.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *model.User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range r.users {
		if u.Username == username && u.Active {
			clone := *u
			return &clone, nil
		}
	}
	return nil, apierror.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apierror.ErrNotFound
	}
	clone := *u
	return &clone, nil
}

func (r *stubUserRepo) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return apierror.ErrNotFound
	}
	r.users[u.ID] = u
	return nil
}

func (r *stubUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	u, ok := r.users[id]
	if !ok {
		return apierror.ErrNotFound
	}
	u.Active = false
	return nil
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password, role string) uuid.UUID {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id := uuid.New()
	repo.users[id] = &model.User{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		Active:       true,
	}
	return id
}

func newAuthSvc() (service.AuthService, *stubUserRepo) {
	repo := newStubUserRepo()
	cfg := &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 1,
		JWTRefreshHours:    24,
	}
	return service.NewAuthService(repo, cfg), repo
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestLoginAdmin(t *testing.T) {
	svc, repo := newAuthSvc()
	seedUser(t, repo, "admin", "admin123", model.RoleAdmin)

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, model.RoleAdmin, resp.User.Role)
	assert.Equal(t, "admin", resp.User.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, repo := newAuthSvc()
	seedUser(t, repo, "admin", "admin123", model.RoleAdmin)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "nope"})
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newAuthSvc()

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever"})
	// Unknown user and wrong password are indistinguishable to the caller.
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
}

func TestLoginDeactivatedUser(t *testing.T) {
	svc, repo := newAuthSvc()
	id := seedUser(t, repo, "olduser", "secret123", model.RoleUser)
	require.NoError(t, repo.Deactivate(context.Background(), id))

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "olduser", Password: "secret123"})
	assert.ErrorIs(t, err, apierror.ErrUnauthorized)
}

func TestRefreshRoundTrip(t *testing.T) {
	svc, repo := newAuthSvc()
	seedUser(t, repo, "user", "user123", model.RoleUser)

	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "user", Password: "user123"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, "user", refreshed.User.Username)

	_, err = svc.Refresh(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestCreateAndUpdateUser(t *testing.T) {
	svc, repo := newAuthSvc()

	created, err := svc.CreateUser(context.Background(), dto.CreateUserRequest{
		Username: "tech1", Password: "initial1", Role: model.RoleUser,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.True(t, created.Active)

	// Stored hash must never be the raw password.
	id := uuid.MustParse(created.ID)
	assert.NotEqual(t, "initial1", repo.users[id].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.users[id].PasswordHash), []byte("initial1")))

	updated, err := svc.UpdateUser(context.Background(), id, dto.UpdateUserRequest{Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, updated.Role)

	_, err = svc.UpdateUser(context.Background(), id, dto.UpdateUserRequest{Password: "rotated1"})
	require.NoError(t, err)
	_, err = svc.Login(context.Background(), dto.LoginRequest{Username: "tech1", Password: "rotated1"})
	assert.NoError(t, err)
}

// ── Middleware ───────────────────────────────────────────────────────────────

func newProtectedRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	auth := r.Group("/", middleware.JWTAuth(secret))
	auth.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"username": middleware.GetClaims(c).Username})
	})
	auth.GET("/admin", middleware.RequireRole(model.RoleAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestJWTAuthMiddleware(t *testing.T) {
	svc, repo := newAuthSvc()
	seedUser(t, repo, "user", "user123", model.RoleUser)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "user", Password: "user123"})
	require.NoError(t, err)

	router := newProtectedRouter(testSecret)

	// no token
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// garbage token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// valid token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user")

	// role gate: plain user may not reach admin routes
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireRoleAdmin(t *testing.T) {
	svc, repo := newAuthSvc()
	seedUser(t, repo, "admin", "admin123", model.RoleAdmin)
	login, err := svc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	router := newProtectedRouter(testSecret)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
