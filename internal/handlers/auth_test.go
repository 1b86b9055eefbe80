package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/database"
	"github.com/yukikurage/labor-report-api/internal/dto"
	"github.com/yukikurage/labor-report-api/internal/models"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"github.com/yukikurage/labor-report-api/internal/services"
	"github.com/yukikurage/labor-report-api/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	auditService := services.NewAuditService(auditRepo, zerolog.Nop())
	authService := services.NewAuthService(userRepo, auditService)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
	}
}

func (env authTestEnv) createUser(t *testing.T, name, login string, role models.Role, password string, active bool) *models.User {
	t.Helper()

	user := &models.User{
		Name:         name,
		Login:        login,
		Role:         role,
		PasswordHash: utils.HashPassword(password),
		Active:       active,
	}
	require.NoError(t, env.db.Create(user).Error)
	return user
}

func newLoginRouter(env authTestEnv) *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/login", env.handler.Login)
	return r
}

func doLogin(t *testing.T, r *gin.Engine, payload map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)
	return w
}

func TestAuthHandler_Login_CaseInsensitive(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "Ana", "ana", models.RoleStaff, "anasecret", true)

	r := newLoginRouter(env)

	// wrong password first
	w := doLogin(t, r, map[string]string{"login": "ana", "password": "wrong"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// the handle matches case-insensitively
	w = doLogin(t, r, map[string]string{"login": "ANA", "password": "anasecret"})
	require.Equal(t, http.StatusOK, w.Code)

	var response dto.PrincipalDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ana", response.Login)
	require.Equal(t, models.RoleStaff, response.Role)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "expected session cookie to be set")

	// login stamps last access
	var stored models.User
	require.NoError(t, env.db.First(&stored, "login = ?", "ana").Error)
	require.NotNil(t, stored.LastAccessAt)
}

func TestAuthHandler_Login_UnknownUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	w := doLogin(t, newLoginRouter(env), map[string]string{"login": "ghost", "password": "whatever"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthHandler_Login_Inactive(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "Carlos", "carlos", models.RoleStaff, "carlossecret", false)

	w := doLogin(t, newLoginRouter(env), map[string]string{"login": "carlos", "password": "carlossecret"})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_Login_RoleScoped(t *testing.T) {
	env := setupAuthTestEnv(t)
	env.createUser(t, "Ana", "ana", models.RoleStaff, "anasecret", true)

	// a staff account cannot enter through the admin-scoped login
	w := doLogin(t, newLoginRouter(env), map[string]string{
		"login":    "ana",
		"password": "anasecret",
		"role":     "admin",
	})
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)
	user := env.createUser(t, "Ana", "ana", models.RoleStaff, "anasecret", true)

	call := func(payload map[string]string) *httptest.ResponseRecorder {
		body, err := json.Marshal(payload)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/change-password", bytes.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set(constants.ContextKeyPrincipal, *user)

		env.handler.ChangePassword(c)
		return w
	}

	// confirmation mismatch is rejected by the handler
	w := call(map[string]string{
		"current_password": "anasecret",
		"new_password":     "newsecret",
		"confirmation":     "different",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// too-short passwords are rejected
	w = call(map[string]string{
		"current_password": "anasecret",
		"new_password":     "tiny",
		"confirmation":     "tiny",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = call(map[string]string{
		"current_password": "anasecret",
		"new_password":     "newsecret",
		"confirmation":     "newsecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// the new credential works
	_, err := env.authService.Authenticate(services.AuthenticateInput{
		Login:    "ana",
		Password: "newsecret",
	})
	require.NoError(t, err)
}
