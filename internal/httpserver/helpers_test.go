package httpserver

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/abu-huda81/shop_backend/internal/config"
	"github.com/abu-huda81/shop_backend/internal/imagestore"
	"github.com/abu-huda81/shop_backend/internal/middleware/auth"
	"github.com/abu-huda81/shop_backend/internal/models"
	"github.com/abu-huda81/shop_backend/internal/repo"
	"github.com/abu-huda81/shop_backend/internal/service"
	"github.com/abu-huda81/shop_backend/internal/tokens"
	"github.com/abu-huda81/shop_backend/internal/transport"
)

var testJWTSecret = []byte("test-jwt-secret")

// testEnv wires the full handler stack against an in-memory database, the
// same shape main assembles for a live server minus kafka and elasticsearch.
type testEnv struct {
	Echo *echo.Echo
	Repo *repo.GormRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:http_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
		Logger:  logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	images, err := imagestore.NewDiskStore(t.TempDir())
	require.NoError(t, err)

	r := repo.NewGormRepo(db)
	authSvc := &service.AuthService{Repo: r, JWTSecret: testJWTSecret}
	catalogSvc := &service.CatalogService{Repo: r, Images: images}
	orderSvc := &service.OrderService{Repo: r}

	e := echo.New()
	Register(e, &Deps{
		UserHandler:    &UserHTTP{Svc: authSvc},
		ProductHandler: &ProductHTTP{Svc: catalogSvc},
		OrderHandler:   &OrderHTTP{Svc: orderSvc},
		Guard:          auth.NewGuard(db, testJWTSecret),
	})

	return &testEnv{Echo: e, Repo: r}
}

func (env *testEnv) doJSON(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)
	return rec
}

// doForm sends a multipart product form; files maps upload filename to its
// bytes.
func (env *testEnv) doForm(t *testing.T, method, path, token string, fields map[string]string, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for name, content := range files {
		part, err := mw.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(echo.HeaderContentType, mw.FormDataContentType())
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.Echo.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

func (env *testEnv) register(t *testing.T, username, email, password string) {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/user/create", "", transport.RegisterRequest{
		Username: username, Email: email, Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func (env *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := env.doJSON(t, http.MethodPost, "/user/login", "", transport.LoginRequest{
		Username: username, Password: password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res transport.TokenResponse
	decodeJSON(t, rec, &res)
	require.Equal(t, "bearer", res.TokenType)
	require.NotEmpty(t, res.AccessToken)
	return res.AccessToken
}

// signOtherSecret produces a structurally valid token the guard must reject.
func signOtherSecret(t *testing.T) string {
	t.Helper()
	raw, _, err := tokens.Sign(1, "admin", []byte("some-other-secret"), time.Hour)
	require.NoError(t, err)
	return raw
}

// adminToken registers an account, promotes it straight in the database and
// logs it in. Promotion through the endpoint needs an admin to exist first.
func (env *testEnv) adminToken(t *testing.T, username string) string {
	t.Helper()
	env.register(t, username, username+"@example.com", "secret123")
	err := env.Repo.DB.Model(&models.User{}).
		Where("username = ?", username).
		Update("role", models.RoleAdmin).Error
	require.NoError(t, err)
	return env.login(t, username, "secret123")
}
