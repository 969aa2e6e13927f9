package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"
	"github.com/reflet/internal/auth"
	"github.com/reflet/internal/db"
	"github.com/rs/zerolog"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubHTMLRender struct {
	mu   sync.Mutex
	name string
	data gin.H
}

type stubHTMLInstance struct {
	name string
	data interface{}
}

func (r *stubHTMLRender) Instance(name string, data interface{}) render.Render {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.name = name
	r.data, _ = data.(gin.H)
	return &stubHTMLInstance{name: name, data: data}
}

func (r *stubHTMLRender) last() (string, gin.H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.name, r.data
}

func (r *stubHTMLInstance) Render(http.ResponseWriter) error {
	return nil
}

func (r *stubHTMLInstance) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

type captureMailer struct {
	mu   sync.Mutex
	link string
}

func (m *captureMailer) SendPasswordReset(_ context.Context, _ string, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.link = link
	return nil
}

func (m *captureMailer) lastLink() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.link
}

type handlerTestEnv struct {
	db     *gorm.DB
	api    *API
	router *gin.Engine
	html   *stubHTMLRender
	mailer *captureMailer
}

func setupHandlerTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := gdb.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}

func newHandlerTestEnv(t *testing.T, opts Options) *handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb := setupHandlerTestDB(t)
	mailer := &captureMailer{}
	if opts.Mailer == nil {
		opts.Mailer = mailer
	}
	if opts.ResetTokens == nil {
		opts.ResetTokens = auth.NewResetTokens([]byte("test-secret"), time.Hour)
	}
	opts.Logger = zerolog.Nop()

	api := NewAPI(gdb, opts)
	html := &stubHTMLRender{}

	r := gin.New()
	r.HTMLRender = html
	r.Use(sessions.Sessions("reflet_session", cookie.NewStore([]byte("test-secret"))))

	return &handlerTestEnv{db: gdb, api: api, router: r, html: html, mailer: mailer}
}

func (e *handlerTestEnv) registerAuthRoutes() {
	e.router.POST("/admin/login", e.api.Login)
	e.router.POST("/admin/logout", e.api.Logout)
	e.router.POST("/admin/forgot-password", e.api.ForgotPassword)
	e.router.POST("/admin/reset-password", e.api.ResetPassword)
}

func (e *handlerTestEnv) do(req *http.Request, cookie string) *httptest.ResponseRecorder {
	if cookie != "" {
		req.Header.Set("Cookie", cookie)
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

func postForm(path string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req
}

// signIn creates an account and returns the session cookie of a successful login.
func (e *handlerTestEnv) signIn(t *testing.T, email, password, role string) string {
	t.Helper()
	if _, err := e.api.users.Create(email, password, role); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	rr := e.do(postForm("/admin/login", url.Values{"email": {email}, "password": {password}}), "")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", rr.Code)
	}
	cookie := rr.Header().Get("Set-Cookie")
	if cookie == "" {
		t.Fatal("expected session cookie")
	}
	return strings.SplitN(cookie, ";", 2)[0]
}

func TestLoginOpensSession(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()
	env.router.GET("/whoami", func(c *gin.Context) {
		id, ok := env.api.Auth().Current(c)
		if !ok {
			c.Status(http.StatusUnauthorized)
			return
		}
		c.String(http.StatusOK, id.Email)
	})

	cookie := env.signIn(t, "admin@reflet.example", "motdepasse1", db.RoleAdmin)

	rr := env.do(httptest.NewRequest(http.MethodGet, "/whoami", nil), cookie)
	if rr.Code != http.StatusOK || rr.Body.String() != "admin@reflet.example" {
		t.Fatalf("expected signed-in identity, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()

	if _, err := env.api.users.Create("admin@reflet.example", "motdepasse1", db.RoleAdmin); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	rr := env.do(postForm("/admin/login", url.Values{"email": {"admin@reflet.example"}, "password": {"wrong-password"}}), "")
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, rr.Code)
	}
	name, data := env.html.last()
	if name != "login.html" || data["error"] == "" {
		t.Fatalf("expected login form with error, got %s %v", name, data)
	}
}

func TestLogoutPublishesSignedOut(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()

	cookie := env.signIn(t, "admin@reflet.example", "motdepasse1", db.RoleAdmin)
	sub := env.api.Auth().Subscribe(0)
	defer sub.Close()

	rr := env.do(httptest.NewRequest(http.MethodPost, "/admin/logout", nil), cookie)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/admin/login" {
		t.Fatalf("expected redirect to login, got %d %q", rr.Code, rr.Header().Get("Location"))
	}

	select {
	case ev := <-sub.C:
		if ev.Type != auth.EventSignedOut {
			t.Fatalf("expected signed_out event, got %s", ev.Type)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a session event")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	env := newHandlerTestEnv(t, Options{ResetURL: "https://reflet.example/admin/reset-password"})
	env.registerAuthRoutes()

	if _, err := env.api.users.Create("editor@reflet.example", "ancienmotdepasse", db.RoleEditor); err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	rr := env.do(postForm("/admin/forgot-password", url.Values{"email": {"editor@reflet.example"}}), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	link, err := url.Parse(env.mailer.lastLink())
	if err != nil || link.Query().Get("token") == "" {
		t.Fatalf("expected reset link with token, got %q", env.mailer.lastLink())
	}
	token := link.Query().Get("token")

	rr = env.do(postForm("/admin/reset-password", url.Values{"token": {token}, "password": {"nouveaumdp1"}, "password_confirm": {"autre"}}), "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected mismatch to be rejected, got %d", rr.Code)
	}

	rr = env.do(postForm("/admin/reset-password", url.Values{"token": {token}, "password": {"nouveaumdp1"}, "password_confirm": {"nouveaumdp1"}}), "")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect after reset, got %d", rr.Code)
	}

	if _, err := env.api.users.Authenticate("editor@reflet.example", "nouveaumdp1"); err != nil {
		t.Fatalf("expected new password to work: %v", err)
	}

	// the token is bound to the old password hash
	rr = env.do(postForm("/admin/reset-password", url.Values{"token": {token}, "password": {"encoreunautre"}, "password_confirm": {"encoreunautre"}}), "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected reused token to be rejected, got %d", rr.Code)
	}
}

func TestForgotPasswordDoesNotRevealAccounts(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()

	rr := env.do(postForm("/admin/forgot-password", url.Values{"email": {"inconnu@reflet.example"}}), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if env.mailer.lastLink() != "" {
		t.Fatal("expected no mail for unknown account")
	}
	_, data := env.html.last()
	if data["notice"] == nil {
		t.Fatal("expected neutral notice")
	}
}

func TestShowDashboardRendersOverview(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.router.GET("/admin", env.api.ShowDashboard)

	if err := env.db.Create(&db.Product{Name: "Panier tressé", PriceCents: 2500, InStock: true, Category: "artisanat"}).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}

	rr := env.do(httptest.NewRequest(http.MethodGet, "/admin", nil), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	name, data := env.html.last()
	if name != "dashboard.html" {
		t.Fatalf("expected dashboard template, got %s", name)
	}
	if data["siteName"] != "Reflet du Gabon" || data["navigation"] == nil {
		t.Fatalf("expected layout data, got %v", data)
	}
	if data["overview"] == nil {
		t.Fatal("expected overview in page data")
	}
}

func (e *handlerTestEnv) login(t *testing.T, email, password string) string {
	t.Helper()
	rr := e.do(postForm("/admin/login", url.Values{"email": {email}, "password": {password}}), "")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got %d", rr.Code)
	}
	return strings.SplitN(rr.Header().Get("Set-Cookie"), ";", 2)[0]
}

func (e *handlerTestEnv) registerGuardedRoutes() {
	e.router.GET("/admin/login", e.api.ShowLoginPage)
	admin := e.router.Group("/admin", e.api.Auth().RequireSession())
	admin.GET("/api/dashboard", e.api.GetDashboard)
	admin.GET("/api/users", e.api.Auth().RequireRole(db.RoleAdmin), e.api.ListUsers)
}

func TestLogoutEndsSessionsOnOtherDevices(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()
	env.registerGuardedRoutes()

	laptop := env.signIn(t, "admin@reflet.example", "motdepasse1", db.RoleAdmin)
	phone := env.login(t, "admin@reflet.example", "motdepasse1")

	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil), phone); rr.Code != http.StatusOK {
		t.Fatalf("expected second session to be open, got %d", rr.Code)
	}

	if rr := env.do(httptest.NewRequest(http.MethodPost, "/admin/logout", nil), laptop); rr.Code != http.StatusFound {
		t.Fatalf("expected logout redirect, got %d", rr.Code)
	}

	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil), phone); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected other session to be closed, got %d", rr.Code)
	}
	rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/login", nil), phone)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected login form for the closed session, got %d (%s)", rr.Code, rr.Header().Get("Location"))
	}

	fresh := env.login(t, "admin@reflet.example", "motdepasse1")
	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil), fresh); rr.Code != http.StatusOK {
		t.Fatalf("expected a new sign-in to work, got %d", rr.Code)
	}
}

func TestPasswordResetEndsOpenSessions(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()
	env.registerGuardedRoutes()

	session := env.signIn(t, "editor@reflet.example", "ancienmotdepasse", db.RoleEditor)

	if err := env.api.users.RequestPasswordReset(context.Background(), "editor@reflet.example"); err != nil {
		t.Fatalf("RequestPasswordReset returned error: %v", err)
	}
	link, err := url.Parse(env.mailer.lastLink())
	if err != nil {
		t.Fatalf("invalid reset link: %v", err)
	}
	rr := env.do(postForm("/admin/reset-password", url.Values{"token": {link.Query().Get("token")}, "password": {"nouveaumdp1"}, "password_confirm": {"nouveaumdp1"}}), "")
	if rr.Code != http.StatusFound {
		t.Fatalf("expected redirect after reset, got %d", rr.Code)
	}

	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil), session); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected session opened before the reset to be closed, got %d", rr.Code)
	}
}

func TestRoleChangeAppliesToOpenSessions(t *testing.T) {
	env := newHandlerTestEnv(t, Options{})
	env.registerAuthRoutes()
	env.registerGuardedRoutes()

	if _, err := env.api.users.Create("chef@reflet.example", "motdepasse1", db.RoleAdmin); err != nil {
		t.Fatalf("failed to create admin: %v", err)
	}
	session := env.signIn(t, "second@reflet.example", "motdepasse2", db.RoleAdmin)
	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/users", nil), session); rr.Code != http.StatusOK {
		t.Fatalf("expected admin access, got %d", rr.Code)
	}

	var user db.User
	if err := env.db.Where("email = ?", "second@reflet.example").First(&user).Error; err != nil {
		t.Fatalf("failed to load user: %v", err)
	}
	if _, err := env.api.users.SetRole(user.ID, db.RoleEditor); err != nil {
		t.Fatalf("SetRole returned error: %v", err)
	}

	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/users", nil), session); rr.Code != http.StatusForbidden {
		t.Fatalf("expected demoted session to lose admin access, got %d", rr.Code)
	}
	if rr := env.do(httptest.NewRequest(http.MethodGet, "/admin/api/dashboard", nil), session); rr.Code != http.StatusOK {
		t.Fatalf("expected demoted session to stay open, got %d", rr.Code)
	}
}
