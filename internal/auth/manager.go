// Package auth manages admin sessions, session-change notifications, password reset
// tokens and CSRF protection.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const (
	sessionUserIDKey = "user_id"
	sessionEmailKey  = "email"
	sessionRoleKey   = "role"
	sessionEpochKey  = "epoch"

	identityContextKey = "auth_identity"
)

// ErrNoSession is returned when the request carries no signed-in session.
var ErrNoSession = errors.New("no active session")

// Identity is the signed-in user as stored in the session. Epoch is the account's
// session epoch at sign-in; the session dies once the account's epoch moves on.
type Identity struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Epoch  uint   `json:"epoch"`
}

// Account is the current state of a user as the account store knows it.
type Account struct {
	Email string
	Role  string
	Epoch uint
}

// Accounts checks sessions against stored accounts. SessionAccount returns
// ErrNoSession when the user no longer exists; EndSessions advances the user's epoch.
type Accounts interface {
	SessionAccount(ctx context.Context, userID uint) (Account, error)
	EndSessions(ctx context.Context, userID uint) error
}

// Manager reads and writes the session and publishes changes to its Notifier.
type Manager struct {
	notifier  *Notifier
	loginPath string
	accounts  Accounts
}

// NewManager returns a manager redirecting anonymous admin requests to loginPath.
func NewManager(notifier *Notifier, loginPath string) *Manager {
	if notifier == nil {
		notifier = NewNotifier()
	}
	if loginPath == "" {
		loginPath = "/admin/login"
	}
	return &Manager{notifier: notifier, loginPath: loginPath}
}

// UseAccounts makes every session lookup check the account store: role and email are
// read from the account, and sessions older than its epoch are rejected.
func (m *Manager) UseAccounts(accounts Accounts) {
	m.accounts = accounts
}

// Notifier exposes the session-change notifier.
func (m *Manager) Notifier() *Notifier { return m.notifier }

// Subscribe registers for session changes of userID (0 for everyone).
func (m *Manager) Subscribe(userID uint) *Subscription {
	return m.notifier.Subscribe(userID)
}

// SignIn stores id in the session.
func (m *Manager) SignIn(c *gin.Context, id Identity) error {
	session := sessions.Default(c)
	session.Clear()
	session.Set(sessionUserIDKey, id.UserID)
	session.Set(sessionEmailKey, id.Email)
	session.Set(sessionRoleKey, id.Role)
	session.Set(sessionEpochKey, id.Epoch)
	if err := session.Save(); err != nil {
		return err
	}
	c.Set(identityContextKey, id)
	m.notifier.Publish(Event{Type: EventSignedIn, UserID: id.UserID, Email: id.Email})
	return nil
}

// SignOut clears the session and, with an account store, ends every other session of
// the same user. Signing out without a session is not an error.
func (m *Manager) SignOut(c *gin.Context) error {
	id, hadSession := m.Current(c)
	if hadSession && m.accounts != nil {
		if err := m.accounts.EndSessions(c.Request.Context(), id.UserID); err != nil {
			return err
		}
	}

	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	c.Set(identityContextKey, nil)
	if err := session.Save(); err != nil {
		return err
	}
	if hadSession {
		m.notifier.Publish(Event{Type: EventSignedOut, UserID: id.UserID, Email: id.Email})
	}
	return nil
}

// Current returns the identity of the request's session.
func (m *Manager) Current(c *gin.Context) (Identity, bool) {
	if cached, ok := c.Get(identityContextKey); ok {
		if id, ok := cached.(Identity); ok {
			return id, true
		}
	}

	session := sessions.Default(c)
	userID, ok := session.Get(sessionUserIDKey).(uint)
	if !ok || userID == 0 {
		return Identity{}, false
	}
	email, _ := session.Get(sessionEmailKey).(string)
	role, _ := session.Get(sessionRoleKey).(string)
	epoch, _ := session.Get(sessionEpochKey).(uint)

	id := Identity{UserID: userID, Email: email, Role: role, Epoch: epoch}
	if m.accounts != nil {
		account, err := m.accounts.SessionAccount(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, ErrNoSession) {
				_ = c.Error(err)
			}
			return Identity{}, false
		}
		if account.Epoch != epoch {
			return Identity{}, false
		}
		id.Email = account.Email
		id.Role = account.Role
	}
	c.Set(identityContextKey, id)
	return id, true
}

// FromContext returns the identity stored by RequireSession.
func FromContext(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}

// RequireSession is the admin gate. Anonymous page requests are redirected to the
// login page; API and websocket requests get 401.
func (m *Manager) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := m.Current(c); ok {
			c.Next()
			return
		}
		if wantsJSON(c) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentification requise"})
			return
		}
		c.Redirect(http.StatusFound, m.loginPath)
		c.Abort()
	}
}

// RequireRole rejects signed-in users whose role is not one of roles.
func (m *Manager) RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := m.Current(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentification requise"})
			return
		}
		for _, role := range roles {
			if id.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "droits insuffisants"})
	}
}

func wantsJSON(c *gin.Context) bool {
	path := c.Request.URL.Path
	if strings.HasPrefix(path, "/admin/api/") || strings.HasPrefix(path, "/admin/ws/") {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
