package service

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/reflet/internal/auth"
	"github.com/reflet/internal/db"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("email ou mot de passe incorrect")
	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("un compte existe déjà pour cet email")
	ErrInvalidEmail       = errors.New("adresse email invalide")
	ErrWeakPassword       = errors.New("le mot de passe doit contenir au moins 8 caractères")
	ErrInvalidRole        = errors.New("role is invalid")
	ErrLastAdmin          = errors.New("at least one admin is required")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 8

// UserService manages admin accounts and password resets.
type UserService struct {
	db       *gorm.DB
	tokens   *auth.ResetTokens
	mailer   auth.Mailer
	notifier *auth.Notifier
	resetURL string
	logger   zerolog.Logger
}

// UserServiceOptions configures password reset delivery.
type UserServiceOptions struct {
	Tokens   *auth.ResetTokens
	Mailer   auth.Mailer
	Notifier *auth.Notifier
	// ResetURL is the absolute URL of the reset form; the token is appended as a query parameter.
	ResetURL string
	Logger   zerolog.Logger
}

// NewUserService creates a UserService.
func NewUserService(gdb *gorm.DB, opts UserServiceOptions) *UserService {
	mailer := opts.Mailer
	if mailer == nil {
		mailer = auth.LogMailer{Logger: opts.Logger}
	}
	resetURL := opts.ResetURL
	if resetURL == "" {
		resetURL = "/admin/reset-password"
	}
	return &UserService{
		db:       gdb,
		tokens:   opts.Tokens,
		mailer:   mailer,
		notifier: opts.Notifier,
		resetURL: resetURL,
		logger:   opts.Logger,
	}
}

// Authenticate checks email and password and returns the matching user.
func (s *UserService) Authenticate(email, password string) (*db.User, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user db.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// List returns every user ordered by email.
func (s *UserService) List() ([]db.User, error) {
	var users []db.User
	if err := s.db.Order("email asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// Get fetches a user by id.
func (s *UserService) Get(id uint) (*db.User, error) {
	var user db.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create adds an account with a bcrypt hashed password.
func (s *UserService) Create(email, password, role string) (*db.User, error) {
	email = normalizeEmail(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}
	if role == "" {
		role = db.RoleEditor
	}
	if !validRole(role) {
		return nil, ErrInvalidRole
	}

	var count int64
	if err := s.db.Model(&db.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := db.User{Email: email, Password: string(hashed), Role: role}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// SetRole changes the role of a user. The last admin cannot be demoted.
func (s *UserService) SetRole(id uint, role string) (*db.User, error) {
	if !validRole(role) {
		return nil, ErrInvalidRole
	}
	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if user.Role == db.RoleAdmin && role != db.RoleAdmin {
		var admins int64
		if err := s.db.Model(&db.User{}).Where("role = ?", db.RoleAdmin).Count(&admins).Error; err != nil {
			return nil, err
		}
		if admins <= 1 {
			return nil, ErrLastAdmin
		}
	}
	if err := s.db.Model(user).Update("role", role).Error; err != nil {
		return nil, err
	}
	user.Role = role
	return user, nil
}

// RequestPasswordReset mails a reset link when the email belongs to an account.
// Unknown emails succeed silently.
func (s *UserService) RequestPasswordReset(ctx context.Context, email string) error {
	if s.tokens == nil {
		return errors.New("password reset is not configured")
	}
	email = normalizeEmail(email)
	if !validEmail(email) {
		return ErrInvalidEmail
	}

	var user db.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Debug().Str("email", email).Msg("password reset for unknown email")
			return nil
		}
		return err
	}

	token, err := s.tokens.Issue(user.ID, user.Email, user.Password)
	if err != nil {
		return err
	}
	return s.mailer.SendPasswordReset(ctx, user.Email, s.resetLink(token))
}

// ResetPassword sets a new password for the holder of a valid reset token.
// The token stops working once the password has changed.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) (*db.User, error) {
	if s.tokens == nil {
		return nil, auth.ErrInvalidResetToken
	}
	if len(password) < MinPasswordLength {
		return nil, ErrWeakPassword
	}

	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, err
	}
	id, err := claims.UserID()
	if err != nil {
		return nil, err
	}

	user, err := s.Get(id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, auth.ErrInvalidResetToken
		}
		return nil, err
	}
	if err := s.tokens.Verify(claims, user.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"password":      string(hashed),
		"session_epoch": gorm.Expr("session_epoch + 1"),
	}).Error; err != nil {
		return nil, err
	}
	user.Password = string(hashed)
	user.SessionEpoch++

	if s.notifier != nil {
		s.notifier.Publish(auth.Event{Type: auth.EventPasswordReset, UserID: user.ID, Email: user.Email, At: time.Now()})
	}
	return user, nil
}

// SessionAccount returns the live state of a signed-in user.
func (s *UserService) SessionAccount(ctx context.Context, userID uint) (auth.Account, error) {
	var user db.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return auth.Account{}, auth.ErrNoSession
		}
		return auth.Account{}, err
	}
	return auth.Account{Email: user.Email, Role: user.Role, Epoch: user.SessionEpoch}, nil
}

// EndSessions invalidates every open session of userID.
func (s *UserService) EndSessions(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Model(&db.User{}).Where("id = ?", userID).
		UpdateColumn("session_epoch", gorm.Expr("session_epoch + 1")).Error
}

func (s *UserService) resetLink(token string) string {
	sep := "?"
	if strings.Contains(s.resetURL, "?") {
		sep = "&"
	}
	return s.resetURL + sep + "token=" + url.QueryEscape(token)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validEmail(email string) bool {
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

func validRole(role string) bool {
	return role == db.RoleAdmin || role == db.RoleEditor
}
