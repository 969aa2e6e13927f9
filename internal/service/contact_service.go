package service

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/reflet/internal/db"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrConsentRequired = errors.New("consent is required")
)

// ContactValidationError lists the invalid fields of a contact submission.
type ContactValidationError struct {
	Fields map[string]string
}

func (e *ContactValidationError) Error() string {
	return "contact form is invalid"
}

// ContactService stores and moderates contact form submissions.
type ContactService struct {
	db  *gorm.DB
	now func() time.Time
}

// ContactInput is a public contact form submission.
type ContactInput struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Phone     string `form:"phone" json:"phone"`
	Subject   string `form:"subject" json:"subject"`
	Message   string `form:"message" json:"message"`
	Consent   bool   `form:"consent" json:"consent"`
}

// ContactSubjects are the subjects offered by the form.
var ContactSubjects = []string{
	"Information générale",
	"Soutenir l'association (don, partenariat)",
	"Demande de prestation culturelle",
	"Réservation restaurant",
	"Bénévolat",
	"Presse et médias",
	"Autre",
}

// NewContactService creates a ContactService.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb, now: time.Now}
}

// Submit validates and stores a message.
func (s *ContactService) Submit(input ContactInput) (*db.ContactMessage, error) {
	input = normalizeContactInput(input)
	if err := validateContactInput(input); err != nil {
		return nil, err
	}

	msg := db.ContactMessage{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
		Phone:     input.Phone,
		Subject:   input.Subject,
		Message:   input.Message,
		Consent:   input.Consent,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// List returns messages newest first.
func (s *ContactService) List() ([]db.ContactMessage, error) {
	var items []db.ContactMessage
	if err := s.db.Order("created_at desc").Order("id desc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CountUnread returns the number of unread messages.
func (s *ContactService) CountUnread() (int64, error) {
	var count int64
	err := s.db.Model(&db.ContactMessage{}).Where("is_read = ?", false).Count(&count).Error
	return count, err
}

// MarkRead flags a message as read.
func (s *ContactService) MarkRead(id uint) (*db.ContactMessage, error) {
	msg, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(msg).Update("is_read", true).Error; err != nil {
		return nil, err
	}
	msg.IsRead = true
	return msg, nil
}

// Delete removes a message.
func (s *ContactService) Delete(id uint) error {
	msg, err := s.get(id)
	if err != nil {
		return err
	}
	return s.db.Unscoped().Delete(msg).Error
}

// PurgeRead permanently deletes read messages older than retention. It returns the
// number of deleted rows.
func (s *ContactService) PurgeRead(retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	cutoff := s.now().Add(-retention)
	result := s.db.Unscoped().Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&db.ContactMessage{})
	return result.RowsAffected, result.Error
}

func (s *ContactService) get(id uint) (*db.ContactMessage, error) {
	var msg db.ContactMessage
	if err := s.db.First(&msg, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func normalizeContactInput(input ContactInput) ContactInput {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.Phone = strings.TrimSpace(input.Phone)
	input.Subject = strings.TrimSpace(input.Subject)
	input.Message = strings.TrimSpace(input.Message)
	return input
}

func validateContactInput(input ContactInput) error {
	fields := make(map[string]string)
	required := map[string]string{
		"first_name": input.FirstName,
		"last_name":  input.LastName,
		"email":      input.Email,
		"subject":    input.Subject,
		"message":    input.Message,
	}
	for name, value := range required {
		if value == "" {
			fields[name] = "Ce champ est obligatoire"
		}
	}
	if input.Email != "" {
		if !validEmail(input.Email) {
			fields["email"] = "Adresse email invalide"
		}
	}
	if utf8.RuneCountInString(input.FirstName) > 100 || utf8.RuneCountInString(input.LastName) > 100 {
		fields["first_name"] = "100 caractères maximum"
	}
	if utf8.RuneCountInString(input.Message) > 5000 {
		fields["message"] = "5000 caractères maximum"
	}
	if len(fields) > 0 {
		return &ContactValidationError{Fields: fields}
	}
	if !input.Consent {
		return ErrConsentRequired
	}
	return nil
}
