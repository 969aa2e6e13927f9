package service

import (
	"errors"
	"testing"
	"time"

	"github.com/reflet/internal/db"
)

func validContactInput() ContactInput {
	return ContactInput{
		FirstName: "Awa",
		LastName:  "Nguema",
		Email:     " Awa@Example.org ",
		Subject:   ContactSubjects[0],
		Message:   "Bonjour, je souhaite adhérer.",
		Consent:   true,
	}
}

func TestContactSubmitValidates(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewContactService(gdb)

	_, err := svc.Submit(ContactInput{Email: "not-an-email", Consent: true})
	var validation *ContactValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("expected ContactValidationError, got %v", err)
	}
	for _, field := range []string{"first_name", "last_name", "email", "subject", "message"} {
		if validation.Fields[field] == "" {
			t.Fatalf("expected %s to be reported, got %+v", field, validation.Fields)
		}
	}

	input := validContactInput()
	input.Consent = false
	if _, err := svc.Submit(input); !errors.Is(err, ErrConsentRequired) {
		t.Fatalf("expected ErrConsentRequired, got %v", err)
	}

	msg, err := svc.Submit(validContactInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	if msg.Email != "awa@example.org" {
		t.Fatalf("expected normalized email, got %q", msg.Email)
	}
	if msg.IsRead {
		t.Fatalf("expected new message to be unread")
	}
}

func TestContactModeration(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewContactService(gdb)
	first, err := svc.Submit(validContactInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}
	second, err := svc.Submit(validContactInput())
	if err != nil {
		t.Fatalf("Submit returned error: %v", err)
	}

	items, err := svc.List()
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(items) != 2 || items[0].ID != second.ID {
		t.Fatalf("expected newest first, got %+v", items)
	}

	if _, err := svc.MarkRead(first.ID); err != nil {
		t.Fatalf("MarkRead returned error: %v", err)
	}
	unread, err := svc.CountUnread()
	if err != nil || unread != 1 {
		t.Fatalf("expected 1 unread message, got %d (%v)", unread, err)
	}

	if err := svc.Delete(second.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := svc.Delete(second.ID); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
	if _, err := svc.MarkRead(999); !errors.Is(err, ErrMessageNotFound) {
		t.Fatalf("expected ErrMessageNotFound, got %v", err)
	}
}

func TestContactPurgeRead(t *testing.T) {
	gdb, cleanup := setupServiceTestDB(t)
	defer cleanup()

	svc := NewContactService(gdb)
	old := time.Now().Add(-200 * 24 * time.Hour)
	rows := []db.ContactMessage{
		{FirstName: "a", LastName: "a", Email: "a@x.org", Subject: "s", Message: "m", IsRead: true},
		{FirstName: "b", LastName: "b", Email: "b@x.org", Subject: "s", Message: "m", IsRead: false},
		{FirstName: "c", LastName: "c", Email: "c@x.org", Subject: "s", Message: "m", IsRead: true},
	}
	for i := range rows {
		if err := gdb.Create(&rows[i]).Error; err != nil {
			t.Fatalf("failed to insert message: %v", err)
		}
	}
	if err := gdb.Model(&db.ContactMessage{}).Where("id IN ?", []uint{rows[0].ID, rows[1].ID}).Update("created_at", old).Error; err != nil {
		t.Fatalf("failed to age messages: %v", err)
	}

	if n, err := svc.PurgeRead(0); err != nil || n != 0 {
		t.Fatalf("expected zero retention to disable purging, got %d (%v)", n, err)
	}

	n, err := svc.PurgeRead(180 * 24 * time.Hour)
	if err != nil {
		t.Fatalf("PurgeRead returned error: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected only the old read message to be purged, got %d", n)
	}

	var remaining int64
	gdb.Unscoped().Model(&db.ContactMessage{}).Count(&remaining)
	if remaining != 2 {
		t.Fatalf("expected 2 remaining messages, got %d", remaining)
	}
}
