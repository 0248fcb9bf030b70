package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/applytrack/applytrack/internal/apperr"
	"github.com/applytrack/applytrack/internal/models"
)

func TestApplication_EmptyCompanyFailsFirst(t *testing.T) {
	err := Application("", "", models.StatusApplied, "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "company" {
		t.Fatalf("expected first violated field company, got %q", ve.Field)
	}
}

func TestApplication_EmptyPosition(t *testing.T) {
	err := Application("Acme", "", models.StatusApplied, "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "position" {
		t.Fatalf("expected field position, got %q", ve.Field)
	}
}

func TestApplication_CompanyTooLong(t *testing.T) {
	err := Application(strings.Repeat("a", 101), "Engineer", models.StatusApplied, "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "company" {
		t.Fatalf("expected field company, got %q", ve.Field)
	}
}

func TestApplication_StatusOutsideEnum(t *testing.T) {
	err := Application("Acme", "Engineer", "ghosted", "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if ve.Field != "status" {
		t.Fatalf("expected field status, got %q", ve.Field)
	}
}

func TestApplication_AllStatusesAccepted(t *testing.T) {
	for _, st := range []models.ApplicationStatus{
		models.StatusApplied, models.StatusInterview, models.StatusOffer, models.StatusRejected,
	} {
		if err := Application("Acme", "Engineer", st, ""); err != nil {
			t.Fatalf("status %q rejected: %v", st, err)
		}
	}
}

func TestApplication_NotesAtLimit(t *testing.T) {
	if err := Application("Acme", "Engineer", models.StatusApplied, strings.Repeat("n", 1000)); err != nil {
		t.Fatalf("1000-char notes rejected: %v", err)
	}
	err := Application("Acme", "Engineer", models.StatusApplied, strings.Repeat("n", 1001))
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "notes" {
		t.Fatalf("expected notes ValidationError, got %v", err)
	}
}

func TestTask_TitleRequired(t *testing.T) {
	err := Task("", "")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "title" {
		t.Fatalf("expected title ValidationError, got %v", err)
	}
	if err := Task(strings.Repeat("t", 200), ""); err != nil {
		t.Fatalf("200-char title rejected: %v", err)
	}
	if err := Task(strings.Repeat("t", 201), ""); err == nil {
		t.Fatal("201-char title accepted")
	}
}

func TestCredentials(t *testing.T) {
	if err := Credentials("user@example.com", "longenough"); err != nil {
		t.Fatalf("valid credentials rejected: %v", err)
	}
	err := Credentials("not-an-email", "longenough")
	var ve *apperr.ValidationError
	if !errors.As(err, &ve) || ve.Field != "email" {
		t.Fatalf("expected email ValidationError, got %v", err)
	}
	err = Credentials("user@example.com", "short")
	if !errors.As(err, &ve) || ve.Field != "password" {
		t.Fatalf("expected password ValidationError, got %v", err)
	}
}
