package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/mehendichic/mehendi-chic/internal/domain"
	"github.com/mehendichic/mehendi-chic/internal/mirror"
	"github.com/mehendichic/mehendi-chic/internal/service"
)

func newTestContactService(t *testing.T) (*service.ContactService, *mirror.Mirror) {
	t.Helper()
	m, err := mirror.New(t.TempDir())
	if err != nil {
		t.Fatalf("mirror.New: %v", err)
	}
	t.Cleanup(func() { m.Close() })
	return service.NewContactService(m), m
}

func TestContactService_Add(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()

	before := len(svc.List(ctx))

	submission, err := svc.Add(ctx, "  Priya Sharma  ", "priya@example.com", "9876543210", "I would like a bridal booking for December.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if submission.ID == 0 {
		t.Fatal("expected submission ID to be set")
	}
	if submission.Name != "Priya Sharma" {
		t.Fatalf("expected trimmed name, got %q", submission.Name)
	}
	if submission.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	list := svc.List(ctx)
	if len(list) != before+1 {
		t.Fatalf("expected %d submissions, got %d", before+1, len(list))
	}
	// Newest first.
	if list[0].ID != submission.ID {
		t.Fatalf("expected new submission first, got ID %d", list[0].ID)
	}
}

func TestContactService_Add_Invalid(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		fields  [4]string // name, email, phone, message
		message string
	}{
		{"short name", [4]string{"P", "p@example.com", "9876543210", "A long enough message."}, "Name must be at least 2 characters"},
		{"missing name", [4]string{"  ", "p@example.com", "9876543210", "A long enough message."}, "Name is required"},
		{"bad email", [4]string{"Priya", "not-an-email", "9876543210", "A long enough message."}, "Please enter a valid email address"},
		{"short phone", [4]string{"Priya", "p@example.com", "12345", "A long enough message."}, "Phone number must be at least 10 digits"},
		{"short message", [4]string{"Priya", "p@example.com", "9876543210", "Hi"}, "Message must be at least 10 characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Add(ctx, tt.fields[0], tt.fields[1], tt.fields[2], tt.fields[3])
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.message) {
				t.Fatalf("expected message %q in %q", tt.message, err.Error())
			}
		})
	}
}

func TestContactService_Delete(t *testing.T) {
	svc, _ := newTestContactService(t)
	ctx := context.Background()

	submission, err := svc.Add(ctx, "Priya Sharma", "priya@example.com", "9876543210", "I would like a bridal booking.")
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	if err := svc.Delete(ctx, submission.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	err = svc.Delete(ctx, submission.ID)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestContactService_SeededInquiries(t *testing.T) {
	svc, _ := newTestContactService(t)

	// A fresh mirror starts with the demo inquiries.
	list := svc.List(context.Background())
	if len(list) != 3 {
		t.Fatalf("expected 3 seeded inquiries, got %d", len(list))
	}
}
