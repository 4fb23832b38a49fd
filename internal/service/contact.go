package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mehendichic/mehendi-chic/internal/domain"
)

// ContactStore is where submissions live. They are mirror-resident only and
// never reach the database, so the store is the optimistic state mirror.
type ContactStore interface {
	AddContact(submission *domain.ContactSubmission)
	DeleteContact(id int64) error
	Contacts() []domain.ContactSubmission
}

// contactForm carries the validation rules for an inquiry, matching the
// public form's constraints.
type contactForm struct {
	Name    string `validate:"required,min=2,max=100"`
	Email   string `validate:"required,email,max=255"`
	Phone   string `validate:"required,min=10,max=20"`
	Message string `validate:"required,min=10,max=1000"`
}

// contactFieldMessages maps a failing field to its user-facing message.
var contactFieldMessages = map[string]string{
	"Name.min":      "Name must be at least 2 characters",
	"Name.max":      "Name is too long",
	"Name.required": "Name is required",
	"Email.email":   "Please enter a valid email address",
	"Email.max":     "Email is too long",
	"Email.required": "Email is required",
	"Phone.min":      "Phone number must be at least 10 digits",
	"Phone.max":      "Phone number is too long",
	"Phone.required": "Phone number is required",
	"Message.min":      "Message must be at least 10 characters",
	"Message.max":      "Message is too long",
	"Message.required": "Message is required",
}

// ContactService validates and records public contact inquiries.
type ContactService struct {
	store    ContactStore
	validate *validator.Validate
}

// NewContactService creates a new ContactService.
func NewContactService(store ContactStore) *ContactService {
	return &ContactService{
		store:    store,
		validate: validator.New(),
	}
}

// Add validates the fields and records the submission. All fields are
// trimmed before validation.
func (s *ContactService) Add(ctx context.Context, name, email, phone, message string) (*domain.ContactSubmission, error) {
	form := contactForm{
		Name:    strings.TrimSpace(name),
		Email:   strings.TrimSpace(email),
		Phone:   strings.TrimSpace(phone),
		Message: strings.TrimSpace(message),
	}

	if err := s.validate.Struct(form); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			first := errs[0]
			if msg, ok := contactFieldMessages[first.Field()+"."+first.Tag()]; ok {
				return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, msg)
			}
		}
		return nil, fmt.Errorf("%w: invalid contact details", domain.ErrInvalidInput)
	}

	submission := &domain.ContactSubmission{
		Name:    form.Name,
		Email:   form.Email,
		Phone:   form.Phone,
		Message: form.Message,
	}
	s.store.AddContact(submission)
	return submission, nil
}

// List returns all submissions, newest first.
func (s *ContactService) List(ctx context.Context) []domain.ContactSubmission {
	return s.store.Contacts()
}

// Delete removes a submission from the mirror. There is no remote
// counterpart to compensate.
func (s *ContactService) Delete(ctx context.Context, id int64) error {
	return s.store.DeleteContact(id)
}
