package form

import (
	"context"
	"errors"
	"time"

	"github.com/formforge/formforge/schema"
)

// ErrNotFound is returned when a form for the given id does not exist in the
// underlying store.
var ErrNotFound = errors.New("form not found")

// StoredForm is a persisted generated form.
type StoredForm struct {
	ID        string          `json:"id"`
	Prompt    string          `json:"prompt"`
	Document  schema.Document `json:"document"`
	CreatedAt time.Time       `json:"created_at"`
}

// SubmissionRecord is one accepted (validated) response to a form.
type SubmissionRecord struct {
	ID          string         `json:"id"`
	FormID      string         `json:"form_id"`
	Values      map[string]any `json:"values"`
	SubmittedAt time.Time      `json:"submitted_at"`
}

// Store abstracts form and submission persistence.
type Store interface {
	SaveForm(ctx context.Context, form StoredForm) error
	GetForm(ctx context.Context, id string) (*StoredForm, error)
	ListForms(ctx context.Context, limit int) ([]StoredForm, error)
	SaveSubmission(ctx context.Context, sub SubmissionRecord) error
	ListSubmissions(ctx context.Context, formID string) ([]SubmissionRecord, error)
}
