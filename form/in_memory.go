package form

import (
	"context"
	"sync"
)

// InMemoryStore is a volatile Store implementation keeping forms and
// submissions in process-local maps. Safe for concurrent access and best
// suited for tests or ephemeral demo servers; listings return copies to
// prevent external mutation of internal state.
type InMemoryStore struct {
	mu          sync.RWMutex
	forms       map[string]StoredForm
	order       []string // form ids, insertion order
	submissions map[string][]SubmissionRecord
}

// NewInMemoryStore constructs an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		forms:       make(map[string]StoredForm),
		submissions: make(map[string][]SubmissionRecord),
	}
}

// SaveForm stores a form snapshot.
func (s *InMemoryStore) SaveForm(_ context.Context, form StoredForm) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.forms[form.ID]; !exists {
		s.order = append(s.order, form.ID)
	}
	s.forms[form.ID] = form
	return nil
}

// GetForm returns the form with the given id or ErrNotFound.
func (s *InMemoryStore) GetForm(_ context.Context, id string) (*StoredForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	form, ok := s.forms[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &form, nil
}

// ListForms returns up to limit forms, most recent first. A non-positive
// limit returns all forms.
func (s *InMemoryStore) ListForms(_ context.Context, limit int) ([]StoredForm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}
	forms := make([]StoredForm, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(forms) < limit; i-- {
		forms = append(forms, s.forms[s.order[i]])
	}
	return forms, nil
}

// SaveSubmission appends a submission to its form's history.
func (s *InMemoryStore) SaveSubmission(_ context.Context, sub SubmissionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.forms[sub.FormID]; !ok {
		return ErrNotFound
	}
	s.submissions[sub.FormID] = append(s.submissions[sub.FormID], sub)
	return nil
}

// ListSubmissions returns all submissions for a form in arrival order.
func (s *InMemoryStore) ListSubmissions(_ context.Context, formID string) ([]SubmissionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.forms[formID]; !ok {
		return nil, ErrNotFound
	}
	subs := make([]SubmissionRecord, len(s.submissions[formID]))
	copy(subs, s.submissions[formID])
	return subs, nil
}
