package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/schema"
)

// Interface compliance (compile-time assertion)
var _ Store = (*InMemoryStore)(nil)

func storedForm(id string) StoredForm {
	return StoredForm{
		ID: id,
		Document: schema.Document{
			FormID: "wire-" + id,
			Fields: []schema.FieldSpec{{ID: "name", Type: schema.TypeText, Label: "Name"}},
		},
	}
}

func TestInMemoryStore_Forms(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_, err := store.GetForm(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SaveForm(ctx, storedForm("a")))
	require.NoError(t, store.SaveForm(ctx, storedForm("b")))

	form, err := store.GetForm(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "wire-a", form.Document.FormID)

	// Most recent first, limit respected.
	forms, err := store.ListForms(ctx, 1)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "b", forms[0].ID)

	all, err := store.ListForms(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestInMemoryStore_Submissions(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()
	require.NoError(t, store.SaveForm(ctx, storedForm("a")))

	err := store.SaveSubmission(ctx, SubmissionRecord{ID: "s1", FormID: "nope"})
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.SaveSubmission(ctx, SubmissionRecord{ID: "s1", FormID: "a"}))
	require.NoError(t, store.SaveSubmission(ctx, SubmissionRecord{ID: "s2", FormID: "a"}))

	subs, err := store.ListSubmissions(ctx, "a")
	require.NoError(t, err)
	require.Len(t, subs, 2)
	assert.Equal(t, "s1", subs[0].ID)
}
