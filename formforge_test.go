package formforge

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/backend"
	"github.com/formforge/formforge/sandbox"
	"github.com/formforge/formforge/telemetry"
)

const cannedDocument = `{
	"formId": "feedback",
	"title": "Feedback",
	"fields": [
		{"id": "rating", "type": "dropdown", "label": "Rating", "required": true,
			"options": [{"value": "good", "label": "Good"}, {"value": "bad", "label": "Bad"}]},
		{"id": "comment", "type": "text", "label": "Comment"}
	]
}`

func TestFormForge_EndToEnd(t *testing.T) {
	ctx := context.Background()
	mock := backend.NewMock()
	mock.SetFallback(cannedDocument)
	recorder := telemetry.NewRecorder()
	provisioner := sandbox.NewInMemoryProvisioner()

	ff := New(mock, func(o *Options) {
		o.Sink = recorder
		o.Provisioner = provisioner
		o.UseSandbox = true
	})

	generated, err := ff.Generate(ctx, "a feedback form")
	require.NoError(t, err)
	assert.Equal(t, "feedback", generated.Document.FormID)
	assert.Equal(t, 0, provisioner.LiveCount())
	require.Len(t, recorder.Records(), 1)
	assert.NotEmpty(t, recorder.Records()[0].ResourceID)

	fetched, err := ff.Form(ctx, generated.ID)
	require.NoError(t, err)
	assert.Equal(t, generated.ID, fetched.ID)

	_, verrs, err := ff.Submit(ctx, generated.ID, map[string]any{"comment": "nice"})
	require.NoError(t, err)
	require.Len(t, verrs, 1)
	assert.Equal(t, "rating", verrs[0].FieldPath)

	rec, verrs, err := ff.Submit(ctx, generated.ID, map[string]any{"rating": "good"})
	require.NoError(t, err)
	assert.Empty(t, verrs)
	require.NotNil(t, rec)

	subs, err := ff.Submissions(ctx, generated.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)

	forms, err := ff.Forms(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, forms, 1)
}
