package form

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/formforge/formforge/backend"
	"github.com/formforge/formforge/runner"
	"github.com/formforge/formforge/sandbox"
	"github.com/formforge/formforge/telemetry"
)

const generatedDocument = `{
	"formId": "event-rsvp",
	"title": "Event RSVP",
	"fields": [
		{"id": "name", "type": "text", "label": "Name", "required": true},
		{"id": "guests", "type": "dynamic", "label": "Guests",
			"fields": [{"id": "email", "type": "text", "label": "Email", "required": true}]}
	]
}`

func newTestService(t *testing.T, response string) (*Service, *telemetry.Recorder) {
	t.Helper()
	mock := backend.NewMock()
	mock.SetFallback(response)
	recorder := telemetry.NewRecorder()
	r := runner.New(mock, func(o *runner.Options) { o.Sink = recorder })
	return NewService(r, NewInMemoryStore()), recorder
}

func TestService_GenerateAndSubmit(t *testing.T) {
	ctx := context.Background()
	svc, recorder := newTestService(t, generatedDocument)

	form, err := svc.Generate(ctx, "an RSVP form for our launch event")
	require.NoError(t, err)
	assert.Equal(t, "event-rsvp", form.Document.FormID)
	assert.Len(t, recorder.Records(), 1)

	// Invalid submission: full error list, nothing stored.
	_, verrs, err := svc.Submit(ctx, form.ID, map[string]any{
		"guests": []any{map[string]any{}},
	})
	require.NoError(t, err)
	require.Len(t, verrs, 2)
	assert.Equal(t, "name", verrs[0].FieldPath)
	assert.Equal(t, "guests[0].email", verrs[1].FieldPath)

	subs, err := svc.Submissions(ctx, form.ID)
	require.NoError(t, err)
	assert.Empty(t, subs)

	// Valid submission: stored with unknown keys stripped.
	rec, verrs, err := svc.Submit(ctx, form.ID, map[string]any{
		"name":  "Ada",
		"stray": true,
	})
	require.NoError(t, err)
	assert.Empty(t, verrs)
	require.NotNil(t, rec)
	assert.Equal(t, map[string]any{"name": "Ada"}, rec.Values)

	subs, err = svc.Submissions(ctx, form.ID)
	require.NoError(t, err)
	assert.Len(t, subs, 1)
}

func TestService_GenerateStripsFences(t *testing.T) {
	svc, _ := newTestService(t, "```json\n"+generatedDocument+"\n```")

	form, err := svc.Generate(context.Background(), "rsvp form")
	require.NoError(t, err)
	assert.Equal(t, "event-rsvp", form.Document.FormID)
}

func TestService_GenerateRepairsBrokenJSON(t *testing.T) {
	// Trailing comma: invalid JSON that jsonrepair can fix.
	broken := `{"formId": "f", "fields": [{"id": "a", "type": "text", "label": "A"},]}`
	svc, _ := newTestService(t, broken)

	form, err := svc.Generate(context.Background(), "tiny form")
	require.NoError(t, err)
	assert.Equal(t, "f", form.Document.FormID)
}

func TestService_GenerateRejectsGarbage(t *testing.T) {
	svc, _ := newTestService(t, "Sure! Here is your form: it has a name field.")

	_, err := svc.Generate(context.Background(), "a form")
	assert.Error(t, err)
}

func TestService_GenerateEmptyPrompt(t *testing.T) {
	svc, _ := newTestService(t, generatedDocument)

	_, err := svc.Generate(context.Background(), "   ")
	assert.Error(t, err)
}

func TestService_SubmitUnknownForm(t *testing.T) {
	svc, _ := newTestService(t, generatedDocument)

	_, _, err := svc.Submit(context.Background(), "nope", map[string]any{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_GenerateWithSandbox(t *testing.T) {
	mock := backend.NewMock()
	mock.SetFallback(generatedDocument)
	provisioner := sandbox.NewInMemoryProvisioner()
	r := runner.New(mock, func(o *runner.Options) { o.Provisioner = provisioner })
	svc := NewService(r, NewInMemoryStore(), func(o *Options) { o.UseSandbox = true })

	_, err := svc.Generate(context.Background(), "a form")
	require.NoError(t, err)
	// The sandbox was torn down with the run.
	assert.Equal(t, 0, provisioner.LiveCount())
}
