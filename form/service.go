package form

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/kaptinlin/jsonrepair"

	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/internal/util"
	"github.com/formforge/formforge/logging"
	"github.com/formforge/formforge/runner"
	"github.com/formforge/formforge/schema"
)

// DefaultInstructions is the system prompt used for form generation unless
// overridden. It pins the backend to the wire contract the schema package
// decodes.
const DefaultInstructions = `You convert a plain-language description of a form into a JSON document.
Respond with a single JSON object and nothing else. The object has:
- "formId": a short kebab-case identifier derived from the description
- "title": a human-readable form title
- "fields": an array of field objects with "id", "type", "label", and
  optionally "required", "placeholder", "order"
Valid types are "text", "date", "dropdown", "checkbox" and "dynamic".
Dropdown fields carry "options": an array of {"value", "label"} pairs.
Dynamic fields are repeatable groups and carry a nested "fields" array of
non-dynamic fields. Never nest a dynamic field inside another dynamic field.`

// Options holds dependency + configuration overrides passed to NewService().
type Options struct {
	// Instructions overrides DefaultInstructions.
	Instructions string
	// UseSandbox generates inside an ephemeral sandbox; requires the
	// service's runner to have a provisioner.
	UseSandbox bool
	// SandboxConfig is passed opaquely to the provisioner.
	SandboxConfig map[string]any
	// Logger for service-level events.
	Logger logging.Logger
}

// Service drives form generation and submission validation.
type Service struct {
	runner        *runner.Runner
	store         Store
	instructions  string
	useSandbox    bool
	sandboxConfig map[string]any
	logger        logging.Logger
}

// NewService constructs a Service around a runner and a store.
func NewService(r *runner.Runner, store Store, optFns ...func(o *Options)) *Service {
	opts := Options{
		Instructions: DefaultInstructions,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Service{
		runner:        r,
		store:         store,
		instructions:  opts.Instructions,
		useSandbox:    opts.UseSandbox,
		sandboxConfig: opts.SandboxConfig,
		logger:        opts.Logger,
	}
}

// Generate runs the backend against the prompt, decodes the produced form
// document and persists it.
func (s *Service) Generate(ctx context.Context, prompt string) (*StoredForm, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("form: prompt must not be empty")
	}

	def := core.TaskDefinition{
		Instructions:     s.instructions,
		RequiresResource: s.useSandbox,
		ResourceConfig:   s.sandboxConfig,
	}
	out, err := s.runner.Run(ctx, def, core.TaskInput{Text: prompt})
	if err != nil {
		return nil, fmt.Errorf("form: generation failed: %w", err)
	}

	doc, err := decodeGenerated(out.Text)
	if err != nil {
		return nil, fmt.Errorf("form: backend produced an unusable document: %w", err)
	}

	form := StoredForm{
		ID:        util.NewID(),
		Prompt:    prompt,
		Document:  *doc,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.SaveForm(ctx, form); err != nil {
		return nil, fmt.Errorf("form: save failed: %w", err)
	}

	s.logger.Info("form generated",
		"form_id", form.ID,
		"wire_form_id", doc.FormID,
		"fields", len(doc.Fields),
	)
	return &form, nil
}

// Get returns a stored form by id.
func (s *Service) Get(ctx context.Context, id string) (*StoredForm, error) {
	return s.store.GetForm(ctx, id)
}

// List returns up to limit stored forms, most recent first.
func (s *Service) List(ctx context.Context, limit int) ([]StoredForm, error) {
	return s.store.ListForms(ctx, limit)
}

// Submit validates a submitted value tree against the stored form. When the
// error list is empty the accepted values are persisted and the record is
// returned; otherwise the full violation list is returned and nothing is
// stored. The error return is reserved for lookup/persistence failures.
func (s *Service) Submit(ctx context.Context, formID string, data map[string]any) (*SubmissionRecord, []schema.ValidationError, error) {
	form, err := s.store.GetForm(ctx, formID)
	if err != nil {
		return nil, nil, err
	}

	accepted, verrs := schema.Validate(form.Document.FieldTree(), data)
	if len(verrs) > 0 {
		return nil, verrs, nil
	}

	rec := SubmissionRecord{
		ID:          util.NewID(),
		FormID:      formID,
		Values:      accepted,
		SubmittedAt: time.Now().UTC(),
	}
	if err := s.store.SaveSubmission(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("form: save submission failed: %w", err)
	}
	return &rec, nil, nil
}

// Submissions returns all accepted submissions for a form.
func (s *Service) Submissions(ctx context.Context, formID string) ([]SubmissionRecord, error) {
	return s.store.ListSubmissions(ctx, formID)
}

// decodeGenerated turns raw backend text into a checked form document.
// Models habitually wrap JSON in markdown fences or emit slightly broken
// JSON; fences are stripped first and jsonrepair gets one attempt before
// giving up.
func decodeGenerated(text string) (*schema.Document, error) {
	payload := stripFences(text)

	doc, err := schema.DecodeDocument([]byte(payload))
	if err == nil {
		return doc, nil
	}

	repaired, repairErr := jsonrepair.JSONRepair(payload)
	if repairErr != nil {
		return nil, err // report the original decode error
	}
	return schema.DecodeDocument([]byte(repaired))
}

func stripFences(text string) string {
	trimmed := strings.TrimSpace(text)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
