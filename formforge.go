// Package formforge provides a high-level façade over the runner and form
// service abstractions (backends, sandboxes, stores & logging) enabling rapid
// construction of prompt-to-form applications. Most applications interact
// with this package by:
//  1. Creating a FormForge via New() around an execution backend (optionally
//     overriding the default in-memory store)
//  2. Generating forms from plain-language prompts (Generate)
//  3. Accepting and validating responses (Submit)
//
// The façade delegates orchestration to runner.Runner while keeping setup and
// usage ergonomics concise. All defaults are safe for local development and
// testing; production deployments typically supply a durable store, a real
// sandbox provisioner and a structured logger.
package formforge

import (
	"context"

	"github.com/formforge/formforge/core"
	"github.com/formforge/formforge/form"
	"github.com/formforge/formforge/logging"
	"github.com/formforge/formforge/runner"
	"github.com/formforge/formforge/schema"
	"github.com/formforge/formforge/telemetry"
)

// Options configures the FormForge instance.
type Options struct {
	// Store persists forms and submissions (defaults to in-memory).
	Store form.Store

	// Provisioner supplies ephemeral sandboxes for generation runs. Leave
	// nil to run without sandboxes.
	Provisioner core.ResourceProvisioner

	// Sink receives one record per run (defaults to a logging sink).
	Sink core.ObservabilitySink

	// UseSandbox provisions a sandbox around every generation run. Requires
	// a Provisioner.
	UseSandbox bool

	// SandboxConfig is passed opaquely to the provisioner on acquire.
	SandboxConfig map[string]any

	// Instructions overrides the default generation system prompt.
	Instructions string

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// FormForge is the high-level façade aggregating the runner and form service.
type FormForge struct {
	opts Options
	svc  *form.Service
}

// New creates a new FormForge instance around an execution backend with
// optional overrides. Any unset service is initialized with an in-memory
// implementation.
func New(backend core.ExecutionBackend, optFns ...func(o *Options)) *FormForge {
	opts := Options{
		Store:        form.NewInMemoryStore(),
		Instructions: form.DefaultInstructions,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Sink == nil {
		opts.Sink = telemetry.NewLoggingSink(opts.Logger)
	}

	r := runner.New(backend, func(o *runner.Options) {
		o.Provisioner = opts.Provisioner
		o.Sink = opts.Sink
		o.Logger = opts.Logger
	})
	svc := form.NewService(r, opts.Store, func(o *form.Options) {
		if opts.Instructions != "" {
			o.Instructions = opts.Instructions
		}
		o.UseSandbox = opts.UseSandbox
		o.SandboxConfig = opts.SandboxConfig
		o.Logger = opts.Logger
	})

	return &FormForge{opts: opts, svc: svc}
}

// Service exposes the underlying form service for advanced wiring (HTTP
// servers, custom transports).
func (f *FormForge) Service() *form.Service { return f.svc }

// Generate turns a plain-language prompt into a stored form.
func (f *FormForge) Generate(ctx context.Context, prompt string) (*form.StoredForm, error) {
	return f.svc.Generate(ctx, prompt)
}

// Form returns a stored form by id.
func (f *FormForge) Form(ctx context.Context, id string) (*form.StoredForm, error) {
	return f.svc.Get(ctx, id)
}

// Forms returns up to limit stored forms, most recent first.
func (f *FormForge) Forms(ctx context.Context, limit int) ([]form.StoredForm, error) {
	return f.svc.List(ctx, limit)
}

// Submit validates a value tree against a stored form. A nil error with a
// non-empty violation list means the submission was rejected; a returned
// record means it was accepted and persisted.
func (f *FormForge) Submit(ctx context.Context, formID string, data map[string]any) (*form.SubmissionRecord, []schema.ValidationError, error) {
	return f.svc.Submit(ctx, formID, data)
}

// Submissions returns all accepted submissions for a form.
func (f *FormForge) Submissions(ctx context.Context, formID string) ([]form.SubmissionRecord, error) {
	return f.svc.Submissions(ctx, formID)
}
