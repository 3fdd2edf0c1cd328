package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Wire field types exchanged with the generation backend and the rendering
// layer. They map 1:1 onto the internal kinds; "dynamic" is the repeatable
// group.
const (
	TypeText     = "text"
	TypeDate     = "date"
	TypeDropdown = "dropdown"
	TypeCheckbox = "checkbox"
	TypeDynamic  = "dynamic"
)

// Document is the wire form document: the contract consumed from the
// generation backend and produced for the rendering layer.
type Document struct {
	FormID string      `json:"formId"`
	Title  string      `json:"title,omitempty"`
	Fields []FieldSpec `json:"fields"`
}

// FieldSpec is the wire shape of a single field. Fields is populated only
// for type "dynamic" and is restricted to non-dynamic types.
type FieldSpec struct {
	ID          string         `json:"id"`
	Type        string         `json:"type"`
	Label       string         `json:"label"`
	Required    bool           `json:"required,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []ChoiceOption `json:"options,omitempty"`
	Order       int            `json:"order,omitempty"`
	Fields      []FieldSpec    `json:"fields,omitempty"`
}

// Submission is the wire submission payload for one form response.
type Submission struct {
	Data map[string]any `json:"data"`
}

var kindForType = map[string]Kind{
	TypeText:     KindText,
	TypeDate:     KindDate,
	TypeDropdown: KindChoice,
	TypeCheckbox: KindBoolean,
	TypeDynamic:  KindGroup,
}

// DecodeDocument parses and checks a wire form document. Field order
// defaults to the 1-based array position and fields are stably sorted by it,
// so downstream consumers see fields in declared order even when the
// generator emits them shuffled.
func DecodeDocument(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode form document: %w", err)
	}
	doc.normalize()
	if err := doc.check(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// DecodeSubmission parses a wire submission payload.
func DecodeSubmission(data []byte) (*Submission, error) {
	var sub Submission
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("decode submission: %w", err)
	}
	if sub.Data == nil {
		sub.Data = map[string]any{}
	}
	return &sub, nil
}

func (d *Document) normalize() {
	normalizeOrder(d.Fields)
	for i := range d.Fields {
		normalizeOrder(d.Fields[i].Fields)
	}
}

func normalizeOrder(specs []FieldSpec) {
	for i := range specs {
		if specs[i].Order == 0 {
			specs[i].Order = i + 1
		}
	}
	sort.SliceStable(specs, func(i, j int) bool { return specs[i].Order < specs[j].Order })
}

func (d *Document) check() error {
	if d.FormID == "" {
		return fmt.Errorf("form document: formId must not be empty")
	}
	if err := checkSpecs(d.Fields, true); err != nil {
		return err
	}
	return nil
}

// checkSpecs validates ids, types and nesting at one level of the tree.
// allowDynamic is false when checking a dynamic field's children.
func checkSpecs(specs []FieldSpec, allowDynamic bool) error {
	seen := make(map[string]struct{}, len(specs))
	for _, spec := range specs {
		if spec.ID == "" {
			return fmt.Errorf("form document: field with empty id")
		}
		if _, dup := seen[spec.ID]; dup {
			return fmt.Errorf("form document: duplicate field id %q", spec.ID)
		}
		seen[spec.ID] = struct{}{}

		if _, ok := kindForType[spec.Type]; !ok {
			return fmt.Errorf("form document: field %q has unknown type %q", spec.ID, spec.Type)
		}
		if spec.Type == TypeDynamic {
			if !allowDynamic {
				return fmt.Errorf("form document: field %q nests a dynamic field inside a dynamic field", spec.ID)
			}
			if len(spec.Fields) == 0 {
				return fmt.Errorf("form document: dynamic field %q has no child fields", spec.ID)
			}
			if err := checkSpecs(spec.Fields, false); err != nil {
				return err
			}
		} else if len(spec.Fields) > 0 {
			return fmt.Errorf("form document: field %q of type %q must not carry child fields", spec.ID, spec.Type)
		}
	}
	return nil
}

// FieldTree converts a checked document into the internal field model.
func (d *Document) FieldTree() []Field {
	fields := make([]Field, 0, len(d.Fields))
	for _, spec := range d.Fields {
		field := Field{ScalarField: spec.scalar()}
		if spec.Type == TypeDynamic {
			field.Children = make([]ScalarField, 0, len(spec.Fields))
			for _, child := range spec.Fields {
				field.Children = append(field.Children, child.scalar())
			}
		}
		fields = append(fields, field)
	}
	return fields
}

func (s FieldSpec) scalar() ScalarField {
	field := ScalarField{
		ID:          s.ID,
		Kind:        kindForType[s.Type],
		Label:       s.Label,
		Required:    s.Required,
		Placeholder: s.Placeholder,
	}
	// Options are only meaningful for dropdowns; anything else the
	// generator attached is dropped.
	if s.Type == TypeDropdown {
		field.Options = s.Options
	}
	return field
}
