package schema

// Kind discriminates the field variants of the tree.
type Kind string

const (
	KindText    Kind = "text"
	KindDate    Kind = "date"
	KindChoice  Kind = "choice"
	KindBoolean Kind = "boolean"
	KindGroup   Kind = "group"
)

// ChoiceOption is one selectable (value, label) pair of a choice field.
type ChoiceOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// ScalarField is the non-group field variant. Group children are typed as
// ScalarField, which makes a group-of-group unrepresentable.
type ScalarField struct {
	ID          string         `json:"id"`
	Kind        Kind           `json:"kind"` // KindGroup only when embedded in Field
	Label       string         `json:"label"`
	Required    bool           `json:"required,omitempty"`
	Placeholder string         `json:"placeholder,omitempty"`
	Options     []ChoiceOption `json:"options,omitempty"` // KindChoice only
}

// Field is a top-level field. Only the group variant carries children; for
// every other kind the scalar part describes the field completely.
type Field struct {
	ScalarField
	Children []ScalarField `json:"children,omitempty"` // KindGroup only
}

// IsGroup reports whether the field is the repeatable-group variant.
func (f Field) IsGroup() bool { return f.Kind == KindGroup }

// allowsValue reports whether v matches one of the field's choice options.
func (s ScalarField) allowsValue(v string) bool {
	for _, opt := range s.Options {
		if opt.Value == v {
			return true
		}
	}
	return false
}

// displayName is the label used in validation messages, falling back to the
// field id when the generator produced an empty label.
func (s ScalarField) displayName() string {
	if s.Label != "" {
		return s.Label
	}
	return s.ID
}
