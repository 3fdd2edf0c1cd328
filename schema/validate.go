package schema

import "fmt"

// ValidationError describes one violation at a dot/index-qualified path into
// the value tree ("name", "members[0].email").
type ValidationError struct {
	FieldPath string `json:"fieldPath"`
	Message   string `json:"message"`
}

func errorAt(path, format string, args ...any) ValidationError {
	return ValidationError{FieldPath: path, Message: fmt.Sprintf(format, args...)}
}

// Validate checks a submitted value tree against a field tree and returns the
// accepted values together with every violation found.
//
// Validate accumulates all errors rather than failing fast: every field and
// every nested group instance is visited. Per field, the first violation
// wins: a field found missing while required is not additionally
// type-checked in the same pass. Keys that match no field are silently
// stripped from the accepted values, at the top level and inside group
// instances alike; everything else is passed through unmodified, so callers
// decide accept/reject by checking len(errs) == 0.
//
// Validate is pure and stateless; it is safe to call concurrently.
func Validate(fields []Field, values map[string]any) (map[string]any, []ValidationError) {
	accepted := make(map[string]any, len(values))
	var errs []ValidationError

	for _, field := range fields {
		value, present := values[field.ID]

		if field.IsGroup() {
			cleaned, keep, groupErrs := validateGroup(field, value, present)
			errs = append(errs, groupErrs...)
			if keep {
				accepted[field.ID] = cleaned
			}
			continue
		}

		if verr, ok := checkScalar(field.ScalarField, field.ID, value, present); !ok {
			errs = append(errs, verr)
		}
		if present {
			accepted[field.ID] = value
		}
	}

	return accepted, errs
}

// validateGroup checks one repeatable group value: absent or an ordered
// sequence of objects, each instance validated independently against the
// group's children. The returned value is the cleaned sequence (nested
// unknown keys stripped); keep is false when the key was absent.
func validateGroup(group Field, value any, present bool) (any, bool, []ValidationError) {
	name := group.displayName()

	if !present || value == nil {
		if group.Required {
			return nil, false, []ValidationError{errorAt(group.ID, "%s is required", name)}
		}
		return nil, false, nil
	}

	items, ok := value.([]any)
	if !ok {
		// Present but not a sequence: a type violation, not a missing value.
		return value, true, []ValidationError{errorAt(group.ID, "%s must be an array", name)}
	}

	var errs []ValidationError
	if group.Required && len(items) == 0 {
		errs = append(errs, errorAt(group.ID, "%s is required", name))
	}

	cleaned := make([]any, 0, len(items))
	for i, item := range items {
		instance, ok := item.(map[string]any)
		if !ok {
			errs = append(errs, errorAt(fmt.Sprintf("%s[%d]", group.ID, i), "%s entry must be an object", name))
			cleaned = append(cleaned, item)
			continue
		}

		// The inner loop mirrors the outer policy: every child is visited,
		// and a required violation on one child only short-circuits that
		// child's type check, never the rest of the instance.
		cleanedInstance := make(map[string]any, len(instance))
		for _, child := range group.Children {
			childValue, childPresent := instance[child.ID]
			path := fmt.Sprintf("%s[%d].%s", group.ID, i, child.ID)
			if verr, ok := checkScalar(child, path, childValue, childPresent); !ok {
				errs = append(errs, verr)
			}
			if childPresent {
				cleanedInstance[child.ID] = childValue
			}
		}
		cleaned = append(cleaned, cleanedInstance)
	}

	return cleaned, true, errs
}

// checkScalar applies the required/type/choice rules for one non-group field
// at the given path. It reports at most one violation: a missing required
// value suppresses the type check for that field in this pass.
func checkScalar(field ScalarField, path string, value any, present bool) (ValidationError, bool) {
	name := field.displayName()

	if !present || value == nil || value == "" {
		if field.Required {
			return errorAt(path, "%s is required", name), false
		}
		return ValidationError{}, true
	}

	switch field.Kind {
	case KindBoolean:
		if _, ok := value.(bool); !ok {
			return errorAt(path, "%s must be true or false", name), false
		}
	case KindChoice:
		selected, ok := value.(string)
		if !ok {
			return errorAt(path, "%s must be a string", name), false
		}
		if !field.allowsValue(selected) {
			return errorAt(path, "%s must be one of the allowed options", name), false
		}
	default: // KindText, KindDate
		if _, ok := value.(string); !ok {
			return errorAt(path, "%s must be a string", name), false
		}
	}

	return ValidationError{}, true
}
