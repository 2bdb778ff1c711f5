// Package wizard implements the multi-step form flow used by the chapter
// application and the workshop forms: a declarative field registry, a
// per-step validator, a navigation controller, and a submission client that
// turns the server's response into a typed outcome.
package wizard

import (
	"fmt"
	"strings"
)

// FieldKind enumerates the supported input kinds.
type FieldKind int

const (
	KindText FieldKind = iota
	KindSelect
	KindTextarea
	KindFile
	KindCheckboxGroup
)

// FormStep is one ordered stage of a wizard.
type FormStep struct {
	ID          string
	Title       string
	Description string
}

// FieldSpec declares a single input: where it lives, and what "valid" means
// for it. Pure data; validation behavior lives on the registry.
type FieldSpec struct {
	Name     string
	Label    string
	Kind     FieldKind
	StepID   string
	Required bool

	// Constraints. Zero values mean "unconstrained".
	MinLen        int
	MaxLen        int
	Options       []string // legal values for select / checkbox-group
	AcceptedTypes []string // file extensions, e.g. ".pdf"
}

// File is a binary attachment captured by a file field.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Value is what the controller holds for one field: scalar strings (repeated
// for checkbox groups) or a file attachment, never both.
type Value struct {
	Strings []string
	File    *File
}

// First returns the first scalar, or "".
func (v Value) First() string {
	if len(v.Strings) == 0 {
		return ""
	}
	return v.Strings[0]
}

// Empty reports whether the value carries no usable content.
func (v Value) Empty() bool {
	if v.File != nil {
		return len(v.File.Data) == 0
	}
	for _, s := range v.Strings {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}

// FieldError reports a single control failing validation.
type FieldError struct {
	Field   FieldSpec
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field.Name, e.Message)
}

// Registry is the full declaration of a wizard: its ordered steps and every
// field, each owned by exactly one step.
type Registry struct {
	Steps  []FormStep
	Fields []FieldSpec
}

// NewRegistry builds a registry and enforces the structural invariants:
// at least one step, unique field names, every field owned by a known step.
func NewRegistry(steps []FormStep, fields []FieldSpec) (*Registry, error) {
	if len(steps) == 0 {
		return nil, fmt.Errorf("registry needs at least one step")
	}
	stepIDs := make(map[string]bool, len(steps))
	for _, s := range steps {
		if stepIDs[s.ID] {
			return nil, fmt.Errorf("duplicate step id %q", s.ID)
		}
		stepIDs[s.ID] = true
	}
	names := make(map[string]bool, len(fields))
	for _, f := range fields {
		if names[f.Name] {
			return nil, fmt.Errorf("duplicate field name %q", f.Name)
		}
		names[f.Name] = true
		if !stepIDs[f.StepID] {
			return nil, fmt.Errorf("field %q references unknown step %q", f.Name, f.StepID)
		}
	}
	return &Registry{Steps: steps, Fields: fields}, nil
}

// MustRegistry is NewRegistry for statically declared forms.
func MustRegistry(steps []FormStep, fields []FieldSpec) *Registry {
	r, err := NewRegistry(steps, fields)
	if err != nil {
		panic(err)
	}
	return r
}

// FieldsForStep returns the fields owned by the step at the given index, in
// declaration order.
func (r *Registry) FieldsForStep(stepIndex int) []FieldSpec {
	if stepIndex < 0 || stepIndex >= len(r.Steps) {
		return nil
	}
	id := r.Steps[stepIndex].ID
	var out []FieldSpec
	for _, f := range r.Fields {
		if f.StepID == id {
			out = append(out, f)
		}
	}
	return out
}

// Check applies the field's declared constraints to a value. It mirrors
// native browser constraint validation: presence, length bounds, legal
// options, accepted file types. A nil return means the control passes.
func (f FieldSpec) Check(v Value) *FieldError {
	if v.Empty() {
		if f.Required {
			return &FieldError{Field: f, Message: "this field is required"}
		}
		return nil
	}

	if f.Kind == KindFile {
		if v.File == nil {
			return &FieldError{Field: f, Message: "expected a file"}
		}
		if len(f.AcceptedTypes) > 0 && !acceptedType(v.File.Name, f.AcceptedTypes) {
			return &FieldError{
				Field:   f,
				Message: "file type must be one of " + strings.Join(f.AcceptedTypes, ", "),
			}
		}
		return nil
	}

	if len(f.Options) > 0 {
		for _, s := range v.Strings {
			if !contains(f.Options, s) {
				return &FieldError{Field: f, Message: fmt.Sprintf("%q is not a valid choice", s)}
			}
		}
	}

	text := strings.TrimSpace(v.First())
	if f.MinLen > 0 && len(text) < f.MinLen {
		return &FieldError{Field: f, Message: fmt.Sprintf("must be at least %d characters", f.MinLen)}
	}
	if f.MaxLen > 0 && len(text) > f.MaxLen {
		return &FieldError{Field: f, Message: fmt.Sprintf("must be at most %d characters", f.MaxLen)}
	}
	return nil
}

func acceptedType(filename string, accepted []string) bool {
	lower := strings.ToLower(filename)
	for _, ext := range accepted {
		if strings.HasSuffix(lower, strings.ToLower(ext)) {
			return true
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
