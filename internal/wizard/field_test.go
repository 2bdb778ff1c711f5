package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_Invariants(t *testing.T) {
	_, err := NewRegistry(nil, nil)
	assert.Error(t, err, "zero steps")

	_, err = NewRegistry(
		[]FormStep{{ID: "a"}, {ID: "a"}},
		nil,
	)
	assert.Error(t, err, "duplicate step id")

	_, err = NewRegistry(
		[]FormStep{{ID: "a"}},
		[]FieldSpec{
			{Name: "x", StepID: "a"},
			{Name: "x", StepID: "a"},
		},
	)
	assert.Error(t, err, "duplicate field name")

	_, err = NewRegistry(
		[]FormStep{{ID: "a"}},
		[]FieldSpec{{Name: "x", StepID: "missing"}},
	)
	assert.Error(t, err, "unknown step")
}

func TestFieldCheck_Required(t *testing.T) {
	f := FieldSpec{Name: "name", Required: true}

	assert.NotNil(t, f.Check(Value{}))
	assert.NotNil(t, f.Check(Value{Strings: []string{"   "}}))
	assert.Nil(t, f.Check(Value{Strings: []string{"Ana"}}))
}

func TestFieldCheck_OptionalEmptyPasses(t *testing.T) {
	f := FieldSpec{Name: "notes", MinLen: 10}
	assert.Nil(t, f.Check(Value{}))
}

func TestFieldCheck_LengthBounds(t *testing.T) {
	f := FieldSpec{Name: "motivation", MinLen: 5, MaxLen: 10}

	assert.NotNil(t, f.Check(Value{Strings: []string{"abc"}}))
	assert.Nil(t, f.Check(Value{Strings: []string{"abcdef"}}))
	assert.NotNil(t, f.Check(Value{Strings: []string{"abcdefghijk"}}))
}

func TestFieldCheck_Options(t *testing.T) {
	f := FieldSpec{Name: "interests", Kind: KindCheckboxGroup, Options: []string{"mentoring", "logistics"}}

	assert.Nil(t, f.Check(Value{Strings: []string{"mentoring", "logistics"}}))
	ferr := f.Check(Value{Strings: []string{"mentoring", "karaoke"}})
	require.NotNil(t, ferr)
	assert.Contains(t, ferr.Message, "karaoke")
}

func TestFieldCheck_FileTypes(t *testing.T) {
	f := FieldSpec{Name: "letter", Kind: KindFile, AcceptedTypes: []string{".pdf", ".docx"}}

	assert.Nil(t, f.Check(Value{File: &File{Name: "Letter.PDF", Data: []byte("x")}}))
	assert.NotNil(t, f.Check(Value{File: &File{Name: "letter.exe", Data: []byte("x")}}))

	// Required file with empty data counts as missing.
	f.Required = true
	assert.NotNil(t, f.Check(Value{File: &File{Name: "letter.pdf"}}))
}

func TestDeclaredForms_AreStructurallyValid(t *testing.T) {
	// MustRegistry panics on a broken declaration; constructing each form is
	// the test.
	assert.Len(t, ChapterApplicationForm().Steps, 4)
	assert.Len(t, WorkshopVolunteerForm().Steps, 2)
	assert.Len(t, WorkshopRSVPForm().Steps, 1)
	assert.Len(t, WorkshopContactForm().Steps, 1)
}
