package wizard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSubmitter struct {
	outcome  Outcome
	calls    int
	snapshot map[string]Value
}

func (f *fakeSubmitter) Submit(_ context.Context, values map[string]Value) Outcome {
	f.calls++
	f.snapshot = values
	return f.outcome
}

func twoStepForm(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(
		[]FormStep{
			{ID: "one", Title: "One"},
			{ID: "two", Title: "Two"},
		},
		[]FieldSpec{
			{Name: "name", Kind: KindText, StepID: "one", Required: true},
			{Name: "nickname", Kind: KindText, StepID: "one"},
			{Name: "email", Kind: KindText, StepID: "two", Required: true},
		},
	)
	require.NoError(t, err)
	return reg
}

func TestNext_BlockedWhileRequiredFieldEmpty(t *testing.T) {
	ctrl := NewController(twoStepForm(t), &fakeSubmitter{})

	assert.False(t, ctrl.Next())
	assert.Equal(t, 0, ctrl.Current())

	ctrl.SetText("name", "Ana")
	assert.True(t, ctrl.Next())
	assert.Equal(t, 1, ctrl.Current())
}

func TestNext_ReportsAndFocusesFirstFailingField(t *testing.T) {
	var reported, focused string
	ctrl := NewController(twoStepForm(t), &fakeSubmitter{},
		WithReport(func(f FieldSpec, msg string) { reported = f.Name + ": " + msg }),
		WithFocus(func(f FieldSpec) { focused = f.Name }),
	)

	assert.False(t, ctrl.Next())
	assert.Equal(t, "name: this field is required", reported)
	assert.Equal(t, "name", focused)
}

func TestBack_NeverValidates(t *testing.T) {
	ctrl := NewController(twoStepForm(t), &fakeSubmitter{})
	ctrl.SetText("name", "Ana")
	require.True(t, ctrl.Next())

	// Step two's required email is empty, back still succeeds.
	assert.True(t, ctrl.Back())
	assert.Equal(t, 0, ctrl.Current())

	// Already at step 0: no-op.
	assert.False(t, ctrl.Back())
	assert.Equal(t, 0, ctrl.Current())
}

func TestStepWithNoRequiredFieldsValidatesTrue(t *testing.T) {
	reg, err := NewRegistry(
		[]FormStep{{ID: "extras", Title: "Optional extras"}},
		[]FieldSpec{{Name: "comments", Kind: KindTextarea, StepID: "extras"}},
	)
	require.NoError(t, err)

	ctrl := NewController(reg, &fakeSubmitter{})
	assert.True(t, ctrl.ValidateStep(0))
}

func TestSubmit_OnlyFromLastStep(t *testing.T) {
	client := &fakeSubmitter{outcome: Accepted{}}
	ctrl := NewController(twoStepForm(t), client)
	ctrl.SetText("name", "Ana")

	assert.Nil(t, ctrl.Submit(t.Context()))
	assert.Equal(t, 0, client.calls)
}

func TestSubmit_SuccessResetsFormAndStep(t *testing.T) {
	var focused string
	client := &fakeSubmitter{outcome: Accepted{Message: "done"}}
	ctrl := NewController(twoStepForm(t), client,
		WithFocus(func(f FieldSpec) { focused = f.Name }))

	ctrl.SetText("name", "Ana")
	require.True(t, ctrl.Next())
	ctrl.SetText("email", "ana@example.com")

	outcome := ctrl.Submit(t.Context())
	require.IsType(t, Accepted{}, outcome)
	assert.Equal(t, 1, client.calls)

	// Terminal reset: step 0, empty values, focus on step 0's first field.
	assert.Equal(t, 0, ctrl.Current())
	assert.True(t, ctrl.Value("name").Empty())
	assert.True(t, ctrl.Value("email").Empty())
	assert.Equal(t, "name", focused)

	// back() immediately after is a no-op.
	assert.False(t, ctrl.Back())
	assert.Equal(t, 0, ctrl.Current())
}

func TestSubmit_FailurePreservesValues(t *testing.T) {
	client := &fakeSubmitter{outcome: Rejected{Message: "nope"}}
	ctrl := NewController(twoStepForm(t), client)

	ctrl.SetText("name", "Ana")
	require.True(t, ctrl.Next())
	ctrl.SetText("email", "ana@example.com")

	outcome := ctrl.Submit(t.Context())
	require.IsType(t, Rejected{}, outcome)

	assert.Equal(t, 1, ctrl.Current())
	assert.Equal(t, "ana@example.com", ctrl.Value("email").First())
	assert.Equal(t, "Ana", ctrl.Value("name").First())

	// User can correct and resubmit.
	outcome = ctrl.Submit(t.Context())
	require.IsType(t, Rejected{}, outcome)
	assert.Equal(t, 2, client.calls)
}

func TestSubmit_SnapshotIsACopy(t *testing.T) {
	client := &fakeSubmitter{outcome: Rejected{}}
	ctrl := NewController(twoStepForm(t), client)
	ctrl.SetText("name", "Ana")
	require.True(t, ctrl.Next())
	ctrl.SetText("email", "ana@example.com")
	ctrl.Submit(t.Context())

	ctrl.SetText("email", "other@example.com")
	assert.Equal(t, "ana@example.com", client.snapshot["email"].First())
}
