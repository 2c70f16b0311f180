package validator_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/portfolio/pkg/validator"
)

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("aggregates every failure", func(t *testing.T) {
		t.Parallel()

		err := validator.Apply(
			validator.RequiredString("name", ""),
			validator.RequiredString("company", "Acme"),
			validator.RequiredString("title", "  "),
		)
		require.Error(t, err)

		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 2)
		assert.Equal(t, []string{"name", "title"}, verrs.Fields())
		assert.True(t, verrs.Has("name"))
		assert.False(t, verrs.Has("company"))
	})

	t.Run("nil when all pass", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, validator.Apply(validator.RequiredString("name", "Jo")))
	})
}

func TestApplyFirst(t *testing.T) {
	t.Parallel()

	t.Run("stops at first failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		counting := validator.Rule{
			Check: func() bool { calls++; return false },
			Error: validator.ValidationError{Field: "late"},
		}

		err := validator.ApplyFirst(
			validator.RequiredString("name", "Jo"),
			validator.RequiredString("company", ""),
			counting,
		)
		verrs := validator.ExtractValidationErrors(err)
		require.Len(t, verrs, 1)
		assert.Equal(t, "company", verrs[0].Field)
		assert.Equal(t, "validation.required", verrs[0].TranslationKey)
		assert.Zero(t, calls)
	})

	t.Run("wrapped errors are still recognised", func(t *testing.T) {
		t.Parallel()

		err := fmt.Errorf("contact: %w", validator.ApplyFirst(validator.RequiredString("name", "")))
		assert.NotEmpty(t, validator.ExtractValidationErrors(err))
		assert.True(t, errors.Is(err, validator.ErrValidationFailed))
	})
}

func TestWhen(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.ApplyFirst(validator.When(false, validator.ValidEmailSimple("email", "bad"))))
	assert.Error(t, validator.ApplyFirst(validator.When(true, validator.ValidEmailSimple("email", "bad"))))
}

func TestRequiredOneOf(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.RequiredOneOf("contact", "", "0612345678")))
	assert.NoError(t, validator.Apply(validator.RequiredOneOf("contact", "jo@x.com", "")))
	assert.Error(t, validator.Apply(validator.RequiredOneOf("contact", " ", "\t")))
	assert.Error(t, validator.Apply(validator.RequiredOneOf("contact")))
}

func TestInList(t *testing.T) {
	t.Parallel()

	allowed := []string{"Expanded", "Collapsed"}
	assert.NoError(t, validator.Apply(validator.InList("size", "Collapsed", allowed)))

	verrs := validator.ExtractValidationErrors(validator.Apply(validator.InList("size", "Huge", allowed)))
	require.Len(t, verrs, 1)
	assert.Equal(t, "validation.in_list", verrs[0].TranslationKey)
}

func TestMaxLenString(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MaxLenString("name", "éé", 2)))
	verrs := validator.ExtractValidationErrors(validator.Apply(validator.MaxLenString("name", "abc", 2)))
	require.Len(t, verrs, 1)
	assert.Equal(t, validator.KeyMaxLength, verrs[0].TranslationKey)
}

func TestIsSimpleEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"jo@x.com", true},
		{"first.last@sub.example.org", true},
		{"not-an-email", false},
		{"jo@x", false},
		{"jo@x.", false},
		{"jo@.com", false},
		{"@x.com", false},
		{"jo@@x.com", false},
		{"jo@x@y.com", false},
		{"jo @x.com", false},
		{"jo@x.com\n", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.IsSimpleEmail(tt.value))
		})
	}
}

func TestIsPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		want  bool
	}{
		{"0612345678", true},
		{"06 12 34 56 78", true},
		{"06.12.34.56.78", true},
		{"06-12-34-56-78", true},
		{"+33612345678", true},
		{"+33 (6) 12 34 56 78", true},
		{"+14155550123", true},
		{"+44 20 7946 0958", true},
		{"0012345678", false},
		{"061234567", false},
		{"06123456789", false},
		{"+3", false},
		{"+1234", false},
		{"phone", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, validator.IsPhone(tt.value))
		})
	}
}

func TestFormatRuleMessages(t *testing.T) {
	t.Parallel()

	verrs := validator.ExtractValidationErrors(validator.ApplyFirst(validator.ValidEmailSimple("email", "nope")))
	require.Len(t, verrs, 1)
	assert.Equal(t, "invalid email", verrs[0].Message)

	verrs = validator.ExtractValidationErrors(validator.ApplyFirst(validator.ValidPhone("phone", "12")))
	require.Len(t, verrs, 1)
	assert.Equal(t, "invalid phone", verrs[0].Message)
}
