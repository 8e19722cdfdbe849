package validator_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/idir-jpg/study-success-matching/pkg/validator"
)

func fields(err error) []string {
	var out []string
	for _, e := range validator.ExtractValidationErrors(err) {
		out = append(out, e.Field)
	}
	return out
}

func TestApply(t *testing.T) {
	t.Parallel()

	t.Run("all rules pass", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("student", "10"),
			validator.ValidEmail("sender", "manon.curie@study-success.fr"),
		)
		assert.NoError(t, err)
	})

	t.Run("collects every failure", func(t *testing.T) {
		t.Parallel()
		err := validator.Apply(
			validator.Required("student", " "),
			validator.ValidEmail("sender", "manon"),
			validator.MaxLen("subject", "ok", 10),
		)
		require.Error(t, err)
		assert.Equal(t, []string{"student", "sender"}, fields(err))
		assert.Equal(t, "validation failed: student is required; sender must be a valid email address", err.Error())
	})

	t.Run("survives wrapping", func(t *testing.T) {
		t.Parallel()
		base := errors.New("invalid input")
		err := fmt.Errorf("%w: %w", base, validator.Apply(validator.Required("student", "")))
		assert.ErrorIs(t, err, base)
		ve := validator.ExtractValidationErrors(err)
		require.Len(t, ve, 1)
		assert.Equal(t, "student is required", ve.Detail())
	})

	assert.Nil(t, validator.ExtractValidationErrors(nil))
	assert.Nil(t, validator.ExtractValidationErrors(errors.New("other")))
	assert.Equal(t, "validation failed", validator.ValidationErrors{}.Error())
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{
		"manon.curie@study-success.fr",
		"jean.dupont@email.com",
		"user+tag@example.org",
		"Manon CURIE <manon.curie@study-success.fr>",
	}
	for _, v := range valid {
		assert.NoError(t, validator.Apply(validator.ValidEmail("email", v)), v)
	}

	invalid := []string{
		"",
		"   ",
		"plainaddress",
		"@missingdomain.com",
		"missing@.com",
		"missing@domain",
		"missing@domain.",
		"two@@example.com",
		"a@b..com",
	}
	for _, v := range invalid {
		assert.Error(t, validator.Apply(validator.ValidEmail("email", v)), v)
	}
}

func TestLengthRules(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(validator.MaxLen("name", "Élodie", 6)), "runes are counted, not bytes")
	err := validator.Apply(validator.MaxLen("name", strings.Repeat("a", 7), 6))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at most 6 characters long")

	assert.NoError(t, validator.Apply(
		validator.RequiredSlice("to", []string{"a@example.com"}),
		validator.MaxLenSlice("to", []string{"a@example.com"}, 1),
	))
	err = validator.Apply(
		validator.RequiredSlice("to", []string(nil)),
		validator.MaxLenSlice("bcc", []int{1, 2, 3}, 2),
	)
	assert.Equal(t, []string{"to", "bcc"}, fields(err))
	assert.Contains(t, err.Error(), "bcc must have at most 2 items")
}
