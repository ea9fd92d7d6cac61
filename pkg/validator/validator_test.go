package validator

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type venueForm struct {
	Name      string `validate:"required,min=3"`
	PitchType string `validate:"omitempty,oneof=grass turf indoor"`
}

func TestParseError(t *testing.T) {
	v := validator.New()

	t.Run("validation errors keyed by field", func(t *testing.T) {
		err := v.Struct(venueForm{Name: "", PitchType: "sand"})
		require.Error(t, err)

		out := ParseError(err)
		assert.Equal(t, "this field is required", out["Name"])
		assert.Equal(t, "must be one of: grass turf indoor", out["PitchType"])
	})

	t.Run("min carries its parameter", func(t *testing.T) {
		err := v.Struct(venueForm{Name: "ab"})
		require.Error(t, err)
		assert.Equal(t, "must be at least 3", ParseError(err)["Name"])
	})

	t.Run("non-validation errors collapse into one entry", func(t *testing.T) {
		out := ParseError(errors.New("unexpected EOF"))
		assert.Equal(t, map[string]string{"error": "unexpected EOF"}, out)
	})
}
