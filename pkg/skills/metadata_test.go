package skills

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name string
		rule string
	}{
		{"pdf-processing", ""},
		{"my-skill", ""},
		{"skill123", ""},
		{"123-skill", ""},
		{"a", ""},
		{"a1-b2-c3", ""},
		{strings.Repeat("a", 64), ""},
		{"", ruleNameLength},
		{strings.Repeat("a", 65), ruleNameLength},
		{"Invalid", ruleNamePattern},
		{"-invalid", ruleNamePattern},
		{"invalid-", ruleNamePattern},
		{"skill_name", ruleNamePattern},
		{"skill name", ruleNamePattern},
		{"invalid--name", ruleNameHyphens},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.name)
			if tt.rule == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var fieldErr *FieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, "name", fieldErr.Field)
			assert.Equal(t, tt.rule, fieldErr.Rule)
			assert.Contains(t, err.Error(), tt.rule)
		})
	}
}

func TestValidateDescription(t *testing.T) {
	assert.NoError(t, ValidateDescription("x"))
	assert.NoError(t, ValidateDescription(strings.Repeat("x", 1024)))
	assert.NoError(t, ValidateDescription(strings.Repeat("é", 1024)), "length is counted in characters")

	for _, desc := range []string{"", strings.Repeat("x", 1025)} {
		err := ValidateDescription(desc)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrValidation))
		assert.Contains(t, err.Error(), "description")
	}
}

func TestValidateCompatibility(t *testing.T) {
	assert.NoError(t, ValidateCompatibility(""))
	assert.NoError(t, ValidateCompatibility(strings.Repeat("c", 500)))

	err := ValidateCompatibility(strings.Repeat("c", 501))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Contains(t, err.Error(), "compatibility")
}

func TestNewMetadata(t *testing.T) {
	t.Run("minimal", func(t *testing.T) {
		meta, err := NewMetadata(RawMetadata{Name: "test", Description: "A test skill."})
		require.NoError(t, err)
		assert.Equal(t, "test", meta.Name)
		assert.Empty(t, meta.License)
		assert.Nil(t, meta.Metadata)
		assert.Nil(t, meta.AllowedTools)
	})

	t.Run("trims the name", func(t *testing.T) {
		meta, err := NewMetadata(RawMetadata{Name: "  test  ", Description: "d"})
		require.NoError(t, err)
		assert.Equal(t, "test", meta.Name)
	})

	t.Run("copies collections", func(t *testing.T) {
		raw := RawMetadata{
			Name:         "test",
			Description:  "d",
			Metadata:     map[string]string{"author": "me"},
			AllowedTools: []string{"Read"},
		}
		meta, err := NewMetadata(raw)
		require.NoError(t, err)

		raw.Metadata["author"] = "someone else"
		raw.AllowedTools[0] = "Write"
		assert.Equal(t, "me", meta.Metadata["author"])
		assert.Equal(t, []string{"Read"}, meta.AllowedTools)
	})

	t.Run("invalid fields", func(t *testing.T) {
		_, err := NewMetadata(RawMetadata{Name: "Bad Name", Description: "d"})
		assert.True(t, errors.Is(err, ErrValidation))

		_, err = NewMetadata(RawMetadata{Name: "good"})
		assert.True(t, errors.Is(err, ErrValidation))

		_, err = NewMetadata(RawMetadata{Name: "good", Description: "d", Compatibility: strings.Repeat("c", 501)})
		assert.True(t, errors.Is(err, ErrValidation))
	})
}
