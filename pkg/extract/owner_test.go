package extract_test

import (
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOwnerDetails(t *testing.T) {
	t.Run("valid with whitespace", func(t *testing.T) {
		got, err := extract.ParseOwnerDetails("\n  " + validOwnerJSON + "  \n")
		require.NoError(t, err)
		assert.Equal(t, domain.OwnerDetails{
			FullName:     "Jane Doe",
			ContactInfo:  "jane@x.com",
			HomeAddress:  "123 Main St",
			HasUtilities: true,
			IsVacant:     true,
		}, got)
	})

	invalid := map[string]string{
		"not json":          "Jane Doe, jane@x.com",
		"truncated":         `{"full_name": "Jane"`,
		"array":             `[1, 2]`,
		"null":              `null`,
		"missing key":       `{"full_name":"Jane","contact_info":"x","home_address":"y","has_utilities":true}`,
		"extra key":         `{"full_name":"Jane","contact_info":"x","home_address":"y","has_utilities":true,"is_vacant":false,"age":3}`,
		"string bool":       `{"full_name":"Jane","contact_info":"x","home_address":"y","has_utilities":"yes","is_vacant":false}`,
		"number name":       `{"full_name":7,"contact_info":"x","home_address":"y","has_utilities":true,"is_vacant":false}`,
		"null value":        `{"full_name":"Jane","contact_info":null,"home_address":"y","has_utilities":true,"is_vacant":false}`,
		"markdown fence":    "```json\n" + validOwnerJSON + "\n```",
		"trailing object":   validOwnerJSON + ` {}`,
		"case-variant keys": `{"FULL_NAME":"Jane","Contact_Info":"x","Home_Address":"y","Has_Utilities":true,"IS_VACANT":true}`,
		"one key upper":     `{"full_name":"Jane","contact_info":"x","home_address":"y","has_utilities":true,"IS_VACANT":true}`,
	}
	for name, raw := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := extract.ParseOwnerDetails(raw)
			assert.Error(t, err)
		})
	}
}

func TestParseDate(t *testing.T) {
	got, err := extract.ParseDate(" 2025-03-04 15:30\n")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04 15:30", got)

	for _, raw := range []string{
		"",
		"tomorrow at noon",
		"2025-03-04",
		"2025-3-4 15:30",
		"The date is 2025-03-04 15:30",
		"2025-03-04T15:30",
		"2025-13-04 15:30",
		"2025-03-04 9:30",
		"2025-03-04 15:30:00",
	} {
		_, err := extract.ParseDate(raw)
		assert.Error(t, err, "input %q", raw)
	}
}
