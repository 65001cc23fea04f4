package runtime

import (
	"strings"
	"testing"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderConfirmation(t *testing.T) {
	s := domain.NewState("render")
	s.OwnerDetails = &domain.OwnerDetails{
		FullName:     "Jane Doe",
		ContactInfo:  "jane@x.com",
		HomeAddress:  "123 Main St",
		HasUtilities: true,
	}

	out := renderConfirmation(s)
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{
		"Confirmation of Details:",
		"- full_name: Jane Doe",
		"- contact_info: jane@x.com",
		"- home_address: 123 Main St",
		"- has_utilities: true",
		"- is_vacant: false",
		"",
		"Thank you for providing your property details!",
	}, lines)

	s.InspectionDate = "2025-01-02 10:00"
	assert.Contains(t, renderConfirmation(s), "- is_vacant: false\n- Inspection Date: 2025-01-02 10:00\n")
}

func TestProposeInspection(t *testing.T) {
	assert.Contains(t, proposeInspection("2025-01-02 10:00"), "How does 2025-01-02 10:00 sound?")
}
