package runtime

import (
	"fmt"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
)

// renderConfirmation builds the owner summary in schema key order.
func renderConfirmation(s *domain.State) string {
	var sb strings.Builder
	sb.WriteString("Confirmation of Details:\n")

	if d := s.OwnerDetails; d != nil {
		fmt.Fprintf(&sb, "- full_name: %s\n", d.FullName)
		fmt.Fprintf(&sb, "- contact_info: %s\n", d.ContactInfo)
		fmt.Fprintf(&sb, "- home_address: %s\n", d.HomeAddress)
		fmt.Fprintf(&sb, "- has_utilities: %t\n", d.HasUtilities)
		fmt.Fprintf(&sb, "- is_vacant: %t\n", d.IsVacant)
	}
	if s.InspectionDate != "" {
		fmt.Fprintf(&sb, "- Inspection Date: %s\n", s.InspectionDate)
	}

	sb.WriteString("\nThank you for providing your property details!")
	return sb.String()
}
