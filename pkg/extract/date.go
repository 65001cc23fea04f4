package extract

import (
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/intake/pkg/domain"
)

// TargetInspectionDate names the inspection-date extraction.
const TargetInspectionDate = "inspection_date"

// InspectionDateRequest builds the extraction request for the user's reply to a proposed date.
// proposal is the message that offered the date; it is given to the completer as context.
func InspectionDateRequest(proposal, reply string, maxRetries int) Request[string] {
	return Request[string]{
		Target:     TargetInspectionDate,
		Prompt:     inspectionDatePrompt(proposal, reply),
		Parse:      ParseDate,
		Repair:     repairDatePrompt,
		MaxRetries: maxRetries,
	}
}

func inspectionDatePrompt(proposal, reply string) string {
	return fmt.Sprintf(`You are an assistant trying to set up an inspection date for a property.
You previously proposed a date in this message:
<assistant_message>
%s
</assistant_message>

The user replied as follows; extract the inspection date from their message:
<user_message>
%s
</user_message>

The date should be in the format YYYY-MM-DD HH:MM.
Return ONLY the date string in that format.`, proposal, reply)
}

func repairDatePrompt(malformed string, err error) string {
	return fmt.Sprintf(`The following answer is not a date in the format YYYY-MM-DD HH:MM (%v):

%s

Return ONLY the date string in that format, with no surrounding text.`, err, malformed)
}

// ParseDate accepts exactly one YYYY-MM-DD HH:MM value, ignoring surrounding whitespace.
func ParseDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	// time.Parse accepts single-digit hours; the layout length does not.
	if len(s) != len(domain.InspectionLayout) {
		return "", fmt.Errorf("invalid inspection date %q: want YYYY-MM-DD HH:MM", s)
	}
	if _, err := time.Parse(domain.InspectionLayout, s); err != nil {
		return "", fmt.Errorf("invalid inspection date %q: %w", s, err)
	}
	return s, nil
}
