package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// TargetOwnerDetails names the owner-details extraction.
const TargetOwnerDetails = "owner_details"

// ownerKeys is the exact key set of the owner-details record.
var ownerKeys = []string{"full_name", "contact_info", "home_address", "has_utilities", "is_vacant"}

// OwnerDetailsRequest builds the extraction request for the owner's free-text reply.
func OwnerDetailsRequest(input string, maxRetries int) Request[domain.OwnerDetails] {
	return Request[domain.OwnerDetails]{
		Target:     TargetOwnerDetails,
		Prompt:     ownerDetailsPrompt(input),
		Parse:      ParseOwnerDetails,
		Repair:     repairOwnerDetailsPrompt,
		MaxRetries: maxRetries,
	}
}

func ownerDetailsPrompt(input string) string {
	return fmt.Sprintf(`Extract the owner details from the following input and format as a JSON object:

%s

Expected fields: full_name (the user's full name, a string), contact_info (phone
number or email address, a string), home_address (home address, a string),
has_utilities (whether the utilities are working, boolean), and
is_vacant (whether the home is vacant, boolean).

Return ONLY a valid JSON with those keys.`, input)
}

func repairOwnerDetailsPrompt(malformed string, err error) string {
	return fmt.Sprintf(`The following JSON is not valid (%v). Please fix it:

%s

Return ONLY a valid JSON string with the keys:
full_name (str), contact_info (str), home_address (str),
has_utilities (bool), is_vacant (bool).

Do not add any prefix or formatting to the JSON.`, err, malformed)
}

// ParseOwnerDetails parses a JSON object carrying exactly the five owner-details keys.
// Extra, missing or null keys and wrongly typed values are rejected.
func ParseOwnerDetails(raw string) (domain.OwnerDetails, error) {
	var details domain.OwnerDetails

	fields, err := decodeObject(raw)
	if err != nil {
		return details, err
	}

	var nulls []string
	for k, v := range fields {
		if v == nil {
			nulls = append(nulls, k)
		}
	}
	if len(nulls) > 0 {
		sort.Strings(nulls)
		return details, fmt.Errorf("null values for keys: %s", strings.Join(nulls, ", "))
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &details,
		ErrorUnused: true,
		ErrorUnset:  true,
		// Keys must match the schema exactly; mapstructure folds case otherwise.
		MatchName: func(mapKey, fieldName string) bool { return mapKey == fieldName },
	})
	if err != nil {
		return details, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(fields); err != nil {
		return domain.OwnerDetails{}, fmt.Errorf("owner details do not match schema %v: %w", ownerKeys, err)
	}
	return details, nil
}

// decodeObject decodes a single JSON object, rejecting trailing content.
func decodeObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(strings.TrimSpace(raw)))

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if fields == nil {
		return nil, errors.New("expected a JSON object")
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected content after JSON object")
	}
	return fields, nil
}
