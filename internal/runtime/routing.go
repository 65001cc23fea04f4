package runtime

import (
	"sort"

	"github.com/aretw0/intake/pkg/domain"
)

// RouteUserType dispatches on the classified user type.
// Anything other than owner or resident sends the run back to detect_user_type.
func RouteUserType(s *domain.State) string {
	switch s.UserType {
	case domain.UserOwner:
		return domain.RouteOwner
	case domain.UserResident:
		return domain.RouteResident
	default:
		return domain.RouteUnclassified
	}
}

// RouteOwnerDetails reports whether the home is ready for an inspection:
// utilities on and vacant. A missing record is not ready.
func RouteOwnerDetails(s *domain.State) string {
	d := s.OwnerDetails
	if d != nil && d.HasUtilities && d.IsVacant {
		return domain.RouteReady
	}
	return domain.RouteNotReady
}

func unconditional(*domain.State) string {
	return domain.RouteAlways
}

func sortedLabels(edges map[string]domain.StepID) []string {
	labels := make([]string, 0, len(edges))
	for label := range edges {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}
