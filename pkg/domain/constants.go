package domain

// StepID is the tagged identifier of a workflow step.
type StepID string

const (
	// StepStart marks a state that has not executed any step yet.
	StepStart StepID = "start"

	StepDetectUserType             StepID = "detect_user_type"
	StepCollectOwnerDetails        StepID = "collect_owner_details"
	StepScheduleInspection         StepID = "schedule_inspection"
	StepConfirmOwnerDetails        StepID = "confirm_owner_details"
	StepCollectResidentPreferences StepID = "collect_resident_preferences"
	StepMatchProperties            StepID = "match_properties"
	StepShowProperties             StepID = "show_properties"
)

// Routing labels returned by the routing predicates.
const (
	RouteOwner        = "owner"
	RouteResident     = "resident"
	RouteUnclassified = "unclassified"

	RouteReady    = "ready_for_inspection"
	RouteNotReady = "not_ready"

	// RouteAlways labels an unconditional edge.
	RouteAlways = ""
)

// InspectionLayout is the normalized inspection date format (YYYY-MM-DD HH:MM).
const InspectionLayout = "2006-01-02 15:04"
