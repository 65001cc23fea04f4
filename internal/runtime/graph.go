package runtime

import (
	"context"

	"github.com/aretw0/intake/pkg/domain"
)

// action mutates the state for one step. It may call either oracle.
type action func(e *Engine, ctx context.Context, s *domain.State) error

// router picks an edge label from the state. It must be pure.
type router func(s *domain.State) string

// node binds a step to its action and outgoing edges.
// A node without a router is terminal.
type node struct {
	description string
	// branch is the user type a run must carry to execute the step; empty for shared steps.
	branch domain.UserType
	action action
	route  router
	edges  map[string]domain.StepID
}

func (n node) terminal() bool {
	return n.route == nil
}

// graph is the static step table. order keeps Inspect deterministic.
type graph struct {
	order []domain.StepID
	nodes map[domain.StepID]node
}

func (g *graph) add(id domain.StepID, n node) {
	g.order = append(g.order, id)
	g.nodes[id] = n
}

// intakeGraph builds the owner/resident intake workflow.
func intakeGraph() *graph {
	g := &graph{nodes: make(map[domain.StepID]node)}

	g.add(domain.StepDetectUserType, node{
		description: "ask owner or resident, classify the reply",
		action:      (*Engine).detectUserType,
		route:       RouteUserType,
		edges: map[string]domain.StepID{
			domain.RouteOwner:        domain.StepCollectOwnerDetails,
			domain.RouteResident:     domain.StepCollectResidentPreferences,
			domain.RouteUnclassified: domain.StepDetectUserType,
		},
	})

	// Owner branch
	g.add(domain.StepCollectOwnerDetails, node{
		branch:      domain.UserOwner,
		description: "collect owner details, extract the record",
		action:      (*Engine).collectOwnerDetails,
		route:       RouteOwnerDetails,
		edges: map[string]domain.StepID{
			domain.RouteReady:    domain.StepScheduleInspection,
			domain.RouteNotReady: domain.StepConfirmOwnerDetails,
		},
	})
	g.add(domain.StepScheduleInspection, node{
		branch:      domain.UserOwner,
		description: "propose an inspection date, extract the agreed one",
		action:      (*Engine).scheduleInspection,
		route:       unconditional,
		edges:       map[string]domain.StepID{domain.RouteAlways: domain.StepConfirmOwnerDetails},
	})
	g.add(domain.StepConfirmOwnerDetails, node{
		branch:      domain.UserOwner,
		description: "summarize owner details",
		action:      (*Engine).confirmOwnerDetails,
	})

	// Resident branch
	g.add(domain.StepCollectResidentPreferences, node{
		branch:      domain.UserResident,
		description: "collect rental preferences",
		action:      (*Engine).collectResidentPreferences,
		route:       unconditional,
		edges:       map[string]domain.StepID{domain.RouteAlways: domain.StepMatchProperties},
	})
	g.add(domain.StepMatchProperties, node{
		branch:      domain.UserResident,
		description: "filter listings against preferences",
		action:      (*Engine).matchProperties,
		route:       unconditional,
		edges:       map[string]domain.StepID{domain.RouteAlways: domain.StepShowProperties},
	})
	g.add(domain.StepShowProperties, node{
		branch:      domain.UserResident,
		description: "present the matched listings",
		action:      (*Engine).showProperties,
	})

	return g
}

// describe converts the table into domain steps, edges sorted by label.
func (g *graph) describe() []domain.Step {
	steps := make([]domain.Step, 0, len(g.order))
	for _, id := range g.order {
		n := g.nodes[id]
		step := domain.Step{ID: id, Description: n.description}
		for _, label := range sortedLabels(n.edges) {
			step.Transitions = append(step.Transitions, domain.Transition{
				ToStepID: n.edges[label],
				Label:    label,
			})
		}
		steps = append(steps, step)
	}
	return steps
}

// Describe returns the intake workflow without building an Engine.
func Describe() []domain.Step {
	return intakeGraph().describe()
}
