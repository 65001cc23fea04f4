package intake_test

import (
	"context"
	"fmt"
	"log"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/pkg/adapters/scripted"
)

// ExampleEngine_Run drives a resident through the workflow with scripted oracles.
// In production the completer is an LLM and the asker is a terminal.
func ExampleEngine_Run() {
	completer := scripted.NewCompleter(
		"resident",
		`[{"id": 1, "address": "123 Oak Street, Downtown"}]`,
		"123 Oak Street has two bedrooms, parking and a balcony, right in Downtown.",
	)
	asker := scripted.NewAsker("I'm looking for a place to rent", "2 bedrooms, Downtown, budget $2600")

	eng, err := intake.New(completer, asker)
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Run(context.Background(), eng.Start("example"))
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(state.UserType)
	fmt.Println(state.CurrentStep)
	fmt.Println(state.LastMessage())
	// Output:
	// resident
	// show_properties
	// 123 Oak Street has two bedrooms, parking and a balcony, right in Downtown.
}
