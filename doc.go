/*
Package intake runs an LLM-assisted property intake conversation.

A run walks one person through a small, fixed workflow: it works out whether
they own a property or want to rent one, then either collects the owner's home
details (and schedules an inspection when the home is ready) or collects rental
preferences and presents matching listings.

The engine needs two capabilities from its host: a ports.Completer that answers
prompts (an LLM) and a ports.Asker that puts questions to the person. Free-text
answers that must become structured data go through a bounded repair loop that
feeds malformed output back to the completer until it parses or the retry budget
is spent.

# Usage

	completer, err := gemini.New(ctx, gemini.Config{APIKey: os.Getenv("GEMINI_API_KEY")})
	if err != nil {
		log.Fatal(err)
	}
	eng, err := intake.New(completer, terminal.NewAsker(os.Stdin, os.Stdout))
	if err != nil {
		log.Fatal(err)
	}

	state, err := eng.Run(ctx, eng.Start(""))
	if err != nil {
		// state.Messages still holds the transcript.
		log.Fatal(err)
	}
	fmt.Println(state.LastMessage())

# Errors

Runs fail with domain.ErrExtractionFailed when structured output could not be
repaired, and with domain.ErrNotConverged when the step ceiling is reached
before a terminal step. Oracle errors are wrapped with the name of the step that
made the call.
*/
package intake
