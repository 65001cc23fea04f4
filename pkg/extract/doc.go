/*
Package extract turns free-text completions into validated structured values.

LLM completions are not guaranteed to be well-formed, so Structured wraps a single
"produce structured data" request with a bounded repair loop: when the parser
rejects a response, the completer is re-prompted with the literal malformed text
and asked to fix it. After MaxRetries repairs the loop gives up with a
*domain.ExtractionError carrying the last payload.

	details, err := extract.Structured(ctx, completer, extract.OwnerDetailsRequest(reply, 3))
	if errors.Is(err, domain.ErrExtractionFailed) {
		// terminal: the run must not continue with a partial record
	}
*/
package extract
