package runtime

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/extract"
)

// ask shows prompt to the user and records both sides in the transcript.
func (e *Engine) ask(ctx context.Context, s *domain.State, prompt string) (string, error) {
	s.Append("AI: " + prompt)
	reply, err := e.asker.Ask(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("ask: %w", err)
	}
	reply = strings.TrimSpace(reply)
	s.LastHumanInput = reply
	s.Append("User: " + reply)
	return reply, nil
}

func (e *Engine) complete(ctx context.Context, prompt string) (string, error) {
	resp, err := e.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("complete: %w", err)
	}
	return resp, nil
}

func (e *Engine) detectUserType(ctx context.Context, s *domain.State) error {
	if s.UserType != domain.UserUnknown {
		// Already classified; user_type is never reverted.
		return nil
	}

	reply, err := e.ask(ctx, s, questionUserType)
	if err != nil {
		return err
	}

	resp, err := e.complete(ctx, classifyPrompt(reply))
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(resp)) {
	case string(domain.UserOwner):
		s.UserType = domain.UserOwner
	case string(domain.UserResident):
		s.UserType = domain.UserResident
	default:
		s.Append(reaskUserType)
	}
	return nil
}

func (e *Engine) collectOwnerDetails(ctx context.Context, s *domain.State) error {
	reply, err := e.ask(ctx, s, questionOwnerDetails)
	if err != nil {
		return err
	}

	req := extract.OwnerDetailsRequest(reply, e.maxRetries)
	req.OnAttempt = e.extractionObserver(ctx, s, req.Target)

	details, err := extract.Structured(ctx, e.completer, req)
	if err != nil {
		return err
	}
	s.OwnerDetails = &details
	return nil
}

func (e *Engine) scheduleInspection(ctx context.Context, s *domain.State) error {
	proposed := e.now().Add(24 * time.Hour).Format(domain.InspectionLayout)
	proposal := proposeInspection(proposed)

	reply, err := e.ask(ctx, s, proposal)
	if err != nil {
		return err
	}

	req := extract.InspectionDateRequest(proposal, reply, e.maxRetries)
	req.OnAttempt = e.extractionObserver(ctx, s, req.Target)

	date, err := extract.Structured(ctx, e.completer, req)
	if err != nil {
		return err
	}
	s.InspectionDate = date
	return nil
}

func (e *Engine) confirmOwnerDetails(_ context.Context, s *domain.State) error {
	s.Append(renderConfirmation(s))
	return nil
}

func (e *Engine) collectResidentPreferences(ctx context.Context, s *domain.State) error {
	reply, err := e.ask(ctx, s, questionResidentPreferences)
	if err != nil {
		return err
	}
	s.ResidentPreferences = reply
	return nil
}

func (e *Engine) matchProperties(ctx context.Context, s *domain.State) error {
	resp, err := e.complete(ctx, matchPrompt(s.ResidentPreferences, e.catalog.JSON()))
	if err != nil {
		return err
	}
	s.Properties = resp
	s.Append(resp)
	return nil
}

func (e *Engine) showProperties(ctx context.Context, s *domain.State) error {
	resp, err := e.complete(ctx, showPrompt(s.ResidentPreferences, s.Properties))
	if err != nil {
		return err
	}
	msg := strings.TrimSpace(resp)
	if msg == "" {
		e.logger.Warn("empty property presentation, falling back to matches", "session_id", s.SessionID)
		msg = strings.TrimSpace(s.Properties)
	}
	if msg == "" {
		msg = "Sorry, no listings match your preferences right now."
	}
	s.Append(msg)
	return nil
}
