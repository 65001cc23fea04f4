package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/ports"
)

const mask = "***"

// DefaultPIIPatterns match e-mail addresses and phone numbers in free text.
var DefaultPIIPatterns = []string{
	`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`,
	`\+\d[\d\s().-]{7,}\d|\(\d{3}\)\s?\d{3}[\s.-]\d{4}|\b\d{3}[\s.-]\d{3}[\s.-]\d{4}\b`,
}

type piiMiddleware struct {
	next     ports.StateStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware masks personal data before a checkpoint reaches the store.
// The owner's name, contact and address are always masked; free text (transcript,
// replies, preferences) has every match of the patterns masked.
// Masked checkpoints are for inspection only; the engine never reads them back.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		patterns[i] = re
	}
	return func(next ports.StateStore) ports.StateStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, state *domain.State) error {
	// Clone so the engine's in-memory state is untouched.
	cloned := state.Clone()

	if d := cloned.OwnerDetails; d != nil {
		d.FullName = maskNonEmpty(d.FullName)
		d.ContactInfo = maskNonEmpty(d.ContactInfo)
		d.HomeAddress = maskNonEmpty(d.HomeAddress)
	}
	for i, msg := range cloned.Messages {
		cloned.Messages[i] = m.maskText(msg)
	}
	cloned.LastHumanInput = m.maskText(cloned.LastHumanInput)
	cloned.ResidentPreferences = m.maskText(cloned.ResidentPreferences)

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.State, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *piiMiddleware) maskText(s string) string {
	for _, p := range m.patterns {
		s = p.ReplaceAllString(s, mask)
	}
	return s
}

func maskNonEmpty(s string) string {
	if s == "" {
		return s
	}
	return mask
}
