// Package assistant answers operator questions with canned, pattern-matched
// response templates. There is no model behind it: matching is keyword
// membership against a fixed priority order, and the same input always
// produces the same answer.
package assistant

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Response is one canned answer plus suggested follow-up prompts.
type Response struct {
	Content     string   `json:"content"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type trigger struct {
	keywords []string
	response Response
}

// Matcher matches utterances against triggers in priority order: the first
// trigger with any keyword present wins, and the fallback answers everything
// else.
type Matcher struct {
	triggers []trigger
	fallback Response
	lower    cases.Caser
}

func New() *Matcher {
	return &Matcher{
		triggers: defaultTriggers(),
		fallback: defaultFallback(),
		lower:    cases.Lower(language.Und),
	}
}

// Respond returns the canned response for the utterance. Pure and
// deterministic; lowercasing is Unicode-aware so mixed-script input still
// matches.
func (m *Matcher) Respond(utterance string) Response {
	message := m.lower.String(utterance)

	for _, t := range m.triggers {
		for _, keyword := range t.keywords {
			if strings.Contains(message, keyword) {
				return t.response
			}
		}
	}
	return m.fallback
}
