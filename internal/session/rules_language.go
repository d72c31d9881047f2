package session

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/xtding233/cogtrain-backend/internal/game"
	"github.com/xtding233/cogtrain-backend/internal/round"
)

// languageRules: write a sentence that contains every requested word.
type languageRules struct {
	cfg game.LanguageConfig
}

func (l *languageRules) Reset() {}

// Progress counts completed rounds, which selects the word count.
func (l *languageRules) Progress(m Metrics) int { return m.Correct }

func (l *languageRules) Begin(*round.Round) {}

func (l *languageRules) Present(*round.Round) time.Duration { return l.cfg.Timing.Present }

func (l *languageRules) Judge(r *round.Round, resp Response, _ time.Duration, m *Metrics) (Outcome, error) {
	text := strings.TrimSpace(resp.Text)
	if len(strings.Fields(text)) < 2 {
		return Outcome{Next: Stay, Feedback: "write a full sentence"}, nil
	}

	m.Requested = append(m.Requested, strings.Join(r.Words, " "))
	m.Given = append(m.Given, text)

	lower := strings.ToLower(text)
	missing := lo.Filter(r.Words, func(w string, _ int) bool {
		return !strings.Contains(lower, strings.ToLower(w))
	})
	if len(missing) > 0 {
		m.Fail()
		return Outcome{
			Counted:  true,
			Next:     Stay,
			Feedback: fmt.Sprintf("missing: %s", strings.Join(missing, ", ")),
		}, nil
	}

	m.Succeed()
	next := Advance
	if m.Correct >= l.cfg.MaxRounds {
		next = Finish
	}
	return Outcome{Counted: true, Correct: true, Next: next, Feedback: "well done"}, nil
}

func (l *languageRules) Delay(o Outcome) time.Duration { return afterOutcome(l.cfg.Timing, o) }
