// Package quiz normalises AI-generated quizzes. The generator sometimes
// answers with a JSON array, sometimes with an object wrapping it, and
// sometimes with a Markdown-fenced JSON string.
package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/edusession/internal/client/identity"
)

var (
	ErrEmptyQuiz   = errors.New("quiz has no questions")
	ErrUnsupported = errors.New("unsupported quiz payload")
)

type Question struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// rawQuestion is one generator entry before normalisation. Answer may be the
// option text or a zero-based option index.
type rawQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   any      `json:"answer"`
}

// Parse accepts a decoded payload and returns the well-formed questions.
// Questions without text or options, or with an answer that cannot be
// resolved, are dropped.
func Parse(payload any) ([]Question, error) {
	raw, err := unwrap(payload, 0)
	if err != nil {
		return nil, err
	}

	out := make([]Question, 0, len(raw))
	for _, item := range raw {
		if _, ok := item.(map[string]any); !ok {
			return nil, fmt.Errorf("%w: entry is %T, not an object", ErrUnsupported, item)
		}
		q, ok := decodeQuestion(item)
		if !ok {
			continue
		}
		out = append(out, q)
	}
	if len(out) == 0 {
		return nil, ErrEmptyQuiz
	}
	return out, nil
}

func decodeQuestion(item any) (Question, bool) {
	b, err := json.Marshal(item)
	if err != nil {
		return Question{}, false
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()

	var rq rawQuestion
	if err := dec.Decode(&rq); err != nil {
		return Question{}, false
	}

	q := Question{Question: strings.TrimSpace(rq.Question), Options: rq.Options}
	if q.Question == "" || len(q.Options) == 0 {
		return Question{}, false
	}
	answer, ok := resolveAnswer(rq.Answer, q.Options)
	if !ok {
		return Question{}, false
	}
	q.Answer = answer
	return q, true
}

// resolveAnswer maps an option index to its text. A missing answer stays
// empty so the question can still be asked.
func resolveAnswer(v any, options []string) (string, bool) {
	switch a := v.(type) {
	case nil:
		return "", true
	case string:
		return a, true
	case json.Number:
		i, err := a.Int64()
		if err != nil || i < 0 || i >= int64(len(options)) {
			return "", false
		}
		return options[i], true
	}
	return "", false
}

// unwrap digs down to the question array. depth guards against strings
// that decode to strings forever.
func unwrap(payload any, depth int) ([]any, error) {
	if depth > 4 {
		return nil, ErrUnsupported
	}
	switch p := payload.(type) {
	case []any:
		return p, nil
	case string:
		v, err := identity.Decode([]byte(StripFence(p)))
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupported, err)
		}
		return unwrap(v, depth+1)
	case map[string]any:
		for _, k := range []string{"questions", "quiz", "data", "result"} {
			if v, ok := p[k]; ok {
				return unwrap(v, depth+1)
			}
		}
	}
	return nil, ErrUnsupported
}

// StripFence removes a surrounding ``` or ```json fence.
func StripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// Score counts answers matching the expected ones, case-insensitively.
// answers is indexed like questions; missing answers count as wrong.
func Score(questions []Question, answers []string) int {
	n := 0
	for i, q := range questions {
		if i >= len(answers) {
			break
		}
		if strings.EqualFold(strings.TrimSpace(answers[i]), strings.TrimSpace(q.Answer)) {
			n++
		}
	}
	return n
}
