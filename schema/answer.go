package schema

import (
	"encoding/json"
	"math"
	"strconv"
)

// AnswerKind tags the variant held by an Answer.
type AnswerKind int

// Answer variants. The zero value is Missing.
const (
	Missing AnswerKind = iota
	Affirmative
	Negative
	Numeric
)

// String implements fmt.Stringer.
func (k AnswerKind) String() string {
	switch k {
	case Affirmative:
		return "affirmative"
	case Negative:
		return "negative"
	case Numeric:
		return "numeric"
	default:
		return "missing"
	}
}

// Answer is a typed survey answer.
type Answer struct {
	Kind  AnswerKind `json:"kind"`
	Value float64    `json:"value,omitempty"` // Numeric only
	Raw   string     `json:"raw,omitempty"`
}

// IsAffirmative reports whether the answer earns question points.
func (a Answer) IsAffirmative() bool {
	return a.Kind == Affirmative
}

// ResponseSet maps question id to answer. Absent ids are Missing.
type ResponseSet map[string]Answer

// Get returns the answer for a question id, or a Missing answer.
func (rs ResponseSet) Get(id string) Answer {
	if rs == nil {
		return Answer{}
	}
	return rs[id]
}

// ParseAnswer converts a loosely typed value from a submission into an Answer.
// Only the exact string "Yes" is Affirmative; "yes", true and 1 are not.
func ParseAnswer(raw any) Answer {
	switch v := raw.(type) {
	case nil:
		return Answer{Kind: Missing}
	case Answer:
		return v
	case string:
		if v == "" {
			return Answer{Kind: Missing}
		}
		if v == AffirmativeLiteral {
			return Answer{Kind: Affirmative, Raw: v}
		}
		return Answer{Kind: Negative, Raw: v}
	case bool:
		return Answer{Kind: Negative, Raw: strconv.FormatBool(v)}
	case int:
		return numericAnswer(float64(v))
	case int64:
		return numericAnswer(float64(v))
	case float64:
		return numericAnswer(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Answer{Kind: Negative, Raw: v.String()}
		}
		return numericAnswer(f)
	default:
		return Answer{Kind: Missing}
	}
}

func numericAnswer(f float64) Answer {
	if math.IsNaN(f) {
		return Answer{Kind: Missing}
	}
	return Answer{Kind: Numeric, Value: f, Raw: strconv.FormatFloat(f, 'f', -1, 64)}
}

// ParseResponses converts a raw id→value map into a ResponseSet.
func ParseResponses(raw map[string]any) ResponseSet {
	rs := make(ResponseSet, len(raw))
	for id, v := range raw {
		rs[id] = ParseAnswer(v)
	}
	return rs
}
