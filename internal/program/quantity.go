package program

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quantity is a program value stored either as a JSON number or as a JSON string,
// e.g. sets: 3, sets: "3", reps: "8-12". The original form is kept on marshal.
type Quantity struct {
	num    float64
	text   string
	isText bool
	set    bool
}

func Num(v float64) Quantity {
	return Quantity{num: v, set: true}
}

func Text(s string) Quantity {
	return Quantity{text: s, isText: true, set: true}
}

func (q Quantity) IsZero() bool {
	return !q.set
}

func (q Quantity) IsText() bool {
	return q.isText
}

// IsRange reports whether the value is a range string like "6-10".
// A leading minus is a sign, so "-5" is not a range.
func (q Quantity) IsRange() bool {
	return q.isText && strings.Index(strings.TrimSpace(q.text), "-") > 0
}

// Float returns the numeric value. Strings are parsed, and for ranges
// the lower bound is used ("3-5" -> 3).
func (q Quantity) Float() (float64, bool) {
	if !q.set {
		return 0, false
	}
	if !q.isText {
		return q.num, true
	}

	s := strings.TrimSpace(q.text)
	if idx := strings.Index(s, "-"); idx > 0 {
		s = strings.TrimSpace(s[:idx])
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

func (q Quantity) Int() int {
	return q.IntOr(0)
}

func (q Quantity) IntOr(def int) int {
	v, ok := q.Float()
	if !ok {
		return def
	}
	return int(v)
}

func (q Quantity) String() string {
	switch {
	case !q.set:
		return ""
	case q.isText:
		return q.text
	default:
		return strconv.FormatFloat(q.num, 'f', -1, 64)
	}
}

func (q Quantity) MarshalJSON() ([]byte, error) {
	switch {
	case !q.set:
		return []byte("null"), nil
	case q.isText:
		return json.Marshal(q.text)
	default:
		return json.Marshal(q.num)
	}
}

func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*q = Quantity{}
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("quantity text: %w", err)
		}
		*q = Text(s)
		return nil
	default:
		var v float64
		if err := json.Unmarshal(data, &v); err != nil {
			return fmt.Errorf("quantity number: %w", err)
		}
		*q = Num(v)
		return nil
	}
}
