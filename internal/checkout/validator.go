package checkout

import (
	"regexp"
	"strconv"
	"sync"
	"time"
)

// Field validation reason codes, surfaced inline next to the offending
// field.
const (
	ReasonRequired       = "required"
	ReasonInvalidInt     = "invalid-int"
	ReasonInvalidDouble  = "invalid-double"
	ReasonInvalidBoolean = "invalid-boolean"
	ReasonInvalidDate    = "invalid-date"
	ReasonInvalidOption  = "invalid-option"
	ReasonInvalidFormat  = "invalid-format"
)

// FieldError flags one question for inline display.
type FieldError struct {
	QuestionID string `json:"question_id"`
	Reason     string `json:"reason"`
}

// Report is the outcome of checking one tree. Complete gates step
// transitions; Missing and Invalid exist for display. Invalid carries
// format problems for any non-empty value, required or not — a malformed
// optional answer is shown as invalid but never blocks progression.
type Report struct {
	Complete bool         `json:"complete"`
	Missing  []string     `json:"missing,omitempty"`
	Invalid  []FieldError `json:"invalid,omitempty"`
}

// Check validates the whole tree: booking answers, main traveler answers
// and every other-traveler slot, touched or not. Untouched slots carry
// empty values, so any slot with a required question blocks until it has
// been committed with that question filled. Check never mutates the tree
// and is cheap enough to run on every keystroke.
func Check(t AnswerTree) Report {
	r := Report{Complete: true}
	r.section(t.BookingAnswers)
	r.section(t.MainTravelerAnswers)
	for _, slot := range t.OtherTravelerAnswers {
		r.section(slot)
	}
	return r
}

func (r *Report) section(answers []AnsweredQuestion) {
	for _, q := range answers {
		if q.Value == "" {
			if q.Required || q.RequiredBeforeCutoff {
				r.Complete = false
				r.Missing = append(r.Missing, q.ID)
			}
			continue
		}
		if reason := formatReason(q); reason != "" {
			r.Invalid = append(r.Invalid, FieldError{QuestionID: q.ID, Reason: reason})
		}
	}
}

func formatReason(q AnsweredQuestion) string {
	switch q.DataType {
	case DataTypeInt:
		if _, err := strconv.ParseInt(q.Value, 10, 64); err != nil {
			return ReasonInvalidInt
		}
	case DataTypeDouble:
		if _, err := strconv.ParseFloat(q.Value, 64); err != nil {
			return ReasonInvalidDouble
		}
	case DataTypeBoolean, DataTypeCheckboxToggle:
		if q.Value != "true" && q.Value != "false" {
			return ReasonInvalidBoolean
		}
	case DataTypeDate:
		if _, err := time.Parse("2006-01-02", q.Value); err != nil {
			return ReasonInvalidDate
		}
	case DataTypeDateAndTime:
		if !parseableDateTime(q.Value) {
			return ReasonInvalidDate
		}
	case DataTypeOptions:
		if !optionAllowed(q.AnswerOptions, q.Value) {
			return ReasonInvalidOption
		}
	}
	if q.Pattern != "" {
		re, err := compiledPattern(q.Pattern)
		if err == nil && !re.MatchString(q.Value) {
			return ReasonInvalidFormat
		}
	}
	return ""
}

func parseableDateTime(v string) bool {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02 15:04"} {
		if _, err := time.Parse(layout, v); err == nil {
			return true
		}
	}
	return false
}

func optionAllowed(opts []AnswerOption, v string) bool {
	for _, o := range opts {
		if o.Value == v {
			return true
		}
	}
	return false
}

var (
	patternMu    sync.RWMutex
	patternCache = map[string]*regexp.Regexp{}
)

// compiledPattern memoizes compiled server-supplied patterns; the same
// handful of patterns is checked on every keystroke.
func compiledPattern(p string) (*regexp.Regexp, error) {
	patternMu.RLock()
	re, ok := patternCache[p]
	patternMu.RUnlock()
	if ok {
		return re, nil
	}
	re, err := regexp.Compile(p)
	if err != nil {
		return nil, err
	}
	patternMu.Lock()
	patternCache[p] = re
	patternMu.Unlock()
	return re, nil
}
