package checkout

// DataType is the server-declared value type of a booking question.
type DataType string

const (
	DataTypeShortText      DataType = "ShortText"
	DataTypeLongText       DataType = "LongText"
	DataTypeInt            DataType = "Int"
	DataTypeDouble         DataType = "Double"
	DataTypeBoolean        DataType = "Boolean"
	DataTypeCheckboxToggle DataType = "CheckboxToggle"
	DataTypeDate           DataType = "Date"
	DataTypeDateAndTime    DataType = "DateAndTime"
	DataTypeOptions        DataType = "Options"
)

// QuestionContext says who a question is about.
type QuestionContext string

const (
	ContextBooking   QuestionContext = "Booking"
	ContextPassenger QuestionContext = "Passenger"
	ContextExtra     QuestionContext = "Extra"
)

// Rate trigger modes. "SelectedOnly" questions apply only to the rates
// listed in RateTriggers.
const (
	RateTriggerAny          = "Any"
	RateTriggerSelectedOnly = "SelectedOnly"
)

type AnswerOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// QuestionSpec is the upstream activities API's description of a single
// answerable question. Question IDs are only unique within one context of
// one activity; callers must always address answers by position in the
// tree, never by ID alone.
type QuestionSpec struct {
	ID                   string          `json:"id"`
	Label                string          `json:"label"`
	DataType             DataType        `json:"data_type"`
	Context              QuestionContext `json:"context"`
	Required             bool            `json:"required"`
	RequiredBeforeCutoff bool            `json:"required_before_cutoff"`
	Placeholder          string          `json:"placeholder,omitempty"`
	DefaultValue         string          `json:"default_value,omitempty"`
	Pattern              string          `json:"pattern,omitempty"`
	AnswerOptions        []AnswerOption  `json:"answer_options,omitempty"`
	RateTriggerSelection string          `json:"rate_trigger_selection,omitempty"`
	RateTriggers         []string        `json:"rate_triggers,omitempty"`
}

// AppliesToRate reports whether the question is part of the questionnaire
// for the given purchase rate.
func (q QuestionSpec) AppliesToRate(rateID string) bool {
	if q.RateTriggerSelection != RateTriggerSelectedOnly {
		return true
	}
	for _, r := range q.RateTriggers {
		if r == rateID {
			return true
		}
	}
	return false
}

// AnsweredQuestion is one answer slot in the tree. Value is always a
// string; dates and booleans are carried in their encoded form. Touched
// records whether the slot was ever explicitly filled, which is distinct
// from Value being non-empty (a user can visit a slot and leave an
// optional field blank).
type AnsweredQuestion struct {
	QuestionSpec
	Value   string `json:"value"`
	Touched bool   `json:"touched"`
}
