package checkout

import (
	"regexp"

	"tripdesk/pkg/utils"
)

type StepKind string

const (
	StepClientInfo       StepKind = "client_info"
	StepBookingQuestions StepKind = "booking_questions"
	StepPaying           StepKind = "paying"
)

// Step is one entry in the checkout flow. ActivityIndex is meaningful
// only for booking-question steps.
type Step struct {
	Kind          StepKind `json:"kind"`
	ActivityIndex int      `json:"activity_index"`
}

// BillingAddress is the normalized address emitted by the payment
// widget once it reports complete.
type BillingAddress struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// BillingIdentity is the identity record collected by the external
// payment collaborator. Name, email, phone and address live here, not in
// the answer trees.
type BillingIdentity struct {
	Name    string         `json:"name"`
	Email   string         `json:"email"`
	Phone   string         `json:"phone"`
	Address BillingAddress `json:"address"`
}

// Complete reports whether the address widget has produced enough of an
// identity to bill against.
func (b BillingIdentity) Complete() bool {
	return b.Name != "" &&
		b.Address.Line1 != "" &&
		b.Address.City != "" &&
		b.Address.PostalCode != "" &&
		b.Address.Country != ""
}

// ClientInfoForm is the checkout form's own fields, on top of the billing
// identity.
type ClientInfoForm struct {
	Email               string `json:"email"`
	PurchasingAsCompany bool   `json:"purchasing_as_company"`
	CompanyName         string `json:"company_name"`
	VATNumber           string `json:"vat_number"`
	Notes               string `json:"notes"`
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ValidateClientInfo applies the client-info step rules: email is always
// required, company name only when purchasing as a company, and the VAT
// number must pass checksum validation when the company toggle is on or
// whenever a value was entered.
func ValidateClientInfo(form ClientInfoForm, billing *BillingIdentity) []FieldError {
	var errs []FieldError
	if billing == nil || !billing.Complete() {
		errs = append(errs, FieldError{QuestionID: "billing_address", Reason: ReasonRequired})
	}
	if form.Email == "" {
		errs = append(errs, FieldError{QuestionID: "email", Reason: ReasonRequired})
	} else if !emailPattern.MatchString(form.Email) {
		errs = append(errs, FieldError{QuestionID: "email", Reason: ReasonInvalidFormat})
	}
	if form.PurchasingAsCompany && form.CompanyName == "" {
		errs = append(errs, FieldError{QuestionID: "company_name", Reason: ReasonRequired})
	}
	// A company purchase may leave VAT blank; any non-empty value must
	// pass the checksum, company toggle or not.
	if form.VATNumber != "" && !utils.ValidVAT(form.VATNumber) {
		errs = append(errs, FieldError{QuestionID: "vat_number", Reason: ReasonInvalidFormat})
	}
	return errs
}

// Sequencer is the checkout state machine: client info, then the
// booking-question step of each activity that actually has questions, in
// ascending activity order, then payment. Movement is strictly forward
// except for the explicit edit action back to client info.
type Sequencer struct {
	trees   []AnswerTree
	steps   []Step
	pos     int
	client  ClientInfoForm
	billing *BillingIdentity
}

// NewSequencer derives the step list from the per-activity trees.
// Activities with nothing to ask get no step.
func NewSequencer(trees []AnswerTree) *Sequencer {
	s := &Sequencer{trees: trees}
	s.steps = append(s.steps, Step{Kind: StepClientInfo, ActivityIndex: -1})
	for i, t := range trees {
		if !t.Empty() {
			s.steps = append(s.steps, Step{Kind: StepBookingQuestions, ActivityIndex: i})
		}
	}
	s.steps = append(s.steps, Step{Kind: StepPaying, ActivityIndex: -1})
	return s
}

func (s *Sequencer) Steps() []Step { return s.steps }

func (s *Sequencer) Current() Step { return s.steps[s.pos] }

// Tree returns the answer tree for an activity index.
func (s *Sequencer) Tree(activity int) (AnswerTree, bool) {
	if activity < 0 || activity >= len(s.trees) {
		return AnswerTree{}, false
	}
	return s.trees[activity], true
}

func (s *Sequencer) Trees() []AnswerTree { return s.trees }

// SetTree swaps in an updated tree for an activity. Trees stay editable
// for the whole session; the guards re-check on every advance.
func (s *Sequencer) SetTree(activity int, t AnswerTree) bool {
	if activity < 0 || activity >= len(s.trees) {
		return false
	}
	s.trees[activity] = t
	return true
}

// SetClientInfo records the form and billing identity used by the
// client-info guard. Recording is unvalidated; validation happens on
// advance so the caller can save partial input.
func (s *Sequencer) SetClientInfo(form ClientInfoForm, billing *BillingIdentity) {
	s.client = form
	s.billing = billing
}

func (s *Sequencer) ClientInfo() (ClientInfoForm, *BillingIdentity) {
	return s.client, s.billing
}

// Advance moves to the next step if the current step's guard passes.
func (s *Sequencer) Advance() error {
	cur := s.Current()
	switch cur.Kind {
	case StepClientInfo:
		if len(ValidateClientInfo(s.client, s.billing)) > 0 {
			return utils.ErrClientInfoIncomplete
		}
	case StepBookingQuestions:
		if !Check(s.trees[cur.ActivityIndex]).Complete {
			return utils.ErrQuestionsIncomplete
		}
	case StepPaying:
		return utils.ErrAlreadyPaying
	}
	s.pos++
	return nil
}

// EditClientInfo jumps back to the client-info step without discarding
// anything; all trees and the recorded form stay as they are.
func (s *Sequencer) EditClientInfo() error {
	if s.Current().Kind == StepClientInfo {
		return utils.ErrAlreadyEditing
	}
	s.pos = 0
	return nil
}

// Paying reports whether the flow has reached the terminal step.
func (s *Sequencer) Paying() bool {
	return s.Current().Kind == StepPaying
}
