package checkout

// ContactFields are the traveler contact questions not already covered by
// the billing identity (nationality, document numbers and the like).
// Name, email, phone and address come from the payment widget and are
// excluded here.
type ContactFields struct {
	Main  []QuestionSpec `json:"main"`
	Other []QuestionSpec `json:"other"`
}

// AnswerTree is the full answer state for one activity in the cart.
// OtherTravelerAnswers has exactly partySize-1 inner slices and is never
// resized after construction; every inner slice carries its own copy of
// the passenger questions.
type AnswerTree struct {
	BookingAnswers       []AnsweredQuestion   `json:"booking_answers"`
	MainTravelerAnswers  []AnsweredQuestion   `json:"main_traveler_answers"`
	OtherTravelerAnswers [][]AnsweredQuestion `json:"other_traveler_answers"`
}

// NewAnswerTree builds the initial answer state from the upstream question
// specs plus the party size. Questions gated to other rates are filtered
// out before construction so they can never block completion. Main
// traveler slots start touched (that section is always visible); other
// traveler slots start untouched. The builder never fails: partySize < 1
// simply yields no other-traveler slots.
func NewAnswerTree(specs []QuestionSpec, contact ContactFields, rateID string, partySize int) AnswerTree {
	var booking, passenger []QuestionSpec
	for _, s := range specs {
		if !s.AppliesToRate(rateID) {
			continue
		}
		switch s.Context {
		case ContextBooking:
			booking = append(booking, s)
		case ContextPassenger:
			passenger = append(passenger, s)
		}
	}

	tree := AnswerTree{
		BookingAnswers:      blankAnswers(booking, false),
		MainTravelerAnswers: blankAnswers(append(cloneSpecs(passenger), contact.Main...), true),
	}

	otherSpecs := append(cloneSpecs(passenger), contact.Other...)
	for i := 0; i < partySize-1; i++ {
		tree.OtherTravelerAnswers = append(tree.OtherTravelerAnswers, blankAnswers(otherSpecs, false))
	}
	return tree
}

// Empty reports whether the tree has nothing to ask, in which case its
// step is skipped entirely.
func (t AnswerTree) Empty() bool {
	if len(t.BookingAnswers) > 0 || len(t.MainTravelerAnswers) > 0 {
		return false
	}
	for _, slot := range t.OtherTravelerAnswers {
		if len(slot) > 0 {
			return false
		}
	}
	return true
}

func blankAnswers(specs []QuestionSpec, touched bool) []AnsweredQuestion {
	if len(specs) == 0 {
		return nil
	}
	out := make([]AnsweredQuestion, len(specs))
	for i, s := range specs {
		out[i] = AnsweredQuestion{QuestionSpec: s, Value: "", Touched: touched}
	}
	return out
}

func cloneSpecs(specs []QuestionSpec) []QuestionSpec {
	out := make([]QuestionSpec, len(specs))
	copy(out, specs)
	return out
}
