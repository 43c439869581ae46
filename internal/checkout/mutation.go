package checkout

// The mutation engine is copy-on-write: every operation returns a new
// tree (or draft) and leaves the receiver untouched, so callers can apply
// an update against their latest known state without aliasing surprises.
// Touched is monotone: no operation here ever clears it.

// SetBookingAnswer returns the tree with the matching booking answer
// replaced. Unknown IDs are a no-op.
func (t AnswerTree) SetBookingAnswer(questionID, value string) AnswerTree {
	t.BookingAnswers = setAnswer(t.BookingAnswers, questionID, value)
	return t
}

// SetMainTravelerAnswer returns the tree with the matching main-traveler
// answer replaced. Unknown IDs are a no-op.
func (t AnswerTree) SetMainTravelerAnswer(questionID, value string) AnswerTree {
	t.MainTravelerAnswers = setAnswer(t.MainTravelerAnswers, questionID, value)
	return t
}

// Draft is the transient buffer used while one other-traveler slot is
// being edited. It only reaches the tree through CommitSlot; dropping the
// draft cancels the edit.
type Draft map[string]string

// Set returns a copy of the draft with the value staged.
func (d Draft) Set(questionID, value string) Draft {
	out := make(Draft, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[questionID] = value
	return out
}

// CommitSlot merges a draft into one other-traveler slot. Every question
// in the slot comes out touched; questions present in the draft also take
// the drafted value. Committing an empty draft is how a user confirms an
// all-blank optional slot. A negative slot index targets the first slot
// that is not yet fully touched (the "add next traveler" affordance); if
// the resolved index is out of range the tree is returned unchanged.
func (t AnswerTree) CommitSlot(slot int, d Draft) AnswerTree {
	if slot < 0 {
		slot = t.NextOpenSlot()
	}
	if slot < 0 || slot >= len(t.OtherTravelerAnswers) {
		return t
	}

	committed := make([]AnsweredQuestion, len(t.OtherTravelerAnswers[slot]))
	for i, q := range t.OtherTravelerAnswers[slot] {
		if v, ok := d[q.ID]; ok {
			q.Value = v
		}
		q.Touched = true
		committed[i] = q
	}

	slots := make([][]AnsweredQuestion, len(t.OtherTravelerAnswers))
	copy(slots, t.OtherTravelerAnswers)
	slots[slot] = committed
	t.OtherTravelerAnswers = slots
	return t
}

func setAnswer(answers []AnsweredQuestion, questionID, value string) []AnsweredQuestion {
	idx := -1
	for i, q := range answers {
		if q.ID == questionID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return answers
	}
	out := make([]AnsweredQuestion, len(answers))
	copy(out, answers)
	out[idx].Value = value
	out[idx].Touched = true
	return out
}
