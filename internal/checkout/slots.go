package checkout

// Slot bookkeeping for the extra-traveler pool. A slot counts as filled
// once every question in it has been touched, which normally happens in
// one bulk commit. Only filled slots are individually addressable in the
// UI; unfilled ones are reached through the generic "add next" action.

// SlotTouched reports whether every question in the slot has been touched.
// An empty slot counts as touched (there is nothing left to visit).
func (t AnswerTree) SlotTouched(slot int) bool {
	if slot < 0 || slot >= len(t.OtherTravelerAnswers) {
		return false
	}
	for _, q := range t.OtherTravelerAnswers[slot] {
		if !q.Touched {
			return false
		}
	}
	return true
}

// SlotStates returns the per-slot filled flags in slot order.
func (t AnswerTree) SlotStates() []bool {
	out := make([]bool, len(t.OtherTravelerAnswers))
	for i := range t.OtherTravelerAnswers {
		out[i] = t.SlotTouched(i)
	}
	return out
}

// FilledSlotCount is the number of slots shown to the user as addressable
// traveler chips.
func (t AnswerTree) FilledSlotCount() int {
	n := 0
	for i := range t.OtherTravelerAnswers {
		if t.SlotTouched(i) {
			n++
		}
	}
	return n
}

// NextOpenSlot returns the index of the first not-fully-touched slot, or
// -1 when every slot is filled.
func (t AnswerTree) NextOpenSlot() int {
	for i := range t.OtherTravelerAnswers {
		if !t.SlotTouched(i) {
			return i
		}
	}
	return -1
}

// DraftFromSlot seeds an edit buffer from a slot's committed answers, so
// reopening a filled traveler shows their current values.
func (t AnswerTree) DraftFromSlot(slot int) Draft {
	if slot < 0 || slot >= len(t.OtherTravelerAnswers) {
		return Draft{}
	}
	d := make(Draft, len(t.OtherTravelerAnswers[slot]))
	for _, q := range t.OtherTravelerAnswers[slot] {
		d[q.ID] = q.Value
	}
	return d
}
