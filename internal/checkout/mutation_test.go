package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoTravelerTree() AnswerTree {
	specs := []QuestionSpec{
		spec("dietary", ContextBooking, false),
		spec("experience", ContextPassenger, false),
	}
	contact := ContactFields{
		Main:  []QuestionSpec{spec("nationality", ContextPassenger, true)},
		Other: []QuestionSpec{spec("first_name", ContextPassenger, true)},
	}
	return NewAnswerTree(specs, contact, "rate-1", 3)
}

func TestSetBookingAnswer(t *testing.T) {
	tree := twoTravelerTree()
	updated := tree.SetBookingAnswer("dietary", "vegan")

	assert.Equal(t, "vegan", updated.BookingAnswers[0].Value)
	assert.Empty(t, tree.BookingAnswers[0].Value, "original tree untouched")
}

func TestSetBookingAnswer_UnknownIDNoOp(t *testing.T) {
	tree := twoTravelerTree()
	updated := tree.SetBookingAnswer("nope", "x")
	assert.Equal(t, tree, updated)
}

func TestSetMainTravelerAnswer(t *testing.T) {
	tree := twoTravelerTree()
	updated := tree.SetMainTravelerAnswer("nationality", "DE")

	got := false
	for _, q := range updated.MainTravelerAnswers {
		if q.ID == "nationality" {
			assert.Equal(t, "DE", q.Value)
			got = true
		}
	}
	assert.True(t, got)
	for _, q := range tree.MainTravelerAnswers {
		assert.Empty(t, q.Value)
	}
}

func TestDraftSet_CopiesBuffer(t *testing.T) {
	var d Draft
	d2 := d.Set("first_name", "Jane")
	d3 := d2.Set("first_name", "Joan")

	assert.Empty(t, d)
	assert.Equal(t, "Jane", d2["first_name"])
	assert.Equal(t, "Joan", d3["first_name"])
}

func TestCommitSlot_MergesDraftAndTouchesEverything(t *testing.T) {
	tree := twoTravelerTree()
	draft := Draft{}.Set("first_name", "Jane")

	updated := tree.CommitSlot(0, draft)

	require.Len(t, updated.OtherTravelerAnswers, 2)
	for _, q := range updated.OtherTravelerAnswers[0] {
		assert.True(t, q.Touched)
		if q.ID == "first_name" {
			assert.Equal(t, "Jane", q.Value)
		} else {
			assert.Empty(t, q.Value, "questions not in the draft keep their value")
		}
	}
	// sibling slot untouched
	for _, q := range updated.OtherTravelerAnswers[1] {
		assert.False(t, q.Touched)
	}
	// original untouched
	for _, q := range tree.OtherTravelerAnswers[0] {
		assert.False(t, q.Touched)
	}
}

func TestCommitSlot_EmptyDraftStillTouches(t *testing.T) {
	tree := twoTravelerTree()
	updated := tree.CommitSlot(0, Draft{})

	assert.True(t, updated.SlotTouched(0))
	for _, q := range updated.OtherTravelerAnswers[0] {
		assert.Empty(t, q.Value)
	}
}

func TestCommitSlot_Idempotent(t *testing.T) {
	tree := twoTravelerTree().CommitSlot(0, Draft{}.Set("first_name", "Jane"))

	once := tree.CommitSlot(0, Draft{})
	twice := once.CommitSlot(0, Draft{})

	assert.Equal(t, once, twice)
	assert.Equal(t, "Jane", twice.OtherTravelerAnswers[0][1].Value)
}

func TestCommitSlot_AppendTargetsFirstOpenSlot(t *testing.T) {
	tree := twoTravelerTree()

	tree = tree.CommitSlot(-1, Draft{}.Set("first_name", "Jane"))
	assert.True(t, tree.SlotTouched(0))
	assert.False(t, tree.SlotTouched(1))

	tree = tree.CommitSlot(-1, Draft{}.Set("first_name", "Joan"))
	assert.True(t, tree.SlotTouched(1))
	assert.Equal(t, "Jane", tree.OtherTravelerAnswers[0][1].Value)
	assert.Equal(t, "Joan", tree.OtherTravelerAnswers[1][1].Value)

	// every slot filled: append resolves nowhere and is a no-op
	unchanged := tree.CommitSlot(-1, Draft{}.Set("first_name", "Jim"))
	assert.Equal(t, tree, unchanged)
}

func TestCommitSlot_OutOfRangeNoOp(t *testing.T) {
	tree := twoTravelerTree()
	assert.Equal(t, tree, tree.CommitSlot(5, Draft{}.Set("first_name", "Jane")))
}

func TestTouchedMonotonicity(t *testing.T) {
	tree := twoTravelerTree()

	tree = tree.CommitSlot(0, Draft{}.Set("first_name", "Jane"))
	tree = tree.SetBookingAnswer("dietary", "none")
	tree = tree.SetMainTravelerAnswer("nationality", "DE")
	tree = tree.CommitSlot(0, Draft{}.Set("first_name", ""))
	tree = tree.CommitSlot(1, Draft{})

	for _, q := range tree.MainTravelerAnswers {
		assert.True(t, q.Touched)
	}
	for _, slot := range tree.OtherTravelerAnswers {
		for _, q := range slot {
			assert.True(t, q.Touched, "touched never reverts")
		}
	}
}
