package memory

import (
	"strconv"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/pathwise-dev/pathwise/pkg/model"
)

func TestTurnRingAppendAndSnapshot(t *testing.T) {
	r := newTurnRing(4)
	gt.Number(t, r.len()).Equal(0)

	r.append(model.NewTurn(model.RoleUser, "a"))
	r.append(model.NewTurn(model.RoleAssistant, "b"))
	gt.Number(t, r.len()).Equal(2)

	turns := r.snapshot()
	gt.A(t, turns).Length(2)
	gt.Equal(t, turns[0].Text, "a")
	gt.Equal(t, turns[1].Text, "b")
}

func TestTurnRingEvictsOldestFirst(t *testing.T) {
	r := newTurnRing(3)
	for i := 0; i < 5; i++ {
		r.append(model.NewTurn(model.RoleUser, strconv.Itoa(i)))
	}

	gt.Number(t, r.len()).Equal(3)
	turns := r.snapshot()
	gt.Equal(t, turns[0].Text, "2")
	gt.Equal(t, turns[1].Text, "3")
	gt.Equal(t, turns[2].Text, "4")
}

func TestTurnRingSnapshotIsCopy(t *testing.T) {
	r := newTurnRing(2)
	r.append(model.NewTurn(model.RoleUser, "original"))

	turns := r.snapshot()
	turns[0].Text = "mutated"

	gt.Equal(t, r.snapshot()[0].Text, "original")
}

func TestTurnRingMinimumCapacity(t *testing.T) {
	r := newTurnRing(0)
	r.append(model.NewTurn(model.RoleUser, "only"))
	r.append(model.NewTurn(model.RoleUser, "kept"))
	gt.Number(t, r.len()).Equal(1)
	gt.Equal(t, r.snapshot()[0].Text, "kept")
}
