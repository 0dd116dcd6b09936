package memory_test

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/pathwise-dev/pathwise/pkg/memory"
	"github.com/pathwise-dev/pathwise/pkg/model"
)

func TestStoreAppendAndGet(t *testing.T) {
	store := memory.New()
	id := model.NewSessionID()

	store.Append(id, model.NewTurn(model.RoleUser, "hello"))
	store.Append(id, model.NewTurn(model.RoleAssistant, "hi there"))

	turns := store.Get(id)
	gt.A(t, turns).Length(2)
	gt.Equal(t, turns[0].Role, model.RoleUser)
	gt.Equal(t, turns[0].Text, "hello")
	gt.Equal(t, turns[1].Role, model.RoleAssistant)
}

func TestStoreUnknownSession(t *testing.T) {
	store := memory.New()
	gt.A(t, store.Get(model.SessionID("nobody"))).Length(0)
	gt.Number(t, store.Len(model.SessionID("nobody"))).Equal(0)
}

func TestStoreWindowBound(t *testing.T) {
	store := memory.New(memory.WithWindow(4))
	id := model.NewSessionID()

	for i := 0; i < 10; i++ {
		store.Append(id, model.NewTurn(model.RoleUser, fmt.Sprintf("msg-%d", i)))
	}

	turns := store.Get(id)
	gt.A(t, turns).Length(4)
	gt.Equal(t, turns[0].Text, "msg-6")
	gt.Equal(t, turns[3].Text, "msg-9")
}

func TestStoreAppendPair(t *testing.T) {
	store := memory.New()
	id := model.NewSessionID()

	store.AppendPair(id,
		model.NewTurn(model.RoleUser, "question"),
		model.NewTurn(model.RoleAssistant, "answer"))

	turns := store.Get(id)
	gt.A(t, turns).Length(2)
	gt.Equal(t, turns[0].Text, "question")
	gt.Equal(t, turns[1].Text, "answer")
}

func TestStoreClear(t *testing.T) {
	store := memory.New()
	id := model.NewSessionID()

	store.Append(id, model.NewTurn(model.RoleUser, "hello"))
	store.Clear(id)
	gt.A(t, store.Get(id)).Length(0)
}

func TestStoreSessionTTL(t *testing.T) {
	store := memory.New(memory.WithTTL(10 * time.Millisecond))
	id := model.NewSessionID()

	store.Append(id, model.NewTurn(model.RoleUser, "hello"))
	gt.Number(t, store.Len(id)).Equal(1)

	time.Sleep(30 * time.Millisecond)
	gt.A(t, store.Get(id)).Length(0)
}

func TestStoreSessionsAreIsolated(t *testing.T) {
	store := memory.New()
	a := model.SessionID("session-a")
	b := model.SessionID("session-b")

	// Two sessions interleave 3 turn pairs each from separate goroutines
	var wg sync.WaitGroup
	for _, id := range []model.SessionID{a, b} {
		wg.Add(1)
		go func(id model.SessionID) {
			defer wg.Done()
			for i := 0; i < 3; i++ {
				store.AppendPair(id,
					model.NewTurn(model.RoleUser, fmt.Sprintf("%s-q%d", id, i)),
					model.NewTurn(model.RoleAssistant, fmt.Sprintf("%s-a%d", id, i)))
			}
		}(id)
	}
	wg.Wait()

	for _, id := range []model.SessionID{a, b} {
		turns := store.Get(id)
		gt.A(t, turns).Length(6)
		for i := 0; i < 3; i++ {
			gt.Equal(t, turns[i*2].Text, fmt.Sprintf("%s-q%d", id, i))
			gt.Equal(t, turns[i*2+1].Text, fmt.Sprintf("%s-a%d", id, i))
		}
	}
}

func TestStoreConcurrentSameSession(t *testing.T) {
	store := memory.New(memory.WithWindow(200))
	id := model.NewSessionID()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				store.AppendPair(id,
					model.NewTurn(model.RoleUser, "q"),
					model.NewTurn(model.RoleAssistant, "a"))
			}
		}()
	}
	wg.Wait()

	// Pairs never interleave: turns alternate user/assistant
	turns := store.Get(id)
	gt.A(t, turns).Length(160)
	for i, turn := range turns {
		if i%2 == 0 {
			gt.Equal(t, turn.Role, model.RoleUser)
		} else {
			gt.Equal(t, turn.Role, model.RoleAssistant)
		}
	}
}

func TestStoreOnEvict(t *testing.T) {
	store := memory.New()

	var mu sync.Mutex
	var evicted []model.SessionID
	store.OnEvict(func(id model.SessionID) {
		mu.Lock()
		defer mu.Unlock()
		evicted = append(evicted, id)
	})

	id := model.NewSessionID()
	store.Append(id, model.NewTurn(model.RoleUser, "hello"))
	store.Clear(id)

	mu.Lock()
	defer mu.Unlock()
	gt.A(t, evicted).Length(1)
	gt.Equal(t, evicted[0], id)
}
