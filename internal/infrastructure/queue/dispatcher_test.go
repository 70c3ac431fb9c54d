package queue

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/Sakura-Echo/nwpu-mandarin/internal/core/ports"
)

type recordingAuditService struct {
	mu     sync.Mutex
	events []ports.AuditEventInput
	done   chan struct{}
	want   int
}

func (s *recordingAuditService) Process(_ context.Context, event ports.AuditEventInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	if len(s.events) == s.want {
		close(s.done)
	}
	return nil
}

func TestDispatcher_PerActorOrdering(t *testing.T) {
	const perActor = 20
	actors := []string{"alice", "bob", "carol"}

	svc := &recordingAuditService{done: make(chan struct{}), want: perActor * len(actors)}
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perActor; i++ {
		for _, actor := range actors {
			d.Enqueue(ports.AuditEventInput{
				Actor:  actor,
				Action: "login",
				Detail: fmt.Sprintf("%d", i),
			})
		}
	}

	select {
	case <-svc.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for events to be processed")
	}

	// Events for the same actor must come out in enqueue order.
	svc.mu.Lock()
	defer svc.mu.Unlock()
	seen := make(map[string]int)
	for _, ev := range svc.events {
		if ev.Detail != fmt.Sprintf("%d", seen[ev.Actor]) {
			t.Fatalf("actor %s: expected event %d, got %s", ev.Actor, seen[ev.Actor], ev.Detail)
		}
		seen[ev.Actor]++
	}
	for _, actor := range actors {
		if seen[actor] != perActor {
			t.Fatalf("actor %s: expected %d events, got %d", actor, perActor, seen[actor])
		}
	}
}

func TestDispatcher_ShardIndexStable(t *testing.T) {
	d := NewDispatcher(8, &recordingAuditService{done: make(chan struct{}), want: 1}, zerolog.Nop())

	for _, actor := range []string{"alice", "bob", "", "一个用户"} {
		first := d.shardIndex(actor)
		for i := 0; i < 10; i++ {
			if d.shardIndex(actor) != first {
				t.Fatalf("shard index for %q is not stable", actor)
			}
		}
		if first < 0 || first >= len(d.workers) {
			t.Fatalf("shard index out of range: %d", first)
		}
	}
}
