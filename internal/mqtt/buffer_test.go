package mqtt

import (
	"fmt"
	"testing"
)

func msg(i int) bufferedMsg {
	return bufferedMsg{topic: Topic, payload: []byte(fmt.Sprintf("msg-%d", i))}
}

func TestRingBufferPushDrainOrder(t *testing.T) {
	r := newRingBuffer(8)

	for i := 0; i < 5; i++ {
		r.push(msg(i))
	}
	if r.len() != 5 {
		t.Fatalf("expected 5 buffered, got %d", r.len())
	}

	drained := r.drainAll()
	if len(drained) != 5 {
		t.Fatalf("expected 5 drained, got %d", len(drained))
	}
	for i, m := range drained {
		want := fmt.Sprintf("msg-%d", i)
		if string(m.payload) != want {
			t.Errorf("drain[%d]: got %s, want %s", i, m.payload, want)
		}
	}

	if r.len() != 0 {
		t.Errorf("buffer must be empty after drain, got %d", r.len())
	}
	if r.drainAll() != nil {
		t.Error("draining an empty buffer must return nil")
	}
}

func TestRingBufferOverflowDropsOldest(t *testing.T) {
	r := newRingBuffer(4)

	for i := 0; i < 7; i++ {
		r.push(msg(i))
	}
	if r.len() != 4 {
		t.Fatalf("expected buffer capped at 4, got %d", r.len())
	}

	drained := r.drainAll()
	for i, m := range drained {
		want := fmt.Sprintf("msg-%d", i+3)
		if string(m.payload) != want {
			t.Errorf("drain[%d]: got %s, want %s (oldest must be dropped)", i, m.payload, want)
		}
	}
}

func TestRingBufferReusableAfterDrain(t *testing.T) {
	r := newRingBuffer(3)

	// Fill past capacity, drain, then use again: indices must not be stale.
	for i := 0; i < 5; i++ {
		r.push(msg(i))
	}
	r.drainAll()

	r.push(msg(10))
	r.push(msg(11))
	drained := r.drainAll()
	if len(drained) != 2 {
		t.Fatalf("expected 2 drained, got %d", len(drained))
	}
	if string(drained[0].payload) != "msg-10" || string(drained[1].payload) != "msg-11" {
		t.Errorf("got %s, %s", drained[0].payload, drained[1].payload)
	}
}

func TestRingBufferPreservesMessageAttributes(t *testing.T) {
	r := newRingBuffer(2)
	r.push(bufferedMsg{topic: TopicSystem, payload: []byte("x"), qos: 1, retained: true})

	drained := r.drainAll()
	if len(drained) != 1 {
		t.Fatalf("expected 1 drained, got %d", len(drained))
	}
	m := drained[0]
	if m.topic != TopicSystem || m.qos != 1 || !m.retained {
		t.Errorf("attributes lost: %+v", m)
	}
}
