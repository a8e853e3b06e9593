package diagnostics

import (
	"bytes"
	"testing"

	"github.com/nsavage/amazons-engine/pkg/board"
	"github.com/nsavage/amazons-engine/pkg/mcts"
)

func TestRendererBoardDoesNotPanic(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	b := board.New()
	r.Board(&b)
	if buf.Len() == 0 {
		t.Fatal("expected rendered output")
	}
}

func TestListenerCallbacksFire(t *testing.T) {
	log := NewLogger(false)
	var buf bytes.Buffer
	r := NewRenderer(&buf)
	listener := Listener(log, r)

	cycleCalled := false
	stopCalled := false
	origCycle := listener.OnCycle
	origStop := listener.OnStop
	listener.OnCycle = func(s mcts.TreeStats) {
		cycleCalled = true
		origCycle(s)
	}
	listener.OnStop = func(s mcts.TreeStats) {
		stopCalled = true
		origStop(s)
	}

	listener.OnCycle(mcts.TreeStats{Cycles: 1})
	listener.OnStop(mcts.TreeStats{Cycles: 10})

	if !cycleCalled || !stopCalled {
		t.Fatal("expected both callbacks to fire")
	}
}
