package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestAddTimerFiresOnce(t *testing.T) {
	manager := NewTimerManager()
	defer manager.Stop()

	var fired int32
	manager.AddTimer(50*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(400 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("one-shot timer fired %d times, want 1", got)
	}
}

func TestAddTimerRepeatsOnInterval(t *testing.T) {
	manager := NewTimerManager()
	defer manager.Stop()

	var fired int32
	manager.AddTimer(50*time.Millisecond, 150*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(600 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got < 2 {
		t.Errorf("repeating timer fired %d times, want at least 2", got)
	}
}

func TestRemoveTimerCancelsPendingTask(t *testing.T) {
	manager := NewTimerManager()
	defer manager.Stop()

	var fired int32
	id := manager.AddTimer(200*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	manager.RemoveTimer(id)

	time.Sleep(500 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("removed timer fired %d times, want 0", got)
	}
}

func TestStopHaltsProcessing(t *testing.T) {
	manager := NewTimerManager()

	var fired int32
	manager.AddTimer(200*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	manager.Stop()

	time.Sleep(500 * time.Millisecond)
	if got := atomic.LoadInt32(&fired); got != 0 {
		t.Errorf("timer fired %d times after Stop, want 0", got)
	}
}
