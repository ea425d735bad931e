package assistant

import (
	"testing"
	"time"
)

func TestDetectWakeWithCommand(t *testing.T) {
	variants := WakeVariants("jarvis")

	cmd, ok := DetectWake("Jarvis open spotify", variants)
	if !ok {
		t.Fatalf("expected wake detection")
	}
	if cmd != "open spotify" {
		t.Fatalf("unexpected command: %q", cmd)
	}
}

func TestDetectWakeMishears(t *testing.T) {
	variants := WakeVariants("jarvis")

	for _, text := range []string{
		"Harvest, what time is it",
		"travis play some music",
		"Service! volume up",
	} {
		if _, ok := DetectWake(text, variants); !ok {
			t.Fatalf("expected wake detection for %q", text)
		}
	}
}

func TestDetectWakeBareWakeWord(t *testing.T) {
	cmd, ok := DetectWake("jarvis", WakeVariants("jarvis"))
	if !ok {
		t.Fatalf("expected wake detection")
	}
	if cmd != "" {
		t.Fatalf("expected empty command, got %q", cmd)
	}
}

func TestDetectWakeIgnoresBackgroundSpeech(t *testing.T) {
	if _, ok := DetectWake("the weather is nice today", WakeVariants("jarvis")); ok {
		t.Fatalf("did not expect wake detection")
	}
}

func TestWakeVariantsCustomWord(t *testing.T) {
	variants := WakeVariants("Sheriff")
	if len(variants) != 1 || variants[0] != "sheriff" {
		t.Fatalf("unexpected variants: %#v", variants)
	}
}

func TestLatchExpiry(t *testing.T) {
	now := time.Now()
	l := NewLatch(10 * time.Second)
	l.now = func() time.Time { return now }

	if l.Active() {
		t.Fatalf("latch should start closed")
	}

	l.Open()
	if !l.Active() {
		t.Fatalf("latch should be open")
	}

	now = now.Add(9 * time.Second)
	if !l.Active() {
		t.Fatalf("latch should still be open inside the window")
	}

	now = now.Add(2 * time.Second)
	if l.Active() {
		t.Fatalf("latch should have expired")
	}
}

func TestLatchClose(t *testing.T) {
	l := NewLatch(10 * time.Second)
	l.Open()
	l.Close()
	if l.Active() {
		t.Fatalf("latch should be closed")
	}
}
