package assistant

import (
	"strings"
	"time"
)

// jarvisVariants are the mishears whisper produces for "jarvis". Matching
// any of them counts as the wake word; demanding a perfect transcription
// makes the assistant deaf in practice.
var jarvisVariants = []string{
	"jarvis", "darius", "jervis", "jarv", "jaravis", "jarvi",
	"service", "harvest", "travis", "davis", "chavis",
}

// WakeVariants returns the accepted spellings for a wake word.
func WakeVariants(wake string) []string {
	wake = strings.ToLower(strings.TrimSpace(wake))
	if wake == "jarvis" {
		return jarvisVariants
	}
	return []string{wake}
}

// DetectWake looks for any wake variant in the transcript and returns the
// command text that follows it. ok is false when no variant is present.
func DetectWake(text string, variants []string) (command string, ok bool) {
	lower := strings.ToLower(text)
	for _, variant := range variants {
		if idx := strings.Index(lower, variant); idx >= 0 {
			rest := lower[idx+len(variant):]
			return strings.TrimSpace(strings.Trim(strings.TrimSpace(rest), ",.!?")), true
		}
	}
	return "", false
}

// Latch is the conversational window: once the wake word opened it, follow-up
// utterances need no wake word until it expires. Every interaction refreshes it.
type Latch struct {
	Window time.Duration

	until time.Time
	now   func() time.Time
}

func NewLatch(window time.Duration) *Latch {
	return &Latch{Window: window, now: time.Now}
}

func (l *Latch) Open() {
	l.until = l.now().Add(l.Window)
}

func (l *Latch) Active() bool {
	return l.now().Before(l.until)
}

func (l *Latch) Close() {
	l.until = time.Time{}
}
