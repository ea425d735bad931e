package tts

/*
#cgo LDFLAGS: -lespeak-ng
#include <stdlib.h>
#include <string.h>
#include <espeak-ng/speak_lib.h>

int
sheriff_tts_init(const char *voice, int rate)
{
	if (espeak_Initialize(AUDIO_OUTPUT_PLAYBACK, 500, NULL, 0) < 0)
	{ return -1; }

	if (voice && *voice)
	{ espeak_SetVoiceByName(voice); }

	if (rate > 0)
	{ espeak_SetParameter(espeakRATE, rate, 0); }

	return 0;
}

int
sheriff_tts_say(const char *text)
{
	if (!text)
	{ return -1; }

	if (espeak_Synth(text, strlen(text) + 1, 0, 0, 0,
	                 espeakCHARS_AUTO, NULL, NULL) != EE_OK)
	{ return -1; }

	if (espeak_Synchronize() != EE_OK)
	{ return -2; }

	return 0;
}

void
sheriff_tts_stop(void)
{
	espeak_Cancel();
}

void
sheriff_tts_close(void)
{
	espeak_Terminate();
}
*/
import "C"

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Engine speaks through espeak-ng. Playback is asynchronous inside espeak;
// Speak blocks until the utterance finishes or Stop cancels it.
type Engine struct {
	mu       sync.Mutex // serializes utterances
	speaking atomic.Bool
}

func NewEngine(voice string, rate int) (*Engine, error) {
	cvoice := C.CString(voice)
	defer C.free(unsafe.Pointer(cvoice))

	if rc := C.sheriff_tts_init(cvoice, C.int(rate)); rc != 0 {
		return nil, fmt.Errorf("espeak init failed: %d", int(rc))
	}
	return &Engine{}, nil
}

func (e *Engine) Speak(text string) error {
	if text == "" {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	ctext := C.CString(text)
	defer C.free(unsafe.Pointer(ctext))

	e.speaking.Store(true)
	defer e.speaking.Store(false)

	// rc -2 means Synchronize returned early, which is what Stop causes
	if rc := C.sheriff_tts_say(ctext); rc == -1 {
		return fmt.Errorf("espeak synth failed: %d", int(rc))
	}

	return nil
}

// Stop cancels the in-flight utterance, if any. Safe from any goroutine;
// this is the barge-in path.
func (e *Engine) Stop() {
	if e.speaking.Load() {
		C.sheriff_tts_stop()
	}
}

func (e *Engine) Speaking() bool {
	return e.speaking.Load()
}

func (e *Engine) Close() {
	C.sheriff_tts_close()
}
