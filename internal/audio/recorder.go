package audio

import (
	"context"
	"math"
	"time"

	"github.com/gordonklaus/portaudio"
)

const (
	SampleRate = 16000
	frameSize  = 320 // 20ms
)

// Recorder captures mono 16 kHz phrases from the default input device.
type Recorder struct {
	SilenceThreshRMS float64       // RMS below this counts as silence
	SilenceDuration  time.Duration // trailing silence that ends a phrase
	MaxPhrase        time.Duration // hard cap per phrase
}

func NewRecorder(silenceThresh float64, silenceDur time.Duration) *Recorder {
	if silenceThresh <= 0 {
		silenceThresh = 0.015
	}
	if silenceDur <= 0 {
		silenceDur = 600 * time.Millisecond
	}
	return &Recorder{
		SilenceThreshRMS: silenceThresh,
		SilenceDuration:  silenceDur,
		MaxPhrase:        15 * time.Second,
	}
}

func (r *Recorder) Init() error {
	return portaudio.Initialize()
}

func (r *Recorder) Close() {
	portaudio.Terminate()
}

// RecordPhrase blocks until speech starts, then returns the captured samples
// once trailing silence exceeds SilenceDuration or the phrase cap is hit.
// Returns an empty slice when nothing but silence was heard.
func (r *Recorder) RecordPhrase(ctx context.Context) ([]float32, error) {
	buf := make([]float32, frameSize)
	out := make([]float32, 0, SampleRate*3)

	stream, err := portaudio.OpenDefaultStream(1, 0, SampleRate, len(buf), buf)
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	if err := stream.Start(); err != nil {
		return nil, err
	}
	defer stream.Stop()

	var (
		speaking      bool
		silenceFrames int
	)

	frameDur := 20 * time.Millisecond
	maxFrames := int(r.MaxPhrase / frameDur)
	silenceLimit := int(r.SilenceDuration / frameDur)

	for i := 0; i < maxFrames; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := stream.Read(); err != nil {
			return nil, err
		}

		rms := frameRMS(buf)

		if rms > r.SilenceThreshRMS {
			speaking = true
			silenceFrames = 0
			out = append(out, buf...)
		} else if speaking {
			silenceFrames++
			if silenceFrames >= silenceLimit {
				break
			}
			// keep trailing audio so word endings are not clipped
			out = append(out, buf...)
		}
	}

	return out, nil
}

func frameRMS(f []float32) float64 {
	var s float64
	for _, x := range f {
		s += float64(x * x)
	}
	return math.Sqrt(s / float64(len(f)))
}
