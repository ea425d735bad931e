package brain

import (
	"context"
	"testing"

	"sheriff/internal/tools"
)

type execRecorder struct {
	actions []tools.Action
}

func (r *execRecorder) exec(_ context.Context, a tools.Action) (string, error) {
	r.actions = append(r.actions, a)
	return "done", nil
}

func TestReflexStopIsSilent(t *testing.T) {
	stopped := false
	rec := &execRecorder{}
	r := NewReflex(func() { stopped = true }, rec.exec)

	reply, handled := r.Check(context.Background(), "stop")
	if !handled {
		t.Fatalf("stop not handled")
	}
	if reply != "" {
		t.Fatalf("stop must be silent, got %q", reply)
	}
	if !stopped {
		t.Fatalf("stop callback not invoked")
	}
	if len(rec.actions) != 0 {
		t.Fatalf("stop must not dispatch a tool")
	}
}

func TestReflexOpenSite(t *testing.T) {
	rec := &execRecorder{}
	r := NewReflex(nil, rec.exec)

	_, handled := r.Check(context.Background(), "open youtube")
	if !handled {
		t.Fatalf("expected reflex to handle")
	}
	if len(rec.actions) != 1 || rec.actions[0].Tool != "open_url" {
		t.Fatalf("unexpected actions: %+v", rec.actions)
	}
	if rec.actions[0].URL != "https://www.youtube.com" {
		t.Fatalf("unexpected url: %q", rec.actions[0].URL)
	}
}

func TestReflexGmailSpecialCase(t *testing.T) {
	rec := &execRecorder{}
	r := NewReflex(nil, rec.exec)

	if _, handled := r.Check(context.Background(), "open gmail"); !handled {
		t.Fatalf("expected reflex to handle")
	}
	if rec.actions[0].URL != "https://mail.google.com" {
		t.Fatalf("unexpected url: %q", rec.actions[0].URL)
	}
}

func TestReflexOpenApp(t *testing.T) {
	rec := &execRecorder{}
	r := NewReflex(nil, rec.exec)

	if _, handled := r.Check(context.Background(), "open calculator"); !handled {
		t.Fatalf("expected reflex to handle")
	}
	if rec.actions[0].Tool != "open_app" || rec.actions[0].App != "calculator" {
		t.Fatalf("unexpected action: %+v", rec.actions[0])
	}
}

func TestReflexVolume(t *testing.T) {
	cases := []struct {
		command string
		media   string
	}{
		{"volume up please", "volumeup"},
		{"turn it down a bit", "volumedown"},
		{"mute", "mute"},
	}
	for _, tc := range cases {
		rec := &execRecorder{}
		r := NewReflex(nil, rec.exec)
		if _, handled := r.Check(context.Background(), tc.command); !handled {
			t.Fatalf("%q not handled", tc.command)
		}
		if rec.actions[0].Tool != "media" || rec.actions[0].Media != tc.media {
			t.Fatalf("%q dispatched %+v", tc.command, rec.actions[0])
		}
	}
}

func TestReflexTime(t *testing.T) {
	rec := &execRecorder{}
	r := NewReflex(nil, rec.exec)

	if _, handled := r.Check(context.Background(), "what time is it"); !handled {
		t.Fatalf("expected reflex to handle")
	}
	if rec.actions[0].Tool != "get_time" {
		t.Fatalf("unexpected action: %+v", rec.actions[0])
	}
}

func TestReflexPassesComplexCommands(t *testing.T) {
	rec := &execRecorder{}
	r := NewReflex(nil, rec.exec)

	for _, command := range []string{
		"open the file I was editing yesterday",
		"summarize my journal",
		"stop the music and play something else", // not a bare stop
	} {
		if _, handled := r.Check(context.Background(), command); handled {
			t.Fatalf("%q should go to the model", command)
		}
	}
}
