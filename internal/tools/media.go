package tools

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// volumeStep is the pactl adjustment per "volume up/down".
const volumeStep = "5%"

// mediaControl maps the canonical media actions onto pactl (volume) and
// playerctl (transport).
func mediaControl(ctx context.Context, action string) (string, error) {
	switch strings.ToLower(strings.ReplaceAll(action, " ", "")) {
	case "volumeup":
		err := exec.CommandContext(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", "+"+volumeStep).Run()
		return speakOr("Volume up, Sheriff.", "Volume control failed.", err)
	case "volumedown":
		err := exec.CommandContext(ctx, "pactl", "set-sink-volume", "@DEFAULT_SINK@", "-"+volumeStep).Run()
		return speakOr("Volume down, Sheriff.", "Volume control failed.", err)
	case "mute", "volumemute", "unmute":
		err := exec.CommandContext(ctx, "pactl", "set-sink-mute", "@DEFAULT_SINK@", "toggle").Run()
		return speakOr("Done, Sheriff.", "Volume control failed.", err)
	case "playpause", "play", "pause":
		err := exec.CommandContext(ctx, "playerctl", "play-pause").Run()
		return speakOr("Media controlled.", "Media control failed.", err)
	case "next", "nexttrack":
		err := exec.CommandContext(ctx, "playerctl", "next").Run()
		return speakOr("Next track.", "Media control failed.", err)
	case "previous", "prev", "prevtrack":
		err := exec.CommandContext(ctx, "playerctl", "previous").Run()
		return speakOr("Previous track.", "Media control failed.", err)
	default:
		return fmt.Sprintf("Unknown media action: %s", action), fmt.Errorf("unknown media action %q", action)
	}
}

func speakOr(ok, fail string, err error) (string, error) {
	if err != nil {
		return fail, err
	}
	return ok, nil
}

// MusicPlayer streams a song off YouTube through mpv, one track at a time.
type MusicPlayer struct {
	mu  sync.Mutex
	cmd *exec.Cmd
}

func (m *MusicPlayer) Play(song string) (string, error) {
	if song == "" {
		return "Play what, Sheriff?", fmt.Errorf("play_music without song")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	cmd := exec.Command("mpv",
		fmt.Sprintf("ytdl://ytsearch1:%s", song),
		"--no-video",
		"--no-terminal",
	)
	if err := cmd.Start(); err != nil {
		return "MPV is not installed, Sheriff.", err
	}
	m.cmd = cmd
	go cmd.Wait()

	return fmt.Sprintf("Streaming %s in the background, Sheriff.", song), nil
}

func (m *MusicPlayer) Stop() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.stopLocked() {
		return "Nothing is playing, Sheriff.", nil
	}
	return "Music stopped, Sheriff.", nil
}

func (m *MusicPlayer) Playing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cmd != nil && m.cmd.ProcessState == nil
}

func (m *MusicPlayer) stopLocked() bool {
	if m.cmd == nil || m.cmd.Process == nil {
		return false
	}
	stopped := m.cmd.ProcessState == nil
	_ = m.cmd.Process.Kill()
	m.cmd = nil
	return stopped
}
