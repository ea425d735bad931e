package tools

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"sheriff/internal/memory"
)

// Dispatcher executes parsed actions. Everything it touches is an external
// process or the memory layer; no tool may panic the daemon.
type Dispatcher struct {
	journal *memory.Journal
	ledger  *memory.Ledger
	music   *MusicPlayer

	// exit is called for the "exit" tool; the daemon wires graceful shutdown.
	exit func()
}

func NewDispatcher(journal *memory.Journal, ledger *memory.Ledger, exit func()) *Dispatcher {
	if exit == nil {
		exit = func() {}
	}
	return &Dispatcher{
		journal: journal,
		ledger:  ledger,
		music:   &MusicPlayer{},
		exit:    exit,
	}
}

// Execute runs one action and returns the sentence to speak back. Errors are
// folded into spoken replies; the error return is for logging only.
func (d *Dispatcher) Execute(ctx context.Context, a Action) (string, error) {
	slog.Info("executing tool", "tool", a.Tool)

	switch a.Tool {
	case "open_app":
		return d.openApp(ctx, a.App)

	case "open_url":
		return openURL(ctx, a.URL)

	case "web_search":
		return webSearch(ctx, a.Query)

	case "media":
		return mediaControl(ctx, a.Media)

	case "play_music":
		return d.music.Play(a.Song)

	case "stop_music":
		return d.music.Stop()

	case "read_file":
		return readFile(a.Path)

	case "write_file":
		return writeFile(a.Path, a.Content)

	case "list_files":
		return listFiles(a.Path)

	case "run_command":
		return RunCommand(ctx, a.Command)

	case "get_time":
		now := time.Now()
		return fmt.Sprintf("It's %s on %s, Sheriff.",
			now.Format("3:04 PM"), now.Format("Monday, January 2")), nil

	case "get_clipboard":
		return getClipboard(ctx)

	case "set_clipboard":
		return setClipboard(ctx, a.Text)

	case "type_text":
		return typeText(ctx, a.Text)

	case "press_key":
		return pressKey(ctx, a.Key)

	case "journal_log":
		return d.journal.Log("user", a.Message)

	case "read_journal":
		return d.journal.Read(a.Date)

	case "load_project":
		return d.ledger.Load(a.Project)

	case "add_task":
		return d.ledger.AddTask(a.Task)

	case "log_blocker":
		return d.ledger.LogBlocker(a.Issue)

	case "mark_done":
		return d.ledger.MarkComplete(a.Task)

	case "exit":
		d.exit()
		return "Goodbye, Sheriff.", nil

	default:
		return fmt.Sprintf("Unknown tool: %s", a.Tool), fmt.Errorf("unknown tool %q", a.Tool)
	}
}
