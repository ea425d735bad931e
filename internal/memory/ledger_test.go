package memory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testLedger(t *testing.T) (*Ledger, string) {
	t.Helper()
	dir := t.TempDir()
	l := NewLedger(map[string]string{"sheriff": dir})
	return l, filepath.Join(dir, ledgerFile)
}

func TestLedgerInitializesTemplate(t *testing.T) {
	l, file := testLedger(t)

	out, err := l.Load("sheriff")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(out, "Initialized new project ledger") {
		t.Fatalf("unexpected reply: %q", out)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("read ledger: %v", err)
	}
	if !strings.Contains(string(data), "# PROJECT: Sheriff") {
		t.Fatalf("template not written:\n%s", data)
	}
	if l.Current() != "sheriff" {
		t.Fatalf("current = %q", l.Current())
	}
}

func TestLedgerLoadExisting(t *testing.T) {
	l, _ := testLedger(t)
	if _, err := l.Load("sheriff"); err != nil {
		t.Fatalf("first Load: %v", err)
	}

	out, err := l.Load("sheriff")
	if err != nil {
		t.Fatalf("second Load: %v", err)
	}
	if !strings.Contains(out, "Context loaded for sheriff") {
		t.Fatalf("unexpected reply: %q", out)
	}
}

func TestLedgerUnknownProject(t *testing.T) {
	l, _ := testLedger(t)
	if _, err := l.Load("ghost"); err == nil {
		t.Fatalf("expected error for unknown alias")
	}
}

func TestLedgerAddTaskUnderStatus(t *testing.T) {
	l, file := testLedger(t)
	if _, err := l.Load("sheriff"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := l.AddTask("wire the websocket feed"); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	data, _ := os.ReadFile(file)
	lines := strings.Split(string(data), "\n")
	for i, line := range lines {
		if strings.Contains(line, "## STATUS") {
			if lines[i+1] != "- [ ] wire the websocket feed" {
				t.Fatalf("task not directly under STATUS:\n%s", data)
			}
			return
		}
	}
	t.Fatalf("STATUS heading missing:\n%s", data)
}

func TestLedgerBlockerRewrite(t *testing.T) {
	l, file := testLedger(t)
	if _, err := l.Load("sheriff"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if _, err := l.LogBlocker("sqlite locked"); err != nil {
		t.Fatalf("LogBlocker: %v", err)
	}

	data, _ := os.ReadFile(file)
	content := string(data)
	if !strings.Contains(content, "- Current issue: sqlite locked") {
		t.Fatalf("blocker not recorded:\n%s", content)
	}
	if strings.Contains(content, "- Current issue: None") {
		t.Fatalf("old blocker line not replaced:\n%s", content)
	}
}

func TestLedgerMarkComplete(t *testing.T) {
	l, file := testLedger(t)
	if _, err := l.Load("sheriff"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, err := l.AddTask("ship the release"); err != nil {
		t.Fatalf("AddTask: %v", err)
	}

	out, err := l.MarkComplete("release")
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !strings.Contains(out, "Marked 1 task(s)") {
		t.Fatalf("unexpected reply: %q", out)
	}

	data, _ := os.ReadFile(file)
	if !strings.Contains(string(data), "- [x] ship the release") {
		t.Fatalf("task not checked off:\n%s", data)
	}
}

func TestLedgerMarkCompleteNoMatch(t *testing.T) {
	l, _ := testLedger(t)
	if _, err := l.Load("sheriff"); err != nil {
		t.Fatalf("Load: %v", err)
	}

	out, err := l.MarkComplete("nonexistent")
	if err != nil {
		t.Fatalf("MarkComplete: %v", err)
	}
	if !strings.Contains(out, "No task found") {
		t.Fatalf("unexpected reply: %q", out)
	}
}

func TestLedgerNoProjectLoaded(t *testing.T) {
	l := NewLedger(nil)
	if _, err := l.AddTask("anything"); err == nil {
		t.Fatalf("expected error with no project loaded")
	}
}
