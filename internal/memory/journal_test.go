package memory

import (
	"strings"
	"testing"
	"time"
)

func testJournal(t *testing.T, at time.Time) *Journal {
	t.Helper()
	j := NewJournal(t.TempDir())
	j.now = func() time.Time { return at }
	return j
}

func TestJournalWritesHeaderOnce(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 26, 0, 0, time.UTC)
	j := testJournal(t, at)

	if _, err := j.Log("idea", "pi day"); err != nil {
		t.Fatalf("Log: %v", err)
	}
	if _, err := j.Log("task", "ship the release"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	got, err := j.Read("today")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if strings.Count(got, "# Daily Log: 2026-03-14") != 1 {
		t.Fatalf("expected exactly one header:\n%s", got)
	}
	if !strings.Contains(got, "## 9:26 AM - Sheriff Online") {
		t.Fatalf("missing online line:\n%s", got)
	}
	if !strings.Contains(got, "- [IDEA] pi day\n- [TASK] ship the release\n") {
		t.Fatalf("missing entries:\n%s", got)
	}
}

func TestJournalReadYesterday(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	j := testJournal(t, at)

	if _, err := j.Log("note", "written friday"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	j.now = func() time.Time { return at.AddDate(0, 0, 1) }
	got, err := j.Read("yesterday")
	if err != nil {
		t.Fatalf("Read yesterday: %v", err)
	}
	if !strings.Contains(got, "written friday") {
		t.Fatalf("unexpected content:\n%s", got)
	}
}

func TestJournalReadExplicitDate(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	j := testJournal(t, at)
	if _, err := j.Log("note", "by date"); err != nil {
		t.Fatalf("Log: %v", err)
	}

	if _, err := j.Read("2026-03-14"); err != nil {
		t.Fatalf("Read by date: %v", err)
	}
	if _, err := j.Read("march 14"); err == nil {
		t.Fatalf("expected error for bad date format")
	}
}

func TestJournalReadMissingDay(t *testing.T) {
	j := testJournal(t, time.Now())
	if _, err := j.Read("today"); err == nil {
		t.Fatalf("expected error for missing log")
	}
}
