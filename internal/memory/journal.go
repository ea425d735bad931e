package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Journal keeps one markdown file per day with timestamped entries — the
// assistant's "digital exhaust".
type Journal struct {
	Dir string

	now func() time.Time // overridable in tests
}

func NewJournal(dir string) *Journal {
	return &Journal{Dir: dir, now: time.Now}
}

func (j *Journal) todayFile() string {
	return filepath.Join(j.Dir, j.now().Format("2006-01-02")+".md")
}

// Log appends "- [CATEGORY] message" to today's file, writing the day
// header first when the file is new.
func (j *Journal) Log(category, message string) (string, error) {
	if err := os.MkdirAll(j.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create journal dir: %w", err)
	}

	path := j.todayFile()
	_, statErr := os.Stat(path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return "", fmt.Errorf("open journal: %w", err)
	}
	defer f.Close()

	if isNew {
		header := fmt.Sprintf("# Daily Log: %s\n\n## %s - Sheriff Online\n",
			j.now().Format("2006-01-02"), j.now().Format("3:04 PM"))
		if _, err := f.WriteString(header); err != nil {
			return "", err
		}
	}

	entry := fmt.Sprintf("- [%s] %s\n", strings.ToUpper(category), message)
	if _, err := f.WriteString(entry); err != nil {
		return "", err
	}

	return fmt.Sprintf("Logged to %s.", filepath.Base(path)), nil
}

// Read returns the journal for "today", "yesterday" or a YYYY-MM-DD date.
func (j *Journal) Read(date string) (string, error) {
	var target time.Time
	switch date {
	case "", "today":
		target = j.now()
	case "yesterday":
		target = j.now().AddDate(0, 0, -1)
	default:
		var err error
		target, err = time.Parse("2006-01-02", date)
		if err != nil {
			return "", fmt.Errorf("invalid date %q, want YYYY-MM-DD", date)
		}
	}

	path := filepath.Join(j.Dir, target.Format("2006-01-02")+".md")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("no log found for %s", filepath.Base(path))
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
