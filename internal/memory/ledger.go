package memory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const ledgerFile = ".sheriff"

const ledgerTemplate = `# PROJECT: %s
# GOAL: [One sentence goal]
# DEADLINE: [Date]
# MOTIVATION: [Why is this important?]

## STATUS (Last Updated: %s)
- [ ] Initial Task

## CONTEXT & BLOCKERS
- Current issue: None
- Tech Stack: [Stack]
- Notes: None
`

// Ledger manages the per-project .sheriff files that give the assistant
// workspace awareness: one loaded project at a time, tasks and blockers
// edited in place.
type Ledger struct {
	mu       sync.Mutex
	projects map[string]string // alias -> absolute path

	currentAlias string
	currentPath  string
}

func NewLedger(projects map[string]string) *Ledger {
	if projects == nil {
		projects = map[string]string{}
	}
	return &Ledger{projects: projects}
}

// Load reads the project's .sheriff file, creating it from the template on
// first use, and makes the project current.
func (l *Ledger) Load(alias string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	alias = strings.ToLower(strings.TrimSpace(alias))
	path, ok := l.projects[alias]
	if !ok {
		return "", fmt.Errorf("project %q not found in registry", alias)
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("project %q path missing: %w", alias, err)
	}

	l.currentAlias = alias
	l.currentPath = path

	file := filepath.Join(path, ledgerFile)
	data, err := os.ReadFile(file)
	if err == nil {
		return fmt.Sprintf("Context loaded for %s:\n%s", alias, string(data)), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("read ledger: %w", err)
	}

	content := fmt.Sprintf(ledgerTemplate, title(alias), time.Now().Format("2006-01-02"))
	if err := os.WriteFile(file, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("create ledger: %w", err)
	}
	return fmt.Sprintf("Initialized new project ledger for %s. Please update the goals.", alias), nil
}

// AddTask inserts an unchecked task right under the ## STATUS heading.
func (l *Ledger) AddTask(task string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, file, err := l.readCurrent()
	if err != nil {
		return "", err
	}

	entry := fmt.Sprintf("- [ ] %s", task)

	statusIdx := -1
	for i, line := range lines {
		if strings.Contains(line, "## STATUS") {
			statusIdx = i
			break
		}
	}

	if statusIdx >= 0 {
		lines = append(lines[:statusIdx+1], append([]string{entry}, lines[statusIdx+1:]...)...)
	} else {
		lines = append(lines, "", "## STATUS", entry)
	}

	if err := writeLines(file, lines); err != nil {
		return "", err
	}
	return fmt.Sprintf("Added task: %s", task), nil
}

// LogBlocker rewrites the "- Current issue:" line, appending one if the
// section is missing.
func (l *Ledger) LogBlocker(issue string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, file, err := l.readCurrent()
	if err != nil {
		return "", err
	}

	updated := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "- Current issue:") {
			lines[i] = fmt.Sprintf("- Current issue: %s", issue)
			updated = true
		}
	}
	if !updated {
		lines = append(lines, fmt.Sprintf("- Current issue: %s", issue))
	}

	if err := writeLines(file, lines); err != nil {
		return "", err
	}
	return fmt.Sprintf("Logged blocker: %s", issue), nil
}

// MarkComplete checks off every open task containing the keyword.
func (l *Ledger) MarkComplete(keyword string) (string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lines, file, err := l.readCurrent()
	if err != nil {
		return "", err
	}

	count := 0
	for i, line := range lines {
		if strings.Contains(line, "- [ ]") && strings.Contains(strings.ToLower(line), strings.ToLower(keyword)) {
			lines[i] = strings.Replace(line, "- [ ]", "- [x]", 1)
			count++
		}
	}

	if count == 0 {
		return fmt.Sprintf("No task found matching %q.", keyword), nil
	}

	if err := writeLines(file, lines); err != nil {
		return "", err
	}
	return fmt.Sprintf("Marked %d task(s) as complete.", count), nil
}

func (l *Ledger) Current() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentAlias
}

func (l *Ledger) readCurrent() ([]string, string, error) {
	if l.currentPath == "" {
		return nil, "", fmt.Errorf("no project loaded")
	}
	file := filepath.Join(l.currentPath, ledgerFile)
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, "", fmt.Errorf("read ledger: %w", err)
	}
	return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), file, nil
}

func writeLines(file string, lines []string) error {
	return os.WriteFile(file, []byte(strings.Join(lines, "\n")+"\n"), 0o644)
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
