package tools

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is the JSON command the brain emits instead of prose when the user
// asked for something to be done.
type Action struct {
	Tool string `json:"tool"`

	App     string `json:"app,omitempty"`
	URL     string `json:"url,omitempty"`
	Query   string `json:"query,omitempty"`
	Media   string `json:"action,omitempty"`
	Song    string `json:"song,omitempty"`
	Path    string `json:"path,omitempty"`
	Content string `json:"content,omitempty"`
	Command string `json:"command,omitempty"`
	Text    string `json:"text,omitempty"`
	Key     string `json:"key,omitempty"`
	Date    string `json:"date,omitempty"`
	Project string `json:"project,omitempty"`
	Task    string `json:"task,omitempty"`
	Issue   string `json:"issue,omitempty"`
	Message string `json:"message,omitempty"`
}

// LooksLikeAction reports whether an LLM reply should be treated as a tool
// call rather than spoken prose.
func LooksLikeAction(reply string) bool {
	trimmed := strings.TrimSpace(reply)
	return strings.HasPrefix(trimmed, "{") ||
		strings.HasPrefix(trimmed, "```") ||
		strings.Contains(trimmed, `{"tool"`)
}

// ParseAction digs the action JSON out of a possibly noisy LLM reply:
// markdown fences, prose before or after, or a bare object.
func ParseAction(raw string) (Action, error) {
	clean := strings.TrimSpace(raw)

	if strings.Contains(clean, "```") {
		for _, part := range strings.Split(clean, "```") {
			if strings.Contains(part, "{") && strings.Contains(part, "}") {
				clean = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(part), "json"))
				break
			}
		}
	}

	start := strings.Index(clean, "{")
	end := strings.LastIndex(clean, "}")
	if start == -1 || end <= start {
		return Action{}, fmt.Errorf("no JSON object in reply")
	}
	clean = clean[start : end+1]

	var a Action
	if err := json.Unmarshal([]byte(clean), &a); err != nil {
		return Action{}, fmt.Errorf("unmarshal action: %w (raw: %s)", err, clean)
	}
	if a.Tool == "" {
		return Action{}, fmt.Errorf("action without tool field")
	}
	a.Tool = strings.ToLower(a.Tool)
	return a, nil
}
