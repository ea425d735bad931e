package tools

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	readCap    = 2000 // bytes of file content returned to the LLM
	listCap    = 30   // entries listed per directory
	perKindCap = 20   // dirs/files counted separately before the overall cap
)

func readFile(path string) (string, error) {
	if path == "" {
		return "Read which file, Sheriff?", fmt.Errorf("read_file without path")
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("File not found: %s", path), err
	}
	if err != nil {
		return fmt.Sprintf("Could not read %s.", filepath.Base(path)), err
	}

	content := string(data)
	if len(content) > readCap {
		content = content[:readCap] + "\n...[truncated]"
	}
	return fmt.Sprintf("Contents of %s:\n%s", filepath.Base(path), content), nil
}

func writeFile(path, content string) (string, error) {
	if path == "" {
		return "Write where, Sheriff?", fmt.Errorf("write_file without path")
	}

	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Sprintf("Could not create %s.", dir), err
		}
	}

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Could not write %s.", filepath.Base(path)), err
	}
	return fmt.Sprintf("Written to %s.", filepath.Base(path)), nil
}

func listFiles(path string) (string, error) {
	if path == "" {
		path = "."
	}

	entries, err := os.ReadDir(path)
	if os.IsNotExist(err) {
		return fmt.Sprintf("Directory not found: %s", path), err
	}
	if err != nil {
		return fmt.Sprintf("Could not list %s.", path), err
	}

	var dirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			if len(dirs) < perKindCap {
				dirs = append(dirs, e.Name()+"/")
			}
		} else if len(files) < perKindCap {
			files = append(files, e.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	all := append(dirs, files...)
	if len(all) > listCap {
		all = all[:listCap]
	}
	if len(all) == 0 {
		return fmt.Sprintf("%s is empty.", path), nil
	}

	return fmt.Sprintf("Contents of %s:\n%s", path, strings.Join(all, "\n")), nil
}
