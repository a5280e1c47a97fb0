package validation

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Built-in spam markers used when no deny-list file is configured.
// Operators replace these via DENY_LIST_PATH: one pattern per line,
// '#' starts a comment. Matching is case-insensitive substring.
var defaultDenyList = []string{
	"click here to claim",
	"congratulations you won",
	"free money",
	"buy followers",
	"limited time offer!!!",
}

func LoadDenyList(path string) ([]string, error) {
	if path == "" {
		return defaultDenyList, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open deny-list %s: %w", path, err)
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read deny-list %s: %w", path, err)
	}

	slog.Info("[Validation] Deny-list loaded",
		slog.String("path", path),
		slog.Int("patterns", len(patterns)))

	return patterns, nil
}
