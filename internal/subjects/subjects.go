// Package subjects loads the list of commit subjects to hunt for.
package subjects

import (
	"os"
	"strings"

	"fixtrace/internal/errors"
)

// Load reads a subject list: one commit subject per line, blank and
// whitespace-only lines skipped. A list with zero usable entries is an
// EMPTY_INPUT error; no history queries may run in that case.
func Load(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(
			errors.InputUnreadable,
			"Failed to read subject list",
			err,
			nil,
		).WithDetails(map[string]interface{}{
			"path": path,
		})
	}

	lines := strings.Split(string(data), "\n")
	subjects := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		subjects = append(subjects, line)
	}

	if len(subjects) == 0 {
		return nil, errors.New(
			errors.EmptyInput,
			"Subject list is empty",
			nil,
			nil,
		).WithDetails(map[string]interface{}{
			"path": path,
		})
	}

	return subjects, nil
}
