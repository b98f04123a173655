// Package input turns command-line arguments or piped lines into entities.
package input

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tbckr/insight/internal/apperr"
	"github.com/tbckr/insight/internal/entity"
)

// Read reads lines from r, trims whitespace, and returns non-empty lines.
// Lines starting with '#' are comments and dropped like blank lines.
func Read(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			inputs = append(inputs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}

// Entities classifies raw values in order. Unrecognised values are logged
// and skipped, and repeated values (compared case-insensitively) are kept
// once. An error wrapping apperr.ErrInvalidInput is returned when nothing
// usable remains.
func Entities(raw []string, logger *slog.Logger) ([]entity.Entity, error) {
	seen := make(map[string]struct{}, len(raw))
	out := make([]entity.Entity, 0, len(raw))
	for _, v := range raw {
		e, err := entity.Detect(v)
		if err != nil {
			logger.Warn("skipping input", "value", v, "error", err)
			continue
		}
		key := strings.ToLower(e.Value)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no recognisable entities in input", apperr.ErrInvalidInput)
	}
	return out, nil
}
