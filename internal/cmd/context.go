package cmd

import (
	"fmt"
	"strings"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

// ParseContext turns repeated KEY=value arguments into a context map.
// The value is everything after the first '=' and may be empty. A later
// assignment to the same key replaces an earlier one.
func ParseContext(pairs []string) (map[string]string, error) {
	ctx := make(map[string]string, len(pairs))

	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, oerrors.NewArgumentError(
				fmt.Sprintf("invalid KEY=value: no `=` found in `%s`", pair),
				"Pass context values as -c KEY=value.",
			)
		}
		if key == "" {
			return nil, oerrors.NewArgumentError(
				fmt.Sprintf("invalid KEY=value: empty key in `%s`", pair),
				"Pass context values as -c KEY=value.",
			)
		}
		ctx[key] = value
	}

	return ctx, nil
}
