package database

import (
	"strings"

	"github.com/prozessdok/prozessdok-backend/pkg/errors"
)

// SortClause translates a client sort spec ("name" ascending,
// "-updated_at" descending) into an ORDER BY fragment. Columns are
// resolved through the whitelist; anything else is a validation error.
// An empty spec falls back to the given default.
func SortClause(spec string, whitelist map[string]string, defaultSpec string) (string, error) {
	if spec == "" {
		spec = defaultSpec
	}

	direction := "ASC"
	if strings.HasPrefix(spec, "-") {
		direction = "DESC"
		spec = spec[1:]
	}

	column, ok := whitelist[spec]
	if !ok {
		return "", errors.Validation(map[string]string{
			"sort": "unsupported sort field: " + spec,
		})
	}

	return column + " " + direction, nil
}
