// Package roles handles responsible-party parsing and the role vocabulary.
package roles

import (
	"strings"

	"defect-cost/internal/errors"
)

// Splitter parses a delimited responsible-party cell into individual role
// names. Multiple roles share one cell separated by "/".
type Splitter struct {
	// Strict rejects fields that produce empty role names after trimming
	// ("Cutting//Bending"). The permissive default keeps them as
	// empty-string roles, matching historical report behavior.
	Strict bool
}

// Split returns the trimmed role names in order of appearance.
// A missing or blank field yields no roles and no error.
func (s Splitter) Split(raw string) ([]string, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	parts := strings.Split(raw, "/")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		name := strings.TrimSpace(p)
		if name == "" && s.Strict {
			return nil, errors.MalformedRoleField(raw)
		}
		result = append(result, name)
	}
	return result, nil
}
