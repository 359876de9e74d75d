package pgtext

import (
	"strings"

	"github.com/gofrs/uuid"
)

// ParseUUID parses a UUID in any of the forms accepted by PostgreSQL: with or
// without hyphens, optionally enclosed in braces.
func ParseUUID(s string) (uuid.UUID, error) {
	u, err := uuid.FromString(strings.TrimSpace(s))
	if err != nil {
		return uuid.Nil, newParseError("UUID", s, err)
	}
	return u, nil
}

// FormatUUID writes u in the canonical hyphenated lowercase form.
func FormatUUID(buf FormatBuffer, u uuid.UUID) Nestable {
	buf.WriteString(u.String())
	return NestableYes
}
