package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// IdentifierLength is the fixed length of an affaire identifier.
const IdentifierLength = 8

var identifierPattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// Identifier is a validated 8-character alphanumeric affaire code.
// Immutable once parsed.
type Identifier string

// ParseIdentifier normalizes raw input (scanned or typed) into an
// Identifier: trim, uppercase, truncate to 8 characters. Scanned input
// is expected to start with the code, so truncation keeps the head.
func ParseIdentifier(raw string) (Identifier, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))

	runes := []rune(s)
	if len(runes) > IdentifierLength {
		s = string(runes[:IdentifierLength])
	}

	if !identifierPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidIdentifier, raw)
	}

	return Identifier(s), nil
}

func (id Identifier) String() string {
	return string(id)
}
