package runner

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxInputSize is the per-line limit used when none is configured.
// ABENTEUER_MAX_INPUT_SIZE overrides it through internal/config.
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// SanitizeInput trims one command line and checks it against limit bytes.
// Invalid UTF-8 is rejected and control characters other than newline, tab
// and carriage return are dropped. A limit <= 0 means DefaultMaxInputSize.
func SanitizeInput(line string, limit int) (string, error) {
	if limit <= 0 {
		limit = DefaultMaxInputSize
	}

	line = strings.TrimSpace(line)
	if len(line) > limit {
		return "", fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(line), limit)
	}
	if !utf8.ValidString(line) {
		return "", ErrInvalidUTF8
	}
	if strings.IndexFunc(line, unsafeControl) < 0 {
		return line, nil
	}

	return strings.Map(func(r rune) rune {
		if unsafeControl(r) {
			return -1
		}
		return r
	}, line), nil
}

// unsafeControl matches ESC, NUL, BEL and the other control runes a
// terminal would interpret.
func unsafeControl(r rune) bool {
	return unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r'
}
