package chunker

import (
	"regexp"
	"strings"
)

// controlTokenPattern matches bracketed pipe-delimited model control tokens
// such as <|startoftext|> and <|endoftext|>.
var controlTokenPattern = regexp.MustCompile(`<\|[^|]*\|>`)

// Normalize strips non-semantic markers from raw document text before
// chunking: model control tokens of the form <|...|>, NUL bytes, and
// leading/trailing whitespace. It is deterministic and idempotent.
func Normalize(raw string) string {
	text := strings.ReplaceAll(raw, "\x00", "")

	// Stripping a token can butt two fragments together into a new
	// token, so replace until the text is stable.
	for {
		stripped := controlTokenPattern.ReplaceAllString(text, "")
		if stripped == text {
			break
		}
		text = stripped
	}

	return strings.TrimSpace(text)
}
