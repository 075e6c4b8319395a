package summarizer

import (
	"fmt"
	"strconv"
	"strings"
)

// DirectiveKind enumerates the supported summary-length policies.
type DirectiveKind int

const (
	// DirectiveMedium is the default verbosity.
	DirectiveMedium DirectiveKind = iota

	// DirectiveShort requests a minimal summary.
	DirectiveShort

	// DirectiveLong requests a detailed summary.
	DirectiveLong

	// DirectiveCharTarget requests an approximate character count.
	DirectiveCharTarget
)

// Directive is the resolved summary-length instruction for one run.
// Exactly one directive is active per run.
type Directive struct {
	Kind DirectiveKind

	// CharTarget is the approximate character target; only meaningful
	// when Kind is DirectiveCharTarget.
	CharTarget int
}

// ResolveDirective resolves a user-supplied length specifier into a
// Directive. Keywords are matched case-insensitively; a bare positive
// integer becomes a character target; anything unrecognized falls back
// to the medium directive.
func ResolveDirective(spec string) Directive {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "short", "brief":
		return Directive{Kind: DirectiveShort}
	case "medium", "normal", "":
		return Directive{Kind: DirectiveMedium}
	case "long", "detailed":
		return Directive{Kind: DirectiveLong}
	}

	if n, err := strconv.Atoi(strings.TrimSpace(spec)); err == nil && n > 0 {
		return Directive{Kind: DirectiveCharTarget, CharTarget: n}
	}

	return Directive{Kind: DirectiveMedium}
}

// Instruction renders the directive as the instruction fragment embedded
// in map and combine prompts.
func (d Directive) Instruction() string {
	switch d.Kind {
	case DirectiveShort:
		return "Keep the summary very short: two or three sentences capturing only the essential points."
	case DirectiveLong:
		return "Write a detailed summary of several paragraphs, preserving important supporting details."
	case DirectiveCharTarget:
		return fmt.Sprintf("Aim for a summary of approximately %d characters.", d.CharTarget)
	default:
		return "Write a summary of moderate length: one or two paragraphs covering the main points."
	}
}
