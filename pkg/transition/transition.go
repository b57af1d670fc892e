// Package transition defines the closed set of transition kinds a container
// can animate child content with, and builds the forward animations for
// them. Reverse animations are derived structurally from the forward ones by
// [animation.Animation.Reverse].
package transition

import (
	"fmt"
	"time"

	"github.com/agnivade/levenshtein"
)

// Kind identifies one transition. The set is closed: containers switch over
// it exhaustively and persist its string form in diagnostics.
type Kind int

const (
	// None shows the child instantly with no animation.
	None Kind = iota
	// CoverFromBottom slides the child in over the previous content from the
	// bottom edge.
	CoverFromBottom
	// CoverFromTop slides the child in from the top edge.
	CoverFromTop
	// CoverFromLeft slides the child in from the left edge.
	CoverFromLeft
	// CoverFromRight slides the child in from the right edge.
	CoverFromRight
	// CoverFromTopLeft slides the child in from the top-left corner.
	CoverFromTopLeft
	// CoverFromTopRight slides the child in from the top-right corner.
	CoverFromTopRight
	// CoverFromBottomLeft slides the child in from the bottom-left corner.
	CoverFromBottomLeft
	// CoverFromBottomRight slides the child in from the bottom-right corner.
	CoverFromBottomRight
	// CrossFade fades the child in while fading the previous content out.
	CrossFade
	// PushFromBottom slides the child in from the bottom while pushing the
	// previous content out the top.
	PushFromBottom
	// PushFromTop slides the child in from the top while pushing the
	// previous content out the bottom.
	PushFromTop
	// PushFromLeft slides the child in from the left while pushing the
	// previous content out the right.
	PushFromLeft
	// PushFromRight slides the child in from the right while pushing the
	// previous content out the left.
	PushFromRight
	// EmergeFromCenter grows the child from the center of the common frame.
	EmergeFromCenter
)

// DefaultDuration is the sentinel callers pass to request a kind's standard
// duration instead of an explicit one.
const DefaultDuration time.Duration = -1

// standardDuration is the shared default for every animated kind.
const standardDuration = 400 * time.Millisecond

var kindNames = [...]string{
	None:                 "none",
	CoverFromBottom:      "cover-from-bottom",
	CoverFromTop:         "cover-from-top",
	CoverFromLeft:        "cover-from-left",
	CoverFromRight:       "cover-from-right",
	CoverFromTopLeft:     "cover-from-top-left",
	CoverFromTopRight:    "cover-from-top-right",
	CoverFromBottomLeft:  "cover-from-bottom-left",
	CoverFromBottomRight: "cover-from-bottom-right",
	CrossFade:            "cross-fade",
	PushFromBottom:       "push-from-bottom",
	PushFromTop:          "push-from-top",
	PushFromLeft:         "push-from-left",
	PushFromRight:        "push-from-right",
	EmergeFromCenter:     "emerge-from-center",
}

// String returns the kind's stable kebab-case name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	return k >= 0 && int(k) < len(kindNames)
}

// StandardDuration returns the kind's default duration: zero for None,
// 400ms for every animated kind.
func (k Kind) StandardDuration() time.Duration {
	if k == None {
		return 0
	}
	return standardDuration
}

// Kinds returns all kinds in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range kindNames {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind resolves a kebab-case kind name. Unknown names return an error
// carrying the closest known name as a suggestion.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	best, bestDist := "", -1
	for _, name := range kindNames {
		d := levenshtein.ComputeDistance(s, name)
		if bestDist < 0 || d < bestDist {
			best, bestDist = name, d
		}
	}
	if bestDist >= 0 && bestDist <= 5 {
		return 0, fmt.Errorf("transition: unknown kind %q (did you mean %q?)", s, best)
	}
	return 0, fmt.Errorf("transition: unknown kind %q", s)
}

// ResolveDuration maps the DefaultDuration sentinel to the kind's standard
// duration and validates explicit values. Panics on a negative duration
// other than the sentinel or on an invalid kind.
func ResolveDuration(kind Kind, d time.Duration) time.Duration {
	if !kind.Valid() {
		panic(fmt.Sprintf("transition: invalid kind %d", int(kind)))
	}
	if d == DefaultDuration {
		return kind.StandardDuration()
	}
	if d < 0 {
		panic(fmt.Sprintf("transition: negative duration %v", d))
	}
	return d
}
