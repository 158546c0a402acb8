// Package owner decides whether "the current user" is one of the
// participants of a split, so the UI can offer a one-click "log my share".
//
// The detection is a heuristic over free text. It can be wrong in both
// directions, which is why it only ever produces proposals; posting one is a
// separate, explicit step.
package owner

import (
	"errors"
	"regexp"
	"strings"
)

// ErrAmbiguousOwner means the current user could not be identified. Callers
// treat it as a normal outcome and simply omit the "log my share" action.
var ErrAmbiguousOwner = errors.New("could not identify the current user among the participants")

// Method says how a match was made.
type Method string

const (
	MethodIdentity  Method = "identity"
	MethodAlias     Method = "alias"
	MethodFirstSeen Method = "first_seen"
)

// Match is the participant believed to be the current user.
type Match struct {
	Name   string `json:"name"`
	Method Method `json:"method"`
}

var firstPerson = regexp.MustCompile(`\b(i|me|my|myself)\b`)

// selfAliases are participant names that stand for the narrator. "user" is
// what the expense parser normalizes first-person mentions to.
var selfAliases = map[string]bool{
	"me":     true,
	"i":      true,
	"myself": true,
	"owner":  true,
	"self":   true,
	"user":   true,
}

// Detect looks for first-person markers in the description and, if any are
// found, picks the participant named by a self alias or else the first
// participant (the narrator is conventionally listed first).
func Detect(description string, members []string) (Match, error) {
	if !firstPerson.MatchString(strings.ToLower(description)) {
		return Match{}, ErrAmbiguousOwner
	}
	if len(members) == 0 {
		return Match{}, ErrAmbiguousOwner
	}
	for _, m := range members {
		if selfAliases[strings.ToLower(strings.TrimSpace(m))] {
			return Match{Name: m, Method: MethodAlias}, nil
		}
	}
	return Match{Name: members[0], Method: MethodFirstSeen}, nil
}

// DetectWithIdentity prefers an identity the user selected explicitly. When
// it names a participant (case-insensitively) it wins over the text
// heuristic; otherwise Detect is used.
func DetectWithIdentity(identity, description string, members []string) (Match, error) {
	if want := strings.ToLower(strings.TrimSpace(identity)); want != "" {
		for _, m := range members {
			if strings.ToLower(strings.TrimSpace(m)) == want {
				return Match{Name: m, Method: MethodIdentity}, nil
			}
		}
	}
	return Detect(description, members)
}
