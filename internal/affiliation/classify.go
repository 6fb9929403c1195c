// Decides whether a commit author is affiliated with a company based on
// their email address.
package affiliation

import (
	"fmt"
	"strings"
)

// How patterns are compared against an email address.
type MatchMode int

const (
	// Pattern appears anywhere in the address, with matching case.
	SubstringMatch MatchMode = iota
	// Pattern is the address's domain or a parent of it, the whole address, or
	// the author's handle. Case is ignored.
	DomainMatch
)

func (m MatchMode) String() string {
	switch m {
	case SubstringMatch:
		return "substring"
	case DomainMatch:
		return "domain"
	default:
		panic("unrecognized match mode in switch")
	}
}

func ParseMatchMode(s string) (MatchMode, error) {
	switch s {
	case "substring":
		return SubstringMatch, nil
	case "domain":
		return DomainMatch, nil
	default:
		return 0, fmt.Errorf(
			"invalid match mode \"%s\" (expected substring or domain)",
			s,
		)
	}
}

// The outcome of classifying one email address.
type Match struct {
	OK      bool
	Pattern string // First pattern that matched
	// Matched only as a substring. The pattern is not the domain of the
	// address, so this could be a false positive.
	Loose bool
}

type pattern struct {
	text   string // As given, for substring matching
	folded string // Lowercased, for anchored matching
}

// Substring matching is case-sensitive. Anchored matching ignores case.
type Classifier struct {
	patterns []pattern
	mode     MatchMode
	flagged  map[string]bool
}

func NewClassifier(patterns []string, mode MatchMode) *Classifier {
	seen := map[string]bool{}
	normalized := []pattern{}

	for _, text := range patterns {
		text = strings.TrimSpace(text)
		p := pattern{text: text, folded: strings.ToLower(text)}

		key := p.text
		if mode == DomainMatch {
			key = p.folded
		}
		if key == "" || seen[key] {
			continue
		}

		seen[key] = true
		normalized = append(normalized, p)
	}

	return &Classifier{
		patterns: normalized,
		mode:     mode,
		flagged:  map[string]bool{},
	}
}

func (c *Classifier) Mode() MatchMode {
	return c.mode
}

func (c *Classifier) Match(email string) Match {
	email = strings.TrimSpace(email)
	folded := strings.ToLower(email)

	if c.mode == DomainMatch {
		for _, p := range c.patterns {
			if matchesAnchored(folded, p.folded) {
				return Match{OK: true, Pattern: p.text}
			}
		}

		return Match{}
	}

	// Prefer a pattern that is also the domain over one that is only a
	// substring of the address.
	for _, p := range c.patterns {
		if strings.Contains(email, p.text) && matchesAnchored(folded, p.folded) {
			return Match{OK: true, Pattern: p.text}
		}
	}

	for _, p := range c.patterns {
		if strings.Contains(email, p.text) {
			if !c.flagged[email] {
				logger().Warn(
					"loose affiliation match",
					"email",
					email,
					"pattern",
					p.text,
				)
				c.flagged[email] = true
			}

			return Match{OK: true, Pattern: p.text, Loose: true}
		}
	}

	return Match{}
}

func (c *Classifier) IsCorporate(email string) bool {
	return c.Match(email).OK
}

// Splits an address into its local part and domain. Addresses without an "@"
// are treated as all local part.
func splitEmail(email string) (local string, domain string) {
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return email, ""
	}

	return email[:i], email[i+1:]
}

func matchesAnchored(email string, pattern string) bool {
	if strings.Contains(pattern, "@") {
		return email == pattern
	}

	local, domain := splitEmail(email)

	if domain != "" {
		if domain == pattern || strings.HasSuffix(domain, "."+pattern) {
			return true
		}
	}

	// GitHub no-reply addresses look like 1234+handle@users.noreply.github.com
	return local == pattern || strings.HasSuffix(local, "+"+pattern)
}
