package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/sinclairtarget/git-corp/internal/commitlog"
)

// All commits from one email address, collapsed into a single row.
type Contributor struct {
	Email       string
	Name        string // Name on the first commit seen
	Commits     int
	FirstCommit time.Time
	LastCommit  time.Time
}

func (a Contributor) Combine(b Contributor) Contributor {
	first := a.FirstCommit
	if first.IsZero() || (!b.FirstCommit.IsZero() && b.FirstCommit.Before(first)) {
		first = b.FirstCommit
	}

	last := a.LastCommit
	if b.LastCommit.After(last) {
		last = b.LastCommit
	}

	name := a.Name
	if name == "" {
		name = b.Name
	}

	email := a.Email
	if email == "" {
		email = b.Email
	}

	return Contributor{
		Email:       email,
		Name:        name,
		Commits:     a.Commits + b.Commits,
		FirstCommit: first,
		LastCommit:  last,
	}
}

// Collapses records by email, one contributor per unique address, sorted by
// email.
func Contributors(records []commitlog.Record) []Contributor {
	byEmail := map[string]Contributor{}

	for _, r := range records {
		commit := Contributor{
			Email:       r.Email,
			Name:        r.Name,
			Commits:     1,
			FirstCommit: r.Date,
			LastCommit:  r.Date,
		}

		byEmail[r.Email] = byEmail[r.Email].Combine(commit)
	}

	contributors := make([]Contributor, 0, len(byEmail))
	for _, c := range byEmail {
		contributors = append(contributors, c)
	}

	slices.SortFunc(contributors, func(a, b Contributor) int {
		return strings.Compare(a.Email, b.Email)
	})
	return contributors
}
