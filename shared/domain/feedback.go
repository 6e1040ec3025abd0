package domain

import "slices"

type Slug = string

// Domains is a list of referrer values allowed to embed a board.
// Entries are compared to the Referer header verbatim, e.g. "https://cdpn.io/".
type Domains []string

const MaxFeedbackLength = 225

const (
	MinRating = 1
	MaxRating = 5
)

type Board struct {
	Id             int          `json:"id" yaml:"id"`
	Slug           Slug         `json:"slug" yaml:"slug"`
	AllowedDomains Domains      `json:"allowed_domains" yaml:"allowed_domains"`
	Submissions    []Submission `json:"submissions" yaml:"submissions"`
}

type Submission struct {
	Id       int    `json:"id" yaml:"id"`
	Rating   int    `json:"rating" yaml:"rating"`
	Feedback string `json:"feedback" yaml:"feedback"`
}

// to iterate thru layers: service -> storage
// Id is assigned by storage
type SubmissionDraft struct {
	Rating   int
	Feedback string
}

// Allows reports whether referer exactly matches one of the allowed domains.
func (b *Board) Allows(referer string) bool {
	return slices.Contains(b.AllowedDomains, referer)
}

// Clone returns a deep copy so callers can't mutate storage internals.
func (b Board) Clone() Board {
	b.AllowedDomains = slices.Clone(b.AllowedDomains)
	b.Submissions = slices.Clone(b.Submissions)
	if b.AllowedDomains == nil {
		b.AllowedDomains = Domains{}
	}
	if b.Submissions == nil {
		b.Submissions = []Submission{}
	}
	return b
}

// NextSubmissionId is the id a newly appended submission receives.
func (b *Board) NextSubmissionId() int {
	return len(b.Submissions) + 1
}
