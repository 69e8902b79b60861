package model

import (
	"regexp"
	"strings"
)

// TrailerKind identifies the well-known trailer forms. Keys that don't match
// any of them are kept verbatim as TrailerOther.
type TrailerKind int

const (
	TrailerOther TrailerKind = iota
	TrailerCoAuthoredBy
	TrailerReviewedBy
	TrailerSignedOffBy
)

func (k TrailerKind) String() string {
	switch k {
	case TrailerCoAuthoredBy:
		return "Co-authored-by"
	case TrailerReviewedBy:
		return "Reviewed-by"
	case TrailerSignedOffBy:
		return "Signed-off-by"
	default:
		return "other"
	}
}

// Trailer is one "Key: value" metadata line from the end of a commit message.
// For the well-known kinds, Name and Email are split out of the value; for
// TrailerOther the raw Key and Value are kept as-is.
type Trailer struct {
	Kind  TrailerKind `json:"kind"`
	Key   string      `json:"key"`
	Name  string      `json:"name,omitempty"`
	Email string      `json:"email,omitempty"`
	Value string      `json:"value,omitempty"`
}

var personValueRE = regexp.MustCompile(`^(.*?)\s*[<(]([^<>()\s]+@[^<>()\s]+)[>)]$`)
var bareEmailRE = regexp.MustCompile(`^\S+@\S+$`)

// NewTrailer normalizes a raw key/value pair into a Trailer. The key is
// matched case-insensitively against the well-known forms; values shaped like
// "Name <email>" or "Name (email)" split into name and email, and a bare
// email becomes both.
func NewTrailer(key, value string) Trailer {
	var kind TrailerKind
	switch strings.ToLower(key) {
	case "co-authored-by":
		kind = TrailerCoAuthoredBy
	case "reviewed-by":
		kind = TrailerReviewedBy
	case "signed-off-by":
		kind = TrailerSignedOffBy
	default:
		return Trailer{Kind: TrailerOther, Key: key, Value: value}
	}

	t := Trailer{Kind: kind, Key: key}
	if m := personValueRE.FindStringSubmatch(value); m != nil {
		t.Name = m[1]
		t.Email = m[2]
	} else if bareEmailRE.MatchString(value) {
		t.Name = value
		t.Email = value
	} else {
		t.Name = value
	}
	return t
}
