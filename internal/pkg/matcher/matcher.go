// Package matcher resolves free-text employee names from imported sheets to
// employee IDs. It never guesses: a name resolves only through an exact
// normalized match or a single close spelling.
package matcher

import (
	"strings"

	"github.com/fiam/gounidecode/unidecode"
	"github.com/schollz/closestmatch"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// DefaultMaxDistance is the largest edit distance accepted for a fuzzy match.
const DefaultMaxDistance = 2

const suggestionLimit = 5

type Method string

const (
	MethodExact Method = "exact"
	MethodFuzzy Method = "fuzzy"
)

type Reason string

const (
	ReasonNotFound  Reason = "not_found"
	ReasonAmbiguous Reason = "ambiguous"
)

type Candidate struct {
	ID   string
	Name string
}

type Match struct {
	ID       string
	Method   Method
	Distance int
}

type Unresolved struct {
	Input       string
	Reason      Reason
	Suggestions []string
}

type Matcher struct {
	byKey       map[string][]Candidate
	keys        []string
	cm          *closestmatch.ClosestMatch
	maxDistance int
}

func New(candidates []Candidate, maxDistance int) *Matcher {
	m := &Matcher{
		byKey:       make(map[string][]Candidate),
		maxDistance: maxDistance,
	}
	for _, c := range candidates {
		key := Normalize(c.Name)
		if key == "" {
			continue
		}
		if _, seen := m.byKey[key]; !seen {
			m.keys = append(m.keys, key)
		}
		m.byKey[key] = append(m.byKey[key], c)
	}
	if len(m.keys) > 0 {
		m.cm = closestmatch.New(m.keys, []int{2, 3})
	}
	return m
}

// Normalize transliterates to ASCII, lowercases, drops punctuation and
// collapses whitespace, so "Ma. Niño  Peña" and "ma nino pena" agree.
func Normalize(s string) string {
	s = strings.ToLower(unidecode.Unidecode(s))
	s = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return ' '
		}
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

// Resolve returns the matched employee, or the reason the input stays unresolved.
func (m *Matcher) Resolve(input string) (Match, *Unresolved) {
	key := Normalize(input)
	if key == "" || m.cm == nil {
		return Match{}, &Unresolved{Input: input, Reason: ReasonNotFound}
	}

	if exact := m.byKey[key]; len(exact) > 0 {
		if len(exact) > 1 {
			return Match{}, &Unresolved{Input: input, Reason: ReasonAmbiguous, Suggestions: names(exact)}
		}
		return Match{ID: exact[0].ID, Method: MethodExact}, nil
	}

	best := -1
	var bestKeys []string
	var suggestions []string
	for _, k := range m.cm.ClosestN(key, suggestionLimit) {
		if k == "" {
			continue
		}
		suggestions = append(suggestions, m.byKey[k][0].Name)
		dist := levenshtein.DistanceForStrings([]rune(key), []rune(k), levenshtein.DefaultOptions)
		if dist > m.maxDistance {
			continue
		}
		switch {
		case best == -1 || dist < best:
			best, bestKeys = dist, []string{k}
		case dist == best:
			bestKeys = append(bestKeys, k)
		}
	}

	if len(bestKeys) == 1 && len(m.byKey[bestKeys[0]]) == 1 {
		return Match{ID: m.byKey[bestKeys[0]][0].ID, Method: MethodFuzzy, Distance: best}, nil
	}
	if len(bestKeys) > 0 {
		var tied []Candidate
		for _, k := range bestKeys {
			tied = append(tied, m.byKey[k]...)
		}
		return Match{}, &Unresolved{Input: input, Reason: ReasonAmbiguous, Suggestions: names(tied)}
	}
	return Match{}, &Unresolved{Input: input, Reason: ReasonNotFound, Suggestions: suggestions}
}

func names(cs []Candidate) []string {
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = c.Name
	}
	return out
}
