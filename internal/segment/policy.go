package segment

import (
	"fmt"
	"sort"
	"strings"
)

// Policy restricts which short words a segmentation may use. A word whose
// length has an allow-list in Restrict must appear in it; words shorter than
// MinWordLen are never used.
type Policy struct {
	Name       string
	MinWordLen int
	Restrict   map[int]map[string]struct{}
}

// Policy names accepted by ParsePolicy.
const (
	PolicyDefault = "default"
	PolicyNone    = "none"
	PolicyStrict2 = "strict2"
	PolicyStrict3 = "strict3"
)

var oneLetter = []string{"A", "I"}

var twoLetter = []string{
	"AN", "AS", "AT", "BE", "BY", "DO", "GO", "HE", "HI", "IF", "IN", "IS",
	"IT", "ME", "MY", "NO", "OF", "ON", "OR", "SO", "TO", "UP", "US", "WE",
}

var threeLetter = []string{
	"ALL", "AND", "ANY", "ARE", "AXE", "BEE", "BOW", "BOX", "BUS", "BUT",
	"CAN", "CAR", "CAT", "COW", "CUT", "DAY", "DOG", "END", "EVE", "EYE",
	"FAR", "FAX", "FEW", "FLY", "FOG", "FOR", "FOX", "GET", "GOT", "GUN",
	"HAD", "HAS", "HAT", "HEN", "HER", "HIM", "HIS", "HOT", "HOW", "ICE",
	"ITS", "JET", "KEY", "LAW", "LEG", "LET", "LIE", "LIP", "MAP", "MAY",
	"MIX", "MOM", "MUD", "NEW", "NOT", "NOW", "NUT", "OAK", "OIL", "OLD",
	"ONE", "OUR", "OUT", "PAN", "PEN", "PIG", "PIN", "POP", "POT", "PUT",
	"RED", "RIP", "RUN", "SAD", "SAY", "SEA", "SEE", "SET", "SHE", "SIT",
	"SKI", "SKY", "SUN", "TAX", "TEA", "TEN", "THE", "TIE", "TIN", "TOO",
	"TOP", "TWO", "USE", "VAN", "WAX", "WAY", "WEB", "WET", "WHO", "WIN",
	"YOU", "ZIP",
}

// DefaultPolicy allows only "A" and "I" as single-letter words.
func DefaultPolicy() Policy {
	return Policy{
		Name:       PolicyDefault,
		MinWordLen: 1,
		Restrict:   map[int]map[string]struct{}{1: toSet(oneLetter)},
	}
}

// ParsePolicy returns the named preset.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PolicyDefault:
		return DefaultPolicy(), nil
	case PolicyNone:
		return Policy{Name: PolicyNone, MinWordLen: 1}, nil
	case PolicyStrict2:
		p := DefaultPolicy()
		p.Name = PolicyStrict2
		p.Restrict[2] = toSet(twoLetter)
		return p, nil
	case PolicyStrict3:
		p := DefaultPolicy()
		p.Name = PolicyStrict3
		p.Restrict[2] = toSet(twoLetter)
		p.Restrict[3] = toSet(threeLetter)
		return p, nil
	default:
		return Policy{}, fmt.Errorf("unknown policy %q (available: %s)", name, strings.Join(PolicyNames(), ", "))
	}
}

// PolicyNames lists the presets.
func PolicyNames() []string {
	return []string{PolicyDefault, PolicyNone, PolicyStrict2, PolicyStrict3}
}

// WithShortWords replaces the allow-list for one word length.
func (p Policy) WithShortWords(length int, words []string) Policy {
	restrict := make(map[int]map[string]struct{}, len(p.Restrict)+1)
	for k, v := range p.Restrict {
		restrict[k] = v
	}
	restrict[length] = toSet(words)
	p.Restrict = restrict
	return p
}

// Accepts reports whether the policy permits word, before any dictionary
// check.
func (p Policy) Accepts(word string) bool {
	if len(word) < p.MinWordLen {
		return false
	}
	allowed, ok := p.Restrict[len(word)]
	if !ok {
		return true
	}
	_, ok = allowed[word]
	return ok
}

// ShortWords returns the allow-list for a length, sorted.
func (p Policy) ShortWords(length int) []string {
	out := make([]string, 0, len(p.Restrict[length]))
	for w := range p.Restrict[length] {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func toSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(w)] = struct{}{}
	}
	return set
}
