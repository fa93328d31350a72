// Package places finds place names that share a separator-free Morse
// encoding.
package places

import (
	"sort"

	"github.com/verte-zerg/morsel/internal/morse"
	"github.com/verte-zerg/morsel/internal/textnorm"
)

// Collision groups distinct names that encode to the same code.
type Collision struct {
	Code  string
	Names []string
}

// FindCollisions encodes every name and reports codes shared by two or more
// distinct names. Names are compared after normalization, so "Georgia" the
// country and "Georgia" the state count once. The first spelling seen is the
// one reported. Names that cannot be encoded are skipped.
func FindCollisions(names []string, a *morse.Alphabet) []Collision {
	byCode := map[string][]string{}
	seen := map[string]struct{}{}
	for _, name := range names {
		key := textnorm.Letters(name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		code, err := a.EncodeText(key)
		if err != nil {
			continue
		}
		seen[key] = struct{}{}
		byCode[code] = append(byCode[code], name)
	}

	var out []Collision
	for code, group := range byCode {
		if len(group) < 2 {
			continue
		}
		sort.Strings(group)
		out = append(out, Collision{Code: code, Names: group})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Code < out[j].Code
	})
	return out
}
