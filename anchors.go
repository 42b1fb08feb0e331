package scriptweaver

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// Characters dropped from slugs: everything that is not a letter,
	// digit, whitespace or hyphen.
	slugDropPattern = regexp.MustCompile(`[^\p{L}\p{N}\s-]+`)

	// Whitespace and hyphen runs collapse to a single hyphen.
	slugSeparatorPattern = regexp.MustCompile(`[\s-]+`)
)

// slugify derives a URL-fragment-safe identifier from a heading title.
// Unicode letters are kept so Japanese headings stay readable as fragments.
func slugify(title string) string {
	s := slugDropPattern.ReplaceAllString(title, "")
	s = slugSeparatorPattern.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	s = strings.ToLower(s)
	if s == "" {
		return "section"
	}
	return s
}

// anchorSet assigns collision-safe anchors within one document. Duplicate
// slugs get -2, -3, ... appended in order of first appearance. The set is
// scoped to a single conversion call and discarded with it.
type anchorSet struct {
	seen map[string]int
}

func newAnchorSet() *anchorSet {
	return &anchorSet{seen: make(map[string]int)}
}

// assign returns a unique anchor for the title. A suffixed anchor can still
// collide with a later literal slug (a heading titled "A 2" slugs to "a-2"),
// so every returned anchor is reserved in the set.
func (a *anchorSet) assign(title string) string {
	slug := slugify(title)
	n := a.seen[slug]
	a.seen[slug] = n + 1
	if n == 0 {
		return slug
	}
	for {
		candidate := slug + "-" + strconv.Itoa(n+1)
		if a.seen[candidate] == 0 {
			a.seen[candidate] = 1
			return candidate
		}
		n++
		a.seen[slug] = n + 1
	}
}
