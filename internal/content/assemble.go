package content

import "fmt"

// Section order is fixed; skipped sections do not consume an anchor, so the
// emitted anchors are always toc-1..toc-n with no gaps.
var composers = []func(*FactBundle) *Section{
	ComposeIntroduction,
	ComposeKeyMetrics,
	ComposeCoursesAndFees,
	ComposePlacements,
	ComposeRankings,
	ComposeFAQ,
}

// Assemble runs every composer against the bundle in order and anchors the
// survivors. An empty result means no section had enough facts.
func Assemble(b *FactBundle) []Section {
	var sections []Section
	for _, compose := range composers {
		s := compose(b)
		if s == nil {
			continue
		}
		s.Anchor = fmt.Sprintf("toc-%d", len(sections)+1)
		sections = append(sections, *s)
	}
	return sections
}
