package content

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/campusorbit/collegelist-backend/internal/types"
)

// Each Compose* function evaluates its inclusion predicate against the fact
// bundle and returns nil when the section should not appear. Every clause
// inside a section is gated on its own source value; absent values drop the
// clause or row, never a placeholder.

// ComposeIntroduction emits up to two paragraphs: one for founding,
// location, campus and accreditation, one for ranking and enrollment.
func ComposeIntroduction(b *FactBundle) *Section {
	if b == nil || b.College == nil {
		return nil
	}
	c := b.College

	var first []string
	if c.EstablishedYear != nil && b.hasLocation() {
		first = append(first, fmt.Sprintf("Established in %d, %s is located in %s, %s.",
			*c.EstablishedYear, c.Name, *c.City, *c.State))
	}
	if c.CampusSizeAcres != nil {
		first = append(first, fmt.Sprintf("The campus spreads across %s acres.",
			formatNumber(*c.CampusSizeAcres)))
	}
	if b.hasAccreditation() {
		first = append(first, fmt.Sprintf("It is approved by %s and primarily offers programmes in the %s stream.",
			*c.ApprovedBy, *c.Stream))
	}

	var second []string
	if r := b.BestRanking; r != nil && r.Rank != nil && r.Year != nil && r.Agency != nil && r.Category != nil {
		second = append(second, fmt.Sprintf("%s was ranked %d by %s in the %s category in %d.",
			c.Name, *r.Rank, *r.Agency, *r.Category, *r.Year))
	}
	if n, ok := b.enrollmentCount(); ok {
		second = append(second, fmt.Sprintf("More than %d students are currently enrolled at the institute.", n))
	}

	if len(first) == 0 && len(second) == 0 {
		return nil
	}
	var blocks []Block
	if len(first) > 0 {
		blocks = append(blocks, Paragraph{Text: strings.Join(first, " ")})
	}
	if len(second) > 0 {
		blocks = append(blocks, Paragraph{Text: strings.Join(second, " ")})
	}
	return &Section{Title: fmt.Sprintf("About %s", c.Name), Blocks: blocks}
}

// ComposeKeyMetrics builds the highlights table. A row is appended only when
// its source value is present; a college with no presentable fact at all
// yields no section rather than an empty table.
func ComposeKeyMetrics(b *FactBundle) *Section {
	if b == nil || b.College == nil {
		return nil
	}
	c := b.College

	var rows [][]string
	if c.EstablishedYear != nil {
		rows = append(rows, []string{"Established Year", strconv.Itoa(*c.EstablishedYear)})
	}
	if b.hasLocation() {
		rows = append(rows, []string{"Location", fmt.Sprintf("%s, %s", *c.City, *c.State)})
	}
	// Course count is only shown alongside its stream list.
	if b.CourseCount > 0 && len(b.Streams) > 0 {
		rows = append(rows, []string{"Total Courses", strconv.FormatInt(b.CourseCount, 10)})
	}
	if len(b.Streams) > 0 {
		rows = append(rows, []string{"Streams", strings.Join(b.Streams, ", ")})
	}
	if c.CampusSizeAcres != nil {
		rows = append(rows, []string{"Campus Size", formatNumber(*c.CampusSizeAcres) + " acres"})
	}
	if p := b.Placement; p != nil {
		if p.PlacementRate != nil {
			rows = append(rows, []string{"Placement Rate", formatNumber(*p.PlacementRate) + "%"})
		}
		if p.AvgPackage != nil {
			rows = append(rows, []string{"Average Package", formatMoney(*p.AvgPackage)})
		}
		if p.HighestPackage != nil {
			rows = append(rows, []string{"Highest Package", formatMoney(*p.HighestPackage)})
		}
		if p.TopRecruiters != nil && strings.TrimSpace(*p.TopRecruiters) != "" {
			rows = append(rows, []string{"Top Recruiters", *p.TopRecruiters})
		}
	}
	if c.TotalStudents != nil && strings.TrimSpace(*c.TotalStudents) != "" {
		rows = append(rows, []string{"Total Students", strings.TrimSpace(*c.TotalStudents)})
	}
	if len(rows) == 0 {
		return nil
	}

	return &Section{
		Title: fmt.Sprintf("%s Key Highlights", c.Name),
		Blocks: []Block{Table{
			Header: []string{"Particulars", "Details"},
			Rows:   rows,
		}},
	}
}

// ComposeCoursesAndFees renders up to one sub-table per level. Fee per year
// is total fee divided by duration; a zero or missing duration renders the
// literal "-" instead of propagating a non-finite value.
func ComposeCoursesAndFees(b *FactBundle) *Section {
	if b == nil || b.College == nil {
		return nil
	}
	if len(b.UGCourses) == 0 && len(b.PGCourses) == 0 {
		return nil
	}

	levels := []struct {
		label       string
		eligibility string
		courses     []*types.CollegeCourse
	}{
		{label: "Undergraduate Courses", eligibility: "10+2", courses: b.UGCourses},
		{label: "Postgraduate Courses", eligibility: "Graduation", courses: b.PGCourses},
	}

	var blocks []Block
	for _, lvl := range levels {
		if len(lvl.courses) == 0 {
			continue
		}
		rows := make([][]string, 0, len(lvl.courses))
		for _, course := range lvl.courses {
			if course.Name == nil || course.Duration == nil || course.Fee == nil {
				continue
			}
			rows = append(rows, []string{
				*course.Name,
				formatNumber(*course.Duration) + " years",
				formatMoney(*course.Fee),
				feePerYear(*course.Fee, *course.Duration),
				lvl.eligibility,
			})
		}
		blocks = append(blocks,
			SubHeading{Text: lvl.label},
			Table{
				Header: []string{"Course", "Duration", "Total Fee", "Fee Per Year", "Eligibility"},
				Rows:   rows,
			},
		)
	}
	return &Section{Title: fmt.Sprintf("%s Courses and Fees", b.College.Name), Blocks: blocks}
}

// ComposePlacements needs a placement year plus at least one reportable
// figure; the heading embeds the year.
func ComposePlacements(b *FactBundle) *Section {
	if b == nil || b.College == nil || b.Placement == nil {
		return nil
	}
	p := b.Placement
	if p.Year == nil {
		return nil
	}
	hasRecruiters := p.TopRecruiters != nil && strings.TrimSpace(*p.TopRecruiters) != ""
	if p.PlacementRate == nil && p.HighestPackage == nil && p.AvgPackage == nil && !hasRecruiters {
		return nil
	}

	var clauses []string
	if p.PlacementRate != nil {
		clauses = append(clauses, fmt.Sprintf("In %d, %s recorded a placement rate of %s%%.",
			*p.Year, b.College.Name, formatNumber(*p.PlacementRate)))
	}
	if p.HighestPackage != nil {
		clauses = append(clauses, fmt.Sprintf("The highest package offered stood at %s.", formatMoney(*p.HighestPackage)))
	}
	if p.AvgPackage != nil {
		clauses = append(clauses, fmt.Sprintf("The average package was %s.", formatMoney(*p.AvgPackage)))
	}
	if hasRecruiters {
		clauses = append(clauses, fmt.Sprintf("Top recruiters included %s.", strings.TrimSpace(*p.TopRecruiters)))
	}

	return &Section{
		Title:  fmt.Sprintf("%s Placements %d", b.College.Name, *p.Year),
		Blocks: []Block{Paragraph{Text: strings.Join(clauses, " ")}},
	}
}

// ComposeRankings tabulates the recent rankings; the heading embeds the
// newest year, which the repository ordering puts first.
func ComposeRankings(b *FactBundle) *Section {
	if b == nil || b.College == nil || len(b.Rankings) == 0 {
		return nil
	}

	rows := make([][]string, 0, len(b.Rankings))
	for _, r := range b.Rankings {
		if r.Agency == nil || r.Category == nil || r.Rank == nil || r.Year == nil {
			continue
		}
		rows = append(rows, []string{*r.Agency, *r.Category, strconv.Itoa(*r.Rank), strconv.Itoa(*r.Year)})
	}
	if len(rows) == 0 {
		return nil
	}

	return &Section{
		Title: fmt.Sprintf("%s Rankings %d", b.College.Name, *b.Rankings[0].Year),
		Blocks: []Block{Table{
			Header: []string{"Agency", "Category", "Rank", "Year"},
			Rows:   rows,
		}},
	}
}

// ComposeFAQ emits one Q/A pair per qualifying fact.
func ComposeFAQ(b *FactBundle) *Section {
	if b == nil || b.College == nil {
		return nil
	}
	name := b.College.Name

	var entries []FaqEntry
	if b.Placement != nil && b.Placement.HighestPackage != nil {
		entries = append(entries, FaqEntry{
			Question: fmt.Sprintf("What is the highest package offered at %s?", name),
			Answer:   fmt.Sprintf("The highest package offered at %s is %s.", name, formatMoney(*b.Placement.HighestPackage)),
		})
	}
	if b.CourseCount > 0 && len(b.Streams) > 0 {
		entries = append(entries, FaqEntry{
			Question: fmt.Sprintf("How many courses does %s offer?", name),
			Answer: fmt.Sprintf("%s offers %d courses across the %s streams.",
				name, b.CourseCount, strings.Join(b.Streams, ", ")),
		})
	}
	if len(entries) == 0 {
		return nil
	}

	return &Section{
		Title:  fmt.Sprintf("Frequently Asked Questions about %s", name),
		Blocks: []Block{FAQ{Entries: entries}},
	}
}

// feePerYear guards the division: duration comes from operator data and can
// be zero.
func feePerYear(fee, duration float64) string {
	if duration == 0 {
		return "-"
	}
	v := fee / duration
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return formatMoney(v)
}

// formatMoney renders a currency glyph plus the bare number, no separators.
func formatMoney(v float64) string {
	return "₹" + formatNumber(v)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
