package content

import (
	"strings"
	"testing"

	"github.com/campusorbit/collegelist-backend/internal/types"
)

func strPtr(s string) *string     { return &s }
func intPtr(i int) *int           { return &i }
func f64Ptr(f float64) *float64   { return &f }

func bareCollege() *types.College {
	return &types.College{Name: "Acme Institute of Technology"}
}

func ranking(category string, year, rank int, agency string) *types.CollegeRanking {
	return &types.CollegeRanking{
		Category: strPtr(category),
		Year:     intPtr(year),
		Rank:     intPtr(rank),
		Agency:   strPtr(agency),
	}
}

func TestComposeIntroductionPredicate(t *testing.T) {
	cases := []struct {
		name       string
		mutate     func(b *FactBundle)
		want       bool
		paragraphs int
	}{
		{
			name:   "no_facts",
			mutate: func(b *FactBundle) {},
			want:   false,
		},
		{
			name: "founding_and_location",
			mutate: func(b *FactBundle) {
				b.College.EstablishedYear = intPtr(1960)
				b.College.City = strPtr("Pune")
				b.College.State = strPtr("Maharashtra")
			},
			want:       true,
			paragraphs: 1,
		},
		{
			name: "founding_without_city_is_not_enough",
			mutate: func(b *FactBundle) {
				b.College.EstablishedYear = intPtr(1960)
				b.College.State = strPtr("Maharashtra")
			},
			want: false,
		},
		{
			name: "campus_size_only",
			mutate: func(b *FactBundle) {
				b.College.CampusSizeAcres = f64Ptr(120)
			},
			want:       true,
			paragraphs: 1,
		},
		{
			name: "accreditation_and_stream",
			mutate: func(b *FactBundle) {
				b.College.ApprovedBy = strPtr("AICTE")
				b.College.Stream = strPtr("Engineering")
			},
			want:       true,
			paragraphs: 1,
		},
		{
			name: "accreditation_without_stream_is_not_enough",
			mutate: func(b *FactBundle) {
				b.College.ApprovedBy = strPtr("AICTE")
			},
			want: false,
		},
		{
			name: "ranking_only",
			mutate: func(b *FactBundle) {
				b.BestRanking = ranking("Engineering", 2023, 14, "NIRF")
			},
			want:       true,
			paragraphs: 1,
		},
		{
			name: "numeric_enrollment_only",
			mutate: func(b *FactBundle) {
				b.College.TotalStudents = strPtr("12,500")
			},
			want:       true,
			paragraphs: 1,
		},
		{
			name: "non_numeric_enrollment_is_not_enough",
			mutate: func(b *FactBundle) {
				b.College.TotalStudents = strPtr("around twelve thousand")
			},
			want: false,
		},
		{
			name: "location_and_ranking_get_separate_paragraphs",
			mutate: func(b *FactBundle) {
				b.College.EstablishedYear = intPtr(1960)
				b.College.City = strPtr("Pune")
				b.College.State = strPtr("Maharashtra")
				b.BestRanking = ranking("Overall", 2024, 7, "NIRF")
			},
			want:       true,
			paragraphs: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &FactBundle{College: bareCollege()}
			tc.mutate(b)
			s := ComposeIntroduction(b)
			if (s != nil) != tc.want {
				t.Fatalf("ComposeIntroduction included=%v, want %v", s != nil, tc.want)
			}
			if s == nil {
				return
			}
			if len(s.Blocks) != tc.paragraphs {
				t.Fatalf("got %d paragraphs, want %d", len(s.Blocks), tc.paragraphs)
			}
		})
	}
}

func TestComposeIntroductionClauseGating(t *testing.T) {
	b := &FactBundle{College: bareCollege()}
	b.College.EstablishedYear = intPtr(1960)
	b.College.City = strPtr("Pune")
	b.College.State = strPtr("Maharashtra")

	s := ComposeIntroduction(b)
	if s == nil {
		t.Fatal("section not emitted")
	}
	para, ok := s.Blocks[0].(Paragraph)
	if !ok {
		t.Fatalf("expected Paragraph, got %T", s.Blocks[0])
	}
	if !strings.Contains(para.Text, "Established in 1960") || !strings.Contains(para.Text, "Pune, Maharashtra") {
		t.Fatalf("location clause missing: %q", para.Text)
	}
	if strings.Contains(para.Text, "acres") || strings.Contains(para.Text, "approved by") {
		t.Fatalf("ungated clauses leaked in: %q", para.Text)
	}
}

func TestComposeKeyMetricsRowGating(t *testing.T) {
	if s := ComposeKeyMetrics(&FactBundle{College: bareCollege()}); s != nil {
		t.Fatal("a college with zero presentable facts must not get a highlights table")
	}

	b := &FactBundle{College: bareCollege()}
	b.College.EstablishedYear = intPtr(1960)
	b.College.City = strPtr("Pune")
	b.College.State = strPtr("Maharashtra")
	b.CourseCount = 1 // no streams, so the count row must stay hidden

	s := ComposeKeyMetrics(b)
	if s == nil {
		t.Fatal("section missing")
	}
	table, ok := s.Blocks[0].(Table)
	if !ok {
		t.Fatalf("expected Table, got %T", s.Blocks[0])
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2: %v", len(table.Rows), table.Rows)
	}
	if table.Rows[0][0] != "Established Year" || table.Rows[1][0] != "Location" {
		t.Fatalf("unexpected rows: %v", table.Rows)
	}
}

func TestComposeKeyMetricsPlacementRows(t *testing.T) {
	b := &FactBundle{College: bareCollege()}
	b.Placement = &types.CollegePlacement{
		Year:           intPtr(2024),
		AvgPackage:     f64Ptr(650000),
		HighestPackage: f64Ptr(4200000),
	}

	s := ComposeKeyMetrics(b)
	table := s.Blocks[0].(Table)
	labels := make([]string, 0, len(table.Rows))
	for _, row := range table.Rows {
		labels = append(labels, row[0])
	}
	want := []string{"Average Package", "Highest Package"}
	if len(labels) != len(want) {
		t.Fatalf("got rows %v, want %v", labels, want)
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Fatalf("got rows %v, want %v", labels, want)
		}
	}
	if table.Rows[1][1] != "₹4200000" {
		t.Fatalf("money should be glyph plus bare number, got %q", table.Rows[1][1])
	}
}

func TestComposeCoursesAndFees(t *testing.T) {
	b := &FactBundle{College: bareCollege()}
	if s := ComposeCoursesAndFees(b); s != nil {
		t.Fatal("section must be skipped without catalog rows")
	}

	b.UGCourses = []*types.CollegeCourse{
		{Name: strPtr("B.Tech"), Duration: f64Ptr(4), Fee: f64Ptr(120000)},
	}
	b.PGCourses = []*types.CollegeCourse{
		{Name: strPtr("M.Tech"), Duration: f64Ptr(0), Fee: f64Ptr(90000)},
	}

	s := ComposeCoursesAndFees(b)
	if s == nil {
		t.Fatal("section missing")
	}
	if len(s.Blocks) != 4 {
		t.Fatalf("want two subheadings and two tables, got %d blocks", len(s.Blocks))
	}

	ug := s.Blocks[1].(Table)
	if ug.Rows[0][3] != "₹30000" {
		t.Fatalf("fee per year = %q, want ₹30000", ug.Rows[0][3])
	}
	if ug.Rows[0][4] != "10+2" {
		t.Fatalf("ug eligibility = %q, want 10+2", ug.Rows[0][4])
	}

	pg := s.Blocks[3].(Table)
	if pg.Rows[0][3] != "-" {
		t.Fatalf("zero duration must render the literal fallback, got %q", pg.Rows[0][3])
	}
	if pg.Rows[0][4] != "Graduation" {
		t.Fatalf("pg eligibility = %q, want Graduation", pg.Rows[0][4])
	}
}

func TestFeePerYear(t *testing.T) {
	if got := feePerYear(90000, 3); got != "₹30000" {
		t.Fatalf("feePerYear(90000, 3) = %q, want ₹30000", got)
	}
	if got := feePerYear(90000, 0); got != "-" {
		t.Fatalf("feePerYear(90000, 0) = %q, want -", got)
	}
}

func TestComposePlacementsPredicate(t *testing.T) {
	b := &FactBundle{College: bareCollege()}
	if s := ComposePlacements(b); s != nil {
		t.Fatal("no placement record, section must be skipped")
	}

	b.Placement = &types.CollegePlacement{PlacementRate: f64Ptr(92.5)}
	if s := ComposePlacements(b); s != nil {
		t.Fatal("missing year, section must be skipped")
	}

	b.Placement.Year = intPtr(2024)
	b.Placement.PlacementRate = nil
	if s := ComposePlacements(b); s != nil {
		t.Fatal("year alone is not enough")
	}

	b.Placement.TopRecruiters = strPtr("TCS, Infosys")
	s := ComposePlacements(b)
	if s == nil {
		t.Fatal("year plus recruiters must emit the section")
	}
	if !strings.Contains(s.Title, "2024") {
		t.Fatalf("heading must embed the year, got %q", s.Title)
	}
	para := s.Blocks[0].(Paragraph)
	if !strings.Contains(para.Text, "TCS, Infosys") {
		t.Fatalf("recruiters clause missing: %q", para.Text)
	}
	if strings.Contains(para.Text, "placement rate") {
		t.Fatalf("rate clause must stay gated: %q", para.Text)
	}
}

func TestComposeRankings(t *testing.T) {
	b := &FactBundle{College: bareCollege()}
	if s := ComposeRankings(b); s != nil {
		t.Fatal("no rankings, section must be skipped")
	}

	b.Rankings = []*types.CollegeRanking{
		ranking("Engineering", 2024, 12, "NIRF"),
		ranking("Engineering", 2023, 9, "NIRF"),
	}
	s := ComposeRankings(b)
	if s == nil {
		t.Fatal("section missing")
	}
	if !strings.Contains(s.Title, "2024") {
		t.Fatalf("heading must embed the newest year, got %q", s.Title)
	}
	table := s.Blocks[0].(Table)
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
}

func TestComposeFAQ(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(b *FactBundle)
		entries int
	}{
		{
			name:    "no_qualifying_facts",
			mutate:  func(b *FactBundle) {},
			entries: 0,
		},
		{
			name: "highest_package_only",
			mutate: func(b *FactBundle) {
				b.Placement = &types.CollegePlacement{HighestPackage: f64Ptr(4200000)}
			},
			entries: 1,
		},
		{
			name: "courses_without_streams",
			mutate: func(b *FactBundle) {
				b.CourseCount = 3
			},
			entries: 0,
		},
		{
			name: "courses_and_streams",
			mutate: func(b *FactBundle) {
				b.CourseCount = 3
				b.Streams = []string{"Engineering", "Management"}
			},
			entries: 1,
		},
		{
			name: "both_facts",
			mutate: func(b *FactBundle) {
				b.Placement = &types.CollegePlacement{HighestPackage: f64Ptr(4200000)}
				b.CourseCount = 3
				b.Streams = []string{"Engineering"}
			},
			entries: 2,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := &FactBundle{College: bareCollege()}
			tc.mutate(b)
			s := ComposeFAQ(b)
			if tc.entries == 0 {
				if s != nil {
					t.Fatal("section must be skipped")
				}
				return
			}
			if s == nil {
				t.Fatal("section missing")
			}
			faq := s.Blocks[0].(FAQ)
			if len(faq.Entries) != tc.entries {
				t.Fatalf("got %d entries, want %d", len(faq.Entries), tc.entries)
			}
		})
	}
}

func TestFormatMoneyHasNoSeparators(t *testing.T) {
	if got := formatMoney(1250000); got != "₹1250000" {
		t.Fatalf("formatMoney(1250000) = %q", got)
	}
	if got := formatMoney(92.5); got != "₹92.5" {
		t.Fatalf("formatMoney(92.5) = %q", got)
	}
}
