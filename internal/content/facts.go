package content

import (
	"strconv"
	"strings"

	"github.com/campusorbit/collegelist-backend/internal/types"
)

// FactBundle is everything the composers may read for one college. Missing
// facts are nil/empty and simply disable the clauses that depend on them.
type FactBundle struct {
	College     *types.College
	BestRanking *types.CollegeRanking
	Rankings    []*types.CollegeRanking
	Placement   *types.CollegePlacement
	UGCourses   []*types.CollegeCourse
	PGCourses   []*types.CollegeCourse
	CourseCount int64
	Streams     []string
}

// enrollmentCount parses the free-text total_students column. The column is
// operator-entered, so anything non-numeric disables enrollment clauses.
func (b *FactBundle) enrollmentCount() (int, bool) {
	if b.College == nil || b.College.TotalStudents == nil {
		return 0, false
	}
	raw := strings.ReplaceAll(strings.TrimSpace(*b.College.TotalStudents), ",", "")
	if raw == "" {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func (b *FactBundle) hasLocation() bool {
	return b.College != nil &&
		b.College.City != nil && strings.TrimSpace(*b.College.City) != "" &&
		b.College.State != nil && strings.TrimSpace(*b.College.State) != ""
}

func (b *FactBundle) hasAccreditation() bool {
	return b.College != nil &&
		b.College.ApprovedBy != nil && strings.TrimSpace(*b.College.ApprovedBy) != "" &&
		b.College.Stream != nil && strings.TrimSpace(*b.College.Stream) != ""
}
