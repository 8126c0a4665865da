package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

type CollegeRepo interface {
  GetByIDs(ctx context.Context, tx *gorm.DB, collegeIDs []uuid.UUID) ([]*types.College, error)
  // ListTemplatizationCandidateIDs returns the distinct colleges eligible
  // for synthesis of the given silo: colleges that have some authored
  // content but no active silo-matching row and no generated row, unioned
  // with active colleges that have neither.
  ListTemplatizationCandidateIDs(ctx context.Context, tx *gorm.DB, silo string) ([]uuid.UUID, error)
}

type collegeRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCollegeRepo(db *gorm.DB, baseLog *logger.Logger) CollegeRepo {
  repoLog := baseLog.With("repo", "CollegeRepo")
  return &collegeRepo{db: db, log: repoLog}
}

func (r *collegeRepo) GetByIDs(ctx context.Context, tx *gorm.DB, collegeIDs []uuid.UUID) ([]*types.College, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.College
  if len(collegeIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", collegeIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *collegeRepo) ListTemplatizationCandidateIDs(ctx context.Context, tx *gorm.DB, silo string) ([]uuid.UUID, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  // Fresh subqueries per use: gorm chains accumulate state.
  activeAuthored := func() *gorm.DB {
    return transaction.Model(&types.CollegeContent{}).
      Select("college_id").
      Where("silo = ? AND is_active = ?", silo, true)
  }
  alreadyGenerated := func() *gorm.DB {
    return transaction.Model(&types.GeneratedContent{}).
      Select("college_id").
      Where("silo = ?", silo)
  }

  // Colleges with at least one authored row of any silo, minus the ones
  // already covered by an active article or a generated document.
  var withContent []uuid.UUID
  if err := transaction.WithContext(ctx).
    Model(&types.CollegeContent{}).
    Distinct().
    Where("college_id NOT IN (?)", activeAuthored()).
    Where("college_id NOT IN (?)", alreadyGenerated()).
    Pluck("college_id", &withContent).Error; err != nil {
    return nil, err
  }

  // Active colleges with no qualifying row either; this picks up colleges
  // with zero authored rows at all.
  var activeWithout []uuid.UUID
  if err := transaction.WithContext(ctx).
    Model(&types.College{}).
    Where("is_active = ?", true).
    Where("id NOT IN (?)", activeAuthored()).
    Where("id NOT IN (?)", alreadyGenerated()).
    Pluck("id", &activeWithout).Error; err != nil {
    return nil, err
  }

  seen := make(map[uuid.UUID]struct{}, len(withContent)+len(activeWithout))
  union := make([]uuid.UUID, 0, len(withContent)+len(activeWithout))
  for _, id := range append(withContent, activeWithout...) {
    if _, ok := seen[id]; ok {
      continue
    }
    seen[id] = struct{}{}
    union = append(union, id)
  }
  return union, nil
}
