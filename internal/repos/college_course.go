package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

const usableCoursesPerLevel = 5

type CollegeCourseRepo interface {
  // ListUsableByLevel returns up to 5 active year-based catalog rows with a
  // complete name/duration/fee, in catalog insertion order.
  ListUsableByLevel(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID, level string) ([]*types.CollegeCourse, error)
  CountActive(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (int64, error)
  DistinctStreams(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) ([]string, error)
}

type collegeCourseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCollegeCourseRepo(db *gorm.DB, baseLog *logger.Logger) CollegeCourseRepo {
  repoLog := baseLog.With("repo", "CollegeCourseRepo")
  return &collegeCourseRepo{db: db, log: repoLog}
}

func (r *collegeCourseRepo) ListUsableByLevel(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID, level string) ([]*types.CollegeCourse, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CollegeCourse
  if err := transaction.WithContext(ctx).
    Where("college_id = ?", collegeID).
    Where("level = ?", level).
    Where("duration_type = ?", types.DurationTypeYears).
    Where("name IS NOT NULL AND duration IS NOT NULL AND fee IS NOT NULL").
    Where("is_active = ?", true).
    Order("sort_order ASC").
    Order("created_at ASC").
    Limit(usableCoursesPerLevel).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *collegeCourseRepo) CountActive(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.CollegeCourse{}).
    Where("college_id = ?", collegeID).
    Where("is_active = ?", true).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *collegeCourseRepo) DistinctStreams(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) ([]string, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var streams []string
  if err := transaction.WithContext(ctx).
    Model(&types.CollegeCourse{}).
    Distinct().
    Where("college_id = ?", collegeID).
    Where("is_active = ?", true).
    Where("stream IS NOT NULL AND stream <> ''").
    Order("stream ASC").
    Pluck("stream", &streams).Error; err != nil {
    return nil, err
  }
  return streams, nil
}
