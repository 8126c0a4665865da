package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

type CollegePlacementRepo interface {
  // GetLatest returns the most-recently-updated placement record, or nil
  // when the college has none.
  GetLatest(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (*types.CollegePlacement, error)
}

type collegePlacementRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCollegePlacementRepo(db *gorm.DB, baseLog *logger.Logger) CollegePlacementRepo {
  repoLog := baseLog.With("repo", "CollegePlacementRepo")
  return &collegePlacementRepo{db: db, log: repoLog}
}

func (r *collegePlacementRepo) GetLatest(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (*types.CollegePlacement, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CollegePlacement
  if err := transaction.WithContext(ctx).
    Where("college_id = ?", collegeID).
    Order("updated_at DESC").
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}
