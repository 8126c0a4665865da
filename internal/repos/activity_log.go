package repos

import (
  "context"

  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

type ActivityLogRepo interface {
  Create(ctx context.Context, tx *gorm.DB, entries []*types.ActivityLog) ([]*types.ActivityLog, error)
}

type activityLogRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewActivityLogRepo(db *gorm.DB, baseLog *logger.Logger) ActivityLogRepo {
  repoLog := baseLog.With("repo", "ActivityLogRepo")
  return &activityLogRepo{db: db, log: repoLog}
}

func (r *activityLogRepo) Create(ctx context.Context, tx *gorm.DB, entries []*types.ActivityLog) ([]*types.ActivityLog, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(entries) == 0 {
    return []*types.ActivityLog{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&entries).Error; err != nil {
    return nil, err
  }
  return entries, nil
}
