package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

type GeneratedContentRepo interface {
  Create(ctx context.Context, tx *gorm.DB, docs []*types.GeneratedContent) ([]*types.GeneratedContent, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GeneratedContent, error)
  ExistsForCollegeSilo(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID, silo string) (bool, error)
  // Update overwrites the given columns and bumps updated_at.
  Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
}

type generatedContentRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewGeneratedContentRepo(db *gorm.DB, baseLog *logger.Logger) GeneratedContentRepo {
  repoLog := baseLog.With("repo", "GeneratedContentRepo")
  return &generatedContentRepo{db: db, log: repoLog}
}

func (r *generatedContentRepo) Create(ctx context.Context, tx *gorm.DB, docs []*types.GeneratedContent) ([]*types.GeneratedContent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(docs) == 0 {
    return []*types.GeneratedContent{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&docs).Error; err != nil {
    return nil, err
  }
  return docs, nil
}

func (r *generatedContentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.GeneratedContent, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.GeneratedContent
  if err := transaction.WithContext(ctx).
    Where("id = ?", id).
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *generatedContentRepo) ExistsForCollegeSilo(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID, silo string) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.GeneratedContent{}).
    Where("college_id = ? AND silo = ?", collegeID, silo).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (r *generatedContentRepo) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(updates) == 0 {
    return nil
  }
  updates["updated_at"] = time.Now()
  return transaction.WithContext(ctx).
    Model(&types.GeneratedContent{}).
    Where("id = ?", id).
    Updates(updates).Error
}
