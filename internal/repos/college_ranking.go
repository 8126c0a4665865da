package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

const recentRankingsLimit = 10

type CollegeRankingRepo interface {
  // GetBest returns the single best usable ranking: lowest rank wins, most
  // recent year breaks ties. Nil when the college has no usable row.
  GetBest(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (*types.CollegeRanking, error)
  // ListRecent returns up to 10 usable rankings, newest year first, better
  // rank first within a year.
  ListRecent(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) ([]*types.CollegeRanking, error)
}

type collegeRankingRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewCollegeRankingRepo(db *gorm.DB, baseLog *logger.Logger) CollegeRankingRepo {
  repoLog := baseLog.With("repo", "CollegeRankingRepo")
  return &collegeRankingRepo{db: db, log: repoLog}
}

func usableRankings(tx *gorm.DB, collegeID uuid.UUID) *gorm.DB {
  return tx.Model(&types.CollegeRanking{}).
    Where("college_id = ?", collegeID).
    Where("category IS NOT NULL AND year IS NOT NULL AND rank IS NOT NULL AND agency IS NOT NULL")
}

func (r *collegeRankingRepo) GetBest(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) (*types.CollegeRanking, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CollegeRanking
  if err := usableRankings(transaction.WithContext(ctx), collegeID).
    Order("rank ASC").
    Order("year DESC").
    Limit(1).
    Find(&results).Error; err != nil {
    return nil, err
  }
  if len(results) == 0 {
    return nil, nil
  }
  return results[0], nil
}

func (r *collegeRankingRepo) ListRecent(ctx context.Context, tx *gorm.DB, collegeID uuid.UUID) ([]*types.CollegeRanking, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }

  var results []*types.CollegeRanking
  if err := usableRankings(transaction.WithContext(ctx), collegeID).
    Order("year DESC").
    Order("rank ASC").
    Limit(recentRankingsLimit).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}
