package services

import (
  "context"
  "encoding/json"
  "fmt"
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/campusorbit/collegelist-backend/internal/logger"
  "github.com/campusorbit/collegelist-backend/internal/repos"
  "github.com/campusorbit/collegelist-backend/internal/requestdata"
  "github.com/campusorbit/collegelist-backend/internal/types"
)

type ActivityLogService interface {
  // Record writes one audit row for a successful templatization operation.
  // The actor is taken from the request context; background callers log
  // with a nil actor.
  Record(ctx context.Context, tx *gorm.DB, operation string, subjectID uuid.UUID, message string, metadata map[string]interface{}) error
}

type activityLogService struct {
  db              *gorm.DB
  log             *logger.Logger
  activityLogRepo repos.ActivityLogRepo
}

func NewActivityLogService(db *gorm.DB, baseLog *logger.Logger, activityLogRepo repos.ActivityLogRepo) ActivityLogService {
  serviceLog := baseLog.With("service", "ActivityLogService")
  return &activityLogService{
    db:              db,
    log:             serviceLog,
    activityLogRepo: activityLogRepo,
  }
}

func (s *activityLogService) Record(ctx context.Context, tx *gorm.DB, operation string, subjectID uuid.UUID, message string, metadata map[string]interface{}) error {
  actorID := uuid.Nil
  if rd := requestdata.GetRequestData(ctx); rd != nil {
    actorID = rd.ActorID
  }

  var meta datatypes.JSON
  if len(metadata) > 0 {
    raw, err := json.Marshal(metadata)
    if err != nil {
      return fmt.Errorf("marshal audit metadata: %w", err)
    }
    meta = datatypes.JSON(raw)
  }

  entry := &types.ActivityLog{
    ID:          uuid.New(),
    ActorID:     actorID,
    SubjectType: types.ActivitySubjectCollegeContent,
    SubjectID:   subjectID,
    Operation:   operation,
    Severity:    types.ActivitySeverityInfo,
    Message:     message,
    Metadata:    meta,
    CreatedAt:   time.Now(),
  }
  if _, err := s.activityLogRepo.Create(ctx, tx, []*types.ActivityLog{entry}); err != nil {
    s.log.Error("Failed to write activity log", "error", err, "operation", operation)
    return fmt.Errorf("write activity log: %w", err)
  }
  return nil
}
