package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/datatypes"
)

const (
  ActivitySubjectCollegeContent = "college-content"

  ActivitySeverityInfo = "info"

  ActivityOpGenerateBulk   = "templatize_bulk"
  ActivityOpGenerateSingle = "templatize_single"
  ActivityOpUpdate         = "templatize_update"
)

// ActivityLog is the audit trail row emitted once per successful
// templatization operation.
type ActivityLog struct {
  ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  ActorID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"actor_id"`
  SubjectType string          `gorm:"column:subject_type;not null;index" json:"subject_type"`
  SubjectID   uuid.UUID       `gorm:"type:uuid;index" json:"subject_id"`
  Operation   string          `gorm:"column:operation;not null" json:"operation"`
  Severity    string          `gorm:"column:severity;not null;default:'info'" json:"severity"`
  Message     string          `gorm:"column:message;not null" json:"message"`
  Metadata    datatypes.JSON  `gorm:"column:metadata;type:jsonb" json:"metadata"`
  CreatedAt   time.Time       `gorm:"not null;index" json:"created_at"`
}

func (ActivityLog) TableName() string { return "activity_log" }
