package types

import (
  "time"

  "github.com/google/uuid"
)

// GeneratedContent is a synthesized article. Rows are created only by the
// templatization orchestrator and stay inactive until promoted through the
// update endpoint. The (college_id, silo) pair is unique so that re-running
// a bulk generation cannot produce duplicates.
type GeneratedContent struct {
  ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  CollegeID uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:uniq_generated_content_college_silo" json:"college_id"`
  College   *College   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CollegeID;references:ID" json:"college,omitempty"`
  Silo      string     `gorm:"column:silo;not null;uniqueIndex:uniq_generated_content_college_silo" json:"silo"`
  Body      string     `gorm:"column:body;not null" json:"body"`
  IsActive  bool       `gorm:"column:is_active;not null;default:false" json:"is_active"`
  CreatedAt time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (GeneratedContent) TableName() string { return "generated_content" }
