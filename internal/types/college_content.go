package types

import (
  "time"

  "github.com/google/uuid"
)

// CollegeContent is a human-authored article for one silo. Its absence (or
// inactivity) for a silo is what makes a college a templatization candidate.
type CollegeContent struct {
  ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  CollegeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"college_id"`
  College   *College   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CollegeID;references:ID" json:"college,omitempty"`
  Silo      string     `gorm:"column:silo;not null;index" json:"silo"`
  Title     string     `gorm:"column:title" json:"title"`
  Body      string     `gorm:"column:body" json:"body"`
  IsActive  bool       `gorm:"column:is_active;not null;default:false" json:"is_active"`
  CreatedAt time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (CollegeContent) TableName() string { return "college_content" }
