package types

import (
  "time"

  "github.com/google/uuid"
)

const (
  CourseLevelUG = "ug"
  CourseLevelPG = "pg"

  DurationTypeYears = "years"
)

// CollegeCourse is a catalog entry. Usable rows have duration_type "years",
// non-null name/duration/fee and is_active set; the engine caps them at 5
// per level in catalog insertion order.
type CollegeCourse struct {
  ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  CollegeID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"college_id"`
  College      *College   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CollegeID;references:ID" json:"college,omitempty"`
  Name         *string    `gorm:"column:name" json:"name,omitempty"`
  Level        string     `gorm:"column:level;not null;index" json:"level"`
  Stream       *string    `gorm:"column:stream" json:"stream,omitempty"`
  DurationType string     `gorm:"column:duration_type;not null;default:'years'" json:"duration_type"`
  Duration     *float64   `gorm:"column:duration" json:"duration,omitempty"`
  Fee          *float64   `gorm:"column:fee" json:"fee,omitempty"`
  IsActive     bool       `gorm:"column:is_active;not null" json:"is_active"`
  SortOrder    int        `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
  CreatedAt    time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt    time.Time  `gorm:"not null" json:"updated_at"`
}

func (CollegeCourse) TableName() string { return "college_course" }
