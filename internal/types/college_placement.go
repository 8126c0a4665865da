package types

import (
  "time"

  "github.com/google/uuid"
)

// CollegePlacement is a per-year placement record. The engine only reads the
// most-recently-updated row per college.
type CollegePlacement struct {
  ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  CollegeID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"college_id"`
  College        *College   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CollegeID;references:ID" json:"college,omitempty"`
  Year           *int       `gorm:"column:year" json:"year,omitempty"`
  PlacementRate  *float64   `gorm:"column:placement_rate" json:"placement_rate,omitempty"`
  AvgPackage     *float64   `gorm:"column:avg_package" json:"avg_package,omitempty"`
  HighestPackage *float64   `gorm:"column:highest_package" json:"highest_package,omitempty"`
  TopRecruiters  *string    `gorm:"column:top_recruiters" json:"top_recruiters,omitempty"`
  CreatedAt      time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt      time.Time  `gorm:"not null;index" json:"updated_at"`
}

func (CollegePlacement) TableName() string { return "college_placement" }
