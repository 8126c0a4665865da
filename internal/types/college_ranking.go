package types

import (
  "time"

  "github.com/google/uuid"
)

// CollegeRanking rows come from ranking agencies. A row is usable by the
// templatization engine only when category, year, rank and agency are all
// non-null.
type CollegeRanking struct {
  ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
  CollegeID uuid.UUID  `gorm:"type:uuid;not null;index" json:"college_id"`
  College   *College   `gorm:"constraint:OnDelete:CASCADE;foreignKey:CollegeID;references:ID" json:"college,omitempty"`
  Category  *string    `gorm:"column:category" json:"category,omitempty"`
  Year      *int       `gorm:"column:year" json:"year,omitempty"`
  Rank      *int       `gorm:"column:rank" json:"rank,omitempty"`
  Agency    *string    `gorm:"column:agency" json:"agency,omitempty"`
  CreatedAt time.Time  `gorm:"not null" json:"created_at"`
  UpdatedAt time.Time  `gorm:"not null" json:"updated_at"`
}

func (CollegeRanking) TableName() string { return "college_ranking" }
