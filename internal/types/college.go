package types

import (
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"
)

// College is owned by the external college CRUD module; the templatization
// engine reads it and never mutates it.
type College struct {
  ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
  Name            string          `gorm:"column:name;not null" json:"name"`
  Slug            string          `gorm:"column:slug;index" json:"slug"`
  EstablishedYear *int            `gorm:"column:established_year" json:"established_year,omitempty"`
  City            *string         `gorm:"column:city" json:"city,omitempty"`
  State           *string         `gorm:"column:state" json:"state,omitempty"`
  CampusSizeAcres *float64        `gorm:"column:campus_size_acres" json:"campus_size_acres,omitempty"`
  ApprovedBy      *string         `gorm:"column:approved_by" json:"approved_by,omitempty"`
  Stream          *string         `gorm:"column:stream" json:"stream,omitempty"`
  TotalStudents   *string         `gorm:"column:total_students" json:"total_students,omitempty"`
  IsActive        bool            `gorm:"column:is_active;not null;default:false;index" json:"is_active"`
  CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
  UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`
  DeletedAt       gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`
}

func (College) TableName() string { return "college" }
