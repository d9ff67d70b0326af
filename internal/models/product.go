package models

import (
	"time"

	"github.com/google/uuid"
)

type Condition string

const (
	ConditionExcellent Condition = "excellent"
	ConditionVeryGood  Condition = "very_good"
	ConditionGood      Condition = "good"
	ConditionFair      Condition = "fair"
	ConditionToRestore Condition = "to_restore"
)

type MeasureUnit string

const (
	UnitCentimetres MeasureUnit = "cm"
	UnitInches      MeasureUnit = "in"
)

type Measures struct {
	Height float64     `json:"height"`
	Width  float64     `json:"width"`
	Depth  float64     `json:"depth"`
	Unit   MeasureUnit `json:"unit"`
}

type Category struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Image       string    `json:"image,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Period struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	YearStart   *int      `json:"year_start,omitempty"`
	YearEnd     *int      `json:"year_end,omitempty"`
	Featured    bool      `json:"featured"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Product struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	Images        []string   `json:"images"`
	Measures      Measures   `json:"measures"`
	Condition     Condition  `json:"condition"`
	CategoryID    uuid.UUID  `json:"category_id"`
	PeriodID      *uuid.UUID `json:"period_id,omitempty"`
	Origin        string     `json:"origin,omitempty"`
	Provenance    string     `json:"provenance,omitempty"`
	History       string     `json:"history,omitempty"`
	DeliveryNotes string     `json:"delivery_notes,omitempty"`
	Featured      bool       `json:"featured"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Category      *Category  `json:"category,omitempty"`
	Period        *Period    `json:"period,omitempty"`
}

type MeasuresRequest struct {
	Height float64     `json:"height" validate:"gte=0"`
	Width  float64     `json:"width" validate:"gte=0"`
	Depth  float64     `json:"depth" validate:"gte=0"`
	Unit   MeasureUnit `json:"unit" validate:"required,oneof=cm in"`
}

type CreateProductRequest struct {
	Name          string           `json:"name" validate:"required,min=2,max=200"`
	Description   string           `json:"description" validate:"required,max=5000"`
	Price         float64          `json:"price" validate:"gte=0"`
	Images        []string         `json:"images,omitempty" validate:"omitempty,max=20,dive,url"`
	Measures      *MeasuresRequest `json:"measures,omitempty" validate:"omitempty"`
	Condition     Condition        `json:"condition" validate:"required,oneof=excellent very_good good fair to_restore"`
	CategoryID    uuid.UUID        `json:"category_id" validate:"required"`
	PeriodID      *uuid.UUID       `json:"period_id,omitempty"`
	Origin        string           `json:"origin,omitempty" validate:"max=200"`
	Provenance    string           `json:"provenance,omitempty" validate:"max=2000"`
	History       string           `json:"history,omitempty" validate:"max=5000"`
	DeliveryNotes string           `json:"delivery_notes,omitempty" validate:"max=2000"`
	Featured      bool             `json:"featured"`
}

type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty" validate:"omitempty,min=2,max=200"`
	Description   *string          `json:"description,omitempty" validate:"omitempty,max=5000"`
	Price         *float64         `json:"price,omitempty" validate:"omitempty,gte=0"`
	Images        []string         `json:"images,omitempty" validate:"omitempty,max=20,dive,url"`
	Measures      *MeasuresRequest `json:"measures,omitempty" validate:"omitempty"`
	Condition     *Condition       `json:"condition,omitempty" validate:"omitempty,oneof=excellent very_good good fair to_restore"`
	CategoryID    *uuid.UUID       `json:"category_id,omitempty"`
	PeriodID      *uuid.UUID       `json:"period_id,omitempty"`
	ClearPeriod   bool             `json:"clear_period,omitempty"`
	Origin        *string          `json:"origin,omitempty" validate:"omitempty,max=200"`
	Provenance    *string          `json:"provenance,omitempty" validate:"omitempty,max=2000"`
	History       *string          `json:"history,omitempty" validate:"omitempty,max=5000"`
	DeliveryNotes *string          `json:"delivery_notes,omitempty" validate:"omitempty,max=2000"`
	Featured      *bool            `json:"featured,omitempty"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	Image       string `json:"image,omitempty" validate:"omitempty,url"`
	Featured    bool   `json:"featured"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	Image       *string `json:"image,omitempty" validate:"omitempty,url"`
	Featured    *bool   `json:"featured,omitempty"`
}

type CreatePeriodRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description,omitempty" validate:"max=2000"`
	YearStart   *int   `json:"year_start,omitempty"`
	YearEnd     *int   `json:"year_end,omitempty"`
	Featured    bool   `json:"featured"`
}

// UpdatePeriodRequest is a partial update. Clear flags unset a year bound and
// win over a value sent in the same request.
type UpdatePeriodRequest struct {
	Name           *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Description    *string `json:"description,omitempty" validate:"omitempty,max=2000"`
	YearStart      *int    `json:"year_start,omitempty"`
	YearEnd        *int    `json:"year_end,omitempty"`
	ClearYearStart bool    `json:"clear_year_start,omitempty"`
	ClearYearEnd   bool    `json:"clear_year_end,omitempty"`
	Featured       *bool   `json:"featured,omitempty"`
}
