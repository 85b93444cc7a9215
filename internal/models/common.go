// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields. IDs are opaque strings so that
// backend-assigned UUIDs and synthesized demo ids share one type.
type BaseModel struct {
	ID        string    `json:"id" gorm:"type:varchar(64);primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// Enums

type Category string

const (
	CategoryBridal   Category = "bridal collection"
	CategoryNecklace Category = "necklace"
	CategoryAharam   Category = "aharam"
	CategoryEarings  Category = "earings"
	CategoryBangles  Category = "bangles"
)

// CategoryAll is the sentinel that disables category filtering.
const CategoryAll = "all"

func Categories() []Category {
	return []Category{
		CategoryBridal,
		CategoryNecklace,
		CategoryAharam,
		CategoryEarings,
		CategoryBangles,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// FunctionType tags a product with the occasion it suits. Optional.
type FunctionType string

const (
	FunctionBirthdayParty FunctionType = "birthday party"
	FunctionKovil         FunctionType = "kovil"
	FunctionPreshoot      FunctionType = "preshoot"
	FunctionPostshoot     FunctionType = "postshoot"
	FunctionBrideToBe     FunctionType = "bridetobe"
	FunctionMehindi       FunctionType = "mehindi"
)

func FunctionTypes() []FunctionType {
	return []FunctionType{
		FunctionBirthdayParty,
		FunctionKovil,
		FunctionPreshoot,
		FunctionPostshoot,
		FunctionBrideToBe,
		FunctionMehindi,
	}
}

func (f FunctionType) Valid() bool {
	for _, known := range FunctionTypes() {
		if f == known {
			return true
		}
	}
	return false
}

type UserRole string

const (
	UserRoleAdmin UserRole = "admin"
)
