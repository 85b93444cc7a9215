// internal/models/product.go
package models

type Product struct {
	BaseModel
	Name         string        `json:"name" gorm:"size:255;not null"`
	Description  string        `json:"description" gorm:"type:text"`
	Price        float64       `json:"price" gorm:"type:decimal(10,2);not null;default:0"`
	Category     Category      `json:"category" gorm:"type:varchar(50);index"`
	FunctionType *FunctionType `json:"function_type" gorm:"type:varchar(50)"`
	ImageURL     string        `json:"image_url" gorm:"size:1024"`
	IsForSale    bool          `json:"is_for_sale" gorm:"index"`
}
