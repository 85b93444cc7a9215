// internal/models/demo.go
package models

import (
	"fmt"
	"time"
)

func functionType(f FunctionType) *FunctionType {
	return &f
}

// DemoCatalog returns the fixed starter catalog served when the managed
// backend is unconfigured or unreachable. Timestamps are staggered so that
// creation-time ordering matches declaration order. Callers receive a fresh
// slice on every call and may mutate it freely.
func DemoCatalog() []Product {
	base := time.Now()
	stamp := func(i int) BaseModel {
		ts := base.Add(-time.Duration(i) * time.Hour)
		return BaseModel{
			ID:        fmt.Sprintf("demo-%d", i+1),
			CreatedAt: ts,
			UpdatedAt: ts,
		}
	}

	return []Product{
		{
			BaseModel:    stamp(0),
			Name:         "Golden Temple Necklace",
			Description:  "Exquisite gold-plated temple jewelry necklace with intricate goddess motifs. Perfect for traditional ceremonies and special occasions.",
			Price:        15000,
			Category:     CategoryNecklace,
			FunctionType: functionType(FunctionKovil),
			ImageURL:     "/assets/products/golden-temple-necklace.jpg",
			IsForSale:    true,
		},
		{
			BaseModel:    stamp(1),
			Name:         "Diamond Bridal Set",
			Description:  "Complete bridal jewelry set with matching necklace, earrings, and bangles. Featuring high-quality diamonds and traditional craftsmanship.",
			Price:        75000,
			Category:     CategoryBridal,
			FunctionType: functionType(FunctionBrideToBe),
			ImageURL:     "/assets/products/diamond-bridal-set.jpg",
			IsForSale:    true,
		},
		{
			BaseModel:    stamp(2),
			Name:         "Traditional Aharam",
			Description:  "Long traditional South Indian aharam with semi-precious stones. Beautifully crafted for bridal ceremonies.",
			Price:        25000,
			Category:     CategoryAharam,
			FunctionType: functionType(FunctionBrideToBe),
			ImageURL:     "/assets/products/traditional-aharam.jpg",
			IsForSale:    false,
		},
		{
			BaseModel:    stamp(3),
			Name:         "Pearl Drop Earrings",
			Description:  "Elegant pearl drop earrings with gold accents. Perfect for parties and special occasions.",
			Price:        8000,
			Category:     CategoryEarings,
			FunctionType: functionType(FunctionBirthdayParty),
			ImageURL:     "/assets/products/pearl-drop-earrings.jpg",
			IsForSale:    true,
		},
		{
			BaseModel:    stamp(4),
			Name:         "Gold Bangles Set",
			Description:  "Set of 6 matching gold bangles with traditional designs. Ideal for photoshoots and special events.",
			Price:        18000,
			Category:     CategoryBangles,
			FunctionType: functionType(FunctionPreshoot),
			ImageURL:     "/assets/products/gold-bangles-set.jpg",
			IsForSale:    false,
		},
		{
			BaseModel:    stamp(5),
			Name:         "Ruby Stone Necklace",
			Description:  "Stunning ruby stone necklace with gold chain. A statement piece for any occasion.",
			Price:        35000,
			Category:     CategoryNecklace,
			FunctionType: functionType(FunctionPostshoot),
			ImageURL:     "/assets/products/ruby-stone-necklace.jpg",
			IsForSale:    true,
		},
		{
			BaseModel:    stamp(6),
			Name:         "Bridal Crown Set",
			Description:  "Complete bridal crown with matching accessories. Premium rental piece for wedding ceremonies.",
			Price:        95000,
			Category:     CategoryBridal,
			FunctionType: functionType(FunctionBrideToBe),
			ImageURL:     "/assets/products/bridal-crown-set.jpg",
			IsForSale:    false,
		},
		{
			BaseModel:    stamp(7),
			Name:         "Emerald Earrings",
			Description:  "Beautiful emerald earrings with gold setting. A timeless addition to any collection.",
			Price:        12000,
			Category:     CategoryEarings,
			FunctionType: functionType(FunctionMehindi),
			ImageURL:     "/assets/products/emerald-earrings.jpg",
			IsForSale:    true,
		},
	}
}
