// internal/services/catalog_service_test.go
package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rishvigems/gems-backend/internal/models"
)

func newTestCatalog(t *testing.T, signedIn bool) (*CatalogService, *SessionService) {
	t.Helper()

	cfg := testConfig()
	gateway := demoGateway(cfg)
	sessions := NewSessionService(gateway, cfg)
	storage := NewStorageService(gateway, cfg)
	catalog := NewCatalogService(gateway, sessions, storage)

	if signedIn {
		_, err := sessions.SignIn(context.Background(), &SignInRequest{
			Email:    DemoEmail,
			Password: DemoPassword,
		})
		assert.NoError(t, err)
	}

	return catalog, sessions
}

func TestListDemoCatalog(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	products := catalog.List(context.Background(), ListParams{})
	assert.Len(t, products, len(models.DemoCatalog()))
}

func TestListCategoryFilter(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	products := catalog.List(context.Background(), ListParams{Category: string(models.CategoryAharam)})
	assert.Len(t, products, 1)
	assert.Equal(t, models.CategoryAharam, products[0].Category)
}

func TestListCategoryAll(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	all := catalog.List(context.Background(), ListParams{Category: models.CategoryAll})
	unfiltered := catalog.List(context.Background(), ListParams{})
	assert.Equal(t, len(unfiltered), len(all))
}

func TestListRentOnly(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	products := catalog.List(context.Background(), ListParams{RentOnly: true})
	assert.NotEmpty(t, products)
	for _, p := range products {
		assert.False(t, p.IsForSale)
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	lower := catalog.List(context.Background(), ListParams{Search: "necklace"})
	upper := catalog.List(context.Background(), ListParams{Search: "NECKLACE"})

	assert.NotEmpty(t, lower)
	assert.Equal(t, len(lower), len(upper))
	for _, p := range lower {
		haystack := strings.ToLower(p.Name + " " + p.Description)
		assert.Contains(t, haystack, "necklace")
	}
}

func TestListSearchSingleCharacter(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	// even a one-character term filters
	products := catalog.List(context.Background(), ListParams{Search: "z"})
	for _, p := range products {
		haystack := strings.ToLower(p.Name + " " + p.Description)
		assert.Contains(t, haystack, "z")
	}
}

func TestListCombinedFilters(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	products := catalog.List(context.Background(), ListParams{
		Category: string(models.CategoryBridal),
		RentOnly: true,
	})
	assert.NotEmpty(t, products)
	for _, p := range products {
		assert.Equal(t, models.CategoryBridal, p.Category)
		assert.False(t, p.IsForSale)
	}
}

func TestCreateRequiresSession(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	_, err := catalog.Create(context.Background(), &CreateProductRequest{
		Name:     "Test Necklace",
		Price:    1000,
		Category: models.CategoryNecklace,
	})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestCreateDemoSynthesizes(t *testing.T) {
	catalog, _ := newTestCatalog(t, true)

	before := time.Now()
	product, err := catalog.Create(context.Background(), &CreateProductRequest{
		Name:      "Test Necklace",
		Price:     1000,
		Category:  models.CategoryNecklace,
		IsForSale: true,
	})

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(product.ID, "demo-"))
	assert.False(t, product.CreatedAt.Before(before))
	assert.Equal(t, float64(1000), product.Price)
}

func TestCreateZeroesPriceForRentals(t *testing.T) {
	catalog, _ := newTestCatalog(t, true)

	product, err := catalog.Create(context.Background(), &CreateProductRequest{
		Name:      "Rental Aharam",
		Price:     5000,
		Category:  models.CategoryAharam,
		IsForSale: false,
	})

	assert.NoError(t, err)
	assert.Equal(t, float64(0), product.Price)
}

func TestCreateRejectsUnknownCategory(t *testing.T) {
	catalog, _ := newTestCatalog(t, true)

	_, err := catalog.Create(context.Background(), &CreateProductRequest{
		Name:     "Mystery Item",
		Price:    100,
		Category: models.Category("tiaras"),
	})

	assert.Error(t, err)
}

func TestUpdateRequiresSession(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	name := "Renamed"
	_, err := catalog.Update(context.Background(), "demo-1", &UpdateProductRequest{Name: &name})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestUpdateDemoStartsFromCatalogItem(t *testing.T) {
	catalog, _ := newTestCatalog(t, true)

	name := "Renamed Necklace"
	product, err := catalog.Update(context.Background(), "demo-1", &UpdateProductRequest{Name: &name})

	assert.NoError(t, err)
	assert.Equal(t, "demo-1", product.ID)
	assert.Equal(t, "Renamed Necklace", product.Name)
	// untouched fields carry over from the demo item
	assert.Equal(t, models.CategoryNecklace, product.Category)
}

func TestUpdateZeroesPriceWhenSwitchedToRental(t *testing.T) {
	catalog, _ := newTestCatalog(t, true)

	forSale := false
	product, err := catalog.Update(context.Background(), "demo-1", &UpdateProductRequest{IsForSale: &forSale})

	assert.NoError(t, err)
	assert.False(t, product.IsForSale)
	assert.Equal(t, float64(0), product.Price)
}

func TestDeleteRequiresSession(t *testing.T) {
	catalog, _ := newTestCatalog(t, false)

	_, err := catalog.Delete(context.Background(), "demo-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteDemoIsNoOp(t *testing.T) {
	catalog, _ := newTestCatalog(t, true)

	cleanup, err := catalog.Delete(context.Background(), "demo-1")
	assert.NoError(t, err)
	assert.False(t, cleanup.Attempted)
	assert.False(t, cleanup.Deleted)
	assert.Empty(t, cleanup.Error)

	// the demo catalog is immutable
	products := catalog.List(context.Background(), ListParams{})
	assert.Len(t, products, len(models.DemoCatalog()))
}

func TestSanitizeRecordsDropsMalformedRows(t *testing.T) {
	valid := models.Product{
		BaseModel: models.BaseModel{ID: "p-1"},
		Name:      "Gold Ring",
		Category:  models.CategoryBangles,
	}
	missingID := models.Product{
		Name:     "Orphan Row",
		Category: models.CategoryNecklace,
	}
	blankName := models.Product{
		BaseModel: models.BaseModel{ID: "p-2"},
		Name:      "   ",
		Category:  models.CategoryNecklace,
	}

	sane := sanitizeRecords([]models.Product{missingID, valid, blankName})

	assert.Len(t, sane, 1)
	assert.Equal(t, "p-1", sane[0].ID)
}

func TestSessionExpiryAppliesToMutations(t *testing.T) {
	catalog, sessions := newTestCatalog(t, true)

	sessions.SignOut(context.Background())

	_, err := catalog.Create(context.Background(), &CreateProductRequest{
		Name:     "After Logout",
		Price:    100,
		Category: models.CategoryBangles,
	})
	assert.ErrorIs(t, err, ErrUnauthorized)
}
