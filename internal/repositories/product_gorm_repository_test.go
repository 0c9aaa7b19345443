package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"productstore/internal/models"
	"productstore/internal/repositories"
)

// setupRepo opens a fresh in-memory SQLite database for the test. The DSN is
// keyed by test name so parallel tests never share state.
func setupRepo(t *testing.T) *repositories.GORMProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.ProductOption{}))

	repo := repositories.NewGORMProductRepository(db)
	require.NoError(t, repo.DeleteAllData())
	return repo
}

func strPtr(s string) *string {
	return &s
}

func seedProduct(t *testing.T, repo *repositories.GORMProductRepository, name string) *models.Product {
	t.Helper()

	product := &models.Product{
		Name:          name,
		Description:   strPtr("seeded for testing"),
		Price:         decimal.RequireFromString("1000.00"),
		DeliveryPrice: decimal.RequireFromString("20.00"),
	}
	require.NoError(t, repo.CreateProduct(product))
	return product
}

func TestGORMProductRepository_CreateAndGetByID(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")
	assert.NotEmpty(t, product.ID)

	fetched, err := repo.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, product.ID, fetched.ID)
	assert.Equal(t, "MacBook", fetched.Name)
	assert.Equal(t, "seeded for testing", *fetched.Description)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, fetched.DeliveryPrice.Equal(decimal.RequireFromString("20.00")))
}

func TestGORMProductRepository_GetByIDIsCaseInsensitive(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")

	fetched, err := repo.GetProductByID(strings.ToUpper(product.ID))
	assert.NoError(t, err)
	assert.Equal(t, product.ID, fetched.ID)
}

func TestGORMProductRepository_GetByIDNotFound(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetProductByID("b5b3cbb1-6d4a-4c1a-9c4e-d8e4f4c8f0aa")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_GetProductsByNameLike(t *testing.T) {
	repo := setupRepo(t)

	seedProduct(t, repo, "MacBook")
	seedProduct(t, repo, "macbook air")
	seedProduct(t, repo, "Dell XPS")

	products, err := repo.GetProductsByNameLike("Mac")
	assert.NoError(t, err)
	assert.Len(t, products, 2)
	for _, p := range products {
		assert.Contains(t, strings.ToLower(p.Name), "mac")
	}
}

func TestGORMProductRepository_NameWithApostropheRoundTrips(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "O'Brien's Choice")

	fetched, err := repo.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "O'Brien's Choice", fetched.Name)

	products, err := repo.GetProductsByNameLike("o'brien")
	assert.NoError(t, err)
	assert.Len(t, products, 1)
}

func TestGORMProductRepository_UpdateProduct(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")
	product.Name = "MacBook Pro"
	product.Description = nil
	product.Price = decimal.RequireFromString("2500.00")

	assert.NoError(t, repo.UpdateProduct(product))

	fetched, err := repo.GetProductByID(product.ID)
	assert.NoError(t, err)
	assert.Equal(t, "MacBook Pro", fetched.Name)
	assert.Nil(t, fetched.Description)
	assert.True(t, fetched.Price.Equal(decimal.RequireFromString("2500.00")))
}

func TestGORMProductRepository_UpdateProductNotFound(t *testing.T) {
	repo := setupRepo(t)

	err := repo.UpdateProduct(&models.Product{
		ID:   "b5b3cbb1-6d4a-4c1a-9c4e-d8e4f4c8f0aa",
		Name: "Ghost",
	})
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	products, err := repo.GetAllProducts()
	assert.NoError(t, err)
	assert.Empty(t, products)
}

func TestGORMProductRepository_DeleteProduct(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")

	assert.NoError(t, repo.DeleteProduct(product.ID))

	_, err := repo.GetProductByID(product.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, repo.DeleteProduct(product.ID), repositories.ErrNotFound)
}

func TestGORMProductRepository_Options(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")

	option := &models.ProductOption{
		ProductID:   product.ID,
		Name:        "Silver",
		Description: strPtr("Silver finish"),
	}
	require.NoError(t, repo.CreateOption(option))
	assert.NotEmpty(t, option.ID)

	options, err := repo.GetOptionsByProductID(product.ID)
	assert.NoError(t, err)
	assert.Len(t, options, 1)
	assert.Equal(t, "Silver", options[0].Name)

	fetched, err := repo.GetOptionByID(product.ID, option.ID)
	assert.NoError(t, err)
	assert.Equal(t, option.ID, fetched.ID)

	// Both identifiers must match the same row
	_, err = repo.GetOptionByID("b5b3cbb1-6d4a-4c1a-9c4e-d8e4f4c8f0aa", option.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestGORMProductRepository_UpdateOption(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")
	option := &models.ProductOption{ProductID: product.ID, Name: "Silver"}
	require.NoError(t, repo.CreateOption(option))

	option.Name = "Gold"
	option.Description = strPtr("Gold finish")
	assert.NoError(t, repo.UpdateOption(option))

	fetched, err := repo.GetOptionByID(product.ID, option.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Gold", fetched.Name)
	assert.Equal(t, "Gold finish", *fetched.Description)
}

func TestGORMProductRepository_DeleteOption(t *testing.T) {
	repo := setupRepo(t)

	product := seedProduct(t, repo, "MacBook")
	option := &models.ProductOption{ProductID: product.ID, Name: "Silver"}
	require.NoError(t, repo.CreateOption(option))

	assert.NoError(t, repo.DeleteOption(option.ID))

	options, err := repo.GetOptionsByProductID(product.ID)
	assert.NoError(t, err)
	assert.Empty(t, options)

	assert.ErrorIs(t, repo.DeleteOption(option.ID), repositories.ErrNotFound)
}

func TestGORMProductRepository_OptionsOfUnknownProductIsEmpty(t *testing.T) {
	repo := setupRepo(t)

	options, err := repo.GetOptionsByProductID("b5b3cbb1-6d4a-4c1a-9c4e-d8e4f4c8f0aa")
	assert.NoError(t, err)
	assert.Empty(t, options)
}
