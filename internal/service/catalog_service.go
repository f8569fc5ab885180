package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/VerdeSupply/storefront_api/internal/cache"
	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CatalogService serves the customer-facing catalog with tier pricing and
// handles admin product management.
type CatalogService struct {
	productRepo  *repository.ProductRepository
	catalogCache *cache.CatalogCache
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(productRepo *repository.ProductRepository, catalogCache *cache.CatalogCache) *CatalogService {
	return &CatalogService{productRepo: productRepo, catalogCache: catalogCache}
}

// CatalogProduct is a product rendered for one language and account tier.
type CatalogProduct struct {
	ID                int    `json:"id"`
	SKU               string `json:"sku"`
	Name              string `json:"name"`
	Description       string `json:"description"`
	CategoryID        int    `json:"categoryId"`
	UnitPriceCents    int64  `json:"unitPriceCents"`
	StockQty          int    `json:"stockQty"`
	MinOrderQty       int    `json:"minOrderQty"`
	MaxOrderQty       int    `json:"maxOrderQty"`
	DeliveryAvailable bool   `json:"deliveryAvailable"`
	DeliveryFeeCents  int64  `json:"deliveryFeeCents"`
}

func renderProduct(p *models.Product, lang models.Language, tier models.AccountType) CatalogProduct {
	return CatalogProduct{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name(lang),
		Description:       p.Description(lang),
		CategoryID:        p.CategoryID,
		UnitPriceCents:    ResolvePrice(p, tier),
		StockQty:          p.StockQty,
		MinOrderQty:       p.MinOrderQty,
		MaxOrderQty:       p.MaxOrderQty,
		DeliveryAvailable: p.DeliveryAvailable,
		DeliveryFeeCents:  p.DeliveryFeeCents,
	}
}

// ListProducts returns active products rendered for the caller, cached per
// (category, language, tier).
func (s *CatalogService) ListProducts(ctx context.Context, categoryID int, lang models.Language, tier models.AccountType) ([]CatalogProduct, error) {
	if cached, _ := s.catalogCache.Get(ctx, categoryID, lang, tier); cached != nil {
		var result []CatalogProduct
		if err := json.Unmarshal(cached, &result); err == nil {
			return result, nil
		}
	}

	products, err := s.productRepo.GetActive(categoryID)
	if err != nil {
		return nil, err
	}

	result := make([]CatalogProduct, 0, len(products))
	for i := range products {
		result = append(result, renderProduct(&products[i], lang, tier))
	}

	if err := s.catalogCache.Set(ctx, categoryID, lang, tier, result); err != nil {
		log.Warn().Err(err).Msg("Failed to cache catalog page")
	}
	return result, nil
}

// GetProduct returns one active product rendered for the caller.
func (s *CatalogService) GetProduct(id int, lang models.Language, tier models.AccountType) (*CatalogProduct, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if !p.IsActive {
		return nil, utils.ErrNotFound
	}
	rendered := renderProduct(p, lang, tier)
	return &rendered, nil
}

// GetCategories returns active categories.
func (s *CatalogService) GetCategories() ([]models.Category, error) {
	return s.productRepo.GetCategories()
}

// --- Admin operations ---

// ListProductsAdmin returns the unfiltered admin view.
func (s *CatalogService) ListProductsAdmin(filter *repository.AdminProductFilter) ([]models.Product, int, error) {
	return s.productRepo.GetAllAdmin(filter)
}

// GetProductAdmin returns one product including inactive ones.
func (s *CatalogService) GetProductAdmin(id int) (*models.Product, error) {
	p, err := s.productRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

// CreateProduct creates a product and drops the catalog cache.
func (s *CatalogService) CreateProduct(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.productRepo.Create(p); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// UpdateProduct updates a product and drops the catalog cache.
func (s *CatalogService) UpdateProduct(ctx context.Context, p *models.Product) error {
	if err := validateProduct(p); err != nil {
		return err
	}
	if err := s.productRepo.Update(p); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrNotFound
		}
		return err
	}
	s.invalidate(ctx)
	return nil
}

// DeleteProduct deletes a product and drops the catalog cache.
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) error {
	if err := s.productRepo.Delete(id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *CatalogService) invalidate(ctx context.Context) {
	if err := s.catalogCache.Invalidate(ctx); err != nil {
		log.Warn().Err(err).Msg("Failed to invalidate catalog cache")
	}
}

func validateProduct(p *models.Product) error {
	if p.SKU == "" || p.NameEn == "" {
		return utils.ErrValidation
	}
	if p.PriceCents <= 0 {
		return utils.ErrValidation
	}
	if p.MinOrderQty < 1 || (p.MaxOrderQty > 0 && p.MaxOrderQty < p.MinOrderQty) {
		return utils.ErrValidation
	}
	return nil
}
