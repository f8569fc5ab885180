package service

import (
	"database/sql"
	"errors"

	"github.com/VerdeSupply/storefront_api/internal/models"
	"github.com/VerdeSupply/storefront_api/internal/repository"
	"github.com/VerdeSupply/storefront_api/internal/utils"
)

// CartService manages a customer's cart with tier pricing.
type CartService struct {
	cartRepo    *repository.CartRepository
	productRepo *repository.ProductRepository
}

// NewCartService constructs a CartService.
func NewCartService(cartRepo *repository.CartRepository, productRepo *repository.ProductRepository) *CartService {
	return &CartService{cartRepo: cartRepo, productRepo: productRepo}
}

// Cart is the rendered cart with totals for the viewing customer's tier.
type Cart struct {
	Lines         []models.CartLine `json:"lines"`
	SubtotalCents int64             `json:"subtotalCents"`
}

// AddItem adds a product to the cart. If the (user, product) row exists the
// quantity increments atomically in the database, and the increment is
// refused inside the same statement when the merged quantity would exceed
// the product's order limit or stock.
func (s *CartService) AddItem(userID, productID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.ErrValidation
	}
	product, err := s.fetchActiveProduct(productID)
	if err != nil {
		return nil, err
	}
	// The standalone quantity must satisfy the bounds for the fresh-insert
	// case; the merge case is guarded inside the upsert itself.
	if err := checkQuantityBounds(product, quantity); err != nil {
		return nil, err
	}

	item, err := s.cartRepo.AddItem(userID, productID, quantity, maxAllowedQuantity(product))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Increment refused: report which bound the merge would break.
			if existing, getErr := s.cartRepo.GetItem(userID, productID); getErr == nil {
				if boundsErr := checkQuantityBounds(product, existing.Quantity+quantity); boundsErr != nil {
					return nil, boundsErr
				}
			}
			return nil, utils.ErrQuantityOutOfRange
		}
		return nil, err
	}
	return item, nil
}

// UpdateQuantity replaces a cart row's quantity.
func (s *CartService) UpdateQuantity(userID, productID, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		return nil, utils.ErrValidation
	}
	product, err := s.fetchActiveProduct(productID)
	if err != nil {
		return nil, err
	}
	if err := checkQuantityBounds(product, quantity); err != nil {
		return nil, err
	}

	item, err := s.cartRepo.SetQuantity(userID, productID, quantity)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// RemoveItem removes one product from the cart.
func (s *CartService) RemoveItem(userID, productID int) error {
	return s.cartRepo.RemoveItem(userID, productID)
}

// Clear empties the cart.
func (s *CartService) Clear(userID int) error {
	return s.cartRepo.Clear(userID)
}

// GetCart returns the cart joined with products and priced for the caller's
// tier.
func (s *CartService) GetCart(userID int, tier models.AccountType) (*Cart, error) {
	items, err := s.cartRepo.GetItems(userID)
	if err != nil {
		return nil, err
	}

	cart := &Cart{Lines: make([]models.CartLine, 0, len(items))}
	for _, item := range items {
		product, err := s.productRepo.GetByID(item.ProductID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Product removed since it was added; skip the line.
				continue
			}
			return nil, err
		}
		unit := ResolvePrice(product, tier)
		line := models.CartLine{
			CartItem:       item,
			Product:        *product,
			UnitPriceCents: unit,
			LineTotalCents: unit * int64(item.Quantity),
		}
		cart.SubtotalCents += line.LineTotalCents
		cart.Lines = append(cart.Lines, line)
	}
	return cart, nil
}

func (s *CartService) fetchActiveProduct(productID int) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if !product.IsActive {
		return nil, utils.ErrNotFound
	}
	return product, nil
}

// maxAllowedQuantity is the largest quantity a cart row may hold for a
// product: stock on hand, further capped by max_order_qty when set.
func maxAllowedQuantity(product *models.Product) int {
	limit := product.StockQty
	if product.MaxOrderQty > 0 && product.MaxOrderQty < limit {
		limit = product.MaxOrderQty
	}
	return limit
}

func checkQuantityBounds(product *models.Product, quantity int) error {
	if quantity < product.MinOrderQty {
		return utils.ErrQuantityOutOfRange
	}
	if product.MaxOrderQty > 0 && quantity > product.MaxOrderQty {
		return utils.ErrQuantityOutOfRange
	}
	if quantity > product.StockQty {
		return utils.ErrOutOfStock
	}
	return nil
}
