package services

import (
	"context"

	"go.uber.org/zap"

	apperrors "github.com/shopkart/shopkart-api/common/errors"
	"github.com/shopkart/shopkart-api/models"
	"github.com/shopkart/shopkart-api/repository"
)

// CartService maintains the single active cart per user. Every mutation is
// a read-modify-write of that one document; there is no cross-user
// contention, so single-document write atomicity from the store is enough.
type CartService struct {
	cartRepo repository.CartRepository
}

func NewCartService(cartRepo repository.CartRepository) *CartService {
	return &CartService{cartRepo: cartRepo}
}

// AddItem merges qty units of a product into the user's cart, creating the
// cart lazily. An existing line accumulates: qty is added and
// unitPrice*qty is added onto the stored line total. A price change
// between calls therefore mixes price points inside one line; the line
// total is the running sum of what was actually added, not a recomputation
// from the current unit price.
func (s *CartService) AddItem(ctx context.Context, userID, productID, title string, unitPrice int64, qty int, imgSrc string) (*models.Cart, error) {
	if productID == "" || title == "" {
		return nil, apperrors.Validation("Missing required fields: productId, title, price, qty")
	}
	if unitPrice <= 0 || qty <= 0 {
		return nil, apperrors.Validation("price and qty must be positive")
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	}

	if item := cart.Item(productID); item != nil {
		item.Qty += qty
		item.Price += unitPrice * int64(qty)
	} else {
		cart.Items = append(cart.Items, models.CartItem{
			ProductID: productID,
			Title:     title,
			Price:     unitPrice * int64(qty),
			Qty:       qty,
			ImgSrc:    imgSrc,
		})
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}

	zap.L().Debug("cart item added",
		zap.String("user", userID),
		zap.String("product", productID),
		zap.Int("qty", qty),
	)
	return cart, nil
}

// DecreaseItem subtracts qty units from a line. Dropping to zero or below
// removes the line entirely. A missing cart or line is a not-found signal,
// reported as (nil, nil) rather than an error. The per-unit price is
// derived from the stored line total, so a mixed-price line decreases by
// its average unit price.
func (s *CartService) DecreaseItem(ctx context.Context, userID, productID string, qty int) (*models.Cart, error) {
	if productID == "" {
		return nil, apperrors.Validation("Missing required fields: productId, qty")
	}
	if qty <= 0 {
		return nil, apperrors.Validation("qty must be positive")
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		return nil, nil
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	item := &cart.Items[idx]
	if item.Qty > qty {
		pricePerUnit := item.Price / int64(item.Qty)
		item.Qty -= qty
		item.Price -= pricePerUnit * int64(qty)
	} else {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// GetCart returns the user's cart, or (nil, nil) when none exists.
func (s *CartService) GetCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	return cart, nil
}

// RemoveItem filters a product out of the cart. Removing an absent product
// is a no-op; a missing cart is a not-found signal.
func (s *CartService) RemoveItem(ctx context.Context, userID, productID string) (*models.Cart, error) {
	if productID == "" {
		return nil, apperrors.Validation("Product ID is required")
	}

	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		return nil, nil
	}

	filtered := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			filtered = append(filtered, item)
		}
	}
	cart.Items = filtered

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}

// ClearCart empties the item list, creating the cart if absent.
func (s *CartService) ClearCart(ctx context.Context, userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.Internal("Failed to load cart", err)
	}
	if cart == nil {
		cart = &models.Cart{UserID: userID}
	}
	cart.Items = []models.CartItem{}

	if err := s.cartRepo.Save(ctx, cart); err != nil {
		return nil, apperrors.Internal("Failed to save cart", err)
	}
	return cart, nil
}
