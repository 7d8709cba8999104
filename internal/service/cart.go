package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

type CartService struct {
	DB *gorm.DB
}

// getOrCreateActiveCart is the only way carts come into existence. Exactly
// one active cart per user at any time; callers rely on that.
func (s *CartService) getOrCreateActiveCart(tx *gorm.DB, userID uint) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ? AND is_active = ?", userID, true).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	cart = models.Cart{UserID: userID, IsActive: true}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) loadCart(tx *gorm.DB, cartID uint) (*models.Cart, error) {
	var cart models.Cart
	if err := tx.Preload("Items").First(&cart, cartID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

func (s *CartService) GetMyCart(ctx context.Context, userID uint) (*models.Cart, error) {
	db := s.DB.WithContext(ctx)
	cart, err := s.getOrCreateActiveCart(db, userID)
	if err != nil {
		return nil, err
	}
	return s.loadCart(db, cart.ID)
}

// AddItem merges into an existing line when the product is already in the
// cart, otherwise opens a new line priced at the product's current price.
// The stock check here is advisory; the authoritative one runs at completion.
func (s *CartService) AddItem(ctx context.Context, userID, productID uint, quantity int) (*models.Cart, error) {
	if productID == 0 {
		return nil, fmt.Errorf("%w: product_id is required", ErrValidation)
	}
	if quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}

	var cartID uint
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: product not found or unavailable", ErrNotFound)
			}
			return err
		}
		if !product.IsActive {
			return fmt.Errorf("%w: product not found or unavailable", ErrNotFound)
		}

		cart, err := s.getOrCreateActiveCart(tx, userID)
		if err != nil {
			return err
		}
		cartID = cart.ID

		var item models.CartItem
		err = tx.Where("cart_id = ? AND product_id = ?", cart.ID, productID).First(&item).Error
		switch {
		case err == nil:
			if item.Quantity+quantity > product.Stock {
				return fmt.Errorf("%w: insufficient stock for product %q", ErrConflict, product.Name)
			}
			// Keep the unit price captured when the line was opened.
			item.Quantity += quantity
			return tx.Save(&item).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			if quantity > product.Stock {
				return fmt.Errorf("%w: insufficient stock for product %q", ErrConflict, product.Name)
			}
			item = models.CartItem{
				CartID:         cart.ID,
				ProductID:      productID,
				Quantity:       quantity,
				UnitPriceCents: product.PriceCents,
			}
			return tx.Create(&item).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return s.loadCart(s.DB.WithContext(ctx), cartID)
}

// UpdateItem treats quantity <= 0 as removal rather than an error.
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, quantity int) (*models.Cart, error) {
	if quantity <= 0 {
		return s.RemoveItem(ctx, userID, itemID)
	}

	db := s.DB.WithContext(ctx)

	item, cart, err := s.ownedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	if err := db.First(&product, item.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: product not found or unavailable", ErrNotFound)
		}
		return nil, err
	}
	if quantity > product.Stock {
		return nil, fmt.Errorf("%w: insufficient stock for product %q", ErrConflict, product.Name)
	}

	if err := db.Model(item).Update("quantity", quantity).Error; err != nil {
		return nil, err
	}
	return s.loadCart(db, cart.ID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*models.Cart, error) {
	db := s.DB.WithContext(ctx)

	item, cart, err := s.ownedItem(db, userID, itemID)
	if err != nil {
		return nil, err
	}

	if err := db.Delete(item).Error; err != nil {
		return nil, err
	}
	return s.loadCart(db, cart.ID)
}

// ClearCart of a user without an active cart is not an error: an empty cart
// is created so the response shape is always a valid cart.
func (s *CartService) ClearCart(ctx context.Context, userID uint) (*models.Cart, error) {
	db := s.DB.WithContext(ctx)

	cart, err := s.getOrCreateActiveCart(db, userID)
	if err != nil {
		return nil, err
	}
	if err := db.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error; err != nil {
		return nil, err
	}
	return s.loadCart(db, cart.ID)
}

// ownedItem loads a cart item and verifies the cart behind it belongs to the
// caller.
func (s *CartService) ownedItem(db *gorm.DB, userID, itemID uint) (*models.CartItem, *models.Cart, error) {
	var item models.CartItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: cart item not found", ErrNotFound)
		}
		return nil, nil, err
	}

	var cart models.Cart
	if err := db.First(&cart, item.CartID).Error; err != nil {
		return nil, nil, err
	}
	if cart.UserID != userID {
		return nil, nil, fmt.Errorf("%w: item does not belong to your cart", ErrForbidden)
	}
	return &item, &cart, nil
}
