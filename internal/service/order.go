package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/JavierAQR/backend-luaspets/internal/models"
)

type ShippingInfo struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Phone    string  `json:"phone"`
	Address  string  `json:"address"`
	City     string  `json:"city"`
	Notes    *string `json:"notes,omitempty"`
}

type OrderService struct {
	DB *gorm.DB
}

// generateOrderNumber builds ORD-<8digits>-<3digits> from the millisecond
// clock and a random suffix. Collisions are possible; the caller retries
// against the unique index.
func generateOrderNumber() (string, error) {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	if len(ts) > 8 {
		ts = ts[len(ts)-8:]
	}
	n, err := rand.Int(rand.Reader, big.NewInt(1000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("ORD-%s-%03d", ts, n.Int64()), nil
}

func nextFreeOrderNumber(tx *gorm.DB) (string, error) {
	const maxAttempts = 5
	for i := 0; i < maxAttempts; i++ {
		number, err := generateOrderNumber()
		if err != nil {
			return "", err
		}
		var count int64
		if err := tx.Model(&models.Order{}).Where("order_number = ?", number).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return number, nil
		}
	}
	return "", fmt.Errorf("order number collision after %d attempts", maxAttempts)
}

// lockForUpdate takes a row lock on Postgres. On sqlite the transaction
// itself serializes writers, and FOR UPDATE is not valid syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// CreateOrderFromCart freezes the user's active cart into an order: line
// items copy the product name and image at this instant, the total is the sum
// of the captured cart prices (not the live product prices), and the source
// cart is emptied in the same transaction so a retry can never double-charge.
func (s *OrderService) CreateOrderFromCart(ctx context.Context, userID uint, info ShippingInfo) (*models.Order, error) {
	if info.FullName == "" || info.Email == "" || info.Address == "" {
		return nil, fmt.Errorf("%w: full_name, email and address are required", ErrValidation)
	}

	var order models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cart models.Cart
		err := tx.Preload("Items").
			Where("user_id = ? AND is_active = ?", userID, true).
			First(&cart).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if errors.Is(err, gorm.ErrRecordNotFound) || len(cart.Items) == 0 {
			return fmt.Errorf("%w: the cart is empty", ErrValidation)
		}

		var total int64
		items := make([]models.OrderItem, 0, len(cart.Items))
		for _, ci := range cart.Items {
			var product models.Product
			if err := tx.First(&product, ci.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %d is no longer available", ErrNotFound, ci.ProductID)
				}
				return err
			}
			total += ci.UnitPriceCents * int64(ci.Quantity)
			items = append(items, models.OrderItem{
				ProductID:      ci.ProductID,
				ProductName:    product.Name,
				ProductImage:   product.ImageURL,
				Quantity:       ci.Quantity,
				UnitPriceCents: ci.UnitPriceCents,
			})
		}

		number, err := nextFreeOrderNumber(tx)
		if err != nil {
			return err
		}

		order = models.Order{
			OrderNumber:     number,
			UserID:          userID,
			ShippingName:    info.FullName,
			ShippingEmail:   info.Email,
			ShippingPhone:   info.Phone,
			ShippingAddress: info.Address,
			ShippingCity:    info.City,
			ShippingNotes:   info.Notes,
			TotalCents:      total,
			Status:          models.OrderStatusPending,
			Items:           items,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// The cart stays active and empty, ready for the next order.
		return tx.Where("cart_id = ?", cart.ID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (s *OrderService) GetMyOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderService) GetOrderByID(ctx context.Context, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	if err := s.DB.WithContext(ctx).Preload("Items").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order not found", ErrNotFound)
		}
		return nil, err
	}
	if order.UserID != userID {
		return nil, fmt.Errorf("%w: you do not own this order", ErrForbidden)
	}
	return &order, nil
}

// GetAllOrders has no ownership filter; the router restricts it to admins.
func (s *OrderService) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// CompleteOrder applies a payment confirmation in one transaction: it
// validates current stock against the frozen item list, decrements each
// product, and flips the order to COMPLETED exactly once. Replays of the
// callback see the COMPLETED status and return the order unchanged, so stock
// is never decremented twice. Any stock failure aborts the whole transaction
// and leaves every product untouched. Two orders racing for the last units of
// a product resolve first-committer-wins: the later transaction reads the
// post-commit stock under the row lock and fails the check.
func (s *OrderService) CompleteOrder(ctx context.Context, userID, orderID uint, paypalOrderID string) (*models.Order, error) {
	if paypalOrderID == "" {
		return nil, fmt.Errorf("%w: paypal_order_id is required", ErrValidation)
	}

	var result models.Order
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := lockForUpdate(tx).First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order not found", ErrNotFound)
			}
			return err
		}
		if order.UserID != userID {
			return fmt.Errorf("%w: you do not own this order", ErrForbidden)
		}

		var items []models.OrderItem
		if err := tx.Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error; err != nil {
			return err
		}
		order.Items = items

		// Idempotence guard: a repeated payment callback must be a no-op.
		if order.Status == models.OrderStatusCompleted {
			result = order
			return nil
		}

		products := make([]models.Product, len(items))
		for i, item := range items {
			if err := lockForUpdate(tx).First(&products[i], item.ProductID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: product %q no longer exists", ErrNotFound, item.ProductName)
				}
				return err
			}
			if products[i].Stock-item.Quantity < 0 {
				return fmt.Errorf("%w: insufficient stock for product %q", ErrConflict, item.ProductName)
			}
		}

		for i, item := range items {
			err := tx.Model(&products[i]).
				Update("stock", gorm.Expr("stock - ?", item.Quantity)).Error
			if err != nil {
				return err
			}
		}

		order.Status = models.OrderStatusCompleted
		order.PaypalOrderID = &paypalOrderID
		err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(map[string]interface{}{
			"status":          order.Status,
			"paypal_order_id": order.PaypalOrderID,
		}).Error
		if err != nil {
			return err
		}

		result = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}
