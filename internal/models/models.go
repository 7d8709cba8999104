package models

import (
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusCompleted = "COMPLETED"
)

const (
	AppointmentStatusPending   = "PENDING"
	AppointmentStatusConfirmed = "CONFIRMED"
	AppointmentStatusCancelled = "CANCELLED"
	AppointmentStatusCompleted = "COMPLETED"
)

const (
	ProductCategoryFood      = "FOOD"
	ProductCategoryToy       = "TOY"
	ProductCategoryAccessory = "ACCESSORY"
)

type User struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Lastname    string    `json:"lastname"`
	Email       string    `gorm:"unique;not null"           json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Role        string    `gorm:"not null;default:USER"     json:"role"`
	CreatedAt   time.Time `json:"created_at"`
}

type Pet struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"  json:"id"`
	OwnerID   uint       `gorm:"index;not null"            json:"owner_id"`
	Name      string     `gorm:"not null"                  json:"name"`
	Species   string     `gorm:"not null"                  json:"species"`
	Breed     string     `json:"breed"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	ImageURL  string     `json:"image_url"`
	CreatedAt time.Time  `json:"created_at"`
}

type ClinicService struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `json:"description"`
	PriceCents  int64     `gorm:"not null"                  json:"price_cents"`
	DurationMin int       `json:"duration_min"`
	IsActive    bool      `gorm:"not null;default:true"     json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	UserID    uint      `gorm:"index;not null"            json:"user_id"`
	PetID     uint      `gorm:"not null"                  json:"pet_id"`
	ServiceID uint      `gorm:"not null"                  json:"service_id"`
	Date      time.Time `gorm:"index;not null"            json:"date"`
	Status    string    `gorm:"not null;default:PENDING"  json:"status"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}

// Stock never goes negative: the completion engine checks and decrements it
// under a row lock inside one transaction.
type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string    `gorm:"not null"                  json:"name"`
	Description string    `json:"description"`
	Category    string    `gorm:"not null"                  json:"category"`
	PriceCents  int64     `gorm:"not null"                  json:"price_cents"`
	Stock       int       `gorm:"not null;default:0"        json:"stock"`
	ImageURL    string    `json:"image_url"`
	IsActive    bool      `gorm:"not null;default:true"     json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// A user has at most one active cart. Carts are never hard-deleted; checkout
// and clear only remove their items.
type Cart struct {
	ID        uint       `gorm:"primaryKey;autoIncrement"               json:"id"`
	UserID    uint       `gorm:"index:idx_cart_user_active;not null"    json:"user_id"`
	IsActive  bool       `gorm:"index:idx_cart_user_active;default:true" json:"is_active"`
	Items     []CartItem `gorm:"foreignKey:CartID"                      json:"items"`
	CreatedAt time.Time  `json:"created_at"`
}

// UnitPriceCents is captured when the line is added and never resynced to the
// live product price.
type CartItem struct {
	ID             uint  `gorm:"primaryKey;autoIncrement"  json:"id"`
	CartID         uint  `gorm:"index;not null"            json:"cart_id"`
	ProductID      uint  `gorm:"not null"                  json:"product_id"`
	Quantity       int   `gorm:"not null;check:quantity>0" json:"quantity"`
	UnitPriceCents int64 `gorm:"not null"                  json:"unit_price_cents"`
}

// Order is immutable after creation except for the PENDING -> COMPLETED
// transition, which also sets PaypalOrderID.
type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderNumber     string      `gorm:"uniqueIndex;not null"      json:"order_number"`
	UserID          uint        `gorm:"index;not null"            json:"user_id"`
	ShippingName    string      `gorm:"not null"                  json:"shipping_name"`
	ShippingEmail   string      `gorm:"not null"                  json:"shipping_email"`
	ShippingPhone   string      `json:"shipping_phone"`
	ShippingAddress string      `gorm:"not null"                  json:"shipping_address"`
	ShippingCity    string      `json:"shipping_city"`
	ShippingNotes   *string     `json:"shipping_notes,omitempty"`
	TotalCents      int64       `gorm:"not null"                  json:"total_cents"`
	Status          string      `gorm:"not null;default:PENDING"  json:"status"`
	PaypalOrderID   *string     `json:"paypal_order_id,omitempty"`
	Items           []OrderItem `gorm:"foreignKey:OrderID"        json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem is a frozen copy of the cart line at order-creation time. The
// product may be renamed, repriced or deleted afterwards without touching
// historical orders; ProductID is kept so completion can resolve the live
// product for the stock decrement.
type OrderItem struct {
	ID             uint   `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID        uint   `gorm:"index;not null"            json:"order_id"`
	ProductID      uint   `gorm:"not null"                  json:"product_id"`
	ProductName    string `gorm:"not null"                  json:"product_name"`
	ProductImage   string `json:"product_image"`
	Quantity       int    `gorm:"not null"                  json:"quantity"`
	UnitPriceCents int64  `gorm:"not null"                  json:"unit_price_cents"`
}
