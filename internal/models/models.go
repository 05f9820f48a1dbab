package models

import (
	"time"
)

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Username     string    `gorm:"index;not null"                json:"username"`
	Email        string    `gorm:"uniqueIndex;not null"          json:"email"`
	PasswordHash string    `gorm:"not null"                      json:"-"`
	Role         Role      `gorm:"not null;default:user"         json:"role"`
	Active       bool      `gorm:"not null;default:true"         json:"active"`
	CreatedAt    time.Time `gorm:"autoCreateTime"                json:"created_at"`
}

type Product struct {
	ID          uint           `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string         `gorm:"index;not null"            json:"name"`
	Description string         `json:"description"`
	Price       float64        `gorm:"not null"                  json:"price"`
	NewPrice    float64        `gorm:"not null;default:0"        json:"new_price"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"            json:"created_at"`
	Images      []ProductImage `gorm:"foreignKey:ProductID"      json:"images"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"    json:"id"`
	ProductID uint   `gorm:"index;not null"              json:"product_id"`
	ImageURL  string `gorm:"not null"                    json:"image_url"`
}

type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint        `gorm:"index;not null"           json:"user_id"`
	Status    string      `gorm:"not null"                 json:"status"`
	Total     float64     `gorm:"not null"                 json:"total"`
	CreatedAt time.Time   `gorm:"autoCreateTime"           json:"created_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderID"       json:"items"`
}

type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"    json:"id"`
	OrderID   uint    `gorm:"index;not null"              json:"order_id"`
	ProductID uint    `gorm:"not null"                    json:"product_id"`
	Quantity  uint    `gorm:"default:1;check:quantity>0"  json:"quantity"`
	UnitPrice float64 `gorm:"not null"                    json:"unit_price"`
	LineTotal float64 `gorm:"not null"                    json:"line_total"`
}

const OrderStatusNew = "new"
