package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the order store schema.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID           int64      `gorm:"primaryKey;autoIncrement;column:id"`
	Title        string     `gorm:"column:title;not null"`
	Description  string     `gorm:"column:description;not null"`
	Quantity     int        `gorm:"column:quantity"`
	Price        float64    `gorm:"column:price"`
	OrderDate    *time.Time `gorm:"column:order_date;type:date"`
	DeliveryDate *time.Time `gorm:"column:delivery_date;type:date"`
	Status       string     `gorm:"column:status;type:varchar(32);index"`
	CreatedAt    time.Time  `gorm:"column:created_at;index"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (orderRecord) TableName() string { return "orders" }
