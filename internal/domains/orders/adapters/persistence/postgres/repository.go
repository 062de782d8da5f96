package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/domain"
	"github.com/Apurer/go-gin-order-dashboard/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle
// and schema (see platform/migrations).
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// orderRecord maps the order aggregate to a relational table.
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

// Save inserts a new order (id 0) or replaces an existing one.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	if err := order.Validate(); err != nil {
		return nil, err
	}
	record := toRecord(order)
	tx := r.db.WithContext(ctx)
	if record.ID != 0 {
		tx = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.Assignments(map[string]any{
				"title":         record.Title,
				"description":   record.Description,
				"quantity":      record.Quantity,
				"price":         record.Price,
				"order_date":    record.OrderDate,
				"delivery_date": record.DeliveryDate,
				"status":        record.Status,
				"updated_at":    gorm.Expr("NOW()"),
			}),
		})
	}
	if err := tx.Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes an order by identifier.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&orderRecord{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrNotFound
	}
	return nil
}

// List returns all orders by ascending id.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		orders = append(orders, records[i].toDomain())
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) orderRecord {
	return orderRecord{
		ID:           order.ID,
		Title:        order.Title,
		Description:  order.Description,
		Quantity:     order.Quantity,
		Price:        order.Price,
		OrderDate:    datePtr(order.OrderDate),
		DeliveryDate: datePtr(order.DeliveryDate),
		Status:       string(order.Status),
	}
}

func (r orderRecord) toDomain() *domain.Order {
	return &domain.Order{
		ID:           r.ID,
		Title:        r.Title,
		Description:  r.Description,
		Quantity:     r.Quantity,
		Price:        r.Price,
		OrderDate:    fromDatePtr(r.OrderDate),
		DeliveryDate: fromDatePtr(r.DeliveryDate),
		Status:       domain.Status(r.Status),
	}
}

func datePtr(d domain.Date) *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time()
	return &t
}

func fromDatePtr(t *time.Time) domain.Date {
	if t == nil {
		return domain.Date{}
	}
	return domain.DateOf(t.UTC())
}
