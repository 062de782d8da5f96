package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	ErrTitleRequired        = errors.New("order title is required")
	ErrDescriptionRequired  = errors.New("order description is required")
	ErrInvalidQuantity      = errors.New("quantity must not be negative")
	ErrInvalidPrice         = errors.New("price must not be negative")
	ErrInvalidDate          = errors.New("date is invalid")
	ErrDeliveryBeforeOrder  = errors.New("delivery date cannot be before order date")
	ErrInvalidStatus        = errors.New("order status is invalid")
	ErrTransitionNotAllowed = errors.New("status transition is not allowed")
)

// Draft carries the client-editable order fields. The store assigns id and status.
type Draft struct {
	Title        string  `validate:"required"`
	Description  string  `validate:"required"`
	Quantity     int     `validate:"gte=0"`
	Price        float64 `validate:"gte=0"`
	OrderDate    Date
	DeliveryDate Date
}

// Order models a purchase managed by the remote order store.
type Order struct {
	ID           int64
	Title        string
	Description  string
	Quantity     int
	Price        float64
	OrderDate    Date
	DeliveryDate Date
	Status       Status
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(draftDateOrder, Draft{})
	return v
}

func draftDateOrder(sl validator.StructLevel) {
	d := sl.Current().Interface().(Draft)
	if d.OrderDate.IsZero() || d.DeliveryDate.IsZero() {
		return
	}
	if d.DeliveryDate.Before(d.OrderDate) {
		sl.ReportError(d.DeliveryDate, "DeliveryDate", "DeliveryDate", "delivery_after_order", d.OrderDate.String())
	}
}

// Normalize trims surrounding whitespace from the text fields.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	return d
}

// Validate enforces field rules and delivery >= order date when both are set.
func (d Draft) Validate() error {
	if err := validate.Struct(d.Normalize()); err != nil {
		return translate(err)
	}
	return nil
}

// Draft extracts the editable fields.
func (o Order) Draft() Draft {
	return Draft{
		Title:        o.Title,
		Description:  o.Description,
		Quantity:     o.Quantity,
		Price:        o.Price,
		OrderDate:    o.OrderDate,
		DeliveryDate: o.DeliveryDate,
	}
}

// ApplyDraft replaces every editable field, leaving id and status untouched.
func (o Order) ApplyDraft(d Draft) Order {
	o.Title = d.Title
	o.Description = d.Description
	o.Quantity = d.Quantity
	o.Price = d.Price
	o.OrderDate = d.OrderDate
	o.DeliveryDate = d.DeliveryDate
	return o
}

// Validate checks the editable fields plus the status enumeration.
func (o Order) Validate() error {
	if err := o.Draft().Validate(); err != nil {
		return err
	}
	if !o.Status.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, o.Status)
	}
	return nil
}

// WithStatus returns a copy whose only difference is the status.
func (o Order) WithStatus(status Status) Order {
	o.Status = status
	return o
}

// SearchText joins every field value, lower-cased, in declaration order.
func (o Order) SearchText() string {
	id := ""
	if o.ID != 0 {
		id = strconv.FormatInt(o.ID, 10)
	}
	fields := []string{
		id,
		o.Title,
		o.Description,
		strconv.Itoa(o.Quantity),
		strconv.FormatFloat(o.Price, 'f', -1, 64),
		o.OrderDate.String(),
		o.DeliveryDate.String(),
		string(o.Status),
	}
	return strings.ToLower(strings.Join(fields, " "))
}

// Matches reports whether the lower-cased query is a substring of SearchText.
func (o Order) Matches(query string) bool {
	q := strings.ToLower(query)
	if q == "" {
		return true
	}
	return strings.Contains(o.SearchText(), q)
}

func translate(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}
	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		switch fe.Field() {
		case "Title":
			errs = append(errs, ErrTitleRequired)
		case "Description":
			errs = append(errs, ErrDescriptionRequired)
		case "Quantity":
			errs = append(errs, ErrInvalidQuantity)
		case "Price":
			errs = append(errs, ErrInvalidPrice)
		case "DeliveryDate":
			errs = append(errs, ErrDeliveryBeforeOrder)
		default:
			errs = append(errs, fmt.Errorf("%s failed %q validation", fe.Field(), fe.Tag()))
		}
	}
	return errors.Join(errs...)
}
