package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Divy97/rajawadu/pkg/types"
)

// Order is a customer's purchase intent. Status fields are mutated only by
// the reconciler in response to verified gateway callbacks; order creation
// owns the initial pending/pending state.
type Order struct {
	ID          string  `gorm:"column:id;primary_key;type:uuid" json:"id"`
	GuestUserID *string `gorm:"column:guest_user_id;type:uuid;index" json:"guest_user_id"`

	CustomerName  string `gorm:"column:customer_name;type:varchar(255);not null" json:"customer_name"`
	CustomerEmail string `gorm:"column:customer_email;type:varchar(255);not null" json:"customer_email"`
	CustomerPhone string `gorm:"column:customer_phone;type:varchar(32);not null" json:"customer_phone"`

	ShippingAddress datatypes.JSONType[*types.Address] `gorm:"column:shipping_address;type:jsonb" json:"shipping_address"`
	BillingAddress  datatypes.JSONType[*types.Address] `gorm:"column:billing_address;type:jsonb" json:"billing_address"`

	Subtotal       float64 `gorm:"column:subtotal;type:numeric(12,2);not null" json:"subtotal"`
	ShippingCost   float64 `gorm:"column:shipping_cost;type:numeric(12,2);not null;default:0" json:"shipping_cost"`
	TaxAmount      float64 `gorm:"column:tax_amount;type:numeric(12,2);not null;default:0" json:"tax_amount"`
	DiscountAmount float64 `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0" json:"discount_amount"`
	// Total = Subtotal + ShippingCost + TaxAmount - DiscountAmount.
	Total float64 `gorm:"column:total;type:numeric(12,2);not null" json:"total"`

	OrderStatus   types.OrderStatus   `gorm:"column:order_status;type:varchar(32);not null;default:'pending'" json:"order_status"`
	PaymentStatus types.PaymentStatus `gorm:"column:payment_status;type:varchar(32);not null;default:'pending';index" json:"payment_status"`

	// PayuTxnID is the active gateway transaction id; exactly one per order
	// at a time, refreshed on every initiation attempt.
	PayuTxnID     *string `gorm:"column:payu_txnid;type:varchar(64);uniqueIndex" json:"payu_txnid"`
	PayuMihpayID  *string `gorm:"column:payu_mihpayid;type:varchar(64)" json:"payu_mihpayid"`
	PaymentMethod *string `gorm:"column:payment_method;type:varchar(64)" json:"payment_method"`

	OrderNotes *string `gorm:"column:order_notes;type:text" json:"order_notes"`

	Items []*OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a line item priced at order time.
type OrderItem struct {
	ID        string  `gorm:"column:id;primary_key;type:uuid" json:"id"`
	OrderID   string  `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	ProductID string  `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	Quantity  int     `gorm:"column:quantity;not null" json:"quantity"`
	Price     float64 `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Total     float64 `gorm:"column:total;type:numeric(12,2);not null" json:"total"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }
