package models

import (
	"time"

	"gorm.io/datatypes"

	"github.com/Divy97/rajawadu/pkg/types"
)

// PaymentTransaction is the audit record of every gateway interaction,
// upserted by txnid so repeated deliveries of the same outcome (redirect +
// webhook + webhook retries) collapse into one row.
//
// Amount is the amount the gateway reported, not the order total; the two
// are compared by the reconciler, never conflated here.
type PaymentTransaction struct {
	ID      string `gorm:"column:id;primary_key;type:uuid" json:"id"`
	OrderID string `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	// PayuTxnID is the merchant-generated gateway transaction id; the
	// unique key for upsert-on-conflict.
	PayuTxnID    string  `gorm:"column:payu_txnid;type:varchar(64);not null;uniqueIndex" json:"payu_txnid"`
	PayuMihpayID *string `gorm:"column:payu_mihpayid;type:varchar(64)" json:"payu_mihpayid"`

	Amount float64             `gorm:"column:amount;type:numeric(12,2);not null" json:"amount"`
	Status types.PaymentStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`

	PaymentMethod *string `gorm:"column:payment_method;type:varchar(64)" json:"payment_method"`
	PaymentSource *string `gorm:"column:payment_source;type:varchar(64)" json:"payment_source"`
	BankRefNo     *string `gorm:"column:bank_ref_no;type:varchar(64)" json:"bank_ref_no"`
	BankRefNum    *string `gorm:"column:bank_ref_num;type:varchar(64)" json:"bank_ref_num"`
	ErrorCode     *string `gorm:"column:error_code;type:varchar(64)" json:"error_code"`
	ErrorMessage  *string `gorm:"column:error_message;type:text" json:"error_message"`

	// RawResponse keeps the full gateway payload for audit and dispute
	// resolution.
	RawResponse datatypes.JSON `gorm:"column:raw_response;type:jsonb" json:"raw_response"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PaymentTransaction) TableName() string { return "payment_transactions" }
