package models

import (
	"time"

	"gorm.io/datatypes"
)

type PaymentCallbackLogStatus string

const (
	PaymentCallbackLogStatusReceived     PaymentCallbackLogStatus = "received"
	PaymentCallbackLogStatusHandled      PaymentCallbackLogStatus = "handled"
	PaymentCallbackLogStatusHandleFailed PaymentCallbackLogStatus = "handle_failed"
)

// PaymentCallbackLog records every callback/webhook delivery, including ones
// that fail hash verification. Saved asynchronously so it never blocks the
// gateway's fast ack.
type PaymentCallbackLog struct {
	ID        string                   `gorm:"column:id;type:uuid;primary_key" json:"id"`
	Source    string                   `gorm:"column:source;type:varchar(32);not null" json:"source"`
	TraceID   string                   `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	PayuTxnID string                   `gorm:"column:payu_txnid;type:varchar(64);index" json:"payu_txnid"`
	OrderID   *string                  `gorm:"column:order_id;type:uuid" json:"order_id"`
	Data      datatypes.JSON           `gorm:"column:data;type:jsonb" json:"data"`
	Result    *datatypes.JSON          `gorm:"column:result;type:jsonb" json:"result"`
	Status    PaymentCallbackLogStatus `gorm:"column:status;type:varchar(32);not null" json:"status"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

func (PaymentCallbackLog) TableName() string { return "payment_callback_log" }
