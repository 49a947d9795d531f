package handlers

import (
	"github.com/Divy97/rajawadu/internal/app/service/reconcile"
	"github.com/Divy97/rajawadu/pkg/response"
)

// RespOK is a generic OK envelope for endpoints returning no specific data.
type RespOK struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    interface{}              `json:"data"`
}

// RespListPaymentTransactions wraps the admin audit listing in the standard envelope.
type RespListPaymentTransactions struct {
	Code    response.APIResponseCode           `json:"code"`
	Message string                             `json:"message"`
	Data    reconcile.ScanTransactionsResponse `json:"data"`
}
