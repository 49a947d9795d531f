package payu

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Divy97/rajawadu/pkg/config"
	"github.com/Divy97/rajawadu/pkg/types"
)

// AmountTolerance is the fixed currency slack (INR) allowed between the order
// total and the line-item sum at request-building time, absorbing shipping
// and tax added on top of the subtotal. The callback-side amount comparison
// in the reconciler stays strict.
const AmountTolerance = 100.0

const txnIDPrefix = "RAJA"

// Client prepares signed payment-initiation requests and verifies callback
// signatures. Stateless beyond configuration; safe for concurrent use.
type Client struct {
	cfg *config.PayUConfig
	log *zap.SugaredLogger
}

// NewClient fails fast when merchant credentials are missing so an
// unconfigured deployment can never silently initiate payments.
func NewClient(cfg *config.Config, log *zap.SugaredLogger) (*Client, error) {
	if cfg.PayU.MerchantKey == "" || cfg.PayU.Salt == "" {
		return nil, ErrNotConfigured
	}
	return &Client{cfg: &cfg.PayU, log: log}, nil
}

func (c *Client) validateOrderData(o *OrderData) error {
	if o.OrderID == "" {
		return fmt.Errorf("%w: order id is required", ErrValidation)
	}
	if o.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", ErrValidation)
	}
	if o.ProductInfo == "" {
		return fmt.Errorf("%w: product info is required", ErrValidation)
	}
	if o.Customer.FirstName == "" {
		return fmt.Errorf("%w: customer first name is required", ErrValidation)
	}
	if !ValidEmail(o.Customer.Email) {
		return fmt.Errorf("%w: valid email address is required", ErrValidation)
	}
	if !ValidPhone(o.Customer.Phone) {
		return fmt.Errorf("%w: valid phone number is required", ErrValidation)
	}
	if len(o.Items) == 0 {
		return fmt.Errorf("%w: order items are required", ErrValidation)
	}

	var itemTotal float64
	for _, it := range o.Items {
		itemTotal += it.Price * float64(it.Quantity)
	}
	diff := o.Amount - itemTotal
	if diff < 0 {
		diff = -diff
	}
	if diff > AmountTolerance {
		return fmt.Errorf("%w: amount mismatch: expected %.2f, got %.2f", ErrValidation, itemTotal, o.Amount)
	}
	return nil
}

// PreparePaymentRequest validates and sanitizes the order, assigns a fresh
// transaction id, signs the field set and returns the form ready for
// auto-submission to the gateway. The order id rides in udf1 as the sole
// correlation token for asynchronous callbacks; it is re-validated against
// the database when the callback arrives, never trusted blindly.
func (c *Client) PreparePaymentRequest(o *OrderData, siteURL string) (*PaymentRequest, error) {
	if err := c.validateOrderData(o); err != nil {
		return nil, err
	}

	txnid := GenerateTransactionID(txnIDPrefix)
	amount, err := FormatAmount(o.Amount)
	if err != nil {
		return nil, err
	}

	params := RequestHashParams{
		Key:         c.cfg.MerchantKey,
		TxnID:       txnid,
		Amount:      amount,
		ProductInfo: SanitizeInput(o.ProductInfo),
		FirstName:   SanitizeInput(o.Customer.FirstName),
		Email:       SanitizeInput(o.Customer.Email),
		UDF1:        SanitizeInput(o.OrderID),
	}

	hash, err := RequestHash(params, c.cfg.Salt)
	if err != nil {
		return nil, err
	}

	fields := map[string]string{
		"key":         params.Key,
		"txnid":       params.TxnID,
		"amount":      params.Amount,
		"productinfo": params.ProductInfo,
		"firstname":   params.FirstName,
		"lastname":    SanitizeInput(o.Customer.LastName),
		"email":       params.Email,
		"phone":       DigitsOnly(o.Customer.Phone),
		"surl":        siteURL + "/api/payment/success",
		"furl":        siteURL + "/api/payment/failure",
		"udf1":        params.UDF1,
		"udf2":        params.UDF2,
		"udf3":        params.UDF3,
		"udf4":        params.UDF4,
		"udf5":        params.UDF5,
		"hash":        hash,
	}
	if addr := o.Customer.Address; addr != nil {
		fields["address1"] = SanitizeInput(addr.Street)
		fields["city"] = SanitizeInput(addr.City)
		fields["state"] = SanitizeInput(addr.State)
		fields["zipcode"] = SanitizeInput(addr.Zipcode)
		fields["country"] = SanitizeInput(addr.Country)
	}

	return &PaymentRequest{GatewayURL: c.cfg.GatewayURL(), Fields: fields}, nil
}

// VerifyCallback recomputes the response hash from the callback's own field
// values and compares it case-insensitively with the received one. Any
// mismatch means the payload is untrusted: the result is a failure outcome
// regardless of the status the gateway claims.
func (c *Client) VerifyCallback(r *CallbackResponse) *VerificationResult {
	calculated, err := ResponseHash(r, c.cfg.Salt)
	if err != nil {
		c.log.Errorw("payu_response_hash_error", "error", err.Error())
		return &VerificationResult{Valid: false, Status: types.GatewayStatusFailure, Reason: "verification_failed"}
	}
	if r.Hash == "" || !strings.EqualFold(calculated, r.Hash) {
		c.log.Errorw("payu_hash_mismatch", "txnid", r.TxnID, "claimed_status", r.Status)
		return &VerificationResult{Valid: false, Status: types.GatewayStatusFailure, Reason: "verification_failed"}
	}

	switch strings.ToLower(r.Status) {
	case "success":
		return &VerificationResult{Valid: true, Status: types.GatewayStatusSuccess}
	case "pending":
		return &VerificationResult{Valid: true, Status: types.GatewayStatusPending}
	default:
		return &VerificationResult{Valid: true, Status: types.GatewayStatusFailure}
	}
}
