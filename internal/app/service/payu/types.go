package payu

import "github.com/Divy97/rajawadu/pkg/types"

// OrderData is the order snapshot handed to PreparePaymentRequest by the
// payment-initiation handler.
type OrderData struct {
	OrderID     string
	Amount      float64
	ProductInfo string
	Customer    CustomerDetails
	Items       []OrderItemData
}

type CustomerDetails struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   *types.Address
}

type OrderItemData struct {
	ProductID string
	Name      string
	Quantity  int
	Price     float64
}

// PaymentRequest is the complete signed form field set, ready to be
// auto-submitted as a POST to GatewayURL.
type PaymentRequest struct {
	GatewayURL string            `json:"gateway_url"`
	Fields     map[string]string `json:"fields"`
}

// TxnID returns the transaction id assigned during preparation.
func (p *PaymentRequest) TxnID() string { return p.Fields["txnid"] }

// CallbackResponse is the form payload PayU posts to the success/failure
// redirect endpoints and the webhook. Required fields are status, txnid and
// hash; everything else is optional and attacker-observable until the hash
// is verified. udf1 carries the order id set during initiation.
type CallbackResponse struct {
	MihpayID    string `form:"mihpayid" json:"mihpayid"`
	Mode        string `form:"mode" json:"mode"`
	Status      string `form:"status" json:"status"`
	Key         string `form:"key" json:"key"`
	TxnID       string `form:"txnid" json:"txnid"`
	Amount      string `form:"amount" json:"amount"`
	AddedOn     string `form:"addedon" json:"addedon"`
	ProductInfo string `form:"productinfo" json:"productinfo"`
	FirstName   string `form:"firstname" json:"firstname"`
	LastName    string `form:"lastname" json:"lastname"`
	Address1    string `form:"address1" json:"address1"`
	Address2    string `form:"address2" json:"address2"`
	City        string `form:"city" json:"city"`
	State       string `form:"state" json:"state"`
	Country     string `form:"country" json:"country"`
	Zipcode     string `form:"zipcode" json:"zipcode"`
	Email       string `form:"email" json:"email"`
	Phone       string `form:"phone" json:"phone"`

	UDF1  string `form:"udf1" json:"udf1"`
	UDF2  string `form:"udf2" json:"udf2"`
	UDF3  string `form:"udf3" json:"udf3"`
	UDF4  string `form:"udf4" json:"udf4"`
	UDF5  string `form:"udf5" json:"udf5"`
	UDF6  string `form:"udf6" json:"udf6"`
	UDF7  string `form:"udf7" json:"udf7"`
	UDF8  string `form:"udf8" json:"udf8"`
	UDF9  string `form:"udf9" json:"udf9"`
	UDF10 string `form:"udf10" json:"udf10"`

	Hash string `form:"hash" json:"hash"`

	PaymentSource  string `form:"payment_source" json:"payment_source"`
	PGType         string `form:"PG_TYPE" json:"PG_TYPE"`
	BankRefNo      string `form:"bank_ref_no" json:"bank_ref_no"`
	BankRefNum     string `form:"bank_ref_num" json:"bank_ref_num"`
	BankCode       string `form:"bankcode" json:"bankcode"`
	Error          string `form:"error" json:"error"`
	ErrorMessage   string `form:"error_Message" json:"error_Message"`
	NetAmountDebit string `form:"net_amount_debit" json:"net_amount_debit"`
	Unmapped       string `form:"unmappedstatus" json:"unmappedstatus"`
	SURL           string `form:"surl" json:"surl"`
	FURL           string `form:"furl" json:"furl"`
}

// VerificationResult is the outcome of hash verification on a callback.
type VerificationResult struct {
	Valid  bool
	Status types.GatewayStatus
	Reason string
}
