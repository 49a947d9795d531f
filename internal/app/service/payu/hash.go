package payu

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"strings"
)

// RequestHashParams is the ordered field set signed for an outbound payment
// initiation. Field order and the "|" separator are part of PayU's wire
// contract and must be reproduced exactly.
type RequestHashParams struct {
	Key         string
	TxnID       string
	Amount      string
	ProductInfo string
	FirstName   string
	Email       string
	UDF1        string
	UDF2        string
	UDF3        string
	UDF4        string
	UDF5        string
}

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return strings.ToLower(hex.EncodeToString(sum[:]))
}

// RequestHash computes the payment-initiation signature:
// sha512(key|txnid|amount|productinfo|firstname|email|udf1|udf2|udf3|udf4|udf5||||||salt)
// as lowercase hex.
func RequestHash(p RequestHashParams, salt string) (string, error) {
	if salt == "" {
		return "", ErrNotConfigured
	}
	required := map[string]string{
		"key":         p.Key,
		"txnid":       p.TxnID,
		"amount":      p.Amount,
		"productinfo": p.ProductInfo,
		"firstname":   p.FirstName,
		"email":       p.Email,
	}
	for _, field := range []string{"key", "txnid", "amount", "productinfo", "firstname", "email"} {
		if required[field] == "" {
			return "", fmt.Errorf("%w: missing required field: %s", ErrValidation, field)
		}
	}

	parts := []string{
		p.Key,
		p.TxnID,
		p.Amount,
		p.ProductInfo,
		p.FirstName,
		p.Email,
		p.UDF1,
		p.UDF2,
		p.UDF3,
		p.UDF4,
		p.UDF5,
		"", "", "", "", "", // fixed empty placeholders per PayU spec
		salt,
	}
	return sha512Hex(strings.Join(parts, "|")), nil
}

// ResponseHash computes the verification signature for an inbound callback,
// over the reverse-ordered field set:
// sha512(salt|status||||||udf5|udf4|udf3|udf2|udf1|email|firstname|productinfo|amount|txnid|key)
// as lowercase hex.
func ResponseHash(r *CallbackResponse, salt string) (string, error) {
	if salt == "" {
		return "", ErrNotConfigured
	}
	if r == nil {
		return "", fmt.Errorf("%w: nil callback", ErrValidation)
	}
	if r.Status == "" {
		return "", fmt.Errorf("%w: missing required field: status", ErrValidation)
	}
	if r.TxnID == "" {
		return "", fmt.Errorf("%w: missing required field: txnid", ErrValidation)
	}
	if r.Key == "" {
		return "", fmt.Errorf("%w: missing required field: key", ErrValidation)
	}

	parts := []string{
		salt,
		r.Status,
		"", "", "", "", "",
		r.UDF5,
		r.UDF4,
		r.UDF3,
		r.UDF2,
		r.UDF1,
		r.Email,
		r.FirstName,
		r.ProductInfo,
		r.Amount,
		r.TxnID,
		r.Key,
	}
	return sha512Hex(strings.Join(parts, "|")), nil
}
