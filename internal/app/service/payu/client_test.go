package payu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Divy97/rajawadu/pkg/config"
	"github.com/Divy97/rajawadu/pkg/types"
)

func testClient(t *testing.T) *Client {
	t.Helper()
	c, err := NewClient(&config.Config{
		PayU: config.PayUConfig{
			MerchantKey: testKey,
			Salt:        testSalt,
			TestMode:    true,
			TestURL:     "https://test.payu.in/_payment",
			ProdURL:     "https://secure.payu.in/_payment",
		},
	}, zap.NewNop().Sugar())
	require.NoError(t, err)
	return c
}

func testOrder() *OrderData {
	return &OrderData{
		OrderID:     "ord-123",
		Amount:      499,
		ProductInfo: "Rajawadu Mukhwas Order",
		Customer: CustomerDetails{
			FirstName: "Asha",
			LastName:  "Patel",
			Email:     "asha@example.com",
			Phone:     "9876543210",
			Address: &types.Address{
				Street: "12 Market Road", City: "Ahmedabad", State: "Gujarat",
				Zipcode: "380001", Country: "India",
			},
		},
		Items: []OrderItemData{
			{ProductID: "p1", Name: "Paan Mukhwas", Quantity: 2, Price: 199},
			{ProductID: "p2", Name: "Saunf", Quantity: 1, Price: 101},
		},
	}
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(&config.Config{PayU: config.PayUConfig{MerchantKey: "", Salt: testSalt}}, zap.NewNop().Sugar())
	require.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(&config.Config{PayU: config.PayUConfig{MerchantKey: testKey, Salt: ""}}, zap.NewNop().Sugar())
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestPreparePaymentRequest(t *testing.T) {
	c := testClient(t)
	req, err := c.PreparePaymentRequest(testOrder(), "https://rajawadu.com")
	require.NoError(t, err)

	require.Equal(t, "https://test.payu.in/_payment", req.GatewayURL)
	require.Equal(t, testKey, req.Fields["key"])
	require.Equal(t, "499.00", req.Fields["amount"])
	require.Equal(t, "ord-123", req.Fields["udf1"])
	require.Equal(t, "https://rajawadu.com/api/payment/success", req.Fields["surl"])
	require.Equal(t, "https://rajawadu.com/api/payment/failure", req.Fields["furl"])
	require.Equal(t, "Ahmedabad", req.Fields["city"])
	require.True(t, strings.HasPrefix(req.TxnID(), "RAJA_"))

	// the hash must match a recomputation over the emitted fields
	expected, err := RequestHash(RequestHashParams{
		Key:         req.Fields["key"],
		TxnID:       req.Fields["txnid"],
		Amount:      req.Fields["amount"],
		ProductInfo: req.Fields["productinfo"],
		FirstName:   req.Fields["firstname"],
		Email:       req.Fields["email"],
		UDF1:        req.Fields["udf1"],
	}, testSalt)
	require.NoError(t, err)
	require.Equal(t, expected, req.Fields["hash"])
}

func TestPreparePaymentRequest_FreshTxnIDPerAttempt(t *testing.T) {
	c := testClient(t)
	r1, err := c.PreparePaymentRequest(testOrder(), "https://rajawadu.com")
	require.NoError(t, err)
	r2, err := c.PreparePaymentRequest(testOrder(), "https://rajawadu.com")
	require.NoError(t, err)
	require.NotEqual(t, r1.TxnID(), r2.TxnID())
}

func TestPreparePaymentRequest_SanitizesFields(t *testing.T) {
	c := testClient(t)
	o := testOrder()
	o.ProductInfo = "Order|<with> bad chars"
	o.Customer.Phone = "98765 43210"
	req, err := c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.NoError(t, err)
	require.Equal(t, "Orderwith bad chars", req.Fields["productinfo"])
	require.Equal(t, "9876543210", req.Fields["phone"])
}

func TestPreparePaymentRequest_Validation(t *testing.T) {
	c := testClient(t)

	o := testOrder()
	o.Customer.Email = "not-an-email"
	_, err := c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.ErrorIs(t, err, ErrValidation)

	o = testOrder()
	o.Customer.Phone = "12345"
	_, err = c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.ErrorIs(t, err, ErrValidation)

	o = testOrder()
	o.Amount = 0
	_, err = c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.ErrorIs(t, err, ErrValidation)

	o = testOrder()
	o.Items = nil
	_, err = c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.ErrorIs(t, err, ErrValidation)
}

func TestPreparePaymentRequest_AmountToleranceAbsorbsShipping(t *testing.T) {
	c := testClient(t)

	o := testOrder()
	o.Amount = 499 + 99 // shipping added on top of the item total
	_, err := c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.NoError(t, err)

	o = testOrder()
	o.Amount = 499 + 101
	_, err = c.PreparePaymentRequest(o, "https://rajawadu.com")
	require.ErrorIs(t, err, ErrValidation)
}

func TestVerifyCallback_ValidSignature(t *testing.T) {
	c := testClient(t)
	cb := &CallbackResponse{
		Key: testKey, TxnID: "RAJA_1_ABCDEF", Amount: "499.00",
		ProductInfo: "Rajawadu Mukhwas Order", FirstName: "Asha",
		Email: "asha@example.com", UDF1: "ord-123", Status: "success",
	}
	h, err := ResponseHash(cb, testSalt)
	require.NoError(t, err)
	cb.Hash = h

	res := c.VerifyCallback(cb)
	require.True(t, res.Valid)
	require.Equal(t, types.GatewayStatusSuccess, res.Status)
}

func TestPrepareThenVerify_RoundTrip(t *testing.T) {
	c := testClient(t)
	req, err := c.PreparePaymentRequest(testOrder(), "https://rajawadu.com")
	require.NoError(t, err)

	// the gateway echoes back the signed fields with its outcome and a
	// freshly computed response hash
	cb := &CallbackResponse{
		Key:         req.Fields["key"],
		TxnID:       req.Fields["txnid"],
		Amount:      req.Fields["amount"],
		ProductInfo: req.Fields["productinfo"],
		FirstName:   req.Fields["firstname"],
		Email:       req.Fields["email"],
		UDF1:        req.Fields["udf1"],
		Status:      "success",
	}
	cb.Hash, err = ResponseHash(cb, testSalt)
	require.NoError(t, err)

	res := c.VerifyCallback(cb)
	require.True(t, res.Valid)
	require.Equal(t, types.GatewayStatusSuccess, res.Status)
	require.Equal(t, "ord-123", cb.UDF1)
}

func TestVerifyCallback_CaseInsensitiveHashCompare(t *testing.T) {
	c := testClient(t)
	cb := &CallbackResponse{
		Key: testKey, TxnID: "RAJA_1_ABCDEF", Amount: "499.00",
		ProductInfo: "p", FirstName: "f", Email: "e@x.co", Status: "success",
	}
	h, err := ResponseHash(cb, testSalt)
	require.NoError(t, err)
	cb.Hash = strings.ToUpper(h)

	require.True(t, c.VerifyCallback(cb).Valid)
}

func TestVerifyCallback_TamperedPayload(t *testing.T) {
	c := testClient(t)
	cb := &CallbackResponse{
		Key: testKey, TxnID: "RAJA_1_ABCDEF", Amount: "499.00",
		ProductInfo: "p", FirstName: "f", Email: "e@x.co",
		UDF1: "ord-123", Status: "failure",
	}
	h, err := ResponseHash(cb, testSalt)
	require.NoError(t, err)
	cb.Hash = h
	cb.Status = "success" // attacker flips the claimed status

	res := c.VerifyCallback(cb)
	require.False(t, res.Valid)
	require.Equal(t, types.GatewayStatusFailure, res.Status)
	require.Equal(t, "verification_failed", res.Reason)
}

func TestVerifyCallback_MissingHash(t *testing.T) {
	c := testClient(t)
	cb := &CallbackResponse{
		Key: testKey, TxnID: "RAJA_1_ABCDEF", Amount: "499.00",
		ProductInfo: "p", FirstName: "f", Email: "e@x.co", Status: "success",
	}
	require.False(t, c.VerifyCallback(cb).Valid)
}

func TestVerifyCallback_StatusMapping(t *testing.T) {
	c := testClient(t)
	for claimed, want := range map[string]types.GatewayStatus{
		"success": types.GatewayStatusSuccess,
		"SUCCESS": types.GatewayStatusSuccess,
		"pending": types.GatewayStatusPending,
		"failure": types.GatewayStatusFailure,
		"dropped": types.GatewayStatusFailure,
	} {
		cb := &CallbackResponse{
			Key: testKey, TxnID: "t1", Amount: "1.00",
			ProductInfo: "p", FirstName: "f", Email: "e@x.co", Status: claimed,
		}
		h, err := ResponseHash(cb, testSalt)
		require.NoError(t, err)
		cb.Hash = h

		res := c.VerifyCallback(cb)
		require.True(t, res.Valid, "status %q", claimed)
		require.Equal(t, want, res.Status, "status %q", claimed)
	}
}
