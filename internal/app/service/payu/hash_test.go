package payu

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testKey  = "gtKFFx"
	testSalt = "eCwWELxi"
)

func TestRequestHash_KnownVector(t *testing.T) {
	p := RequestHashParams{
		Key:         testKey,
		TxnID:       "RAJA_1700000000000_AB12CD",
		Amount:      "499.00",
		ProductInfo: "Rajawadu Mukhwas Order",
		FirstName:   "Asha",
		Email:       "asha@example.com",
		UDF1:        "ord-123",
	}
	got, err := RequestHash(p, testSalt)
	require.NoError(t, err)
	require.Equal(t, "c75dfb7a7325a1db1a58d6a8760671c8ecb149d19228cdfc5631d1ad90f14e8977f7221f5271e8e8b68e56991d1df4181ff48c28e3f36c175db1f145d214c0b9", got)
}

func TestRequestHash_Deterministic(t *testing.T) {
	p := RequestHashParams{
		Key:         testKey,
		TxnID:       "RAJA_1_XYZXYZ",
		Amount:      "10.00",
		ProductInfo: "order",
		FirstName:   "A",
		Email:       "a@b.co",
	}
	h1, err := RequestHash(p, testSalt)
	require.NoError(t, err)
	h2, err := RequestHash(p, testSalt)
	require.NoError(t, err)
	require.Equal(t, h1, h2)
	require.Len(t, h1, 128)
}

func TestRequestHash_EmptySalt(t *testing.T) {
	p := RequestHashParams{Key: testKey, TxnID: "t", Amount: "1.00", ProductInfo: "p", FirstName: "f", Email: "e@x.co"}
	_, err := RequestHash(p, "")
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestRequestHash_MissingRequiredField(t *testing.T) {
	p := RequestHashParams{Key: testKey, TxnID: "t", Amount: "1.00", ProductInfo: "p", FirstName: "f"}
	_, err := RequestHash(p, testSalt)
	require.ErrorIs(t, err, ErrValidation)
	require.Contains(t, err.Error(), "email")
}

func TestResponseHash_KnownVector(t *testing.T) {
	r := &CallbackResponse{
		Key:         testKey,
		TxnID:       "RAJA_1700000000000_AB12CD",
		Amount:      "499.00",
		ProductInfo: "Rajawadu Mukhwas Order",
		FirstName:   "Asha",
		Email:       "asha@example.com",
		UDF1:        "ord-123",
		Status:      "success",
	}
	got, err := ResponseHash(r, testSalt)
	require.NoError(t, err)
	require.Equal(t, "e851d431ab3992ccf1c11c54434a8533631d25523684462a941165ae53a74dc10ca138832ba1f3cf979d9c49f0bbcea00ebb74ba88419a186cfb2cc73d6ba6e2", got)
}

func TestResponseHash_FieldOrderIsReversed(t *testing.T) {
	r := &CallbackResponse{
		Key: testKey, TxnID: "tx1", Amount: "5.00", ProductInfo: "p",
		FirstName: "f", Email: "e@x.co", Status: "success",
	}
	reqEquivalent := RequestHashParams{
		Key: testKey, TxnID: "tx1", Amount: "5.00", ProductInfo: "p",
		FirstName: "f", Email: "e@x.co",
	}
	respHash, err := ResponseHash(r, testSalt)
	require.NoError(t, err)
	reqHash, err := RequestHash(reqEquivalent, testSalt)
	require.NoError(t, err)
	require.NotEqual(t, reqHash, respHash)
}

func TestResponseHash_SensitiveToEveryField(t *testing.T) {
	base := func() *CallbackResponse {
		return &CallbackResponse{
			Key: testKey, TxnID: "tx1", Amount: "5.00", ProductInfo: "p",
			FirstName: "f", Email: "e@x.co", UDF1: "ord-1", Status: "success",
		}
	}
	orig, err := ResponseHash(base(), testSalt)
	require.NoError(t, err)

	mutations := map[string]func(*CallbackResponse){
		"status": func(r *CallbackResponse) { r.Status = "failure" },
		"amount": func(r *CallbackResponse) { r.Amount = "500.00" },
		"udf1":   func(r *CallbackResponse) { r.UDF1 = "ord-2" },
		"email":  func(r *CallbackResponse) { r.Email = "evil@x.co" },
	}
	for name, mutate := range mutations {
		r := base()
		mutate(r)
		h, err := ResponseHash(r, testSalt)
		require.NoError(t, err)
		require.NotEqual(t, orig, h, "mutation of %s must change the hash", name)
	}
}

func TestResponseHash_MissingRequiredFields(t *testing.T) {
	_, err := ResponseHash(nil, testSalt)
	require.ErrorIs(t, err, ErrValidation)

	_, err = ResponseHash(&CallbackResponse{TxnID: "t", Key: testKey}, testSalt)
	require.ErrorIs(t, err, ErrValidation)

	_, err = ResponseHash(&CallbackResponse{Status: "success", Key: testKey}, testSalt)
	require.ErrorIs(t, err, ErrValidation)

	_, err = ResponseHash(&CallbackResponse{Status: "success", TxnID: "t"}, testSalt)
	require.ErrorIs(t, err, ErrValidation)
}
