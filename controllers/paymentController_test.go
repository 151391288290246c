package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v76"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		price float64
		want  int64
	}{
		{10.00, 1000},
		{5.00, 500},
		{10.999, 1099}, // truncated, not rounded
		{0.5, 50},
		{0, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, toMinorUnits(tt.price), "price %v", tt.price)
	}
}

func TestCreatePaymentIntentLeavesGlobalKeyAlone(t *testing.T) {
	orig := createIntent
	t.Cleanup(func() { createIntent = orig })

	stripe.Key = "configured-at-startup"
	t.Cleanup(func() { stripe.Key = "" })

	var gotAmount int64
	createIntent = func(params *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error) {
		gotAmount = *params.Amount
		return &stripe.PaymentIntent{ClientSecret: "cs_test_123"}, nil
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":10.999}`))
	CreatePaymentIntent(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(1099), gotAmount)
	assert.Contains(t, rec.Body.String(), "cs_test_123")
	// the handler must not write the package global per request
	assert.Equal(t, "configured-at-startup", stripe.Key)
}

func TestCreatePaymentIntentRejectsNonPositivePrice(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/create-payment-intent", strings.NewReader(`{"price":0}`))
	CreatePaymentIntent(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToObjectIDs(t *testing.T) {
	a := primitive.NewObjectID()
	b := primitive.NewObjectID()

	ids, err := toObjectIDs([]string{a.Hex(), b.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{a, b}, ids)

	_, err = toObjectIDs([]string{a.Hex(), "not-hex"})
	assert.Error(t, err)

	ids, err = toObjectIDs(nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
