package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitiatePaymentSuccess(t *testing.T) {
	var gotForm map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gwprocess/v4/api.php", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotForm = map[string]string{
			"store_id":     r.FormValue("store_id"),
			"total_amount": r.FormValue("total_amount"),
			"tran_id":      r.FormValue("tran_id"),
			"currency":     r.FormValue("currency"),
		}
		json.NewEncoder(w).Encode(InitiateResponse{
			Status:         "SUCCESS",
			GatewayPageURL: "https://pay.example.com/session/abc",
		})
	}))
	defer server.Close()

	client := NewClient("store1", "pass1", server.URL)
	resp, err := client.InitiatePayment(context.Background(), InitiateRequest{
		TotalAmount:   15.0,
		Currency:      "BDT",
		TransactionID: "tran-123",
		CustomerEmail: "customer@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, "https://pay.example.com/session/abc", resp.GatewayPageURL)
	assert.Equal(t, "store1", gotForm["store_id"])
	assert.Equal(t, "15.00", gotForm["total_amount"])
	assert.Equal(t, "tran-123", gotForm["tran_id"])
	assert.Equal(t, "BDT", gotForm["currency"])
}

func TestInitiatePaymentRejected(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(InitiateResponse{
			Status:       "FAILED",
			FailedReason: "store credentials invalid",
		})
	}))
	defer server.Close()

	client := NewClient("store1", "wrong", server.URL)
	resp, err := client.InitiatePayment(context.Background(), InitiateRequest{TotalAmount: 10})

	assert.Nil(t, resp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store credentials invalid")
}

func TestInitiatePaymentGatewayDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient("store1", "pass1", server.URL)
	_, err := client.InitiatePayment(context.Background(), InitiateRequest{TotalAmount: 10})

	require.Error(t, err)
}

func TestValidatePayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/validator/api/validationserverAPI.php", r.URL.Path)
		query := r.URL.Query()
		require.Equal(t, "val-1", query.Get("val_id"))
		require.Equal(t, "store1", query.Get("store_id"))
		require.Equal(t, "pass1", query.Get("store_passwd"))
		require.Equal(t, "json", query.Get("format"))
		json.NewEncoder(w).Encode(ValidationResponse{
			Status:        "VALID",
			TransactionID: "tran-123",
			Amount:        "15.00",
		})
	}))
	defer server.Close()

	client := NewClient("store1", "pass1", server.URL)
	resp, err := client.ValidatePayment(context.Background(), "val-1")

	require.NoError(t, err)
	assert.Equal(t, "VALID", resp.Status)
	assert.Equal(t, "tran-123", resp.TransactionID)
}

func TestValidatePaymentInvalidStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ValidationResponse{Status: "INVALID_TRANSACTION"})
	}))
	defer server.Close()

	client := NewClient("store1", "pass1", server.URL)
	resp, err := client.ValidatePayment(context.Background(), "val-bogus")

	// the caller decides what a non-VALID status means
	require.NoError(t, err)
	assert.Equal(t, "INVALID_TRANSACTION", resp.Status)
}
