package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/Tahsin974/bistro-boss-server/models"
)

func authedRequest(method, target, email string, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(context.WithValue(req.Context(), middleware.EmailKey, email))
}

// runs transactional closures directly, without a live session
func stubTransactions(t *testing.T) {
	t.Helper()
	orig := runInTransaction
	runInTransaction = func(ctx context.Context, fn func(mongo.SessionContext) (interface{}, error)) (interface{}, error) {
		return fn(mongo.NewSessionContext(ctx, nil))
	}
	t.Cleanup(func() { runInTransaction = orig })
}

func stubSSLGatewayValidator(t *testing.T, status, tranID string) {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/validator/api/validationserverAPI.php":
			fmt.Fprintf(w, `{"status":%q,"tran_id":%q}`, status, tranID)
		case "/gwprocess/v4/api.php":
			fmt.Fprint(w, `{"status":"SUCCESS","GatewayPageURL":"https://pay.example.com/session/abc"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(server.Close)
	t.Setenv("SSL_STORE_ID", "store1")
	t.Setenv("SSL_STORE_PASSWORD", "pass1")
	t.Setenv("SSL_BASE_URL", server.URL)
}

func TestCreateSSLPaymentTotalsMenuPrices(t *testing.T) {
	stubSSLGatewayValidator(t, "VALID", "unused")

	origTotal, origInsert := totalMenuPrice, insertPayment
	t.Cleanup(func() { totalMenuPrice, insertPayment = origTotal, origInsert })

	m1 := primitive.NewObjectID()
	m2 := primitive.NewObjectID()
	totalMenuPrice = func(ctx context.Context, ids []primitive.ObjectID) (float64, error) {
		require.Equal(t, []primitive.ObjectID{m1, m2}, ids)
		return 15.00, nil
	}

	var saved models.PaymentRecord
	insertPayment = func(ctx context.Context, payment models.PaymentRecord) error {
		saved = payment
		return nil
	}

	body := fmt.Sprintf(`{"email":"customer@example.com","menuItemIds":[%q,%q]}`, m1.Hex(), m2.Hex())
	rec := httptest.NewRecorder()
	CreateSSLPayment(rec, authedRequest(http.MethodPost, "/create-ssl-payment", "customer@example.com", body))

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data struct {
			GatewayURL string  `json:"gatewayUrl"`
			TotalPrice float64 `json:"total_price"`
			TranID     string  `json:"tran_id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 15.00, resp.Data.TotalPrice)
	assert.Equal(t, "https://pay.example.com/session/abc", resp.Data.GatewayURL)
	assert.NotEmpty(t, resp.Data.TranID)

	require.NotNil(t, saved.Price)
	assert.Equal(t, 15.00, *saved.Price)
	assert.Equal(t, []string{m1.Hex(), m2.Hex()}, saved.MenuItemIDs)
	assert.Equal(t, models.PaymentStatusPending, saved.Status)
	assert.Equal(t, resp.Data.TranID, saved.TransactionID)
}

func stubConfirmSeams(t *testing.T, record models.PaymentRecord, findErr error) (markCalls *int, deletedWith *[]primitive.ObjectID) {
	t.Helper()
	origFind, origMark, origDelete := findPaymentByTran, markPaymentSuccess, deleteCartEntries
	t.Cleanup(func() {
		findPaymentByTran, markPaymentSuccess, deleteCartEntries = origFind, origMark, origDelete
	})

	markCalls = new(int)
	deletedWith = new([]primitive.ObjectID)

	findPaymentByTran = func(ctx context.Context, tranID string) (models.PaymentRecord, error) {
		return record, findErr
	}
	markPaymentSuccess = func(ctx context.Context, tranID string) (int64, error) {
		*markCalls++
		if *markCalls > 1 {
			// a second call sees the record already flipped
			return 0, nil
		}
		return 1, nil
	}
	deleteCartEntries = func(ctx context.Context, ids []primitive.ObjectID, email *string) (int64, error) {
		*deletedWith = ids
		require.NotNil(t, email)
		require.Equal(t, record.Email, email)
		return int64(len(ids)), nil
	}
	return markCalls, deletedWith
}

func successCallback() *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/success", strings.NewReader("val_id=val-1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestPaymentSuccessFlipsStatusOnceAndClearsCart(t *testing.T) {
	stubSSLGatewayValidator(t, "VALID", "tran-123")
	stubTransactions(t)
	t.Setenv("CLIENT_URL", "https://bistro.example.com")

	email := "customer@example.com"
	c1 := primitive.NewObjectID()
	c2 := primitive.NewObjectID()
	record := models.PaymentRecord{
		Email:         &email,
		TransactionID: "tran-123",
		CartIDs:       []string{c1.Hex(), c2.Hex()},
		Status:        models.PaymentStatusPending,
	}
	markCalls, deletedWith := stubConfirmSeams(t, record, nil)

	rec := httptest.NewRecorder()
	PaymentSuccess(rec, successCallback())

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "https://bistro.example.com/success", rec.Header().Get("Location"))
	assert.Equal(t, 1, *markCalls)
	assert.Equal(t, []primitive.ObjectID{c1, c2}, *deletedWith)

	// replaying the callback finds no pending record and must not delete again
	rec = httptest.NewRecorder()
	PaymentSuccess(rec, successCallback())
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 2, *markCalls)
	assert.Equal(t, []primitive.ObjectID{c1, c2}, *deletedWith)
}

func TestPaymentSuccessInvalidValidationLeavesStateUntouched(t *testing.T) {
	stubSSLGatewayValidator(t, "INVALID_TRANSACTION", "tran-123")
	stubTransactions(t)

	email := "customer@example.com"
	record := models.PaymentRecord{Email: &email, TransactionID: "tran-123"}
	markCalls, deletedWith := stubConfirmSeams(t, record, nil)

	rec := httptest.NewRecorder()
	PaymentSuccess(rec, successCallback())

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid payment")
	assert.Equal(t, 0, *markCalls)
	assert.Empty(t, *deletedWith)
}

func TestPaymentSuccessUnknownTransactionTerminates(t *testing.T) {
	stubSSLGatewayValidator(t, "VALID", "tran-unknown")
	stubTransactions(t)

	markCalls, deletedWith := stubConfirmSeams(t, models.PaymentRecord{}, mongo.ErrNoDocuments)

	rec := httptest.NewRecorder()
	PaymentSuccess(rec, successCallback())

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 0, *markCalls)
	assert.Empty(t, *deletedWith)
}

func TestGetPaymentDetailsForbidsOtherCustomers(t *testing.T) {
	origFind := findPaymentByTran
	origLookup := middleware.LookupUserRole
	t.Cleanup(func() {
		findPaymentByTran = origFind
		middleware.LookupUserRole = origLookup
	})

	owner := "owner@example.com"
	findPaymentByTran = func(ctx context.Context, tranID string) (models.PaymentRecord, error) {
		return models.PaymentRecord{Email: &owner, TransactionID: tranID}, nil
	}
	middleware.LookupUserRole = func(ctx context.Context, email string) (string, error) {
		if email == "admin@example.com" {
			return "admin", nil
		}
		return "", nil
	}

	rec := httptest.NewRecorder()
	GetPaymentDetails(rec, authedRequest(http.MethodGet, "/payment-details?tran_id=tran-123", "other@example.com", ""))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	origItems := menuItemDetails
	t.Cleanup(func() { menuItemDetails = origItems })
	menuItemDetails = func(ctx context.Context, ids []primitive.ObjectID) ([]bson.M, error) {
		return nil, nil
	}

	rec = httptest.NewRecorder()
	GetPaymentDetails(rec, authedRequest(http.MethodGet, "/payment-details?tran_id=tran-123", "owner@example.com", ""))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	GetPaymentDetails(rec, authedRequest(http.MethodGet, "/payment-details?tran_id=tran-123", "admin@example.com", ""))
	assert.Equal(t, http.StatusOK, rec.Code)
}
