package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Tahsin974/bistro-boss-server/gateway"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/Tahsin974/bistro-boss-server/models"
)

// sslGateway builds the hosted-payment client. Package-level func var so
// tests can point it at an httptest server.
var sslGateway = func() *gateway.Client {
	return gateway.NewClient(
		os.Getenv("SSL_STORE_ID"),
		os.Getenv("SSL_STORE_PASSWORD"),
		os.Getenv("SSL_BASE_URL"),
	)
}

// Stubbable seams over the collection operations this flow performs.
var (
	totalMenuPrice = func(ctx context.Context, ids []primitive.ObjectID) (float64, error) {
		matchStage := bson.D{{Key: "$match", Value: bson.D{{Key: "_id", Value: bson.D{{Key: "$in", Value: ids}}}}}}
		groupStage := bson.D{
			{Key: "$group", Value: bson.D{
				{Key: "_id", Value: nil},
				{Key: "total", Value: bson.D{{Key: "$sum", Value: "$price"}}},
			}},
		}

		cursor, err := menuCollection().Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
		if err != nil {
			return 0, err
		}

		var results []struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.All(ctx, &results); err != nil {
			return 0, err
		}
		if len(results) == 0 {
			return 0, nil
		}
		return results[0].Total, nil
	}

	insertPayment = func(ctx context.Context, payment models.PaymentRecord) error {
		_, err := paymentCollection().InsertOne(ctx, payment)
		return err
	}

	findPaymentByTran = func(ctx context.Context, tranID string) (models.PaymentRecord, error) {
		var payment models.PaymentRecord
		err := paymentCollection().FindOne(ctx, bson.M{"transactionId": tranID}).Decode(&payment)
		return payment, err
	}

	markPaymentSuccess = func(ctx context.Context, tranID string) (int64, error) {
		update := bson.D{{Key: "$set", Value: bson.D{{Key: "status", Value: models.PaymentStatusSuccess}}}}
		result, err := paymentCollection().UpdateOne(ctx,
			bson.M{"transactionId": tranID, "status": models.PaymentStatusPending}, update)
		if err != nil {
			return 0, err
		}
		return result.MatchedCount, nil
	}

	deleteCartEntries = func(ctx context.Context, ids []primitive.ObjectID, email *string) (int64, error) {
		filter := bson.M{
			"_id":           bson.M{"$in": ids},
			"customerEmail": email,
		}
		result, err := cartCollection().DeleteMany(ctx, filter)
		if err != nil {
			return 0, err
		}
		return result.DeletedCount, nil
	}

	menuItemDetails = func(ctx context.Context, ids []primitive.ObjectID) ([]bson.M, error) {
		findOptions := options.Find().SetProjection(bson.D{
			{Key: "name", Value: 1},
			{Key: "price", Value: 1},
		})
		cursor, err := menuCollection().Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, findOptions)
		if err != nil {
			return nil, err
		}

		var items []bson.M
		if err = cursor.All(ctx, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
)

// Initiate a hosted-payment-page checkout: total the referenced menu
// items, persist a pending record under a fresh transaction id, and
// return the gateway redirect URL.
func CreateSSLPayment(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var payment models.PaymentRecord
	if err := json.NewDecoder(r.Body).Decode(&payment); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := validate.Struct(payment); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if len(payment.MenuItemIDs) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "menuItemIds must not be empty",
		})
		return
	}

	menuObjectIDs, err := toObjectIDs(payment.MenuItemIDs)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid menu item id in menuItemIds",
		})
		return
	}

	totalPrice, err := totalMenuPrice(ctx, menuObjectIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error computing total price",
		})
		return
	}
	if totalPrice == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "No menu items found for the given ids",
		})
		return
	}

	tranID := uuid.New().String()
	payment.ID = primitive.NewObjectID()
	payment.TransactionID = tranID
	payment.Price = &totalPrice
	payment.Status = models.PaymentStatusPending
	payment.Date = time.Now()

	if err := insertPayment(ctx, payment); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Payment record was not created",
		})
		return
	}

	serverURL := os.Getenv("SERVER_URL")
	clientURL := os.Getenv("CLIENT_URL")
	initResp, err := sslGateway().InitiatePayment(ctx, gateway.InitiateRequest{
		TotalAmount:   totalPrice,
		Currency:      "BDT",
		TransactionID: tranID,
		SuccessURL:    serverURL + "/success",
		FailURL:       clientURL + "/fail",
		CancelURL:     clientURL + "/cancel",
		CustomerEmail: *payment.Email,
		CustomerName:  *payment.Email,
		ProductName:   "Bistro Boss order",
	})
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"message": "Payment gateway session failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment session created",
		"data": map[string]interface{}{
			"gatewayUrl":  initResp.GatewayPageURL,
			"total_price": totalPrice,
			"tran_id":     tranID,
		},
	})
}

type confirmResult struct {
	matched int64
	deleted int64
}

// Gateway success callback: re-validate with the gateway, flip the record
// to Success and clear the customer's paid cart entries in one
// transaction. Every branch terminates with a response.
func PaymentSuccess(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid callback payload",
		})
		return
	}

	valID := r.FormValue("val_id")
	if valID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "val_id is required",
		})
		return
	}

	validation, err := sslGateway().ValidatePayment(ctx, valID)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"message": "Payment validation failed",
		})
		return
	}

	if validation.Status != "VALID" {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success": false,
			"message": "Invalid payment",
		})
		return
	}

	result, err := runInTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		payment, err := findPaymentByTran(sc, validation.TransactionID)
		if err != nil {
			if err == mongo.ErrNoDocuments {
				return confirmResult{matched: 0}, nil
			}
			return nil, err
		}

		matched, err := markPaymentSuccess(sc, validation.TransactionID)
		if err != nil {
			return nil, err
		}
		if matched == 0 {
			return confirmResult{matched: 0}, nil
		}

		cartObjectIDs, err := toObjectIDs(payment.CartIDs)
		if err != nil {
			return nil, err
		}

		deleted, err := deleteCartEntries(sc, cartObjectIDs, payment.Email)
		if err != nil {
			return nil, err
		}

		return confirmResult{matched: matched, deleted: deleted}, nil
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Payment confirmation failed",
		})
		return
	}

	res := result.(confirmResult)
	if res.matched == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "No pending payment found for this transaction",
		})
		return
	}

	http.Redirect(w, r, os.Getenv("CLIENT_URL")+"/success", http.StatusSeeOther)
}

// Look up a payment record and the current name/price of its items. The
// record is only disclosed to its payer or an admin; transaction ids
// travel through the gateway redirect and are guessable.
func GetPaymentDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	tranID := r.URL.Query().Get("tran_id")
	if tranID == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "tran_id query parameter is required",
		})
		return
	}

	payment, err := findPaymentByTran(ctx, tranID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Payment record not found",
		})
		return
	}

	tokenEmail := middleware.GetUserEmail(r)
	if payment.Email == nil || *payment.Email != tokenEmail {
		role, err := middleware.LookupUserRole(ctx, tokenEmail)
		if err != nil || role != "admin" {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"success": false,
				"message": "Forbidden: access denied",
			})
			return
		}
	}

	menuObjectIDs, err := toObjectIDs(payment.MenuItemIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Payment record holds an invalid menu item id",
		})
		return
	}

	items, err := menuItemDetails(ctx, menuObjectIDs)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error retrieving payment items",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment details retrieved successfully",
		"data": map[string]interface{}{
			"payment": payment,
			"items":   items,
		},
	})
}
