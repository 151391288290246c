package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	database "github.com/Tahsin974/bistro-boss-server/config"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/Tahsin974/bistro-boss-server/models"
)

func paymentCollection() *mongo.Collection {
	return database.OpenCollection("payments")
}

// Stubbable seams over the gateway SDK and the transaction runner, in the
// manner of middleware.LookupUserRole.
var (
	createIntent     = paymentintent.New
	runInTransaction = database.WithTransaction
)

// toMinorUnits converts a decimal price to the gateway's integer minor
// units, truncating fractional cents.
func toMinorUnits(price float64) int64 {
	return int64(price * 100)
}

// Create a Stripe payment intent and hand back its client secret
func CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Price float64 `json:"price"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Price <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "a positive price is required",
		})
		return
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(toMinorUnits(body.Price)),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}

	intent, err := createIntent(params)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]interface{}{
			"success": false,
			"message": "Payment intent creation failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment intent created",
		"data":    map[string]interface{}{"clientSecret": intent.ClientSecret},
	})
}

// Record a completed card payment and clear the paid cart entries. Both
// writes run in one transaction; the cart filter is scoped to the
// authenticated customer's email.
func RecordPayment(w http.ResponseWriter, r *http.Request) {
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

	cartObjectIDs, err := toObjectIDs(payment.CartIDs)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid cart entry id in cartIds",
		})
		return
	}

	payment.ID = primitive.NewObjectID()
	if payment.Date.IsZero() {
		payment.Date = time.Now()
	}

	tokenEmail := middleware.GetUserEmail(r)

	type recordResult struct {
		inserted *mongo.InsertOneResult
		deleted  *mongo.DeleteResult
	}

	result, err := runInTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		inserted, err := paymentCollection().InsertOne(sc, payment)
		if err != nil {
			return nil, err
		}

		filter := bson.M{
			"_id":           bson.M{"$in": cartObjectIDs},
			"customerEmail": tokenEmail,
		}
		deleted, err := cartCollection().DeleteMany(sc, filter)
		if err != nil {
			return nil, err
		}

		return recordResult{inserted: inserted, deleted: deleted}, nil
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Payment recording failed",
		})
		return
	}

	res := result.(recordResult)
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Payment recorded successfully",
		"data": map[string]interface{}{
			"insertedId":   res.inserted.InsertedID,
			"deletedCount": res.deleted.DeletedCount,
		},
	})
}

// List a customer's payment records, newest first. Ownership is enforced
// at the route by RequireSelfOrAdmin("email").
func GetPaymentHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "email query parameter is required",
		})
		return
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	result, err := paymentCollection().Find(ctx, bson.M{"email": email}, findOptions)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error occurred while listing payments",
		})
		return
	}

	var payments []models.PaymentRecord
	if err = result.All(ctx, &payments); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding payments",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Payment history retrieved successfully",
		"data":    payments,
	})
}

func toObjectIDs(hexIDs []string) ([]primitive.ObjectID, error) {
	ids := make([]primitive.ObjectID, 0, len(hexIDs))
	for _, hexID := range hexIDs {
		id, err := primitive.ObjectIDFromHex(hexID)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
