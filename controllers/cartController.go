package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/Tahsin974/bistro-boss-server/config"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/Tahsin974/bistro-boss-server/models"
)

func cartCollection() *mongo.Collection {
	return database.OpenCollection("carts")
}

// Get cart entries for a customer. Ownership is enforced at the route by
// RequireSelfOrAdmin("email").
func GetCarts(w http.ResponseWriter, r *http.Request) {
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

	result, err := cartCollection().Find(ctx, bson.M{"customerEmail": email})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error occurred while listing cart entries",
		})
		return
	}

	var entries []models.CartEntry
	if err = result.All(ctx, &entries); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding cart entries",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart retrieved successfully",
		"data":    entries,
	})
}

// Add an item to the cart. The entry is always stored under the
// authenticated customer's email, whatever the body claims.
func AddToCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var entry models.CartEntry
	if err := json.NewDecoder(r.Body).Decode(&entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	tokenEmail := middleware.GetUserEmail(r)
	entry.CustomerEmail = &tokenEmail

	if err := validate.Struct(entry); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	entry.ID = primitive.NewObjectID()
	entry.Created_at = time.Now()

	result, insertErr := cartCollection().InsertOne(ctx, entry)
	if insertErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Cart entry was not created",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Added to cart",
		"data":    result,
	})
}

// Remove a cart entry. The filter is scoped to the authenticated customer
// so one user cannot delete another's entries by id.
func DeleteCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	entryID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid cart entry id",
		})
		return
	}

	filter := bson.M{"_id": entryID, "customerEmail": middleware.GetUserEmail(r)}
	result, err := cartCollection().DeleteOne(ctx, filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Cart entry deletion failed",
		})
		return
	}

	if result.DeletedCount == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Cart entry not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Cart entry deleted successfully",
	})
}
