package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/Tahsin974/bistro-boss-server/config"
	"github.com/Tahsin974/bistro-boss-server/models"
)

func reviewCollection() *mongo.Collection {
	return database.OpenCollection("review")
}

// Get all reviews
func GetReviews(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	result, err := reviewCollection().Find(ctx, bson.M{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error occurred while listing reviews",
		})
		return
	}

	var allReviews []bson.M
	if err = result.All(ctx, &allReviews); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding reviews",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Reviews retrieved successfully",
		"data":    allReviews,
	})
}

// Create a review
func CreateReview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var review models.Review
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := validate.Struct(review); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	review.ID = primitive.NewObjectID()
	review.Created_at = time.Now()

	result, insertErr := reviewCollection().InsertOne(ctx, review)
	if insertErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Review was not created",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Review created successfully",
		"data":    result,
	})
}
