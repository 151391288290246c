package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator"
	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	database "github.com/Tahsin974/bistro-boss-server/config"
	"github.com/Tahsin974/bistro-boss-server/models"
)

var validate = validator.New()

func menuCollection() *mongo.Collection {
	return database.OpenCollection("menu")
}

// Get all menu items
func GetMenuItems(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	result, err := menuCollection().Find(ctx, bson.M{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error occurred while listing the menu items",
		})
		return
	}

	var allItems []bson.M
	if err = result.All(ctx, &allItems); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding menu items",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu retrieved successfully",
		"data":    allItems,
	})
}

// Get a single menu item
func GetMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid menu item id",
		})
		return
	}

	var item models.MenuItem
	if err := menuCollection().FindOne(ctx, bson.M{"_id": itemID}).Decode(&item); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Menu item not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu item retrieved successfully",
		"data":    item,
	})
}

// Create a menu item
func CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := validate.Struct(item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	item.ID = primitive.NewObjectID()
	item.Created_at = time.Now()
	item.Updated_at = time.Now()

	result, insertErr := menuCollection().InsertOne(ctx, item)
	if insertErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Menu item was not created",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "Menu item created successfully",
		"data":    result,
	})
}

// Update a menu item (partial field replacement)
func UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid menu item id",
		})
		return
	}

	var item models.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	updateObj := bson.D{}
	if item.Name != nil {
		updateObj = append(updateObj, bson.E{Key: "name", Value: item.Name})
	}
	if item.Recipe != nil {
		updateObj = append(updateObj, bson.E{Key: "recipe", Value: item.Recipe})
	}
	if item.Image != nil {
		updateObj = append(updateObj, bson.E{Key: "image", Value: item.Image})
	}
	if item.Category != nil {
		updateObj = append(updateObj, bson.E{Key: "category", Value: item.Category})
	}
	if item.Price != nil {
		updateObj = append(updateObj, bson.E{Key: "price", Value: item.Price})
	}
	updateObj = append(updateObj, bson.E{Key: "updated_at", Value: time.Now()})

	result, err := menuCollection().UpdateOne(ctx, bson.M{"_id": itemID}, bson.D{{Key: "$set", Value: updateObj}})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Menu item update failed",
		})
		return
	}

	if result.MatchedCount == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Menu item not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu item updated successfully",
		"data":    result,
	})
}

// Delete a menu item
func DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	itemID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid menu item id",
		})
		return
	}

	result, err := menuCollection().DeleteOne(ctx, bson.M{"_id": itemID})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Menu item deletion failed",
		})
		return
	}

	if result.DeletedCount == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "Menu item not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Menu item deleted successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, body map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
