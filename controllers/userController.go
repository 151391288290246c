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
	"github.com/Tahsin974/bistro-boss-server/helper"
	"github.com/Tahsin974/bistro-boss-server/models"
)

func userCollection() *mongo.Collection {
	return database.OpenCollection("users")
}

// Stubbable seams over the user collection, in the manner of
// middleware.LookupUserRole.
var (
	countUsersByEmail = func(ctx context.Context, email *string) (int64, error) {
		return userCollection().CountDocuments(ctx, bson.M{"email": email})
	}

	insertUser = func(ctx context.Context, user models.User) (*mongo.InsertOneResult, error) {
		return userCollection().InsertOne(ctx, user)
	}
)

// Issue a session token for the signed-in email
func IssueJWT(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Email == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "email is required",
		})
		return
	}

	token, err := helper.GenerateToken(body.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Token generation failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Token issued",
		"data":    map[string]interface{}{"token": token},
	})
}

// Register a user on first sign-in; idempotent on duplicate email
func CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	if err := validate.Struct(user); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	count, err := countUsersByEmail(ctx, user.Email)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error checking email",
		})
		return
	}
	if count > 0 {
		writeJSON(w, http.StatusConflict, map[string]interface{}{
			"success": false,
			"message": "user already exists",
		})
		return
	}

	user.ID = primitive.NewObjectID()
	user.Created_at = time.Now()

	result, insertErr := insertUser(ctx, user)
	if insertErr != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "User creation failed",
		})
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User created successfully",
		"data":    result,
	})
}

// List all users (admin only)
func GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	result, err := userCollection().Find(ctx, bson.M{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error occurred while listing users",
		})
		return
	}

	var allUsers []models.User
	if err = result.All(ctx, &allUsers); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding users",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Users retrieved successfully",
		"data":    allUsers,
	})
}

// Report whether the named user holds the admin role. Ownership is
// enforced at the route by RequireSelfOrAdmin("email").
func CheckAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	email := params["email"]

	var user models.User
	err := userCollection().FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "User not found",
		})
		return
	}

	admin := user.Role != nil && *user.Role == "admin"
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Role retrieved successfully",
		"data":    map[string]interface{}{"admin": admin},
	})
}

// Grant the admin role (admin only)
func MakeAdmin(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid user id",
		})
		return
	}

	update := bson.D{{Key: "$set", Value: bson.D{{Key: "role", Value: "admin"}}}}
	result, err := userCollection().UpdateOne(ctx, bson.M{"_id": userID}, update)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Role update failed",
		})
		return
	}

	if result.MatchedCount == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "User not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User promoted to admin",
		"data":    result,
	})
}

// Delete a user (admin only)
func DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	params := mux.Vars(r)
	userID, err := primitive.ObjectIDFromHex(params["id"])
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid user id",
		})
		return
	}

	result, err := userCollection().DeleteOne(ctx, bson.M{"_id": userID})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "User deletion failed",
		})
		return
	}

	if result.DeletedCount == 0 {
		writeJSON(w, http.StatusNotFound, map[string]interface{}{
			"success": false,
			"message": "User not found",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deleted successfully",
	})
}
