package controller

import (
	"context"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// Admin dashboard counters: menu size, customer count, order count and
// total revenue actually paid.
func AdminStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	menuItems, err := menuCollection().CountDocuments(ctx, bson.M{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error counting menu items",
		})
		return
	}

	customers, err := userCollection().CountDocuments(ctx, bson.M{"role": bson.M{"$ne": "admin"}})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error counting users",
		})
		return
	}

	orders, err := paymentCollection().CountDocuments(ctx, bson.M{})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error counting payments",
		})
		return
	}

	groupStage := bson.D{
		{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "totalRevenue", Value: bson.D{{Key: "$sum", Value: "$price"}}},
		}},
	}

	cursor, err := paymentCollection().Aggregate(ctx, mongo.Pipeline{groupStage})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error computing revenue",
		})
		return
	}

	var revenueResult []struct {
		TotalRevenue float64 `bson:"totalRevenue"`
	}
	if err := cursor.All(ctx, &revenueResult); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding revenue",
		})
		return
	}

	var revenue float64
	if len(revenueResult) > 0 {
		revenue = revenueResult[0].TotalRevenue
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Admin stats retrieved successfully",
		"data": map[string]interface{}{
			"menuItems": menuItems,
			"users":     customers,
			"orders":    orders,
			"revenue":   revenue,
		},
	})
}

// Per-category order count and revenue, joining payment records to
// current menu prices. Revenue therefore reflects today's menu, not the
// price at purchase; the record only stores the order total.
func OrderStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 100*time.Second)
	defer cancel()

	unwindStage := bson.D{{Key: "$unwind", Value: "$menuItemIds"}}
	// menuItemIds are stored as hex strings; convert before the join
	addFieldsStage := bson.D{
		{Key: "$addFields", Value: bson.D{
			{Key: "menuItemObjectId", Value: bson.D{{Key: "$toObjectId", Value: "$menuItemIds"}}},
		}},
	}
	lookupStage := bson.D{
		{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "menu"},
			{Key: "localField", Value: "menuItemObjectId"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "menuItems"},
		}},
	}
	unwindItemsStage := bson.D{{Key: "$unwind", Value: "$menuItems"}}
	groupStage := bson.D{
		{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$menuItems.category"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "revenue", Value: bson.D{{Key: "$sum", Value: "$menuItems.price"}}},
		}},
	}
	projectStage := bson.D{
		{Key: "$project", Value: bson.D{
			{Key: "_id", Value: 0},
			{Key: "category", Value: "$_id"},
			{Key: "quantity", Value: 1},
			{Key: "revenue", Value: 1},
		}},
	}

	cursor, err := paymentCollection().Aggregate(ctx, mongo.Pipeline{
		unwindStage, addFieldsStage, lookupStage, unwindItemsStage, groupStage, projectStage,
	})
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error computing order stats",
		})
		return
	}

	var stats []bson.M
	if err := cursor.All(ctx, &stats); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"success": false,
			"message": "Error decoding order stats",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Order stats retrieved successfully",
		"data":    stats,
	})
}
