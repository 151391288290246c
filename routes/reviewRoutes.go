package routes

import (
	"net/http"

	controllers "github.com/Tahsin974/bistro-boss-server/controllers"
	"github.com/gorilla/mux"
)

func ReviewPublicRoutes(router *mux.Router) {
	router.HandleFunc("/review", controllers.GetReviews).Methods(http.MethodGet)
}

func ReviewProtectedRoutes(router *mux.Router) {
	router.HandleFunc("/review", controllers.CreateReview).Methods(http.MethodPost)
}
