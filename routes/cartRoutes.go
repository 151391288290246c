package routes

import (
	"net/http"

	controllers "github.com/Tahsin974/bistro-boss-server/controllers"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/gorilla/mux"
)

func CartProtectedRoutes(router *mux.Router) {
	ownCart := middleware.RequireSelfOrAdmin("email")

	router.Handle("/carts", ownCart(http.HandlerFunc(controllers.GetCarts))).Methods(http.MethodGet)
	router.HandleFunc("/carts", controllers.AddToCart).Methods(http.MethodPost)
	router.HandleFunc("/carts/{id}", controllers.DeleteCart).Methods(http.MethodDelete)
}
