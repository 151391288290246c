package routes

import (
	"net/http"

	controllers "github.com/Tahsin974/bistro-boss-server/controllers"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/gorilla/mux"
)

func MenuPublicRoutes(router *mux.Router) {
	router.HandleFunc("/menu", controllers.GetMenuItems).Methods(http.MethodGet)
	router.HandleFunc("/menu/{id}", controllers.GetMenuItem).Methods(http.MethodGet)
}

func MenuProtectedRoutes(router *mux.Router) {
	router.Handle("/menu", middleware.RequireAdmin(http.HandlerFunc(controllers.CreateMenuItem))).Methods(http.MethodPost)
	router.Handle("/menu/{id}", middleware.RequireAdmin(http.HandlerFunc(controllers.UpdateMenuItem))).Methods(http.MethodPatch)
	router.Handle("/menu/{id}", middleware.RequireAdmin(http.HandlerFunc(controllers.DeleteMenuItem))).Methods(http.MethodDelete)
}
