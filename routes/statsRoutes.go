package routes

import (
	"net/http"

	controllers "github.com/Tahsin974/bistro-boss-server/controllers"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/gorilla/mux"
)

func StatsProtectedRoutes(router *mux.Router) {
	router.Handle("/admin-stats", middleware.RequireAdmin(http.HandlerFunc(controllers.AdminStats))).Methods(http.MethodGet)
	router.Handle("/order-stats", middleware.RequireAdmin(http.HandlerFunc(controllers.OrderStats))).Methods(http.MethodGet)
}
