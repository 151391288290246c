package routes

import (
	"net/http"

	controllers "github.com/Tahsin974/bistro-boss-server/controllers"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/gorilla/mux"
)

func UserPublicRoutes(router *mux.Router) {
	router.HandleFunc("/jwt", controllers.IssueJWT).Methods(http.MethodPost)
	router.HandleFunc("/users", controllers.CreateUser).Methods(http.MethodPost)
}

func UserProtectedRoutes(router *mux.Router) {
	selfOrAdmin := middleware.RequireSelfOrAdmin("email")

	router.Handle("/users", middleware.RequireAdmin(http.HandlerFunc(controllers.GetUsers))).Methods(http.MethodGet)
	router.Handle("/users/admin/{email}", selfOrAdmin(http.HandlerFunc(controllers.CheckAdmin))).Methods(http.MethodGet)
	router.Handle("/users/admin/{id}", middleware.RequireAdmin(http.HandlerFunc(controllers.MakeAdmin))).Methods(http.MethodPatch)
	router.Handle("/users/{id}", middleware.RequireAdmin(http.HandlerFunc(controllers.DeleteUser))).Methods(http.MethodDelete)
}
