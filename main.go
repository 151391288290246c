package main

import (
	"log"
	"net/http"
	"os"

	database "github.com/Tahsin974/bistro-boss-server/config"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	routes "github.com/Tahsin974/bistro-boss-server/routes"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	database.LoadEnv()
	database.Client()

	// stripe.Key is a package global; set it once here, never per request
	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	router := mux.NewRouter()

	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Welcome To Bistro Boss Restaurant Server"))
	}).Methods(http.MethodGet)

	// Public routes (no authentication)
	routes.MenuPublicRoutes(router)
	routes.ReviewPublicRoutes(router)
	routes.UserPublicRoutes(router)
	routes.PaymentPublicRoutes(router)

	// Protected routes behind the bearer-token gate
	securedRoutes := router.PathPrefix("/").Subrouter()
	securedRoutes.Use(middleware.Authentication)
	routes.MenuProtectedRoutes(securedRoutes)
	routes.ReviewProtectedRoutes(securedRoutes)
	routes.CartProtectedRoutes(securedRoutes)
	routes.UserProtectedRoutes(securedRoutes)
	routes.PaymentProtectedRoutes(securedRoutes)
	routes.StatsProtectedRoutes(securedRoutes)

	corsHandler := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)(router)

	log.Printf("Server running on port %s", port)
	if err := http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, corsHandler)); err != nil {
		log.Fatal(err)
	}
}
