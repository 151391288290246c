package routes

import (
	"net/http"

	controllers "github.com/Tahsin974/bistro-boss-server/controllers"
	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
	"github.com/gorilla/mux"
)

// PaymentPublicRoutes holds the hosted-gateway callback; the gateway
// posts here without a bearer token.
func PaymentPublicRoutes(router *mux.Router) {
	router.HandleFunc("/success", controllers.PaymentSuccess).Methods(http.MethodPost)
}

func PaymentProtectedRoutes(router *mux.Router) {
	ownHistory := middleware.RequireSelfOrAdmin("email")

	router.HandleFunc("/create-payment-intent", controllers.CreatePaymentIntent).Methods(http.MethodPost)
	router.HandleFunc("/payments", controllers.RecordPayment).Methods(http.MethodPost)
	router.Handle("/payment-history", ownHistory(http.HandlerFunc(controllers.GetPaymentHistory))).Methods(http.MethodGet)
	router.HandleFunc("/create-ssl-payment", controllers.CreateSSLPayment).Methods(http.MethodPost)
	router.HandleFunc("/payment-details", controllers.GetPaymentDetails).Methods(http.MethodGet)
}
