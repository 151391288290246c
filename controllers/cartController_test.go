package controller

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	middleware "github.com/Tahsin974/bistro-boss-server/middlewares"
)

func TestGetCartsMissingEmailReportsValidationError(t *testing.T) {
	// the ownership gate lets an absent email through so the handler's
	// clearer 400 wins over a blanket 403
	gate := middleware.RequireSelfOrAdmin("email")

	rec := httptest.NewRecorder()
	gate(http.HandlerFunc(GetCarts)).ServeHTTP(rec,
		authedRequest(http.MethodGet, "/carts", "customer@example.com", ""))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email query parameter is required")
}
