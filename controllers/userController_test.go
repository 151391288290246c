package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Tahsin974/bistro-boss-server/models"
)

func TestCreateUserDuplicateEmailIsIdempotent(t *testing.T) {
	origCount, origInsert := countUsersByEmail, insertUser
	t.Cleanup(func() { countUsersByEmail, insertUser = origCount, origInsert })

	countUsersByEmail = func(ctx context.Context, email *string) (int64, error) {
		return 1, nil
	}
	inserted := false
	insertUser = func(ctx context.Context, user models.User) (*mongo.InsertOneResult, error) {
		inserted = true
		return &mongo.InsertOneResult{}, nil
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"Dup","email":"dup@example.com"}`))

	CreateUser(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "user already exists")
	assert.False(t, inserted, "duplicate email must not mutate the repository")
}

func TestCreateUserInsertsNewUser(t *testing.T) {
	origCount, origInsert := countUsersByEmail, insertUser
	t.Cleanup(func() { countUsersByEmail, insertUser = origCount, origInsert })

	countUsersByEmail = func(ctx context.Context, email *string) (int64, error) {
		return 0, nil
	}
	var gotEmail string
	insertUser = func(ctx context.Context, user models.User) (*mongo.InsertOneResult, error) {
		require.NotNil(t, user.Email)
		gotEmail = *user.Email
		return &mongo.InsertOneResult{}, nil
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/users",
		strings.NewReader(`{"name":"New","email":"new@example.com"}`))

	CreateUser(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "new@example.com", gotEmail)
}
