package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		context  string
		wantCode string
	}{
		{
			name:     "Nil error",
			err:      nil,
			context:  "",
			wantCode: InternalServerError,
		},
		{
			name:     "Record not found with context",
			err:      gorm.ErrRecordNotFound,
			context:  "product",
			wantCode: ResourceNotFound,
		},
		{
			name:     "Postgres unique violation on slug",
			err:      &pq.Error{Code: "23505", Constraint: "idx_products_slug"},
			context:  "product",
			wantCode: CatalogSlugExists,
		},
		{
			name:     "Postgres unique violation on email",
			err:      &pq.Error{Code: "23505", Constraint: "idx_users_email"},
			context:  "user",
			wantCode: AuthEmailAlreadyExists,
		},
		{
			name:     "Postgres unique violation on sku",
			err:      &pq.Error{Code: "23505", Constraint: "idx_product_variants_sku"},
			context:  "variant",
			wantCode: CatalogSKUExists,
		},
		{
			name:     "Postgres foreign key violation",
			err:      &pq.Error{Code: "23503"},
			context:  "order",
			wantCode: ResourceConflict,
		},
		{
			name:     "Postgres not null violation",
			err:      &pq.Error{Code: "23502"},
			context:  "product",
			wantCode: ValidationRequired,
		},
		{
			name:     "SQLite unique constraint text",
			err:      errors.New("UNIQUE constraint failed: users.email"),
			context:  "user",
			wantCode: AuthEmailAlreadyExists,
		},
		{
			name:     "Connection failure",
			err:      errors.New("dial tcp 127.0.0.1:5432: connection refused"),
			context:  "order",
			wantCode: InternalExternalAPI,
		},
		{
			name:     "Unrecognized error stays internal",
			err:      errors.New("driver: bad connection state"),
			context:  "cart",
			wantCode: InternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := ParseError(tt.err, tt.context)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.NotEmpty(t, info.Message)
		})
	}
}

func TestParseError_NeverLeaksInternals(t *testing.T) {
	raw := errors.New(`pq: duplicate key value violates unique constraint "idx_products_slug" DETAIL: Key (slug)=(wool-overcoat) already exists`)

	info := ParseError(raw, "product")
	assert.Equal(t, CatalogSlugExists, info.Code)
	assert.NotContains(t, info.Message, "pq:")
	assert.NotContains(t, info.Message, "idx_products_slug")
}

func TestParseAndRespond(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	ParseAndRespond(c, http.StatusInternalServerError, gorm.ErrRecordNotFound, "order")

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, ResourceNotFound, response.Error)
	assert.Equal(t, "Order not found", response.Message)
}
