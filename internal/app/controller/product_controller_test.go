package controller

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shlee-dev/veloura-backend/internal/app/model"
	"github.com/shlee-dev/veloura-backend/internal/app/repository"
	"github.com/shlee-dev/veloura-backend/internal/app/service"
	"github.com/shlee-dev/veloura-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupProductControllerTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	productRepo := repository.NewProductRepository(testDB)
	variantRepo := repository.NewVariantRepository(testDB)
	productService := service.NewProductService(testDB, productRepo, variantRepo, nil)
	productController := NewProductController(productService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/products", productController.List)
	router.GET("/products/:slug", productController.GetBySlug)
	router.POST("/admin/products", productController.Create)
	router.PUT("/admin/products/:id", productController.Update)
	router.DELETE("/admin/products/:id", productController.Delete)

	return router, testDB
}

func TestProductController_List(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	testDB.Create(&model.Product{Title: "Wool Overcoat", Slug: "wool-overcoat", Price: 320, Featured: true})
	testDB.Create(&model.Product{Title: "Merino Crewneck", Slug: "merino-crewneck", Price: 95})

	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

	products := response["products"].([]interface{})
	assert.Len(t, products, 2)
	assert.Equal(t, float64(2), response["total"])
}

func TestProductController_List_FeaturedFilter(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	testDB.Create(&model.Product{Title: "Wool Overcoat", Slug: "wool-overcoat", Price: 320, Featured: true})
	testDB.Create(&model.Product{Title: "Merino Crewneck", Slug: "merino-crewneck", Price: 95})

	req := httptest.NewRequest(http.MethodGet, "/products?featured=true", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, float64(1), response["total"])
}

func TestProductController_GetBySlug(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	testDB.Create(&model.Product{Title: "Wool Overcoat", Slug: "wool-overcoat", Price: 320})

	req := httptest.NewRequest(http.MethodGet, "/products/wool-overcoat", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Wool Overcoat")
}

func TestProductController_GetBySlug_NotFound(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductController_Create(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Wool Overcoat",
		"price": 320,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "wool-overcoat")
}

func TestProductController_Create_InvalidPayload(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	// Missing required title and price
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductController_Create_SlugConflict(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	testDB.Create(&model.Product{Title: "Wool Overcoat", Slug: "overcoat", Price: 320})

	body, _ := json.Marshal(map[string]interface{}{
		"title": "Another Coat",
		"slug":  "overcoat",
		"price": 280,
	})
	req := httptest.NewRequest(http.MethodPost, "/admin/products", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestProductController_Delete(t *testing.T) {
	router, testDB := setupProductControllerTest(t)

	product := &model.Product{Title: "Wool Overcoat", Slug: "wool-overcoat", Price: 320}
	testDB.Create(product)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var count int64
	testDB.Model(&model.Product{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestProductController_Delete_BadID(t *testing.T) {
	router, _ := setupProductControllerTest(t)

	req := httptest.NewRequest(http.MethodDelete, "/admin/products/abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
