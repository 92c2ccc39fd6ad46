// internal/tests/api_test.go
package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/powersport/inventory-backend/internal/config"
	"github.com/powersport/inventory-backend/internal/kvstore"
	"github.com/powersport/inventory-backend/internal/router"
	"github.com/powersport/inventory-backend/internal/services"
	"github.com/powersport/inventory-backend/internal/sheets"
)

type stubFetcher struct {
	body string
}

func (f *stubFetcher) Fetch(context.Context, string) (string, error) {
	return f.body, nil
}

type APITestSuite struct {
	suite.Suite
	router      *gin.Engine
	adminToken  string
	viewerToken string
	requests    int
}

func (suite *APITestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Environment: "test",
		JWT: config.JWTConfig{
			SecretKey:      "test-secret-key",
			AccessTokenTTL: 1,
		},
		Store: config.StoreConfig{
			Code:       "POWERSPORT",
			Name:       "POWERSPORT",
			AdminCode:  "POWERSPORT",
			ViewerCode: "CATALOGO",
		},
	}

	fetcher := &stubFetcher{body: "H\nNIKE,AirMax,42,BLACK,5,100,60,,CALZADO\nFOX,Casco V1,M,RED,0,250,120,,CASCOS"}
	storeService := services.NewStoreService(kvstore.NewMemory(), sheets.NewPipeline(fetcher), cfg.Store.Name)
	require.NoError(suite.T(), storeService.Load(context.Background(), cfg.Store.Code))

	suite.router = router.Initialize(cfg, storeService, nil)

	suite.adminToken = suite.login("POWERSPORT")
	suite.viewerToken = suite.login("CATALOGO")
}

func (suite *APITestSuite) login(code string) string {
	w := suite.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"access_code": code,
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	data := suite.decode(w)
	token, _ := data["token"].(string)
	require.NotEmpty(suite.T(), token)
	return token
}

func (suite *APITestSuite) request(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		require.NoError(suite.T(), err)
		buf = bytes.NewBuffer(jsonData)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(suite.T(), err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	// Each request carries a distinct client address so the per-IP rate
	// limiters never throttle the suite.
	suite.requests++
	req.RemoteAddr = fmt.Sprintf("192.0.2.%d:1234", suite.requests%250+1)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	require.NoError(suite.T(), json.Unmarshal(w.Body.Bytes(), &response))

	if data, ok := response["data"].(map[string]interface{}); ok {
		return data
	}
	return response
}

func (suite *APITestSuite) TestHealth() {
	w := suite.request(http.MethodGet, "/health", "", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "healthy")
}

func (suite *APITestSuite) TestLoginInvalidCode() {
	w := suite.request(http.MethodPost, "/v1/auth/login", "", map[string]interface{}{
		"access_code": "WRONG",
	})

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestCatalogRequiresAuth() {
	w := suite.request(http.MethodGet, "/v1/catalog", "", nil)

	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)
}

func (suite *APITestSuite) TestViewerCannotSync() {
	w := suite.request(http.MethodPost, "/v1/sync", suite.viewerToken, nil)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestViewerCannotAdjustStock() {
	w := suite.request(http.MethodPatch, "/v1/products/any/quantity", suite.viewerToken, map[string]interface{}{
		"delta": 1,
	})

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *APITestSuite) TestStorefrontFlow() {
	// Before any source is configured a sync cannot run.
	w := suite.request(http.MethodPost, "/v1/sync", suite.adminToken, nil)
	require.Equal(suite.T(), http.StatusUnprocessableEntity, w.Code)

	// Configure the spreadsheet source and order destination.
	w = suite.request(http.MethodPut, "/v1/settings", suite.adminToken, map[string]interface{}{
		"sheet_url":       "https://example.com/data.csv",
		"whatsapp_number": "5491122334455",
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)

	// Import the catalog.
	w = suite.request(http.MethodPost, "/v1/sync", suite.adminToken, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), float64(2), suite.decode(w)["imported"])

	// Admins see the stock view including out-of-stock products.
	w = suite.request(http.MethodGet, "/v1/catalog", suite.adminToken, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)
	assert.Equal(suite.T(), "stock", data["display_mode"])
	assert.Len(suite.T(), data["products"], 2)

	// Viewers get the catalog view, in-stock only.
	w = suite.request(http.MethodGet, "/v1/catalog", suite.viewerToken, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	data = suite.decode(w)
	assert.Equal(suite.T(), "catalog", data["display_mode"])
	assert.Len(suite.T(), data["products"], 1)

	// Categories carry the all-marker first.
	w = suite.request(http.MethodGet, "/v1/catalog/categories", suite.viewerToken, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	cats, ok := suite.decode(w)["categories"].([]interface{})
	require.True(suite.T(), ok)
	require.NotEmpty(suite.T(), cats)
	assert.Equal(suite.T(), "TODO", cats[0])

	// Add the in-stock product to the viewer's cart and check out.
	w = suite.request(http.MethodGet, "/v1/catalog", suite.viewerToken, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	list, ok := suite.decode(w)["products"].([]interface{})
	require.True(suite.T(), ok)
	first, ok := list[0].(map[string]interface{})
	require.True(suite.T(), ok)
	productID, _ := first["id"].(string)
	require.NotEmpty(suite.T(), productID)

	w = suite.request(http.MethodPost, "/v1/cart/items", suite.viewerToken, map[string]interface{}{
		"product_id": productID,
	})
	require.Equal(suite.T(), http.StatusOK, w.Code)
	assert.Equal(suite.T(), float64(100), suite.decode(w)["total"])

	w = suite.request(http.MethodPost, "/v1/cart/checkout", suite.viewerToken, nil)
	require.Equal(suite.T(), http.StatusOK, w.Code)
	order, ok := suite.decode(w)["order"].(map[string]interface{})
	require.True(suite.T(), ok)
	assert.Contains(suite.T(), order["link"], "https://wa.me/5491122334455")
	assert.Equal(suite.T(), float64(100), order["total"])
}

func (suite *APITestSuite) TestCheckoutEmptyCart() {
	w := suite.request(http.MethodPost, "/v1/cart/checkout", suite.adminToken, nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *APITestSuite) TestSessionEndpoint() {
	w := suite.request(http.MethodGet, "/v1/auth/me", suite.adminToken, nil)

	require.Equal(suite.T(), http.StatusOK, w.Code)
	data := suite.decode(w)
	assert.Equal(suite.T(), "admin", data["role"])
	assert.Equal(suite.T(), "POWERSPORT", data["store_code"])
}

func TestAPISuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}
