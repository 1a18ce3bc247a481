package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexListsRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", Index(router, "/swagger/index.html"))
	router.POST("/order", func(c *gin.Context) {})
	router.GET("/shop", func(c *gin.Context) {})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success bool        `json:"success"`
		Message string      `json:"message"`
		Data    ServiceInfo `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Storefront API", body.Message)
	assert.Equal(t, "/swagger/index.html", body.Data.Docs)
	assert.Equal(t, []string{"GET /", "GET /shop", "POST /order"}, body.Data.Endpoints)
}
