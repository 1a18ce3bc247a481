package handler

import (
	"net/http"
	"sort"

	"storefront/models"

	"github.com/gin-gonic/gin"
)

type ServiceInfo struct {
	Docs      string   `json:"docs"`
	Endpoints []string `json:"endpoints"`
}

// Index answers the root path with the routes registered on router, read at
// request time so it also lists routes added after Index is mounted.
func Index(router *gin.Engine, docsPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := router.Routes()
		endpoints := make([]string, 0, len(routes))
		for _, r := range routes {
			endpoints = append(endpoints, r.Method+" "+r.Path)
		}
		sort.Strings(endpoints)

		c.JSON(http.StatusOK, models.Response{
			Success: true,
			Message: "Storefront API",
			Data:    ServiceInfo{Docs: docsPath, Endpoints: endpoints},
		})
	}
}
