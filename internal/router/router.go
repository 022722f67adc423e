package router

import (
	"net/http"

	"grove/internal/graph"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

func RegisterRoutes(r *gin.Engine, schema graphql.Schema, resolver *graph.Resolver) {
	r.POST("/graphql", graph.Handler(schema, resolver))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
