package graph

import (
	"context"
	"net/http"
	"time"

	"grove/internal/auth"
	"grove/internal/loaders"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
)

// requestTimeout bounds every storage and network call a single
// operation makes; a stuck backend surfaces as an error instead of a
// hung request.
const requestTimeout = 10 * time.Second

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// Handler serves POST /graphql. Each request gets its own loader set;
// the caches never outlive the request or leak between users.
func Handler(schema graphql.Schema, r *Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req graphqlRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), requestTimeout)
		defer cancel()
		ctx = auth.WithSession(ctx, sessions.Default(c))
		ctx = loaders.NewContext(ctx, loaders.New(r.Users, r.Votes))

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			OperationName:  req.OperationName,
			VariableValues: req.Variables,
			Context:        ctx,
		})
		c.JSON(http.StatusOK, result)
	}
}
