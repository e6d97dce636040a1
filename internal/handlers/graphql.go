package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	apierrors "github.com/yukikurage/deep-thoughts-api/internal/errors"
)

// GraphQLHandler serves the single GraphQL endpoint. Queries and
// mutations are multiplexed over one path; the request context already
// carries the identity (or not) by the time execution starts.
type GraphQLHandler struct {
	schema graphql.Schema
}

// NewGraphQLHandler creates a new GraphQLHandler.
func NewGraphQLHandler(schema graphql.Schema) *GraphQLHandler {
	return &GraphQLHandler{schema: schema}
}

type graphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
	// Token is extracted by the identity middleware; declared here so the
	// envelope binds cleanly when a client sends it in the body.
	Token string `json:"token"`
}

// Post executes a GraphQL request carried in the JSON body.
func (h *GraphQLHandler) Post(c *gin.Context) {
	var req graphQLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	h.execute(c, req.Query, req.OperationName, req.Variables)
}

// Get executes a GraphQL request carried in the query string.
func (h *GraphQLHandler) Get(c *gin.Context) {
	query := c.Query("query")
	if query == "" {
		apierrors.BadRequest(c, "Missing query parameter")
		return
	}

	var variables map[string]interface{}
	if raw := c.Query("variables"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &variables); err != nil {
			apierrors.BadRequest(c, "Invalid variables parameter")
			return
		}
	}

	h.execute(c, query, c.Query("operationName"), variables)
}

func (h *GraphQLHandler) execute(c *gin.Context, query, operationName string, variables map[string]interface{}) {
	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  query,
		OperationName:  operationName,
		VariableValues: variables,
		Context:        c.Request.Context(),
	})

	c.JSON(http.StatusOK, result)
}
