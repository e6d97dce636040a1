package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/deep-thoughts-api/internal/auth"
	"github.com/yukikurage/deep-thoughts-api/internal/graph"
	"github.com/yukikurage/deep-thoughts-api/internal/middleware"
	"github.com/yukikurage/deep-thoughts-api/internal/models"
	"github.com/yukikurage/deep-thoughts-api/internal/repository"
	"github.com/yukikurage/deep-thoughts-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type handlerTestEnv struct {
	router *gin.Engine
	tokens *auth.Manager
	auth   *services.AuthService
}

// setupHandlerTestEnv wires the full request path: identity middleware in
// front of the GraphQL handler, exactly as cmd/server does.
func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Thought{},
		&models.Reaction{},
		&models.Friendship{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	tokens := auth.NewManager("test-secret")
	userRepo := repository.NewUserRepository(db)
	thoughtRepo := repository.NewThoughtRepository(db)
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	thoughtService := services.NewThoughtService(thoughtRepo)

	schema, err := graph.NewSchema(graph.NewResolver(authService, userService, thoughtService))
	require.NoError(t, err)

	handler := NewGraphQLHandler(schema)

	r := gin.New()
	gql := r.Group("/graphql")
	gql.Use(middleware.ResolveIdentity(tokens))
	gql.POST("", handler.Post)
	gql.GET("", handler.Get)

	return handlerTestEnv{
		router: r,
		tokens: tokens,
		auth:   authService,
	}
}

type graphQLResponse struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

func postGraphQL(t *testing.T, env handlerTestEnv, body map[string]interface{}, authorization string) graphQLResponse {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()

	env.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp graphQLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGraphQLHandler_AddThoughtWithBearerToken(t *testing.T) {
	env := setupHandlerTestEnv(t)

	_, token, err := env.auth.Signup(services.SignupInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	resp := postGraphQL(t, env, map[string]interface{}{
		"query": `mutation { addThought(thoughtText: "over the wire") { thoughtText username } }`,
	}, "Bearer "+token)

	require.Empty(t, resp.Errors)

	var thought struct {
		ThoughtText string `json:"thoughtText"`
		Username    string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["addThought"], &thought))
	require.Equal(t, "over the wire", thought.ThoughtText)
	require.Equal(t, "alice", thought.Username)
}

func TestGraphQLHandler_TokenInBodyField(t *testing.T) {
	env := setupHandlerTestEnv(t)

	_, token, err := env.auth.Signup(services.SignupInput{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	resp := postGraphQL(t, env, map[string]interface{}{
		"query": `{ me { username } }`,
		"token": token,
	}, "")

	require.Empty(t, resp.Errors)

	var me struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["me"], &me))
	require.Equal(t, "bob", me.Username)
}

func TestGraphQLHandler_AnonymousMutationRejected(t *testing.T) {
	env := setupHandlerTestEnv(t)

	resp := postGraphQL(t, env, map[string]interface{}{
		"query": `mutation { addThought(thoughtText: "nope") { thoughtText } }`,
	}, "")

	require.NotEmpty(t, resp.Errors)
	require.Equal(t, "You need to be logged in!", resp.Errors[0].Message)
}

func TestGraphQLHandler_QueryViaGet(t *testing.T) {
	env := setupHandlerTestEnv(t)

	_, _, err := env.auth.Signup(services.SignupInput{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/graphql?query={users{username}}", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp graphQLResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Empty(t, resp.Errors)

	var users []struct {
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(resp.Data["users"], &users))
	require.Len(t, users, 1)
	require.Equal(t, "carol", users[0].Username)
}

func TestGraphQLHandler_InvalidBody(t *testing.T) {
	env := setupHandlerTestEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/graphql", bytes.NewReader([]byte("not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
