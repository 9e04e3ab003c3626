package main

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/graphql-go/graphql"

	"github.com/FahriNazarudin/Frog/followRepo"
	"github.com/FahriNazarudin/Frog/models"
	"github.com/FahriNazarudin/Frog/postRepo"
	"github.com/FahriNazarudin/Frog/userRepo"
)

type Server struct {
	config  models.Config
	app     models.AppConfig
	posts   postRepo.PostRepo // cached decorator in production wiring
	users   userRepo.UserRepo
	follows followRepo.FollowRepo
	auth    AuthResolver
	schema  graphql.Schema
	router  *http.ServeMux
}

func NewServer(config models.Config, app models.AppConfig, posts postRepo.PostRepo, users userRepo.UserRepo, follows followRepo.FollowRepo, auth AuthResolver) (*Server, error) {
	server := &Server{
		config:  config,
		app:     app,
		posts:   posts,
		users:   users,
		follows: follows,
		auth:    auth,
		router:  http.NewServeMux(),
	}
	schema, err := server.buildSchema()
	if err != nil {
		return nil, err
	}
	server.schema = schema
	server.addRoutes()
	return server, nil
}

func (s *Server) addRoutes() {
	s.router.HandleFunc("POST /graphql", s.graphqlHandler)
	s.router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})
}

func (s *Server) start() error {
	handler := loggingMiddleware(tokenMiddleware(s.router))

	httpServer := &http.Server{
		Addr:    net.JoinHostPort(s.config.ServerHost, s.config.ServerPort),
		Handler: handler,
	}

	log.Printf("GraphQL server starting on %s:%s", s.config.ServerHost, s.config.ServerPort)
	return httpServer.ListenAndServe()
}

type graphqlRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func (s *Server) graphqlHandler(w http.ResponseWriter, r *http.Request) {
	var req graphqlRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	// defensive timeout on every database and cache call downstream
	timeout := time.Duration(s.app.Server.RequestTimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	result := graphql.Do(graphql.Params{
		Schema:         s.schema,
		RequestString:  req.Query,
		OperationName:  req.OperationName,
		VariableValues: req.Variables,
		Context:        ctx,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		log.Println("Error encoding graphql response: ", err.Error())
	}
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		log.Printf("Request{%s}: %s %s", requestID, r.Method, r.URL.Path)
		next.ServeHTTP(w, r)
	})
}

// tokenMiddleware only carries the bearer credential into the request
// context. Enforcement happens per operation in the resolvers, since
// register and login take no credential.
func tokenMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(authHeader, "Bearer ")
		if authHeader != "" && ok && token != "" {
			ctx := context.WithValue(r.Context(), tokenContextKey, token)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}
