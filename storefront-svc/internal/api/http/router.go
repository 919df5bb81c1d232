package httpapi

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

func NewRouter(handler *Handler) http.Handler {
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", SessionHeader},
	}).Handler(r)
}

func StartServer(addr string, handler http.Handler) {
	log.Printf("Storefront Service starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, handler))
}
