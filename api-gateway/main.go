package main

import (
	"log"
	"net/http"

	"ninedelivery/api-gateway/internal/gateway"
	"ninedelivery/config"

	"github.com/rs/cors"
)

func main() {
	gw := gateway.NewGateway(gateway.Config{
		StorefrontSvcURL: config.GetEnv("STOREFRONT_SVC_URL", "http://localhost:8081"),
		StatsSvcURL:      config.GetEnv("STATS_SVC_URL", "http://localhost:8083"),
	}, &http.Client{})

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Session-ID"},
	})

	port := config.GetEnv("PORT", "8080")
	log.Printf("API Gateway starting on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(gw.SetupRoutes())))
}
