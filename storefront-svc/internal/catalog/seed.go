package catalog

import (
	_ "embed"
	"encoding/json"
	"log"

	"ninedelivery/storefront-svc/internal/domain"
)

//go:embed data/restaurants.json
var seedJSON []byte

// Seed returns the bundled catalog, keeping only valid records.
func Seed() []domain.Restaurant {
	var list []domain.Restaurant
	if err := json.Unmarshal(seedJSON, &list); err != nil {
		log.Printf("Error decoding seed catalog: %v", err)
		return []domain.Restaurant{}
	}
	return FilterValid(list)
}
