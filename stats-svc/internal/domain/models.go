package domain

import "time"

const EventCheckoutLinkIssued = "checkout_link_issued"

type CheckoutEventItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CheckoutEvent mirrors what storefront-svc publishes when it hands out a
// WhatsApp link.
type CheckoutEvent struct {
	Type         string              `json:"type"`
	RestaurantID string              `json:"restaurant_id"`
	Items        []CheckoutEventItem `json:"items"`
	Total        float64             `json:"total"`
	Timestamp    time.Time           `json:"timestamp"`
}

type ItemPopularity struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

type PopularityResponse struct {
	RestaurantID string           `json:"restaurant_id"`
	Period       string           `json:"period"`
	Items        []ItemPopularity `json:"items"`
}
