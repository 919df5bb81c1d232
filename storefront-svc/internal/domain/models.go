package domain

import "time"

type MenuExtra struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type MenuItem struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Price       float64     `json:"price"`
	Description string      `json:"description"`
	Available   bool        `json:"available"`
	Category    string      `json:"category"`
	Image       string      `json:"image,omitempty"`
	Extras      []MenuExtra `json:"extras"`
}

type Restaurant struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	Categories    []string   `json:"categories"`
	Phone         string     `json:"phone"`
	Address       string     `json:"address"`
	Hours         string     `json:"hours"`
	Image         string     `json:"image"`
	DeliveryCost  *float64   `json:"delivery_cost,omitempty"`
	EstimatedTime string     `json:"estimated_time,omitempty"`
	OnlyTakeaway  bool       `json:"only_takeaway"`
	Menu          []MenuItem `json:"menu"`
	OpenNow       bool       `json:"open_now"`
}

// FindItem returns the menu item with the given id.
func (r *Restaurant) FindItem(itemID string) (*MenuItem, bool) {
	for i := range r.Menu {
		if r.Menu[i].ID == itemID {
			return &r.Menu[i], true
		}
	}
	return nil, false
}

const EventCheckoutLinkIssued = "checkout_link_issued"

type CheckoutEventItem struct {
	ItemID   string `json:"item_id"`
	Quantity int    `json:"quantity"`
}

// CheckoutEvent is published whenever a customer is handed a WhatsApp link.
type CheckoutEvent struct {
	Type         string              `json:"type"`
	RestaurantID string              `json:"restaurant_id"`
	Items        []CheckoutEventItem `json:"items"`
	Total        float64             `json:"total"`
	Timestamp    time.Time           `json:"timestamp"`
}
