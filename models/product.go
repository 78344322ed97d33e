package models

// Product mirrors the catalog service's product payload. The web tier only
// relays these fields; pricing data is filled in by the scraper service.
type Product struct {
	ID               int      `json:"id"`
	Name             string   `json:"name"`
	ImageURL         string   `json:"image_url"`
	AverageEbayPrice float64  `json:"average_ebay_price"`
	EbayListings     int      `json:"ebay_listings"`
	EbaySaleAmount   float64  `json:"ebay_sale_amount"`
	SearchVolumeUS   string   `json:"search_volume_us,omitempty"`
	SearchVolumeAU   string   `json:"search_volume_au,omitempty"`
	SearchVolumeUK   string   `json:"search_volume_uk,omitempty"`
	PopularKeywords  []string `json:"popular_keywords,omitempty"`
	LastUpdated      string   `json:"last_updated,omitempty"`
}
