package models

// Literal fallbacks used when a listing block lacks the corresponding element.
const (
	DefaultRestaurantName    = "RestaurantName"
	DefaultRestaurantCuisine = "RestaurantCuisine"
	DefaultDeliveryTime      = "0 min"
	DefaultDeliveryDistance  = "0 km"
)

// Listing represents one restaurant entry scraped from the listing page.
// JSON keys are kept verbatim for compatibility with existing consumers.
type Listing struct {
	RestaurantName      string  `json:"restaurant_name"`
	RestaurantCuisine   string  `json:"restaurant_cuisine"`
	RestaurantRating    *string `json:"restaurant_rating"`
	DeliveryTime        string  `json:"delivery_time"`
	DeliveryDistance    string  `json:"delivery_distance"`
	PromoAvailable      bool    `json:"promo_available"`
	PromotionalOffers   *string `json:"promotional_offers"`
	RestaurantNotice    *string `json:"restaurant_notice"`
	ImageURL            *string `json:"image_url"`
	RestaurantID        *string `json:"restaurant_id"`
	EstimateDeliveryFee float64 `json:"estimateDeliveryFee"`
}

// StringPtr returns a pointer to s, for populating optional Listing fields.
func StringPtr(s string) *string {
	return &s
}
