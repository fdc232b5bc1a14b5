package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/law-makers/grabfood/pkg/models"
)

var columns = []string{"name", "cuisine", "rating", "delivery_time", "distance", "fee", "promo", "id"}

// WriteCSV writes one header row and one row per listing.
func WriteCSV(w io.Writer, listings []models.Listing) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(columns); err != nil {
		return err
	}
	for _, l := range listings {
		if err := writer.Write(row(l)); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func row(l models.Listing) []string {
	return []string{
		l.RestaurantName,
		l.RestaurantCuisine,
		deref(l.RestaurantRating),
		l.DeliveryTime,
		l.DeliveryDistance,
		strconv.FormatFloat(l.EstimateDeliveryFee, 'f', -1, 64),
		deref(l.PromotionalOffers),
		deref(l.RestaurantID),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
