package output

import (
	"fmt"
	"io"

	"github.com/law-makers/grabfood/pkg/models"
)

// Summary aggregates a set of saved listings.
type Summary struct {
	Listings   int
	WithRating int
	WithPromo  int
	WithNotice int
	AverageFee float64
	MaxFee     float64
}

// Summarize computes a Summary over listings.
func Summarize(listings []models.Listing) Summary {
	s := Summary{Listings: len(listings)}
	var total float64
	for _, l := range listings {
		if l.RestaurantRating != nil {
			s.WithRating++
		}
		if l.PromoAvailable {
			s.WithPromo++
		}
		if l.RestaurantNotice != nil {
			s.WithNotice++
		}
		total += l.EstimateDeliveryFee
		if l.EstimateDeliveryFee > s.MaxFee {
			s.MaxFee = l.EstimateDeliveryFee
		}
	}
	if len(listings) > 0 {
		s.AverageFee = total / float64(len(listings))
	}
	return s
}

// WriteSummary prints s as labelled lines.
func WriteSummary(w io.Writer, s Summary) error {
	_, err := fmt.Fprintf(w,
		"Listings:      %d\nWith rating:   %d\nWith promo:    %d\nWith notice:   %d\nAverage fee:   %.2f\nMax fee:       %.2f\n",
		s.Listings, s.WithRating, s.WithPromo, s.WithNotice, s.AverageFee, s.MaxFee)
	return err
}
