package extract

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/law-makers/grabfood/pkg/models"
)

const (
	// DeliverySeparator splits the combined "time • distance" badge.
	DeliverySeparator = "•"

	// mojibakeSeparator is DeliverySeparator after a UTF-8 → cp1252 round trip,
	// which some cached snapshots carry.
	mojibakeSeparator = "â€¢"

	// DefaultFeeRate is the fee charged per unit of delivery distance.
	DefaultFeeRate = 5.0
)

// DeliveryInfo splits a combined delivery badge into its time and distance
// parts. Anything other than exactly two parts yields the literal defaults.
func DeliveryInfo(text string) (deliveryTime, deliveryDistance string) {
	if text == "" {
		return models.DefaultDeliveryTime, models.DefaultDeliveryDistance
	}

	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "\u00a0", " "))
	cleaned = strings.ReplaceAll(cleaned, mojibakeSeparator, DeliverySeparator)

	parts := strings.Split(cleaned, DeliverySeparator)
	if len(parts) != 2 {
		return models.DefaultDeliveryTime, models.DefaultDeliveryDistance
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

// DeliveryFee returns DefaultFeeRate times the leading number of distance.
func DeliveryFee(distance string) (float64, error) {
	return deliveryFee(distance, DefaultFeeRate)
}

func deliveryFee(distance string, rate float64) (float64, error) {
	fields := strings.Fields(distance)
	if len(fields) == 0 {
		return 0, nil
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: distance %q: %v", ErrMalformedDistance, distance, err)
	}

	// JSON has no encoding for non-finite numbers
	fee := value * rate
	if math.IsInf(fee, 0) || math.IsNaN(fee) {
		return 0, fmt.Errorf("%w: distance %q is not finite", ErrMalformedDistance, distance)
	}
	return fee, nil
}
