// Package extract turns listing-page markup into models.Listing records.
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	urlutil "github.com/law-makers/grabfood/internal/utils/url"
	"github.com/law-makers/grabfood/pkg/models"
	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

// Selectors locate the pieces of a listing block. The defaults match the
// hashed class names GrabFood ships on its restaurant search page.
type Selectors struct {
	Block   string // one listing block
	Name    string
	Cuisine string
	Numbers string // rating and delivery-info cells
	Promo   string
	Image   string
	Link    string
	Notice  string // inline badges; the second one is the notice
}

// DefaultSelectors returns the selectors for the current page layout.
func DefaultSelectors() Selectors {
	return Selectors{
		Block:   "div.ant-col-24",
		Name:    "p.name___2epcT",
		Cuisine: "div.basicInfoRow___UZM8d.cuisine___T2tCh",
		Numbers: "div.numbersChild___2qKMV",
		Promo:   "span.discountText___GQCkj",
		Image:   "img",
		Link:    "a",
		Notice:  "span",
	}
}

// Extractor derives listings from markup snapshots. It holds no state between
// calls; accumulation across snapshots is the caller's job.
type Extractor struct {
	selectors Selectors
	feeRate   float64
}

// New creates an Extractor. A zero feeRate falls back to DefaultFeeRate.
func New(selectors Selectors, feeRate float64) *Extractor {
	if feeRate == 0 {
		feeRate = DefaultFeeRate
	}
	return &Extractor{
		selectors: selectors,
		feeRate:   feeRate,
	}
}

// Extract parses markup with the default selectors and fee rate.
func Extract(markup string) ([]models.Listing, error) {
	return New(DefaultSelectors(), DefaultFeeRate).Extract(markup)
}

// Extract parses markup and returns one listing per located block, in
// document order. Missing fields fall back to defaults; only a malformed
// delivery distance is an error.
func (e *Extractor) Extract(markup string) ([]models.Listing, error) {
	root, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	blocks := doc.Find(e.selectors.Block)
	listings := make([]models.Listing, 0, blocks.Length())

	var extractErr error
	blocks.EachWithBreak(func(i int, block *goquery.Selection) bool {
		listing, err := e.listing(block)
		if err != nil {
			extractErr = fmt.Errorf("listing block %d: %w", i, err)
			return false
		}
		listings = append(listings, listing)
		return true
	})
	if extractErr != nil {
		return nil, extractErr
	}

	log.Debug().
		Int("blocks", blocks.Length()).
		Int("listings", len(listings)).
		Msg("Extracted listings from snapshot")

	return listings, nil
}

func (e *Extractor) listing(block *goquery.Selection) (models.Listing, error) {
	s := e.selectors

	listing := models.Listing{
		RestaurantName:    firstText(block, s.Name, models.DefaultRestaurantName),
		RestaurantCuisine: firstText(block, s.Cuisine, models.DefaultRestaurantCuisine),
	}

	// Two cells mean rating + delivery info; otherwise the only cell
	// (if any) is the delivery info.
	var deliveryInfo string
	numbers := block.Find(s.Numbers)
	if numbers.Length() == 2 {
		listing.RestaurantRating = models.StringPtr(trimmedText(numbers.Eq(0)))
		deliveryInfo = trimmedText(numbers.Eq(1))
	} else if numbers.Length() > 0 {
		deliveryInfo = trimmedText(numbers.First())
	}
	listing.DeliveryTime, listing.DeliveryDistance = DeliveryInfo(deliveryInfo)

	if src, ok := block.Find(s.Image).First().Attr("src"); ok {
		listing.ImageURL = models.StringPtr(src)
	}

	if promo := block.Find(s.Promo).First(); promo.Length() > 0 {
		listing.PromoAvailable = true
		listing.PromotionalOffers = models.StringPtr(trimmedText(promo))
	}

	if href, ok := block.Find(s.Link).First().Attr("href"); ok {
		id := strings.TrimRight(urlutil.LastPathSegment(href), "?")
		listing.RestaurantID = models.StringPtr(id)
	}

	fee, err := deliveryFee(listing.DeliveryDistance, e.feeRate)
	if err != nil {
		return models.Listing{}, err
	}
	listing.EstimateDeliveryFee = fee

	if badges := block.Find(s.Notice); badges.Length() > 1 {
		listing.RestaurantNotice = models.StringPtr(trimmedText(badges.Eq(1)))
	}

	return listing, nil
}

// firstText returns the trimmed text of the first match, or fallback when
// nothing matches.
func firstText(block *goquery.Selection, selector, fallback string) string {
	sel := block.Find(selector).First()
	if sel.Length() == 0 {
		return fallback
	}
	return trimmedText(sel)
}

func trimmedText(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.Text())
}
