package scraper

import (
	"errors"
	"testing"

	"github.com/law-makers/grabfood/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestAccumulator(t *testing.T) {
	acc := NewAccumulator()
	assert.Zero(t, acc.Len())
	assert.Empty(t, acc.Listings())

	acc.Add(models.Listing{RestaurantName: "A"}, models.Listing{RestaurantName: "B"})
	acc.Add(models.Listing{RestaurantName: "A"})
	assert.Equal(t, 3, acc.Len())

	got := acc.Listings()
	got[0].RestaurantName = "changed"
	assert.Equal(t, "A", acc.Listings()[0].RestaurantName)
}

func TestScrapeError(t *testing.T) {
	base := errors.New("boom")
	err := NewScrapeError(ErrCodeWrite, "failed to save", base).WithDetail("file", "data.ndjson")

	assert.Equal(t, "WRITE: failed to save: boom", err.Error())
	assert.ErrorIs(t, err, base)
	assert.ErrorIs(t, err, &ScrapeError{Code: ErrCodeWrite})
	assert.NotErrorIs(t, err, &ScrapeError{Code: ErrCodeParse})
	assert.Equal(t, "data.ndjson", err.Details["file"])
	assert.Equal(t, ErrCodeWrite, CodeOf(err))
	assert.Equal(t, ErrorCode(""), CodeOf(base))
}

func TestStageError_KeepsExistingCode(t *testing.T) {
	inner := NewScrapeError(ErrCodeParse, "bad snapshot", nil)

	assert.Same(t, inner, stageError(ErrCodeBrowser, "outer", inner))
	assert.Equal(t, ErrCodeBrowser, CodeOf(stageError(ErrCodeBrowser, "outer", errors.New("x"))))
}
