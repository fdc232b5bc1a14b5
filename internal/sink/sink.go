// Package sink persists listings as NDJSON with a gzip-compressed companion file.
package sink

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/law-makers/grabfood/pkg/models"
	"github.com/rs/zerolog/log"
)

// CompressedExt is appended to the NDJSON path for the compressed copy.
const CompressedExt = ".gz"

// Options configures Save.
type Options struct {
	// RemoveUncompressed deletes the NDJSON file after the .gz copy is
	// written. Off by default, so both files remain.
	RemoveUncompressed bool
}

// Dedupe keeps the first listing seen for each restaurant name, preserving
// encounter order.
func Dedupe(listings []models.Listing) []models.Listing {
	seen := make(map[string]bool, len(listings))
	result := make([]models.Listing, 0, len(listings))

	for _, l := range listings {
		if seen[l.RestaurantName] {
			continue
		}
		seen[l.RestaurantName] = true
		result = append(result, l)
	}

	return result
}

// Save dedupes listings, writes them to path as NDJSON and compresses the
// result to path+".gz". It returns the compressed file path and the number
// of listings written.
func Save(listings []models.Listing, path string, opts Options) (string, int, error) {
	unique := Dedupe(listings)

	content, err := encodeNDJSON(unique)
	if err != nil {
		return "", 0, fmt.Errorf("failed to encode listings: %w", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		return "", 0, fmt.Errorf("failed to write file: %w", err)
	}

	gzPath := path + CompressedExt
	if err := compressFile(path, gzPath); err != nil {
		return "", 0, err
	}

	if opts.RemoveUncompressed {
		if err := os.Remove(path); err != nil {
			return "", 0, fmt.Errorf("failed to remove %s: %w", path, err)
		}
	}

	log.Debug().
		Str("file", gzPath).
		Int("listings", len(unique)).
		Int("duplicates", len(listings)-len(unique)).
		Msg("Listings saved")

	return gzPath, len(unique), nil
}

func encodeNDJSON(listings []models.Listing) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	for _, l := range listings {
		// Encode terminates every object with a newline
		if err := enc.Encode(l); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func compressFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}

	zw := gzip.NewWriter(out)
	if _, err := io.Copy(zw, in); err != nil {
		_ = zw.Close()
		_ = out.Close()
		return fmt.Errorf("failed to compress %s: %w", src, err)
	}
	if err := zw.Close(); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to finish %s: %w", dst, err)
	}
	return out.Close()
}

// Load reads listings back from an NDJSON file, transparently decompressing
// files that end in .gz.
func Load(path string) ([]models.Listing, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, CompressedExt) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	var listings []models.Listing
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 4*1024*1024)
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var l models.Listing
		if err := json.Unmarshal(raw, &l); err != nil {
			return nil, fmt.Errorf("%s line %d: %w", path, line, err)
		}
		listings = append(listings, l)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return listings, nil
}
