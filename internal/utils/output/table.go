// Package output renders saved listings for the terminal.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/law-makers/grabfood/pkg/models"
)

// Format names accepted by Write.
const (
	FormatTable    = "table"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
)

// Write renders listings in the named format.
func Write(w io.Writer, format string, listings []models.Listing) error {
	switch strings.ToLower(format) {
	case FormatTable, "":
		return WriteTable(w, listings)
	case FormatCSV:
		return WriteCSV(w, listings)
	case FormatJSON:
		return WriteJSON(w, listings)
	case FormatMarkdown, "md":
		return WriteMarkdown(w, listings)
	default:
		return fmt.Errorf("unknown format %q (must be table, csv, json or markdown)", format)
	}
}

// WriteTable writes a rounded box table.
func WriteTable(w io.Writer, listings []models.Listing) error {
	t := newTable(w, listings)
	t.SetStyle(table.StyleRounded)
	t.Render()
	return nil
}

// WriteMarkdown writes a GitHub-flavored markdown table.
func WriteMarkdown(w io.Writer, listings []models.Listing) error {
	newTable(w, listings).RenderMarkdown()
	return nil
}

// newTable loads one header row and one row per listing, mirrored to w.
func newTable(w io.Writer, listings []models.Listing) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)

	t.AppendHeader(tableRow(columns))
	for _, l := range listings {
		t.AppendRow(tableRow(row(l)))
	}
	return t
}

func tableRow(cells []string) table.Row {
	r := make(table.Row, len(cells))
	for i, c := range cells {
		r[i] = c
	}
	return r
}
