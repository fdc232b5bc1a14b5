package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/law-makers/grabfood/internal/sink"
	"github.com/law-makers/grabfood/internal/utils/output"
	"github.com/law-makers/grabfood/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

const snapshot = `<html><body>
<div class="ant-col-24"><a href="/sg/en/restaurant/a/4-AAA"><p class="name___2epcT">Alpha</p>
<div class="numbersChild___2qKMV">4.2</div><div class="numbersChild___2qKMV">20 mins • 2 km</div></a></div>
<div class="ant-col-24"><a href="/sg/en/restaurant/b/4-BBB"><p class="name___2epcT">Beta</p>
<div class="numbersChild___2qKMV">35 mins • 4.5 km</div></a></div>
<div class="ant-col-24"><a href="/sg/en/restaurant/a/4-AAA"><p class="name___2epcT">Alpha</p></a></div>
</body></html>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	chdir(t, t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

// resetFlags restores every flag in the command tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestParseCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "snapshot.html")
	require.NoError(t, os.WriteFile(input, []byte(snapshot), 0644))
	outFile := filepath.Join(dir, "out.ndjson")

	out, err := execute(t, "parse", input, "-o", outFile, "-q")
	require.NoError(t, err)

	assert.Equal(t, "Data saved and compressed to "+outFile+".gz\n", out)

	listings, err := sink.Load(outFile + ".gz")
	require.NoError(t, err)
	require.Len(t, listings, 2)
	assert.Equal(t, "Alpha", listings[0].RestaurantName)
	assert.Equal(t, 10.0, listings[0].EstimateDeliveryFee)
	assert.Equal(t, 22.5, listings[1].EstimateDeliveryFee)
}

func TestParseCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "parse", filepath.Join(t.TempDir(), "nope.html"), "-q")
	assert.ErrorContains(t, err, "failed to read snapshot")
}

func TestInspectCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.ndjson")
	_, _, err := sink.Save([]models.Listing{
		{RestaurantName: "Alpha", DeliveryTime: "20 mins", DeliveryDistance: "2 km", EstimateDeliveryFee: 10, RestaurantRating: models.StringPtr("4.2")},
		{RestaurantName: "Beta", DeliveryTime: "35 mins", DeliveryDistance: "4 km", EstimateDeliveryFee: 20, PromoAvailable: true},
	}, path, sink.Options{})
	require.NoError(t, err)

	out, err := execute(t, "inspect", path+".gz", "--format", "csv", "--limit", "1", "-q")
	require.NoError(t, err)

	assert.Contains(t, out, "Listings:      2")
	assert.Contains(t, out, "With rating:   1")
	assert.Contains(t, out, "Average fee:   15.00")
	assert.Contains(t, out, "Alpha,")
	assert.NotContains(t, out, "Beta,")
}

func TestInspectCommand_FlagsDoNotLeak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.ndjson")
	_, _, err := sink.Save([]models.Listing{{RestaurantName: "Alpha"}, {RestaurantName: "Beta"}}, path, sink.Options{})
	require.NoError(t, err)

	_, err = execute(t, "inspect", path, "--format", "csv", "--limit", "1", "-q")
	require.NoError(t, err)
	resetFlags(rootCmd)

	out, err := execute(t, "inspect", path)
	require.NoError(t, err)

	assert.Equal(t, output.FormatTable, inspectFormat)
	assert.Equal(t, 20, inspectLimit)
	assert.Contains(t, out, "Beta")
	assert.NotContains(t, out, "Alpha,")
}

func TestInspectCommand_BadFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.ndjson")
	_, _, err := sink.Save([]models.Listing{{RestaurantName: "Alpha"}}, path, sink.Options{})
	require.NoError(t, err)

	_, err = execute(t, "inspect", path, "--format", "xml", "-q")
	assert.ErrorContains(t, err, "unknown format")
}

func TestScrapeCommand_RejectsBadURL(t *testing.T) {
	_, err := execute(t, "scrape", "ftp://food.grab.com", "-q")
	assert.Error(t, err)
}

func TestRenderHelp(t *testing.T) {
	var buf bytes.Buffer
	renderHelp(&buf, scrapeCmd)
	out := buf.String()

	assert.Contains(t, out, "SCRAPE")
	assert.Contains(t, out, "$ grabfood scrape")
	assert.Contains(t, out, "--harvest-wait")
	assert.Contains(t, out, "--verbose")
}

func TestWrapText(t *testing.T) {
	text := "one two three four five\n- keep this item\n\nsecond paragraph"
	got := wrapText(text, 10)

	assert.Equal(t, "one two\nthree four\nfive\n- keep this item\n\nsecond\nparagraph", got)
	for _, line := range strings.Split(got, "\n") {
		if !strings.HasPrefix(line, "-") {
			assert.LessOrEqual(t, len(line), 10)
		}
	}
}

// chdir changes the working directory for the duration of the test,
// matching testing.T.Chdir (Go 1.24+) on older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
