package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTablesHaveUniqueIDs(t *testing.T) {
	c := Default()
	for _, name := range TableNames {
		table := c.Table(name)
		require.NotZero(t, table.Len(), "table %s is empty", name)

		seen := map[string]bool{}
		for _, e := range table.Entries() {
			assert.NotEmpty(t, e.ID, "table %s has an entry without id", name)
			assert.False(t, seen[e.ID], "table %s repeats id %s", name, e.ID)
			assert.False(t, e.Price.IsNegative(), "table %s entry %s has negative price", name, e.ID)
			seen[e.ID] = true
		}
	}
}

func TestLookupUnknownAndEmpty(t *testing.T) {
	c := Default()

	_, ok := c.Resolutions().Lookup("")
	assert.False(t, ok)

	_, ok = c.Resolutions().Lookup("16mp")
	assert.False(t, ok)
	assert.True(t, c.Resolutions().PriceOf("16mp").IsZero())
	assert.Equal(t, "16mp", c.Resolutions().NameOf("16mp"))

	e, ok := c.Resolutions().Lookup("4mp")
	require.True(t, ok)
	assert.True(t, e.Price.Equal(decimal.NewFromInt(350)))
}

func TestPublishedPrices(t *testing.T) {
	c := Default()
	cases := []struct {
		table Table
		id    string
		want  int64
	}{
		{c.NightVision(), "infrared", 200},
		{c.NightVision(), "full-color", 600},
		{c.Technology(), "ip", 400},
		{c.PhysicalTypes(), "ptz", 2300},
		{c.PhysicalTypes(), "wifi", 400},
		{c.PhysicalTypes(), "dome", 200},
		{c.PhysicalTypes(), "bullet", 0},
		{c.Placements(), PlacementInterior, 200},
		{c.Placements(), PlacementExterior, 350},
		{c.DVR(), No, 2500},
		{c.DVR(), Yes, 0},
		{c.InstallationServices(), "complete", 500},
		{c.Storage(), "1tb", 1200},
		{c.RemoteAccess(), Yes, 500},
	}
	for _, tc := range cases {
		got := tc.table.PriceOf(tc.id)
		assert.True(t, got.Equal(decimal.NewFromInt(tc.want)), "%s/%s: got %s want %d", tc.table.Name(), tc.id, got, tc.want)
	}

	assert.True(t, c.BaseCameraPrice().Equal(decimal.NewFromInt(1200)))
	assert.True(t, c.CablePricePerMeter().Equal(decimal.NewFromInt(80)))
}

func TestRequiresCabling(t *testing.T) {
	c := Default()
	assert.True(t, c.RequiresCabling("complete"))
	assert.True(t, c.RequiresCabling("cabling"))
	assert.False(t, c.RequiresCabling("basic"))
	assert.False(t, c.RequiresCabling("none"))
	assert.False(t, c.RequiresCabling("unknown"))
	assert.False(t, c.RequiresCabling(""))
}

func TestEntriesReturnsCopy(t *testing.T) {
	c := Default()
	entries := c.Storage().Entries()
	entries[0].Price = decimal.NewFromInt(1)

	assert.True(t, c.Storage().PriceOf("1tb").Equal(decimal.NewFromInt(1200)))
}

func TestUnknownTableIsEmpty(t *testing.T) {
	c := Default()
	assert.Zero(t, c.Table("lenses").Len())

	var nilCatalog *Catalog
	assert.Zero(t, nilCatalog.Table(TableStorage).Len())
}
