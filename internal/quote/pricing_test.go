package quote

import (
	"encoding/json"
	"testing"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireDecimal(t *testing.T, want int64, got decimal.Decimal, context ...string) {
	t.Helper()
	require.Truef(t, got.Equal(dec(want)), "want %d got %s %v", want, got.String(), context)
}

func TestComputeReferenceScenario(t *testing.T) {
	b := Compute(referenceConfiguration(), catalog.Default())

	want := []struct {
		label     string
		quantity  int64
		unitPrice int64
		lineTotal int64
	}{
		{"Cámaras (2 interior, 1 exterior)", 3, 2000, 6000},
		{"Resolución 4MP", 3, 350, 1050},
		{"Instalación Interior", 2, 200, 400},
		{"Instalación Exterior", 1, 350, 350},
		{"DVR/NVR", 1, 2500, 2500},
		{"Servicio de instalación: Instalación completa", 1, 500, 500},
		{"Cableado (20 metros)", 20, 80, 1600},
		{"Almacenamiento: Disco Duro 1TB", 1, 1200, 1200},
		{"Acceso Remoto", 1, 500, 500},
	}

	require.Len(t, b.LineItems, len(want))
	for i, w := range want {
		item := b.LineItems[i]
		assert.Equal(t, w.label, item.Label)
		requireDecimal(t, w.quantity, item.Quantity, item.Label)
		requireDecimal(t, w.unitPrice, item.UnitPrice, item.Label)
		requireDecimal(t, w.lineTotal, item.LineTotal, item.Label)
	}

	requireDecimal(t, 14100, b.Subtotal)
	requireDecimal(t, 14100, b.Total)
}

func TestComputeIsIdempotent(t *testing.T) {
	cfg := referenceConfiguration()
	c := catalog.Default()

	first, err := json.Marshal(Compute(cfg, c))
	require.NoError(t, err)
	second, err := json.Marshal(Compute(cfg, c))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestComputeDoesNotMutateConfiguration(t *testing.T) {
	cfg := referenceConfiguration()
	before := cfg.Clone()

	Compute(cfg, catalog.Default())

	assert.Equal(t, before.PhysicalTypes, cfg.PhysicalTypes)
	assert.Equal(t, before.InteriorCount, cfg.InteriorCount)
}

func TestComputeMonotonicInCounts(t *testing.T) {
	c := catalog.Default()
	base := referenceConfiguration()

	for _, field := range []Field{FieldInteriorCount, FieldExteriorCount} {
		cfg := base.Clone()
		prev := Compute(cfg, c).Total
		for i := 0; i < 5; i++ {
			require.NoError(t, cfg.AdjustCount(field, 1))
			next := Compute(cfg, c).Total
			assert.True(t, next.GreaterThanOrEqual(prev), "%s step %d: %s < %s", field, i, next, prev)
			prev = next
		}
	}
}

func TestComputeZeroCameras(t *testing.T) {
	cfg := referenceConfiguration()
	cfg.InteriorCount = 0
	cfg.ExteriorCount = 0
	cfg.NeedsMonitor = catalog.Yes
	cfg.MonitorSize = "22in"

	b := Compute(cfg, catalog.Default())

	for _, prefix := range []string{"Cámaras", "Resolución", "Instalación Interior", "Instalación Exterior"} {
		_, ok := b.Find(prefix)
		assert.False(t, ok, "unexpected %q line", prefix)
	}
	for _, prefix := range []string{"DVR/NVR", "Servicio de instalación", "Cableado", "Almacenamiento", "Acceso Remoto", "Monitor"} {
		_, ok := b.Find(prefix)
		assert.True(t, ok, "missing %q line", prefix)
	}
	requireDecimal(t, 2500+500+1600+1200+500+2200, b.Total)
}

func TestComputeEmptyConfiguration(t *testing.T) {
	b := Compute(NewConfiguration(dec(10)), catalog.Default())

	assert.Empty(t, b.LineItems)
	assert.True(t, b.Subtotal.IsZero())
	assert.True(t, b.Total.IsZero())
}

func TestComputeUnknownIDsContributeZero(t *testing.T) {
	c := catalog.Default()
	baseline := Compute(referenceConfiguration(), c)

	tests := []struct {
		name   string
		mutate func(*Configuration)
		delta  int64
	}{
		{"night vision", func(cfg *Configuration) { cfg.NightVisionType = "thermal" }, -200 * 3},
		{"technology", func(cfg *Configuration) { cfg.TechnologyType = "fiber" }, -400 * 3},
		{"physical type", func(cfg *Configuration) { cfg.PhysicalTypes = []string{"fisheye"} }, -200 * 3},
		{"resolution", func(cfg *Configuration) { cfg.Resolution = "16mp" }, -1050},
		{"dvr", func(cfg *Configuration) { cfg.HasDVR = "maybe" }, -2500},
		{"installation service", func(cfg *Configuration) { cfg.InstallationService = "premium" }, -500 - 1600},
		{"storage", func(cfg *Configuration) { cfg.Storage = "8tb" }, -1200},
		{"remote access", func(cfg *Configuration) { cfg.RemoteAccess = "sometimes" }, -500},
		{"monitor size", func(cfg *Configuration) { cfg.NeedsMonitor = catalog.Yes; cfg.MonitorSize = "55in" }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := referenceConfiguration()
			tt.mutate(&cfg)

			var b Breakdown
			require.NotPanics(t, func() { b = Compute(cfg, c) })
			requireDecimal(t, baseline.Total.IntPart()+tt.delta, b.Total)
		})
	}
}

func TestComputeAveragesPhysicalTypeSurcharge(t *testing.T) {
	cfg := referenceConfiguration()
	cfg.PhysicalTypes = []string{"dome", "ptz"}

	b := Compute(cfg, catalog.Default())

	cameras, ok := b.Find("Cámaras")
	require.True(t, ok)
	// 1200 + 200 + 400 + (200 + 2300) / 2
	requireDecimal(t, 3050, cameras.UnitPrice)
	requireDecimal(t, 3050*3, cameras.LineTotal)
}

func TestComputeAverageRoundsOnlyTheLineTotal(t *testing.T) {
	cfg := referenceConfiguration()
	cfg.PhysicalTypes = []string{"bullet", "dome", "ptz"}

	b := Compute(cfg, catalog.Default())

	cameras, ok := b.Find("Cámaras")
	require.True(t, ok)
	assert.Equal(t, "2633.33", cameras.UnitPrice.String())
	// 3 * (1800 + 2500/3), not 3 * 2633.33
	requireDecimal(t, 7900, cameras.LineTotal)
	assert.Equal(t, "7900", cameras.LineTotal.String())
}

func TestComputeCablingOnlyForCablingServices(t *testing.T) {
	c := catalog.Default()

	for _, svc := range []string{"none", "basic"} {
		cfg := referenceConfiguration()
		cfg.InstallationService = svc
		_, ok := Compute(cfg, c).Find("Cableado")
		assert.False(t, ok, "service %s must not charge cabling", svc)
	}

	cfg := referenceConfiguration()
	cfg.InstallationService = "cabling"
	item, ok := Compute(cfg, c).Find("Cableado")
	require.True(t, ok)
	requireDecimal(t, 1600, item.LineTotal)
}

func TestComputeSkipsStorageWhenDVROwned(t *testing.T) {
	cfg := referenceConfiguration()
	cfg.HasDVR = catalog.Yes

	b := Compute(cfg, catalog.Default())

	_, ok := b.Find("Almacenamiento")
	assert.False(t, ok)
	_, ok = b.Find("DVR/NVR")
	assert.False(t, ok, "owning a recorder contributes nothing")
	requireDecimal(t, 14100-2500-1200, b.Total)
}

func TestComputeMonitorOnlyWhenNeeded(t *testing.T) {
	c := catalog.Default()

	cfg := referenceConfiguration()
	cfg.MonitorSize = "24in"
	_, ok := Compute(cfg, c).Find("Monitor")
	assert.False(t, ok, "monitor size is ignored unless a monitor is needed")

	cfg.NeedsMonitor = catalog.Yes
	item, ok := Compute(cfg, c).Find("Monitor")
	require.True(t, ok)
	assert.Equal(t, `Monitor Monitor 24"`, item.Label)
	requireDecimal(t, 2600, item.LineTotal)
}

func TestComputeFractionalCableLength(t *testing.T) {
	cfg := referenceConfiguration()
	cfg.CableLength = decimal.RequireFromString("12.5")

	item, ok := Compute(cfg, catalog.Default()).Find("Cableado")
	require.True(t, ok)
	assert.Equal(t, "Cableado (12.5 metros)", item.Label)
	requireDecimal(t, 1000, item.LineTotal)
}
