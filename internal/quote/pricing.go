package quote

import (
	"fmt"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/shopspring/decimal"
)

// Line item labels as shown on the results table.
const (
	labelResolution          = "Resolución %s"
	labelCameras             = "Cámaras (%d interior, %d exterior)"
	labelInteriorPlacement   = "Instalación Interior"
	labelExteriorPlacement   = "Instalación Exterior"
	labelDVR                 = "DVR/NVR"
	labelInstallationService = "Servicio de instalación: %s"
	labelCabling             = "Cableado (%s metros)"
	labelStorage             = "Almacenamiento: %s"
	labelRemoteAccess        = "Acceso Remoto"
	labelMonitor             = "Monitor %s"
)

const centPlaces = 2

var one = decimal.NewFromInt(1)

type accumulator struct {
	running decimal.Decimal
	items   []LineItem
}

// add appends a line when its total is non-zero. The line total is computed
// from the exact unit price and rounded to cents afterwards; the unit price is
// rounded only for display.
func (a *accumulator) add(label string, quantity, unitPrice decimal.Decimal) {
	total := unitPrice.Mul(quantity).Round(centPlaces)
	if total.IsZero() {
		return
	}
	a.running = a.running.Add(total)
	a.items = append(a.items, LineItem{
		Label:     label,
		Quantity:  quantity,
		UnitPrice: unitPrice.Round(centPlaces),
		LineTotal: total,
	})
}

func (a *accumulator) flat(label string, unitPrice decimal.Decimal) {
	a.add(label, one, unitPrice)
}

// Compute reduces cfg against c into an itemized estimate. It has no side
// effects and returns identical output for identical input. Ids that do not
// resolve in their table contribute nothing.
func Compute(cfg Configuration, c *catalog.Catalog) Breakdown {
	acc := &accumulator{running: decimal.Zero, items: []LineItem{}}

	totalCameras := cfg.TotalCameras()
	if totalCameras > 0 {
		cameras := decimal.NewFromInt(int64(totalCameras))

		acc.add(fmt.Sprintf(labelCameras, cfg.InteriorCount, cfg.ExteriorCount), cameras, baseCameraPrice(cfg, c))

		if res, ok := c.Resolutions().Lookup(cfg.Resolution); ok {
			acc.add(fmt.Sprintf(labelResolution, res.Name), cameras, res.Price)
		}

		if cfg.InteriorCount > 0 {
			acc.add(labelInteriorPlacement, decimal.NewFromInt(int64(cfg.InteriorCount)), c.Placements().PriceOf(catalog.PlacementInterior))
		}
		if cfg.ExteriorCount > 0 {
			acc.add(labelExteriorPlacement, decimal.NewFromInt(int64(cfg.ExteriorCount)), c.Placements().PriceOf(catalog.PlacementExterior))
		}
	}

	acc.flat(labelDVR, c.DVR().PriceOf(cfg.HasDVR))

	if svc, ok := c.InstallationServices().Lookup(cfg.InstallationService); ok {
		acc.flat(fmt.Sprintf(labelInstallationService, svc.Name), svc.Price)
		if svc.RequiresCabling && cfg.CableLength.IsPositive() {
			acc.add(fmt.Sprintf(labelCabling, cfg.CableLength.String()), cfg.CableLength, c.CablePricePerMeter())
		}
	}

	// Storage is only collected when the visitor needs a recorder.
	if cfg.HasDVR != catalog.Yes {
		if st, ok := c.Storage().Lookup(cfg.Storage); ok {
			acc.flat(fmt.Sprintf(labelStorage, st.Name), st.Price)
		}
	}

	acc.flat(labelRemoteAccess, c.RemoteAccess().PriceOf(cfg.RemoteAccess))

	if cfg.NeedsMonitor == catalog.Yes {
		if m, ok := c.MonitorSizes().Lookup(cfg.MonitorSize); ok {
			acc.flat(fmt.Sprintf(labelMonitor, m.Name), m.Price)
		}
	}

	subtotal := acc.running
	return Breakdown{
		Subtotal:  subtotal,
		Total:     applyAdjustments(subtotal),
		LineItems: acc.items,
	}
}

// baseCameraPrice is the fixed base plus night vision and technology
// surcharges plus the average surcharge of the selected physical types.
func baseCameraPrice(cfg Configuration, c *catalog.Catalog) decimal.Decimal {
	price := c.BaseCameraPrice().
		Add(c.NightVision().PriceOf(cfg.NightVisionType)).
		Add(c.Technology().PriceOf(cfg.TechnologyType))

	// TODO: confirm with sales whether mixed fleets should be priced per type
	// count instead of averaging the surcharge across the selected types.
	if n := len(cfg.PhysicalTypes); n > 0 {
		sum := decimal.Zero
		for _, id := range cfg.PhysicalTypes {
			sum = sum.Add(c.PhysicalTypes().PriceOf(id))
		}
		price = price.Add(sum.Div(decimal.NewFromInt(int64(n))))
	}
	return price
}

// applyAdjustments maps the subtotal to the payable total. No tax or discount
// applies today, so the two are equal.
func applyAdjustments(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal
}
