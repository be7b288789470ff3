// Package catalog holds the immutable option tables and price constants used
// to quote a CCTV installation.
package catalog

import "github.com/shopspring/decimal"

// TableName identifies one option category.
type TableName string

const (
	TableNightVision         TableName = "night_vision"
	TableTechnology          TableName = "technology"
	TablePhysicalType        TableName = "physical_type"
	TableResolution          TableName = "resolution"
	TablePlacement           TableName = "placement"
	TableDVR                 TableName = "dvr"
	TableInstallationService TableName = "installation_service"
	TableStorage             TableName = "storage"
	TableRemoteAccess        TableName = "remote_access"
	TableMonitorNeed         TableName = "monitor_need"
	TableMonitorSize         TableName = "monitor_size"
)

// TableNames lists every table in display order.
var TableNames = []TableName{
	TableNightVision,
	TableTechnology,
	TablePhysicalType,
	TableResolution,
	TablePlacement,
	TableDVR,
	TableInstallationService,
	TableStorage,
	TableRemoteAccess,
	TableMonitorNeed,
	TableMonitorSize,
}

// Well-known ids referenced by pricing and the hand-off text.
const (
	Yes = "yes"
	No  = "no"

	PhysicalWiFi = "wifi"

	PlacementInterior = "interior"
	PlacementExterior = "exterior"
)

// Catalog bundles every table plus the scalar price constants. A Catalog is
// never mutated after construction and is safe for concurrent readers.
type Catalog struct {
	tables             map[TableName]Table
	baseCameraPrice    decimal.Decimal
	cablePricePerMeter decimal.Decimal
	defaultCableLength decimal.Decimal
}

// Table returns the named table. Unknown names yield an empty table.
func (c *Catalog) Table(name TableName) Table {
	if c == nil {
		return newTable(name, nil)
	}
	if t, ok := c.tables[name]; ok {
		return t
	}
	return newTable(name, nil)
}

func (c *Catalog) NightVision() Table { return c.Table(TableNightVision) }
func (c *Catalog) Technology() Table { return c.Table(TableTechnology) }
func (c *Catalog) PhysicalTypes() Table { return c.Table(TablePhysicalType) }
func (c *Catalog) Resolutions() Table { return c.Table(TableResolution) }
func (c *Catalog) Placements() Table { return c.Table(TablePlacement) }
func (c *Catalog) DVR() Table { return c.Table(TableDVR) }
func (c *Catalog) InstallationServices() Table { return c.Table(TableInstallationService) }
func (c *Catalog) Storage() Table { return c.Table(TableStorage) }
func (c *Catalog) RemoteAccess() Table { return c.Table(TableRemoteAccess) }
func (c *Catalog) MonitorNeed() Table { return c.Table(TableMonitorNeed) }
func (c *Catalog) MonitorSizes() Table { return c.Table(TableMonitorSize) }

// BaseCameraPrice is the per-camera price before option surcharges.
func (c *Catalog) BaseCameraPrice() decimal.Decimal { return c.baseCameraPrice }

// CablePricePerMeter is charged per metre when the installation service runs cable.
func (c *Catalog) CablePricePerMeter() decimal.Decimal { return c.cablePricePerMeter }

// DefaultCableLength seeds new configurations.
func (c *Catalog) DefaultCableLength() decimal.Decimal { return c.defaultCableLength }

// RequiresCabling reports whether the installation service level implies cable runs.
func (c *Catalog) RequiresCabling(serviceID string) bool {
	e, ok := c.InstallationServices().Lookup(serviceID)
	return ok && e.RequiresCabling
}

// Constants groups the scalar prices of a catalog.
type Constants struct {
	BaseCameraPrice    decimal.Decimal
	CablePricePerMeter decimal.Decimal
	DefaultCableLength decimal.Decimal
}

// New builds a catalog from the given tables. Missing tables are empty.
func New(tables map[TableName][]Entry, consts Constants) *Catalog {
	c := &Catalog{
		tables:             make(map[TableName]Table, len(tables)),
		baseCameraPrice:    consts.BaseCameraPrice,
		cablePricePerMeter: consts.CablePricePerMeter,
		defaultCableLength: consts.DefaultCableLength,
	}
	for name, entries := range tables {
		c.tables[name] = newTable(name, entries)
	}
	return c
}

// Snapshot returns every table's entries keyed by name, for listing and seeding.
func (c *Catalog) Snapshot() map[TableName][]Entry {
	out := make(map[TableName][]Entry, len(TableNames))
	for _, name := range TableNames {
		out[name] = c.Table(name).Entries()
	}
	return out
}

// Constants returns the scalar prices.
func (c *Catalog) Constants() Constants {
	return Constants{
		BaseCameraPrice:    c.baseCameraPrice,
		CablePricePerMeter: c.cablePricePerMeter,
		DefaultCableLength: c.defaultCableLength,
	}
}
