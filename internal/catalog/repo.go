package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// constantsCategory holds scalar prices in the same table as option rows.
const constantsCategory = "constants"

const (
	constBaseCameraPrice    = "base_camera_price"
	constCablePricePerMeter = "cable_price_per_meter"
	constDefaultCableLength = "default_cable_length"
)

// PriceRow is one persisted price override.
type PriceRow struct {
	Category        string          `gorm:"primaryKey;size:64"`
	EntryID         string          `gorm:"primaryKey;size:64"`
	Name            string          `gorm:"not null"`
	Description     string          `gorm:"not null;default:''"`
	Price           decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	RequiresCabling bool            `gorm:"not null;default:false"`
	SortOrder       int             `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}

func (PriceRow) TableName() string {
	return "catalog_prices"
}

// Repository persists catalog price overrides.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the overrides table if needed.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&PriceRow{}); err != nil {
		return fmt.Errorf("migrate catalog_prices: %w", err)
	}
	return nil
}

// SeedIfEmpty writes every entry of c when the table has no rows. It reports
// whether rows were inserted.
func (r *Repository) SeedIfEmpty(ctx context.Context, c *Catalog) (bool, error) {
	seeded := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&PriceRow{}).Count(&count).Error; err != nil {
			return fmt.Errorf("count catalog_prices: %w", err)
		}
		if count > 0 {
			return nil
		}
		rows := RowsFromCatalog(c)
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("seed catalog_prices: %w", err)
		}
		seeded = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return seeded, nil
}

// List returns every stored row ordered by category and sort order.
func (r *Repository) List(ctx context.Context) ([]PriceRow, error) {
	var rows []PriceRow
	err := r.db.WithContext(ctx).
		Order("category ASC").
		Order("sort_order ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list catalog_prices: %w", err)
	}
	return rows, nil
}

// Load migrates, seeds from base when empty, then returns base with the
// stored overrides applied.
func (r *Repository) Load(ctx context.Context, base *Catalog) (*Catalog, error) {
	if err := r.Migrate(ctx); err != nil {
		return nil, err
	}
	if _, err := r.SeedIfEmpty(ctx, base); err != nil {
		return nil, err
	}
	rows, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	return ApplyOverrides(base, rows), nil
}

// RowsFromCatalog flattens c into persistable rows.
func RowsFromCatalog(c *Catalog) []PriceRow {
	var rows []PriceRow
	for _, name := range TableNames {
		for i, e := range c.Table(name).Entries() {
			rows = append(rows, PriceRow{
				Category:        string(name),
				EntryID:         e.ID,
				Name:            e.Name,
				Description:     e.Description,
				Price:           e.Price,
				RequiresCabling: e.RequiresCabling,
				SortOrder:       i,
			})
		}
	}
	consts := c.Constants()
	rows = append(rows,
		PriceRow{Category: constantsCategory, EntryID: constBaseCameraPrice, Name: "Precio base por cámara", Price: consts.BaseCameraPrice},
		PriceRow{Category: constantsCategory, EntryID: constCablePricePerMeter, Name: "Cableado por metro", Price: consts.CablePricePerMeter, SortOrder: 1},
		PriceRow{Category: constantsCategory, EntryID: constDefaultCableLength, Name: "Longitud de cable inicial", Price: consts.DefaultCableLength, SortOrder: 2},
	)
	return rows
}

// ApplyOverrides returns a new catalog where rows replace the name,
// description, price and cabling flag of matching entries. Rows that match no
// table or entry of base are ignored, so the option set itself stays fixed.
func ApplyOverrides(base *Catalog, rows []PriceRow) *Catalog {
	byKey := make(map[string]PriceRow, len(rows))
	for _, row := range rows {
		byKey[row.Category+"/"+row.EntryID] = row
	}

	tables := make(map[TableName][]Entry, len(TableNames))
	for name, entries := range base.Snapshot() {
		for i, e := range entries {
			row, ok := byKey[string(name)+"/"+e.ID]
			if !ok {
				continue
			}
			if row.Name != "" {
				e.Name = row.Name
			}
			e.Description = row.Description
			if !row.Price.IsNegative() {
				e.Price = row.Price
			}
			if name == TableInstallationService {
				e.RequiresCabling = row.RequiresCabling
			}
			entries[i] = e
		}
		tables[name] = entries
	}

	consts := base.Constants()
	overrideConst := func(id string, dst *decimal.Decimal) {
		if row, ok := byKey[constantsCategory+"/"+id]; ok && !row.Price.IsNegative() {
			*dst = row.Price
		}
	}
	overrideConst(constBaseCameraPrice, &consts.BaseCameraPrice)
	overrideConst(constCablePricePerMeter, &consts.CablePricePerMeter)
	overrideConst(constDefaultCableLength, &consts.DefaultCableLength)

	return New(tables, consts)
}
