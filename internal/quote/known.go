package quote

import (
	"strings"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
)

// CheckFieldValue rejects choice values the catalog does not know. Empty
// values (unset) and non-choice fields always pass. Pricing itself tolerates
// unknown ids; this check is for inbound requests.
func CheckFieldValue(field Field, value string, c *catalog.Catalog) error {
	table, ok := field.CatalogTable()
	if !ok {
		return nil
	}
	id := strings.TrimSpace(value)
	if id == "" || c.Table(table).Has(id) {
		return nil
	}
	return unknownID(field, id, c.Table(table))
}

// CheckKnownIDs applies CheckFieldValue to every choice of cfg.
func CheckKnownIDs(cfg Configuration, c *catalog.Catalog) error {
	choices := []struct {
		field Field
		value string
	}{
		{FieldNightVisionType, cfg.NightVisionType},
		{FieldTechnologyType, cfg.TechnologyType},
		{FieldResolution, cfg.Resolution},
		{FieldHasDVR, cfg.HasDVR},
		{FieldStorage, cfg.Storage},
		{FieldRemoteAccess, cfg.RemoteAccess},
		{FieldNeedsMonitor, cfg.NeedsMonitor},
		{FieldMonitorSize, cfg.MonitorSize},
		{FieldInstallationService, cfg.InstallationService},
	}
	for _, ch := range choices {
		if err := CheckFieldValue(ch.field, ch.value, c); err != nil {
			return err
		}
	}
	for _, id := range cfg.PhysicalTypes {
		if err := CheckFieldValue(FieldPhysicalType, id, c); err != nil {
			return err
		}
	}
	return nil
}

func unknownID(field Field, id string, t catalog.Table) *pkgerrors.Error {
	allowed := make([]string, 0, t.Len())
	for _, e := range t.Entries() {
		allowed = append(allowed, e.ID)
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "unknown "+string(field)+" id").
		WithDetails(map[string]any{"field": string(field), "value": id, "allowed": allowed})
}
