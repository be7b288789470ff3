package wizarddto

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/angelmondragon/xpertech-quotes/pkg/money"
	"github.com/shopspring/decimal"
)

// Quote is the API view of a pricing breakdown.
type Quote struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	Total          decimal.Decimal `json:"total"`
	FormattedTotal string          `json:"formatted_total"`
	LineItems      []LineItem      `json:"line_items"`
}

type LineItem struct {
	Label     string          `json:"label"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

func NewQuote(b quote.Breakdown, symbol string) Quote {
	items := make([]LineItem, 0, len(b.LineItems))
	for _, item := range b.LineItems {
		items = append(items, LineItem{
			Label:     item.Label,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			LineTotal: item.LineTotal,
		})
	}
	return Quote{
		Subtotal:       b.Subtotal,
		Total:          b.Total,
		FormattedTotal: money.Format(b.Total, symbol),
		LineItems:      items,
	}
}

// QuoteRequest is a complete configuration priced without a session.
type QuoteRequest struct {
	InteriorCount       int              `json:"interior_count" validate:"gte=0,lte=500"`
	ExteriorCount       int              `json:"exterior_count" validate:"gte=0,lte=500"`
	NightVisionType     string           `json:"night_vision_type" validate:"max=64"`
	TechnologyType      string           `json:"technology_type" validate:"max=64"`
	PhysicalTypes       []string         `json:"physical_types" validate:"max=8,dive,required,max=64"`
	Resolution          string           `json:"resolution" validate:"max=64"`
	HasDVR              string           `json:"has_dvr" validate:"max=64"`
	Storage             string           `json:"storage" validate:"max=64"`
	RemoteAccess        string           `json:"remote_access" validate:"max=64"`
	NeedsMonitor        string           `json:"needs_monitor" validate:"max=64"`
	MonitorSize         string           `json:"monitor_size" validate:"max=64"`
	InstallationService string           `json:"installation_service" validate:"max=64"`
	CableLength         *decimal.Decimal `json:"cable_length"`
	Location            string           `json:"location" validate:"max=200"`
}

// ToConfiguration builds the configuration through the same field rules the
// wizard applies, so WiFi exclusivity and value checks match.
func (r QuoteRequest) ToConfiguration(defaultCableLength decimal.Decimal) (quote.Configuration, error) {
	cfg := quote.NewConfiguration(defaultCableLength)

	choices := []struct {
		field quote.Field
		value string
	}{
		{quote.FieldInteriorCount, strconv.Itoa(r.InteriorCount)},
		{quote.FieldExteriorCount, strconv.Itoa(r.ExteriorCount)},
		{quote.FieldNightVisionType, r.NightVisionType},
		{quote.FieldTechnologyType, r.TechnologyType},
		{quote.FieldResolution, r.Resolution},
		{quote.FieldHasDVR, r.HasDVR},
		{quote.FieldStorage, r.Storage},
		{quote.FieldRemoteAccess, r.RemoteAccess},
		{quote.FieldNeedsMonitor, r.NeedsMonitor},
		{quote.FieldMonitorSize, r.MonitorSize},
		{quote.FieldInstallationService, r.InstallationService},
		{quote.FieldLocation, strings.TrimSpace(r.Location)},
	}
	for _, ch := range choices {
		if err := cfg.ApplyFieldUpdate(ch.field, ch.value); err != nil {
			return quote.Configuration{}, err
		}
	}

	ids := make([]string, 0, len(r.PhysicalTypes))
	seen := map[string]bool{}
	for _, id := range r.PhysicalTypes {
		id = strings.TrimSpace(id)
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(ids) > 1 && seen[catalog.PhysicalWiFi] {
		return quote.Configuration{}, pkgerrors.New(pkgerrors.CodeValidation, "wifi cameras cannot be combined with other types").
			WithDetails(map[string]any{"field": "physical_types"})
	}
	for _, id := range ids {
		if err := cfg.ApplyFieldUpdate(quote.FieldPhysicalType, id); err != nil {
			return quote.Configuration{}, err
		}
	}

	if r.CableLength != nil {
		if err := cfg.SetCableLength(*r.CableLength); err != nil {
			return quote.Configuration{}, err
		}
	}
	return cfg, nil
}
