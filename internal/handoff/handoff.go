// Package handoff renders the pre-filled chat message a visitor sends to the
// sales line once a quotation is ready.
package handoff

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	"github.com/angelmondragon/xpertech-quotes/pkg/money"
)

const (
	greeting    = "Hola, me interesa cotizar un sistema de cámaras con las siguientes características: "
	unspecified = "No especificado"
)

// Handoff is the rendered message plus the deep link that opens it.
type Handoff struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// Composer binds the catalog and the destination of the hand-off.
type Composer struct {
	catalog *catalog.Catalog
	baseURL string
	phone   string
	symbol  string
}

func NewComposer(c *catalog.Catalog, baseURL, phone, symbol string) *Composer {
	if symbol == "" {
		symbol = money.DefaultSymbol
	}
	return &Composer{catalog: c, baseURL: baseURL, phone: phone, symbol: symbol}
}

func (h *Composer) Compose(cfg quote.Configuration, b quote.Breakdown) Handoff {
	text := Message(cfg, b, h.catalog, h.symbol)
	return Handoff{Message: text, URL: Link(h.baseURL, h.phone, text)}
}

// Message renders the summary in the order the sales team reads it. Ids are
// shown by catalog name, falling back to the raw id.
func Message(cfg quote.Configuration, b quote.Breakdown, c *catalog.Catalog, symbol string) string {
	var sb strings.Builder
	sb.WriteString(greeting)

	line := func(label, value string) {
		sb.WriteString("\n- ")
		sb.WriteString(label)
		sb.WriteString(": ")
		sb.WriteString(value)
	}
	line("Cámaras interiores", strconv.Itoa(cfg.InteriorCount))
	line("Cámaras exteriores", strconv.Itoa(cfg.ExteriorCount))
	line("Visión nocturna", nameOf(c.NightVision(), cfg.NightVisionType))
	line("Tecnología", nameOf(c.Technology(), cfg.TechnologyType))
	line("Tipo de cámara", physicalTypes(cfg, c))
	line("Resolución", nameOf(c.Resolutions(), cfg.Resolution))
	line("Acceso Remoto", yesNo(cfg.RemoteAccess, "Sí", "No"))

	monitor := yesNo(cfg.NeedsMonitor, "Sí", "No")
	if cfg.NeedsMonitor == catalog.Yes && cfg.MonitorSize != "" {
		monitor += " (" + nameOf(c.MonitorSizes(), cfg.MonitorSize) + ")"
	}
	line("Monitor", monitor)

	line("DVR/NVR", yesNo(cfg.HasDVR, "Ya cuento con uno", "Necesito uno"))

	installation := nameOf(c.InstallationServices(), cfg.InstallationService)
	if c.RequiresCabling(cfg.InstallationService) && cfg.CableLength.IsPositive() {
		installation += " (" + cfg.CableLength.String() + " metros de cableado)"
	}
	line("Instalación", installation)

	if cfg.HasDVR != catalog.Yes {
		line("Almacenamiento", nameOf(c.Storage(), cfg.Storage))
	}

	location := strings.TrimSpace(cfg.Location)
	if location == "" {
		location = unspecified
	}
	line("Ubicación", location)

	sb.WriteString("\n\nCotización estimada: ")
	sb.WriteString(money.Format(b.Total, symbol))
	return sb.String()
}

// componentEscaper turns url.QueryEscape output into encodeURIComponent
// output: spaces become %20 and ! ' ( ) * stay literal.
var componentEscaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// Link builds <baseURL>/<phone>?text=<encoded text>. Spaces are encoded as
// %20 so chat clients that do not decode '+' still show the message.
func Link(baseURL, phone, text string) string {
	encoded := componentEscaper.Replace(url.QueryEscape(text))
	return strings.TrimRight(baseURL, "/") + "/" + url.PathEscape(phone) + "?text=" + encoded
}

func nameOf(t catalog.Table, id string) string {
	if id == "" {
		return unspecified
	}
	return t.NameOf(id)
}

func physicalTypes(cfg quote.Configuration, c *catalog.Catalog) string {
	if len(cfg.PhysicalTypes) == 0 {
		return unspecified
	}
	names := make([]string, len(cfg.PhysicalTypes))
	for i, id := range cfg.PhysicalTypes {
		names[i] = c.PhysicalTypes().NameOf(id)
	}
	return strings.Join(names, ", ")
}

func yesNo(value, yes, no string) string {
	switch value {
	case catalog.Yes:
		return yes
	case catalog.No:
		return no
	case "":
		return unspecified
	}
	return value
}
