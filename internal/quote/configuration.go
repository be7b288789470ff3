// Package quote holds the wizard configuration record and the pricing
// reduction that turns it into an itemized estimate.
package quote

import (
	"slices"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/shopspring/decimal"
)

// Configuration is the in-progress selection of one wizard session. Empty
// strings mean "unset".
type Configuration struct {
	InteriorCount       int             `json:"interior_count"`
	ExteriorCount       int             `json:"exterior_count"`
	NightVisionType     string          `json:"night_vision_type"`
	TechnologyType      string          `json:"technology_type"`
	PhysicalTypes       []string        `json:"physical_types"`
	Resolution          string          `json:"resolution"`
	HasDVR              string          `json:"has_dvr"`
	Storage             string          `json:"storage"`
	RemoteAccess        string          `json:"remote_access"`
	NeedsMonitor        string          `json:"needs_monitor"`
	MonitorSize         string          `json:"monitor_size"`
	InstallationService string          `json:"installation_service"`
	CableLength         decimal.Decimal `json:"cable_length"`
	Location            string          `json:"location"`
}

// NewConfiguration returns an empty configuration: zero counts, every choice
// unset and the cable length at its starting value.
func NewConfiguration(defaultCableLength decimal.Decimal) Configuration {
	return Configuration{
		PhysicalTypes: []string{},
		CableLength:   defaultCableLength,
	}
}

// TotalCameras is the interior plus exterior count.
func (c Configuration) TotalCameras() int {
	return c.InteriorCount + c.ExteriorCount
}

// HasPhysicalType reports whether id is part of the physical type set.
func (c Configuration) HasPhysicalType(id string) bool {
	return slices.Contains(c.PhysicalTypes, id)
}

// Clone returns a deep copy so callers can mutate it freely.
func (c Configuration) Clone() Configuration {
	out := c
	out.PhysicalTypes = slices.Clone(c.PhysicalTypes)
	if out.PhysicalTypes == nil {
		out.PhysicalTypes = []string{}
	}
	return out
}

// togglePhysicalType selects or deselects id. WiFi is exclusive: selecting it
// clears every other type, and selecting any other type drops WiFi.
func (c *Configuration) togglePhysicalType(id string) {
	if c.HasPhysicalType(id) {
		c.PhysicalTypes = slices.DeleteFunc(slices.Clone(c.PhysicalTypes), func(v string) bool { return v == id })
		return
	}
	if id == catalog.PhysicalWiFi {
		c.PhysicalTypes = []string{catalog.PhysicalWiFi}
		return
	}
	next := slices.DeleteFunc(slices.Clone(c.PhysicalTypes), func(v string) bool { return v == catalog.PhysicalWiFi })
	c.PhysicalTypes = append(next, id)
}
