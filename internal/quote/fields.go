package quote

import (
	"strconv"
	"strings"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/shopspring/decimal"
)

// Field names one mutable attribute of a Configuration.
type Field string

const (
	FieldInteriorCount       Field = "interior_count"
	FieldExteriorCount       Field = "exterior_count"
	FieldNightVisionType     Field = "night_vision_type"
	FieldTechnologyType      Field = "technology_type"
	FieldPhysicalType        Field = "physical_type"
	FieldResolution          Field = "resolution"
	FieldHasDVR              Field = "has_dvr"
	FieldStorage             Field = "storage"
	FieldRemoteAccess        Field = "remote_access"
	FieldNeedsMonitor        Field = "needs_monitor"
	FieldMonitorSize         Field = "monitor_size"
	FieldInstallationService Field = "installation_service"
	FieldCableLength         Field = "cable_length"
	FieldLocation            Field = "location"
)

// Input bounds shared by the wizard and the stateless quote.
const (
	MaxCameraCount = 500
	MaxCableLength = 10000

	// cable lengths keep at most this many decimals once parsed
	cableLengthPlaces = 2
	// wider exponents are rejected before any arithmetic rescales them
	maxCableExponent = 4
	minCableExponent = -6
)

var maxCableLength = decimal.NewFromInt(MaxCableLength)

var choiceTables = map[Field]catalog.TableName{
	FieldNightVisionType:     catalog.TableNightVision,
	FieldTechnologyType:      catalog.TableTechnology,
	FieldPhysicalType:        catalog.TablePhysicalType,
	FieldResolution:          catalog.TableResolution,
	FieldHasDVR:              catalog.TableDVR,
	FieldStorage:             catalog.TableStorage,
	FieldRemoteAccess:        catalog.TableRemoteAccess,
	FieldNeedsMonitor:        catalog.TableMonitorNeed,
	FieldMonitorSize:         catalog.TableMonitorSize,
	FieldInstallationService: catalog.TableInstallationService,
}

// CatalogTable returns the table whose ids the field accepts.
func (f Field) CatalogTable() (catalog.TableName, bool) {
	name, ok := choiceTables[f]
	return name, ok
}

// IsCount reports whether the field is one of the camera counters.
func (f Field) IsCount() bool {
	return f == FieldInteriorCount || f == FieldExteriorCount
}

// ApplyFieldUpdate mutates exactly one field. Choice fields accept any id,
// including ids the catalog does not know (they price to zero); an empty value
// unsets the choice. For FieldPhysicalType the value toggles membership in the
// set under the WiFi exclusivity rule, and an empty value clears the set.
func (c *Configuration) ApplyFieldUpdate(field Field, value string) error {
	switch field {
	case FieldInteriorCount, FieldExteriorCount:
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return invalidField(field, "must be an integer")
		}
		if n < 0 {
			return invalidField(field, "must not be negative")
		}
		if n > MaxCameraCount {
			return invalidField(field, "must not exceed "+strconv.Itoa(MaxCameraCount))
		}
		c.setCount(field, n)
	case FieldCableLength:
		length, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			return invalidField(field, "must be a number")
		}
		return c.SetCableLength(length)
	case FieldPhysicalType:
		id := strings.TrimSpace(value)
		if id == "" {
			c.PhysicalTypes = []string{}
			return nil
		}
		c.togglePhysicalType(id)
	case FieldLocation:
		c.Location = value
	default:
		dst := c.choice(field)
		if dst == nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown field").WithDetails(map[string]any{"field": string(field)})
		}
		*dst = strings.TrimSpace(value)
	}
	return nil
}

// AdjustCount adds delta to a camera counter, clamping the result to
// [0, MaxCameraCount].
func (c *Configuration) AdjustCount(field Field, delta int) error {
	if !field.IsCount() {
		return invalidField(field, "is not a count")
	}
	delta = max(-MaxCameraCount, min(delta, MaxCameraCount))
	n := max(0, min(c.count(field)+delta, MaxCameraCount))
	c.setCount(field, n)
	return nil
}

// SetCableLength validates and stores an already parsed length. Lengths are
// kept to cents and must lie in (0, MaxCableLength].
func (c *Configuration) SetCableLength(length decimal.Decimal) error {
	length, err := boundCableLength(length)
	if err != nil {
		return err
	}
	c.CableLength = length
	return nil
}

func boundCableLength(length decimal.Decimal) (decimal.Decimal, error) {
	if length.Exponent() > maxCableExponent {
		return decimal.Decimal{}, invalidField(FieldCableLength, "must not exceed "+strconv.Itoa(MaxCableLength))
	}
	if length.Exponent() < minCableExponent {
		return decimal.Decimal{}, invalidField(FieldCableLength, "has too many decimals")
	}
	if length.Exponent() < -cableLengthPlaces {
		length = length.Round(cableLengthPlaces)
	}
	if !length.IsPositive() {
		return decimal.Decimal{}, invalidField(FieldCableLength, "must be positive")
	}
	if length.GreaterThan(maxCableLength) {
		return decimal.Decimal{}, invalidField(FieldCableLength, "must not exceed "+strconv.Itoa(MaxCableLength))
	}
	return length, nil
}

func (c *Configuration) count(field Field) int {
	if field == FieldInteriorCount {
		return c.InteriorCount
	}
	return c.ExteriorCount
}

func (c *Configuration) setCount(field Field, n int) {
	if field == FieldInteriorCount {
		c.InteriorCount = n
		return
	}
	c.ExteriorCount = n
}

func (c *Configuration) choice(field Field) *string {
	switch field {
	case FieldNightVisionType:
		return &c.NightVisionType
	case FieldTechnologyType:
		return &c.TechnologyType
	case FieldResolution:
		return &c.Resolution
	case FieldHasDVR:
		return &c.HasDVR
	case FieldStorage:
		return &c.Storage
	case FieldRemoteAccess:
		return &c.RemoteAccess
	case FieldNeedsMonitor:
		return &c.NeedsMonitor
	case FieldMonitorSize:
		return &c.MonitorSize
	case FieldInstallationService:
		return &c.InstallationService
	}
	return nil
}

func invalidField(field Field, reason string) *pkgerrors.Error {
	return pkgerrors.New(pkgerrors.CodeValidation, string(field)+" "+reason).
		WithDetails(map[string]any{"field": string(field), "reason": reason})
}
