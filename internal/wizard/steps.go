// Package wizard drives one visitor through the quotation steps. The engine
// is stateless: every operation takes the Session it acts on, so sessions can
// be stored anywhere and replayed on any instance.
package wizard

import (
	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
)

// StepKey identifies a step independent of its position.
type StepKey string

const (
	StepCounts       StepKey = "counts"
	StepNightVision  StepKey = "night_vision"
	StepTechnology   StepKey = "technology"
	StepPhysicalType StepKey = "physical_type"
	StepResolution   StepKey = "resolution"
	StepRecording    StepKey = "recording"
	StepRemoteAccess StepKey = "remote_access"
	StepMonitor      StepKey = "monitor"
	StepInstallation StepKey = "installation"
	StepContact      StepKey = "contact"
	StepResults      StepKey = "results"
)

// Step is one entry of the wizard sequence. Index is 1-based.
type Step struct {
	Index    int
	Key      StepKey
	Label    string
	validate func(quote.Configuration) bool
}

// Valid reports whether cfg satisfies the step gate.
func (s Step) Valid(cfg quote.Configuration) bool {
	if s.validate == nil {
		return true
	}
	return s.validate(cfg)
}

type stepDef struct {
	key      StepKey
	label    string
	validate func(quote.Configuration) bool
}

var defaultSteps = []stepDef{
	{StepCounts, "Ubicación y cantidad", func(c quote.Configuration) bool { return c.InteriorCount > 0 || c.ExteriorCount > 0 }},
	{StepNightVision, "Visión nocturna", func(c quote.Configuration) bool { return c.NightVisionType != "" }},
	{StepTechnology, "Tecnología", func(c quote.Configuration) bool { return c.TechnologyType != "" }},
	{StepPhysicalType, "Tipo de cámara", func(c quote.Configuration) bool { return len(c.PhysicalTypes) > 0 }},
	{StepResolution, "Resolución", func(c quote.Configuration) bool { return c.Resolution != "" }},
	{StepRecording, "Grabación", validRecording},
	{StepRemoteAccess, "Acceso Remoto", func(c quote.Configuration) bool { return c.RemoteAccess != "" }},
	{StepMonitor, "Monitor", validMonitor},
	{StepInstallation, "Instalación", func(c quote.Configuration) bool { return c.InstallationService != "" }},
	{StepContact, "Contacto", nil},
	{StepResults, "Resultado", nil},
}

// validRecording needs storage only when the visitor lacks a recorder.
func validRecording(c quote.Configuration) bool {
	if c.HasDVR == "" {
		return false
	}
	return c.HasDVR != catalog.No || c.Storage != ""
}

func validMonitor(c quote.Configuration) bool {
	if c.NeedsMonitor == "" {
		return false
	}
	return c.NeedsMonitor != catalog.Yes || c.MonitorSize != ""
}

// DefaultSteps returns the production step sequence.
func DefaultSteps() []Step {
	steps := make([]Step, len(defaultSteps))
	for i, def := range defaultSteps {
		steps[i] = Step{Index: i + 1, Key: def.key, Label: def.label, validate: def.validate}
	}
	return steps
}
