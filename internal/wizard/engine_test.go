package wizard

import (
	"testing"
	"time"

	"github.com/angelmondragon/xpertech-quotes/internal/catalog"
	"github.com/angelmondragon/xpertech-quotes/internal/quote"
	pkgerrors "github.com/angelmondragon/xpertech-quotes/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newEngine() *Engine {
	return NewEngine(catalog.Default())
}

// answers fills every step in order.
var answers = []struct {
	field quote.Field
	value string
}{
	{quote.FieldInteriorCount, "2"},
	{quote.FieldExteriorCount, "1"},
	{quote.FieldNightVisionType, "infrared"},
	{quote.FieldTechnologyType, "ip"},
	{quote.FieldPhysicalType, "dome"},
	{quote.FieldResolution, "4mp"},
	{quote.FieldHasDVR, "no"},
	{quote.FieldStorage, "1tb"},
	{quote.FieldRemoteAccess, "yes"},
	{quote.FieldNeedsMonitor, "no"},
	{quote.FieldInstallationService, "complete"},
	{quote.FieldCableLength, "20"},
}

func fill(t *testing.T, e *Engine, s *Session) {
	t.Helper()
	for _, a := range answers {
		require.NoError(t, e.ApplyFieldUpdate(s, a.field, a.value))
	}
}

func TestNewSession(t *testing.T) {
	e := newEngine()
	s := e.NewSession("abc", epoch)

	assert.Equal(t, "abc", s.ID)
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.MaxVisited)
	assert.Nil(t, s.Result)
	assert.False(t, s.Finished)
	assert.Equal(t, 0, s.Config.TotalCameras())
	assert.Equal(t, "10", s.Config.CableLength.String())
	assert.Equal(t, epoch, s.CreatedAt)
}

func TestStepsTable(t *testing.T) {
	steps := DefaultSteps()
	require.Len(t, steps, 11)
	for i, step := range steps {
		assert.Equal(t, i+1, step.Index)
		assert.NotEmpty(t, step.Label)
	}
	assert.Equal(t, StepRecording, steps[5].Key)
	assert.Equal(t, StepResults, steps[10].Key)
}

func TestIsStepValid(t *testing.T) {
	tests := []struct {
		name   string
		step   int
		mutate func(*quote.Configuration)
		want   bool
	}{
		{"no cameras", 1, func(*quote.Configuration) {}, false},
		{"interior only", 1, func(c *quote.Configuration) { c.InteriorCount = 1 }, true},
		{"exterior only", 1, func(c *quote.Configuration) { c.ExteriorCount = 3 }, true},
		{"night vision unset", 2, func(*quote.Configuration) {}, false},
		{"night vision none", 2, func(c *quote.Configuration) { c.NightVisionType = "none" }, true},
		{"technology", 3, func(c *quote.Configuration) { c.TechnologyType = "analog" }, true},
		{"physical empty", 4, func(*quote.Configuration) {}, false},
		{"physical set", 4, func(c *quote.Configuration) { c.PhysicalTypes = []string{"ptz"} }, true},
		{"resolution", 5, func(c *quote.Configuration) { c.Resolution = "8mp" }, true},
		{"dvr owned", 6, func(c *quote.Configuration) { c.HasDVR = "yes" }, true},
		{"dvr needed without storage", 6, func(c *quote.Configuration) { c.HasDVR = "no" }, false},
		{"dvr needed with storage", 6, func(c *quote.Configuration) { c.HasDVR = "no"; c.Storage = "cloud" }, true},
		{"remote access", 7, func(c *quote.Configuration) { c.RemoteAccess = "no" }, true},
		{"monitor unset", 8, func(*quote.Configuration) {}, false},
		{"monitor declined", 8, func(c *quote.Configuration) { c.NeedsMonitor = "no" }, true},
		{"monitor without size", 8, func(c *quote.Configuration) { c.NeedsMonitor = "yes" }, false},
		{"monitor with size", 8, func(c *quote.Configuration) { c.NeedsMonitor = "yes"; c.MonitorSize = "32in" }, true},
		{"installation", 9, func(c *quote.Configuration) { c.InstallationService = "none" }, true},
		{"contact", 10, func(*quote.Configuration) {}, true},
		{"results", 11, func(*quote.Configuration) {}, true},
		{"below range", 0, func(*quote.Configuration) {}, false},
		{"above range", 12, func(*quote.Configuration) {}, false},
	}

	e := newEngine()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.NewSession("s", epoch)
			tt.mutate(&s.Config)
			assert.Equal(t, tt.want, e.IsStepValid(s, tt.step))
		})
	}
}

func TestRecordingGateRequiresDVRAnswer(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)
	fill(t, e, s)
	require.NoError(t, e.ApplyFieldUpdate(s, quote.FieldHasDVR, ""))

	assert.False(t, e.IsStepValid(s, 6))
}

func TestAdvanceRejectsInvalidStep(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)

	_, err := e.Advance(s)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	assert.Equal(t, 1, s.Current)
	assert.Equal(t, 1, s.MaxVisited)

	details, ok := pkgerrors.As(err).Details().(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "counts", details["key"])
}

func TestAdvanceThroughResults(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)
	fill(t, e, s)

	for step := 1; step < 10; step++ {
		tr, err := e.Advance(s)
		require.NoError(t, err, "step %d", step)
		assert.False(t, tr.Computed)
		assert.Equal(t, step+1, s.Current)
	}
	assert.Nil(t, s.Result, "no quotation before leaving the last input step")

	tr, err := e.Advance(s)
	require.NoError(t, err)
	assert.True(t, tr.Computed)
	assert.Equal(t, 11, s.Current)
	require.NotNil(t, s.Result)
	assert.Equal(t, "14100", s.Result.Total.String())
	assert.False(t, s.Finished)

	first := *s.Result
	tr, err = e.Advance(s)
	require.NoError(t, err)
	assert.True(t, tr.Finished)
	assert.True(t, s.Finished)
	assert.Equal(t, 11, s.Current)
	assert.Equal(t, first.Total.String(), s.Result.Total.String())
	assert.Len(t, s.Result.LineItems, len(first.LineItems))
}

func TestRetreatKeepsAnswersAndResult(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)

	tr := e.Retreat(s)
	assert.Equal(t, 1, tr.To, "retreat on the first step is a no-op")

	fill(t, e, s)
	for s.Current < 11 {
		_, err := e.Advance(s)
		require.NoError(t, err)
	}
	require.NotNil(t, s.Result)

	e.Retreat(s)
	e.Retreat(s)
	assert.Equal(t, 9, s.Current)
	assert.Equal(t, 11, s.MaxVisited)
	assert.NotNil(t, s.Result)
	assert.Equal(t, "infrared", s.Config.NightVisionType)
}

func TestJumpTo(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)
	fill(t, e, s)

	_, err := e.JumpTo(s, 3)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict), "cannot skip ahead")

	_, err = e.JumpTo(s, 0)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
	_, err = e.JumpTo(s, 12)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	tr, err := e.JumpTo(s, 2)
	require.NoError(t, err, "next step behaves like advance")
	assert.Equal(t, 2, tr.To)

	for s.Current < 6 {
		_, err := e.Advance(s)
		require.NoError(t, err)
	}
	tr, err = e.JumpTo(s, 3)
	require.NoError(t, err)
	assert.Equal(t, 6, tr.From)
	assert.Equal(t, 3, s.Current)

	tr, err = e.JumpTo(s, 6)
	require.NoError(t, err, "visited steps are reachable")
	assert.Equal(t, 6, s.Current)
}

func TestJumpToNextStepRequiresValidity(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)

	_, err := e.JumpTo(s, 2)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeStateConflict))
	assert.Equal(t, 1, s.Current)
}

func TestJumpToResultsRecomputes(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)
	fill(t, e, s)
	for s.Current < 11 {
		_, err := e.Advance(s)
		require.NoError(t, err)
	}

	_, err := e.JumpTo(s, 1)
	require.NoError(t, err)
	require.NoError(t, e.AdjustCount(s, quote.FieldInteriorCount, 1))
	assert.Equal(t, "14100", s.Result.Total.String(), "result is stale until recomputed")

	tr, err := e.JumpTo(s, 11)
	require.NoError(t, err)
	assert.True(t, tr.Computed)
	assert.Equal(t, "16650", s.Result.Total.String())
}

func TestFieldUpdatesDoNotMoveCursor(t *testing.T) {
	e := newEngine()
	s := e.NewSession("s", epoch)

	require.NoError(t, e.ApplyFieldUpdate(s, quote.FieldPhysicalType, "wifi"))
	require.NoError(t, e.AdjustCount(s, quote.FieldExteriorCount, 2))

	assert.Equal(t, 1, s.Current)
	assert.Equal(t, []string{"wifi"}, s.Config.PhysicalTypes)
	assert.Equal(t, 2, s.Config.ExteriorCount)
}
