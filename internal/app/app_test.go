package app

import (
	"io"
	"math"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"sonar.klederson.com/internal/bluetooth"
	"sonar.klederson.com/internal/config"
	"sonar.klederson.com/internal/heading"
	"sonar.klederson.com/internal/sensor"
	"sonar.klederson.com/internal/sonar"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestModel(t *testing.T) (AppModel, *fakeClock) {
	t.Helper()
	clk := &fakeClock{now: time.UnixMilli(1_700_000_000_000)}
	log := zaptest.NewLogger(t)
	engine := sonar.NewEngine(sonar.Config{Logger: log, Clock: clk})
	m := New(Options{Logger: log, Engine: engine})
	m.Init()
	return m, clk
}

func update(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	next, _ := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am
}

func key(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickAdvancesSweepAndRecordsHeading(t *testing.T) {
	m, clk := newTestModel(t)

	clk.Advance(625 * time.Millisecond)
	m = update(t, m, TickMsg{})

	assert.True(t, m.frame.Running)
	assert.Equal(t, 180, m.frame.Sweep)
	assert.Equal(t, 1, m.shared.history.Len())
}

func TestStoppedEngineKeepsHistory(t *testing.T) {
	m, clk := newTestModel(t)
	m = update(t, m, key(" "))
	assert.False(t, m.frame.Running)

	clk.Advance(100 * time.Millisecond)
	m = update(t, m, TickMsg{})
	assert.Equal(t, 0, m.shared.history.Len())

	m = update(t, m, key(" "))
	assert.True(t, m.frame.Running)
}

func TestKeysControlEngine(t *testing.T) {
	m, _ := newTestModel(t)
	engine := m.shared.engine

	m = update(t, m, key("m"))
	assert.Equal(t, sonar.ModeCompass, m.frame.Mode)

	m = update(t, m, key("p"))
	assert.Equal(t, heading.AxisPitch, engine.Frame().Axis)
	m = update(t, m, key("r"))
	assert.Equal(t, heading.AxisRoll, engine.Frame().Axis)
	m = update(t, m, key("a"))
	assert.Equal(t, heading.AxisAzimuth, engine.Frame().Axis)

	m = update(t, m, key("+"))
	assert.Equal(t, sonar.DefaultLoopDuration+config.LoopDurationStep, engine.Period())
	for range 10 {
		m = update(t, m, key("-"))
	}
	assert.Equal(t, sonar.MinLoopDuration, engine.Period())
}

func TestOrientationMovesTarget(t *testing.T) {
	m, _ := newTestModel(t)

	east := sensor.OrientationMsg{Azimuth: -math.Pi / 2}
	for range 3 {
		m = update(t, m, east)
	}
	assert.Equal(t, 90, m.shared.engine.Frame().Desired)
}

func TestDeviceBecomesPoint(t *testing.T) {
	m, clk := newTestModel(t)
	const mac = "AA:BB:CC:DD:EE:FF"

	m = update(t, m, bluetooth.DeviceDiscoveredMsg{MAC: mac, Name: "headphones", RSSI: -59})
	m = update(t, m, TickMsg{})

	require.Len(t, m.frame.Points, 1)
	p := m.frame.Points[0]
	assert.Equal(t, mac, p.ID)
	assert.Equal(t, "headphon", p.Label)
	assert.Equal(t, bluetooth.MacToBearing(mac), p.Bearing())
	assert.InDelta(t, 1.0/config.MaxRange, p.Distance(), 1e-9)

	clk.Advance(config.PointTimeout + time.Second)
	m = update(t, m, EvictMsg{})
	m = update(t, m, TickMsg{})
	assert.Empty(t, m.frame.Points)
}

func TestStaticPointsSurviveEviction(t *testing.T) {
	m, clk := newTestModel(t)
	m.shared.engine.Points().Add(sonar.NewPoint(10, 0.5))

	clk.Advance(config.PointTimeout * 2)
	m = update(t, m, EvictMsg{})
	m = update(t, m, TickMsg{})
	assert.Len(t, m.frame.Points, 1)
}

func TestDetailToggle(t *testing.T) {
	m, _ := newTestModel(t)

	m = update(t, m, key("enter"))
	assert.False(t, m.detail, "no points to show")

	m.shared.engine.Points().Add(sonar.NewPoint(10, 0.5), sonar.NewPoint(20, 0.5))
	m = update(t, m, TickMsg{})
	m = update(t, m, key("down"))
	assert.Equal(t, 1, m.cursor)

	m = update(t, m, key("enter"))
	assert.True(t, m.detail)
	m = update(t, m, key("esc"))
	assert.False(t, m.detail)
}

func TestViewRendersPanels(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, "Initializing sonar...", m.View())

	m.shared.engine.Points().Add(sonar.NewPoint(10, 0.5))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	m = update(t, m, TickMsg{})

	view := m.View()
	assert.Contains(t, view, config.AppName)
	assert.Contains(t, view, "POINTS [1]")

	m = update(t, m, key("enter"))
	assert.Contains(t, m.View(), "POINT DETAIL")
}

func TestSourceNames(t *testing.T) {
	m := New(Options{Demo: true, BLE: true, Adapter: "hci0"})
	assert.Equal(t, "demo+ble:hci0", m.sourceNames())
	assert.Equal(t, "none", New(Options{}).sourceNames())
}

func TestSourceEndIsShown(t *testing.T) {
	m := New(Options{Demo: true, SensorFeed: "feed.txt", Logger: zaptest.NewLogger(t)})
	assert.Equal(t, "demo+feed", m.sourceNames())

	m = update(t, m, sensor.SourceErrorMsg{Source: "feed", Err: io.EOF})
	assert.Equal(t, "demo+feed!", m.sourceNames())
}

func TestStartSourcesFailsOnMissingFeed(t *testing.T) {
	m := New(Options{SensorFeed: t.TempDir() + "/missing"})
	err := m.StartSources(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start feed source")
	assert.Empty(t, m.shared.sources)
}
