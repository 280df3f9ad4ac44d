// Package app wires the sonar engine, input sources and panels into a
// Bubble Tea program.
package app

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"sonar.klederson.com/internal/bluetooth"
	"sonar.klederson.com/internal/config"
	"sonar.klederson.com/internal/heading"
	"sonar.klederson.com/internal/render"
	"sonar.klederson.com/internal/sensor"
	"sonar.klederson.com/internal/sonar"
	"sonar.klederson.com/internal/ui"
)

type namedSource struct {
	name string
	src  sensor.Source
}

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	log     *zap.Logger
	engine  *sonar.Engine
	history *History
	rssi    *bluetooth.RSSIFilter
	sources []namedSource
	failed  map[string]bool // sources that ended on their own
}

// Options configures a new AppModel.
type Options struct {
	Logger     *zap.Logger
	Engine     *sonar.Engine
	Demo       bool   // simulated orientation
	SensorFeed string // raw sample feed path
	BLE        bool   // nearby devices become points
	Adapter    string
}

// AppModel is the root Bubble Tea model for the sonar.
type AppModel struct {
	width  int
	height int

	demoMode   bool
	sensorFeed string
	bleEnabled bool
	adapter    string

	cursor int
	detail bool

	shared *shared

	// Cached frame
	frame sonar.Frame
}

// New creates a new AppModel. The engine is started on Init.
func New(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Engine == nil {
		opts.Engine = sonar.NewEngine(sonar.Config{Logger: opts.Logger})
	}
	return AppModel{
		demoMode:   opts.Demo,
		sensorFeed: opts.SensorFeed,
		bleEnabled: opts.BLE,
		adapter:    opts.Adapter,
		shared: &shared{
			log:     opts.Logger,
			engine:  opts.Engine,
			history: NewHistory(config.HistoryLen),
			rssi:    bluetooth.NewRSSIFilter(config.SmoothingAlpha),
			failed:  make(map[string]bool),
		},
		frame: opts.Engine.Frame(),
	}
}

func (m AppModel) Init() tea.Cmd {
	m.shared.engine.Start()
	return tea.Batch(
		tickCmd(),
		evictCmd(),
	)
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.frame = m.shared.engine.Tick()
		if m.frame.Running {
			m.shared.history.Push(float64(m.frame.Heading))
		}
		m.cursor = min(m.cursor, max(len(m.frame.Points)-1, 0))
		return m, tickCmd()

	case EvictMsg:
		engine := m.shared.engine
		stale := engine.Points().Evict(engine.Now(), config.PointTimeout.Milliseconds())
		for _, id := range stale {
			m.shared.rssi.Forget(id)
		}
		if len(stale) > 0 {
			m.shared.log.Debug("evicted stale points", zap.Strings("ids", stale))
		}
		return m, evictCmd()

	case sensor.OrientationMsg:
		m.shared.engine.IngestOrientation(msg.Azimuth, msg.Pitch, msg.Roll)
		return m, nil

	case bluetooth.DeviceDiscoveredMsg:
		m.upsertDevice(msg)
		return m, nil

	case sensor.SourceErrorMsg:
		m.shared.log.Error("input source failed", zap.String("source", msg.Source), zap.Error(msg.Err))
		m.shared.failed[msg.Source] = true
		return m, nil
	}

	return m, nil
}

func (m AppModel) upsertDevice(msg bluetooth.DeviceDiscoveredMsg) {
	rssi := m.shared.rssi.Update(msg.MAC, float64(msg.RSSI))
	meters := bluetooth.RSSIToDistance(rssi, config.MeasuredPower, config.PathLossExp)

	engine := m.shared.engine
	engine.Points().Upsert(
		msg.MAC,
		bluetooth.Callsign(msg.MAC, msg.Name),
		bluetooth.MacToBearing(msg.MAC),
		bluetooth.NormalizedDistance(meters, config.MaxRange),
		engine.Now(),
	)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	engine := m.shared.engine

	switch msg.String() {
	case "q", "Q", "ctrl+c":
		m.StopSources()
		return m, tea.Quit

	case " ":
		if engine.Running() {
			engine.Stop()
		} else {
			engine.Start()
		}

	case "m", "M":
		engine.SetMode(engine.Mode().Toggle())

	case "a", "A":
		engine.SetAxis(heading.AxisAzimuth)
	case "p", "P":
		engine.SetAxis(heading.AxisPitch)
	case "r", "R":
		engine.SetAxis(heading.AxisRoll)

	case "+", "=":
		engine.SetPeriod(engine.Period() + config.LoopDurationStep)
	case "-", "_":
		engine.SetPeriod(engine.Period() - config.LoopDurationStep)

	case "enter":
		m.detail = !m.detail && len(m.frame.Points) > 0
	case "esc":
		m.detail = false

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.frame.Points)-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		m.cursor = max(len(m.frame.Points)-1, 0)
	}

	m.frame = engine.Frame()
	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing sonar..."
	}

	menuH := 1
	statusH := 1
	bodyH := max(m.height-menuH-statusH, 5)

	sonarW := max(m.width*3/4, 30)
	listW := m.width - sonarW
	if listW < 15 {
		listW = 15
		sonarW = m.width - listW
	}

	menuBar := ui.RenderMenuBar(m.width, m.sourceNames(), m.frame.Running)

	var sonarPanel string
	if p, ok := m.selected(); ok && m.detail {
		sonarPanel = ui.RenderDetailPanel(p, m.shared.engine.Now(), m.frame.Heading,
			sonarW, bodyH, m.shared.history.Values())
	} else {
		innerW := max(sonarW-4, 5)
		innerH := max(bodyH-4, 3)
		content := render.Render(innerW, innerH, m.frame)
		legend := render.RenderLegend(innerW, m.frame)
		sonarPanel = ui.RenderSonarPanel(sonarW, bodyH, content, legend)
	}

	pointList := ui.RenderPointList(m.frame.Points, listW, bodyH, m.cursor)
	statusBar := ui.RenderStatusBar(m.width, m.frame, m.shared.engine.Period())

	return ui.ComposeLayout(menuBar, sonarPanel, pointList, statusBar)
}

func (m AppModel) selected() (sonar.Point, bool) {
	if m.cursor < 0 || m.cursor >= len(m.frame.Points) {
		return sonar.Point{}, false
	}
	return m.frame.Points[m.cursor], true
}

func (m AppModel) sourceNames() string {
	type entry struct{ key, label string }
	var entries []entry
	if m.demoMode {
		entries = append(entries, entry{"demo", "demo"})
	}
	if m.sensorFeed != "" {
		entries = append(entries, entry{"feed", "feed"})
	}
	if m.bleEnabled {
		entries = append(entries, entry{"ble", "ble:" + m.adapter})
	}
	if len(entries) == 0 {
		return "none"
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.label
		if m.shared.failed[e.key] {
			names[i] += "!"
		}
	}
	return strings.Join(names, "+")
}

// StartSources initializes and starts input sources. Must be called before p.Run().
func (m *AppModel) StartSources(p *tea.Program) error {
	log := m.shared.log

	var sources []namedSource
	if m.demoMode {
		sources = append(sources, namedSource{"demo", sensor.NewMockSource(log.Named("mock"))})
	}
	if m.sensorFeed != "" {
		sources = append(sources, namedSource{"feed", sensor.NewFeedSource(log.Named("feed"), m.sensorFeed)})
	}
	if m.bleEnabled {
		sources = append(sources, namedSource{"ble", bluetooth.NewBLEScanner(log.Named("ble"), m.adapter)})
	}

	for _, s := range sources {
		if err := s.src.Start(p); err != nil {
			m.StopSources()
			return fmt.Errorf("start %s source: %w", s.name, err)
		}
		m.shared.sources = append(m.shared.sources, s)
	}
	return nil
}

// StopSources halts every started source.
func (m AppModel) StopSources() {
	for _, s := range m.shared.sources {
		s.src.Stop()
	}
	m.shared.sources = nil
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func evictCmd() tea.Cmd {
	return tea.Tick(config.EvictInterval, func(t time.Time) tea.Msg {
		return EvictMsg(t)
	})
}
