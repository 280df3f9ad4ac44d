package sensor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ErrBadSample is returned for feed lines that cannot be parsed.
var ErrBadSample = errors.New("bad sensor sample")

// FeedSource reads raw sensor samples from a file or named pipe, one per line:
//
//	acc <x> <y> <z>        accelerometer, m/s²
//	mag <x> <y> <z>        magnetometer, µT
//	ori <az> <pitch> <roll> already fused, radians
//
// Blank lines and lines starting with # are ignored.
type FeedSource struct {
	log  *zap.Logger
	path string

	mu     sync.Mutex
	file   *os.File
	closed bool
}

// NewFeedSource creates a source reading from path.
func NewFeedSource(log *zap.Logger, path string) *FeedSource {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedSource{log: log, path: path}
}

// Start opens the feed and reads it in a goroutine.
func (s *FeedSource) Start(p *tea.Program) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open sensor feed %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.file = f
	s.mu.Unlock()

	s.log.Info("sensor feed started", zap.String("path", s.path))
	send := func(tea.Msg) {}
	if p != nil {
		send = p.Send
	}
	go s.run(f, send)
	return nil
}

// run reads the feed until it ends. An end not caused by Stop is reported
// with a SourceErrorMsg.
func (s *FeedSource) run(r io.Reader, send func(tea.Msg)) {
	err := Feed(r, s.log, func(o Orientation) {
		send(OrientationMsg(o))
	})

	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return
	}
	if err == nil {
		err = io.EOF
	}
	s.log.Error("sensor feed ended", zap.Error(err))
	send(SourceErrorMsg{Source: "feed", Err: err})
}

// Stop closes the feed.
func (s *FeedSource) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file == nil || s.closed {
		return
	}
	s.closed = true
	_ = s.file.Close()
	s.log.Info("sensor feed stopped")
}

// Feed parses samples from r and calls emit for every fused orientation.
// Malformed lines are logged and skipped.
func Feed(r io.Reader, log *zap.Logger, emit func(Orientation)) error {
	var fuser Fuser
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		kind, v, err := ParseSample(text)
		if err != nil {
			log.Debug("skipping sample", zap.Int("line", line), zap.Error(err))
			continue
		}

		var (
			o  Orientation
			ok bool
		)
		switch kind {
		case "acc":
			o, ok = fuser.Accelerometer(v)
		case "mag":
			o, ok = fuser.Magnetometer(v)
		case "ori":
			o, ok = Orientation{Azimuth: v.X, Pitch: v.Y, Roll: v.Z}, true
		}
		if ok {
			emit(o)
		}
	}
	return sc.Err()
}

// ParseSample splits a feed line into its kind and three values.
func ParseSample(line string) (string, Vec3, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return "", Vec3{}, fmt.Errorf("%w: want 4 fields, got %d", ErrBadSample, len(fields))
	}

	kind := strings.ToLower(fields[0])
	switch kind {
	case "acc", "mag", "ori":
	default:
		return "", Vec3{}, fmt.Errorf("%w: unknown kind %q", ErrBadSample, fields[0])
	}

	var vals [3]float64
	for i := range vals {
		f, err := strconv.ParseFloat(fields[i+1], 64)
		if err != nil {
			return "", Vec3{}, fmt.Errorf("%w: %v", ErrBadSample, err)
		}
		vals[i] = f
	}
	return kind, Vec3{X: vals[0], Y: vals[1], Z: vals[2]}, nil
}
