package sensor

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func TestParseSample(t *testing.T) {
	tests := []struct {
		line    string
		kind    string
		want    Vec3
		wantErr bool
	}{
		{line: "acc 0 0 9.8", kind: "acc", want: Vec3{Z: 9.8}},
		{line: "MAG -22 0.5 -40", kind: "mag", want: Vec3{X: -22, Y: 0.5, Z: -40}},
		{line: "ori 1.5 0 0", kind: "ori", want: Vec3{X: 1.5}},
		{line: "acc 0 0", wantErr: true},
		{line: "gyro 0 0 0", wantErr: true},
		{line: "mag x 0 0", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			kind, v, err := ParseSample(tt.line)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrBadSample)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestFeedFusesAfterBothSensors(t *testing.T) {
	input := strings.Join([]string{
		"# flat, facing east",
		"acc 0 0 9.80665",
		"",
		"bogus line",
		"mag -22 0 -40",
		"ori 0.5 0.1 -0.2",
	}, "\n")

	var got []Orientation
	err := Feed(strings.NewReader(input), zaptest.NewLogger(t), func(o Orientation) {
		got = append(got, o)
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.InDelta(t, math.Pi/2, got[0].Azimuth, 1e-9)
	assert.Equal(t, Orientation{Azimuth: 0.5, Pitch: 0.1, Roll: -0.2}, got[1])
}

func TestFeedSourceReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "feed.txt")
	require.NoError(t, os.WriteFile(path, []byte("ori 0.25 0 0\n"), 0o644))

	s := NewFeedSource(nil, path)
	require.NoError(t, s.Start(nil))
	s.Stop()
	s.Stop()
}

func TestFeedSourceMissingFile(t *testing.T) {
	s := NewFeedSource(nil, filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, s.Start(nil), os.ErrNotExist)
}

func TestFeedSourceReportsEnd(t *testing.T) {
	s := NewFeedSource(zaptest.NewLogger(t), "feed.txt")

	var msgs []tea.Msg
	s.run(strings.NewReader("ori 0.5 0 0\n"), func(msg tea.Msg) {
		msgs = append(msgs, msg)
	})

	require.Len(t, msgs, 2)
	assert.Equal(t, OrientationMsg{Azimuth: 0.5}, msgs[0])
	assert.Equal(t, SourceErrorMsg{Source: "feed", Err: io.EOF}, msgs[1])
}

func TestFeedSourceStoppedEndIsQuiet(t *testing.T) {
	s := NewFeedSource(zaptest.NewLogger(t), "feed.txt")
	s.closed = true

	var msgs []tea.Msg
	s.run(strings.NewReader("ori 0.5 0 0\n"), func(msg tea.Msg) {
		msgs = append(msgs, msg)
	})
	assert.Equal(t, []tea.Msg{OrientationMsg{Azimuth: 0.5}}, msgs)
}
