// Package bluetooth turns nearby BLE devices into sonar points.
package bluetooth

import (
	"fmt"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"tinygo.org/x/bluetooth"

	"sonar.klederson.com/internal/sensor"
)

// BLEScanner handles Bluetooth Low Energy scanning.
type BLEScanner struct {
	log     *zap.Logger
	name    string
	adapter *bluetooth.Adapter
	program *tea.Program
	running atomic.Bool
}

// NewBLEScanner creates a scanner on the named adapter (e.g. "hci0").
// An empty name selects the default adapter.
func NewBLEScanner(log *zap.Logger, adapter string) *BLEScanner {
	if log == nil {
		log = zap.NewNop()
	}
	return &BLEScanner{
		log:     log,
		name:    adapter,
		adapter: adapterByName(adapter),
	}
}

// Start begins BLE scanning in a goroutine. Discovered devices are sent
// as tea messages via program.Send().
func (s *BLEScanner) Start(p *tea.Program) error {
	s.program = p

	if err := s.adapter.Enable(); err != nil {
		return fmt.Errorf("failed to enable BLE adapter: %w (try running with sudo or setcap cap_net_admin+ep)", err)
	}

	s.running.Store(true)
	s.log.Info("BLE scan started", zap.String("adapter", s.name))
	go func() {
		err := s.adapter.Scan(func(adapter *bluetooth.Adapter, result bluetooth.ScanResult) {
			if !s.running.Load() {
				return
			}
			msg := DeviceDiscoveredMsg{
				MAC:  result.Address.String(),
				Name: result.LocalName(),
				RSSI: result.RSSI,
			}
			if s.program != nil {
				s.program.Send(msg)
			}
		})
		if err != nil && s.running.Load() {
			s.log.Error("BLE scan ended", zap.Error(err))
			if s.program != nil {
				s.program.Send(sensor.SourceErrorMsg{Source: "ble", Err: err})
			}
		}
	}()

	return nil
}

// Stop halts the BLE scanner.
func (s *BLEScanner) Stop() {
	if !s.running.Swap(false) {
		return
	}
	if err := s.adapter.StopScan(); err != nil {
		s.log.Warn("stopping BLE scan", zap.Error(err))
	}
	s.log.Info("BLE scan stopped")
}
