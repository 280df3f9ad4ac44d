//go:build !linux

package bluetooth

import "tinygo.org/x/bluetooth"

// adapterByName returns the default adapter; only BlueZ can select one by name.
func adapterByName(string) *bluetooth.Adapter {
	return bluetooth.DefaultAdapter
}
