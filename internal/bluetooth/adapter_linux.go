package bluetooth

import "tinygo.org/x/bluetooth"

// adapterByName returns the BlueZ adapter with the given id.
func adapterByName(name string) *bluetooth.Adapter {
	if name == "" {
		return bluetooth.DefaultAdapter
	}
	return bluetooth.NewAdapter(name)
}
