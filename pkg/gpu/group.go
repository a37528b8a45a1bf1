package gpu

// GroupDevices collapses consecutive identical devices into a single group
// with an incremented Quantity. Enumeration order is preserved; devices are
// never reordered, so only adjacent duplicates are merged.
func GroupDevices(devices []Device) []Device {
	if len(devices) == 0 {
		return nil
	}

	groups := make([]Device, 0, len(devices))
	current := devices[0]
	if current.Quantity == 0 {
		current.Quantity = 1
	}

	for _, next := range devices[1:] {
		if next.Equal(current) {
			current.Quantity++
			continue
		}
		groups = append(groups, current)
		current = next
		if current.Quantity == 0 {
			current.Quantity = 1
		}
	}

	return append(groups, current)
}
