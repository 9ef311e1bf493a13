package somfyprotect

// FilterDevices returns devices matching the given filter function.
func FilterDevices(devices []Device, filter func(Device) bool) []Device {
	result := make([]Device, 0, len(devices))
	for _, d := range devices {
		if filter(d) {
			result = append(result, d)
		}
	}
	return result
}

// FilterByCategory returns devices whose definition label contains the
// category's vendor string.
func FilterByCategory(devices []Device, category Category) []Device {
	return FilterDevices(devices, func(d Device) bool {
		return category.Matches(d.DeviceDefinition.Label)
	})
}

// FindDeviceByLabel returns the first device matching the given label.
// Returns a pointer to the device in the slice, or nil if not found.
func FindDeviceByLabel(devices []Device, label string) *Device {
	for i := range devices {
		if devices[i].Label == label {
			return &devices[i]
		}
	}
	return nil
}

// FindDeviceByID returns the device with the given ID.
// Returns a pointer to the device in the slice, or nil if not found.
func FindDeviceByID(devices []Device, deviceID string) *Device {
	for i := range devices {
		if devices[i].DeviceID == deviceID {
			return &devices[i]
		}
	}
	return nil
}

// FindSiteByID returns the site with the given ID, or nil.
func FindSiteByID(sites []Site, siteID string) *Site {
	for i := range sites {
		if sites[i].SiteID == siteID {
			return &sites[i]
		}
	}
	return nil
}

// FindSiteByLabel returns the first site with the given label, or nil.
func FindSiteByLabel(sites []Site, label string) *Site {
	for i := range sites {
		if sites[i].Label == label {
			return &sites[i]
		}
	}
	return nil
}
