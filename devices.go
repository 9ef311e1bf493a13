package somfyprotect

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
)

// truncatePreview returns a truncated string for error messages.
func truncatePreview(data []byte) string {
	s := string(data)
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}

func devicePath(siteID, deviceID string) string {
	return sitePath(siteID) + "/device/" + url.PathEscape(deviceID)
}

// ListDevices returns every device of a site, in API order.
func (c *Client) ListDevices(ctx context.Context, siteID string) ([]Device, error) {
	if siteID == "" {
		return nil, ErrEmptySiteID
	}

	data, err := c.get(ctx, sitePath(siteID)+"/device")
	if err != nil {
		return nil, err
	}

	var resp listResponse[Device]
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, malformed("device list", data, err)
	}
	if resp.Items == nil {
		return nil, malformed("device list", data, errors.New(`missing "items"`))
	}

	return *resp.Items, nil
}

// ListDevicesByCategory returns the devices of a site whose definition
// label contains the category's vendor string.
func (c *Client) ListDevicesByCategory(ctx context.Context, siteID string, category Category) ([]Device, error) {
	if category == CategoryUnknown {
		return nil, &ValidationError{Field: "category", Message: "cannot be empty"}
	}

	devices, err := c.ListDevices(ctx, siteID)
	if err != nil {
		return nil, err
	}
	return FilterByCategory(devices, category), nil
}

// GetDevice returns a single device of a site.
func (c *Client) GetDevice(ctx context.Context, siteID, deviceID string) (*Device, error) {
	if siteID == "" {
		return nil, ErrEmptySiteID
	}
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}

	data, err := c.get(ctx, devicePath(siteID, deviceID))
	if err != nil {
		return nil, err
	}

	var device Device
	if err := json.Unmarshal(data, &device); err != nil {
		return nil, malformed("device", data, err)
	}
	if device.DeviceID == "" {
		return nil, malformed("device", data, errors.New(`missing "device_id"`))
	}

	return &device, nil
}

// deviceUpdate is the request body for updating a device.
type deviceUpdate struct {
	Label    string   `json:"label"`
	Settings Settings `json:"settings"`
}

// UpdateDevice sets the label and settings of a device. settings is
// usually the Settings of a device returned by GetDevice; its "object"
// discriminator is dropped from the request and the caller's map is left
// unchanged.
func (c *Client) UpdateDevice(ctx context.Context, siteID, deviceID, label string, settings Settings) (Acknowledgement, error) {
	if siteID == "" {
		return nil, ErrEmptySiteID
	}
	if deviceID == "" {
		return nil, ErrEmptyDeviceID
	}
	if label == "" {
		return nil, ErrEmptyLabel
	}
	if settings == nil {
		return nil, ErrMissingSettings
	}

	update := deviceUpdate{Label: label, Settings: settings.withoutObject()}
	data, err := c.put(ctx, devicePath(siteID, deviceID), update)
	if err != nil {
		return nil, err
	}

	return decodeAcknowledgement("device update acknowledgement", data)
}

// withoutObject returns a shallow copy of s without the "object" key.
func (s Settings) withoutObject() Settings {
	out := make(Settings, len(s))
	for k, v := range s {
		if k == "object" {
			continue
		}
		out[k] = v
	}
	return out
}
