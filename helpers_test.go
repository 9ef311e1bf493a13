package somfyprotect

import (
	"testing"
)

func testDevices() []Device {
	return []Device{
		{DeviceID: "d1", Label: "Front door", DeviceDefinition: DeviceDefinition{Label: "IntelliTag"}},
		{DeviceID: "d2", Label: "Hall", DeviceDefinition: DeviceDefinition{Label: "Myfox Security Infrared Sensor"}},
		{DeviceID: "d3", Label: "Box", DeviceDefinition: DeviceDefinition{Label: "Link"}},
	}
}

func TestFilterDevices(t *testing.T) {
	devices := testDevices()

	got := FilterDevices(devices, func(d Device) bool { return d.Label != "Hall" })
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].DeviceID != "d1" || got[1].DeviceID != "d3" {
		t.Errorf("unexpected order: %v, %v", got[0].DeviceID, got[1].DeviceID)
	}

	none := FilterDevices(devices, func(Device) bool { return false })
	if none == nil || len(none) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", none)
	}
}

func TestFilterByCategory(t *testing.T) {
	tests := []struct {
		category Category
		wantIDs  []string
	}{
		{category: CategoryIntelliTag, wantIDs: []string{"d1"}},
		{category: CategoryMotion, wantIDs: []string{"d2"}},
		{category: CategoryLink, wantIDs: []string{"d3"}},
		{category: CategoryKeyFob, wantIDs: nil},
		{category: CategoryUnknown, wantIDs: nil},
	}

	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			got := FilterByCategory(testDevices(), tt.category)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].DeviceID != id {
					t.Errorf("got[%d] = %s, want %s", i, got[i].DeviceID, id)
				}
			}
		})
	}
}

func TestFindDeviceByLabel(t *testing.T) {
	devices := testDevices()

	if d := FindDeviceByLabel(devices, "Hall"); d == nil || d.DeviceID != "d2" {
		t.Errorf("FindDeviceByLabel(Hall) = %v", d)
	}
	if d := FindDeviceByLabel(devices, "Attic"); d != nil {
		t.Errorf("expected nil, got %v", d)
	}

	// The result points into the slice.
	FindDeviceByLabel(devices, "Box").Label = "Renamed"
	if devices[2].Label != "Renamed" {
		t.Error("expected pointer into the original slice")
	}
}

func TestFindDeviceByID(t *testing.T) {
	devices := testDevices()

	if d := FindDeviceByID(devices, "d3"); d == nil || d.Label != "Box" {
		t.Errorf("FindDeviceByID(d3) = %v", d)
	}
	if d := FindDeviceByID(devices, "missing"); d != nil {
		t.Errorf("expected nil, got %v", d)
	}
	if d := FindDeviceByID(nil, "d1"); d != nil {
		t.Errorf("expected nil for nil slice, got %v", d)
	}
}

func TestFindSite(t *testing.T) {
	sites := []Site{
		{SiteID: "s1", Label: "Home"},
		{SiteID: "s2", Label: "Office"},
	}

	if s := FindSiteByID(sites, "s2"); s == nil || s.Label != "Office" {
		t.Errorf("FindSiteByID(s2) = %v", s)
	}
	if s := FindSiteByID(sites, "s3"); s != nil {
		t.Errorf("expected nil, got %v", s)
	}
	if s := FindSiteByLabel(sites, "Home"); s == nil || s.SiteID != "s1" {
		t.Errorf("FindSiteByLabel(Home) = %v", s)
	}
	if s := FindSiteByLabel(sites, "Cabin"); s != nil {
		t.Errorf("expected nil, got %v", s)
	}
}
