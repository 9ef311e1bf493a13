package somfyprotect

import (
	"fmt"
	"strings"
)

// Category is a device family of the Somfy Protect catalog. Its value is
// the vendor string found in device definition labels.
type Category string

// Known device categories.
const (
	CategoryLink          Category = "Link"
	CategoryIndoorCamera  Category = "Somfy Indoor Camera"
	CategoryIndoorSiren   Category = "Myfox Security Siren"
	CategoryOutdoorCamera Category = "Somfy Outdoor Camera"
	CategoryOutdoorSiren  Category = "Myfox Security Outdoor Siren"
	CategoryIntelliTag    Category = "IntelliTag"
	CategoryKeyFob        Category = "Key Fob"
	CategoryMotion        Category = "Myfox Security Infrared Sensor"

	// CategoryUnknown is reported for labels outside the catalog.
	CategoryUnknown Category = ""
)

// Categories lists the catalog, most specific vendor string first.
// CategoryOf relies on this order; the short "Link" is tested last.
var Categories = []Category{
	CategoryOutdoorSiren,
	CategoryIndoorSiren,
	CategoryOutdoorCamera,
	CategoryIndoorCamera,
	CategoryMotion,
	CategoryIntelliTag,
	CategoryKeyFob,
	CategoryLink,
}

var categoryNames = map[string]Category{
	"link":           CategoryLink,
	"indoor_camera":  CategoryIndoorCamera,
	"indoor_siren":   CategoryIndoorSiren,
	"outdoor_camera": CategoryOutdoorCamera,
	"outdoor_siren":  CategoryOutdoorSiren,
	"intellitag":     CategoryIntelliTag,
	"key_fob":        CategoryKeyFob,
	"motion":         CategoryMotion,
}

// ParseCategory resolves a short name such as "intellitag" or "key_fob",
// or an exact vendor string, to a Category.
func ParseCategory(s string) (Category, error) {
	if c, ok := categoryNames[strings.ToLower(strings.TrimSpace(s))]; ok {
		return c, nil
	}
	for _, c := range Categories {
		if string(c) == s {
			return c, nil
		}
	}
	return CategoryUnknown, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", s)}
}

// Matches reports whether a device definition label belongs to c.
// The API only exposes free-text labels, so this is a substring test.
func (c Category) Matches(definitionLabel string) bool {
	return c != CategoryUnknown && strings.Contains(definitionLabel, string(c))
}

// CategoryOf returns the first catalog category matching definitionLabel.
func CategoryOf(definitionLabel string) Category {
	for _, c := range Categories {
		if c.Matches(definitionLabel) {
			return c
		}
	}
	return CategoryUnknown
}
