package geo

import "encoding/json"

// FeatureCollection is a GeoJSON feature collection with named regions.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON feature. Properties are kept free-form because
// boundary datasets disagree on which property holds the region name.
type Feature struct {
	Type       string                 `json:"type"`
	Properties map[string]interface{} `json:"properties"`
	Geometry   json.RawMessage        `json:"geometry"`
}

// StringProperty returns a property when it is a non-empty string.
func (f Feature) StringProperty(name string) (string, bool) {
	v, ok := f.Properties[name]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}
