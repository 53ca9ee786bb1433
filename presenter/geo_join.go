package presenter

import (
	"fmt"

	"covid-dashboard/models"
	"covid-dashboard/models/geo"
	"covid-dashboard/transform"
)

// UnknownRegion collects the features whose name could not be read.
const UnknownRegion = "UNKNOWN"

// NameExtractor reads a region name from a feature.
type NameExtractor struct {
	Property string
}

// Extract returns the canonical region name held by the extractor's property.
func (e NameExtractor) Extract(f geo.Feature) (string, bool) {
	name, ok := f.StringProperty(e.Property)
	if !ok {
		return "", false
	}
	name = models.CanonicalDepartment(name)
	return name, name != ""
}

// DefaultNameExtractors are tried in order until one yields a name.
var DefaultNameExtractors = []NameExtractor{
	{Property: "name"},
	{Property: "NOMBRE_DPT"},
	{Property: "DPTO_CNMBR"},
}

// Region is one map feature joined with its data.
type Region struct {
	Feature int    `json:"feature"`
	Name    string `json:"name"`
	// Key names the region in the rendered map; unknown features get a
	// per-feature key so they stay distinct.
	Key     string  `json:"key"`
	Value   float64 `json:"value"`
	HasData bool    `json:"has_data"`
	Color   string  `json:"color"`
	Label   string  `json:"label"`
}

// RegionJoin is the result of matching features against data keys.
type RegionJoin struct {
	Regions []Region `json:"regions"`
	// Unknown holds the indexes of the features no extractor could name.
	Unknown []int `json:"unknown,omitempty"`
	// UnmatchedKeys are data keys with no feature to draw them on.
	UnmatchedKeys []string `json:"unmatched_keys,omitempty"`
}

// Matched returns how many regions carry data.
func (j RegionJoin) Matched() int {
	n := 0
	for _, r := range j.Regions {
		if r.HasData {
			n++
		}
	}
	return n
}

// JoinRegions matches every feature of fc against the keys of data,
// ignoring case. Named features without data get transform.DefaultColor;
// features with no usable name are reported under UnknownRegion.
func JoinRegions(fc geo.FeatureCollection, data models.RawAggregate, scale transform.ColorScale, extractors ...NameExtractor) RegionJoin {
	if len(extractors) == 0 {
		extractors = DefaultNameExtractors
	}

	values := make(map[string]float64, data.Len())
	keys := make([]string, 0, data.Len())
	for _, e := range data.Entries {
		canonical := models.CanonicalDepartment(e.Key)
		if _, dup := values[canonical]; !dup {
			keys = append(keys, canonical)
		}
		values[canonical] += e.Value
	}

	join := RegionJoin{Regions: make([]Region, 0, len(fc.Features))}
	used := make(map[string]bool, len(keys))
	for i, f := range fc.Features {
		name, ok := regionName(f, extractors)
		if !ok {
			join.Unknown = append(join.Unknown, i)
			join.Regions = append(join.Regions, Region{
				Feature: i,
				Name:    UnknownRegion,
				Key:     fmt.Sprintf("%s-%d", UnknownRegion, i),
				Color:   transform.DefaultColor,
				Label:   casesLabel(0),
			})
			continue
		}
		region := Region{Feature: i, Name: name, Key: name, Color: transform.DefaultColor, Label: casesLabel(0)}
		if v, found := values[name]; found {
			used[name] = true
			region.Value = v
			region.HasData = true
			region.Color = scale.Color(v)
			region.Label = casesLabel(v)
		}
		join.Regions = append(join.Regions, region)
	}

	for _, k := range keys {
		if !used[k] {
			join.UnmatchedKeys = append(join.UnmatchedKeys, k)
		}
	}
	return join
}

// NamedFeatures copies the features of fc with their "name" property set
// to the region key, the property the chart library matches data on.
func (j RegionJoin) NamedFeatures(fc geo.FeatureCollection) geo.FeatureCollection {
	out := geo.FeatureCollection{Type: fc.Type, Features: make([]geo.Feature, 0, len(fc.Features))}
	for _, r := range j.Regions {
		if r.Feature >= len(fc.Features) {
			continue
		}
		f := fc.Features[r.Feature]
		props := make(map[string]interface{}, len(f.Properties)+1)
		for k, v := range f.Properties {
			props[k] = v
		}
		props["name"] = r.Key
		out.Features = append(out.Features, geo.Feature{Type: f.Type, Properties: props, Geometry: f.Geometry})
	}
	return out
}

func regionName(f geo.Feature, extractors []NameExtractor) (string, bool) {
	for _, e := range extractors {
		if name, ok := e.Extract(f); ok {
			return name, true
		}
	}
	return "", false
}

func casesLabel(v float64) string {
	return ValueAbbreviated.Format(v)
}
