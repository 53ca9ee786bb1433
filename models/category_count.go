package models

// CategoryCount is a single named metric ready to be charted.
type CategoryCount struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AgePoint is one entry of the per-age distribution.
type AgePoint struct {
	Age   int     `json:"age"`
	Value float64 `json:"value"`
}

// AgeBucket is an inclusive age range with its display label.
type AgeBucket struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
}
