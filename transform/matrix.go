package transform

import (
	"sort"

	"covid-dashboard/models"
)

// Semesters returns the semester keys of the matrix in ascending order.
func Semesters(m models.SemesterDepartmentMatrix) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DepartmentTotals sums the municipalities of every department of semester,
// in API order. A missing semester yields an empty aggregate.
func DepartmentTotals(m models.SemesterDepartmentMatrix, semester string) models.RawAggregate {
	var totals models.RawAggregate
	breakdown, ok := m[semester]
	if !ok {
		return totals
	}
	for _, d := range breakdown.Departments {
		totals.Set(d.Department, d.Municipalities.Sum())
	}
	return totals
}

// MunicipalitiesOf returns the municipality breakdown of one department in
// one semester, ranked by value. Missing keys yield an empty series.
func MunicipalitiesOf(m models.SemesterDepartmentMatrix, semester, department string) []models.CategoryCount {
	breakdown, ok := m[semester]
	if !ok {
		return []models.CategoryCount{}
	}
	dept, ok := breakdown.Department(department)
	if !ok {
		return []models.CategoryCount{}
	}
	return ToSeries(dept.Municipalities, SortValueDesc)
}
