// models/semester_matrix.go
package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DepartmentBreakdown is the municipality -> count mapping of one department
// within one semester.
type DepartmentBreakdown struct {
	Department     string       `json:"department"`
	Municipalities RawAggregate `json:"municipalities"`
}

// SemesterBreakdown holds the departments of one semester in API order.
type SemesterBreakdown struct {
	Departments []DepartmentBreakdown
}

// Department looks a department up by name, ignoring case.
func (s SemesterBreakdown) Department(name string) (DepartmentBreakdown, bool) {
	canonical := CanonicalDepartment(name)
	for _, d := range s.Departments {
		if d.Department == canonical {
			return d, true
		}
	}
	return DepartmentBreakdown{}, false
}

// UnmarshalJSON decodes {"DEPT": {"municipality": count}} keeping order.
// Department keys are canonicalized to upper case; two keys that collapse to
// the same department have their municipalities merged.
func (s *SemesterBreakdown) UnmarshalJSON(data []byte) error {
	s.Departments = nil
	return decodeOrderedObject(data, func(key string, value json.RawMessage) error {
		var municipalities RawAggregate
		if err := json.Unmarshal(value, &municipalities); err != nil {
			return fmt.Errorf("department %q: %w", key, err)
		}
		canonical := CanonicalDepartment(key)
		for i := range s.Departments {
			if s.Departments[i].Department == canonical {
				for _, e := range municipalities.Entries {
					prev, _ := s.Departments[i].Municipalities.Get(e.Key)
					s.Departments[i].Municipalities.Set(e.Key, prev+e.Value)
				}
				return nil
			}
		}
		s.Departments = append(s.Departments, DepartmentBreakdown{
			Department:     canonical,
			Municipalities: municipalities,
		})
		return nil
	})
}

// MarshalJSON encodes the breakdown back to the API shape, in order.
func (s SemesterBreakdown) MarshalJSON() ([]byte, error) {
	parts := make([]string, 0, len(s.Departments))
	for _, d := range s.Departments {
		key, err := json.Marshal(d.Department)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(d.Municipalities)
		if err != nil {
			return nil, err
		}
		parts = append(parts, string(key)+":"+string(value))
	}
	return []byte("{" + strings.Join(parts, ",") + "}"), nil
}

// SemesterDepartmentMatrix is semester key -> department -> municipality -> count,
// as served by /dashboard/por-semestre-departamento-municipio.
type SemesterDepartmentMatrix map[string]SemesterBreakdown

// CanonicalDepartment normalizes a department name for joins.
func CanonicalDepartment(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
