// Package modelstest builds model values for tests.
package modelstest

import (
	"fmt"

	"covid-dashboard/models"
)

// Aggregate builds a RawAggregate from key/value pairs given in order.
// It panics on an odd number of arguments or a non-numeric value.
func Aggregate(kv ...interface{}) models.RawAggregate {
	if len(kv)%2 != 0 {
		panic("modelstest.Aggregate: odd number of arguments")
	}
	var raw models.RawAggregate
	for i := 0; i < len(kv); i += 2 {
		key := kv[i].(string)
		switch v := kv[i+1].(type) {
		case int:
			raw.Set(key, float64(v))
		case float64:
			raw.Set(key, v)
		default:
			panic(fmt.Sprintf("modelstest.Aggregate: unsupported value %T", v))
		}
	}
	return raw
}
