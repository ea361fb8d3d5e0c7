package reflect

import (
	"reflect"
	"sort"
)

type Value = reflect.Value

const (
	Map    = reflect.Map
	String = reflect.String
)

var ValueOf = reflect.ValueOf

// MapKeys returns string representation of the map keys in unspecified order.
// Map keys should be of string kind.
func MapKeys(v Value) []string {
	if v.Kind() != Map {
		panic("expected map, got " + v.Kind().String())
	}
	if v.Type().Key().Kind() != String {
		panic("expected map with string keys, got " + v.Type().Key().Kind().String())
	}

	keys := v.MapKeys()
	res := make([]string, len(keys))
	for n, key := range keys {
		res[n] = key.String()
	}
	return res
}

func MapSortedKeys(v Value) []string {
	keys := MapKeys(v)
	sort.Strings(keys)
	return keys
}
