package reflect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapKeys(t *testing.T) {
	m1 := map[string]struct{}{
		"hello": {},
		"world": {},
		"!":     {},
	}
	all := true
	for _, key := range MapKeys(ValueOf(m1)) {
		_, all = m1[key]
		if !all {
			break
		}
	}
	assert.True(t, all)
}

func TestMapSortedKeys(t *testing.T) {
	m1 := map[string]struct{}{
		"hello": {},
		"world": {},
		"!":     {},
	}
	assert.Equal(t, []string{"!", "hello", "world"}, MapSortedKeys(ValueOf(m1)))
}

func TestMapSortedKeysNamedString(t *testing.T) {
	type name string
	m := map[name]int{"b": 2, "a": 1}
	assert.Equal(t, []string{"a", "b"}, MapSortedKeys(ValueOf(m)))
}

func TestMapKeysPanicsOnNonMap(t *testing.T) {
	assert.Panics(t, func() { MapKeys(ValueOf([]string{"a"})) })
}
