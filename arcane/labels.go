package arcane

import (
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Labels is an insertion-ordered label → text map.
// Order matters downstream: dial angles and grid cells follow it.
type Labels = orderedmap.OrderedMap[string, string]

// NewLabels returns an empty Labels map.
func NewLabels() *Labels {
	return orderedmap.New[string, string]()
}

// MergeLabels appends every entry of each source into dst, later sources
// overwriting earlier values in place. dst is returned for chaining.
func MergeLabels(dst *Labels, sources ...*Labels) *Labels {
	for _, src := range sources {
		if src == nil {
			continue
		}
		for pair := src.Oldest(); pair != nil; pair = pair.Next() {
			dst.Set(pair.Key, pair.Value)
		}
	}
	return dst
}

// LabelKeys returns the keys of l in order.
func LabelKeys(l *Labels) []string {
	keys := make([]string, 0, l.Len())
	for pair := l.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

func setInt(l *Labels, key string, v int) {
	l.Set(key, strconv.Itoa(v))
}
