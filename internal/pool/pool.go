// Package pool provides object pools for frequently allocated render objects.
// Every frame builds a layer slice and several strings; pooling them keeps
// the render loop from churning the garbage collector.
package pool

import (
	"strings"
	"sync"

	"charm.land/lipgloss/v2"
)

var stringBuilderPool = sync.Pool{
	New: func() any {
		return &strings.Builder{}
	},
}

// GetStringBuilder returns a reset string builder from the pool.
func GetStringBuilder() *strings.Builder {
	return stringBuilderPool.Get().(*strings.Builder)
}

// PutStringBuilder resets and returns a string builder to the pool.
func PutStringBuilder(sb *strings.Builder) {
	sb.Reset()
	stringBuilderPool.Put(sb)
}

var layerSlicePool = sync.Pool{
	New: func() any {
		s := make([]*lipgloss.Layer, 0, 16)
		return &s
	},
}

// GetLayerSlice returns a layer slice from the pool. The slice is returned
// as a pointer so putting it back avoids an allocation.
func GetLayerSlice() *[]*lipgloss.Layer {
	return layerSlicePool.Get().(*[]*lipgloss.Layer)
}

// PutLayerSlice clears and returns a layer slice to the pool.
func PutLayerSlice(layers *[]*lipgloss.Layer) {
	*layers = (*layers)[:0]
	layerSlicePool.Put(layers)
}
