package drawable

import (
	"github.com/google/uuid"

	"github.com/Faultbox/meshforge/internal/engine/geometry"
	"github.com/Faultbox/meshforge/internal/engine/gpu"
)

// Registry is the ordered list of loaded assets. It is not safe for
// concurrent use.
type Registry struct {
	assets []*Asset
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Add appends an asset.
func (r *Registry) Add(a *Asset) {
	r.assets = append(r.assets, a)
}

// Assets returns the assets in insertion order.
func (r *Registry) Assets() []*Asset {
	return r.assets
}

// Len returns the number of assets.
func (r *Registry) Len() int {
	return len(r.assets)
}

// Bounds returns the union of every asset's bounds.
func (r *Registry) Bounds() geometry.Bounds {
	b := geometry.EmptyBounds()
	for _, a := range r.assets {
		b.Union(a.Bounds)
	}
	return b
}

// Triangles returns the triangle count over all assets.
func (r *Registry) Triangles() int {
	n := 0
	for _, a := range r.assets {
		n += a.Triangles()
	}
	return n
}

// Get returns the asset with id.
func (r *Registry) Get(id uuid.UUID) (*Asset, bool) {
	for _, a := range r.assets {
		if a.ID == id {
			return a, true
		}
	}
	return nil, false
}

// Remove releases and drops the asset with id. It reports whether it existed.
func (r *Registry) Remove(dev gpu.Device, id uuid.UUID) bool {
	for i, a := range r.assets {
		if a.ID != id {
			continue
		}
		a.Release(dev)
		r.assets = append(r.assets[:i], r.assets[i+1:]...)
		return true
	}
	return false
}

// Clear releases every asset and empties the registry.
func (r *Registry) Clear(dev gpu.Device) {
	for _, a := range r.assets {
		a.Release(dev)
	}
	r.assets = nil
}
