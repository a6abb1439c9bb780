package trace

// Scene is what shading needs from the outside world.
type Scene interface {
	Lights() []PointLight
	Geometries() []Primitive
	AmbientLight() Color
}

// World is a slice-backed Scene. Geometry order is preserved, which keeps
// nearest-hit resolution deterministic under ties.
type World struct {
	Ambient    Color
	LightList  []PointLight
	Primitives []Primitive
}

// NewWorld creates an empty world with the given ambient light.
func NewWorld(ambient Color) *World {
	return &World{Ambient: ambient}
}

// Add appends primitives to the world.
func (w *World) Add(prims ...Primitive) {
	w.Primitives = append(w.Primitives, prims...)
}

// AddLight appends lights to the world.
func (w *World) AddLight(lights ...PointLight) {
	w.LightList = append(w.LightList, lights...)
}

// Lights returns the lights in insertion order.
func (w *World) Lights() []PointLight { return w.LightList }

// Geometries returns the primitives in insertion order.
func (w *World) Geometries() []Primitive { return w.Primitives }

// AmbientLight returns the scene ambient light color.
func (w *World) AmbientLight() Color { return w.Ambient }
