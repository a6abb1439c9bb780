package trace

// Material exposes the reflectance colors used by local illumination.
type Material interface {
	Ambient() Color
	Diffuse() Color
}

// Lambert is a plain ambient + diffuse material.
type Lambert struct {
	AmbientColor Color
	DiffuseColor Color
}

// NewLambert creates a material with the given ambient and diffuse reflectance.
func NewLambert(ambient, diffuse Color) *Lambert {
	return &Lambert{AmbientColor: ambient, DiffuseColor: diffuse}
}

// Ambient returns the ambient reflectance.
func (l *Lambert) Ambient() Color { return l.AmbientColor }

// Diffuse returns the diffuse reflectance.
func (l *Lambert) Diffuse() Color { return l.DiffuseColor }

// MaterialRef is an optional Material. The zero value is None, which shades
// with zero reflectance.
type MaterialRef struct {
	m Material
}

// Some wraps m. A nil m yields None.
func Some(m Material) MaterialRef {
	return MaterialRef{m: m}
}

// None returns the absent material.
func None() MaterialRef {
	return MaterialRef{}
}

// Get returns the material and whether one is present.
func (r MaterialRef) Get() (Material, bool) {
	return r.m, r.m != nil
}

// Ambient returns the ambient reflectance, or black when absent.
func (r MaterialRef) Ambient() Color {
	if r.m == nil {
		return Black
	}
	return r.m.Ambient()
}

// Diffuse returns the diffuse reflectance, or black when absent.
func (r MaterialRef) Diffuse() Color {
	if r.m == nil {
		return Black
	}
	return r.m.Diffuse()
}
