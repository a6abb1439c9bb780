package math3d

// Transform is an immutable affine object→world mapping composed as
// Translate(Position) * RotateEuler(Rotation) * Scale(Scale).
//
// The inverse is built analytically when the transform is created, so every
// query method is a pure function of the receiver and its argument.
type Transform struct {
	Position Vec3 // World translation
	Rotation Vec3 // Euler angles in radians, applied X then Y then Z
	Scale    Vec3 // Per-axis scale

	toWorld  Mat4
	toObject Mat4
	normal   Mat4 // Transpose of toObject, maps object normals to world
}

// NewTransform builds a transform from translation, rotation and scale.
// Scale components of exactly zero are replaced by 1 because they cannot be
// inverted; callers that care reject them during scene validation.
func NewTransform(position, rotation, scale Vec3) Transform {
	scale = Vec3{nonZero(scale.X), nonZero(scale.Y), nonZero(scale.Z)}
	rot := RotateEuler(rotation)

	toWorld := Translate(position).Mul(rot).Mul(Scale(scale))

	// (T R S)^-1 = S^-1 R^T T^-1
	invScale := Vec3{1 / scale.X, 1 / scale.Y, 1 / scale.Z}
	toObject := Scale(invScale).Mul(rot.Transpose()).Mul(Translate(position.Negate()))

	return Transform{
		Position: position,
		Rotation: rotation,
		Scale:    scale,
		toWorld:  toWorld,
		toObject: toObject,
		normal:   toObject.Transpose(),
	}
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return NewTransform(Zero3(), Zero3(), One3())
}

// Translated returns a transform with only a translation component.
func Translated(position Vec3) Transform {
	return NewTransform(position, Zero3(), One3())
}

// Matrix returns the object→world matrix.
func (t Transform) Matrix() Mat4 {
	return t.ensure().toWorld
}

// Inverse returns the world→object matrix.
func (t Transform) Inverse() Mat4 {
	return t.ensure().toObject
}

// Translation returns the world position of the object-space origin.
func (t Transform) Translation() Vec3 {
	return t.ensure().toWorld.Translation()
}

// PointToObject maps a world-space point into object space, translation included.
func (t Transform) PointToObject(p Vec3) Vec3 {
	return t.ensure().toObject.MulPoint(p)
}

// DirToObject maps a world-space direction into object space. Only the
// inverse rotation and inverse scale apply; the result is not normalized so
// that ray parameters keep their world-space meaning.
func (t Transform) DirToObject(d Vec3) Vec3 {
	return t.ensure().toObject.MulDir(d)
}

// PointToWorld maps an object-space point into world space.
func (t Transform) PointToWorld(p Vec3) Vec3 {
	return t.ensure().toWorld.MulPoint(p)
}

// DirToWorld maps an object-space direction into world space.
func (t Transform) DirToWorld(d Vec3) Vec3 {
	return t.ensure().toWorld.MulDir(d)
}

// NormalToWorld maps an object-space surface normal into world space using
// the inverse transpose, then normalizes it.
func (t Transform) NormalToWorld(n Vec3) Vec3 {
	return t.ensure().normal.MulDir(n).Normalize()
}

// ensure makes the zero Transform behave as the identity.
func (t Transform) ensure() Transform {
	if t.toWorld[15] == 0 {
		return NewTransform(t.Position, t.Rotation, t.Scale)
	}
	return t
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 1
	}
	return v
}
