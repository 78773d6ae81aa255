package lighting

import (
	"fmt"
	"strings"

	"github.com/chewxy/math32"

	"phong-engine/core"
	"phong-engine/math"
)

// degenerateEpsilon bounds the squared length below which a vector is
// treated as zero and cannot be normalized.
const degenerateEpsilon = 1e-12

// Fragment is the per-sample input to the evaluator. Normal may have any
// non-zero length.
type Fragment struct {
	Normal        math.Vec3
	WorldPosition math.Vec3
	ViewPosition  math.Vec3
}

// Terms is a set of reflection terms.
type Terms uint8

const (
	TermAmbient Terms = 1 << iota
	TermDiffuse
	TermSpecular
)

func (t Terms) Has(term Terms) bool {
	return t&term == term
}

// Variant selects one of the three lighting models, each computing a strict
// superset of the terms of the previous one.
type Variant int

const (
	VariantAmbient Variant = iota
	VariantDiffuse
	VariantPhong
)

var variantNames = [...]string{
	VariantAmbient: "ambient",
	VariantDiffuse: "diffuse",
	VariantPhong:   "phong",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("Variant(%d)", int(v))
	}
	return variantNames[v]
}

func (v Variant) Terms() Terms {
	switch v {
	case VariantAmbient:
		return TermAmbient
	case VariantDiffuse:
		return TermAmbient | TermDiffuse
	case VariantPhong:
		return TermAmbient | TermDiffuse | TermSpecular
	}
	return 0
}

// ParseVariant accepts a variant name (case-insensitive) or its single-letter
// alias a, b or c.
func ParseVariant(s string) (Variant, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ambient", "a":
		return VariantAmbient, nil
	case "diffuse", "b":
		return VariantDiffuse, nil
	case "phong", "c":
		return VariantPhong, nil
	}
	return 0, fmt.Errorf("lighting: unknown variant %q (want ambient, diffuse or phong)", s)
}

// Ambient computes objectColor × (ambientStrength × lightColor).
func Ambient(o ObjectLight) core.Color {
	return o.ObjectColor.Mul(o.LightColor.Scale(o.AmbientStrength))
}

// AmbientDiffuse adds a Lambert term to Ambient. Both terms are tinted by the
// object color.
func AmbientDiffuse(o ObjectLight, normal math.Vec3) (core.Color, error) {
	n, l, err := surfaceAndLight(normal, o.LightDirection)
	if err != nil {
		return core.Color{}, err
	}

	ambient := o.LightColor.Scale(o.AmbientStrength)
	diffuse := o.LightColor.Scale(lambert(n, l))
	return o.ObjectColor.Mul(ambient.Add(diffuse)), nil
}

// Phong evaluates ambient, diffuse and specular terms for a material under a
// directional light. The result is not tinted by any base color.
//
// The specular lobe reflects the incoming light direction, not the
// surface-to-light vector: R = reflect(l.Direction, N). The textbook model
// uses reflect(-L, N); the GLSL mirror matches this function, not the book.
func Phong(m Material, l Light, f Fragment) (core.Color, error) {
	n, toLight, err := surfaceAndLight(f.Normal, l.Direction)
	if err != nil {
		return core.Color{}, err
	}

	ambient := m.Ambient.Mul(l.Ambient)
	diffuse := l.Diffuse.Mul(m.Diffuse.Scale(lambert(n, toLight)))

	var specular core.Color
	if spec := specularFactor(n, l.Direction, f, m.Shininess); spec > 0 {
		specular = l.Specular.Mul(m.Specular.Scale(spec))
	}

	return ambient.Add(diffuse).Add(specular), nil
}

// Evaluator shades fragments with a fixed variant and scene-constant
// parameters. Object is used by the ambient and diffuse variants, Material
// and Light by the phong variant.
type Evaluator struct {
	Variant  Variant
	Object   ObjectLight
	Material Material
	Light    Light
}

// Shade is safe for concurrent use.
func (e Evaluator) Shade(f Fragment) (core.Color, error) {
	switch e.Variant {
	case VariantAmbient:
		return Ambient(e.Object), nil
	case VariantDiffuse:
		return AmbientDiffuse(e.Object, f.Normal)
	case VariantPhong:
		return Phong(e.Material, e.Light, f)
	}
	return core.Color{}, fmt.Errorf("lighting: unsupported variant %v", e.Variant)
}

// Validate checks the parameters the configured variant reads.
func (e Evaluator) Validate() error {
	if e.Variant.Terms() == 0 {
		return fmt.Errorf("lighting: unsupported variant %v", e.Variant)
	}
	if e.Variant == VariantPhong {
		if err := e.Material.Validate(); err != nil {
			return err
		}
		if e.Light.Direction.LengthSqr() < degenerateEpsilon {
			return ErrDegenerateLight
		}
		return nil
	}
	if e.Variant.Terms().Has(TermDiffuse) && e.Object.LightDirection.LengthSqr() < degenerateEpsilon {
		return ErrDegenerateLight
	}
	return nil
}

// surfaceAndLight returns the unit normal and the unit direction toward the
// light.
func surfaceAndLight(normal, lightDirection math.Vec3) (n, l math.Vec3, err error) {
	if normal.LengthSqr() < degenerateEpsilon || !normal.IsFinite() {
		return n, l, ErrDegenerateNormal
	}
	if lightDirection.LengthSqr() < degenerateEpsilon || !lightDirection.IsFinite() {
		return n, l, ErrDegenerateLight
	}
	return normal.Normalize(), lightDirection.Negate().Normalize(), nil
}

func lambert(n, l math.Vec3) float32 {
	return math32.Max(n.Dot(l), 0)
}

// specularFactor is zero when the eye sits on the surface point.
func specularFactor(n, lightDirection math.Vec3, f Fragment, shininess float32) float32 {
	toEye := f.ViewPosition.Sub(f.WorldPosition)
	if toEye.LengthSqr() < degenerateEpsilon {
		return 0
	}
	v := toEye.Normalize()
	r := lightDirection.Reflect(n)
	return math32.Pow(math32.Max(v.Dot(r), 0), shininess)
}
