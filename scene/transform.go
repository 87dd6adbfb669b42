package scene

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Up is the local axis a cylinder primitive is aligned with.
var Up = r3.Vec{Y: 1}

// parallelTolerance is how close |cos| must be to 1 before two directions
// are treated as parallel.
const parallelTolerance = 1e-12

// Transform is a node's local transform.
type Transform struct {
	Position r3.Vec
	Scale    r3.Vec
	Rotation r3.Rotation
}

// Identity returns the transform with unit scale and no rotation.
func Identity() Transform {
	return Transform{
		Scale:    r3.Vec{X: 1, Y: 1, Z: 1},
		Rotation: IdentityRotation(),
	}
}

// IdentityRotation returns the rotation that leaves every vector unchanged.
func IdentityRotation() r3.Rotation {
	return r3.Rotation{Real: 1}
}

// UniformScale returns a transform at position p scaled by s on every axis.
func UniformScale(p r3.Vec, s float64) Transform {
	return Transform{
		Position: p,
		Scale:    r3.Vec{X: s, Y: s, Z: s},
		Rotation: IdentityRotation(),
	}
}

// UpRotation returns the shortest rotation carrying Up onto dir.
// A zero dir yields the identity; a dir pointing straight down yields a
// half turn about X.
func UpRotation(dir r3.Vec) r3.Rotation {
	n := r3.Norm(dir)
	if n == 0 {
		return IdentityRotation()
	}
	u := r3.Scale(1/n, dir)
	cos := r3.Dot(Up, u)
	switch {
	case cos >= 1-parallelTolerance:
		return IdentityRotation()
	case cos <= -1+parallelTolerance:
		return r3.NewRotation(math.Pi, r3.Vec{X: 1})
	}
	return r3.NewRotation(math.Acos(cos), r3.Cross(Up, u))
}

// CylinderBetween returns the transform of a unit cylinder stretched from
// p1 to p2. The cylinder primitive is two units tall, so the Y scale is half
// the distance between the endpoints.
func CylinderBetween(p1, p2 r3.Vec, radius float64) Transform {
	d := r3.Sub(p2, p1)
	return Transform{
		Position: r3.Scale(0.5, r3.Add(p1, p2)),
		Scale:    r3.Vec{X: radius, Y: r3.Norm(d) / 2, Z: radius},
		Rotation: UpRotation(d),
	}
}

// Euler builds a rotation from angles in degrees, applied about Z, then X,
// then Y.
func Euler(x, y, z float64) r3.Rotation {
	qx := quat.Number(axisRotation(x, r3.Vec{X: 1}))
	qy := quat.Number(axisRotation(y, r3.Vec{Y: 1}))
	qz := quat.Number(axisRotation(z, r3.Vec{Z: 1}))
	return r3.Rotation(quat.Mul(qy, quat.Mul(qx, qz)))
}

func axisRotation(deg float64, axis r3.Vec) r3.Rotation {
	if deg == 0 {
		return IdentityRotation()
	}
	return r3.NewRotation(deg*math.Pi/180, axis)
}

// Quaternion returns r as (w, x, y, z).
func Quaternion(r r3.Rotation) [4]float64 {
	return [4]float64{r.Real, r.Imag, r.Jmag, r.Kmag}
}

// FromQuaternion is the inverse of Quaternion.
func FromQuaternion(q [4]float64) r3.Rotation {
	return r3.Rotation{Real: q[0], Imag: q[1], Jmag: q[2], Kmag: q[3]}
}
