package geom

import (
	"math"
)

// Mat3 is a 3x3 matrix stored in row-major order.
type Mat3 [9]float64

// Identity3 returns the identity matrix.
func Identity3() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Apply rotates a vector by m.
func (m *Mat3) Apply(v Vec) Vec {
	return Vec{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// Transpose returns the transpose of m. For a rotation matrix this is its
// inverse.
func (m *Mat3) Transpose() Mat3 {
	return Mat3{
		m[0], m[3], m[6],
		m[1], m[4], m[7],
		m[2], m[5], m[8],
	}
}

// AxisAngleMatrix returns the matrix rotating by the given angle around the
// given axis. The axis need not be normalized.
func AxisAngleMatrix(axis Vec, angle float64) Mat3 {
	u := axis.Unit()
	c, s := math.Cos(angle), math.Sin(angle)
	t := 1 - c

	return Mat3{
		c + u[0]*u[0]*t, u[0]*u[1]*t - u[2]*s, u[0]*u[2]*t + u[1]*s,
		u[1]*u[0]*t + u[2]*s, c + u[1]*u[1]*t, u[1]*u[2]*t - u[0]*s,
		u[2]*u[0]*t - u[1]*s, u[2]*u[1]*t + u[0]*s, c + u[2]*u[2]*t,
	}
}

// RotationBetween returns the matrix rotating the direction of v onto the
// direction of u. Antiparallel vectors rotate around an arbitrary
// perpendicular axis.
func RotationBetween(v, u Vec) Mat3 {
	angle := AngleBetween(v, u)
	axis := v.Cross(u)
	if axis.Norm() == 0 {
		if angle == 0 {
			return Identity3()
		}
		// Antiparallel: any perpendicular axis works.
		axis = perpendicular(v)
	}
	return AxisAngleMatrix(axis, angle)
}

// perpendicular returns a vector perpendicular to v.
func perpendicular(v Vec) Vec {
	if math.Abs(v[0]) <= math.Abs(v[1]) && math.Abs(v[0]) <= math.Abs(v[2]) {
		return Vec{1, 0, 0}.Cross(v)
	} else if math.Abs(v[1]) <= math.Abs(v[2]) {
		return Vec{0, 1, 0}.Cross(v)
	}
	return Vec{0, 0, 1}.Cross(v)
}
