/*
Package trackedit implements the numeric base for editing routes: pairs for
2D plane algebra, 3D track points with elevation, and affine transformations.

Sub-packages build on it: plane (line and sketch-plane algebra), enrich
(derived point attributes), bend (circular arc fitting), quadtree (spatial
index) and proximity (self-intersection detection and picking).

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package trackedit

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"
)

// === Numeric Data Type =====================================================

// Epsilon : numbers below ε are considered 0
var Epsilon float64 = 0.0000001

// Is0 is a predicate: is n = 0 ?
func Is0(n float64) bool {
	return math.Abs(n) <= Epsilon
}

// Zap makes n = 0 if n "means" to be zero
func Zap(n float64) float64 {
	if Is0(n) {
		n = 0
	}
	return n
}

// === Pair Data Type ========================================================

// Pair is a 2D point or vector in the local planar projection.
type Pair complex128

// Origin represents the frequently used constant (0,0).
var Origin = P(float64(0), float64(0))

// Pretty Stringer for simple pairs.
func (p Pair) String() string {
	return fmt.Sprintf("(%g,%g)", real(p), imag(p))
}

// P is a quick notation for contructing a pair from floats.
func P(x, y float64) Pair {
	return Pair(complex(x, y))
}

// X is the x-part of a pair.
func (p Pair) X() float64 {
	return real(p)
}

// Y is the y-part of a pair.
func (p Pair) Y() float64 {
	return imag(p)
}

// Zap rounds x-part and y-part to Epsilon.
func (p Pair) Zap() Pair {
	return P(Zap(p.X()), Zap(p.Y()))
}

// IsOrigin is a predicate: is this pair origin?
func (p Pair) IsOrigin() bool {
	return p.Equal(Origin)
}

// Equal compares two pairs.
func (p Pair) Equal(p2 Pair) bool {
	return Is0(p.X()-p2.X()) && Is0(p.Y()-p2.Y())
}

// Norm is the length of p taken as a vector.
func (p Pair) Norm() float64 {
	return cmplx.Abs(complex128(p))
}

// Dist is the euclidean distance between p and p2.
func (p Pair) Dist(p2 Pair) float64 {
	return (p - p2).Norm()
}

// Phase is the angle of p taken as a vector, in -π…π, counterclockwise from
// the x-axis.
func (p Pair) Phase() float64 {
	return cmplx.Phase(complex128(p))
}

// Unit returns p scaled to length 1. The zero vector stays zero.
func (p Pair) Unit() Pair {
	n := p.Norm()
	if Is0(n) {
		return Origin
	}
	return p.Scaled(1 / n)
}

// Dot is the scalar product of p and p2.
func (p Pair) Dot(p2 Pair) float64 {
	return p.X()*p2.X() + p.Y()*p2.Y()
}

// Cross is the z-component of the cross product of p and p2.
// It is positive if p2 lies counterclockwise of p.
func (p Pair) Cross(p2 Pair) float64 {
	return p.X()*p2.Y() - p.Y()*p2.X()
}

// Mid returns the point halfway between p and p2.
func (p Pair) Mid(p2 Pair) Pair {
	return (p + p2).Scaled(0.5)
}

// Scaled returns a new pair scaled by factor a.
func (p Pair) Scaled(a float64) Pair {
	return P(p.X()*a, p.Y()*a)
}

// Shifted returns a new pair translated by v.
func (p Pair) Shifted(v Pair) Pair {
	T := Translation(v)
	return T.Transform(p)
}

// Rotated returns a new pair rotated around origin by theta (counterclockwise).
func (p Pair) Rotated(theta float64) Pair {
	T := Rotation(theta)
	return T.Transform(p)
}

// Rotatedaround returns a new pair rotated around v by theta (counterclockwise).
func (p Pair) Rotatedaround(v Pair, theta float64) Pair {
	return p.Shifted(-v).Rotated(theta).Shifted(v)
}

// R2 converts p to a golang/geo planar point.
func (p Pair) R2() r2.Point {
	return r2.Point{X: p.X(), Y: p.Y()}
}

// FromR2 converts a golang/geo planar point to a pair.
func FromR2(p r2.Point) Pair {
	return P(p.X, p.Y)
}

// Box returns the smallest axis-aligned rectangle containing all pairs.
func Box(pairs ...Pair) r2.Rect {
	r := r2.EmptyRect()
	for _, p := range pairs {
		r = r.AddPoint(p.R2())
	}
	return r
}

// === Track Points ==========================================================

// Point is a track point: X and Y in the local planar projection, Z is the
// elevation. Points are values and never change once created.
type Point r3.Vector

// Pt is a quick notation for constructing a track point.
func Pt(x, y, elevation float64) Point {
	return Point{X: x, Y: y, Z: elevation}
}

// Lift returns the track point above pair xy at the given elevation.
func Lift(xy Pair, elevation float64) Point {
	return Pt(xy.X(), xy.Y(), elevation)
}

// V returns p as a 3D vector.
func (p Point) V() r3.Vector {
	return r3.Vector(p)
}

// XY projects p onto the plane, dropping the elevation.
func (p Point) XY() Pair {
	return P(p.X, p.Y)
}

// Elevation is the z-part of a track point.
func (p Point) Elevation() float64 {
	return p.Z
}

// Distance is the 3D distance between p and q.
func (p Point) Distance(q Point) float64 {
	return p.V().Distance(q.V())
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g,%g)", p.X, p.Y, p.Z)
}

// === Affine Transformations ================================================

// AT is an affine transform, a matrix type used for transforming vectors.
type AT []float64 // a 3x3 matrix, flattened by rows

// Internal constructor. Clients implicitely use this as a starting point for
// transform combinations.
func newAT() AT {
	m := make([]float64, 9)
	return m
}

func (m AT) set(row, col int, value float64) {
	m[row*3+col] = value
}

func (m AT) row(row int) []float64 {
	return m[row*3 : (row+1)*3]
}

// Identity transform. Will transform a point onto itself.
func Identity() AT {
	m := newAT()
	m.set(0, 0, 1.0)
	m.set(1, 1, 1.0)
	m.set(2, 2, 1.0)
	return m
}

// Translation transform. Translate a point by (dx,dy).
func Translation(p Pair) AT {
	m := Identity()
	m.set(0, 2, p.X())
	m.set(1, 2, p.Y())
	return m
}

// Rotation transform. Rotate a point counter-clockwise around the origin.
// Argument is in radians.
func Rotation(theta float64) AT {
	m := newAT()
	sin := math.Sin(theta)
	cos := math.Cos(theta)
	m.set(0, 0, cos)
	m.set(0, 1, -sin)
	m.set(1, 0, sin)
	m.set(1, 1, cos)
	m.set(2, 2, 1.0)
	return m
}

// v1 × v2, v.n = [a,b,c]
func dotProd(vec1, vec2 []float64) float64 {
	return vec1[0]*vec2[0] + vec1[1]*vec2[1] + vec1[2]*vec2[2]
}

// Transform a 2D-point. The argument is unchanged and a new pair is returned.
func (m AT) Transform(p Pair) Pair {
	v := []float64{p.X(), p.Y(), 1.0}
	return P(dotProd(m.row(0), v), dotProd(m.row(1), v))
}
