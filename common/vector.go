package common

import "github.com/jakecoffman/cp"

// Vector2 is a 2D value used for positions, velocities and centers.
// It shares chipmunk's vector so Add/Sub/Mult come for free.
type Vector2 = cp.Vector

// V builds a Vector2.
func V(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}
