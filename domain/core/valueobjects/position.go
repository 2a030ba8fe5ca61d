package valueobjects

import "math/rand"

// Position is a value object for a location in the universe scene
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// NewPosition creates a position from coordinates
func NewPosition(x, y, z float64) Position {
	return Position{X: x, Y: y, Z: z}
}

// Equals checks if two positions are equal
func (p Position) Equals(other Position) bool {
	return p.X == other.X && p.Y == other.Y && p.Z == other.Z
}

// RandomFusionPosition picks a position inside the fusion placement volume:
// x and z uniform in [-xz, xz], y uniform in [yMin, yMax].
func RandomFusionPosition(xz, yMin, yMax float64) Position {
	return Position{
		X: rand.Float64()*2*xz - xz,
		Y: yMin + rand.Float64()*(yMax-yMin),
		Z: rand.Float64()*2*xz - xz,
	}
}
