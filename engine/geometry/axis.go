package geometry

// Axis names one of the three spatial dimensions. Declared as the closed set
// {X, Y, Z} the BVH builder picks from when choosing a split axis and the AABB
// indexes by when reporting a per-axis interval.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ

	// AxisCount is the number of Axis values.
	AxisCount
)

// String renders the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}
