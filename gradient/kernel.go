package gradient

import "math"

// studentQ evaluates the (unnormalized) Student-t kernel
// q = (dof/(dof+sqDist))^((dof+1)/2), collapsing to the classical
// 1/(1+sqDist) form when dof == 1 (spec.md §4.3). Both Positive and every
// negative Engine build their kernel value from this single definition so a
// change to one never silently drifts from the other.
func studentQ(sqDist, dof float64) float64 {
	base := dof / (dof + sqDist)
	if dof == 1 {
		return base
	}
	return math.Pow(base, (dof+1)/2)
}
