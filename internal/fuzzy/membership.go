package fuzzy

import (
	"fmt"
)

const (
	// UpperLimit is the ceiling of every degree of membership
	// and of the normalized value axis [0..UpperLimit]
	UpperLimit = 255
)

// MembershipFunction is a trapezoid (or triangle) stored as its support
// interval and two slopes, plus the degree computed in the current cycle.
type MembershipFunction struct {
	Name   string `json:"name"`
	Point1 int    `json:"point1"`
	Point2 int    `json:"point2"`
	Slope1 int    `json:"slope1"`
	Slope2 int    `json:"slope2"`
	Degree int    `json:"degree"`
}

// NewMembershipFunction derives a MembershipFunction from the four control points
// (left foot, left shoulder, right shoulder, right foot).
func NewMembershipFunction(name string, points [4]int) (MembershipFunction, error) {
	if len(name) <= 0 {
		return MembershipFunction{}, newConfigurationError("membership function", "name must not be empty")
	}
	item := fmt.Sprintf("membership function %s", name)

	for i, p := range points {
		if p < 0 || p > UpperLimit {
			return MembershipFunction{}, newConfigurationError(item, fmt.Sprintf("point %d (%d) is outside of [0..%d]", i+1, p, UpperLimit))
		}
		if i > 0 && p < points[i-1] {
			return MembershipFunction{}, newConfigurationError(item, fmt.Sprintf("points must be non-decreasing, got %v", points))
		}
	}

	leftRun := points[1] - points[0]
	rightRun := points[3] - points[2]
	if leftRun <= 0 {
		return MembershipFunction{}, newConfigurationError(item, "left slope denominator must be positive")
	}
	if rightRun <= 0 {
		return MembershipFunction{}, newConfigurationError(item, "right slope denominator must be positive")
	}

	mf := MembershipFunction{
		Name:   name,
		Point1: points[0],
		Point2: points[3],
		Slope1: UpperLimit / leftRun,
		Slope2: UpperLimit / rightRun,
	}
	if mf.Slope1 <= 0 || mf.Slope2 <= 0 {
		return MembershipFunction{}, newConfigurationError(item, fmt.Sprintf("slope run must not exceed %d", UpperLimit))
	}

	return mf, nil
}

// DegreeAt computes the degree of membership of the given value
// without modifying the membership function.
func (mf MembershipFunction) DegreeAt(value int) int {
	delta1 := value - mf.Point1
	delta2 := mf.Point2 - value
	if delta1 <= 0 || delta2 <= 0 {
		return 0
	}
	return clamp(min(mf.Slope1*delta1, mf.Slope2*delta2), 0, UpperLimit)
}

// Fuzzify stores the degree of membership of the given value.
func (mf *MembershipFunction) Fuzzify(value int) {
	mf.Degree = mf.DegreeAt(value)
}

// Centroid returns the midpoint of the support interval.
// This is an approximation of the real trapezoid centroid.
func (mf MembershipFunction) Centroid() int {
	return mf.Point1 + (mf.Point2-mf.Point1)/2
}

// Area returns the area of the trapezoid clipped at the current degree.
// All divisions truncate toward zero.
func (mf MembershipFunction) Area() int {
	base := mf.Point2 - mf.Point1
	run1 := mf.Degree / mf.Slope1
	run2 := mf.Degree / mf.Slope2
	top := base - run1 - run2
	return mf.Degree * (base + top) / 2
}

func clamp(value, lower, upper int) int {
	return max(lower, min(value, upper))
}
