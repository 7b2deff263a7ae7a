package bsp

// SIDE_EPSILON: points within this distance of a splitter are "on" it.
// Units are fixed. SideEpsilon² is precomputed since classification always
// compares squared distances (§4.1).
const SideEpsilon = 6.5536

var sideEpsilonSquared = SideEpsilon * SideEpsilon

// VertexEpsilon: vertices within this distance of each other are merged
// during a split (§3). Units are fixed (≈ 1/10000 world unit).
const VertexEpsilon Fixed = 6

// fastPathThreshold is the |s| value (4<<32) at and above which the sign of
// s alone determines the side without the more expensive distance check
// (§4.1). The boundary itself takes the fast path, hence ">=" below.
const fastPathThreshold = 17179869184.0

// Line is the infinite line underlying a partition: a point (X, Y) on the
// line plus a direction (Dx, Dy). It is also used as the splitter's wire
// shape in the output Node record.
type Line struct {
	X, Y, Dx, Dy Fixed
}

// Side is the result of classifying a point or seg against a splitter.
type Side int8

const (
	SideFront Side = -1
	SideOn    Side = 0
	SideBack  Side = 1
)

// sideOf classifies point (x, y) against line, per spec.md §4.1. The
// double-precision branch is required for numerical robustness at large
// world coordinates: |s| is the point's distance from the line times the
// splitter's length, so a small |s| can mean either a point near the line
// or a short splitter. Below fastPathThreshold the squared distance
// s²/(dx²+dy²) is therefore compared against SIDE_EPSILON² first.
func sideOf(line Line, x, y Fixed) Side {
	return sideOfEps(line, x, y, sideEpsilonSquared)
}

// sideOfEps is sideOf parameterized on the epsilon² threshold, used once by
// the splitter's numeric-abort recovery path to retry a classification with
// a widened SIDE_EPSILON (§7 NumericAbort).
func sideOfEps(line Line, x, y Fixed, epsSquared float64) Side {
	s := float64(line.Y-y)*float64(line.Dx) - float64(line.X-x)*float64(line.Dy)
	if absF(s) >= fastPathThreshold {
		if s > 0 {
			return SideFront
		}
		return SideBack
	}
	l := float64(line.Dx)*float64(line.Dx) + float64(line.Dy)*float64(line.Dy)
	if l == 0 {
		// A zero-length splitter direction is rejected by the chooser
		// before it ever reaches here (§8 boundary behavior); treat it as
		// "on" defensively rather than dividing by zero.
		return SideOn
	}
	dist := s * s / l
	if dist < epsSquared {
		return SideOn
	}
	if s > 0 {
		return SideFront
	}
	return SideBack
}

func absF(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// LineStatus is the result of classifying a whole seg against a splitter.
type LineStatus int8

const (
	LineFront LineStatus = iota
	LineBack
	LineCrosses
)

// classifyLine classifies the seg (v1 -> v2) against line, returning the
// seg's overall status and each endpoint's individual side (§4.1).
//
// A seg whose endpoints are both "on" the splitter is itself colinear with
// it; such a seg is resolved to front/back by direction rather than status
// LineCrosses — co-directional (same sign dot product of direction
// vectors) goes front, anti-directional goes back.
func classifyLine(line Line, v1x, v1y, v2x, v2y Fixed) (status LineStatus, sidev [2]Side) {
	return classifyLineEps(line, v1x, v1y, v2x, v2y, sideEpsilonSquared)
}

// classifyLineEps is classifyLine parameterized on the epsilon² threshold;
// see sideOfEps.
func classifyLineEps(line Line, v1x, v1y, v2x, v2y Fixed, epsSquared float64) (status LineStatus, sidev [2]Side) {
	sidev[0] = sideOfEps(line, v1x, v1y, epsSquared)
	sidev[1] = sideOfEps(line, v2x, v2y, epsSquared)

	if sidev[0] == SideOn && sidev[1] == SideOn {
		segDx := float64(v2x - v1x)
		segDy := float64(v2y - v1y)
		dot := segDx*float64(line.Dx) + segDy*float64(line.Dy)
		if dot >= 0 {
			return LineFront, sidev
		}
		return LineBack, sidev
	}
	if sidev[0] != SideBack && sidev[1] != SideBack {
		return LineFront, sidev
	}
	if sidev[0] != SideFront && sidev[1] != SideFront {
		return LineBack, sidev
	}
	return LineCrosses, sidev
}

// interceptParam solves for the parameter t along seg (ax,ay)->(bx,by)
// where it crosses line, i.e. the point ax+t*(bx-ax), ay+t*(by-ay).
// den near zero means the seg runs (nearly) parallel to line — the caller
// is expected to have already classified the seg as LineCrosses, so this
// should not happen on well-formed input; it surfaces as ErrNumericAbort
// when it does (§7).
func interceptParam(line Line, ax, ay, bx, by Fixed) (t float64, den float64) {
	num := float64(line.Y-ay)*float64(line.Dx) - float64(line.X-ax)*float64(line.Dy)
	den = float64(by-ay)*float64(line.Dx) - float64(bx-ax)*float64(line.Dy)
	if den == 0 {
		return 0, 0
	}
	return num / den, den
}

// interceptDistanceSquared returns the signed square of the projection of
// (x, y) - (line.X, line.Y) onto line's unnormalised direction vector: the
// squared distance along the line scaled by dx²+dy², which is constant for
// one splitter. This is the event tree's key domain (§3, §4.3). It is
// monotonic in the signed
// projection, so sorting by this value reproduces geometric order along
// the splitter ray without needing a square root.
func interceptDistanceSquared(line Line, x, y Fixed) float64 {
	dx := float64(x - line.X)
	dy := float64(y - line.Y)
	d := dx*float64(line.Dx) + dy*float64(line.Dy)
	if d < 0 {
		return -(d * d)
	}
	return d * d
}
