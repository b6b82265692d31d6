package sequence

// Position labels one point of the finite grid-position space. Alpha
// positions hold the hands apart, beta positions stack them together, and
// gamma positions add a quarter-time offset between the two channels. The
// numeric suffix walks clockwise starting at north: alpha/beta span eight
// points, gamma sixteen.
type Position string

const (
	PosAlpha1 Position = "alpha1"
	PosAlpha2 Position = "alpha2"
	PosAlpha3 Position = "alpha3"
	PosAlpha4 Position = "alpha4"
	PosAlpha5 Position = "alpha5"
	PosAlpha6 Position = "alpha6"
	PosAlpha7 Position = "alpha7"
	PosAlpha8 Position = "alpha8"

	PosBeta1 Position = "beta1"
	PosBeta2 Position = "beta2"
	PosBeta3 Position = "beta3"
	PosBeta4 Position = "beta4"
	PosBeta5 Position = "beta5"
	PosBeta6 Position = "beta6"
	PosBeta7 Position = "beta7"
	PosBeta8 Position = "beta8"

	PosGamma1  Position = "gamma1"
	PosGamma2  Position = "gamma2"
	PosGamma3  Position = "gamma3"
	PosGamma4  Position = "gamma4"
	PosGamma5  Position = "gamma5"
	PosGamma6  Position = "gamma6"
	PosGamma7  Position = "gamma7"
	PosGamma8  Position = "gamma8"
	PosGamma9  Position = "gamma9"
	PosGamma10 Position = "gamma10"
	PosGamma11 Position = "gamma11"
	PosGamma12 Position = "gamma12"
	PosGamma13 Position = "gamma13"
	PosGamma14 Position = "gamma14"
	PosGamma15 Position = "gamma15"
	PosGamma16 Position = "gamma16"
)

// rotated180 maps every position to the one 180 degrees around the grid.
// The table is its own inverse: alpha/beta advance four of eight points,
// gamma advances eight of sixteen.
var rotated180 = map[Position]Position{
	PosAlpha1: PosAlpha5, PosAlpha2: PosAlpha6, PosAlpha3: PosAlpha7, PosAlpha4: PosAlpha8,
	PosAlpha5: PosAlpha1, PosAlpha6: PosAlpha2, PosAlpha7: PosAlpha3, PosAlpha8: PosAlpha4,

	PosBeta1: PosBeta5, PosBeta2: PosBeta6, PosBeta3: PosBeta7, PosBeta4: PosBeta8,
	PosBeta5: PosBeta1, PosBeta6: PosBeta2, PosBeta7: PosBeta3, PosBeta8: PosBeta4,

	PosGamma1: PosGamma9, PosGamma2: PosGamma10, PosGamma3: PosGamma11, PosGamma4: PosGamma12,
	PosGamma5: PosGamma13, PosGamma6: PosGamma14, PosGamma7: PosGamma15, PosGamma8: PosGamma16,
	PosGamma9: PosGamma1, PosGamma10: PosGamma2, PosGamma11: PosGamma3, PosGamma12: PosGamma4,
	PosGamma13: PosGamma5, PosGamma14: PosGamma6, PosGamma15: PosGamma7, PosGamma16: PosGamma8,
}

// mirroredHorizontal reflects every position across the vertical axis.
// Points on the axis (north, south) map to themselves; the rest pair up
// left/right, so this table is also its own inverse.
var mirroredHorizontal = map[Position]Position{
	PosAlpha1: PosAlpha1, PosAlpha2: PosAlpha8, PosAlpha3: PosAlpha7, PosAlpha4: PosAlpha6,
	PosAlpha5: PosAlpha5, PosAlpha6: PosAlpha4, PosAlpha7: PosAlpha3, PosAlpha8: PosAlpha2,

	PosBeta1: PosBeta1, PosBeta2: PosBeta8, PosBeta3: PosBeta7, PosBeta4: PosBeta6,
	PosBeta5: PosBeta5, PosBeta6: PosBeta4, PosBeta7: PosBeta3, PosBeta8: PosBeta2,

	PosGamma1: PosGamma1, PosGamma2: PosGamma16, PosGamma3: PosGamma15, PosGamma4: PosGamma14,
	PosGamma5: PosGamma13, PosGamma6: PosGamma12, PosGamma7: PosGamma11, PosGamma8: PosGamma10,
	PosGamma9: PosGamma9, PosGamma10: PosGamma8, PosGamma11: PosGamma7, PosGamma12: PosGamma6,
	PosGamma13: PosGamma5, PosGamma14: PosGamma4, PosGamma15: PosGamma3, PosGamma16: PosGamma2,
}

// RotatePosition returns the position 180 degrees around the grid. Labels
// outside the known space pass through unchanged so that transforms never
// fail halfway over foreign data.
func RotatePosition(p Position) Position {
	if r, ok := rotated180[p]; ok {
		return r
	}
	return p
}

// MirrorPosition returns the position reflected across the vertical axis.
// Unknown labels pass through unchanged.
func MirrorPosition(p Position) Position {
	if m, ok := mirroredHorizontal[p]; ok {
		return m
	}
	return p
}

// KnownPosition reports whether p belongs to the grid-position space.
func KnownPosition(p Position) bool {
	_, ok := rotated180[p]
	return ok
}

// AllPositions returns the full position space in a stable order.
func AllPositions() []Position {
	out := make([]Position, 0, len(positionOrder))
	out = append(out, positionOrder...)
	return out
}

var positionOrder = []Position{
	PosAlpha1, PosAlpha2, PosAlpha3, PosAlpha4, PosAlpha5, PosAlpha6, PosAlpha7, PosAlpha8,
	PosBeta1, PosBeta2, PosBeta3, PosBeta4, PosBeta5, PosBeta6, PosBeta7, PosBeta8,
	PosGamma1, PosGamma2, PosGamma3, PosGamma4, PosGamma5, PosGamma6, PosGamma7, PosGamma8,
	PosGamma9, PosGamma10, PosGamma11, PosGamma12, PosGamma13, PosGamma14, PosGamma15, PosGamma16,
}
