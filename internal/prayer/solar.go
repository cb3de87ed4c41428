package prayer

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
)

// sunPosition holds the two solar quantities prayer times depend on.
type sunPosition struct {
	declination float64 // degrees
	equation    float64 // equation of time, hours
}

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// sunAt evaluates the low-precision solar series at Julian day jd. Accuracy
// is about a minute of time over several centuries around J2000.
func sunAt(jd float64) sunPosition {
	T := base.J2000Century(jd)

	L0 := fixAngle(base.Horner(T, 280.46646, 36000.76983, 0.0003032))
	M := fixAngle(base.Horner(T, 357.52911, 35999.05029, -0.0001537))
	e := base.Horner(T, 0.016708634, -0.000042037, -0.0000001267)

	Mr := degToRad(M)
	C := math.Sin(Mr)*base.Horner(T, 1.914602, -0.004817, -0.000014) +
		math.Sin(2*Mr)*(0.019993-T*0.000101) +
		math.Sin(3*Mr)*0.000289

	Ω := degToRad(125.04 - 1934.136*T)
	λ := L0 + C - 0.00569 - 0.00478*math.Sin(Ω)

	ε0 := 23 + (26+base.Horner(T, 21.448, -46.815, -0.00059, 0.001813)/60)/60
	ε := ε0 + 0.00256*math.Cos(Ω)

	δ := math.Asin(math.Sin(degToRad(ε)) * math.Sin(degToRad(λ)))

	y := math.Tan(degToRad(ε) / 2)
	y *= y
	L0r := degToRad(L0)
	eqt := y*math.Sin(2*L0r) -
		2*e*math.Sin(Mr) +
		4*e*y*math.Sin(Mr)*math.Cos(2*L0r) -
		0.5*y*y*math.Sin(4*L0r) -
		1.25*e*e*math.Sin(2*Mr)

	return sunPosition{
		declination: radToDeg(δ),
		equation:    radToDeg(eqt) * 4 / 60,
	}
}

// hourAngle is the result of solving for the sun reaching an altitude. When
// the altitude is never reached that day, solvable is false and deg holds the
// hour angle of the closest approach (0 or 180).
type hourAngle struct {
	deg      float64
	solvable bool
}

func solveHourAngle(altitude, lat, decl float64) hourAngle {
	φ, δ := degToRad(lat), degToRad(decl)
	cosH := (math.Sin(degToRad(altitude)) - math.Sin(φ)*math.Sin(δ)) / (math.Cos(φ) * math.Cos(δ))
	switch {
	case math.IsNaN(cosH):
		return hourAngle{deg: 0, solvable: false}
	case cosH > 1:
		return hourAngle{deg: 0, solvable: false}
	case cosH < -1:
		return hourAngle{deg: 180, solvable: false}
	}
	return hourAngle{deg: radToDeg(math.Acos(cosH)), solvable: true}
}

// asrAltitude is the sun's altitude when an object's shadow equals factor
// times its length plus its noon shadow.
func asrAltitude(factor AsrFactor, lat, decl float64) float64 {
	return radToDeg(math.Atan(1 / (float64(factor) + math.Tan(degToRad(math.Abs(lat-decl))))))
}
