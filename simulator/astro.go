package simulator

import (
	"math"
	"time"
)

const (
	deg = math.Pi / 180
	// siderealRate is the apparent sky rotation in degrees per second.
	siderealRate = 360.0 / 86164.0905
)

var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// localSiderealTime returns the local apparent sidereal time in hours for a
// longitude in degrees east.
func localSiderealTime(t time.Time, longitude float64) float64 {
	days := t.Sub(j2000).Hours() / 24
	gmst := 18.697374558 + 24.06570982441908*days
	return wrapHours(gmst + longitude/15)
}

func wrapHours(h float64) float64 {
	h = math.Mod(h, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// hourAngleHours wraps an hour angle into [-12, 12).
func hourAngleHours(lst, ra float64) float64 {
	return wrapHours(lst-ra+12) - 12
}

// altAz converts an hour angle (hours) and declination to altitude and
// azimuth (degrees, azimuth from north through east) at latitude lat.
func altAz(ha, dec, lat float64) (alt, az float64) {
	h, d, l := ha*15*deg, dec*deg, lat*deg
	sinAlt := math.Sin(d)*math.Sin(l) + math.Cos(d)*math.Cos(l)*math.Cos(h)
	alt = math.Asin(clamp(sinAlt, -1, 1)) / deg
	az = math.Atan2(-math.Cos(d)*math.Sin(h), math.Sin(d)*math.Cos(l)-math.Cos(d)*math.Sin(l)*math.Cos(h)) / deg
	if az < 0 {
		az += 360
	}
	return alt, az
}

// hourAngleDec is the inverse of altAz.
func hourAngleDec(alt, az, lat float64) (ha, dec float64) {
	a, z, l := alt*deg, az*deg, lat*deg
	sinDec := math.Sin(a)*math.Sin(l) + math.Cos(a)*math.Cos(l)*math.Cos(z)
	dec = math.Asin(clamp(sinDec, -1, 1)) / deg
	ha = math.Atan2(-math.Cos(a)*math.Sin(z), math.Sin(a)*math.Cos(l)-math.Cos(a)*math.Sin(l)*math.Cos(z)) / deg / 15
	return ha, dec
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
