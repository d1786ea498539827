package core

import (
	"fmt"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/csdc6/adcs-sim/model"
)

const kmToM = 1000.0

// InitialStateFromTLE propagates a two-line element set to the reference
// time with SGP4 and returns the satellite position (ECEF metres) and
// velocity (ECEF metres per second). Documents may carry a TLE instead of
// explicit state vectors.
func InitialStateFromTLE(line1, line2 string, at time.Time) (model.Vec3, model.Vec3, error) {
	if err := checkTLELine(1, line1); err != nil {
		return model.Vec3{}, model.Vec3{}, err
	}
	if err := checkTLELine(2, line2); err != nil {
		return model.Vec3{}, model.Vec3{}, err
	}

	sat := satellite.TLEToSat(line1, line2, satellite.GravityWGS72)

	year, month, day := at.Date()
	hour, min, sec := at.Clock()

	posECI, velECI := satellite.Propagate(sat, year, int(month), day, hour, min, sec)
	jd := satellite.JDay(year, int(month), day, hour, min, sec)
	gmst := satellite.ThetaG_JD(jd)

	posECEF := satellite.ECIToECEF(posECI, gmst)
	velECEF := satellite.ECIToECEF(velECI, gmst)

	pos := model.Vec3{X: posECEF.X * kmToM, Y: posECEF.Y * kmToM, Z: posECEF.Z * kmToM}
	vel := model.Vec3{X: velECEF.X * kmToM, Y: velECEF.Y * kmToM, Z: velECEF.Z * kmToM}

	if pos.Norm() == 0 {
		return model.Vec3{}, model.Vec3{}, fmt.Errorf("%w: tle propagation produced a zero state", ErrParse)
	}
	return pos, vel, nil
}

// checkTLELine rejects obviously malformed TLE lines before they reach the
// SGP4 parser, which is not defensive about input length.
func checkTLELine(n int, line string) error {
	if len(line) != 69 {
		return fmt.Errorf("%w: tle line%d has length %d, want 69", ErrParse, n, len(line))
	}
	if line[0] != byte('0'+n) || line[1] != ' ' {
		return fmt.Errorf("%w: tle line%d does not start with %q", ErrParse, n, fmt.Sprintf("%d ", n))
	}
	return nil
}
