package server

import (
	"slices"
	"time"

	"alpaca-gateway/device"

	"github.com/julienschmidt/httprouter"
)

// alpacaTime is the ISO 8601 form Alpaca uses for dates.
const alpacaTime = "2006-01-02T15:04:05.0000000Z"

func (s *Server) configureDeviceAPI(r *httprouter.Router) {
	common := commonRoutes()
	for _, t := range device.Types() {
		for _, rt := range slices.Concat(common, deviceRoutes(t)) {
			for _, p := range rt.params {
				s.validator.Declare(p.name)
			}
			r.Handle(rt.method, "/api/v1/"+t.PathSegment()+"/:devicenumber/"+rt.member, s.dispatch(t, rt))
		}
	}
}

func deviceRoutes(t device.Type) []route {
	switch t {
	case device.Camera:
		return cameraRoutes()
	case device.CoverCalibrator:
		return coverCalibratorRoutes()
	case device.Dome:
		return domeRoutes()
	case device.FilterWheel:
		return filterWheelRoutes()
	case device.Focuser:
		return focuserRoutes()
	case device.ObservingConditions:
		return observingConditionsRoutes()
	case device.Rotator:
		return rotatorRoutes()
	case device.SafetyMonitor:
		return safetyMonitorRoutes()
	case device.Switch:
		return switchRoutes()
	case device.Telescope:
		return telescopeRoutes()
	}
	return nil
}

// formatTime renders a member's time.Time result as an Alpaca date string.
func formatTime[D device.Device](layout string, fn func(D) (time.Time, error)) func(D) (string, error) {
	return func(d D) (string, error) {
		t, err := fn(d)
		if err != nil {
			return "", err
		}
		return t.UTC().Format(layout), nil
	}
}
