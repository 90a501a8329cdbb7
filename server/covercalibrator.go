package server

import "alpaca-gateway/device"

func coverCalibratorRoutes() []route {
	return []route{
		get("brightness", device.CoverCalibratorDevice.Brightness),
		get("calibratorstate", enum(device.CoverCalibratorDevice.CalibratorState)),
		get("coverstate", enum(device.CoverCalibratorDevice.CoverState)),
		get("maxbrightness", device.CoverCalibratorDevice.MaxBrightness),
		get("calibratorchanging", device.CoverCalibratorDevice.CalibratorChanging),
		get("covermoving", device.CoverCalibratorDevice.CoverMoving),
		put("calibratoroff", device.CoverCalibratorDevice.CalibratorOff),
		putArgs("calibratoron", func(d device.CoverCalibratorDevice, a args) error {
			return d.CalibratorOn(a.integer("Brightness"))
		}, int32Param("Brightness")),
		put("closecover", device.CoverCalibratorDevice.CloseCover),
		put("haltcover", device.CoverCalibratorDevice.HaltCover),
		put("opencover", device.CoverCalibratorDevice.OpenCover),
	}
}
