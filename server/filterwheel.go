package server

import "alpaca-gateway/device"

func filterWheelRoutes() []route {
	return []route{
		get("focusoffsets", device.FilterWheelDevice.FocusOffsets),
		get("names", device.FilterWheelDevice.Names),
		get("position", device.FilterWheelDevice.Position),
		putArgs("position", func(d device.FilterWheelDevice, a args) error {
			return d.SetPosition(a.integer("Position"))
		}, int32Param("Position")),
	}
}
