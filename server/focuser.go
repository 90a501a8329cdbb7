package server

import "alpaca-gateway/device"

func focuserRoutes() []route {
	return []route{
		get("absolute", device.FocuserDevice.Absolute),
		get("ismoving", device.FocuserDevice.IsMoving),
		get("maxincrement", device.FocuserDevice.MaxIncrement),
		get("maxstep", device.FocuserDevice.MaxStep),
		get("position", device.FocuserDevice.Position),
		get("stepsize", device.FocuserDevice.StepSize),
		get("tempcomp", device.FocuserDevice.TempComp),
		putArgs("tempcomp", func(d device.FocuserDevice, a args) error {
			return d.SetTempComp(a.boolean("TempComp"))
		}, boolParam("TempComp")),
		get("tempcompavailable", device.FocuserDevice.TempCompAvailable),
		get("temperature", device.FocuserDevice.Temperature),
		put("halt", device.FocuserDevice.Halt),
		putArgs("move", func(d device.FocuserDevice, a args) error {
			return d.Move(a.integer("Position"))
		}, int32Param("Position")),
	}
}
