package server

import "alpaca-gateway/device"

// commonRoutes are served for every device type.
func commonRoutes() []route {
	return []route{
		putValue("action", func(d device.Device, a args) (string, error) {
			return d.Action(a.text("Action"), a.text("Parameters"))
		}, stringParam("Action"), stringParam("Parameters")),
		putArgs("commandblind", func(d device.Device, a args) error {
			return d.CommandBlind(a.text("Command"), a.boolean("Raw"))
		}, stringParam("Command"), boolParam("Raw")),
		putValue("commandbool", func(d device.Device, a args) (bool, error) {
			return d.CommandBool(a.text("Command"), a.boolean("Raw"))
		}, stringParam("Command"), boolParam("Raw")),
		putValue("commandstring", func(d device.Device, a args) (string, error) {
			return d.CommandString(a.text("Command"), a.boolean("Raw"))
		}, stringParam("Command"), boolParam("Raw")),

		get("connected", device.Device.Connected),
		putArgs("connected", func(d device.Device, a args) error {
			return d.SetConnected(a.boolean("Connected"))
		}, boolParam("Connected")),
		get("connecting", device.Device.Connecting),
		put("connect", device.Device.Connect),
		put("disconnect", device.Device.Disconnect),

		get("description", device.Device.Description),
		get("driverinfo", device.Device.DriverInfo),
		get("driverversion", device.Device.DriverVersion),
		get("interfaceversion", device.Device.InterfaceVersion),
		get("name", device.Device.Name),
		get("supportedactions", device.Device.SupportedActions),
		get("devicestate", device.Device.DeviceState),
	}
}
