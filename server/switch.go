package server

import "alpaca-gateway/device"

func switchRoutes() []route {
	id := int32Param("Id")
	return []route{
		get("maxswitch", device.SwitchDevice.MaxSwitch),
		getArgs("canwrite", func(d device.SwitchDevice, a args) (bool, error) {
			return d.CanWrite(a.id())
		}, id),
		getArgs("getswitch", func(d device.SwitchDevice, a args) (bool, error) {
			return d.GetSwitch(a.id())
		}, id),
		getArgs("getswitchdescription", func(d device.SwitchDevice, a args) (string, error) {
			return d.GetSwitchDescription(a.id())
		}, id),
		getArgs("getswitchname", func(d device.SwitchDevice, a args) (string, error) {
			return d.GetSwitchName(a.id())
		}, id),
		getArgs("getswitchvalue", func(d device.SwitchDevice, a args) (float64, error) {
			return d.GetSwitchValue(a.id())
		}, id),
		getArgs("minswitchvalue", func(d device.SwitchDevice, a args) (float64, error) {
			return d.MinSwitchValue(a.id())
		}, id),
		getArgs("maxswitchvalue", func(d device.SwitchDevice, a args) (float64, error) {
			return d.MaxSwitchValue(a.id())
		}, id),
		getArgs("switchstep", func(d device.SwitchDevice, a args) (float64, error) {
			return d.SwitchStep(a.id())
		}, id),
		putArgs("setswitch", func(d device.SwitchDevice, a args) error {
			return d.SetSwitch(a.id(), a.boolean("State"))
		}, id, boolParam("State")),
		putArgs("setswitchname", func(d device.SwitchDevice, a args) error {
			return d.SetSwitchName(a.id(), a.text("Name"))
		}, id, stringParam("Name")),
		putArgs("setswitchvalue", func(d device.SwitchDevice, a args) error {
			return d.SetSwitchValue(a.id(), a.number("Value"))
		}, id, floatParam("Value")),

		getArgs("canasync", func(d device.SwitchDevice, a args) (bool, error) {
			return d.CanAsync(a.id())
		}, id),
		putArgs("setasync", func(d device.SwitchDevice, a args) error {
			return d.SetAsync(a.id(), a.boolean("State"))
		}, id, boolParam("State")),
		putArgs("setasyncvalue", func(d device.SwitchDevice, a args) error {
			return d.SetAsyncValue(a.id(), a.number("Value"))
		}, id, floatParam("Value")),
		getArgs("statechangecomplete", func(d device.SwitchDevice, a args) (bool, error) {
			return d.StateChangeComplete(a.id())
		}, id),
		putArgs("cancelasync", func(d device.SwitchDevice, a args) error {
			return d.CancelAsync(a.id())
		}, id),
	}
}
