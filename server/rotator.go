package server

import "alpaca-gateway/device"

func rotatorRoutes() []route {
	return []route{
		get("canreverse", device.RotatorDevice.CanReverse),
		get("ismoving", device.RotatorDevice.IsMoving),
		get("mechanicalposition", device.RotatorDevice.MechanicalPosition),
		get("position", device.RotatorDevice.Position),
		get("reverse", device.RotatorDevice.Reverse),
		putArgs("reverse", func(d device.RotatorDevice, a args) error {
			return d.SetReverse(a.boolean("Reverse"))
		}, boolParam("Reverse")),
		get("stepsize", device.RotatorDevice.StepSize),
		get("targetposition", device.RotatorDevice.TargetPosition),
		put("halt", device.RotatorDevice.Halt),
		putArgs("move", func(d device.RotatorDevice, a args) error {
			return d.Move(a.number("Position"))
		}, floatParam("Position")),
		putArgs("moveabsolute", func(d device.RotatorDevice, a args) error {
			return d.MoveAbsolute(a.number("Position"))
		}, floatParam("Position")),
		putArgs("movemechanical", func(d device.RotatorDevice, a args) error {
			return d.MoveMechanical(a.number("Position"))
		}, floatParam("Position")),
		putArgs("sync", func(d device.RotatorDevice, a args) error {
			return d.Sync(a.number("Position"))
		}, floatParam("Position")),
	}
}
