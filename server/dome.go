package server

import "alpaca-gateway/device"

func domeRoutes() []route {
	return []route{
		get("altitude", device.DomeDevice.Altitude),
		get("athome", device.DomeDevice.AtHome),
		get("atpark", device.DomeDevice.AtPark),
		get("azimuth", device.DomeDevice.Azimuth),
		get("canfindhome", device.DomeDevice.CanFindHome),
		get("canpark", device.DomeDevice.CanPark),
		get("cansetaltitude", device.DomeDevice.CanSetAltitude),
		get("cansetazimuth", device.DomeDevice.CanSetAzimuth),
		get("cansetpark", device.DomeDevice.CanSetPark),
		get("cansetshutter", device.DomeDevice.CanSetShutter),
		get("canslave", device.DomeDevice.CanSlave),
		get("cansyncazimuth", device.DomeDevice.CanSyncAzimuth),
		get("shutterstatus", enum(device.DomeDevice.ShutterStatus)),
		get("slaved", device.DomeDevice.Slaved),
		putArgs("slaved", func(d device.DomeDevice, a args) error {
			return d.SetSlaved(a.boolean("Slaved"))
		}, boolParam("Slaved")),
		get("slewing", device.DomeDevice.Slewing),

		put("abortslew", device.DomeDevice.AbortSlew),
		put("closeshutter", device.DomeDevice.CloseShutter),
		put("findhome", device.DomeDevice.FindHome),
		put("openshutter", device.DomeDevice.OpenShutter),
		put("park", device.DomeDevice.Park),
		put("setpark", device.DomeDevice.SetPark),
		putArgs("slewtoaltitude", func(d device.DomeDevice, a args) error {
			return d.SlewToAltitude(a.number("Altitude"))
		}, floatParam("Altitude")),
		putArgs("slewtoazimuth", func(d device.DomeDevice, a args) error {
			return d.SlewToAzimuth(a.number("Azimuth"))
		}, floatParam("Azimuth")),
		putArgs("synctoazimuth", func(d device.DomeDevice, a args) error {
			return d.SyncToAzimuth(a.number("Azimuth"))
		}, floatParam("Azimuth")),
	}
}
