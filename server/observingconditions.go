package server

import "alpaca-gateway/device"

func observingConditionsRoutes() []route {
	sensor := stringParam("SensorName")
	return []route{
		get("averageperiod", device.ObservingConditionsDevice.AveragePeriod),
		putArgs("averageperiod", func(d device.ObservingConditionsDevice, a args) error {
			return d.SetAveragePeriod(a.number("AveragePeriod"))
		}, floatParam("AveragePeriod")),
		get("cloudcover", device.ObservingConditionsDevice.CloudCover),
		get("dewpoint", device.ObservingConditionsDevice.DewPoint),
		get("humidity", device.ObservingConditionsDevice.Humidity),
		get("pressure", device.ObservingConditionsDevice.Pressure),
		get("rainrate", device.ObservingConditionsDevice.RainRate),
		get("skybrightness", device.ObservingConditionsDevice.SkyBrightness),
		get("skyquality", device.ObservingConditionsDevice.SkyQuality),
		get("skytemperature", device.ObservingConditionsDevice.SkyTemperature),
		get("starfwhm", device.ObservingConditionsDevice.StarFWHM),
		get("temperature", device.ObservingConditionsDevice.Temperature),
		get("winddirection", device.ObservingConditionsDevice.WindDirection),
		get("windgust", device.ObservingConditionsDevice.WindGust),
		get("windspeed", device.ObservingConditionsDevice.WindSpeed),

		put("refresh", device.ObservingConditionsDevice.Refresh),
		getArgs("sensordescription", func(d device.ObservingConditionsDevice, a args) (string, error) {
			return d.SensorDescription(a.text("SensorName"))
		}, sensor),
		getArgs("timesincelastupdate", func(d device.ObservingConditionsDevice, a args) (float64, error) {
			return d.TimeSinceLastUpdate(a.text("SensorName"))
		}, sensor),
	}
}
