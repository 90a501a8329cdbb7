package server

import "alpaca-gateway/device"

// imageElementInt32 is the Alpaca ImageArrayElementTypes value for Int32.
const imageElementInt32 = 2

// fitsTime is the FITS DATE-OBS form used by LastExposureStartTime.
const fitsTime = "2006-01-02T15:04:05.000"

func cameraRoutes() []route {
	type C = device.CameraDevice

	return []route{
		get("bayeroffsetx", C.BayerOffsetX),
		get("bayeroffsety", C.BayerOffsetY),
		get("binx", C.BinX),
		putArgs("binx", func(d C, a args) error { return d.SetBinX(a.integer("BinX")) }, int32Param("BinX")),
		get("biny", C.BinY),
		putArgs("biny", func(d C, a args) error { return d.SetBinY(a.integer("BinY")) }, int32Param("BinY")),
		get("camerastate", enum(C.CameraState)),
		get("cameraxsize", C.CameraXSize),
		get("cameraysize", C.CameraYSize),
		get("canabortexposure", C.CanAbortExposure),
		get("canasymmetricbin", C.CanAsymmetricBin),
		get("canfastreadout", C.CanFastReadout),
		get("cangetcoolerpower", C.CanGetCoolerPower),
		get("canpulseguide", C.CanPulseGuide),
		get("cansetccdtemperature", C.CanSetCCDTemperature),
		get("canstopexposure", C.CanStopExposure),
		get("ccdtemperature", C.CCDTemperature),
		get("cooleron", C.CoolerOn),
		putArgs("cooleron", func(d C, a args) error { return d.SetCoolerOn(a.boolean("CoolerOn")) }, boolParam("CoolerOn")),
		get("coolerpower", C.CoolerPower),
		get("electronsperadu", C.ElectronsPerADU),
		get("exposuremax", C.ExposureMax),
		get("exposuremin", C.ExposureMin),
		get("exposureresolution", C.ExposureResolution),
		get("fastreadout", C.FastReadout),
		putArgs("fastreadout", func(d C, a args) error {
			return d.SetFastReadout(a.boolean("FastReadout"))
		}, boolParam("FastReadout")),
		get("fullwellcapacity", C.FullWellCapacity),
		get("gain", C.Gain),
		putArgs("gain", func(d C, a args) error { return d.SetGain(a.integer("Gain")) }, int32Param("Gain")),
		get("gainmax", C.GainMax),
		get("gainmin", C.GainMin),
		get("gains", C.Gains),
		get("hasshutter", C.HasShutter),
		get("heatsinktemperature", C.HeatSinkTemperature),
		imageArrayRoute("imagearray"),
		imageArrayRoute("imagearrayvariant"),
		get("imageready", C.ImageReady),
		get("ispulseguiding", C.IsPulseGuiding),
		get("lastexposureduration", C.LastExposureDuration),
		get("lastexposurestarttime", formatTime(fitsTime, C.LastExposureStartTime)),
		get("maxadu", C.MaxADU),
		get("maxbinx", C.MaxBinX),
		get("maxbiny", C.MaxBinY),
		get("numx", C.NumX),
		putArgs("numx", func(d C, a args) error { return d.SetNumX(a.integer("NumX")) }, int32Param("NumX")),
		get("numy", C.NumY),
		putArgs("numy", func(d C, a args) error { return d.SetNumY(a.integer("NumY")) }, int32Param("NumY")),
		get("offset", C.Offset),
		putArgs("offset", func(d C, a args) error { return d.SetOffset(a.integer("Offset")) }, int32Param("Offset")),
		get("offsetmax", C.OffsetMax),
		get("offsetmin", C.OffsetMin),
		get("offsets", C.Offsets),
		get("percentcompleted", C.PercentCompleted),
		get("pixelsizex", C.PixelSizeX),
		get("pixelsizey", C.PixelSizeY),
		get("readoutmode", C.ReadoutMode),
		putArgs("readoutmode", func(d C, a args) error {
			return d.SetReadoutMode(a.integer("ReadoutMode"))
		}, int32Param("ReadoutMode")),
		get("readoutmodes", C.ReadoutModes),
		get("sensorname", C.SensorName),
		get("sensortype", enum(C.SensorType)),
		get("setccdtemperature", C.SetCCDTemperature),
		putArgs("setccdtemperature", func(d C, a args) error {
			return d.SetSetCCDTemperature(a.number("SetCCDTemperature"))
		}, floatParam("SetCCDTemperature")),
		get("startx", C.StartX),
		putArgs("startx", func(d C, a args) error { return d.SetStartX(a.integer("StartX")) }, int32Param("StartX")),
		get("starty", C.StartY),
		putArgs("starty", func(d C, a args) error { return d.SetStartY(a.integer("StartY")) }, int32Param("StartY")),
		get("subexposureduration", C.SubExposureDuration),
		putArgs("subexposureduration", func(d C, a args) error {
			return d.SetSubExposureDuration(a.number("SubExposureDuration"))
		}, floatParam("SubExposureDuration")),

		put("abortexposure", C.AbortExposure),
		putArgs("pulseguide", func(d C, a args) error {
			return d.PulseGuide(device.GuideDirection(a.integer("Direction")), a.millis("Duration"))
		}, int32Param("Direction"), int32Param("Duration")),
		putArgs("startexposure", func(d C, a args) error {
			return d.StartExposure(a.number("Duration"), a.boolean("Light"))
		}, floatParam("Duration"), boolParam("Light")),
		put("stopexposure", C.StopExposure),
	}
}

// imageArrayRoute serves the image as JSON with its element type and rank.
func imageArrayRoute(member string) route {
	r := get(member, device.CameraDevice.ImageArray)
	r.serve = func(s *Server, c *call) {
		var img [][]int32
		err := invoke(s, c, func(d device.CameraDevice) (err error) {
			img, err = d.ImageArray()
			return err
		})
		resp := imageArrayResponse{alpacaResponse: c.envelope(err), Value: [][]int32{}}
		if err == nil {
			resp.Type, resp.Rank, resp.Value = imageElementInt32, 2, emptyIfNil(img)
		}
		s.reply(c, resp)
	}
	return r
}
