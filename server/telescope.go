package server

import "alpaca-gateway/device"

func telescopeRoutes() []route {
	ra, dec := floatParam("RightAscension"), floatParam("Declination")
	az, alt := floatParam("Azimuth"), floatParam("Altitude")
	axis := int32Param("Axis")
	type T = device.TelescopeDevice

	return []route{
		get("alignmentmode", enum(T.AlignmentMode)),
		get("altitude", T.Altitude),
		get("aperturearea", T.ApertureArea),
		get("aperturediameter", T.ApertureDiameter),
		get("athome", T.AtHome),
		get("atpark", T.AtPark),
		get("azimuth", T.Azimuth),
		get("canfindhome", T.CanFindHome),
		get("canpark", T.CanPark),
		get("canpulseguide", T.CanPulseGuide),
		get("cansetdeclinationrate", T.CanSetDeclinationRate),
		get("cansetguiderates", T.CanSetGuideRates),
		get("cansetpark", T.CanSetPark),
		get("cansetpierside", T.CanSetPierSide),
		get("cansetrightascensionrate", T.CanSetRightAscensionRate),
		get("cansettracking", T.CanSetTracking),
		get("canslew", T.CanSlew),
		get("canslewaltaz", T.CanSlewAltAz),
		get("canslewaltazasync", T.CanSlewAltAzAsync),
		get("canslewasync", T.CanSlewAsync),
		get("cansync", T.CanSync),
		get("cansyncaltaz", T.CanSyncAltAz),
		get("canunpark", T.CanUnpark),
		get("declination", T.Declination),
		get("declinationrate", T.DeclinationRate),
		putArgs("declinationrate", func(d T, a args) error {
			return d.SetDeclinationRate(a.number("DeclinationRate"))
		}, floatParam("DeclinationRate")),
		get("doesrefraction", T.DoesRefraction),
		putArgs("doesrefraction", func(d T, a args) error {
			return d.SetDoesRefraction(a.boolean("DoesRefraction"))
		}, boolParam("DoesRefraction")),
		get("equatorialsystem", enum(T.EquatorialSystem)),
		get("focallength", T.FocalLength),
		get("guideratedeclination", T.GuideRateDeclination),
		putArgs("guideratedeclination", func(d T, a args) error {
			return d.SetGuideRateDeclination(a.number("GuideRateDeclination"))
		}, floatParam("GuideRateDeclination")),
		get("guideraterightascension", T.GuideRateRightAscension),
		putArgs("guideraterightascension", func(d T, a args) error {
			return d.SetGuideRateRightAscension(a.number("GuideRateRightAscension"))
		}, floatParam("GuideRateRightAscension")),
		get("ispulseguiding", T.IsPulseGuiding),
		get("rightascension", T.RightAscension),
		get("rightascensionrate", T.RightAscensionRate),
		putArgs("rightascensionrate", func(d T, a args) error {
			return d.SetRightAscensionRate(a.number("RightAscensionRate"))
		}, floatParam("RightAscensionRate")),
		get("sideofpier", enum(T.SideOfPier)),
		putArgs("sideofpier", func(d T, a args) error {
			return d.SetSideOfPier(device.PierSide(a.integer("SideOfPier")))
		}, int32Param("SideOfPier")),
		get("siderealtime", T.SiderealTime),
		get("siteelevation", T.SiteElevation),
		putArgs("siteelevation", func(d T, a args) error {
			return d.SetSiteElevation(a.number("SiteElevation"))
		}, floatParam("SiteElevation")),
		get("sitelatitude", T.SiteLatitude),
		putArgs("sitelatitude", func(d T, a args) error {
			return d.SetSiteLatitude(a.number("SiteLatitude"))
		}, floatParam("SiteLatitude")),
		get("sitelongitude", T.SiteLongitude),
		putArgs("sitelongitude", func(d T, a args) error {
			return d.SetSiteLongitude(a.number("SiteLongitude"))
		}, floatParam("SiteLongitude")),
		get("slewing", T.Slewing),
		get("slewsettletime", T.SlewSettleTime),
		putArgs("slewsettletime", func(d T, a args) error {
			return d.SetSlewSettleTime(a.integer("SlewSettleTime"))
		}, int32Param("SlewSettleTime")),
		get("targetdeclination", T.TargetDeclination),
		putArgs("targetdeclination", func(d T, a args) error {
			return d.SetTargetDeclination(a.number("TargetDeclination"))
		}, floatParam("TargetDeclination")),
		get("targetrightascension", T.TargetRightAscension),
		putArgs("targetrightascension", func(d T, a args) error {
			return d.SetTargetRightAscension(a.number("TargetRightAscension"))
		}, floatParam("TargetRightAscension")),
		get("tracking", T.Tracking),
		putArgs("tracking", func(d T, a args) error {
			return d.SetTracking(a.boolean("Tracking"))
		}, boolParam("Tracking")),
		get("trackingrate", enum(T.TrackingRate)),
		putArgs("trackingrate", func(d T, a args) error {
			return d.SetTrackingRate(device.DriveRate(a.integer("TrackingRate")))
		}, int32Param("TrackingRate")),
		get("trackingrates", T.TrackingRates),
		get("utcdate", formatTime(alpacaTime, T.UTCDate)),
		putArgs("utcdate", func(d T, a args) error {
			return d.SetUTCDate(a.date("UTCDate"))
		}, timeParam("UTCDate")),

		put("abortslew", T.AbortSlew),
		getArgs("axisrates", func(d T, a args) ([]device.AxisRate, error) {
			return d.AxisRates(device.TelescopeAxis(a.integer("Axis")))
		}, axis),
		getArgs("canmoveaxis", func(d T, a args) (bool, error) {
			return d.CanMoveAxis(device.TelescopeAxis(a.integer("Axis")))
		}, axis),
		getArgs("destinationsideofpier", func(d T, a args) (int32, error) {
			side, err := d.DestinationSideOfPier(a.number("RightAscension"), a.number("Declination"))
			return int32(side), err
		}, ra, dec),
		put("findhome", T.FindHome),
		putArgs("moveaxis", func(d T, a args) error {
			return d.MoveAxis(device.TelescopeAxis(a.integer("Axis")), a.number("Rate"))
		}, axis, floatParam("Rate")),
		put("park", T.Park),
		putArgs("pulseguide", func(d T, a args) error {
			return d.PulseGuide(device.GuideDirection(a.integer("Direction")), a.millis("Duration"))
		}, int32Param("Direction"), int32Param("Duration")),
		put("setpark", T.SetPark),
		putArgs("slewtoaltaz", func(d T, a args) error {
			return d.SlewToAltAz(a.number("Azimuth"), a.number("Altitude"))
		}, az, alt),
		putArgs("slewtoaltazasync", func(d T, a args) error {
			return d.SlewToAltAzAsync(a.number("Azimuth"), a.number("Altitude"))
		}, az, alt),
		putArgs("slewtocoordinates", func(d T, a args) error {
			return d.SlewToCoordinates(a.number("RightAscension"), a.number("Declination"))
		}, ra, dec),
		putArgs("slewtocoordinatesasync", func(d T, a args) error {
			return d.SlewToCoordinatesAsync(a.number("RightAscension"), a.number("Declination"))
		}, ra, dec),
		put("slewtotarget", T.SlewToTarget),
		put("slewtotargetasync", T.SlewToTargetAsync),
		putArgs("synctoaltaz", func(d T, a args) error {
			return d.SyncToAltAz(a.number("Azimuth"), a.number("Altitude"))
		}, az, alt),
		putArgs("synctocoordinates", func(d T, a args) error {
			return d.SyncToCoordinates(a.number("RightAscension"), a.number("Declination"))
		}, ra, dec),
		put("synctotarget", T.SyncToTarget),
		put("unpark", T.Unpark),
	}
}
