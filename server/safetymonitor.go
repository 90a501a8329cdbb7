package server

import "alpaca-gateway/device"

func safetyMonitorRoutes() []route {
	return []route{
		get("issafe", device.SafetyMonitorDevice.IsSafe),
	}
}
