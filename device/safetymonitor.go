package device

// SafetyMonitorDevice is the ISafetyMonitorV3 contract.
type SafetyMonitorDevice interface {
	Device

	IsSafe() (bool, error)
}
