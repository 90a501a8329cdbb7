package device

// ObservingConditionsDevice is the IObservingConditionsV2 contract. Sensor
// members return a NotImplemented fault when the sensor is absent.
type ObservingConditionsDevice interface {
	Device

	AveragePeriod() (float64, error)
	SetAveragePeriod(hours float64) error
	CloudCover() (float64, error)
	DewPoint() (float64, error)
	Humidity() (float64, error)
	Pressure() (float64, error)
	RainRate() (float64, error)
	SkyBrightness() (float64, error)
	SkyQuality() (float64, error)
	SkyTemperature() (float64, error)
	StarFWHM() (float64, error)
	Temperature() (float64, error)
	WindDirection() (float64, error)
	WindGust() (float64, error)
	WindSpeed() (float64, error)

	Refresh() error
	SensorDescription(sensor string) (string, error)
	TimeSinceLastUpdate(sensor string) (float64, error)
}

// UnimplementedObservingConditions reports every sensor as absent.
type UnimplementedObservingConditions struct{}

func (UnimplementedObservingConditions) AveragePeriod() (float64, error) { return 0, nil }
func (UnimplementedObservingConditions) SetAveragePeriod(hours float64) error {
	if hours != 0 {
		return InvalidValue("AveragePeriod %v is not supported, only 0 is allowed", hours)
	}
	return nil
}
func (UnimplementedObservingConditions) CloudCover() (float64, error)     { return 0, NotImplemented("CloudCover") }
func (UnimplementedObservingConditions) DewPoint() (float64, error)       { return 0, NotImplemented("DewPoint") }
func (UnimplementedObservingConditions) Humidity() (float64, error)       { return 0, NotImplemented("Humidity") }
func (UnimplementedObservingConditions) Pressure() (float64, error)       { return 0, NotImplemented("Pressure") }
func (UnimplementedObservingConditions) RainRate() (float64, error)       { return 0, NotImplemented("RainRate") }
func (UnimplementedObservingConditions) SkyBrightness() (float64, error)  { return 0, NotImplemented("SkyBrightness") }
func (UnimplementedObservingConditions) SkyQuality() (float64, error)     { return 0, NotImplemented("SkyQuality") }
func (UnimplementedObservingConditions) SkyTemperature() (float64, error) { return 0, NotImplemented("SkyTemperature") }
func (UnimplementedObservingConditions) StarFWHM() (float64, error)       { return 0, NotImplemented("StarFWHM") }
func (UnimplementedObservingConditions) Temperature() (float64, error)    { return 0, NotImplemented("Temperature") }
func (UnimplementedObservingConditions) WindDirection() (float64, error)  { return 0, NotImplemented("WindDirection") }
func (UnimplementedObservingConditions) WindGust() (float64, error)       { return 0, NotImplemented("WindGust") }
func (UnimplementedObservingConditions) WindSpeed() (float64, error)      { return 0, NotImplemented("WindSpeed") }
func (UnimplementedObservingConditions) Refresh() error                   { return NotImplemented("Refresh") }
func (UnimplementedObservingConditions) SensorDescription(sensor string) (string, error) {
	return "", NotImplemented("SensorDescription(" + sensor + ")")
}
func (UnimplementedObservingConditions) TimeSinceLastUpdate(sensor string) (float64, error) {
	return 0, NotImplemented("TimeSinceLastUpdate(" + sensor + ")")
}
