package simulator

import (
	"math"
	"strings"
	"sync"
	"time"

	"alpaca-gateway/device"
)

// ObservingConditions simulates a weather station reporting temperature,
// humidity, pressure and wind. Other sensors are absent.
type ObservingConditions struct {
	base
	device.UnimplementedObservingConditions

	mu          sync.Mutex
	lastRefresh time.Time
}

var weatherSensors = map[string]string{
	"temperature":   "Simulated ambient temperature sensor",
	"humidity":      "Simulated relative humidity sensor",
	"dewpoint":      "Derived from temperature and humidity",
	"pressure":      "Simulated barometer",
	"windspeed":     "Simulated anemometer",
	"winddirection": "Simulated wind vane",
}

// NewObservingConditions returns a weather station refreshed at creation.
func NewObservingConditions(opts Options) *ObservingConditions {
	o := &ObservingConditions{base: newBase(device.ObservingConditions, 2, opts)}
	o.lastRefresh = o.now()
	return o
}

// reading returns a value that drifts slowly around mean.
func (o *ObservingConditions) reading(member string, mean, amplitude, period float64) (float64, error) {
	if err := o.require(member); err != nil {
		return 0, err
	}
	o.mu.Lock()
	t := o.lastRefresh
	o.mu.Unlock()
	phase := float64(t.Unix()%int64(period)) / period * 2 * math.Pi
	return math.Round((mean+amplitude*math.Sin(phase))*100) / 100, nil
}

func (o *ObservingConditions) Temperature() (float64, error) {
	return o.reading("Temperature", 8, 3, 86400)
}

func (o *ObservingConditions) Humidity() (float64, error) {
	return o.reading("Humidity", 70, 15, 43200)
}

func (o *ObservingConditions) Pressure() (float64, error) {
	return o.reading("Pressure", 1013, 6, 172800)
}

func (o *ObservingConditions) WindSpeed() (float64, error) {
	return o.reading("WindSpeed", 3, 2, 3600)
}

func (o *ObservingConditions) WindDirection() (float64, error) {
	return o.reading("WindDirection", 180, 90, 7200)
}

// DewPoint uses the Magnus approximation.
func (o *ObservingConditions) DewPoint() (float64, error) {
	t, err := o.Temperature()
	if err != nil {
		return 0, err
	}
	rh, err := o.Humidity()
	if err != nil {
		return 0, err
	}
	const a, b = 17.62, 243.12
	g := math.Log(rh/100) + a*t/(b+t)
	return math.Round(b*g/(a-g)*100) / 100, nil
}

func (o *ObservingConditions) Refresh() error {
	if err := o.require("Refresh"); err != nil {
		return err
	}
	o.mu.Lock()
	o.lastRefresh = o.now()
	o.mu.Unlock()
	return nil
}

func (o *ObservingConditions) SensorDescription(sensor string) (string, error) {
	desc, ok := weatherSensors[strings.ToLower(sensor)]
	if !ok {
		return o.UnimplementedObservingConditions.SensorDescription(sensor)
	}
	return desc, nil
}

// TimeSinceLastUpdate accepts an empty sensor name, meaning any sensor.
func (o *ObservingConditions) TimeSinceLastUpdate(sensor string) (float64, error) {
	if _, ok := weatherSensors[strings.ToLower(sensor)]; sensor != "" && !ok {
		return o.UnimplementedObservingConditions.TimeSinceLastUpdate(sensor)
	}
	if err := o.require("TimeSinceLastUpdate"); err != nil {
		return 0, err
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.now().Sub(o.lastRefresh).Seconds(), nil
}

func (o *ObservingConditions) DeviceState() ([]device.StateValue, error) {
	var out []device.StateValue
	for _, s := range []struct {
		name string
		read func() (float64, error)
	}{
		{"DewPoint", o.DewPoint},
		{"Humidity", o.Humidity},
		{"Pressure", o.Pressure},
		{"Temperature", o.Temperature},
		{"WindDirection", o.WindDirection},
		{"WindSpeed", o.WindSpeed},
	} {
		v, err := s.read()
		if err != nil {
			return nil, err
		}
		out = append(out, device.StateValue{Name: s.name, Value: v})
	}
	return append(out, device.TimeStamp(o.now())), nil
}
