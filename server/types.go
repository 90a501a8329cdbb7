package server

import "alpaca-gateway/device"

// ASCOM Alpaca response types

type alpacaResponse struct {
	ClientTransactionID uint32 `json:"ClientTransactionID"`
	ServerTransactionID uint32 `json:"ServerTransactionID"`
	ErrorNumber         int32  `json:"ErrorNumber,omitempty"`
	ErrorMessage        string `json:"ErrorMessage,omitempty"`
}

// value is the closed set of shapes a device member can return.
type value interface {
	bool | int32 | float64 | string |
		[]string | []int32 | [][]int32 |
		[]device.StateValue | []device.AxisRate | []device.DriveRate
}

type valueResponse[V value] struct {
	alpacaResponse
	Value V `json:"Value"`
}

type putResponse struct {
	alpacaResponse
}

type uint32ListResponse struct {
	alpacaResponse
	Value []uint32 `json:"Value"`
}

// DeviceConfiguration is used in /management/v1/configureddevices.
type DeviceConfiguration struct {
	DeviceName   string `json:"DeviceName"`
	DeviceType   string `json:"DeviceType"`
	DeviceNumber uint32 `json:"DeviceNumber"`
	UniqueID     string `json:"UniqueID"`
}

type managementDevicesListResponse struct {
	alpacaResponse
	Value []DeviceConfiguration `json:"Value"`
}

type managementDescriptionResponse struct {
	alpacaResponse
	Value Description `json:"Value"`
}

// Description is used in /management/v1/description.
type Description struct {
	ServerName          string `json:"ServerName"`
	Manufacturer        string `json:"Manufacturer"`
	ManufacturerVersion string `json:"ManufacturerVersion"`
	Location            string `json:"Location"`
}

// emptyIfNil replaces a nil slice with an empty one so it encodes as [].
func emptyIfNil[V value](v V) V {
	switch p := any(&v).(type) {
	case *[]string:
		if *p == nil {
			*p = []string{}
		}
	case *[]int32:
		if *p == nil {
			*p = []int32{}
		}
	case *[][]int32:
		if *p == nil {
			*p = [][]int32{}
		}
	case *[]device.StateValue:
		if *p == nil {
			*p = []device.StateValue{}
		}
	case *[]device.AxisRate:
		if *p == nil {
			*p = []device.AxisRate{}
		}
	case *[]device.DriveRate:
		if *p == nil {
			*p = []device.DriveRate{}
		}
	}
	return v
}

type imageArrayResponse struct {
	alpacaResponse
	Type  int32     `json:"Type"`
	Rank  int32     `json:"Rank"`
	Value [][]int32 `json:"Value"`
}
