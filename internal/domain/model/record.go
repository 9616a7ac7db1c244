// Package model contains domain types passed between layers.
package model

import (
	"fmt"
)

// FeatureCount is the width of the model input vector.
const FeatureCount = 24

// percentScale converts percentage controls to the fractional features
// the models were trained on.
const percentScale = 100.0

// FieldSpec describes one sensor input control: its canonical feature name,
// JSON key, accepted range and default. Percent marks fields entered as
// percentages and normalized to [0,1] before inference.
type FieldSpec struct {
	Name    string  `json:"name"`
	JSON    string  `json:"json"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Percent bool    `json:"percent"`
}

// fieldSpecs lists all input fields in model feature order. The order is
// load-bearing: vectors handed to the artifacts follow it exactly.
var fieldSpecs = [FeatureCount]FieldSpec{
	{Name: "SoC", JSON: "soc", Min: 0, Max: 100, Default: 80, Percent: true},
	{Name: "SoH", JSON: "soh", Min: 0, Max: 100, Default: 95, Percent: true},
	{Name: "Battery_Voltage", JSON: "battery_voltage", Min: 0, Max: 500, Default: 400},
	{Name: "Battery_Current", JSON: "battery_current", Min: -500, Max: 500, Default: 0},
	{Name: "Battery_Temperature", JSON: "battery_temperature", Min: 0, Max: 100, Default: 30},
	{Name: "Charge_Cycles", JSON: "charge_cycles", Min: 0, Max: 5000, Default: 150},
	{Name: "Motor_Temperature", JSON: "motor_temperature", Min: 0, Max: 200, Default: 60},
	{Name: "Motor_Vibration", JSON: "motor_vibration", Min: 0, Max: 10, Default: 0.5},
	{Name: "Motor_Torque", JSON: "motor_torque", Min: 0, Max: 500, Default: 100},
	{Name: "Motor_RPM", JSON: "motor_rpm", Min: 0, Max: 10000, Default: 2000},
	{Name: "Power_Consumption", JSON: "power_consumption", Min: 0, Max: 500, Default: 50},
	{Name: "Brake_Pad_Wear", JSON: "brake_pad_wear", Min: 0, Max: 100, Default: 20, Percent: true},
	{Name: "Brake_Pressure", JSON: "brake_pressure", Min: 0, Max: 100, Default: 40},
	{Name: "Reg_Brake_Efficiency", JSON: "reg_brake_efficiency", Min: 0, Max: 1, Default: 0.8},
	{Name: "Tire_Pressure", JSON: "tire_pressure", Min: 20, Max: 50, Default: 32},
	{Name: "Tire_Temperature", JSON: "tire_temperature", Min: 0, Max: 100, Default: 30},
	{Name: "Suspension_Load", JSON: "suspension_load", Min: 0, Max: 500, Default: 100},
	{Name: "Ambient_Temperature", JSON: "ambient_temperature", Min: -10, Max: 50, Default: 25},
	{Name: "Ambient_Humidity", JSON: "ambient_humidity", Min: 0, Max: 100, Default: 50},
	{Name: "Load_Weight", JSON: "load_weight", Min: 0, Max: 2000, Default: 500},
	{Name: "Driving_Speed", JSON: "driving_speed", Min: 0, Max: 200, Default: 60},
	{Name: "Distance_Traveled", JSON: "distance_traveled", Min: 0, Max: 500000, Default: 20000},
	{Name: "Idle_Time", JSON: "idle_time", Min: 0, Max: 5000, Default: 60},
	{Name: "Route_Roughness", JSON: "route_roughness", Min: 0, Max: 10, Default: 2},
}

// FieldSpecs returns the input field descriptions in feature order.
func FieldSpecs() []FieldSpec {
	specs := make([]FieldSpec, FeatureCount)
	copy(specs, fieldSpecs[:])
	return specs
}

// FeatureNames returns the canonical feature names in vector order. Uploaded
// CSV headers are matched against these names.
func FeatureNames() []string {
	names := make([]string, FeatureCount)
	for i, s := range fieldSpecs {
		names[i] = s.Name
	}
	return names
}

// SensorRecord carries one manually entered set of vehicle sensor readings,
// with raw control values (percent fields still in 0..100).
type SensorRecord struct {
	SoC                 float64 `json:"soc"`
	SoH                 float64 `json:"soh"`
	BatteryVoltage      float64 `json:"battery_voltage"`
	BatteryCurrent      float64 `json:"battery_current"`
	BatteryTemperature  float64 `json:"battery_temperature"`
	ChargeCycles        float64 `json:"charge_cycles"`
	MotorTemperature    float64 `json:"motor_temperature"`
	MotorVibration      float64 `json:"motor_vibration"`
	MotorTorque         float64 `json:"motor_torque"`
	MotorRPM            float64 `json:"motor_rpm"`
	PowerConsumption    float64 `json:"power_consumption"`
	BrakePadWear        float64 `json:"brake_pad_wear"`
	BrakePressure       float64 `json:"brake_pressure"`
	RegBrakeEfficiency  float64 `json:"reg_brake_efficiency"`
	TirePressure        float64 `json:"tire_pressure"`
	TireTemperature     float64 `json:"tire_temperature"`
	SuspensionLoad      float64 `json:"suspension_load"`
	AmbientTemperature  float64 `json:"ambient_temperature"`
	AmbientHumidity     float64 `json:"ambient_humidity"`
	LoadWeight          float64 `json:"load_weight"`
	DrivingSpeed        float64 `json:"driving_speed"`
	DistanceTraveledKM  float64 `json:"distance_traveled"`
	IdleTimeMinutes     float64 `json:"idle_time"`
	RouteRoughnessIndex float64 `json:"route_roughness"`
}

// DefaultRecord returns a record populated with every control's default.
func DefaultRecord() SensorRecord {
	var r SensorRecord
	raw := r.raw()
	for i := range fieldSpecs {
		*raw[i] = fieldSpecs[i].Default
	}
	return r
}

// raw exposes the record's fields as pointers in feature order.
func (r *SensorRecord) raw() [FeatureCount]*float64 {
	return [FeatureCount]*float64{
		&r.SoC, &r.SoH, &r.BatteryVoltage, &r.BatteryCurrent, &r.BatteryTemperature,
		&r.ChargeCycles, &r.MotorTemperature, &r.MotorVibration, &r.MotorTorque,
		&r.MotorRPM, &r.PowerConsumption, &r.BrakePadWear, &r.BrakePressure,
		&r.RegBrakeEfficiency, &r.TirePressure, &r.TireTemperature, &r.SuspensionLoad,
		&r.AmbientTemperature, &r.AmbientHumidity, &r.LoadWeight, &r.DrivingSpeed,
		&r.DistanceTraveledKM, &r.IdleTimeMinutes, &r.RouteRoughnessIndex,
	}
}

// Validate checks every field against its documented [min,max] range.
func (r *SensorRecord) Validate() error {
	raw := r.raw()
	for i, spec := range fieldSpecs {
		v := *raw[i]
		if v < spec.Min || v > spec.Max {
			return fmt.Errorf("%w: %s=%g outside [%g,%g]", ErrOutOfRange, spec.JSON, v, spec.Min, spec.Max)
		}
	}
	return nil
}

// Vector returns the model input row: control values in feature order, with
// percent-entered fields normalized to fractions.
func (r *SensorRecord) Vector() []float64 {
	raw := r.raw()
	vec := make([]float64, FeatureCount)
	for i, spec := range fieldSpecs {
		v := *raw[i]
		if spec.Percent {
			v /= percentScale
		}
		vec[i] = v
	}
	return vec
}
