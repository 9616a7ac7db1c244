package model

import (
	"time"
)

// Warranty claim decisions.
const (
	WarrantyAccepted = "accepted"
	WarrantyRejected = "rejected"
)

// Warranty decision thresholds: a claim is accepted when the vehicle is
// close to end of life or likely to fail.
const (
	warrantyRULThresholdDays = 180.0
	warrantyFailureThreshold = 0.5
)

// DecideWarranty applies the claim rule: accepted iff RUL < 180 days or
// failure probability > 0.5.
func DecideWarranty(rulDays, failureProbability float64) string {
	if rulDays < warrantyRULThresholdDays || failureProbability > warrantyFailureThreshold {
		return WarrantyAccepted
	}
	return WarrantyRejected
}

// PredictionRow is the per-row inference output.
type PredictionRow struct {
	RULDays            float64 `json:"rul_days"`
	FailureProbability float64 `json:"failure_probability"`
	VehicleHealth      float64 `json:"vehicle_health"`
	Warranty           string  `json:"warranty_claim"`
}

// MaintenancePlan holds the fixed-ratio service intervals derived from the
// batch average RUL plus the distance-based tire rotation interval.
type MaintenancePlan struct {
	BatteryCheckDays   int `json:"battery_check_days"`
	BrakeServiceDays   int `json:"brake_service_days"`
	CoolingInspectDays int `json:"cooling_inspection_days"`
	MotorCheckDays     int `json:"motor_check_days"`
	TireRotationKM     int `json:"tire_rotation_km"`
}

// Fixed plan ratios. Inherited from the trained deployment as-is; they are
// presentation heuristics, not learned values.
const (
	batteryRatio = 3
	brakeRatio   = 2
	coolingRatio = 4
	motorRatio   = 5
	tireKMPerKM  = 1000
)

// NewMaintenancePlan derives the plan from the average RUL (days) and the
// manual record's total distance traveled (km).
func NewMaintenancePlan(avgRULDays, distanceKM float64) MaintenancePlan {
	return MaintenancePlan{
		BatteryCheckDays:   int(avgRULDays / batteryRatio),
		BrakeServiceDays:   int(avgRULDays / brakeRatio),
		CoolingInspectDays: int(avgRULDays / coolingRatio),
		MotorCheckDays:     int(avgRULDays / motorRatio),
		TireRotationKM:     int(distanceKM / tireKMPerKM),
	}
}

// Run captures one complete prediction request over a combined batch.
type Run struct {
	ID                    string          `json:"id"`
	CreatedAt             time.Time       `json:"created_at"`
	Rows                  []PredictionRow `json:"rows"`
	AvgRULDays            float64         `json:"avg_rul_days"`
	AvgFailureProbability float64         `json:"avg_failure_probability"`
	Plan                  MaintenancePlan `json:"maintenance_plan"`
}

// LiveSample is one tick of the simulated sensor feed. BrakePadWear is a
// fraction here, matching the trained feature space rather than the manual
// percent controls.
type LiveSample struct {
	Timestamp          time.Time `json:"timestamp"`
	BatteryVoltage     float64   `json:"battery_voltage"`
	BatteryCurrent     float64   `json:"battery_current"`
	BatteryTemperature float64   `json:"battery_temperature"`
	MotorTemperature   float64   `json:"motor_temperature"`
	MotorVibration     float64   `json:"motor_vibration"`
	BrakePadWear       float64   `json:"brake_pad_wear"`
	TirePressure       float64   `json:"tire_pressure"`
	AmbientTemperature float64   `json:"ambient_temperature"`
}
