package domain

import (
	"math"
	"time"
)

// Variable identifies one tracked process variable. The string value matches
// the column header in the source table exactly.
type Variable string

const (
	VariableProcessTemp         Variable = "Process Temp"
	VariableProcessTempSP       Variable = "Process Temp SP"
	VariablePressureSP          Variable = "Pressure SP"
	VariableInletSteamPressure  Variable = "Inlet Steam Pressure"
	VariableOutletSteamPressure Variable = "Outlet Steam Pressure"
	VariableSteamFlowRate       Variable = "Steam Flow Rate"
	VariableValveOpening        Variable = "QualSteam Valve Opening"
)

// Variables returns all tracked process variables in presentation order.
// The order matches the dashboard layout: temperature, pressures, flow, valve.
func Variables() []Variable {
	return []Variable{
		VariableProcessTemp,
		VariableProcessTempSP,
		VariablePressureSP,
		VariableInletSteamPressure,
		VariableOutletSteamPressure,
		VariableSteamFlowRate,
		VariableValveOpening,
	}
}

// IsValidVariable reports whether name matches a tracked process variable.
func IsValidVariable(name string) bool {
	for _, v := range Variables() {
		if string(v) == name {
			return true
		}
	}
	return false
}

// Reading represents one timestamped row of process-variable values for a
// batch. Missing numeric values are stored as NaN; consumers must check
// with IsMissing before using a value.
type Reading struct {
	Timestamp           time.Time `json:"timestamp"`
	BatchID             string    `json:"batch_id"`
	ProcessTemp         float64   `json:"process_temp"`
	ProcessTempSP       float64   `json:"process_temp_sp"`
	PressureSP          float64   `json:"pressure_sp"`
	InletSteamPressure  float64   `json:"inlet_steam_pressure"`
	OutletSteamPressure float64   `json:"outlet_steam_pressure"`
	SteamFlowRate       float64   `json:"steam_flow_rate"`
	ValveOpening        float64   `json:"valve_opening"`
}

// Value returns the reading's value for the given variable.
// Returns NaN for an unknown variable, same as for a missing value.
func (r *Reading) Value(v Variable) float64 {
	switch v {
	case VariableProcessTemp:
		return r.ProcessTemp
	case VariableProcessTempSP:
		return r.ProcessTempSP
	case VariablePressureSP:
		return r.PressureSP
	case VariableInletSteamPressure:
		return r.InletSteamPressure
	case VariableOutletSteamPressure:
		return r.OutletSteamPressure
	case VariableSteamFlowRate:
		return r.SteamFlowRate
	case VariableValveOpening:
		return r.ValveOpening
	default:
		return math.NaN()
	}
}

// SetValue stores a value for the given variable. Unknown variables are
// ignored; the loader validates headers before rows are built.
func (r *Reading) SetValue(v Variable, value float64) {
	switch v {
	case VariableProcessTemp:
		r.ProcessTemp = value
	case VariableProcessTempSP:
		r.ProcessTempSP = value
	case VariablePressureSP:
		r.PressureSP = value
	case VariableInletSteamPressure:
		r.InletSteamPressure = value
	case VariableOutletSteamPressure:
		r.OutletSteamPressure = value
	case VariableSteamFlowRate:
		r.SteamFlowRate = value
	case VariableValveOpening:
		r.ValveOpening = value
	}
}

// IsMissing reports whether a stored value represents a missing sample.
func IsMissing(value float64) bool {
	return math.IsNaN(value)
}

// Table is the validated, session-scoped collection of readings.
// Reading order is arbitrary relative to Timestamp; consumers that need
// time order must sort. The table is treated as immutable after load.
type Table struct {
	Readings []Reading `json:"readings"`
	Source   string    `json:"source"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Len returns the number of readings in the table.
func (t *Table) Len() int {
	return len(t.Readings)
}
