/*
Copyright © 2024 the Tulipa OBZ case study authors.
This file is part of the Tulipa OBZ case study.

The Tulipa OBZ case study is free software: you can redistribute it and/or
modify it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

The Tulipa OBZ case study is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with the Tulipa OBZ case study.  If not, see <http://www.gnu.org/licenses/>.
*/

package obz

// DefaultValues returns the fallback value for every schema field that may
// be filled when user data leaves it out. Fields mapped to Null() mean
// "unknown": they stay null in output rather than being guessed, and the
// engine rejects them if it needs them. Fields absent from the map are
// never filled at all.
//
// defaultYear is the model year assumed for any record that does not name
// one.
func DefaultValues(defaultYear int) map[string]Value {
	return map[string]Value{
		// Asset basic data.
		"active":                 BoolValue(true),
		"type":                   Null(),
		"group":                  Null(),
		"country":                Null(),
		"technology":             Null(),
		"lat":                    FloatValue(0),
		"lon":                    FloatValue(0),
		"capacity":               FloatValue(0),
		"initial_units":          FloatValue(0),
		"investable":             BoolValue(false),
		"investment_integer":     BoolValue(false),
		"investment_method":      StringValue("simple"),
		"investment_cost":        FloatValue(0),
		"investment_limit":       Null(),
		"variable_cost":          FloatValue(0),
		"fixed_cost":             FloatValue(0),
		"discount_rate":          FloatValue(0),
		"economic_lifetime":      IntValue(1),
		"technical_lifetime":     IntValue(1),
		"commission_year":        IntValue(defaultYear),
		"decommission_year":      Null(),
		"peak_demand":            FloatValue(0),
		"consumer_balance_sense": StringValue(">="),

		// Storage assets.
		"is_seasonal":                       BoolValue(false),
		"storage_inflows":                   Null(),
		"initial_storage_capacity":          FloatValue(0),
		"initial_storage_level":             Null(),
		"energy_to_power_ratio":             Null(),
		"storage_method_energy":             BoolValue(false),
		"use_binary_storage_method":         Null(),
		"capacity_storage_energy":           FloatValue(0),
		"investment_cost_storage_energy":    FloatValue(0),
		"investment_limit_storage_energy":   Null(),
		"investable_storage_energy":         BoolValue(false),
		"investment_integer_storage_energy": BoolValue(false),

		// Unit commitment and ramping.
		"unit_commitment":         BoolValue(false),
		"unit_commitment_method":  Null(),
		"unit_commitment_integer": BoolValue(false),
		"units_on_cost":           Null(),
		"min_operating_point":     FloatValue(0),
		"ramping":                 BoolValue(false),
		"max_ramp_up":             Null(),
		"max_ramp_down":           Null(),

		// Flow data.
		"carrier":         StringValue("electricity"),
		"is_transport":    BoolValue(false),
		"efficiency":      FloatValue(1),
		"export_capacity": FloatValue(0),
		"import_capacity": FloatValue(0),

		// Time structure.
		"year":           IntValue(defaultYear),
		"milestone_year": IntValue(defaultYear),
		"rep_period":     IntValue(1),
		"period":         IntValue(1),
		"timestep":       IntValue(1),
		"num_timesteps":  IntValue(8760),
		"resolution":     FloatValue(1),
		"weight":         FloatValue(1),

		// Profiles.
		"profile_type": Null(),
		"profile_name": Null(),

		// Partitions.
		"specification": StringValue("uniform"),
		"partition":     IntValue(1),
	}
}
