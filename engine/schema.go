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

package engine

import obz "github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy"

// The engine owns the input table contracts. The table-building layer
// treats these schemas as opaque: it produces tables with exactly these
// columns in exactly this order.

// AssetSchema is the contract for the asset basic-data table.
func AssetSchema() obz.Schema {
	return obz.Schema{
		{Name: "name", Kind: obz.String},
		{Name: "type", Kind: obz.String},
		{Name: "country", Kind: obz.String},
		{Name: "technology", Kind: obz.String},
		{Name: "lat", Kind: obz.Float},
		{Name: "lon", Kind: obz.Float},
		{Name: "active", Kind: obz.Bool},
		{Name: "year", Kind: obz.Int},
		{Name: "commission_year", Kind: obz.Int},
		{Name: "capacity", Kind: obz.Float},
		{Name: "investable", Kind: obz.Bool},
		{Name: "investment_cost", Kind: obz.Float},
		{Name: "investment_limit", Kind: obz.Float},
		{Name: "peak_demand", Kind: obz.Float},
		{Name: "is_seasonal", Kind: obz.Bool},
		{Name: "initial_storage_capacity", Kind: obz.Float},
		{Name: "initial_storage_level", Kind: obz.Float},
		{Name: "profile_name", Kind: obz.String},
	}
}

// FlowSchema is the contract for the flow basic-data table.
func FlowSchema() obz.Schema {
	return obz.Schema{
		{Name: "from_asset", Kind: obz.String},
		{Name: "to_asset", Kind: obz.String},
		{Name: "carrier", Kind: obz.String},
		{Name: "active", Kind: obz.Bool},
		{Name: "is_transport", Kind: obz.Bool},
		{Name: "year", Kind: obz.Int},
		{Name: "capacity", Kind: obz.Float},
		{Name: "variable_cost", Kind: obz.Float},
		{Name: "efficiency", Kind: obz.Float},
		{Name: "export_capacity", Kind: obz.Float},
		{Name: "import_capacity", Kind: obz.Float},
	}
}

// ProfileSchema is the contract for long-format profile tables.
func ProfileSchema() obz.Schema {
	return obz.Schema{
		{Name: "profile_name", Kind: obz.String},
		{Name: "year", Kind: obz.Int},
		{Name: "rep_period", Kind: obz.Int},
		{Name: "timestep", Kind: obz.Int},
		{Name: "value", Kind: obz.Float},
	}
}

// AssetPartitionSchema is the contract for per-asset time partitions.
func AssetPartitionSchema() obz.Schema {
	return obz.Schema{
		{Name: "asset", Kind: obz.String},
		{Name: "year", Kind: obz.Int},
		{Name: "rep_period", Kind: obz.Int},
		{Name: "specification", Kind: obz.String},
		{Name: "partition", Kind: obz.Int},
	}
}

// FlowPartitionSchema is the contract for per-flow time partitions.
func FlowPartitionSchema() obz.Schema {
	return obz.Schema{
		{Name: "from_asset", Kind: obz.String},
		{Name: "to_asset", Kind: obz.String},
		{Name: "year", Kind: obz.Int},
		{Name: "rep_period", Kind: obz.Int},
		{Name: "specification", Kind: obz.String},
		{Name: "partition", Kind: obz.Int},
	}
}

// RepPeriodSchema is the contract for representative-period metadata.
func RepPeriodSchema() obz.Schema {
	return obz.Schema{
		{Name: "rep_period", Kind: obz.Int},
		{Name: "num_timesteps", Kind: obz.Int},
		{Name: "resolution", Kind: obz.Float},
	}
}
