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

import "testing"

func TestDefaultValues(t *testing.T) {
	d := DefaultValues(2030)

	for _, test := range []struct {
		key  string
		want Value
	}{
		{"active", BoolValue(true)},
		{"capacity", FloatValue(0)},
		{"efficiency", FloatValue(1)},
		{"num_timesteps", IntValue(8760)},
		{"commission_year", IntValue(2030)},
		{"year", IntValue(2030)},
		{"rep_period", IntValue(1)},
		{"carrier", StringValue("electricity")},
	} {
		got, ok := d[test.key]
		if !ok {
			t.Errorf("missing key %q", test.key)
			continue
		}
		if got != test.want {
			t.Errorf("%s = %v, want %v", test.key, got, test.want)
		}
	}

	t.Run("unknowns are null, not zero", func(t *testing.T) {
		for _, key := range []string{"type", "country", "investment_limit", "initial_storage_level", "max_ramp_up"} {
			v, ok := d[key]
			if !ok {
				t.Errorf("missing key %q", key)
				continue
			}
			if !v.IsNull() {
				t.Errorf("%s = %v, want null", key, v)
			}
		}
	})

	t.Run("deterministic", func(t *testing.T) {
		d2 := DefaultValues(2030)
		if len(d) != len(d2) {
			t.Fatalf("key counts differ: %d != %d", len(d), len(d2))
		}
		for k, v := range d {
			if d2[k] != v {
				t.Errorf("%s: %v != %v", k, v, d2[k])
			}
		}
	})

	if len(d) < 55 {
		t.Errorf("registry has %d keys, want the full documented set", len(d))
	}
}
