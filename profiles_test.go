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

import (
	"reflect"
	"testing"
)

func TestWideToLong(t *testing.T) {
	in := NewTable("year", "timestep", "SolarNL", "WindNL")
	in.Append(IntValue(2030), IntValue(1), FloatValue(0.1), FloatValue(0.7))
	in.Append(IntValue(2030), IntValue(2), FloatValue(0.2), FloatValue(0.8))
	in.Append(IntValue(2030), IntValue(3), FloatValue(0.3), FloatValue(0.9))

	got, err := WideToLong(in, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := NewTable("profile_name", "year", "rep_period", "timestep", "value")
	for i, v := range []float64{0.1, 0.2, 0.3} {
		want.Append(StringValue("SolarNL"), IntValue(2030), IntValue(1), IntValue(i+1), FloatValue(v))
	}
	for i, v := range []float64{0.7, 0.8, 0.9} {
		want.Append(StringValue("WindNL"), IntValue(2030), IntValue(1), IntValue(i+1), FloatValue(v))
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got.Len() != in.Len()*(len(in.Cols)-2) {
		t.Errorf("rows = %d, want rows × profiles = %d", got.Len(), in.Len()*(len(in.Cols)-2))
	}
}

func TestWideToLongMissingIDColumn(t *testing.T) {
	in := NewTable("year", "SolarNL")
	if _, err := WideToLong(in, nil); err == nil {
		t.Error("expected error for missing timestep column")
	}
}
