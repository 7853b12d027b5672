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

func TestValueNullDistinctFromZero(t *testing.T) {
	if Null() == FloatValue(0) {
		t.Error("null compares equal to 0.0")
	}
	if Null() == StringValue("") {
		t.Error("null compares equal to the empty string")
	}
	if Null() == BoolValue(false) {
		t.Error("null compares equal to false")
	}
	if !Null().IsNull() {
		t.Error("Null().IsNull() = false")
	}
	if FloatValue(0).IsNull() {
		t.Error("FloatValue(0).IsNull() = true")
	}
}

func TestParseValue(t *testing.T) {
	tests := []struct {
		kind Kind
		in   string
		want Value
	}{
		{Bool, "true", BoolValue(true)},
		{Int, "8760", IntValue(8760)},
		{Float, "1.5", FloatValue(1.5)},
		{String, "NL_Hub", StringValue("NL_Hub")},
		{Float, "", Null()},
		{String, "", Null()},
	}
	for _, test := range tests {
		got, err := ParseValue(test.kind, test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("ParseValue(%v, %q) = %v, want %v", test.kind, test.in, got, test.want)
		}
	}
	if _, err := ParseValue(Int, "abc"); err == nil {
		t.Error("parsing \"abc\" as int: expected error")
	}
}

func TestTableSelect(t *testing.T) {
	in := NewTable("a", "b")
	in.Append(IntValue(1), IntValue(2))
	got := in.Select("b", "c")
	want := NewTable("b", "c")
	want.Append(IntValue(2), Null())
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}
}
