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

func TestBlockDurations(t *testing.T) {
	in := NewTable("asset", "time_block_start", "time_block_end", "solution")
	in.Append(StringValue("a"), IntValue(1), IntValue(4), FloatValue(2))
	in.Append(StringValue("a"), IntValue(5), IntValue(5), FloatValue(3))

	got, err := BlockDurations(in)
	if err != nil {
		t.Fatal(err)
	}
	want := NewTable("asset", "duration", "solution")
	want.Append(StringValue("a"), IntValue(4), FloatValue(2))
	want.Append(StringValue("a"), IntValue(1), FloatValue(3))
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestUnroll(t *testing.T) {
	// Two groups with different block partitions of their timelines.
	in := NewTable("asset", "duration", "solution")
	in.Append(StringValue("a"), IntValue(3), FloatValue(1.5))
	in.Append(StringValue("a"), IntValue(1), FloatValue(2.5))
	in.Append(StringValue("a"), IntValue(4), FloatValue(3.5))
	in.Append(StringValue("b"), IntValue(2), FloatValue(7))
	in.Append(StringValue("b"), IntValue(2), FloatValue(8))

	got, err := Unroll(in, []string{"asset"})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("timesteps are exactly 1..sum(durations) per group", func(t *testing.T) {
		seen := map[string]map[int]int{}
		for i := range got.Rows {
			a := got.Value(i, "asset").Text()
			if seen[a] == nil {
				seen[a] = map[int]int{}
			}
			seen[a][got.Value(i, "timestep").Int()]++
		}
		for group, want := range map[string]int{"a": 8, "b": 4} {
			if len(seen[group]) != want {
				t.Errorf("group %s: %d distinct timesteps, want %d", group, len(seen[group]), want)
			}
			for ts := 1; ts <= want; ts++ {
				if seen[group][ts] != 1 {
					t.Errorf("group %s: timestep %d appears %d times", group, ts, seen[group][ts])
				}
			}
		}
	})

	t.Run("values are preserved across the block span", func(t *testing.T) {
		want := NewTable("asset", "timestep", "solution")
		for _, r := range []struct {
			asset string
			ts    int
			v     float64
		}{
			{"a", 1, 1.5}, {"a", 2, 1.5}, {"a", 3, 1.5},
			{"a", 4, 2.5},
			{"a", 5, 3.5}, {"a", 6, 3.5}, {"a", 7, 3.5}, {"a", 8, 3.5},
			{"b", 1, 7}, {"b", 2, 7},
			{"b", 3, 8}, {"b", 4, 8},
		} {
			want.Append(StringValue(r.asset), IntValue(r.ts), FloatValue(r.v))
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("got %v, want %v", got, want)
		}
	})

	t.Run("row count equals the duration sum per group", func(t *testing.T) {
		if got.Len() != 12 {
			t.Errorf("rows = %d, want 12", got.Len())
		}
	})
}

func TestUnrollRejectsNonpositiveDuration(t *testing.T) {
	in := NewTable("asset", "duration", "solution")
	in.Append(StringValue("a"), IntValue(0), FloatValue(1))
	if _, err := Unroll(in, []string{"asset"}); err == nil {
		t.Error("expected error for zero duration")
	}
}
