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

import "fmt"

// NotFoundError reports a missing input folder or file. It is fatal; the
// run does not continue past it.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("obz: %s: no such file or directory", e.Path)
}

// SchemaMismatchError reports a default value whose kind contradicts the
// schema's declared kind for the same column. It is surfaced at table-build
// time rather than deferred to engine rejection.
type SchemaMismatchError struct {
	Column string
	Want   Kind
	Got    Kind
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("obz: column %q: default has kind %s but schema declares %s", e.Column, e.Got, e.Want)
}
