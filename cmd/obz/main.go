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

// Command obz is the command-line interface for the Tulipa OBZ case study.
package main

import (
	"fmt"
	"os"

	"github.com/TulipaEnergy/Tulipa-OBZ-CaseStudy/obzutil"
)

func main() {
	if err := obzutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
