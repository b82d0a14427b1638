/*
Copyright © 2024 the InMAP authors.
This file is part of greygas.

greygas is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

greygas is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with greygas.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command greygas is a command-line interface for computing grey gas
// radiative fluxes and the runaway greenhouse limit on outgoing longwave
// radiation.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/greygas/greygasutil"
)

func main() {
	if err := greygasutil.Root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}
