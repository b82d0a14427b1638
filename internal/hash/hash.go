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

// Package hash computes short keys that identify run configurations.
package hash

import (
	"fmt"
	"hash"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

// ShortLen is the number of hex digits in a key returned by Short.
const ShortLen = 12

var printer = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Hash returns a hex key for the specified object. The object is written
// out with spew, which sorts map keys, so equal objects always give
// equal keys.
func Hash(object interface{}) string {
	h := fnv.New128a()
	write(h, object)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Short returns the first ShortLen hex digits of Hash(object), which is
// enough to tell configurations apart in log records.
func Short(object interface{}) string {
	return Hash(object)[:ShortLen]
}

func write(h hash.Hash, object interface{}) {
	if s, ok := object.(fmt.Stringer); ok {
		fmt.Fprint(h, s.String())
		return
	}
	printer.Fprintf(h, "%#v", object)
}
