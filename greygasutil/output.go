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

package greygasutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"gonum.org/v1/plot"
)

type outputFormat int

const (
	tableFormat outputFormat = iota
	csvFormat
	plotFormat
)

// format returns the output format implied by the extension of f.
func format(f string) (outputFormat, error) {
	if f == "" {
		return tableFormat, nil
	}
	switch ext := strings.ToLower(filepath.Ext(f)); ext {
	case ".csv":
		return csvFormat, nil
	case ".png", ".svg", ".pdf", ".eps", ".jpg", ".jpeg", ".tif", ".tiff":
		return plotFormat, nil
	default:
		return tableFormat, fmt.Errorf("greygas: OutputFile %q has unsupported extension %q; "+
			"it should be .csv or a plot format (.png, .svg, .pdf, .eps, .jpg, .tif)", f, ext)
	}
}

// table is a set of named numeric columns.
type table struct {
	header []string
	rows   [][]float64
}

func (t *table) writeText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, strings.Join(t.header, "\t")+"\t")
	for _, r := range t.rows {
		for _, v := range r {
			fmt.Fprint(tw, strconv.FormatFloat(v, 'g', 8, 64)+"\t")
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func (t *table) writeCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return err
	}
	rec := make([]string, len(t.header))
	for _, r := range t.rows {
		for i, v := range r {
			rec[i] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// writeOutput writes t to w as a table if outputFile is empty, or to
// outputFile as a CSV file or as the plot returned by p.
func writeOutput(w io.Writer, outputFile string, t *table, p func() (*plot.Plot, error)) error {
	f, err := format(outputFile)
	if err != nil {
		return err
	}
	switch f {
	case csvFormat:
		file, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("greygas: creating output file: %v", err)
		}
		if err := t.writeCSV(file); err != nil {
			file.Close()
			return fmt.Errorf("greygas: writing output file: %v", err)
		}
		return file.Close()
	case plotFormat:
		pl, err := p()
		if err != nil {
			return err
		}
		if err := pl.Save(plotWidth, plotHeight, outputFile); err != nil {
			return fmt.Errorf("greygas: saving plot: %v", err)
		}
		return nil
	default:
		return t.writeText(w)
	}
}
