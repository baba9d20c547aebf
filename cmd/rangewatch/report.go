package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"

	"github.com/dshills/rangewatch/internal/memory"
)

// writeComparison renders a comparison as two tables: the observed
// properties before and after, and the individual checks.
func writeComparison(w io.Writer, c memory.Comparison) error {
	before, ok := c.Before()
	after := c.After()

	props := tablewriter.NewWriter(w)
	props.Header("Property", "Before", "After")
	rows := [][]string{
		{"Sheet", orDash(ok, before.SheetName), after.SheetName},
		{"Range", orDash(ok, before.RangeAddress), after.RangeAddress},
		{"Sheet rows", orDash(ok, strconv.Itoa(before.SheetRows)), strconv.Itoa(after.SheetRows)},
		{"Sheet columns", orDash(ok, strconv.Itoa(before.SheetColumns)), strconv.Itoa(after.SheetColumns)},
		{"Cells", orDash(ok, strconv.FormatInt(before.RangeCellCount, 10)), strconv.FormatInt(after.RangeCellCount, 10)},
		{"Values read", orDash(ok, yesNo(before.HasData())), yesNo(after.HasData())},
	}
	for _, row := range rows {
		if err := props.Append(row); err != nil {
			return err
		}
	}
	if err := props.Render(); err != nil {
		return err
	}

	checks := tablewriter.NewWriter(w)
	checks.Header("Check", "Result")
	for _, row := range [][]string{
		{"Location matches", yesNo(c.LocationMatches())},
		{"Data matches", yesNo(c.DataMatches())},
		{"New row", yesNo(c.IsNewRow())},
		{"Row deleted", yesNo(c.IsRowDeleted())},
		{"New column", yesNo(c.IsNewColumn())},
		{"Column deleted", yesNo(c.IsColumnDeleted())},
	} {
		if err := checks.Append(row); err != nil {
			return err
		}
	}
	if err := checks.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "Change: %s\n", c.Kind())
	return err
}

func orDash(ok bool, s string) string {
	if !ok {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
