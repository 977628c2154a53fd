package dataprocessing

import "log/slog"

// groupAccumulator holds the in-progress (region, sales, product id) group
// while scanning a row's group columns. A group opens when a region name is
// seen and remembers where, so the numeric cells that follow keep their
// positional role: one column after the region is sales, two after is the
// product id. An empty cell between them therefore never shifts a product
// id into the sales slot.
type groupAccumulator struct {
	region    string
	regionPos int
	open      bool
	sales     Value
	product   Value
}

// flushTo appends the accumulated group to the output table, merged with
// the row's identifying fields. Unset sales/product stay empty for the
// remediator's defaulting pass.
func (g *groupAccumulator) flushTo(out *Table, identifying []Value) {
	row := make([]Value, 0, len(OutputColumns))
	row = append(row, identifying...)
	row = append(row, TextValue(g.region), g.sales, g.product)
	out.Rows = append(out.Rows, row)
}

// Unpivot converts a wide table into the long format by reconstructing the
// repeating (region, regional_sales, product_id) groups from the group
// columns. Groups are anchored on cell content: a text cell is a region
// name wherever it appears, so a dropped or shifted cell never pairs a
// region with another group's numbers.
//
// Each row is a single left-to-right scan over the group columns:
//
//   - empty cells are skipped
//   - a text cell closes any open group (a bare region still flushes as a
//     partial record) and opens a new one as its region
//   - a numeric cell belongs to the open group when it sits within the
//     group's width; its offset from the region decides whether it is the
//     sales figure or the product id. Numbers before any region, or beyond
//     the group's width, have nothing to attach to and are discarded
//   - a group still open at the end of the row is flushed
//
// Rows yielding no groups contribute nothing. Output preserves row order,
// then group-discovery order within a row.
func Unpivot(table *Table) *Table {
	out := NewTable(OutputColumns...)

	groupCols := table.GroupColumns()
	idIdx := make([]int, len(IdentifyingColumns))
	for i, col := range IdentifyingColumns {
		idIdx[i] = table.ColumnIndex(col)
	}
	groupIdx := make([]int, len(groupCols))
	for i, col := range groupCols {
		groupIdx[i] = table.ColumnIndex(col)
	}

	for _, row := range table.Rows {
		identifying := make([]Value, len(idIdx))
		for i, idx := range idIdx {
			if idx >= 0 && idx < len(row) {
				identifying[i] = row[idx]
			} else {
				identifying[i] = Empty()
			}
		}

		var acc groupAccumulator
		for pos, idx := range groupIdx {
			if idx < 0 || idx >= len(row) {
				continue
			}
			cell := row[idx]

			switch cell.Kind {
			case ValueEmpty:
				continue
			case ValueText:
				// A region name starts a new group regardless of how
				// complete the previous one is.
				if acc.open {
					acc.flushTo(out, identifying)
				}
				acc = groupAccumulator{region: cell.Text, regionPos: pos, open: true}
			case ValueNumber:
				if !acc.open {
					continue
				}
				switch pos - acc.regionPos {
				case 1:
					acc.sales = cell
				case 2:
					acc.product = cell
				default:
					// Beyond the group's width: surplus, discarded.
				}
			}
		}

		// Trailing group with no following text to close it.
		if acc.open {
			acc.flushTo(out, identifying)
		}
	}

	slog.Info("unpivoted wide table",
		slog.Int("input_rows", len(table.Rows)),
		slog.Int("output_records", len(out.Rows)),
		slog.Int("group_columns", len(groupCols)))

	return out
}
