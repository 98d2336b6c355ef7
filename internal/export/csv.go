// Package export writes a loaded week as CSV or iCalendar.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/classwatch/internal/common"
	"github.com/Veraticus/classwatch/internal/model"
)

// CSVHeader is the first row of every CSV export.
var CSVHeader = []string{"week", "time", "name", "location", "teacher", "weekday"}

// utf8BOM lets spreadsheet software detect the encoding.
const utf8BOM = "\ufeff"

// CSVOptions controls CSV output.
type CSVOptions struct {
	BOM bool
}

// WriteCSV writes one row per course in load order.
func WriteCSV(w io.Writer, snap *model.WeekSnapshot, opts CSVOptions) error {
	if snap.IsEmpty() {
		return common.ErrNoData
	}

	if opts.BOM {
		if _, err := io.WriteString(w, utf8BOM); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	week := strconv.Itoa(snap.WeekNumber)
	for _, c := range snap.Courses {
		record := []string{
			week,
			c.TimeRange(),
			c.Name,
			c.Location,
			c.TeacherName,
			snap.WeekdayName(c.Weekday),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write course %s: %w", c.Name, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}
