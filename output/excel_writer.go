package output

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"clockdump/timedata"
)

type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, entries []timedata.NormalizedEntry) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)

	for col, header := range timedata.NormalizedColumns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	durationCol := len(timedata.NormalizedColumns)
	for i, entry := range entries {
		row := i + 2
		values := entry.Row()
		for col, value := range values[:durationCol-1] {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
		cell, _ := excelize.CoordinatesToCellName(durationCol, row)
		if err := file.SetCellValue(sheet, cell, entry.DurationSeconds); err != nil {
			return fmt.Errorf("set excel value %s: %w", cell, err)
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
