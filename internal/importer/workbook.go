package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ReadWorkbook extracts header->value row maps from every sheet of an .xlsx
// stream. Each sheet gets its own header-row detection; sheets without a
// recognizable header are skipped.
func ReadWorkbook(r io.Reader) ([]map[string]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	var all []map[string]string
	for _, sheet := range f.GetSheetList() {
		// Raw values keep Excel date cells as serial numbers, which
		// ParseDate understands.
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		headerIdx := HeaderRowIndex(rows)
		if headerIdx < 0 {
			continue
		}
		all = append(all, RowMaps(rows, headerIdx)...)
	}
	return all, nil
}
