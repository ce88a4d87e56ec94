// reader.go
package file

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/tealeg/xlsx"
	"github.com/xuri/excelize/v2"
)

// naMarkers are the raw tokens treated as missing on load. The empty string
// is included so blank CSV cells become true NA values, not empty strings.
var naMarkers = []string{"", "NA", "NaN", "<nil>"}

// ReadCSV loads a delimited incident file into a DataFrame. Every column is
// loaded as a string series; type coercion is the cleaning pipeline's job.
// The GSAF export is semicolon-delimited.
func ReadCSV(path string, delimiter rune) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSVFrom(f, delimiter)
}

// ReadCSVFrom is ReadCSV over an arbitrary reader, used for attachment
// payloads that never touch disk.
func ReadCSVFrom(r io.Reader, delimiter rune) (dataframe.DataFrame, error) {
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(delimiter),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(naMarkers),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse dataset: %w", df.Error())
	}
	return df, nil
}

// WriteCSV writes the cleaned table as a comma-delimited file with header.
func WriteCSV(df dataframe.DataFrame, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output %s: %w", path, err)
	}
	defer f.Close()

	if err := df.WriteCSV(f, dataframe.WriteHeader(true)); err != nil {
		return fmt.Errorf("write dataset: %w", err)
	}
	return nil
}

// ReadXLSX loads a spreadsheet export of the dataset. The first row is the
// header.
func ReadXLSX(path, sheetName string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenFile(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open xlsx %s: %w", path, err)
	}
	return sheetToDataFrame(xlFile, sheetName)
}

// ReadXLSXBytes is ReadXLSX over an in-memory payload.
func ReadXLSXBytes(data []byte, sheetName string) (dataframe.DataFrame, error) {
	xlFile, err := xlsx.OpenBinary(data)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open xlsx payload: %w", err)
	}
	return sheetToDataFrame(xlFile, sheetName)
}

func sheetToDataFrame(xlFile *xlsx.File, sheetName string) (dataframe.DataFrame, error) {
	if len(xlFile.Sheets) == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("workbook has no sheets")
	}
	sheet, ok := xlFile.Sheet[sheetName]
	if !ok {
		sheet = xlFile.Sheets[0]
	}
	if len(sheet.Rows) < 2 {
		return dataframe.DataFrame{}, fmt.Errorf("sheet %s has no data rows", sheet.Name)
	}

	var headers []string
	for _, cell := range sheet.Rows[0].Cells {
		headers = append(headers, cell.String())
	}

	columns := make([][]string, len(headers))
	for i := range columns {
		columns[i] = make([]string, 0, len(sheet.Rows)-1)
	}
	for _, row := range sheet.Rows[1:] {
		for i := range headers {
			v := ""
			if i < len(row.Cells) {
				v = row.Cells[i].String()
			}
			if v == "" {
				v = "NaN"
			}
			columns[i] = append(columns[i], v)
		}
	}

	seriesList := make([]series.Series, len(headers))
	for i, name := range headers {
		seriesList[i] = series.New(columns[i], series.String, name)
	}

	df := dataframe.New(seriesList...)
	if df.Error() != nil {
		return dataframe.DataFrame{}, fmt.Errorf("convert sheet %s: %w", sheet.Name, df.Error())
	}
	return df, nil
}

// SaveToExcel writes the cleaned table to a single-sheet workbook.
func SaveToExcel(df dataframe.DataFrame, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Sheet1"

	colNames := df.Names()
	for i, name := range colNames {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
	}

	for rowIdx := 0; rowIdx < df.Nrow(); rowIdx++ {
		for colIdx, colName := range colNames {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			el := df.Col(colName).Elem(rowIdx)
			if el.IsNA() {
				continue
			}
			f.SetCellValue(sheetName, cell, el.String())
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook %s: %w", path, err)
	}
	return nil
}

// DetectDelimiter sniffs whether a raw payload uses semicolons or commas by
// counting occurrences in the header line.
func DetectDelimiter(data []byte) rune {
	header := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		header = data[:i]
	}
	if bytes.Count(header, []byte{';'}) >= bytes.Count(header, []byte{','}) {
		return ';'
	}
	return ','
}
