package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the phrase sheet layout
type ImportConfig struct {
	FilePath       string // Path to the Excel or CSV file
	EnglishColumn  int    // 0-based column with the English text
	KannadaColumn  int    // 0-based column with the Kannada text
	TranslitColumn int    // 0-based column with the transliteration
	SheetName      string // Name of the sheet to import (Excel only)
	StartRow       int    // The row to start importing from (1-based, skips headers)
}

// DefaultImportConfig returns the default phrase sheet layout:
// en / kn / translit columns with one header row
func DefaultImportConfig(filePath string) ImportConfig {
	return ImportConfig{
		FilePath:       filePath,
		EnglishColumn:  0,
		KannadaColumn:  1,
		TranslitColumn: 2,
		SheetName:      "Sheet1",
		StartRow:       2,
	}
}

// PhraseRow is one imported phrase before it gets an id assigned
type PhraseRow struct {
	En       string
	Kn       string
	Translit string
}

// ImportResult holds the outcome of a phrase sheet import
type ImportResult struct {
	TotalProcessed int
	Imported       []PhraseRow
	Errors         []string
}

// ImportPhrases reads phrase rows from an Excel or CSV file
func ImportPhrases(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		return importFromCSV(config)
	}
	return importFromExcel(config)
}

// importFromExcel reads phrase rows from an Excel sheet
func importFromExcel(config ImportConfig) (*ImportResult, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(config.SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	result := &ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		// Skip header rows
		if i < config.StartRow-1 {
			continue
		}
		result.TotalProcessed++
		processRow(row, config, result, i+1)
	}
	return result, nil
}

// importFromCSV reads phrase rows from a CSV file
func importFromCSV(config ImportConfig) (*ImportResult, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	result := &ImportResult{Errors: make([]string, 0)}
	rowNum := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %v", err)
		}

		rowNum++
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++
		processRow(row, config, result, rowNum)
	}
	return result, nil
}

// processRow validates one sheet row and appends it to the result
func processRow(row []string, config ImportConfig, result *ImportResult, rowNum int) {
	en := cell(row, config.EnglishColumn)
	kn := cell(row, config.KannadaColumn)
	translit := cell(row, config.TranslitColumn)

	if en == "" && kn == "" {
		// Blank row, not worth an error
		return
	}
	if en == "" || kn == "" {
		result.Errors = append(result.Errors, fmt.Sprintf("Row %d: needs both English and Kannada text", rowNum))
		return
	}

	result.Imported = append(result.Imported, PhraseRow{En: en, Kn: kn, Translit: translit})
}

func cell(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
