package excel

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/espbot/pkg/models"
	"github.com/xuri/excelize/v2"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath             string // Path to the Excel or CSV file
	SpanishColumn        string // Column with the Spanish text
	EnglishColumn        string // Column with the English text
	CategoryColumn       string // Column with the category
	DifficultyColumn     string // Column with the difficulty (easy/medium/hard)
	PronunciationColumn  string // Column with the pronunciation hint
	ExampleSpanishColumn string // Column with an example sentence in Spanish
	ExampleEnglishColumn string // Column with the example's English translation
	SheetName            string // Name of the sheet to import
	StartRow             int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(filePath string) ImportConfig {
	return ImportConfig{
		FilePath:             filePath,
		SpanishColumn:        "A",
		EnglishColumn:        "B",
		CategoryColumn:       "C",
		DifficultyColumn:     "D",
		PronunciationColumn:  "E",
		ExampleSpanishColumn: "F",
		ExampleEnglishColumn: "G",
		SheetName:            "Sheet1",
		StartRow:             2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Cards          []models.Flashcard
	Skipped        int
	Errors         []string
}

// ImportCards reads supplemental flashcards from an Excel or CSV file. Card
// IDs are not assigned here; the catalog assigns them when merging. Row
// errors are collected, never fatal.
func ImportCards(config ImportConfig) (*ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(config.FilePath))

	if ext == ".csv" {
		return importFromCSV(config)
	}

	return importFromExcel(config)
}

// importFromExcel imports cards from an Excel file
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
		if err := processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", i+1, err))
		}
	}

	return result, nil
}

// importFromCSV imports cards from a CSV file using the same column layout
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
		if err := processRow(row, config, result); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

// processRow turns a single row into a flashcard
func processRow(row []string, config ImportConfig, result *ImportResult) error {
	cell := func(column string) string {
		if column == "" {
			return ""
		}
		if idx := columnToIndex(column); idx >= 0 && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	spanish := cell(config.SpanishColumn)
	english := cell(config.EnglishColumn)
	if spanish == "" || english == "" {
		result.Skipped++
		return nil
	}

	category := cell(config.CategoryColumn)
	if category == "" {
		category = "imported"
	}

	card := models.Flashcard{
		Spanish:       spanish,
		English:       english,
		Category:      strings.ToLower(category),
		Difficulty:    parseDifficulty(cell(config.DifficultyColumn)),
		Pronunciation: cell(config.PronunciationColumn),
	}

	if exampleSpanish := cell(config.ExampleSpanishColumn); exampleSpanish != "" {
		card.Examples = append(card.Examples, models.Example{
			Spanish: exampleSpanish,
			English: cell(config.ExampleEnglishColumn),
		})
	}

	result.Cards = append(result.Cards, card)
	return nil
}

// parseDifficulty maps a cell value onto the difficulty enum, defaulting to
// medium for anything unrecognized
func parseDifficulty(value string) models.Difficulty {
	switch strings.ToLower(value) {
	case "easy", "1":
		return models.DifficultyEasy
	case "hard", "3":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

// columnToIndex converts a column letter ("A", "B", ... "AA") to a 0-based index
func columnToIndex(column string) int {
	column = strings.ToUpper(strings.TrimSpace(column))
	index := 0
	for _, r := range column {
		if r < 'A' || r > 'Z' {
			return -1
		}
		index = index*26 + int(r-'A') + 1
	}
	return index - 1
}
