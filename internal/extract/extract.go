// Package extract turns uploaded file bytes into plain text for prompt
// consumption. It is the leaf of the pipeline: no external calls, no state.
package extract

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/charmap"
)

const (
	// BeginJSONMarker and EndJSONMarker wrap passthrough JSON content so the
	// profile compiler can take its direct-parse shortcut.
	BeginJSONMarker = "-----BEGIN PROFILE JSON-----"
	EndJSONMarker   = "-----END PROFILE JSON-----"

	errorTextPrefix = "[content extraction failed]"
)

// Error is the single failure kind for this package: undecodable bytes, an
// empty result, or an unreadable container all end up here.
type Error struct {
	FileType string
	Cause    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s %s: %s", errorTextPrefix, e.FileType, e.Cause)
}

// IsErrorText reports whether the text is a rendered extraction failure.
// Downstream steps use it to short-circuit instead of prompting on a known-bad
// payload.
func IsErrorText(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), errorTextPrefix)
}

// FileType returns the declared type for a filename. Dispatch is by extension
// only, case-insensitive. Unrecognized extensions degrade to txt handling.
func FileType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "pdf", "docx", "xlsx", "json", "csv":
		return ext
	default:
		return "txt"
	}
}

// Extract produces plain text from raw file bytes. It never panics and never
// returns an empty success: a whitespace-only result is an *Error.
func Extract(data []byte, filename string) (string, error) {
	fileType := FileType(filename)

	var (
		text string
		err  error
	)

	switch fileType {
	case "pdf":
		text, err = extractPDF(data)
	case "docx":
		text, err = extractDocx(data)
	case "xlsx":
		text, err = extractXLSX(data)
	case "csv":
		text, err = extractCSV(data)
	case "json":
		payload := strings.TrimSpace(decodeText(data))
		if payload == "" {
			return "", &Error{FileType: fileType, Cause: "no text content found"}
		}
		text = fmt.Sprintf("%s\n%s\n%s", BeginJSONMarker, payload, EndJSONMarker)
	default:
		text = decodeText(data)
	}

	if err != nil {
		return "", &Error{FileType: fileType, Cause: err.Error()}
	}

	if strings.TrimSpace(text) == "" {
		return "", &Error{FileType: fileType, Cause: "no text content found"}
	}

	return text, nil
}

// decodeText treats bytes as UTF-8 with a Latin-1 fallback. Latin-1 decoding
// cannot fail, so this path always yields a string.
func decodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

func extractPDF(data []byte) (text string, err error) {
	// The pdf reader panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("read pdf: %w", err)
	}

	var builder strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		// A page yielding no text contributes nothing; that is not an error.
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil || strings.TrimSpace(pageText) == "" {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(pageText)
	}

	return builder.String(), nil
}

func extractDocx(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer doc.Close()

	return doc.Editable().GetContent(), nil
}

func extractCSV(data []byte) (string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse csv: %w", err)
		}
		records = append(records, record)
	}

	return flattenRecords(records), nil
}

func extractXLSX(data []byte) (string, error) {
	book, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("parse xlsx: %w", err)
	}
	defer book.Close()

	var builder strings.Builder
	for _, sheet := range book.GetSheetList() {
		rows, err := book.GetRows(sheet)
		if err != nil {
			return "", fmt.Errorf("read sheet %q: %w", sheet, err)
		}

		flattened := flattenRecords(rows)
		if flattened == "" {
			continue
		}

		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(fmt.Sprintf("Sheet: %s\n%s", sheet, flattened))
	}

	return builder.String(), nil
}

// flattenRecords renders tabular rows as header-tagged lines so the
// generation service sees labeled values instead of bare cells.
func flattenRecords(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	header := records[0]

	var builder strings.Builder
	for i, record := range records {
		if i == 0 {
			continue
		}

		parts := make([]string, 0, len(record))
		for j, cell := range record {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if j < len(header) && strings.TrimSpace(header[j]) != "" {
				parts = append(parts, fmt.Sprintf("%s: %s", strings.TrimSpace(header[j]), cell))
			} else {
				parts = append(parts, cell)
			}
		}

		if len(parts) == 0 {
			continue
		}
		if builder.Len() > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(strings.Join(parts, " | "))
	}

	// A lone header row still carries signal.
	if builder.Len() == 0 {
		return strings.TrimSpace(strings.Join(header, " | "))
	}

	return builder.String()
}
