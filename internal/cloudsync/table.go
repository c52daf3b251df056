package cloudsync

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// DecodeTable mengubah body feed menjadi baris sel mentah (header ikut).
func DecodeTable(data []byte, format, delimiter string) ([][]string, error) {
	switch format {
	case FormatXLSX:
		return decodeXLSX(data)
	case FormatCSV, "":
		return decodeCSV(data, delimiter), nil
	default:
		return nil, fmt.Errorf("format feed tidak dikenali: %s", format)
	}
}

// decodeCSV sengaja split polos per baris lalu per delimiter; tanda kutip dibuang per sel saat parse.
func decodeCSV(data []byte, delimiter string) [][]string {
	if delimiter == "" {
		delimiter = ","
	}
	lines := strings.Split(string(data), "\n")
	rows := make([][]string, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, strings.Split(strings.TrimRight(line, "\r"), delimiter))
	}
	return rows
}

func decodeXLSX(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("buka xlsx: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("xlsx tidak punya sheet")
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("baca sheet %s: %w", sheet, err)
	}
	return rows, nil
}
