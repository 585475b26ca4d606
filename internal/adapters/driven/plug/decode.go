package plug

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/plugdata-labs/plug-cli/internal/core/domain"
)

// decodeTable reads a JSON array of row objects into an ordered table.
//
// encoding/json maps would lose key order, so the array is walked token by
// token: column order is captured from the first row's keys, and later rows
// are aligned by column name. A column first seen in a later row is
// appended; rows are padded so every row stays parallel to the columns.
// Numbers are kept as json.Number to avoid float rounding of wide IDs.
func decodeTable(r io.Reader) (*domain.Table, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, err
	}

	table := &domain.Table{}
	index := make(map[string]int)

	for dec.More() {
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}

		row := make([]any, len(table.Columns))
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, fmt.Errorf("read column name: %w", err)
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("unexpected token %v for column name", keyTok)
			}

			var value any
			if err := dec.Decode(&value); err != nil {
				return nil, fmt.Errorf("read value of %q: %w", key, err)
			}

			col, known := index[key]
			if !known {
				col = len(table.Columns)
				index[key] = col
				table.Columns = append(table.Columns, key)
			}
			for len(row) <= col {
				row = append(row, nil)
			}
			row[col] = value
		}

		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}

	if err := expectDelim(dec, ']'); err != nil {
		return nil, err
	}

	// Pad earlier rows when later rows introduced extra columns.
	for i, row := range table.Rows {
		for len(row) < len(table.Columns) {
			row = append(row, nil)
		}
		table.Rows[i] = row
	}

	return table, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	delim, ok := tok.(json.Delim)
	if !ok || delim != want {
		return fmt.Errorf("expected %q in response, got %v", want, tok)
	}
	return nil
}
