package reader

import (
	"encoding/csv"
	"io"

	"github.com/DjordjeVuckovic/sportsmap/internal/domain"
)

// CSVReader turns a CSV stream into source records: object-shaped when the
// file has a header row, positional otherwise.
type CSVReader struct {
	reader    io.Reader
	hasHeader bool
}

type CSVOption func(*CSVReader)

// WithoutHeader treats every row as data, producing positional records.
func WithoutHeader() CSVOption {
	return func(cr *CSVReader) {
		cr.hasHeader = false
	}
}

func NewCSVReader(reader io.Reader, opts ...CSVOption) *CSVReader {
	cr := &CSVReader{
		reader:    reader,
		hasHeader: true,
	}
	for _, opt := range opts {
		opt(cr)
	}
	return cr
}

// Read consumes the whole stream into source records.
func (cr *CSVReader) Read() ([]domain.SourceRecord, error) {
	csvReader := csv.NewReader(cr.reader)
	csvReader.FieldsPerRecord = -1

	var headers []string
	if cr.hasHeader {
		row, err := csvReader.Read()
		if err != nil {
			return nil, err
		}
		headers = row
	}

	var records []domain.SourceRecord
	for {
		row, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		records = append(records, toRecord(headers, row))
	}

	return records, nil
}

func toRecord(headers []string, row []string) domain.SourceRecord {
	if headers == nil {
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = v
		}
		return domain.NewPositionalRecord(values)
	}

	fields := make(map[string]any, len(headers))
	for i, h := range headers {
		if i < len(row) {
			fields[h] = row[i]
		}
	}
	return domain.NewObjectRecord(fields)
}
