// Package ingest turns uploaded sales spreadsheets into canonical sale records.
package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/width"

	"github.com/storepulse/backend/internal/models"
)

var (
	ErrEmpty     = errors.New("csv file is empty")
	ErrMalformed = errors.New("invalid csv format")
)

const (
	ReasonMissingDate = "missing date column"
	ReasonInvalidDate = "invalid date value"
)

type Rejection struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

func (r Rejection) String() string {
	return fmt.Sprintf("Row %d: %s", r.Row, r.Reason)
}

type Result struct {
	Accepted []models.SaleRecord
	Rejected []Rejection
	RowsRead int
}

type Normalizer struct {
	aliases aliasTable
}

func NewNormalizer(sets []FieldAliases) Normalizer {
	return Normalizer{aliases: buildAliasTable(sets)}
}

var defaultNormalizer = NewNormalizer(DefaultAliases)

// Normalize parses data with the default alias table.
func Normalize(data []byte, storeID string) (Result, error) {
	return defaultNormalizer.Normalize(data, storeID)
}

// Normalize parses a delimited table with a header row. Rows without a
// usable date are rejected, including rows whose cells are all empty;
// numeric cells never reject a row. Rejections carry the row's line in
// the file, the header being line 1.
func (n Normalizer) Normalize(data []byte, storeID string) (Result, error) {
	text := decode(data)
	reader := csv.NewReader(strings.NewReader(text))
	reader.Comma = sniffDelimiter(text)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err == io.EOF {
		return Result{}, ErrEmpty
	}
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	index := headerIndex(headers)

	var res Result
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Result{}, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		res.RowsRead++
		row, _ := reader.FieldPos(0)

		dateRaw := getFieldAny(rec, index, n.aliases[FieldDate])
		if dateRaw == "" {
			res.Rejected = append(res.Rejected, Rejection{Row: row, Reason: ReasonMissingDate})
			continue
		}
		date, err := parseDate(dateRaw)
		if err != nil {
			res.Rejected = append(res.Rejected, Rejection{Row: row, Reason: ReasonInvalidDate})
			continue
		}

		sale := models.SaleRecord{
			StoreID:      storeID,
			Date:         date,
			Revenue:      coerceCount(getFieldAny(rec, index, n.aliases[FieldRevenue])),
			Visitors:     coerceCount(getFieldAny(rec, index, n.aliases[FieldVisitors])),
			NewCustomers: coerceCount(getFieldAny(rec, index, n.aliases[FieldNewCustomers])),
		}
		if notes := getFieldAny(rec, index, n.aliases[FieldNotes]); notes != "" {
			sale.Notes = &notes
		}
		res.Accepted = append(res.Accepted, sale)
	}

	if res.RowsRead == 0 {
		return Result{}, ErrEmpty
	}
	return res, nil
}

// Collapse keeps one record per date. Later rows overwrite earlier ones
// while the first-seen order is preserved.
func Collapse(records []models.SaleRecord) []models.SaleRecord {
	pos := map[string]int{}
	out := make([]models.SaleRecord, 0, len(records))
	for _, r := range records {
		key := r.StoreID + "|" + r.Date.String()
		if i, ok := pos[key]; ok {
			out[i] = r
			continue
		}
		pos[key] = len(out)
		out = append(out, r)
	}
	return out
}

func decode(data []byte) string {
	if !utf8.Valid(data) {
		if decoded, err := japanese.ShiftJIS.NewDecoder().Bytes(data); err == nil {
			data = decoded
		}
	}
	return strings.TrimPrefix(string(data), "\ufeff")
}

func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		line = text[:i]
	}
	best, bestCount := ',', strings.Count(line, ",")
	for _, d := range []rune{'\t', ';'} {
		if c := strings.Count(line, string(d)); c > bestCount {
			best, bestCount = d, c
		}
	}
	return best
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006-1-2",
	"2006/1/2",
	"2006.01.02",
	"20060102",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	time.RFC3339,
}

func parseDate(raw string) (models.Date, error) {
	s := width.Narrow.String(strings.TrimSpace(raw))
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return models.NewDate(t), nil
		}
		lastErr = err
	}
	return models.Date{}, lastErr
}

// coerceCount reads the leading integer of a cell after dropping grouping
// separators and currency marks. Anything unreadable or negative is 0.
func coerceCount(raw string) int64 {
	s := width.Narrow.String(strings.TrimSpace(raw))
	s = strings.Map(func(r rune) rune {
		switch r {
		case ',', '_', ' ', '¥', '$', '€', '£', '円':
			return -1
		}
		return r
	}, s)
	if strings.HasPrefix(s, "-") {
		return 0
	}
	s = strings.TrimPrefix(s, "+")
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return v
}
