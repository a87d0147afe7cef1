package report

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnsupportedText is returned when no UTF-8 font is configured and the
// document holds characters outside cp1252, the core fonts' encoding.
var ErrUnsupportedText = errors.New("text not representable without a UTF-8 font")

var defaultTimestamp = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

type RenderOptions struct {
	// FontPath points at a UTF-8 TrueType font. Without it the core
	// Helvetica font is used, which only covers Latin-1.
	FontPath string
	// Timestamp is stamped into the document info dictionary.
	Timestamp time.Time
}

const (
	lineHeight = 6.0
	fontFamily = "body"
)

// RenderPDF draws doc onto A4 pages. Output is byte-identical for equal
// inputs.
func RenderPDF(doc Document, opts RenderOptions) ([]byte, error) {
	ts := opts.Timestamp
	if ts.IsZero() {
		ts = defaultTimestamp
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(false)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(ts)
	pdf.SetModificationDate(ts)
	pdf.SetMargins(18, 18, 18)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath == "" {
		if err := checkCoreText(doc); err != nil {
			return nil, err
		}
	} else {
		pdf.AddUTF8Font(fontFamily, "", opts.FontPath)
		pdf.AddUTF8Font(fontFamily, "B", opts.FontPath)
		family = fontFamily
		tr = func(s string) string { return s }
	}
	pdf.SetTitle(doc.Title+" "+doc.PeriodLabel, true)
	pdf.AddPage()

	heading := func(text string) {
		pdf.Ln(3)
		pdf.SetFont(family, "B", 13)
		pdf.MultiCell(0, lineHeight+1, tr(text), "", "L", false)
		pdf.SetFont(family, "", 11)
	}
	para := func(text string) {
		pdf.MultiCell(0, lineHeight, tr(text), "", "L", false)
	}

	pdf.SetFont(family, "B", 18)
	pdf.MultiCell(0, 9, tr(doc.Title), "", "L", false)
	pdf.SetFont(family, "", 11)
	para("Store: " + doc.StoreName)
	para("Industry: " + doc.Industry)
	para("Period: " + doc.PeriodLabel)

	heading(HeadingSummary)
	para(doc.Summary)

	for _, s := range doc.Sections {
		heading(s.Heading)
		for i, item := range s.Items {
			para(strconv.Itoa(i+1) + ". " + item)
		}
	}

	heading(HeadingForecast)
	para("Projected revenue: " + doc.Forecast.Revenue)
	para("Projected visitors: " + doc.Forecast.Visitors)
	para("Reasoning: " + doc.Forecast.Reasoning)

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// checkCoreText rejects documents the cp1252 translator would silently
// degrade.
func checkCoreText(doc Document) error {
	texts := []string{doc.Title, doc.StoreName, doc.Industry, doc.PeriodLabel, doc.Summary,
		doc.Forecast.Revenue, doc.Forecast.Visitors, doc.Forecast.Reasoning}
	for _, s := range doc.Sections {
		texts = append(texts, s.Heading)
		texts = append(texts, s.Items...)
	}
	enc := charmap.Windows1252.NewEncoder()
	for _, t := range texts {
		if _, err := enc.String(t); err != nil {
			return fmt.Errorf("%w: %q", ErrUnsupportedText, t)
		}
	}
	return nil
}
