package ingest

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

type Field string

const (
	FieldDate         Field = "date"
	FieldRevenue      Field = "revenue"
	FieldVisitors     Field = "visitors"
	FieldNewCustomers Field = "new_customers"
	FieldNotes        Field = "notes"
)

// FieldAliases lists accepted header spellings for one logical column in
// lookup order. Matching is done on normalized headers, so case and
// width variants need no entries of their own.
type FieldAliases struct {
	Field   Field
	Aliases []string
}

var DefaultAliases = []FieldAliases{
	{Field: FieldDate, Aliases: []string{"date", "day", "日付", "年月日", "дата"}},
	{Field: FieldRevenue, Aliases: []string{"revenue", "sales", "amount", "売上", "売上高", "売り上げ", "выручка"}},
	{Field: FieldVisitors, Aliases: []string{"visitors", "customers", "guests", "来客数", "客数", "посетители"}},
	{Field: FieldNewCustomers, Aliases: []string{"new_customers", "new", "new_customer", "新規顧客", "新規", "новые клиенты"}},
	{Field: FieldNotes, Aliases: []string{"notes", "note", "memo", "備考", "メモ", "примечания"}},
}

type aliasTable map[Field][]string

func buildAliasTable(sets []FieldAliases) aliasTable {
	t := aliasTable{}
	for _, set := range sets {
		for _, a := range set.Aliases {
			t[set.Field] = append(t[set.Field], normalizeHeader(a))
		}
	}
	return t
}

func headerIndex(headers []string) map[string]int {
	idx := map[string]int{}
	for i, h := range headers {
		key := normalizeHeader(h)
		if _, ok := idx[key]; !ok {
			idx[key] = i
		}
	}
	return idx
}

func getField(rec []string, idx map[string]int, name string) string {
	pos, ok := idx[name]
	if !ok || pos >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[pos])
}

func getFieldAny(rec []string, idx map[string]int, names []string) string {
	for _, name := range names {
		if v := getField(rec, idx, name); v != "" {
			return v
		}
	}
	return ""
}

func normalizeHeader(h string) string {
	h = strings.ReplaceAll(h, "\ufeff", "")
	h = norm.NFKC.String(strings.TrimSpace(h))
	h = cases.Fold().String(h)
	return strings.Join(strings.FieldsFunc(h, func(r rune) bool {
		return r == ' ' || r == '-' || r == '_' || r == '\t'
	}), "_")
}
