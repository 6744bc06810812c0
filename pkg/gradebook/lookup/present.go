// Package lookup presents converted records to students, on the command line
// and over HTTP.
package lookup

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/config"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"
)

// Placeholder is shown for grade cells without a value.
const Placeholder = "-"

// Field is one labelled value of a presented record.
type Field struct {
	Column string `json:"column"`
	Label  string `json:"label"`
	Value  string `json:"value"`
}

// View is a record laid out for display: identity fields first, then grades.
type View struct {
	Header []Field `json:"header"`
	Grades []Field `json:"grades"`
}

// Present lays out rec according to cfg. The header lists HeaderColumns in
// order. Grade columns are every column not in InfoColumns: those listed in
// Priority first, in that order, then the rest sorted by Vietnamese collation.
func Present(rec *models.Record, cfg config.LookupConfig) View {
	var view View
	for _, col := range cfg.HeaderColumns {
		view.Header = append(view.Header, Field{Column: col, Label: label(col, cfg.Labels), Value: rec.String(col)})
	}

	info := make(map[string]bool, len(cfg.InfoColumns))
	for _, col := range cfg.InfoColumns {
		info[col] = true
	}

	var grades []string
	for _, k := range rec.Keys() {
		if !info[k] {
			grades = append(grades, k)
		}
	}
	sortGrades(grades, cfg.Priority)

	for _, k := range grades {
		v := rec.String(k)
		if v == "" {
			v = Placeholder
		}
		view.Grades = append(view.Grades, Field{Column: k, Label: label(k, cfg.Labels), Value: v})
	}
	return view
}

// NormKey removes whitespace and upper-cases a column name, so "tx 1" matches "TX1".
func NormKey(k string) string {
	return strings.ToUpper(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, k))
}

func label(col string, labels map[string]string) string {
	if l, ok := labels[col]; ok {
		return l
	}
	if l, ok := labels[NormKey(col)]; ok {
		return l
	}
	return col
}

// unranked sorts after every priority column.
const unranked = 999

func sortGrades(keys, priority []string) {
	rank := make(map[string]int, len(priority))
	for i, p := range priority {
		if _, ok := rank[NormKey(p)]; !ok {
			rank[NormKey(p)] = i
		}
	}
	rankOf := func(k string) int {
		if r, ok := rank[NormKey(k)]; ok {
			return r
		}
		return unranked
	}

	coll := collate.New(language.Vietnamese)
	sort.SliceStable(keys, func(i, j int) bool {
		ri, rj := rankOf(keys[i]), rankOf(keys[j])
		if ri != unranked || rj != unranked {
			return ri < rj
		}
		return coll.CompareString(keys[i], keys[j]) < 0
	})
}
