package utils

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortByCollatedName orders items in place by a name key using
// locale-aware, numeric-aware collation. Catalog names are Russian and
// frequently carry numeric suffixes ("Кабинет 2" must sort before
// "Кабинет 10"), which plain byte ordering gets wrong.
func SortByCollatedName[T any](items []T, name func(T) string) {
	c := collate.New(language.Russian, collate.Numeric)
	sort.SliceStable(items, func(i, j int) bool {
		return c.CompareString(name(items[i]), name(items[j])) < 0
	})
}
