package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByCollatedName(t *testing.T) {
	names := []string{
		"Кабинет 10",
		"Аптека",
		"Кабинет 2",
		"Травмпункт",
	}

	SortByCollatedName(names, func(s string) string { return s })

	// Numeric-aware: 2 before 10; alphabetical otherwise.
	assert.Equal(t, []string{"Аптека", "Кабинет 2", "Кабинет 10", "Травмпункт"}, names)
}

func TestSortByCollatedNameIsStable(t *testing.T) {
	type dept struct {
		name string
		id   int
	}
	items := []dept{{"Хирургия", 1}, {"Аптека", 2}, {"Хирургия", 3}}

	SortByCollatedName(items, func(d dept) string { return d.name })

	assert.Equal(t, []dept{{"Аптека", 2}, {"Хирургия", 1}, {"Хирургия", 3}}, items)
}
