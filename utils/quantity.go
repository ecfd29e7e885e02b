package utils

import (
	"strconv"
	"strings"
)

// ParseQuantity normalizes the "Кол-во" column of the inventory files.
// Numbers are used as-is; the "ПТ" marker and anything unparseable fall
// back to 1.
func ParseQuantity(raw interface{}) int {
	switch v := raw.(type) {
	case nil:
		return 1
	case float64:
		return int(v)
	case int:
		return v
	case string:
		s := strings.TrimSpace(v)
		if s == "" || s == "ПТ" {
			return 1
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return 1
		}
		return n
	default:
		return 1
	}
}
