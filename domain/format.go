package domain

import (
	"math"
	"strconv"
	"strings"
)

// FormatRupees rounds to the nearest rupee and groups digits the Indian way.
// e.g., 800000 -> "₹8,00,000", 1108686.96 -> "₹11,08,687"
func FormatRupees(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-" + FormatRupees(float64(-n))
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return "₹" + s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return "₹" + strings.Join(groups, ",") + "," + tail
}
