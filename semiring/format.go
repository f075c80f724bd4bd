package semiring

import "strconv"

// formatFloat renders a float64 the way the text FST format expects:
// the shortest decimal string that round-trips exactly.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
