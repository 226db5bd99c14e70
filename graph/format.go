package graph

import "strconv"

// fmtFloat renders v with full round-trip precision so equal floats always
// produce identical signature text.
func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
