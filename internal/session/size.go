package session

import (
	"math"
	"strconv"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB"}

// FormatSize renders a byte count with a 1024-based unit, rounded to two
// decimals with trailing zeros dropped: 1536 -> "1.5 KB", 0 -> "0 Bytes".
func FormatSize(b int64) string {
	if b <= 0 {
		return "0 Bytes"
	}

	i := 0
	v := float64(b)
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}

	v = math.Round(v*100) / 100
	return strconv.FormatFloat(v, 'f', -1, 64) + " " + sizeUnits[i]
}
