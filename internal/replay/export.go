package replay

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Export serializes replay frames. Unsupported formats and encoding failures
// return (nil, false).
func Export(frames []FullFrame, format string) ([]byte, bool) {
	switch strings.ToLower(format) {
	case FormatJSON:
		if frames == nil {
			frames = []FullFrame{}
		}
		data, err := json.MarshalIndent(frames, "", "  ")
		if err != nil {
			return nil, false
		}
		return data, true
	case FormatCSV:
		return exportCSV(frames)
	default:
		return nil, false
	}
}

func exportCSV(frames []FullFrame) ([]byte, bool) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"t", "x", "y", "vx", "vy", "mode", "hazards"}); err != nil {
		return nil, false
	}
	for _, f := range frames {
		row := []string{
			formatFloat(f.T),
			formatFloat(f.X),
			formatFloat(f.Y),
			formatFloat(f.VX),
			formatFloat(f.VY),
			f.Mode.String(),
			strconv.Itoa(len(f.Hazards)),
		}
		if err := w.Write(row); err != nil {
			return nil, false
		}
	}
	w.Flush()
	if w.Error() != nil {
		return nil, false
	}
	return buf.Bytes(), true
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
