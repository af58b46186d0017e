package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/compare"
)

// DefaultMaxDiffs is how many differences a report lists before
// summarising the rest.
const DefaultMaxDiffs = 50

// WriteReport prints the outcome of a check. On a match it prints one
// status line; otherwise a header followed by up to maxDiffs differences
// and a count of the remainder. maxDiffs <= 0 lists every difference.
func WriteReport(w io.Writer, xlsxPath, jsonPath string, diffs []compare.Difference, maxDiffs int) error {
	if len(diffs) == 0 {
		_, err := fmt.Fprintf(w, "OK: %s matches %s\n", xlsxPath, jsonPath)
		return err
	}

	if _, err := fmt.Fprintln(w, "Mismatch between XLSX and JSON:"); err != nil {
		return err
	}

	shown := diffs
	if maxDiffs > 0 && len(diffs) > maxDiffs {
		shown = diffs[:maxDiffs]
	}
	for _, d := range shown {
		if _, err := fmt.Fprintf(w, "- %s\n", d); err != nil {
			return err
		}
	}
	if rest := len(diffs) - len(shown); rest > 0 {
		if _, err := fmt.Fprintf(w, "... %d more\n", rest); err != nil {
			return err
		}
	}
	return nil
}

// WriteMissing prints the message for a missing input file.
func WriteMissing(w io.Writer, path string) error {
	_, err := fmt.Fprintf(w, "Missing %s\n", path)
	return err
}
