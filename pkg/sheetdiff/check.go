package sheetdiff

import (
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/compare"
	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

// CheckResult is the outcome of comparing a workbook with a stored document.
type CheckResult struct {
	// Workbook is the freshly parsed workbook.
	Workbook *models.WorkbookData
	// Differences lists every divergence, empty on a match.
	Differences []compare.Difference
}

// Matched reports whether the workbook and document are equivalent.
func (r *CheckResult) Matched() bool {
	return len(r.Differences) == 0
}

// Check parses the workbook at xlsxPath and compares it against the JSON
// document at jsonPath. Both files are checked for existence, workbook
// first, before either is read.
func Check(xlsxPath, jsonPath string, opts Options) (*CheckResult, error) {
	for _, path := range []string{xlsxPath, jsonPath} {
		if err := requireFile(path); err != nil {
			return nil, err
		}
	}

	wb, err := Parse(xlsxPath, opts)
	if err != nil {
		return nil, err
	}

	doc, err := LoadDocument(jsonPath)
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		Workbook:    wb,
		Differences: compare.Compare(wb.Value(), doc, opts.compareOptions()),
	}, nil
}
