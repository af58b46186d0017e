// Package compare walks two documents and reports where they diverge.
package compare

import (
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/ukaji3/sheetdiff-go/pkg/sheetdiff/models"
)

// DefaultTolerance is the absolute tolerance for numeric equality.
const DefaultTolerance = 1e-9

// DiffKind classifies a Difference.
type DiffKind string

const (
	// Missing is a key present on the left only.
	Missing DiffKind = "missing"
	// Extra is a key present on the right only.
	Extra DiffKind = "extra"
	// LengthMismatch is a pair of arrays of different length.
	LengthMismatch DiffKind = "length"
	// ValueMismatch is a pair of unequal values.
	ValueMismatch DiffKind = "value"
)

// Difference is one divergence between the left and right document.
type Difference struct {
	Kind DiffKind
	// Path locates the difference, e.g. /sheets/Sheet1/rows[3]/Score.
	Path  string
	Left  string
	Right string
}

// String renders the difference as a report line.
func (d Difference) String() string {
	switch d.Kind {
	case Missing:
		return "Missing in JSON: " + d.Path
	case Extra:
		return "Extra in JSON: " + d.Path
	case LengthMismatch:
		return fmt.Sprintf("Length mismatch at %s: %s vs %s", d.Path, d.Left, d.Right)
	}
	return fmt.Sprintf("Value mismatch at %s: %s vs %s", d.Path, d.Left, d.Right)
}

// Options configures a comparison.
type Options struct {
	// Tolerance is the absolute tolerance for numbers. Negative values
	// are treated as zero.
	Tolerance float64
}

// Compare returns the differences between left (the parsed workbook) and
// right (the stored document). An empty result means they are equivalent.
func Compare(left, right models.Value, opts Options) []Difference {
	c := comparer{tolerance: math.Max(opts.Tolerance, 0)}
	c.walk(left, right, "")
	return c.diffs
}

type comparer struct {
	tolerance float64
	diffs     []Difference
}

func (c *comparer) add(d Difference) {
	c.diffs = append(c.diffs, d)
}

func (c *comparer) walk(a, b models.Value, path string) {
	switch {
	case a.Kind() == models.KindObject && b.Kind() == models.KindObject:
		c.walkObjects(a, b, path)
	case a.Kind() == models.KindArray && b.Kind() == models.KindArray:
		c.walkArrays(a, b, path)
	case a.Kind() == models.KindNumber && b.Kind() == models.KindNumber:
		if numberDistance(a, b) > c.tolerance {
			c.add(Difference{Kind: ValueMismatch, Path: path, Left: a.String(), Right: b.String()})
		}
	default:
		if !a.Equal(b) {
			c.add(Difference{Kind: ValueMismatch, Path: path, Left: a.String(), Right: b.String()})
		}
	}
}

func (c *comparer) walkObjects(a, b models.Value, path string) {
	var onlyA, onlyB, both []string
	for _, m := range a.Members() {
		if _, ok := b.Get(m.Key); ok {
			both = append(both, m.Key)
		} else {
			onlyA = append(onlyA, m.Key)
		}
	}
	for _, m := range b.Members() {
		if _, ok := a.Get(m.Key); !ok {
			onlyB = append(onlyB, m.Key)
		}
	}
	sort.Strings(onlyA)
	sort.Strings(onlyB)
	sort.Strings(both)

	for _, k := range onlyA {
		c.add(Difference{Kind: Missing, Path: path + "/" + k})
	}
	for _, k := range onlyB {
		c.add(Difference{Kind: Extra, Path: path + "/" + k})
	}
	for _, k := range both {
		av, _ := a.Get(k)
		bv, _ := b.Get(k)
		c.walk(av, bv, path+"/"+k)
	}
}

func (c *comparer) walkArrays(a, b models.Value, path string) {
	ai, bi := a.Items(), b.Items()
	if len(ai) != len(bi) {
		c.add(Difference{
			Kind:  LengthMismatch,
			Path:  path,
			Left:  strconv.Itoa(len(ai)),
			Right: strconv.Itoa(len(bi)),
		})
	}
	n := min(len(ai), len(bi))
	for i := 0; i < n; i++ {
		c.walk(ai[i], bi[i], path+"["+strconv.Itoa(i)+"]")
	}
}

// numberDistance is the absolute difference of two numbers. Integer
// pairs are subtracted exactly so values beyond 2^53 stay distinct.
func numberDistance(a, b models.Value) float64 {
	if a.IsInteger() && b.IsInteger() {
		x, y := a.AsInt(), b.AsInt()
		if x > y {
			x, y = y, x
		}
		return float64(uint64(y) - uint64(x))
	}
	return math.Abs(a.AsFloat() - b.AsFloat())
}
