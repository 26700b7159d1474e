package dataset

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/chewxy/math32"

	"github.com/born-ml/mlp/internal/nn"
)

// DecodeBits rounds each value to 0 or 1 and reads the result as an integer,
// least significant bit first.
func DecodeBits(bits []float32) int {
	v := 0
	for j, b := range bits {
		if math32.Round(b) >= 1 {
			v |= 1 << j
		}
	}
	return v
}

// Row is the outcome for one example.
type Row struct {
	Input    []float32
	Expected []float32
	Actual   []float32
	OK       bool // every rounded output equals its target
}

// Report is the per-row confirmation of a trained network.
type Report struct {
	Cost   float32
	Rows   []Row
	Passed int
}

// Pass reports whether every row matched.
func (r Report) Pass() bool {
	return r.Passed == len(r.Rows)
}

// Accuracy returns the fraction of matching rows.
func (r Report) Accuracy() float64 {
	if len(r.Rows) == 0 {
		return 0
	}
	return float64(r.Passed) / float64(len(r.Rows))
}

// Confirm runs every example through net and compares the rounded outputs
// with the targets.
func Confirm(net *nn.Network, set nn.TrainingSet) (Report, error) {
	cost, err := net.Cost(set)
	if err != nil {
		return Report{}, fmt.Errorf("confirm: %w", err)
	}

	report := Report{Cost: cost, Rows: make([]Row, 0, set.Rows())}
	inCols, outCols := set.Inputs.Cols(), set.Targets.Cols()
	in, targets := set.Inputs.Data(), set.Targets.Data()

	for i := 0; i < set.Rows(); i++ {
		net.LoadRow(set.Inputs, i)
		net.Forward()

		row := Row{
			Input:    append([]float32(nil), in[i*inCols:(i+1)*inCols]...),
			Expected: append([]float32(nil), targets[i*outCols:(i+1)*outCols]...),
			Actual:   append([]float32(nil), net.Output().Data()...),
			OK:       true,
		}
		for j := range row.Expected {
			if math32.Round(row.Actual[j]) != math32.Round(row.Expected[j]) {
				row.OK = false
				break
			}
		}
		if row.OK {
			report.Passed++
		}
		report.Rows = append(report.Rows, row)
	}
	return report, nil
}

// Formatter renders the input, expected and actual cells of a row.
type Formatter interface {
	Headers() []string
	Cells(r Row) []string
}

// Values prints every input and output value as is.
type Values struct{}

// Headers implements Formatter.
func (Values) Headers() []string { return []string{"in", "exp", "act"} }

// Cells implements Formatter.
func (Values) Cells(r Row) []string {
	return []string{join(r.Input, 'g'), join(r.Expected, 'g'), join(r.Actual, 'f')}
}

// Bits decodes bit-encoded operands and results as integers. Widths gives the
// bit width of each input operand, in column order.
type Bits struct {
	Names  []string
	Widths []int
}

// Headers implements Formatter.
func (b Bits) Headers() []string {
	return append(append([]string(nil), b.Names...), "exp", "act")
}

// Cells implements Formatter.
func (b Bits) Cells(r Row) []string {
	cells := make([]string, 0, len(b.Widths)+2)
	off := 0
	for _, w := range b.Widths {
		cells = append(cells, strconv.Itoa(DecodeBits(r.Input[off:off+w])))
		off += w
	}
	return append(cells,
		strconv.Itoa(DecodeBits(r.Expected)),
		strconv.Itoa(DecodeBits(r.Actual)))
}

// WriteTable writes the report as an aligned table: a status column, the
// formatter's columns and a closing summary line.
func (r Report) WriteTable(w io.Writer, f Formatter) error {
	if f == nil {
		f = Values{}
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "OK")
	for _, h := range f.Headers() {
		fmt.Fprintf(tw, "\t%s", h)
	}
	fmt.Fprintln(tw)

	for _, row := range r.Rows {
		status := "XX"
		if row.OK {
			status = "OK"
		}
		fmt.Fprint(tw, status)
		for _, c := range f.Cells(row) {
			fmt.Fprintf(tw, "\t%s", c)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "cost %g, %d/%d rows correct (%.1f%%)\n",
		r.Cost, r.Passed, len(r.Rows), 100*r.Accuracy())
	return err
}

func join(vals []float32, format byte) string {
	buf := make([]byte, 0, 8*len(vals))
	for i, v := range vals {
		if i > 0 {
			buf = append(buf, ' ')
		}
		prec := -1
		if format == 'f' {
			prec = 3
		}
		buf = strconv.AppendFloat(buf, float64(v), format, prec, 32)
	}
	return string(buf)
}
