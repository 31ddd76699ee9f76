package render

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/osa1/mmsim/simulation"
)

// PlotOptions parameterizes the gnuplot script.
type PlotOptions struct {
	// CSVPath is a file in the format written by WriteCSV.
	CSVPath string

	// Points is the number of rows in CSVPath; it sets the x range.
	Points int

	Title  string
	Width  int
	Height int
}

func (o PlotOptions) withDefaults() PlotOptions {
	if o.Width <= 0 {
		o.Width = 1200
	}
	if o.Height <= 0 {
		o.Height = 960
	}
	return o
}

var gnuplotScript = template.Must(template.New("plot").Funcs(template.FuncMap{
	"quote": gnuplotQuote,
}).Parse(`set terminal png notransparent rounded size {{.Width}},{{.Height}}

set xtics nomirror
set ytics nomirror

set style line 80 lt 0 lc rgb "#808080"
set border 3 back ls 80
set style line 81 lt 0 lc rgb "#808080" lw 0.5
set grid xtics ytics mxtics mytics back ls 81

set style line 1 lt 1 lc rgb "#A00000" lw 2 pt 7 ps 0.5
set style line 2 lt 1 lc rgb "#00A000" lw 2 pt 11 ps 0.5

set datafile separator ','
set key autotitle columnhead
{{if .Title}}set title {{quote .Title}}
{{end}}
set xlabel "call"
set ylabel "bytes"
set format y "%.0s%cB"

set xrange [0:{{.Points}}]

plot {{quote .CSVPath}} using 1:2 with linespoints ls 1 title "HP", \
     {{quote .CSVPath}} using 1:3 with linespoints ls 2 title "High water"
`))

func gnuplotQuote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

// WriteGnuplot writes a script plotting both series against the call index
// on a shared byte axis.
func WriteGnuplot(w io.Writer, opts PlotOptions) error {
	return errors.Wrap(gnuplotScript.Execute(w, opts.withDefaults()), "executing gnuplot template")
}

// GnuplotBinary is the executable Plot runs.
var GnuplotBinary = "gnuplot"

// Plot renders r as a PNG at out by running gnuplot over temporary data and
// script files.
func Plot(ctx context.Context, r *simulation.Result, out string, title string) error {
	dir, err := os.MkdirTemp("", "mmsim-plot-")
	if err != nil {
		return errors.Wrap(err, "creating temp dir")
	}
	defer os.RemoveAll(dir)

	csvPath := filepath.Join(dir, "series.csv")
	if err := writeFile(csvPath, func(w io.Writer) error { return WriteCSV(w, r) }); err != nil {
		return err
	}
	scriptPath := filepath.Join(dir, "plot.gp")
	opts := PlotOptions{CSVPath: csvPath, Points: r.Len(), Title: title}
	if err := writeFile(scriptPath, func(w io.Writer) error { return WriteGnuplot(w, opts) }); err != nil {
		return err
	}

	// Render next to out so a failed run leaves nothing at out.
	png, err := os.CreateTemp(filepath.Dir(out), ".mmsim-*.png")
	if err != nil {
		return errors.Wrap(err, "creating output")
	}
	defer os.Remove(png.Name())
	defer png.Close()

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, GnuplotBinary, scriptPath)
	cmd.Stdout = png
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.Wrapf(err, "running gnuplot: %s", strings.TrimSpace(stderr.String()))
	}
	if err := png.Close(); err != nil {
		return errors.Wrap(err, "closing output")
	}
	if err := os.Chmod(png.Name(), 0o644); err != nil {
		return errors.Wrap(err, "setting output mode")
	}
	return errors.Wrap(os.Rename(png.Name(), out), "moving output into place")
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return errors.Wrapf(f.Close(), "closing %s", path)
}
