// Package task contains the named plot configurations of facetplot and
// runs them into image files.
package task

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vdobler/facetplot"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"
	"gopkg.in/yaml.v3"
)

// ErrUnknownTask is returned by Lookup for names which are neither
// built in nor defined in a task file.
var ErrUnknownTask = errors.New("unknown task")

var logger = zap.NewNop()

// SetLogger sets the logger used by this package. A nil logger
// disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// Task is a named set of figures drawn from one input file.
type Task struct {
	Name string `yaml:"name"`

	// Input is the JSON file relative to the input directory. Empty
	// means "<Name>.json".
	Input string `yaml:"input"`

	// Theme of all figures, nil means facetplot.DefaultTheme.
	Theme *facetplot.Theme `yaml:"theme"`

	Figures []Figure `yaml:"figures"`
}

// InputFile returns the name of the JSON file t reads.
func (t Task) InputFile() string {
	if t.Input != "" {
		return t.Input
	}
	return t.Name + ".json"
}

func (t Task) theme() facetplot.Theme {
	if t.Theme == nil {
		return facetplot.DefaultTheme
	}
	return *t.Theme
}

// Figure is one faceted plot of a task.
type Figure struct {
	// Width and Height in inches.
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`

	// Filters select the records to plot; all must match.
	Filters []Filter `yaml:"filters"`

	X       string   `yaml:"x"`
	Y       string   `yaml:"y"`
	Lines   []string `yaml:"lines"`
	Columns []string `yaml:"columns"`
	Rows    []string `yaml:"rows"`

	XScale string `yaml:"xScale"` // "linear" (default) or "log"
	YScale string `yaml:"yScale"`
	XLabel string `yaml:"xLabel"`
	YLabel string `yaml:"yLabel"`

	// FreeScale is "", "x", "y" or "xy", see facetplot.Faceting.
	FreeScale string `yaml:"freeScale"`
}

const (
	defaultWidth  = 6.4
	defaultHeight = 4.8
)

func (f Figure) size() (w, h vg.Length) {
	wi, hi := f.Width, f.Height
	if wi <= 0 {
		wi = defaultWidth
	}
	if hi <= 0 {
		hi = defaultHeight
	}
	return vg.Length(wi) * vg.Inch, vg.Length(hi) * vg.Inch
}

// Plot sets up the plot of f for the records in df.
func (f Figure) Plot(df *facetplot.DataFrame, theme facetplot.Theme) (*facetplot.Plot, error) {
	for _, flt := range f.Filters {
		var err error
		if df, err = flt.Apply(df); err != nil {
			return nil, err
		}
	}
	xs, err := facetplot.ParseScale(f.XScale)
	if err != nil {
		return nil, err
	}
	ys, err := facetplot.ParseScale(f.YScale)
	if err != nil {
		return nil, err
	}
	return &facetplot.Plot{
		Data: df,
		Aes: facetplot.AesMapping{
			"x":     f.X,
			"y":     f.Y,
			"group": strings.Join(f.Lines, ","),
		},
		Faceting: facetplot.Faceting{
			Rows:      strings.Join(f.Rows, ","),
			Columns:   strings.Join(f.Columns, ","),
			FreeScale: f.FreeScale,
		},
		Scales: map[string]*facetplot.ScaleTransform{"x": xs, "y": ys},
		Labels: map[string]string{"x": f.XLabel, "y": f.YLabel},
		Theme:  theme,
	}, nil
}

// Filter keeps (Op "==") or drops (Op "!=") the records whose Field
// equals Value. Value is interpreted by facetplot.ParseValue so "64"
// matches the number 64.
type Filter struct {
	Field string `yaml:"field"`
	Op    string `yaml:"op"`
	Value string `yaml:"value"`
}

func (f Filter) String() string { return f.Field + f.op() + f.Value }

func (f Filter) op() string {
	if f.Op == "" {
		return "=="
	}
	return f.Op
}

// Apply returns the records of df passing f.
func (f Filter) Apply(df *facetplot.DataFrame) (*facetplot.DataFrame, error) {
	v := facetplot.ParseValue(f.Value)
	switch f.op() {
	case "==":
		return facetplot.Filter(df, f.Field, v)
	case "!=":
		return facetplot.Exclude(df, f.Field, v)
	}
	return nil, fmt.Errorf("filter %s: unknown operator %q", f, f.Op)
}

// -------------------------------------------------------------------------
// Task files and lookup

type file struct {
	Tasks []Task `yaml:"tasks"`
}

// Load reads additional tasks from the YAML file at path.
func Load(path string) ([]Task, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f file
	if err := yaml.Unmarshal(buf, &f); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	for i, t := range f.Tasks {
		if t.Name == "" {
			return nil, fmt.Errorf("%s: task %d has no name", path, i+1)
		}
		if len(t.Figures) == 0 {
			return nil, fmt.Errorf("%s: task %q has no figures", path, t.Name)
		}
	}
	logger.Debug("loaded task file", zap.String("path", path), zap.Int("tasks", len(f.Tasks)))
	return f.Tasks, nil
}

// Lookup finds the task called name. Tasks in extra take precedence
// over the built-in ones.
func Lookup(name string, extra []Task) (Task, error) {
	for _, t := range extra {
		if t.Name == name {
			return t, nil
		}
	}
	for _, t := range Builtin {
		if t.Name == name {
			return t, nil
		}
	}
	return Task{}, fmt.Errorf("%w %q, known tasks: %s",
		ErrUnknownTask, name, strings.Join(Names(extra), ", "))
}

// Names returns the sorted names of the built-in tasks and of extra.
func Names(extra []Task) []string {
	seen := make(map[string]bool)
	var names []string
	for _, ts := range [][]Task{Builtin, extra} {
		for _, t := range ts {
			if !seen[t.Name] {
				seen[t.Name] = true
				names = append(names, t.Name)
			}
		}
	}
	sort.Strings(names)
	return names
}

// -------------------------------------------------------------------------
// Running

// Options control where Run reads and writes.
type Options struct {
	Dir    string // directory of the input file, default "."
	Out    string // output directory, default "."
	Format string // image format, default "png"
}

func (o Options) withDefaults() Options {
	if o.Dir == "" {
		o.Dir = "."
	}
	if o.Out == "" {
		o.Out = "."
	}
	if o.Format == "" {
		o.Format = "png"
	}
	return o
}

// Output returns the path of figure i (counting from 0) of t.
func (o Options) Output(t Task, i int) string {
	o = o.withDefaults()
	return filepath.Join(o.Out, fmt.Sprintf("%s-%d.%s", t.Name, i+1, o.Format))
}

// Run draws all figures of t and returns the written files.
func Run(ctx context.Context, t Task, opts Options) ([]string, error) {
	opts = opts.withDefaults()
	input := filepath.Join(opts.Dir, t.InputFile())
	df, err := facetplot.LoadJSON(input)
	if err != nil {
		return nil, fmt.Errorf("task %s: %w", t.Name, err)
	}
	if err := os.MkdirAll(opts.Out, 0o755); err != nil {
		return nil, fmt.Errorf("task %s: %w", t.Name, err)
	}
	logger.Info("running task",
		zap.String("task", t.Name),
		zap.String("input", input),
		zap.Int("records", df.N),
		zap.Int("figures", len(t.Figures)))

	var written []string
	for i, fig := range t.Figures {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		p, err := fig.Plot(df, t.theme())
		if err != nil {
			return written, fmt.Errorf("task %s figure %d: %w", t.Name, i+1, err)
		}
		path := opts.Output(t, i)
		w, h := fig.size()
		if err := p.Save(w, h, path); err != nil {
			return written, fmt.Errorf("task %s figure %d: %w", t.Name, i+1, err)
		}
		written = append(written, path)
	}
	return written, nil
}
