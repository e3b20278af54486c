package main

import (
	"io"
	"strconv"
	"text/template"
	"time"

	"github.com/plus3/circles/circles"
	"github.com/plus3/circles/ecs"
)

// Report summarises a headless run.
type Report struct {
	Frames    uint64
	TotalTime time.Duration
	Systems   []ecs.SystemStats
	Bodies    []circles.Body
	NaNBodies int
}

const reportTemplate = `
# Headless Run Report

- **Ticks:** {{.Frames}}
- **Wall Time:** {{.TotalTime}}
- **Bodies:** {{len .Bodies}} ({{.NaNBodies}} with NaN)

## Systems
{{range .Systems}}- {{.Name}} [{{.Stage}}]: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
## Final Bodies
{{range $i, $b := .Bodies}}- #{{$i}} pos ({{index $b.Position 0 | f}}, {{index $b.Position 1 | f}}) vel ({{index $b.Velocity 0 | f}}, {{index $b.Velocity 1 | f}})
{{end}}`

var reportFuncs = template.FuncMap{
	"f": func(v float32) string {
		return strconv.FormatFloat(float64(v), 'f', 2, 32)
	},
}

// Generate writes the report as markdown.
func (r *Report) Generate(w io.Writer) error {
	tmpl, err := template.New("report").Funcs(reportFuncs).Parse(reportTemplate)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, r)
}
