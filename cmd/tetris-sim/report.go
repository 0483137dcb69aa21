package main

import (
	"io"
	"text/template"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/plus3/tetris/engine"
	"github.com/plus3/tetris/piece"
)

type Report struct {
	// Configuration
	Mode     string
	Games    int
	MaxTicks int
	Speedup  float64
	Width    int
	Height   int
	Seed     uint64

	// Results
	Results    []GameResult
	TotalTime  time.Duration
	GameTime   Stats
	HighScore  int
	HighScores int
	RoundTrips int
	Draws      []DrawCount
	Clears     []ClearCount
}

// GameResult summarises one finished or abandoned game.
type GameResult struct {
	Index     int
	Seed      uint64
	Outcome   string
	Ticks     int
	Intents   int
	Score     engine.Score
	Elapsed   string
	RoundTrip bool
	Driver    *engine.DriverStats
}

type DrawCount struct {
	Kind  piece.Kind
	Count int
}

type ClearCount struct {
	Lines int
	Count int
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// collect copies the observer tallies into the report in a stable order.
func (r *Report) collect(o *statsObserver) {
	for _, kind := range piece.Kinds() {
		n, _ := o.draws.Get(kind)
		r.Draws = append(r.Draws, DrawCount{Kind: kind, Count: n})
	}
	for lines := 1; lines <= 4; lines++ {
		n, _ := o.clears.Get(lines)
		r.Clears = append(r.Clears, ClearCount{Lines: lines, Count: n})
	}
	r.HighScores = o.highScores
	for _, result := range r.Results {
		if result.RoundTrip {
			r.RoundTrips++
		}
	}
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Tetris Simulation Report

## Configuration
- **Mode:** {{.Mode}}
- **Games:** {{num .Games}}
- **Board:** {{.Width}}x{{.Height}}
- **Seed:** {{.Seed}}
{{- if eq .Mode "logical"}}
- **Tick Limit:** {{num .MaxTicks}}
{{- else}}
- **Speed-up:** {{.Speedup}}x
{{- end}}

## Games
| # | Seed | Outcome | Ticks | Intents | Score | Level | Lines | Clock | Round Trip |
|---|------|---------|-------|---------|-------|-------|-------|-------|------------|
{{- range .Results}}
| {{.Index}} | {{.Seed}} | {{.Outcome}} | {{num .Ticks}} | {{num .Intents}} | {{num .Score.Total}} | {{.Score.Level}} | {{.Score.Lines}} | {{.Elapsed}} | {{if .RoundTrip}}ok{{else}}-{{end}} |
{{- end}}

## Summary
- **Total Time:** {{.TotalTime}}
- **Game Time:**
  - **Avg:** {{.GameTime.Avg}}
  - **Min:** {{.GameTime.Min}}
  - **Max:** {{.GameTime.Max}}
- **High Score:** {{num .HighScore}} ({{.HighScores}} updates)
- **Successful Round Trips:** {{.RoundTrips}}/{{.Games}}

## Piece Draws
{{- range .Draws}}
- {{.Kind}}: {{num .Count}}
{{- end}}

## Line Clears
{{- range .Clears}}
- {{.Lines}} at once: {{num .Count}}
{{- end}}
{{- if eq .Mode "realtime"}}

## Driver
{{- range .Results}}
### Game {{.Index}}
{{- range .Driver.Sources}}
- **{{.Name}}:** {{num .ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{- end}}
{{- end}}
{{- end}}
`

	p := message.NewPrinter(language.English)
	fm := template.FuncMap{
		"num": func(v any) string {
			return p.Sprintf("%d", v)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
