package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/laneshift/runner"
)

type Report struct {
	// Configuration
	Duration time.Duration
	Sessions int
	Seed     uint64
	Fixed    bool

	// Results
	Played         int
	Collided       int
	Won            int
	Unfinished     int
	TotalTicks     uint64
	TotalTime      time.Duration
	TickTime       Stats
	Scores         ScoreStats
	GCPauseMetrics bool
	MemStatsStart  runtime.MemStats
	MemStatsEnd    runtime.MemStats
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
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// ScoreStats summarises final session scores.
type ScoreStats struct {
	Min, Max, Avg int
	Samples       []int
}

func (s *ScoreStats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	total := 0
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]
	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / len(s.Samples)
}

// record adds one finished (or interrupted) session.
func (r *Report) record(snap runner.Snapshot) {
	r.Played++
	r.TotalTicks += snap.Session.Ticks
	switch snap.Session.Outcome {
	case runner.OutcomeCollided:
		r.Collided++
	case runner.OutcomeWon:
		r.Won++
	default:
		r.Unfinished++
	}
	r.Scores.Samples = append(r.Scores.Samples, snap.Scoreboard.Score)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Laneshift Soak Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Session Limit:** {{if .Sessions}}{{.Sessions}}{{else}}none{{end}}
- **First Seed:** {{.Seed}}
- **Clock:** {{if .Fixed}}fixed step{{else}}variable{{end}}

## Sessions
- **Played:** {{.Played}} (collided {{.Collided}}, won {{.Won}}, unfinished {{.Unfinished}})
- **Score:** avg {{.Scores.Avg}}, min {{.Scores.Min}}, max {{.Scores.Max}}

## Performance Results
- **Total Ticks:** {{.TotalTicks}}
- **Total Time:** {{.TotalTime}}
- **Tick Time:**
  - **Avg:** {{.TickTime.Avg}}
  - **Min:** {{.TickTime.Min}}
  - **Max:** {{.TickTime.Max}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end)
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}

{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

	fm := template.FuncMap{
		"mb": func(v uint64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
