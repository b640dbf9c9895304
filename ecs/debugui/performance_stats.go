package debugui

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/laneshift/ecs"
)

func NewPerformanceStatsComponent(historyFrames int) PerformanceStatsComponent {
	return PerformanceStatsComponent{
		historyFrames: historyFrames,
		frameHistory:  make([]float32, historyFrames),
	}
}

// record stores one frame time in milliseconds and returns the average over
// the frames seen so far, up to historyFrames.
func (ps *PerformanceStatsComponent) record(dt float64) float32 {
	ps.frameHistory[ps.frameIndex] = float32(dt * 1000)
	ps.frameIndex = (ps.frameIndex + 1) % ps.historyFrames
	ps.frames = min(ps.frames+1, ps.historyFrames)

	var sum float32
	for _, ft := range ps.frameHistory {
		sum += ft
	}
	return sum / float32(ps.frames)
}

// pipelineRow is one system's share of the last pass.
type pipelineRow struct {
	Name           string
	Last, Avg, Max time.Duration
	Share          float64
}

func pipelineRows(stats *ecs.SchedulerStats) []pipelineRow {
	var total time.Duration
	for _, sys := range stats.Systems {
		total += sys.LastDuration
	}

	rows := make([]pipelineRow, 0, len(stats.Systems))
	for _, sys := range stats.Systems {
		row := pipelineRow{
			Name: strings.TrimSuffix(sys.Name, "System"),
			Last: sys.LastDuration,
			Avg:  sys.AvgDuration,
			Max:  sys.MaxDuration,
		}
		if total > 0 {
			row.Share = float64(sys.LastDuration) / float64(total)
		}
		rows = append(rows, row)
	}
	return rows
}

// kindRow counts live entities sharing one component set.
type kindRow struct {
	Name  string
	Count int
}

// entityKinds names each non-empty archetype by its components, sorted by
// name.
func entityKinds(stats *ecs.StorageStats) []kindRow {
	var rows []kindRow
	for _, arch := range stats.ArchetypeBreakdown {
		if arch.EntityCount == 0 {
			continue
		}
		names := make([]string, len(arch.ComponentTypes))
		for i, t := range arch.ComponentTypes {
			names[i] = t.Name()
		}
		rows = append(rows, kindRow{Name: strings.Join(names, "+"), Count: arch.EntityCount})
	}
	slices.SortFunc(rows, func(a, b kindRow) int { return cmp.Compare(a.Name, b.Name) })
	return rows
}

func (ps *PerformanceStatsComponent) Render(dt float64, storage *ecs.Storage, scheduler *ecs.Scheduler) {
	avgFrameTime := ps.record(dt)

	if !imgui.BeginV("Frame Budget", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if avgFrameTime > 0 {
		imgui.Text(fmt.Sprintf("Frame: %.2f ms avg (%.0f FPS)", avgFrameTime, 1000/avgFrameTime))
	}
	imgui.PlotLinesFloatPtr("##frametime", &ps.frameHistory[0], int32(len(ps.frameHistory)))

	if scheduler != nil && imgui.TreeNodeStr("Pipeline") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PipelineTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Step")
			imgui.TableSetupColumn("Last")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableSetupColumn("Share")
			imgui.TableHeadersRow()

			for _, row := range pipelineRows(scheduler.GetStats()) {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(row.Name)
				imgui.TableNextColumn()
				imgui.Text(row.Last.String())
				imgui.TableNextColumn()
				imgui.Text(row.Avg.String())
				imgui.TableNextColumn()
				imgui.Text(row.Max.String())
				imgui.TableNextColumn()
				imgui.ProgressBarV(float32(row.Share), imgui.NewVec2(-1, 0), fmt.Sprintf("%.0f%%", row.Share*100))
			}
			imgui.EndTable()
		}
		imgui.TreePop()
	}

	stats := storage.CollectStats()
	if imgui.TreeNodeStr(fmt.Sprintf("Entities (%d)###entities", stats.TotalEntityCount)) {
		for _, kind := range entityKinds(stats) {
			imgui.BulletText(fmt.Sprintf("%-28s %d", kind.Name, kind.Count))
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr(fmt.Sprintf("Singletons (%d)###singletons", stats.SingletonCount)) {
		for _, name := range stats.SingletonTypes {
			imgui.BulletText(name)
		}
		imgui.TreePop()
	}

	imgui.End()
}
