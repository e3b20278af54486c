package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/circles/ecs"
)

// FrameHistory is a ring buffer of frame times in milliseconds.
type FrameHistory struct {
	samples []float32
	next    int
	filled  int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{samples: make([]float32, max(size, 1))}
}

// Add records one frame duration.
func (h *FrameHistory) Add(d time.Duration) {
	h.samples[h.next] = float32(d.Seconds() * 1000)
	h.next = (h.next + 1) % len(h.samples)
	h.filled = min(h.filled+1, len(h.samples))
}

// Average returns the mean of the recorded samples, in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var sum float32
	for _, s := range h.samples[:h.filled] {
		sum += s
	}
	return sum / float32(h.filled)
}

// PerformanceWindow shows frame timing, storage counts and per-system
// timings.
type PerformanceWindow struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	history   *FrameHistory
	last      time.Time
}

func NewPerformanceWindow(storage *ecs.Storage, scheduler *ecs.Scheduler, historyFrames int) *PerformanceWindow {
	return &PerformanceWindow{
		storage:   storage,
		scheduler: scheduler,
		history:   NewFrameHistory(historyFrames),
	}
}

func (pw *PerformanceWindow) Render() {
	now := time.Now()
	if !pw.last.IsZero() {
		pw.history.Add(now.Sub(pw.last))
	}
	pw.last = now

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 440), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 260), imgui.CondOnce)
	if !imgui.BeginV("Performance", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	avg := pw.history.Average()
	if avg > 0 {
		imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avg, 1000/avg))
	}
	imgui.PlotLinesFloatPtr("##frametime", &pw.history.samples[0], int32(len(pw.history.samples)))

	stats := pw.storage.CollectStats()
	imgui.Text(fmt.Sprintf("Entities: %d  Archetypes: %d  Singletons: %d",
		stats.TotalEntityCount, stats.ArchetypeCount, stats.SingletonCount))

	sched := pw.scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Ticks: %d", sched.Ticks))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("Systems", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Stage")
		imgui.TableSetupColumn("Runs")
		imgui.TableSetupColumn("Avg")
		imgui.TableHeadersRow()

		for _, sys := range sched.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(sys.Stage.String())
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
		}
		imgui.EndTable()
	}

	imgui.End()
}
