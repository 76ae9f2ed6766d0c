package output

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// GanttChart renders the committed machine schedules as an SVG timeline:
// one row per machine, one bar per scheduled job.
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	StartTime    time.Time
	EndTime      time.Time
}

type ganttBar struct {
	JobID string
	Start time.Time
	End   time.Time
	X     int
	Width int
	Color string
}

var barPalette = []string{"#4CAF50", "#2196F3", "#FF9800", "#9C27B0", "#00BCD4", "#795548"}

// NewGanttChart sizes a chart for the given schedules. Time bounds span
// the earliest start to the latest end with a little padding.
func NewGanttChart(schedules []*entities.MachineSchedule) *GanttChart {
	chart := &GanttChart{
		Width:        1200,
		Height:       200,
		MarginLeft:   160,
		MarginTop:    60,
		MarginRight:  60,
		MarginBottom: 60,
		RowHeight:    36,
	}

	var start, end time.Time
	found := false
	for _, s := range schedules {
		for _, iv := range s.Intervals {
			if !found || iv.Start.Before(start) {
				start = iv.Start
			}
			if !found || iv.End.After(end) {
				end = iv.End
			}
			found = true
		}
	}
	if !found {
		return chart
	}

	padding := time.Duration(float64(end.Sub(start)) * 0.05)
	if padding < 12*time.Hour {
		padding = 12 * time.Hour
	}
	chart.StartTime = start.Add(-padding)
	chart.EndTime = end.Add(padding)
	chart.Height = len(schedules)*chart.RowHeight + chart.MarginTop + chart.MarginBottom
	return chart
}

// GenerateSVG produces the chart markup.
func (gc *GanttChart) GenerateSVG(schedules []*entities.MachineSchedule) string {
	if gc.StartTime.IsZero() {
		return gc.generateEmptyChart()
	}

	var svg strings.Builder
	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height))
	svg.WriteString(`<defs><style>`)
	svg.WriteString(`.machine-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.job-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.job-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`</style></defs>`)
	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="30" class="title" text-anchor="middle">Machine Schedule</text>`, gc.Width/2))

	gc.drawTimeAxis(&svg)
	gc.drawMachineRows(&svg, schedules)

	svg.WriteString(`</svg>`)
	return svg.String()
}

func (gc *GanttChart) drawTimeAxis(svg *strings.Builder) {
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	totalDuration := gc.EndTime.Sub(gc.StartTime)

	days := int(math.Ceil(totalDuration.Hours() / 24))
	interval := 24 * time.Hour
	labelFormat := "Jan 2"
	if days > 30 {
		interval = 7 * 24 * time.Hour
	}

	axisY := gc.Height - gc.MarginBottom
	for t := gc.StartTime.Truncate(interval); t.Before(gc.EndTime); t = t.Add(interval) {
		offset := t.Sub(gc.StartTime)
		x := gc.MarginLeft + int(float64(offset)/float64(totalDuration)*float64(chartWidth))
		if x < gc.MarginLeft || x > gc.Width-gc.MarginRight {
			continue
		}
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			x, gc.MarginTop, x, axisY))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label" text-anchor="middle">%s</text>`,
			x, axisY+15, t.Format(labelFormat)))
	}
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		gc.MarginLeft, axisY, gc.Width-gc.MarginRight, axisY))
}

func (gc *GanttChart) drawMachineRows(svg *strings.Builder, schedules []*entities.MachineSchedule) {
	for i, s := range schedules {
		y := gc.MarginTop + i*gc.RowHeight

		label := string(s.MachineID)
		if s.Type != "" {
			label = fmt.Sprintf("%s (%s)", s.MachineID, s.Type)
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="machine-label" text-anchor="end">%s</text>`,
			gc.MarginLeft-10, y+gc.RowHeight/2+4, label))
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			gc.MarginLeft, y+gc.RowHeight, gc.Width-gc.MarginRight, y+gc.RowHeight))

		for j, iv := range s.Intervals {
			bar := gc.makeBar(iv, j)
			gc.drawBar(svg, bar, y)
		}
	}
}

func (gc *GanttChart) makeBar(iv entities.ScheduleInterval, index int) ganttBar {
	chartWidth := gc.Width - gc.MarginLeft - gc.MarginRight
	totalDuration := gc.EndTime.Sub(gc.StartTime)

	startOffset := iv.Start.Sub(gc.StartTime)
	x := gc.MarginLeft + int(float64(startOffset)/float64(totalDuration)*float64(chartWidth))
	width := int(float64(iv.End.Sub(iv.Start)) / float64(totalDuration) * float64(chartWidth))
	if width < 2 {
		width = 2
	}

	return ganttBar{
		JobID: iv.JobID,
		Start: iv.Start,
		End:   iv.End,
		X:     x,
		Width: width,
		Color: barPalette[index%len(barPalette)],
	}
}

func (gc *GanttChart) drawBar(svg *strings.Builder, bar ganttBar, rowY int) {
	barHeight := gc.RowHeight - 6
	barY := rowY + 3

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="job-bar">`,
		bar.X, barY, bar.Width, barHeight, bar.Color))
	svg.WriteString(fmt.Sprintf(`<title>Job %s: %s to %s</title>`,
		bar.JobID, bar.Start.Format("2006-01-02 15:04"), bar.End.Format("2006-01-02 15:04")))
	svg.WriteString(`</rect>`)

	if bar.Width > 40 {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="job-text" text-anchor="middle">%s</text>`,
			bar.X+bar.Width/2, barY+barHeight/2+3, bar.JobID))
	}
}

func (gc *GanttChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
	<rect width="%d" height="%d" fill="white"/>
	<text x="%d" y="%d" font-family="Arial, sans-serif" font-size="16" fill="#666" text-anchor="middle">No Scheduled Jobs</text>
</svg>`, gc.Width, gc.Height, gc.Width, gc.Height, gc.Width/2, gc.Height/2)
}
