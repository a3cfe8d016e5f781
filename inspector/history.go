package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/quadsoup/telemetry"
)

const (
	// History buffer size (number of stats windows to keep)
	historySize = 120

	// Line series indices
	seriesGrazers   = 0
	seriesPellets   = 1
	seriesNodes     = 2
	seriesDepth     = 3
	seriesOccupancy = 4
	seriesReach     = 5
	numSeries       = 6
)

// Series drawn against the left axis; the rest use the right axis.
var countSeries = []int{seriesGrazers, seriesPellets, seriesNodes}
var shapeSeries = []int{seriesDepth, seriesOccupancy, seriesReach}

// HistoryPanel graphs population and index shape over the recent stats
// windows.
type HistoryPanel struct {
	panelWidth  int32
	panelHeight int32
	panelX      int32
	panelY      int32

	// Latest window
	last    telemetry.WindowStats
	hasLast bool

	// Ring buffers, one per series
	history      [numSeries][]float64
	historyIndex int
	historyCount int

	seriesVisible [numSeries]bool
	seriesNames   [numSeries]string
	seriesColors  [numSeries]rl.Color
}

// History panel colors
var (
	colorHistoryTitle   = rl.Color{R: 200, G: 200, B: 220, A: 255}
	colorHistoryPanelBg = rl.Color{R: 20, G: 20, B: 30, A: 230}
	colorGraphBg        = rl.Color{R: 15, G: 15, B: 25, A: 255}
	colorGraphGrid      = rl.Color{R: 40, G: 40, B: 50, A: 255}
	colorGraphBorder    = rl.Color{R: 60, G: 60, B: 70, A: 255}
)

// NewHistoryPanel creates a panel along the bottom of the screen.
func NewHistoryPanel(screenWidth, screenHeight int32) *HistoryPanel {
	p := &HistoryPanel{
		panelHeight: 180,
		panelX:      10,
	}
	p.Resize(screenWidth, screenHeight)

	for i := range numSeries {
		p.history[i] = make([]float64, historySize)
	}

	p.seriesVisible = [numSeries]bool{true, true, true, false, true, false}
	p.seriesNames = [numSeries]string{"Grazers", "Pellets", "Nodes", "Depth", "Occupancy", "Reach"}
	p.seriesColors = [numSeries]rl.Color{
		{R: 120, G: 220, B: 120, A: 255}, // Green
		{R: 255, G: 190, B: 60, A: 255},  // Amber
		{R: 100, G: 149, B: 237, A: 255}, // Cornflower blue
		{R: 200, G: 120, B: 255, A: 255}, // Violet
		{R: 255, G: 100, B: 80, A: 255},  // Red-orange
		{R: 255, G: 255, B: 100, A: 255}, // Yellow
	}

	return p
}

// Resize updates panel dimensions when the window is resized.
func (p *HistoryPanel) Resize(screenWidth, screenHeight int32) {
	p.panelWidth = max(screenWidth-PanelWidth-40, 400)
	p.panelY = screenHeight - p.panelHeight - 35
}

// Update records a flushed stats window.
func (p *HistoryPanel) Update(s telemetry.WindowStats) {
	p.last = s
	p.hasLast = true

	idx := p.historyIndex
	p.history[seriesGrazers][idx] = float64(s.Grazers)
	p.history[seriesPellets][idx] = float64(s.Pellets)
	p.history[seriesNodes][idx] = float64(s.IndexNodes)
	p.history[seriesDepth][idx] = float64(s.IndexMaxDepth)
	p.history[seriesOccupancy][idx] = s.OccupancyMean
	p.history[seriesReach][idx] = s.CollisionReach

	p.historyIndex = (p.historyIndex + 1) % historySize
	if p.historyCount < historySize {
		p.historyCount++
	}
}

// Len returns the number of recorded windows.
func (p *HistoryPanel) Len() int {
	return p.historyCount
}

// Series returns the recorded values of series i, oldest first.
func (p *HistoryPanel) Series(i int) []float64 {
	out := make([]float64, p.historyCount)
	for j := range out {
		out[j] = p.history[i][p.ringIndex(j)]
	}
	return out
}

func (p *HistoryPanel) ringIndex(i int) int {
	return (p.historyIndex - p.historyCount + i + historySize) % historySize
}

// HandleInput toggles series when their legend entry is clicked. It reports
// whether the click was consumed.
func (p *HistoryPanel) HandleInput(mx, my int32) bool {
	legendY := p.panelY + p.panelHeight - 24
	legendX := p.panelX + 10

	for i := range numSeries {
		itemX := legendX + int32(i)*90
		if mx >= itemX && mx < itemX+85 && my >= legendY && my < legendY+18 {
			p.seriesVisible[i] = !p.seriesVisible[i]
			return true
		}
	}
	return mx >= p.panelX && mx < p.panelX+p.panelWidth && my >= p.panelY && my < p.panelY+p.panelHeight
}

// Draw renders the panel.
func (p *HistoryPanel) Draw() {
	rl.DrawRectangle(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorHistoryPanelBg)
	rl.DrawRectangleLines(p.panelX, p.panelY, p.panelWidth, p.panelHeight, colorGraphBorder)

	rl.DrawText("HISTORY", p.panelX+10, p.panelY+6, 14, colorHistoryTitle)

	if !p.hasLast {
		rl.DrawText("Waiting for data...", p.panelX+100, p.panelY+70, 14, ColorTextDim)
		return
	}

	summaryWidth := int32(160)
	graphX := p.panelX + summaryWidth + 20
	graphY := p.panelY + 24
	graphW := p.panelWidth - summaryWidth - 40
	graphH := p.panelHeight - 54

	p.drawSummary(p.panelX+10, p.panelY+28)
	p.drawGraph(graphX, graphY, graphW, graphH)
	p.drawLegend(p.panelX+10, p.panelY+p.panelHeight-24)
}

// drawSummary lists the latest window's values.
func (p *HistoryPanel) drawSummary(x, y int32) {
	s := p.last
	lines := []string{
		fmt.Sprintf("t=%.0fs", s.SimTimeSec),
		fmt.Sprintf("births %d  starved %d", s.Births, s.Starved),
		fmt.Sprintf("eaten %d  spawned %d", s.PelletsEaten, s.PelletsSpawned),
		fmt.Sprintf("leaves %d  max occ %d", s.IndexLeaves, s.OccupancyMax),
		fmt.Sprintf("root %.0fx%.0f", s.RootWidth, s.RootHeight),
	}
	for _, line := range lines {
		rl.DrawText(line, x, y, 11, ColorText)
		y += 16
	}
}

// drawGraph renders the line graph.
func (p *HistoryPanel) drawGraph(x, y, w, h int32) {
	rl.DrawRectangle(x, y, w, h, colorGraphBg)
	rl.DrawRectangleLines(x, y, w, h, colorGraphBorder)

	for i := int32(1); i < 4; i++ {
		gridY := y + (h * i / 4)
		rl.DrawLine(x, gridY, x+w, gridY, colorGraphGrid)
	}
	for i := int32(1); i < 6; i++ {
		gridX := x + (w * i / 6)
		rl.DrawLine(gridX, y, gridX, y+h, colorGraphGrid)
	}

	if p.historyCount < 2 {
		return
	}

	countMin, countMax := p.seriesRange(countSeries)
	shapeMin, shapeMax := p.seriesRange(shapeSeries)

	for _, series := range countSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, countMin, countMax)
		}
	}
	for _, series := range shapeSeries {
		if p.seriesVisible[series] {
			p.drawSeriesLine(x, y, w, h, series, shapeMin, shapeMax)
		}
	}

	rl.DrawText(fmt.Sprintf("%.0f", countMax), x+2, y+2, 9, ColorTextDim)
	rl.DrawText(fmt.Sprintf("%.0f", countMin), x+2, y+h-10, 9, ColorTextDim)
	maxLabel := fmt.Sprintf("%.2f", shapeMax)
	minLabel := fmt.Sprintf("%.2f", shapeMin)
	rl.DrawText(maxLabel, x+w-rl.MeasureText(maxLabel, 9)-2, y+2, 9, ColorTextDim)
	rl.DrawText(minLabel, x+w-rl.MeasureText(minLabel, 9)-2, y+h-10, 9, ColorTextDim)
}

// seriesRange finds min/max across the visible series, padded by 10%.
func (p *HistoryPanel) seriesRange(series []int) (lo, hi float64) {
	lo, hi = math.MaxFloat64, -math.MaxFloat64
	hasVisible := false

	for _, s := range series {
		if !p.seriesVisible[s] {
			continue
		}
		hasVisible = true
		for i := range p.historyCount {
			v := p.history[s][p.ringIndex(i)]
			lo = min(lo, v)
			hi = max(hi, v)
		}
	}

	if !hasVisible || lo >= hi {
		return 0, 1
	}

	padding := max((hi-lo)*0.1, 0.001)
	return lo - padding, hi + padding
}

// drawSeriesLine draws one data series as a line.
func (p *HistoryPanel) drawSeriesLine(x, y, w, h int32, series int, minVal, maxVal float64) {
	color := p.seriesColors[series]
	valueRange := maxVal - minVal
	if valueRange <= 0 {
		valueRange = 1
	}

	var prevX, prevY int32
	for i := range p.historyCount {
		v := p.history[series][p.ringIndex(i)]

		px := x + int32(float64(i)*float64(w)/float64(p.historyCount-1))
		py := y + h - int32((v-minVal)/valueRange*float64(h))
		py = min(max(py, y), y+h)

		if i > 0 {
			rl.DrawLine(prevX, prevY, px, py, color)
		}
		prevX, prevY = px, py
	}
}

// drawLegend draws the clickable legend.
func (p *HistoryPanel) drawLegend(x, y int32) {
	itemWidth := int32(90)

	for i := range numSeries {
		itemX := x + int32(i)*itemWidth
		color := p.seriesColors[i]
		textColor := ColorText
		if !p.seriesVisible[i] {
			color.A = 80
			textColor = ColorTextDim
		}

		rl.DrawRectangle(itemX, y+2, 10, 10, color)
		rl.DrawText(p.seriesNames[i], itemX+14, y, 11, textColor)
	}

	hintX := x + int32(numSeries)*itemWidth + 10
	rl.DrawText("(click to toggle)", hintX, y, 10, ColorTextDim)
}
