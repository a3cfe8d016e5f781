package quadtree

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/quadsoup/geometry"
)

// Stats describes the current shape of the tree.
type Stats struct {
	Items    int
	Nodes    int
	Leaves   int
	MaxDepth int

	// Leaf occupancy distribution
	OccupancyMean   float64
	OccupancyStdDev float64
	OccupancyMax    int

	Region     geometry.Rect
	RootGrowth int // expansions minus contractions
}

// Stats walks the tree and summarises it.
func (t *Index) Stats() Stats {
	s := Stats{
		Region:     t.nodes[t.root].region,
		RootGrowth: t.growth,
	}

	var occupancy []float64
	var walk func(id nodeID, depth int)
	walk = func(id nodeID, depth int) {
		n := &t.nodes[id]
		s.Nodes++
		s.MaxDepth = max(s.MaxDepth, depth)
		if !n.isLeaf() {
			for _, c := range n.children {
				walk(c, depth+1)
			}
			return
		}
		held := len(n.items) + len(n.staging)
		s.Leaves++
		s.Items += held
		s.OccupancyMax = max(s.OccupancyMax, held)
		occupancy = append(occupancy, float64(held))
	}
	walk(t.root, 0)

	if len(occupancy) > 1 {
		s.OccupancyMean, s.OccupancyStdDev = stat.MeanStdDev(occupancy, nil)
	} else {
		s.OccupancyMean = occupancy[0]
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s Stats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("items", s.Items),
		slog.Int("nodes", s.Nodes),
		slog.Int("leaves", s.Leaves),
		slog.Int("max_depth", s.MaxDepth),
		slog.Float64("occupancy_mean", s.OccupancyMean),
		slog.Float64("occupancy_std", s.OccupancyStdDev),
		slog.Int("occupancy_max", s.OccupancyMax),
		slog.Float64("root_width", s.Region.Width()),
		slog.Float64("root_height", s.Region.Height()),
		slog.Int("root_growth", s.RootGrowth),
	)
}

// Work is a running total of the restructuring the index has done since it
// was created. Clear does not reset it. Subtract two snapshots with Sub to
// cost the operations between them.
type Work struct {
	Settles       int
	SettleTime    time.Duration
	Rebalances    int
	RebalanceTime time.Duration

	Splits    int // leaves subdivided
	Collapses int // subtrees folded back into a leaf
	Rehomed   int // items moved to another leaf when a traversal settled
}

// Work returns the running totals.
func (t *Index) Work() Work { return t.work }

// Sub returns the work done between prev and w.
func (w Work) Sub(prev Work) Work {
	return Work{
		Settles:       w.Settles - prev.Settles,
		SettleTime:    w.SettleTime - prev.SettleTime,
		Rebalances:    w.Rebalances - prev.Rebalances,
		RebalanceTime: w.RebalanceTime - prev.RebalanceTime,
		Splits:        w.Splits - prev.Splits,
		Collapses:     w.Collapses - prev.Collapses,
		Rehomed:       w.Rehomed - prev.Rehomed,
	}
}
