package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkOverstretch BookmarkType = "overstretch"
	BookmarkHardLanding BookmarkType = "hard_landing"
	BookmarkSettled     BookmarkType = "settled"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in the simulation.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	// OverstretchMin is the smallest stretch_max, in px, worth flagging.
	OverstretchMin float64
	// SettledKinetic is the kinetic_mean below which the figure counts as at rest.
	SettledKinetic float64

	// State tracking
	moving bool // kinetic energy was above the settled level in some earlier window
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:        make([]WindowStats, historySize),
		historySize:    historySize,
		OverstretchMin: 40,
		SettledKinetic: 1,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		// Overstretch: worst joint gap > 2x rolling average
		if b := bd.checkOverstretch(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}

		// Hard landing: kinetic energy peaked then collapsed within one window
		if b := bd.checkHardLanding(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	// Settled: came to rest after moving
	if b := bd.checkSettled(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

func (bd *BookmarkDetector) checkOverstretch(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 2 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.StretchMax
	}
	avg := total / float64(len(history))
	if avg == 0 {
		return nil
	}

	if stats.StretchMax > avg*2.0 && stats.StretchMax >= bd.OverstretchMin {
		return &Bookmark{
			Type:        BookmarkOverstretch,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Max joint stretch %.1f is %.1fx average (%.1f)", stats.StretchMax, stats.StretchMax/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkHardLanding(stats WindowStats) *Bookmark {
	if stats.KineticMean == 0 || stats.KineticMax < 10*stats.KineticMean {
		return nil
	}
	if stats.DragTicks > 0 {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkHardLanding,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Kinetic energy peaked at %.0f against a mean of %.0f", stats.KineticMax, stats.KineticMean),
	}
}

func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.KineticMean >= bd.SettledKinetic || stats.DragTicks > 0 {
		bd.moving = true
		return nil
	}
	if !bd.moving {
		return nil
	}
	bd.moving = false // trigger once per rest
	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("Figure at rest, chest at (%.0f, %.0f)", stats.ChestX, stats.ChestY),
	}
}
