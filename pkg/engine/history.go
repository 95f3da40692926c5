package engine

import (
	dragon "github.com/dylhunn/dragontoothmg"
)

// historyTable holds the move-ordering history accumulated by one worker.
// It is transient per-search state: ResetThreads clears it without touching
// the worker pool itself.
type historyTable struct {
	buckets [2][64][64]int32
}

const historyMax = 1 << 20

func (h *historyTable) Clear() {
	*h = historyTable{}
}

func sideIndex(whiteMove bool) int {
	if whiteMove {
		return 0
	}
	return 1
}

func (h *historyTable) Get(whiteMove bool, move dragon.Move) int32 {
	return h.buckets[sideIndex(whiteMove)][move.From()][move.To()]
}

func (h *historyTable) Update(whiteMove bool, move dragon.Move, depth int) {
	var entry = &h.buckets[sideIndex(whiteMove)][move.From()][move.To()]
	*entry += int32(depth * depth)
	if *entry > historyMax {
		*entry = historyMax
	}
}
