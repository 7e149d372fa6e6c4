package placement

import (
	"math"
	"sync"

	"github.com/Obayne/AutoFireBase-sub001/pkg/geo"
)

// Index is the shared collision index: every placed device's position and
// clearance radius, bucketed on a coarse grid. Zones placed concurrently all
// insert into the same index, since a device in one zone legally constrains
// placement across a shared wall, so check-and-insert is atomic under one
// lock.
type Index struct {
	mu       sync.Mutex
	cellSize float64
	// maxClearance is the largest clearance radius inserted so far; the
	// bucket scan must reach candidate clearance + maxClearance, since an
	// entry overlaps from up to that distance away.
	maxClearance float64
	buckets      map[[2]int][]indexEntry
}

type indexEntry struct {
	id        string
	pos       geo.Point2D
	clearance float64
}

// NewIndex creates a collision index. cellSize only tunes bucket
// granularity; the scan radius adapts to the clearances actually inserted.
func NewIndex(cellSize float64) *Index {
	if cellSize <= 0 {
		cellSize = 10
	}
	return &Index{
		cellSize: cellSize,
		buckets:  make(map[[2]int][]indexEntry),
	}
}

func (ix *Index) cell(p geo.Point2D) [2]int {
	return [2]int{
		int(math.Floor(p.X / ix.cellSize)),
		int(math.Floor(p.Y / ix.cellSize)),
	}
}

// TryInsert atomically checks the candidate's clearance circle against every
// nearby entry and inserts it when clear. Returns false when the candidate
// collides with an existing device.
func (ix *Index) TryInsert(id string, pos geo.Point2D, clearance float64) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.blockedLocked(pos, clearance) {
		return false
	}
	c := ix.cell(pos)
	ix.buckets[c] = append(ix.buckets[c], indexEntry{id: id, pos: pos, clearance: clearance})
	if clearance > ix.maxClearance {
		ix.maxClearance = clearance
	}
	return true
}

// Blocked reports whether a clearance circle at pos intersects any entry.
func (ix *Index) Blocked(pos geo.Point2D, clearance float64) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.blockedLocked(pos, clearance)
}

func (ix *Index) blockedLocked(pos geo.Point2D, clearance float64) bool {
	c := ix.cell(pos)
	// Two circles overlap within the sum of their radii, so the scan has to
	// cover the candidate's clearance plus the widest entry on record.
	reach := int(math.Ceil((clearance+ix.maxClearance)/ix.cellSize)) + 1
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			for _, e := range ix.buckets[[2]int{c[0] + dx, c[1] + dy}] {
				if geo.CirclesOverlap(pos, clearance, e.pos, e.clearance) {
					return true
				}
			}
		}
	}
	return false
}

// Len returns the number of entries.
func (ix *Index) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	n := 0
	for _, b := range ix.buckets {
		n += len(b)
	}
	return n
}
