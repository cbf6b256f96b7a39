package world

import (
	"math"

	"github.com/kwhitlock/fiberlab/internal/fiber"
)

// Tract is one 1D slice of the world: a span of length Span holding its own
// population of proteins. Binding partners are searched within a tract and
// its lattice neighbors.
type Tract struct {
	Index     int
	Loc       Hex
	proteins  []fiber.Protein
	neighbors []*Tract
	index     siteIndex
}

// Proteins returns the tract's population in insertion order.
func (t *Tract) Proteins() []fiber.Protein { return t.proteins }

// Reachable is the tract itself plus its lattice neighbors, the search
// scope for candidate binding partners.
func (t *Tract) Reachable() []*Tract {
	out := make([]*Tract, 0, len(t.neighbors)+1)
	out = append(out, t)
	out = append(out, t.neighbors...)
	return out
}

type siteEntry struct {
	id fiber.SiteID
	x  float64
}

// siteIndex buckets free actin sites by position so candidate queries touch
// a constant number of buckets instead of scanning the population. Bucket
// width equals the capture radius, so a query at x only ever needs the
// bucket holding x and its two neighbors.
type siteIndex struct {
	width   float64
	buckets map[int][]siteEntry
}

func (ix *siteIndex) reset(width float64) {
	ix.width = width
	ix.buckets = make(map[int][]siteEntry)
}

func (ix *siteIndex) add(id fiber.SiteID, x float64) {
	b := int(math.Floor(x / ix.width))
	ix.buckets[b] = append(ix.buckets[b], siteEntry{id: id, x: x})
}

// within appends all indexed sites with |x - site| <= radius to dst.
func (ix *siteIndex) within(x, radius float64, dst []siteEntry) []siteEntry {
	if ix.buckets == nil {
		return dst
	}
	b := int(math.Floor(x / ix.width))
	span := int(math.Ceil(radius/ix.width)) + 1
	for db := -span; db <= span; db++ {
		for _, e := range ix.buckets[b+db] {
			if math.Abs(e.x-x) <= radius {
				dst = append(dst, e)
			}
		}
	}
	return dst
}

// rebuildSiteIndex re-derives the free-actin-site index from the current
// geometry and topology. Called once per step before kinetics resolution.
func (t *Tract) rebuildSiteIndex(arena *fiber.Arena, captureRadius float64) {
	t.index.reset(captureRadius)
	for _, p := range t.proteins {
		if p.Kind() != fiber.KindActin {
			continue
		}
		for i, id := range p.Sites() {
			if !arena.Bound(id) {
				t.index.add(id, p.SitePos(i))
			}
		}
	}
}
