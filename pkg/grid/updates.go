package grid

import "github.com/abhi266raj/gridlayout/pkg/geo"

// Direction hints how inserted or removed content animates. None cross-fades;
// Left and Right slide horizontally by the viewport width.
type Direction uint8

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionRight
)

func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Action is the kind of structural change recorded in an update batch.
type Action uint8

const (
	ActionInsert Action = iota
	ActionRemove
	ActionReload
)

func (a Action) String() string {
	switch a {
	case ActionInsert:
		return "insert"
	case ActionRemove:
		return "remove"
	case ActionReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Operation describes one structural change. Item < 0 means the operation
// applies to the whole section.
type Operation struct {
	Action    Action
	Section   SectionIndex
	Item      int
	Direction Direction
}

// updateBatch holds the bookkeeping for one BeginUpdates/EndUpdates span.
type updateBatch struct {
	originOffset geo.Point

	insertedSections map[SectionIndex]Direction
	removedSections  map[SectionIndex]Direction
	reloadedSections map[SectionIndex]struct{}

	insertedItems map[IndexPath]Direction
	removedItems  map[IndexPath]Direction
	reloadedItems map[IndexPath]struct{}
}

func newUpdateBatch(origin geo.Point) *updateBatch {
	return &updateBatch{
		originOffset:     origin,
		insertedSections: make(map[SectionIndex]Direction),
		removedSections:  make(map[SectionIndex]Direction),
		reloadedSections: make(map[SectionIndex]struct{}),
		insertedItems:    make(map[IndexPath]Direction),
		removedItems:     make(map[IndexPath]Direction),
		reloadedItems:    make(map[IndexPath]struct{}),
	}
}

func (b *updateBatch) record(op Operation) {
	if op.Item < 0 {
		switch op.Action {
		case ActionInsert:
			b.insertedSections[op.Section] = op.Direction
		case ActionRemove:
			b.removedSections[op.Section] = op.Direction
		case ActionReload:
			b.reloadedSections[op.Section] = struct{}{}
		}
		return
	}
	ip := NewIndexPath(op.Section, op.Item)
	switch op.Action {
	case ActionInsert:
		b.insertedItems[ip] = op.Direction
	case ActionRemove:
		b.removedItems[ip] = op.Direction
	case ActionReload:
		b.reloadedItems[ip] = struct{}{}
	}
}

// insertedAt reports whether the element at ip appears in this batch, item
// insertions taking precedence over whole-section ones.
func (b *updateBatch) insertedAt(ip IndexPath) (Direction, bool) {
	if d, ok := b.insertedItems[ip]; ok {
		return d, true
	}
	if d, ok := b.insertedSections[ip.Section]; ok {
		return d, true
	}
	return DirectionNone, false
}

func (b *updateBatch) removedAt(ip IndexPath) (Direction, bool) {
	if d, ok := b.removedItems[ip]; ok {
		return d, true
	}
	if d, ok := b.removedSections[ip.Section]; ok {
		return d, true
	}
	return DirectionNone, false
}

func (b *updateBatch) reloadedAt(ip IndexPath) bool {
	if _, ok := b.reloadedItems[ip]; ok {
		return true
	}
	_, ok := b.reloadedSections[ip.Section]
	return ok
}

// firstInsertedSectionTop returns the top of the lowest-indexed inserted
// ordinary section, used to keep new content from landing under the pinned
// global region.
func (b *updateBatch) firstInsertedSectionTop(e *Engine) (float64, bool) {
	best := SectionIndex(0)
	found := false
	for idx := range b.insertedSections {
		if idx.IsGlobal() {
			continue
		}
		if !found || idx < best {
			best, found = idx, true
		}
	}
	if !found {
		return 0, false
	}
	if s := e.sectionInfo(best); s != nil {
		return s.Frame.Y, true
	}
	return 0, false
}

// =============================================================================
// Batch lifecycle
// =============================================================================

// BeginUpdates opens an update batch, snapshotting the scroll offset so
// disappearing pinned elements can track the offset change.
func (e *Engine) BeginUpdates() {
	e.batch = newUpdateBatch(e.vp.ContentOffset())
	e.logger.Debug("update batch opened", "originOffset", e.batch.originOffset.Y)
}

// PrepareOperations records the batch's structural changes. Opens a batch
// implicitly when BeginUpdates was not called.
func (e *Engine) PrepareOperations(ops []Operation) {
	if e.batch == nil {
		e.BeginUpdates()
	}
	for _, op := range ops {
		e.batch.record(op)
	}
}

// EndUpdates closes the batch and discards the previous attribute
// generation; transition queries are answered only inside a batch.
func (e *Engine) EndUpdates() {
	e.batch = nil
	e.previous = nil
	e.logger.Debug("update batch closed")
}

// =============================================================================
// Transition attributes
// =============================================================================

// slideIn is the horizontal offset an appearing element starts from.
func (e *Engine) slideIn(d Direction) float64 {
	w := e.vp.Bounds().Width
	switch d {
	case DirectionLeft:
		return w
	case DirectionRight:
		return -w
	default:
		return 0
	}
}

// InitialCellAttributes returns where an appearing item animates from, or
// nil when the item is absent from the new layout.
func (e *Engine) InitialCellAttributes(ip IndexPath) *Attributes {
	e.ensureLayout()
	return e.initialAttributes(cellKey(ip), false)
}

// InitialSupplementAttributes returns where an appearing supplement animates
// from. Placeholders always cross-fade regardless of direction hints.
func (e *Engine) InitialSupplementAttributes(kind string, ip IndexPath) *Attributes {
	e.ensureLayout()
	return e.initialAttributes(supplementKey(kind, ip), kind == SupplementKindPlaceholder)
}

func (e *Engine) initialAttributes(key CacheKey, alwaysFade bool) *Attributes {
	a, ok := e.current[key]
	if !ok {
		return nil
	}
	c := a.Clone()
	if e.batch == nil {
		return c
	}

	dir, inserted := e.batch.insertedAt(key.IndexPath)
	_, existedBefore := e.previous[key]

	switch {
	case inserted && dir != DirectionNone && !alwaysFade:
		// Slide in from beside the viewport; alpha stays as laid out.
		c.Frame.X += e.slideIn(dir)
	case inserted:
		c.Alpha = 0
	case e.batch.reloadedAt(key.IndexPath) && !existedBefore:
		c.Alpha = 0
	case !existedBefore && e.previous != nil:
		// Genuinely new without an explicit insert: default cross-fade.
		c.Alpha = 0
	}
	return c
}

// FinalCellAttributes returns where a disappearing item animates to, or nil
// when the item was absent from the old layout.
func (e *Engine) FinalCellAttributes(ip IndexPath) *Attributes {
	e.ensureLayout()
	return e.finalAttributes(cellKey(ip), false)
}

// FinalSupplementAttributes returns where a disappearing supplement animates
// to. Pinned bands track the scroll offset change so they fade in place.
func (e *Engine) FinalSupplementAttributes(kind string, ip IndexPath) *Attributes {
	e.ensureLayout()
	return e.finalAttributes(supplementKey(kind, ip), kind == SupplementKindPlaceholder)
}

func (e *Engine) finalAttributes(key CacheKey, alwaysFade bool) *Attributes {
	source := e.previous
	if source == nil {
		source = e.current
	}
	a, ok := source[key]
	if !ok {
		return nil
	}
	c := a.Clone()
	if e.batch == nil {
		return c
	}

	if c.Pinned {
		// Keep a disappearing pinned band at the viewport edge it was stuck
		// to, never above its resting position.
		delta := e.vp.ContentOffset().Y - e.batch.originOffset.Y
		c.Frame.Y = max(c.UnpinnedY, c.Frame.Y+delta)
	}

	dir, removed := e.batch.removedAt(key.IndexPath)
	_, existsNow := e.current[key]

	switch {
	case removed && dir != DirectionNone && !alwaysFade:
		c.Frame.X -= e.slideIn(dir)
		c.Alpha = 0
	case removed:
		c.Alpha = 0
	case e.batch.reloadedAt(key.IndexPath) && !existsNow:
		c.Alpha = 0
	case !existsNow:
		c.Alpha = 0
	}
	return c
}
