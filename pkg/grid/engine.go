package grid

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/abhi266raj/gridlayout/pkg/geo"
	"github.com/abhi266raj/gridlayout/pkg/observability"
)

// Options configures an Engine.
type Options struct {
	// Logger receives debug traces of build passes and invalidations.
	// Defaults to a discarding logger.
	Logger *log.Logger

	// Measurer resolves natural content sizes. Optional: without it,
	// measurement requests fall back to their target sizes.
	Measurer Measurer
}

func (o *Options) setDefaults() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// Engine computes and caches grid layout geometry. All methods must run on
// the goroutine owning the hosting view; the engine holds no locks.
type Engine struct {
	logger  *log.Logger
	ds      DataSource
	vp      Viewport
	measure Measurer

	// Validity state machine.
	dataValid    bool
	metricsValid bool
	preparing    bool

	// Derived layout state.
	global     *SectionInfo
	sections   []*SectionInfo
	layoutSize geo.Size

	// Viewport identity from the last completed pass.
	lastBounds     geo.Rect
	viewportID     uuid.UUID
	haveViewportID bool

	// Two-generation attribute caches. The previous generation exists only
	// for the duration of one update batch.
	current  attributeCache
	previous attributeCache

	// Pinning bookkeeping, rebuilt each pass so the per-query pinning walk
	// touches only pinnable elements.
	globalPinnable    []*Attributes
	globalNonPinnable []*Attributes
	sectionPinnable   map[SectionIndex][]*Attributes
	background        *Attributes

	batch *updateBatch
}

// New creates an engine over the given collaborators. The engine starts
// fully invalid; the first query triggers a build.
func New(ds DataSource, vp Viewport, opts Options) *Engine {
	opts.setDefaults()
	return &Engine{
		logger:  opts.Logger,
		ds:      ds,
		vp:      vp,
		measure: opts.Measurer,
		current: make(attributeCache),
	}
}

// =============================================================================
// Invalidation
// =============================================================================

// InvalidateData discards all derived layout state. Call after any
// structural change: items or sections inserted, removed, moved or reloaded.
func (e *Engine) InvalidateData() {
	e.dataValid = false
	e.metricsValid = false
	e.logger.Debug("layout invalidated", "scope", "data")
	observability.Layout().OnInvalidate("data")
}

// InvalidateMetrics keeps section identity but recomputes all geometry.
// Call after a viewport width change or an explicit remeasure request.
func (e *Engine) InvalidateMetrics() {
	e.metricsValid = false
	e.logger.Debug("layout invalidated", "scope", "metrics")
	observability.Layout().OnInvalidate("metrics")
}

// InvalidateItem requests a remeasure of a single item. Row height is shared
// across columns, so any item's height change can reflow its whole section;
// the engine therefore falls back to a full metrics relayout.
func (e *Engine) InvalidateItem(ip IndexPath) {
	e.logger.Debug("item invalidated", "indexPath", ip.String())
	e.InvalidateMetrics()
}

// BoundsChange reports how a proposed bounds change affects the layout.
type BoundsChange struct {
	// ShouldInvalidate is true iff the width changed (or bounds became
	// non-empty for the first time, which forces a full rebuild).
	ShouldInvalidate bool

	// OriginChanged is true when the bounds origin moved; callers use it to
	// decide whether a cached content offset is still trustworthy.
	OriginChanged bool

	// SameViewport is true when the viewport's identity token matches the
	// one seen during the last completed pass.
	SameViewport bool
}

// ShouldInvalidateForBounds evaluates a bounds change and records the
// required invalidation.
func (e *Engine) ShouldInvalidateForBounds(newBounds geo.Rect) BoundsChange {
	c := BoundsChange{
		OriginChanged: newBounds.X != e.lastBounds.X || newBounds.Y != e.lastBounds.Y,
		SameViewport:  e.haveViewportID && e.vp.ID() == e.viewportID,
	}
	if e.lastBounds.IsEmpty() && !newBounds.IsEmpty() {
		e.InvalidateData()
		c.ShouldInvalidate = true
		return c
	}
	if newBounds.Width != e.lastBounds.Width {
		e.InvalidateMetrics()
		c.ShouldInvalidate = true
	}
	return c
}

// =============================================================================
// Build pass
// =============================================================================

func (e *Engine) ensureLayout() {
	if e.dataValid && e.metricsValid {
		return
	}
	bounds := e.vp.Bounds()
	if bounds.IsEmpty() {
		return
	}
	e.buildLayout(bounds)
}

func (e *Engine) buildLayout(bounds geo.Rect) {
	start := time.Now()
	observability.Layout().OnBuildStart(len(e.sections))

	// While preparing, reentrant queries (from measurement callbacks) get
	// hidden, uncached attributes so half-built geometry never leaks out.
	e.preparing = true
	defer func() { e.preparing = false }()

	measured := false
	for pass := 0; ; pass++ {
		if !e.dataValid {
			e.rotateCaches()
			e.rebuildSections()
			e.dataValid = true
		}

		inset := e.vp.ContentInset()
		width := bounds.Width - inset.Horizontal()
		viewHeight := max(0, bounds.Height-inset.Vertical())

		y := 0.0
		measured = false
		if e.global != nil {
			y = e.global.Layout(geo.NewRect(0, 0, width, viewHeight), e.measure)
			measured = measured || e.global.remeasured
		}
		for _, s := range e.sections {
			avail := max(0, viewHeight-y)
			y = s.Layout(geo.NewRect(0, y, width, avail), e.measure)
			measured = measured || s.remeasured
		}
		e.layoutSize = geo.Size{Width: width, Height: y}

		e.populateCaches()

		// Measured supplements can change the heights everything below them
		// was laid out against; one extra pass settles them.
		if measured && pass == 0 {
			e.logger.Debug("supplement measured during pass, relaying out")
			continue
		}
		break
	}

	e.metricsValid = true
	e.lastBounds = bounds
	e.viewportID = e.vp.ID()
	e.haveViewportID = true
	e.updateSpecialAttributes()

	e.logger.Debug("layout built",
		"sections", len(e.sections),
		"contentHeight", e.layoutSize.Height,
		"elapsed", time.Since(start).Round(time.Microsecond))
	observability.Layout().OnBuildComplete(len(e.sections), time.Since(start), measured)
}

// rotateCaches swaps the generations: current becomes previous, and a fresh
// current map is started. No per-entry copying. The very first build has
// nothing to retire; previous stays nil so transition queries keep reading
// the live generation.
func (e *Engine) rotateCaches() {
	if len(e.current) == 0 {
		e.previous = nil
		e.current = make(attributeCache)
		return
	}
	e.previous = e.current
	e.current = make(attributeCache, len(e.previous))
	observability.Cache().OnRotate(len(e.previous))
}

// rebuildSections derives fresh SectionInfos from the data source snapshot.
func (e *Engine) rebuildSections() {
	metrics := e.ds.SnapshotMetrics()

	e.global = nil
	if gm, ok := metrics[GlobalSectionIndex]; ok {
		e.global = NewSectionInfo(GlobalSectionIndex, gm, 0)
	}

	n := e.ds.NumberOfSections()
	e.sections = make([]*SectionInfo, 0, n)
	for i := 0; i < n; i++ {
		idx := SectionIndex(i)
		m, ok := metrics[idx]
		if !ok {
			m = DefaultSectionMetrics()
		}
		e.sections = append(e.sections, NewSectionInfo(idx, m, e.ds.NumberOfItems(idx)))
	}
}

// populateCaches regenerates the current attribute cache and the pinning
// bookkeeping from the freshly laid-out sections.
func (e *Engine) populateCaches() {
	e.current = make(attributeCache, len(e.current))
	e.globalPinnable = e.globalPinnable[:0]
	e.globalNonPinnable = e.globalNonPinnable[:0]
	e.sectionPinnable = make(map[SectionIndex][]*Attributes)
	e.background = nil

	if e.global != nil {
		e.cacheSectionAttributes(e.global)
		e.cacheGlobalBackground()
	}
	for i, s := range e.sections {
		e.cacheSectionAttributes(s)
		e.cacheSeparators(s, i == len(e.sections)-1)
	}
}

func (e *Engine) cacheSectionAttributes(s *SectionInfo) {
	for i := range s.Items {
		a := e.newCellAttributes(s, i)
		e.current[a.Key()] = a
	}
	s.supplements(func(info *SupplementInfo) {
		a := e.newSupplementAttributes(s, info)
		e.current[a.Key()] = a

		if s.Index.IsGlobal() {
			if info.Metrics.Pinned {
				e.globalPinnable = append(e.globalPinnable, a)
			} else if info.Metrics.Kind == SupplementKindHeader {
				e.globalNonPinnable = append(e.globalNonPinnable, a)
			}
			return
		}
		if info.Metrics.Pinned {
			e.sectionPinnable[s.Index] = append(e.sectionPinnable[s.Index], a)
		}
	})
}

func (e *Engine) newCellAttributes(s *SectionInfo, item int) *Attributes {
	it := s.Items[item]
	m := s.Metrics
	return &Attributes{
		Category:                CategoryCell,
		IndexPath:               NewIndexPath(s.Index, item),
		Frame:                   it.Frame,
		ZIndex:                  zIndexCell,
		Alpha:                   1,
		BackgroundColor:         m.BackgroundColor,
		SelectedBackgroundColor: m.SelectedBackgroundColor,
		TintColor:               m.TintColor,
		SelectedTintColor:       m.SelectedTintColor,
		ColumnIndex:             it.ColumnIndex,
		UnpinnedY:               it.Frame.Y,
	}
}

func (e *Engine) newSupplementAttributes(s *SectionInfo, info *SupplementInfo) *Attributes {
	m := info.Metrics
	a := &Attributes{
		Category:                CategorySupplement,
		Kind:                    m.Kind,
		IndexPath:               NewIndexPath(s.Index, info.Index),
		Frame:                   info.Frame,
		ZIndex:                  zIndexSupplement,
		Hidden:                  m.Hidden || info.Frame.IsEmpty(),
		Alpha:                   1,
		BackgroundColor:         inheritColor(m.BackgroundColor, s.Metrics.BackgroundColor),
		SelectedBackgroundColor: inheritColor(m.SelectedBackgroundColor, s.Metrics.SelectedBackgroundColor),
		TintColor:               inheritColor(m.TintColor, s.Metrics.TintColor),
		SelectedTintColor:       inheritColor(m.SelectedTintColor, s.Metrics.SelectedTintColor),
		Padding:                 m.Padding,
		UnpinnedY:               info.Frame.Y,
	}
	return a
}

// inheritColor resolves a supplement color against its section.
func inheritColor(own, section Color) Color {
	if own.IsSet() {
		return own
	}
	return section
}

func (e *Engine) cacheGlobalBackground() {
	m := e.global.Metrics
	if !m.BackgroundColor.IsSet() {
		return
	}
	a := &Attributes{
		Category:        CategoryDecoration,
		Kind:            DecorationKindGlobalBackground,
		IndexPath:       NewIndexPath(GlobalSectionIndex, 0),
		Frame:           e.global.Frame,
		ZIndex:          zIndexDecoration,
		Alpha:           1,
		BackgroundColor: m.BackgroundColor,
		UnpinnedY:       e.global.Frame.Y,
	}
	e.current[a.Key()] = a
	e.background = a
}

// =============================================================================
// Query surface
// =============================================================================

// AttributesInRect returns the attributes of every visible element whose
// frame intersects r, ordered by z then identity. The pinning pass runs
// first so sticky elements report their live positions.
func (e *Engine) AttributesInRect(r geo.Rect) []*Attributes {
	e.ensureLayout()
	e.updateSpecialAttributes()

	var out []*Attributes
	for _, a := range e.current {
		if a.Hidden || !a.Frame.Intersects(r) {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.ZIndex != b.ZIndex {
			return a.ZIndex < b.ZIndex
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.IndexPath.Section != b.IndexPath.Section {
			return a.IndexPath.Section < b.IndexPath.Section
		}
		return a.IndexPath.Item < b.IndexPath.Item
	})
	return out
}

// CellAttributes returns the attributes for one item, or nil when the index
// path refers to nothing ("nothing to draw", never an error).
func (e *Engine) CellAttributes(ip IndexPath) *Attributes {
	e.ensureLayout()
	e.updateSpecialAttributes()
	return e.lookup(cellKey(ip), func() *Attributes { return e.synthesizeCell(ip) })
}

// SupplementAttributes returns the attributes for one supplement band.
func (e *Engine) SupplementAttributes(kind string, ip IndexPath) *Attributes {
	e.ensureLayout()
	e.updateSpecialAttributes()
	return e.lookup(supplementKey(kind, ip), func() *Attributes { return e.synthesizeSupplement(kind, ip) })
}

// DecorationAttributes returns the attributes for one decoration. Passing a
// kind the engine never registered is a programming error and panics.
func (e *Engine) DecorationAttributes(kind string, ip IndexPath) *Attributes {
	switch kind {
	case DecorationKindRowSeparator, DecorationKindColumnSeparator,
		DecorationKindHeaderSeparator, DecorationKindFooterSeparator,
		DecorationKindSectionSeparator, DecorationKindGlobalBackground:
	default:
		panic(fmt.Sprintf("grid: unknown decoration kind %q", kind))
	}
	e.ensureLayout()
	e.updateSpecialAttributes()
	return e.lookup(decorationKey(kind, ip), nil)
}

// lookup reads the current cache. While a build is preparing, misses are
// synthesized as hidden one-off records that are never cached.
func (e *Engine) lookup(key CacheKey, synth func() *Attributes) *Attributes {
	if a, ok := e.current[key]; ok {
		observability.Cache().OnHit()
		return a
	}
	observability.Cache().OnMiss()
	if e.preparing && synth != nil {
		if a := synth(); a != nil {
			a.Hidden = true
			return a
		}
	}
	return nil
}

func (e *Engine) sectionInfo(idx SectionIndex) *SectionInfo {
	if idx.IsGlobal() {
		return e.global
	}
	if int(idx) < 0 || int(idx) >= len(e.sections) {
		return nil
	}
	return e.sections[idx]
}

func (e *Engine) synthesizeCell(ip IndexPath) *Attributes {
	s := e.sectionInfo(ip.Section)
	if s == nil || ip.Item < 0 || ip.Item >= len(s.Items) {
		return nil
	}
	return e.newCellAttributes(s, ip.Item)
}

func (e *Engine) synthesizeSupplement(kind string, ip IndexPath) *Attributes {
	s := e.sectionInfo(ip.Section)
	if s == nil {
		return nil
	}
	var found *Attributes
	s.supplements(func(info *SupplementInfo) {
		if found == nil && info.Metrics.Kind == kind && info.Index == ip.Item {
			found = e.newSupplementAttributes(s, info)
		}
	})
	return found
}

// ContentSize returns the overall scrollable extent. When the scroll offset
// sits inside the global section's non-pinning region and the content does
// not fill the viewport, the height is padded so the pinning region still
// has room to stick.
func (e *Engine) ContentSize() geo.Size {
	e.ensureLayout()
	size := e.layoutSize

	if e.global != nil {
		nonPinnable := e.globalNonPinnableHeight()
		offsetY := e.vp.ContentOffset().Y
		viewHeight := e.vp.Bounds().Height
		if offsetY > 0 && offsetY < nonPinnable && size.Height < viewHeight+offsetY {
			size.Height = viewHeight + offsetY
		}
	}
	return size
}

// TargetContentOffset snaps a proposed scroll offset: it is clamped to the
// scrollable range, and when an update batch inserted sections, pulled back
// so the first new section is not hidden behind the pinned global region.
func (e *Engine) TargetContentOffset(proposed geo.Point) geo.Point {
	e.ensureLayout()
	inset := e.vp.ContentInset()
	bounds := e.vp.Bounds()

	minY := -inset.Top
	maxY := max(minY, e.layoutSize.Height-bounds.Height+inset.Bottom)
	y := min(max(proposed.Y, minY), maxY)

	if e.batch != nil {
		if firstY, ok := e.batch.firstInsertedSectionTop(e); ok {
			pinned := e.globalPinnableHeight()
			if y+pinned > firstY {
				y = max(minY, firstY-pinned)
			}
		}
	}
	return geo.Point{X: proposed.X, Y: y}
}

func (e *Engine) globalPinnableHeight() float64 {
	h := 0.0
	for _, a := range e.globalPinnable {
		h += a.Frame.Height
	}
	return h
}

func (e *Engine) globalNonPinnableHeight() float64 {
	h := 0.0
	for _, a := range e.globalNonPinnable {
		h += a.Frame.Height
	}
	return h
}
