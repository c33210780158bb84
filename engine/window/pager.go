package window

// DefaultPageDebounceMs is the quiet period after an accepted wheel page.
const DefaultPageDebounceMs = 800

// Pager turns wheel events into section changes. Scrolling down advances, scrolling up goes
// back, both wrapping at the ends. After an accepted page, further wheel input is ignored
// until the debounce period has passed, so one flick of the wheel moves one section.
//
// A Pager is not safe for concurrent use.
type Pager struct {
	count      int
	section    int
	debounceMs float64
	lastMs     float64
	paged      bool
}

// NewPager creates a pager over count sections, starting at section 0.
//
// Parameters:
//   - count: the number of sections; values below 1 are treated as 1
//   - debounceMs: the quiet period after each accepted page
//
// Returns:
//   - *Pager: the new pager
func NewPager(count int, debounceMs float64) *Pager {
	return &Pager{count: max(count, 1), debounceMs: debounceMs}
}

// Reset starts over at section 0 with a new section count, as on a scene change. The debounce
// window is kept.
//
// Parameters:
//   - count: the new number of sections
func (p *Pager) Reset(count int) {
	p.count = max(count, 1)
	p.section = 0
}

// Sync moves the pager to section without paging, for section changes made by other inputs.
// Out-of-range values are ignored.
//
// Parameters:
//   - section: the section now shown
func (p *Pager) Sync(section int) {
	if section >= 0 && section < p.count {
		p.section = section
	}
}

// Section returns the current section.
func (p *Pager) Section() int {
	return p.section
}

// Scroll applies one wheel event.
//
// Parameters:
//   - delta: the vertical wheel delta; negative scrolls down
//   - nowMs: the event time in milliseconds
//
// Returns:
//   - int: the current section after the event
//   - bool: true if the event changed the section
func (p *Pager) Scroll(delta float32, nowMs float64) (int, bool) {
	if delta == 0 {
		return p.section, false
	}
	if p.paged && nowMs-p.lastMs < p.debounceMs {
		return p.section, false
	}

	if delta < 0 {
		p.section = (p.section + 1) % p.count
	} else {
		p.section = (p.section - 1 + p.count) % p.count
	}
	p.paged = true
	p.lastMs = nowMs
	return p.section, true
}
