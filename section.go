package valentime

import (
	"math"

	"go.uber.org/zap"
)

// Section is one narrative segment. Its Index is fixed at construction.
type Section struct {
	Index   int
	Active  bool
	Content SectionContent
}

// SectionChange is published once per transition of the active section.
// Previous is -1 for the first activation.
type SectionChange struct {
	Index    int
	Previous int
}

// MapToSection maps a progress value to a section index:
// clamp(floor(progress*count), 0, count-1). NaN maps to 0 and a
// non-positive count yields -1.
func MapToSection(progress float64, count int) int {
	if count <= 0 {
		return -1
	}
	if math.IsNaN(progress) {
		return 0
	}
	f := math.Floor(progress * float64(count))
	if f < 0 {
		return 0
	}
	if f > float64(count-1) {
		return count - 1
	}
	return int(f)
}

type changeHandler struct {
	id uint32
	fn func(SectionChange)
}

// ChangeHandle removes a subscriber registered with OnChange.
type ChangeHandle struct {
	id      uint32
	tracker *SectionTracker
}

// Remove unregisters the subscriber. Safe to call more than once.
func (h ChangeHandle) Remove() {
	if h.tracker == nil {
		return
	}
	t := h.tracker
	for i := range t.handlers {
		if t.handlers[i].id == h.id {
			// Copy so an Update in progress keeps its own list.
			kept := make([]changeHandler, 0, len(t.handlers)-1)
			kept = append(kept, t.handlers[:i]...)
			t.handlers = append(kept, t.handlers[i+1:]...)
			return
		}
	}
}

// SectionTracker keeps exactly one section active once it has seen a
// progress value, and publishes a SectionChange on every transition.
type SectionTracker struct {
	sections []Section
	previous int
	handlers []changeHandler
	nextID   uint32
	logger   *zap.Logger
}

// NewSectionTracker creates a tracker with one section per content entry.
// No section is active until the first Update.
func NewSectionTracker(contents []SectionContent, logger *zap.Logger) *SectionTracker {
	sections := make([]Section, len(contents))
	for i, c := range contents {
		sections[i] = Section{Index: i, Content: c}
	}
	return &SectionTracker{
		sections: sections,
		previous: -1,
		logger:   orNop(logger).Named("sections"),
	}
}

// OnChange registers fn to receive every SectionChange, in registration
// order.
func (t *SectionTracker) OnChange(fn func(SectionChange)) ChangeHandle {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, changeHandler{id: id, fn: fn})
	return ChangeHandle{id: id, tracker: t}
}

// Update maps progress to a section. When the section differs from the
// current one, the previous is deactivated, the next activated, and a
// single SectionChange published, even if several indices were skipped.
// An unchanged section has no side effects.
func (t *SectionTracker) Update(progress float64) {
	next := MapToSection(progress, len(t.sections))
	if next < 0 || next == t.previous {
		return
	}
	prev := t.previous
	if prev >= 0 {
		t.sections[prev].Active = false
	}
	t.sections[next].Active = true
	t.previous = next

	t.logger.Debug("section changed", zap.Int("index", next), zap.Int("previous", prev))

	evt := SectionChange{Index: next, Previous: prev}
	for _, h := range t.handlers {
		h.fn(evt)
	}
}

// Active returns the active section index, or -1 before the first Update.
func (t *SectionTracker) Active() int {
	return t.previous
}

// ActiveCount returns the number of active sections: 0 before the first
// Update, 1 afterwards.
func (t *SectionTracker) ActiveCount() int {
	n := 0
	for i := range t.sections {
		if t.sections[i].Active {
			n++
		}
	}
	return n
}

// Sections returns a copy of every section.
func (t *SectionTracker) Sections() []Section {
	out := make([]Section, len(t.sections))
	copy(out, t.sections)
	return out
}

// Section returns the section at index i.
func (t *SectionTracker) Section(i int) (Section, bool) {
	if i < 0 || i >= len(t.sections) {
		return Section{}, false
	}
	return t.sections[i], true
}

// Len returns the number of sections.
func (t *SectionTracker) Len() int {
	return len(t.sections)
}
