package lexicon

import (
	"fmt"
	"strings"
	"sync"
)

// Observer is notified whenever the selected candidate of an Entry changes.
type Observer interface {
	OnSelected(entry *Entry, selected Candidate)
}

type ObserverFunc func(entry *Entry, selected Candidate)

func (f ObserverFunc) OnSelected(entry *Entry, selected Candidate) {
	f(entry, selected)
}

// Entry is the result of a lexicon query: every candidate known for a lemma,
// grouped by word class and variety, plus the currently selected one.
//
// Entry is safe for one writer and many readers. Observers are called
// synchronously by the goroutine that changed the selection, without any
// ordering guarantee between observers.
type Entry struct {
	lemma     string
	preferred Variety

	mu        sync.RWMutex
	items     []Candidate
	selected  int
	observers map[int]Observer
	nextObs   int
}

// NewEntry returns an empty entry for lemma. Preferred is the variety the
// user wants selected whenever a candidate of it is available.
func NewEntry(lemma string, preferred Variety) *Entry {
	return &Entry{
		lemma:     strings.ToLower(lemma),
		preferred: preferred,
		selected:  -1,
		observers: make(map[int]Observer),
	}
}

func (e *Entry) Lemma() string {
	return e.lemma
}

func (e *Entry) PreferredVariety() Variety {
	return e.preferred
}

func (e *Entry) isPreferred(c Candidate) bool {
	return !e.preferred.IsZero() && c.Variety == e.preferred
}

// Add inserts c and updates the selection: c becomes selected if nothing is
// selected yet, if the selection is not of the preferred variety while c is,
// or if c is a weak form of the preferred variety.
func (e *Entry) Add(c Candidate) {
	e.mu.Lock()
	e.items = append(e.items, c)
	idx := len(e.items) - 1
	changed := false
	switch {
	case e.selected < 0:
		changed = true
	case !e.isPreferred(e.items[e.selected]) && e.isPreferred(c):
		changed = true
	case e.isPreferred(c) && c.Type == TypeWeak:
		changed = true
	}
	if changed {
		e.selected = idx
	}
	observers := e.observerSnapshot()
	e.mu.Unlock()

	if changed {
		notify(observers, e, c)
	}
}

// Select makes c the selected candidate. It returns false if c is not part
// of the entry.
func (e *Entry) Select(c Candidate) bool {
	e.mu.Lock()
	idx := -1
	for i := range e.items {
		if e.items[i] == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		e.mu.Unlock()
		return false
	}
	changed := e.selected != idx
	e.selected = idx
	observers := e.observerSnapshot()
	e.mu.Unlock()

	if changed {
		notify(observers, e, c)
	}
	return true
}

// Subscribe registers o and returns a function removing it again.
func (e *Entry) Subscribe(o Observer) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextObs
	e.nextObs++
	e.observers[id] = o
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.observers, id)
		e.mu.Unlock()
	}
}

// observerSnapshot must be called with the lock held.
func (e *Entry) observerSnapshot() []Observer {
	if len(e.observers) == 0 {
		return nil
	}
	result := make([]Observer, 0, len(e.observers))
	for _, o := range e.observers {
		result = append(result, o)
	}
	return result
}

func notify(observers []Observer, e *Entry, c Candidate) {
	for _, o := range observers {
		o.OnSelected(e, c)
	}
}

func (e *Entry) Selected() (Candidate, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.selected < 0 {
		return Candidate{}, false
	}
	return e.items[e.selected], true
}

func (e *Entry) IsEmpty() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.items) == 0
}

// Candidates returns a copy of all candidates in insertion order.
func (e *Entry) Candidates() []Candidate {
	e.mu.RLock()
	defer e.mu.RUnlock()
	result := make([]Candidate, len(e.items))
	copy(result, e.items)
	return result
}

// CandidatesFor returns the candidates of the given word class and variety.
// The boolean is false if the entry has no such group.
func (e *Entry) CandidatesFor(wordClass WordClass, variety Variety) ([]Candidate, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var result []Candidate
	for _, c := range e.items {
		if c.WordClass == wordClass && c.Variety == variety {
			result = append(result, c)
		}
	}
	return result, len(result) != 0
}

func (e *Entry) ByID(id int64) (Candidate, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	for _, c := range e.items {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}

// WordClasses returns the distinct word classes in order of first appearance.
func (e *Entry) WordClasses() []WordClass {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var result []WordClass
	for _, c := range e.items {
		seen := false
		for _, wc := range result {
			if wc == c.WordClass {
				seen = true
				break
			}
		}
		if !seen {
			result = append(result, c.WordClass)
		}
	}
	return result
}

func (e *Entry) MatchesMultipleWordClasses() bool {
	return len(e.WordClasses()) > 1
}

func (e *Entry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entry (%q):", e.lemma)
	items := e.Candidates()
	if len(items) == 0 {
		b.WriteString(" empty")
		return b.String()
	}
	for _, wc := range e.WordClasses() {
		fmt.Fprintf(&b, "\n\t%s:", wc.Name)
		for _, c := range items {
			if c.WordClass != wc {
				continue
			}
			fmt.Fprintf(&b, "\n\t\t%s: /%s/ (%s)", c.Variety.Abbreviation, c.Phonetic, c.Type)
		}
	}
	return b.String()
}
