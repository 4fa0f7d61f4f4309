package lexicon

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/antzucaro/matchr"
)

const suggestionThreshold = 0.80

// Memory is an in-memory Source, usually filled from a YAML seed.
type Memory struct {
	mu     sync.RWMutex
	lemmas map[string][]Candidate
	nextID int64
}

func NewMemory() *Memory {
	return &Memory{
		lemmas: make(map[string][]Candidate),
		nextID: 1,
	}
}

// Add stores c under its lemma. Candidates without an ID get the next free one.
func (m *Memory) Add(c Candidate) Candidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Lemma = strings.ToLower(c.Lemma)
	if c.ID <= 0 {
		c.ID = m.nextID
	}
	if c.ID >= m.nextID {
		m.nextID = c.ID + 1
	}
	m.lemmas[c.Lemma] = append(m.lemmas[c.Lemma], c)
	return c
}

func (m *Memory) Lookup(ctx context.Context, lemma string) ([]Candidate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	stored := m.lemmas[strings.ToLower(lemma)]
	result := make([]Candidate, len(stored))
	copy(result, stored)
	return result, nil
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.lemmas)
}

// Suggest returns up to limit known lemmas that sound or look like lemma.
// Lemmas sharing a Double Metaphone code rank first, ties are broken by
// Jaro-Winkler similarity.
func (m *Memory) Suggest(lemma string, limit int) []string {
	lemma = strings.ToLower(lemma)
	p, s := matchr.DoubleMetaphone(lemma)

	type scored struct {
		lemma    string
		phonetic bool
		score    float64
	}
	var found []scored

	m.mu.RLock()
	for known := range m.lemmas {
		if known == lemma {
			continue
		}
		kp, ks := matchr.DoubleMetaphone(known)
		phonetic := (p != "" && (p == kp || p == ks)) || (s != "" && (s == kp || s == ks))
		score := matchr.JaroWinkler(lemma, known, false)
		if !phonetic && score < suggestionThreshold {
			continue
		}
		found = append(found, scored{lemma: known, phonetic: phonetic, score: score})
	}
	m.mu.RUnlock()

	sort.Slice(found, func(i, j int) bool {
		if found[i].phonetic != found[j].phonetic {
			return found[i].phonetic
		}
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		return found[i].lemma < found[j].lemma
	})
	if limit > 0 && len(found) > limit {
		found = found[:limit]
	}
	result := make([]string, 0, len(found))
	for _, f := range found {
		result = append(result, f.lemma)
	}
	return result
}
