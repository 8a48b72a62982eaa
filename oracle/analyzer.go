package oracle

import (
	"strings"
	"time"

	"vmdrop/log"
)

const (
	minExcerpt   = 5
	cacheKeyLen  = 100
	cacheTTL     = 60 * time.Second
	rateInterval = 2 * time.Second
)

type cacheEntry struct {
	judgment Judgment
	at       time.Time
}

// Analyzer wraps the remote oracle with a short-lived judgment cache, a
// pacer enforcing the minimum interval between remote calls, and the
// explicit heuristic fallback for the Unavailable branch. A nil remote
// means heuristic-only mode, which is a fully valid operating mode.
type Analyzer struct {
	remote    Oracle
	heuristic Heuristic
	pacer     *Pacer
	cache     map[string]cacheEntry
	now       func() time.Time
}

func NewAnalyzer(remote Oracle) *Analyzer {
	return &Analyzer{
		remote: remote,
		pacer:  NewPacer(rateInterval),
		cache:  make(map[string]cacheEntry),
		now:    time.Now,
	}
}

// IsGreetingComplete judges the excerpt, substituting the heuristic
// whenever the remote oracle is unavailable. Excerpts shorter than 5
// trimmed characters are incomplete without any call.
func (a *Analyzer) IsGreetingComplete(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) < minExcerpt {
		return false
	}
	return a.Judge(trimmed).Complete
}

// Judge returns the cached or freshly obtained judgment for the
// excerpt. Only remote verdicts are cached; heuristic scoring is cheap
// enough to rerun.
func (a *Analyzer) Judge(text string) Judgment {
	if a.remote == nil {
		j, _ := a.heuristic.Judge(text)
		return j
	}

	key := cacheKey(text)
	if e, ok := a.cache[key]; ok && a.now().Sub(e.at) < cacheTTL {
		return e.judgment
	}

	a.pacer.Wait()
	j, err := a.remote.Judge(text)
	if err != nil {
		log.Warnf("oracle unavailable, using heuristic: %v", err)
		j, _ = a.heuristic.Judge(text)
		j.Raw = "HEURISTIC_FALLBACK"
		return j
	}
	a.cache[key] = cacheEntry{judgment: j, at: a.now()}
	return j
}

func cacheKey(text string) string {
	key := strings.ToLower(strings.TrimSpace(text))
	if len(key) > cacheKeyLen {
		key = key[:cacheKeyLen]
	}
	return key
}
