package oracle

import "time"

// Pacer enforces a minimum interval between calls by blocking until the
// earliest permitted time. Clock and sleep are injectable so tests run
// without real time passing.
type Pacer struct {
	interval time.Duration
	next     time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval, now: time.Now, sleep: time.Sleep}
}

// Wait blocks until the next permitted call time, then schedules the
// one after it.
func (p *Pacer) Wait() {
	if t := p.now(); t.Before(p.next) {
		p.sleep(p.next.Sub(t))
	}
	p.next = p.now().Add(p.interval)
}
