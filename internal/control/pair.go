package control

import (
	"math"
	"strconv"
	"strings"
)

// Widget is one of the two inputs displaying a pair's value
type Widget interface {
	Show(v int)
}

// Pair keeps two widgets showing one bounded integer. It is the only place
// where clamping happens and where change notifications originate.
//
// A Pair is not safe for concurrent use; all calls come from the UI loop.
type Pair struct {
	name      string
	primary   Widget
	secondary Widget
	min       int
	max       int
	ceiling   int
	value     int
	onChange  []func(int)
}

// NewPair builds a pair bounded by [min, max] and shows the clamped initial
// value on both widgets. No change notification is emitted for the initial
// value. max is also the ceiling SetBound can never exceed.
func NewPair(name string, primary, secondary Widget, min, max, initial int) *Pair {
	if max < min {
		max = min
	}
	p := &Pair{
		name:      name,
		primary:   primary,
		secondary: secondary,
		min:       min,
		max:       max,
		ceiling:   max,
	}
	p.value = p.clamp(initial)
	p.show()
	return p
}

// Name identifies the pair in logs and settings
func (p *Pair) Name() string { return p.name }

// Value returns the settled value
func (p *Pair) Value() int { return p.value }

// Min returns the lower bound
func (p *Pair) Min() int { return p.min }

// Max returns the current upper bound
func (p *Pair) Max() int { return p.max }

// Ceiling returns the upper bound the pair was built with
func (p *Pair) Ceiling() int { return p.ceiling }

// OnChange registers a valueChanged listener
func (p *Pair) OnChange(fn func(v int)) {
	p.onChange = append(p.onChange, fn)
}

// OnPrimaryChanged handles an edit made through the primary widget
func (p *Pair) OnPrimaryChanged(raw string) {
	p.settle(raw)
}

// OnSecondaryChanged handles an edit made through the secondary widget
func (p *Pair) OnSecondaryChanged(raw string) {
	p.settle(raw)
}

// Step moves the value by delta through the primary path
func (p *Pair) Step(delta int) {
	p.OnPrimaryChanged(strconv.Itoa(p.value + delta))
}

// Set assigns v through the primary path
func (p *Pair) Set(v int) {
	p.OnPrimaryChanged(strconv.Itoa(v))
}

// SetBound lowers or raises the upper bound. A bound below min is raised to
// min and a bound above the ceiling is capped. When the current value no
// longer fits it is clamped and listeners are notified.
func (p *Pair) SetBound(newMax int) {
	if newMax < p.min {
		newMax = p.min
	}
	if newMax > p.ceiling {
		newMax = p.ceiling
	}
	p.max = newMax
	if p.value > p.max {
		p.value = p.max
		p.show()
		p.emit()
	}
}

func (p *Pair) settle(raw string) {
	v, ok := parse(raw)
	if !ok {
		// Unparsable input is discarded; both widgets snap back
		p.show()
		return
	}
	p.value = p.clamp(v)
	p.show()
	p.emit()
}

func (p *Pair) clamp(v int) int {
	if v < p.min {
		return p.min
	}
	if v > p.max {
		return p.max
	}
	return v
}

func (p *Pair) show() {
	if p.primary != nil {
		p.primary.Show(p.value)
	}
	if p.secondary != nil {
		p.secondary.Show(p.value)
	}
}

func (p *Pair) emit() {
	for _, fn := range p.onChange {
		fn(p.value)
	}
}

// parse accepts integers and truncates decimals, the way a numeric field
// reports partially typed input
func parse(raw string) (int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f > math.MaxInt32 {
		return math.MaxInt32, true
	}
	if f < math.MinInt32 {
		return math.MinInt32, true
	}
	return int(f), true
}
