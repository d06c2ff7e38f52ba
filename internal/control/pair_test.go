package control

import (
	"strconv"
	"testing"
)

type fakeWidget struct {
	shown []int
}

func (w *fakeWidget) Show(v int) { w.shown = append(w.shown, v) }

func (w *fakeWidget) last() int {
	if len(w.shown) == 0 {
		return -1
	}
	return w.shown[len(w.shown)-1]
}

func newTestPair(min, max, initial int) (*Pair, *fakeWidget, *fakeWidget, *[]int) {
	a, b := &fakeWidget{}, &fakeWidget{}
	p := NewPair("test", a, b, min, max, initial)
	var emitted []int
	p.OnChange(func(v int) { emitted = append(emitted, v) })
	return p, a, b, &emitted
}

func TestNewPair_ShowsClampedInitial(t *testing.T) {
	p, a, b, emitted := newTestPair(1, 100, 500)
	if p.Value() != 100 {
		t.Errorf("Value() = %d, want 100", p.Value())
	}
	if a.last() != 100 || b.last() != 100 {
		t.Errorf("widgets = %d/%d, want 100/100", a.last(), b.last())
	}
	if len(*emitted) != 0 {
		t.Errorf("initial value emitted %v", *emitted)
	}
}

func TestPair_Consistency(t *testing.T) {
	for v := 1; v <= 256; v++ {
		p, a, b, _ := newTestPair(1, 256, 16)

		p.OnPrimaryChanged(strconv.Itoa(v))
		if b.last() != v || a.last() != v {
			t.Fatalf("primary %d: widgets %d/%d", v, a.last(), b.last())
		}

		p.OnSecondaryChanged(strconv.Itoa(v))
		if a.last() != v || b.last() != v {
			t.Fatalf("secondary %d: widgets %d/%d", v, a.last(), b.last())
		}
	}
}

func TestPair_Clamp(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"in range", "9", 9},
		{"below min", "0", 3},
		{"negative", "-7", 3},
		{"above max", "1000", 12},
		{"decimal truncates", "5.9", 5},
		{"whitespace", "  8 ", 8},
		{"huge", "1e20", 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, a, b, emitted := newTestPair(3, 12, 4)
			p.OnSecondaryChanged(tt.raw)
			if p.Value() != tt.want {
				t.Errorf("Value() = %d, want %d", p.Value(), tt.want)
			}
			if a.last() != tt.want || b.last() != tt.want {
				t.Errorf("widgets = %d/%d", a.last(), b.last())
			}
			if len(*emitted) != 1 || (*emitted)[0] != tt.want {
				t.Errorf("emitted = %v, want [%d]", *emitted, tt.want)
			}
		})
	}
}

func TestPair_UnparsableSnapsBack(t *testing.T) {
	for _, raw := range []string{"", "abc", "NaN", "--"} {
		t.Run(raw, func(t *testing.T) {
			p, a, b, emitted := newTestPair(1, 256, 16)
			p.OnSecondaryChanged(raw)

			if p.Value() != 16 {
				t.Errorf("Value() = %d, want 16", p.Value())
			}
			if a.last() != 16 || b.last() != 16 {
				t.Errorf("widgets = %d/%d, want 16/16", a.last(), b.last())
			}
			if len(*emitted) != 0 {
				t.Errorf("emitted = %v, want none", *emitted)
			}
		})
	}
}

func TestPair_SetBoundClampsAndEmits(t *testing.T) {
	p, a, b, emitted := newTestPair(1, 100, 1)
	p.Set(50)
	*emitted = nil

	p.SetBound(7)

	if p.Value() != 7 || p.Max() != 7 {
		t.Errorf("Value()/Max() = %d/%d, want 7/7", p.Value(), p.Max())
	}
	if a.last() != 7 || b.last() != 7 {
		t.Errorf("widgets = %d/%d", a.last(), b.last())
	}
	if len(*emitted) != 1 || (*emitted)[0] != 7 {
		t.Errorf("emitted = %v, want [7]", *emitted)
	}

	// Edits are clamped to the lowered bound
	p.Set(20)
	if p.Value() != 7 {
		t.Errorf("after Set(20) Value() = %d, want 7", p.Value())
	}
}

func TestPair_SetBoundWithinRangeIsSilent(t *testing.T) {
	p, _, _, emitted := newTestPair(1, 100, 5)
	p.SetBound(50)
	if p.Value() != 5 {
		t.Errorf("Value() = %d, want 5", p.Value())
	}
	if len(*emitted) != 0 {
		t.Errorf("emitted = %v, want none", *emitted)
	}
}

func TestPair_SetBoundLimits(t *testing.T) {
	p, _, _, _ := newTestPair(1, 100, 5)

	p.SetBound(0)
	if p.Max() != 1 || p.Value() != 1 {
		t.Errorf("SetBound(0): Max/Value = %d/%d, want 1/1", p.Max(), p.Value())
	}

	p.SetBound(5000)
	if p.Max() != 100 {
		t.Errorf("SetBound(5000): Max = %d, want ceiling 100", p.Max())
	}
}

func TestPair_Step(t *testing.T) {
	p, _, _, _ := newTestPair(3, 12, 4)
	p.Step(1)
	p.Step(1)
	if p.Value() != 6 {
		t.Errorf("Value() = %d, want 6", p.Value())
	}
	p.Step(-10)
	if p.Value() != 3 {
		t.Errorf("Value() = %d, want 3", p.Value())
	}
}
