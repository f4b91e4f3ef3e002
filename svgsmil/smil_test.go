package svgsmil

import "testing"

func TestFrameIndexClamped(t *testing.T) {
	anim := TimedAnimation{
		Values:   []string{"a", "b", "c", "d"},
		Duration: 2.0, // four slices of 0.5s
	}
	cases := []struct {
		elapsed float64
		want    int
	}{
		{-1, 0}, // before the start
		{0, 0},
		{0.49, 0},
		{0.5, 1}, // slice boundary belongs to the next frame
		{0.99, 1},
		{1.0, 2},
		{1.99, 3},
		{2.0, 3}, // past the end: clamp
		{5.0, 3},
	}
	for _, c := range cases {
		if got := anim.FrameIndexAt(c.elapsed); got != c.want {
			t.Errorf("FrameIndexAt(%g) = %d, want %d", c.elapsed, got, c.want)
		}
	}
}

func TestFrameIndexRepeating(t *testing.T) {
	anim := TimedAnimation{
		Values:   []string{"a", "b", "c", "d"},
		Duration: 2.0,
		Repeat:   true,
	}
	cases := []struct {
		elapsed float64
		want    int
	}{
		{0, 0},
		{2.0, 0}, // exact multiple wraps to the start
		{2.5, 1},
		{4.75, 1},
		{-0.25, 3}, // negative times wrap backwards
		{-2.0, 0},
	}
	for _, c := range cases {
		if got := anim.FrameIndexAt(c.elapsed); got != c.want {
			t.Errorf("FrameIndexAt(%g) = %d, want %d", c.elapsed, got, c.want)
		}
	}
}

func TestFrameIndexDegenerate(t *testing.T) {
	// zero duration: always frame 0
	anim := TimedAnimation{Values: []string{"a", "b"}, Duration: 0}
	for _, elapsed := range []float64{-1, 0, 0.5, 100} {
		if got := anim.FrameIndexAt(elapsed); got != 0 {
			t.Errorf("zero duration, FrameIndexAt(%g) = %d, want 0", elapsed, got)
		}
	}

	// single value: always frame 0, at any time
	anim = TimedAnimation{Values: []string{"only"}, Duration: 3, Repeat: true}
	for _, elapsed := range []float64{0, 1.5, 3, 10} {
		if got := anim.FrameIndexAt(elapsed); got != 0 {
			t.Errorf("single value, FrameIndexAt(%g) = %d, want 0", elapsed, got)
		}
	}

	// no values at all
	anim = TimedAnimation{Duration: 1}
	if anim.FrameIndexAt(0.5) != 0 || anim.ValueAt(0.5) != "" {
		t.Error("empty animation should report frame 0 and empty value")
	}
}

func TestValueAt(t *testing.T) {
	anim := TimedAnimation{
		Values:   []string{"#f1", "#f2", "#f3"},
		Duration: 1.5,
	}
	if v := anim.ValueAt(0.2); v != "#f1" {
		t.Errorf("ValueAt(0.2) = %q, want #f1", v)
	}
	if v := anim.ValueAt(0.7); v != "#f2" {
		t.Errorf("ValueAt(0.7) = %q, want #f2", v)
	}
	if v := anim.ValueAt(10); v != "#f3" {
		t.Errorf("ValueAt(10) = %q, want #f3 (clamped)", v)
	}
}

func TestFrameCount(t *testing.T) {
	anim := TimedAnimation{Values: []string{"a", "b", "c"}}
	if anim.FrameCount() != 3 {
		t.Errorf("FrameCount = %d, want 3", anim.FrameCount())
	}
}
