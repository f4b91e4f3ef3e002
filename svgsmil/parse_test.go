package svgsmil

import (
	"strings"
	"testing"
)

const frameByFrameDoc = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
  <g id="scene">
    <use id="frame1" xlink:href="#f1">
      <animate attributeName="xlink:href" values="#f1; #f2 ;#f3" dur="1.5s" repeatCount="indefinite"/>
    </use>
  </g>
</svg>`

func TestParseEnclosingUse(t *testing.T) {
	anims := ParseAnimations(frameByFrameDoc, IgnoreErrorMode)
	if len(anims) != 1 {
		t.Fatalf("expected 1 animation, got %d", len(anims))
	}
	a := anims[0]
	if a.TargetID != "frame1" {
		t.Errorf("target: got %q, want frame1", a.TargetID)
	}
	if a.AttributeName != "xlink:href" {
		t.Errorf("attributeName: got %q", a.AttributeName)
	}
	if len(a.Values) != 3 || a.Values[0] != "#f1" || a.Values[1] != "#f2" || a.Values[2] != "#f3" {
		t.Errorf("values: got %v, want trimmed #f1 #f2 #f3", a.Values)
	}
	if a.Duration != 1.5 {
		t.Errorf("duration: got %g, want 1.5", a.Duration)
	}
	if !a.Repeat {
		t.Error("repeatCount=indefinite should set Repeat")
	}
	if a.CalcMode != "discrete" {
		t.Errorf("calcMode default: got %q", a.CalcMode)
	}
}

func TestParseHrefTarget(t *testing.T) {
	doc := `<svg><animate xlink:href="#loadRing" attributeName="opacity" values="0;1" dur="1s"/></svg>`
	anims := ParseAnimations(doc, IgnoreErrorMode)
	if len(anims) != 1 || anims[0].TargetID != "loadRing" {
		t.Fatalf("got %+v, want one animation targeting loadRing", anims)
	}

	doc = `<svg><animate href="#ring2" attributeName="opacity" values="0;1" dur="1s"/></svg>`
	anims = ParseAnimations(doc, IgnoreErrorMode)
	if len(anims) != 1 || anims[0].TargetID != "ring2" {
		t.Fatalf("got %+v, want one animation targeting ring2", anims)
	}
}

func TestParseClosedUseFallsBackToGroup(t *testing.T) {
	doc := `<svg>
  <g id="grp">
    <use id="u1" xlink:href="#x"></use>
    <animate attributeName="opacity" values="0;1" dur="1s"/>
  </g>
</svg>`
	anims := ParseAnimations(doc, IgnoreErrorMode)
	if len(anims) != 1 {
		t.Fatalf("expected 1 animation, got %d", len(anims))
	}
	// the <use> closed before the declaration is not its parent
	if anims[0].TargetID != "grp" {
		t.Errorf("target: got %q, want grp", anims[0].TargetID)
	}
}

func TestParseDropsUnresolvable(t *testing.T) {
	for _, doc := range []string{
		// no values at all
		`<svg><use id="a"><animate attributeName="href" dur="1s"/></use></svg>`,
		// values present but all empty after trimming
		`<svg><use id="a"><animate attributeName="href" values=" ; ; " dur="1s"/></use></svg>`,
		// no resolvable target
		`<svg><animate attributeName="href" values="#a;#b" dur="1s"/></svg>`,
	} {
		if anims := ParseAnimations(doc, IgnoreErrorMode); len(anims) != 0 {
			t.Errorf("document %q: expected drop, got %+v", doc, anims)
		}
	}
}

func TestParseRestartable(t *testing.T) {
	first := ParseAnimations(frameByFrameDoc, IgnoreErrorMode)
	second := ParseAnimations(frameByFrameDoc, IgnoreErrorMode)
	if len(first) != len(second) {
		t.Fatalf("re-parse changed the count: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].TargetID != second[i].TargetID || first[i].Duration != second[i].Duration {
			t.Errorf("re-parse changed record %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestParseDurationUnits(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"500ms", 0.5},
		{"1.5s", 1.5},
		{"3", 3},
		{"2min", 120},
		{"1h", 3600},
		{"", 0},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := parseDuration(c.in); got != c.want {
			t.Errorf("parseDuration(%q) = %g, want %g", c.in, got, c.want)
		}
	}
}

func TestParseRepeatCount(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"indefinite", true},
		{"3", true},
		{"1.5", true},
		{"1", false},
		{"0.5", false},
		{"", false},
		{"abc", false},
	}
	for _, c := range cases {
		if got := parseRepeatCount(c.in); got != c.want {
			t.Errorf("parseRepeatCount(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestExtractAttributeBoundaries(t *testing.T) {
	tag := `<use dx="5" x="10" data-x='7'`
	if v := extractAttribute(tag, "x"); v != "10" {
		t.Errorf("x: got %q, want 10 (not the dx value)", v)
	}
	if v := extractAttribute(tag, "dx"); v != "5" {
		t.Errorf("dx: got %q, want 5", v)
	}
	if v := extractAttribute(tag, "missing"); v != "" {
		t.Errorf("missing attribute: got %q, want empty", v)
	}
}

func TestParseDocumentOrder(t *testing.T) {
	doc := `<svg>
  <use id="first"><animate attributeName="href" values="a;b" dur="1s"/></use>
  <use id="second"><animate attributeName="href" values="c;d" dur="2s"/></use>
</svg>`
	anims := ParseAnimations(doc, IgnoreErrorMode)
	if len(anims) != 2 {
		t.Fatalf("expected 2 animations, got %d", len(anims))
	}
	if anims[0].TargetID != "first" || anims[1].TargetID != "second" {
		t.Errorf("document order not preserved: %q, %q", anims[0].TargetID, anims[1].TargetID)
	}
}

func TestReadAnimations(t *testing.T) {
	for _, input := range []string{
		frameByFrameDoc,
		"\xef\xbb\xbf" + frameByFrameDoc, // UTF-8 BOM
	} {
		content, anims, err := ReadAnimations(strings.NewReader(input), IgnoreErrorMode)
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(content, "<svg") {
			t.Error("returned content lost the document")
		}
		if len(anims) != 1 || anims[0].TargetID != "frame1" {
			t.Errorf("got %+v, want one animation targeting frame1", anims)
		}
	}
}
