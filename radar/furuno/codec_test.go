package furuno

import (
	"bytes"
	"testing"
)

func TestBuildFrame(t *testing.T) {
	got := buildFrame(ModeSet, "62", "4", "0", "1")
	want := "$S62,4,0,1\r\n"
	if string(got) != want {
		t.Fatalf("buildFrame = %q, want %q", got, want)
	}
}

func TestBuildFrameNoFields(t *testing.T) {
	got := buildFrame(ModeReq, "69")
	want := "$R69\r\n"
	if string(got) != want {
		t.Fatalf("buildFrame = %q, want %q", got, want)
	}
}

func TestParseFrame(t *testing.T) {
	fr, ok := parseFrame("$N69,2,0,0,60,300,0")
	if !ok {
		t.Fatal("parseFrame returned ok=false")
	}
	if fr.Mode != ModeNotify || fr.ID != "69" {
		t.Fatalf("parseFrame = %+v", fr)
	}
	want := []string{"2", "0", "0", "60", "300", "0"}
	if len(fr.Fields) != len(want) {
		t.Fatalf("fields = %v, want %v", fr.Fields, want)
	}
	for i := range want {
		if fr.Fields[i] != want[i] {
			t.Fatalf("fields[%d] = %q, want %q", i, fr.Fields[i], want[i])
		}
	}
}

func TestParseFrameRejectsGarbage(t *testing.T) {
	cases := []string{"", "$", "garbage", "$X69,1", "N69,1"}
	for _, c := range cases {
		if _, ok := parseFrame(c); ok {
			t.Errorf("parseFrame(%q) = ok, want rejected", c)
		}
	}
}

func TestStreamSplitterReassemblesPartialLines(t *testing.T) {
	var s streamSplitter
	lines := s.Feed([]byte("$N69,2,0"))
	if len(lines) != 0 {
		t.Fatalf("expected no complete lines yet, got %v", lines)
	}
	lines = s.Feed([]byte(",0,60,300,0\r\n$N62,4"))
	if len(lines) != 1 || lines[0] != "$N69,2,0,0,60,300,0" {
		t.Fatalf("unexpected lines after first CRLF: %v", lines)
	}
	lines = s.Feed([]byte(",0,0\r\n"))
	if len(lines) != 1 || lines[0] != "$N62,4,0,0" {
		t.Fatalf("unexpected lines after second CRLF: %v", lines)
	}
}

func TestStreamSplitterMultipleLinesInOneFeed(t *testing.T) {
	var s streamSplitter
	lines := s.Feed([]byte("$N81,100,0\r\n$N83,200,0\r\n"))
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %v", len(lines), lines)
	}
}

func TestStreamSplitterDropsRunawayBuffer(t *testing.T) {
	var s streamSplitter
	s.Feed(bytes.Repeat([]byte("x"), 9000))
	if len(s.buf) != 0 {
		t.Fatalf("expected runaway unterminated buffer to be dropped, len=%d", len(s.buf))
	}
}
