package codec

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

const sampleVTT = `WEBVTT

NOTE generated by a caption service

cue1
00:00:01.000 --> 00:00:03.000
Hello world

00:01:04.500 --> 00:01:06.000 line:10% position:80%
Up and to the right
`

func TestParseVTT(t *testing.T) {
	got, err := Parse([]byte(sampleVTT), VTT)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(got.Cues) != 2 {
		t.Fatalf("Parse() found %d cues, want 2", len(got.Cues))
	}

	first := got.Cues[0]
	if first.StartMS != 1000 || first.EndMS != 3000 {
		t.Errorf("first cue = [%d, %d], want [1000, 3000]", first.StartMS, first.EndMS)
	}
	if !reflect.DeepEqual(first.Lines, []string{"Hello world"}) {
		t.Errorf("first lines = %q", first.Lines)
	}
	if first.Position.Placement != timeline.PlaceDefault {
		t.Errorf("first placement = %v, want default", first.Position.Placement)
	}

	second := got.Cues[1]
	if second.StartMS != 64500 || second.EndMS != 66000 {
		t.Errorf("second cue = [%d, %d], want [64500, 66000]", second.StartMS, second.EndMS)
	}
	if second.Position.Placement != timeline.PlaceTop {
		t.Errorf("second placement = %v, want top", second.Position.Placement)
	}
	if second.Position.LinePct != 10 || second.Position.ColumnPct != 80 {
		t.Errorf("second position = %+v, want line 10, column 80", second.Position)
	}
}

func TestParseVTTRequiresHeader(t *testing.T) {
	input := "00:00:01.000 --> 00:00:02.000\nHi\n"
	_, err := Parse([]byte(input), VTT)
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want ParseError", err)
	}
	if !strings.Contains(pe.Reason, "WEBVTT") {
		t.Errorf("Reason = %q, want WEBVTT header complaint", pe.Reason)
	}
}

func TestParseVTTVoiceTag(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<v Alice>Hi there\n"
	got, err := Parse([]byte(input), VTT)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cue := got.Cues[0]
	if cue.Speaker != "Alice" {
		t.Errorf("Speaker = %q, want Alice", cue.Speaker)
	}
	if cue.Lines[0] != "Hi there" {
		t.Errorf("line = %q, want Hi there", cue.Lines[0])
	}
}

func TestParseVTTClassedVoiceTag(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<v.loud Bob Smith>Shouting</v>\n"
	got, err := Parse([]byte(input), VTT)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Cues[0].Speaker != "Bob Smith" {
		t.Errorf("Speaker = %q, want Bob Smith", got.Cues[0].Speaker)
	}
	if got.Cues[0].Lines[0] != "Shouting" {
		t.Errorf("line = %q, want Shouting", got.Cues[0].Lines[0])
	}
}

func TestParseVTTFormattingTags(t *testing.T) {
	input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000\n<b>Bold move</b>\n"
	got, err := Parse([]byte(input), VTT)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cue := got.Cues[0]
	if cue.Lines[0] != "Bold move" {
		t.Errorf("line = %q, want tags stripped", cue.Lines[0])
	}
	if cue.Style["bold"] != "1" {
		t.Errorf("Style = %v, want bold lifted", cue.Style)
	}
}

func TestParseVTTLineBands(t *testing.T) {
	tests := []struct {
		setting string
		want    timeline.Placement
	}{
		{"line:0%", timeline.PlaceTop},
		{"line:30%", timeline.PlaceTop},
		{"line:40%", timeline.PlaceCenter},
		{"line:50%", timeline.PlaceCenter},
		{"line:60%", timeline.PlaceCenter},
		{"line:35%", timeline.PlaceBottom},
		{"line:90%", timeline.PlaceBottom},
	}

	for _, tt := range tests {
		input := "WEBVTT\n\n00:00:01.000 --> 00:00:02.000 " + tt.setting + "\nHi\n"
		got, err := Parse([]byte(input), VTT)
		if err != nil {
			t.Fatalf("Parse(%q) error = %v", tt.setting, err)
		}
		if got.Cues[0].Position.Placement != tt.want {
			t.Errorf("%s: Placement = %v, want %v", tt.setting, got.Cues[0].Position.Placement, tt.want)
		}
	}
}

func TestSerializeVTT(t *testing.T) {
	tl := timeline.Timeline{Cues: []timeline.Cue{
		{StartMS: 1000, EndMS: 3000, Lines: []string{"Hello"}, Position: timeline.DefaultPosition()},
	}}

	out, err := Serialize(tl, VTT, DefaultStyle())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	want := "WEBVTT\n\ncue1\n00:00:01.000 --> 00:00:03.000\nHello\n\n"
	if string(out) != want {
		t.Errorf("Serialize() =\n%q\nwant\n%q", out, want)
	}
}

func TestSerializeVTTPositionSettings(t *testing.T) {
	tl := timeline.Timeline{Cues: []timeline.Cue{
		{
			StartMS:  1000,
			EndMS:    3000,
			Lines:    []string{"On top"},
			Position: timeline.Position{Placement: timeline.PlaceTop, LinePct: -1, ColumnPct: -1},
		},
	}}

	out, err := Serialize(tl, VTT, DefaultStyle())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if !strings.Contains(string(out), "line:10% align:center") {
		t.Errorf("Serialize() missing top settings:\n%s", out)
	}
}

func TestVTTRoundTrip(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{
		{
			StartMS:  1000,
			EndMS:    3000,
			Lines:    []string{"Hi there"},
			Speaker:  "Ann",
			Position: timeline.Position{Placement: timeline.PlaceTop, LinePct: 10, ColumnPct: -1},
		},
	}}

	out, err := Serialize(in, VTT, DefaultStyle())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	back, err := Parse(out, VTT)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cue := back.Cues[0]
	if cue.StartMS != 1000 || cue.EndMS != 3000 {
		t.Errorf("span = [%d, %d]", cue.StartMS, cue.EndMS)
	}
	if cue.Speaker != "Ann" {
		t.Errorf("Speaker = %q, want Ann", cue.Speaker)
	}
	if cue.Position.Placement != timeline.PlaceTop || cue.Position.LinePct != 10 {
		t.Errorf("Position = %+v", cue.Position)
	}
	if cue.Lines[0] != "Hi there" {
		t.Errorf("line = %q", cue.Lines[0])
	}
}
