package codec

import (
	"errors"
	"reflect"
	"testing"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

const sampleSBV = `0:00:01.000,0:00:03.000
Hello world

0:00:04.500,0:00:06.000
Second cue
with two lines
`

func TestParseSBV(t *testing.T) {
	got, err := Parse([]byte(sampleSBV), SBV)
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
	second := got.Cues[1]
	if !reflect.DeepEqual(second.Lines, []string{"Second cue", "with two lines"}) {
		t.Errorf("second lines = %q", second.Lines)
	}
}

func TestParseSBVSpeakerPrefix(t *testing.T) {
	input := "0:00:01.000,0:00:02.000\n[Dave] Hi\n"
	got, err := Parse([]byte(input), SBV)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got.Cues[0].Speaker != "Dave" || got.Cues[0].Lines[0] != "Hi" {
		t.Errorf("cue = %+v", got.Cues[0])
	}
}

func TestParseSBVErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantToken string
	}{
		{"missing comma", "0:00:01.000 0:00:02.000\nHi\n", "0:00:01.000 0:00:02.000"},
		{"bad start", "bogus,0:00:02.000\nHi\n", "bogus"},
		{"bad end", "0:00:01.000,oops\nHi\n", "oops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.input), SBV)
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("Parse() error = %v, want ParseError", err)
			}
			if pe.Token != tt.wantToken {
				t.Errorf("Token = %q, want %q", pe.Token, tt.wantToken)
			}
		})
	}
}

func TestSerializeSBV(t *testing.T) {
	tl := timeline.Timeline{Cues: []timeline.Cue{
		{StartMS: 1000, EndMS: 3000, Lines: []string{"Hello"}, Position: timeline.DefaultPosition()},
		{StartMS: 4500, EndMS: 6000, Lines: []string{"Again"}, Position: timeline.DefaultPosition()},
	}}

	out, err := Serialize(tl, SBV, DefaultStyle())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	want := "0:00:01.000,0:00:03.000\nHello\n\n0:00:04.500,0:00:06.000\nAgain\n"
	if string(out) != want {
		t.Errorf("Serialize() =\n%q\nwant\n%q", out, want)
	}
}

func TestSBVRoundTrip(t *testing.T) {
	in := timeline.Timeline{Cues: []timeline.Cue{
		{StartMS: 1000, EndMS: 3000, Lines: []string{"Hi there"}, Speaker: "Eve", Position: timeline.DefaultPosition()},
	}}

	out, err := Serialize(in, SBV, DefaultStyle())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	back, err := Parse(out, SBV)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cue := back.Cues[0]
	if cue.Speaker != "Eve" || cue.Lines[0] != "Hi there" {
		t.Errorf("round trip lost data: %+v", cue)
	}
}
