package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/subcleanser/internal/cleanse"
	"github.com/nguyentantai21042004/subcleanser/internal/codec"
	"github.com/nguyentantai21042004/subcleanser/internal/config"
	"github.com/nguyentantai21042004/subcleanser/internal/logger"
	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

func newTestProcessor(t *testing.T) Processor {
	t.Helper()
	return New(logger.New("error"))
}

func defaultRequest(input string, from, to codec.Format) Request {
	cfg := &config.Config{}
	cfg.Validate()
	return Request{
		Input:        []byte(input),
		InputFormat:  from,
		OutputFormat: to,
		Cleanse:      cfg.CleanseOptions(),
		Timing:       cfg.TimingOptions(),
		Style:        cfg.StyleConfig(),
	}
}

func TestProcessSRTToVTT(t *testing.T) {
	input := `1
00:00:01,000 --> 00:00:03,500
Hello   world

2
00:00:03,000 --> 00:00:05,000
Second cue
`
	proc := newTestProcessor(t)
	res, err := proc.Process(context.Background(), defaultRequest(input, codec.SRT, codec.VTT))
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if res.ID == "" {
		t.Error("Result.ID not assigned")
	}
	if res.Cues != 2 {
		t.Errorf("Result.Cues = %d, want 2", res.Cues)
	}

	out := string(res.Output)
	if !strings.HasPrefix(out, "WEBVTT\n") {
		t.Errorf("output missing WEBVTT header:\n%s", out)
	}
	// Whitespace runs cleansed, overlap trimmed to 1ms before the successor.
	if !strings.Contains(out, "Hello world") {
		t.Errorf("output missing cleansed text:\n%s", out)
	}
	if !strings.Contains(out, "00:00:01.000 --> 00:00:02.999") {
		t.Errorf("output missing trimmed timing:\n%s", out)
	}
}

func TestProcessEmptyAfterCleansing(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\n\x01\x02\n"
	proc := newTestProcessor(t)

	_, err := proc.Process(context.Background(), defaultRequest(input, codec.SRT, codec.VTT))
	var ete *EmptyTimelineError
	if !errors.As(err, &ete) {
		t.Fatalf("Process() error = %v, want EmptyTimelineError", err)
	}
}

func TestProcessParseErrorWrapped(t *testing.T) {
	proc := newTestProcessor(t)
	_, err := proc.Process(context.Background(), defaultRequest("garbage", codec.SRT, codec.VTT))
	var pe *codec.ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Process() error = %v, want wrapped ParseError", err)
	}
}

func TestProcessKeepsRequestID(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\nHi\n"
	proc := newTestProcessor(t)

	req := defaultRequest(input, codec.SRT, codec.SRT)
	req.ID = "job-7"
	res, err := proc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if res.ID != "job-7" {
		t.Errorf("Result.ID = %q, want job-7", res.ID)
	}
}

func TestProcessSpeakerSegments(t *testing.T) {
	input := "1\n00:00:04,000 --> 00:00:06,000\nHi there\n"
	proc := newTestProcessor(t)

	req := defaultRequest(input, codec.SRT, codec.VTT)
	req.SpeakerSegments = []timeline.SpeakerSegment{
		{StartMS: 0, EndMS: 5000, Speaker: "A"},
		{StartMS: 5000, EndMS: 10000, Speaker: "B"},
	}

	res, err := proc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	out := string(res.Output)
	if !strings.Contains(out, "<v A>Hi") || !strings.Contains(out, "<v B>there") {
		t.Errorf("output missing speaker split:\n%s", out)
	}
	split := false
	for _, w := range res.Warnings {
		if w.Code == timeline.WarnSpeakerSplit {
			split = true
		}
	}
	if !split {
		t.Errorf("Warnings = %v, want speaker-split-approximated", res.Warnings)
	}
}

func TestProcessTextRegionsMoveCue(t *testing.T) {
	input := "1\n00:00:02,000 --> 00:00:03,000\nOut of the way\n"
	proc := newTestProcessor(t)

	req := defaultRequest(input, codec.SRT, codec.VTT)
	req.TextRegions = []timeline.TextRegion{
		{StartMS: 1000, EndMS: 4000, Band: timeline.BandBottomThird},
	}

	res, err := proc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(string(res.Output), "line:10%") {
		t.Errorf("output missing top placement:\n%s", res.Output)
	}
}

func TestProcessGrammarOptIn(t *testing.T) {
	input := "1\n00:00:01,000 --> 00:00:02,000\ndont panic\n"
	proc := newTestProcessor(t)

	req := defaultRequest(input, codec.SRT, codec.SRT)
	req.Cleanse.CorrectGrammar = true
	req.Cleanse.Corrector = cleanse.BasicCorrections

	res, err := proc.Process(context.Background(), req)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.Contains(string(res.Output), "Don't panic") {
		t.Errorf("grammar correction not applied:\n%s", res.Output)
	}
}
