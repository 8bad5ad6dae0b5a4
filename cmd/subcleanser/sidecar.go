package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
)

// Sidecar files carry externally produced analysis results (transcription
// word timings, OCR text regions, diarization segments) as plain JSON
// arrays.

type wordEntry struct {
	Word    string `json:"word"`
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
}

type regionEntry struct {
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
	Band    string `json:"band"`
}

type speakerEntry struct {
	StartMS int64  `json:"start_ms"`
	EndMS   int64  `json:"end_ms"`
	Speaker string `json:"speaker"`
}

func loadWords(path string) ([]timeline.WordTiming, error) {
	if path == "" {
		return nil, nil
	}
	var entries []wordEntry
	if err := decodeSidecar(path, &entries); err != nil {
		return nil, err
	}
	out := make([]timeline.WordTiming, 0, len(entries))
	for _, e := range entries {
		out = append(out, timeline.WordTiming{Word: e.Word, StartMS: e.StartMS, EndMS: e.EndMS})
	}
	return out, nil
}

func loadRegions(path string) ([]timeline.TextRegion, error) {
	if path == "" {
		return nil, nil
	}
	var entries []regionEntry
	if err := decodeSidecar(path, &entries); err != nil {
		return nil, err
	}
	out := make([]timeline.TextRegion, 0, len(entries))
	for _, e := range entries {
		band, err := parseBand(e.Band)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		out = append(out, timeline.TextRegion{StartMS: e.StartMS, EndMS: e.EndMS, Band: band})
	}
	return out, nil
}

func loadSpeakers(path string) ([]timeline.SpeakerSegment, error) {
	if path == "" {
		return nil, nil
	}
	var entries []speakerEntry
	if err := decodeSidecar(path, &entries); err != nil {
		return nil, err
	}
	out := make([]timeline.SpeakerSegment, 0, len(entries))
	for _, e := range entries {
		out = append(out, timeline.SpeakerSegment{StartMS: e.StartMS, EndMS: e.EndMS, Speaker: timeline.SpeakerID(e.Speaker)})
	}
	return out, nil
}

func decodeSidecar(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read sidecar: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse sidecar %s: %w", path, err)
	}
	return nil
}

func parseBand(s string) (timeline.Band, error) {
	switch s {
	case "top", "top_third":
		return timeline.BandTopThird, nil
	case "middle", "middle_third":
		return timeline.BandMiddleThird, nil
	case "bottom", "bottom_third":
		return timeline.BandBottomThird, nil
	}
	return 0, fmt.Errorf("unknown band %q", s)
}
