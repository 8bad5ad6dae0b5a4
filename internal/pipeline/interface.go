package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/subcleanser/internal/cleanse"
	"github.com/nguyentantai21042004/subcleanser/internal/codec"
	"github.com/nguyentantai21042004/subcleanser/internal/timeline"
	"github.com/nguyentantai21042004/subcleanser/internal/timing"
)

// Processor defines the interface for running one subtitle conversion and
// enhancement request end to end.
type Processor interface {
	Process(ctx context.Context, req Request) (Result, error)
}

// Request is one self-contained conversion job. External data (word
// timings, text regions, speaker segments) arrives already resolved; a nil
// slice means the corresponding stage falls back to its default policy.
type Request struct {
	// ID labels the request in logs; assigned when empty.
	ID string

	Input        []byte
	InputFormat  codec.Format
	OutputFormat codec.Format

	Cleanse cleanse.Options
	Timing  timing.Options
	Style   codec.StyleConfig

	WordTimings     []timeline.WordTiming
	TextRegions     []timeline.TextRegion
	SpeakerSegments []timeline.SpeakerSegment
}

// Result carries the serialized output together with the warnings the
// stages collected; warnings never fail the operation.
type Result struct {
	ID       string
	Output   []byte
	Cues     int
	Warnings []timeline.Warning
}
