// Package pipeline composes the processing stages for a single conversion
// request in a fixed order: parse, cleanse, reconcile timing, optimize
// positions, merge speakers, serialize. Every stage is a pure
// transformation over an owned timeline value, so requests run fully in
// parallel with no coordination.
package pipeline

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/nguyentantai21042004/subcleanser/internal/cleanse"
	"github.com/nguyentantai21042004/subcleanser/internal/codec"
	"github.com/nguyentantai21042004/subcleanser/internal/position"
	"github.com/nguyentantai21042004/subcleanser/internal/speaker"
	"github.com/nguyentantai21042004/subcleanser/internal/timing"
)

// EmptyTimelineError reports that cleansing left zero cues; serializing an
// empty file silently would hide the problem from the caller.
type EmptyTimelineError struct{}

func (e *EmptyTimelineError) Error() string {
	return "no cues remain after cleansing"
}

// Process runs the full stage chain over one request.
func (p *implProcessor) Process(ctx context.Context, req Request) (Result, error) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	p.logger.Info(ctx, "[%s] parsing %s input (%d bytes)", req.ID, req.InputFormat, len(req.Input))
	t, err := codec.Parse(req.Input, req.InputFormat)
	if err != nil {
		return Result{ID: req.ID}, fmt.Errorf("parse %s: %w", req.InputFormat, err)
	}
	p.logger.Debug(ctx, "[%s] parsed %d cues", req.ID, len(t.Cues))

	t = cleanse.Cleanse(t, req.Cleanse)
	if len(t.Cues) == 0 {
		return Result{ID: req.ID, Warnings: t.Warnings}, &EmptyTimelineError{}
	}
	p.logger.Debug(ctx, "[%s] cleansed: %d cues remain", req.ID, len(t.Cues))

	t = timing.Reconcile(t, req.WordTimings, req.Timing)
	t = position.Optimize(t, req.TextRegions)
	if len(req.SpeakerSegments) > 0 {
		t = speaker.Merge(t, req.SpeakerSegments)
	}

	out, err := codec.Serialize(t, req.OutputFormat, req.Style)
	if err != nil {
		return Result{ID: req.ID, Warnings: t.Warnings}, fmt.Errorf("serialize %s: %w", req.OutputFormat, err)
	}

	for _, w := range t.Warnings {
		p.logger.Warn(ctx, "[%s] %s", req.ID, w)
	}
	p.logger.Info(ctx, "[%s] done: %d cues, %d warnings", req.ID, len(t.Cues), len(t.Warnings))

	return Result{
		ID:       req.ID,
		Output:   out,
		Cues:     len(t.Cues),
		Warnings: t.Warnings,
	}, nil
}
