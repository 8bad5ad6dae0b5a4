package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/subcleanser/internal/codec"
	"github.com/nguyentantai21042004/subcleanser/internal/logger"
	"github.com/nguyentantai21042004/subcleanser/internal/pipeline"
)

func newConvertCommand(configFlag *string) *cobra.Command {
	var (
		inputPath    string
		outputPath   string
		fromFlag     string
		toFlag       string
		wordsPath    string
		regionsPath  string
		speakersPath string
		analyzeFlag  bool
	)

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Cleanse one subtitle file and write it in the target format",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFlag)
			if err != nil {
				return err
			}
			log := logger.New(cfg.Logging.Level)
			ctx := cmd.Context()

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			inFormat, err := resolveFormat(fromFlag, inputPath)
			if err != nil {
				return fmt.Errorf("input format: %w", err)
			}

			if analyzeFlag {
				t, err := codec.Parse(data, inFormat)
				if err != nil {
					return fmt.Errorf("parse %s: %w", inFormat, err)
				}
				printAnalysis(cmd, inputPath, pipeline.Analyze(t))
				return nil
			}

			outFormat := cfg.OutputFormat()
			switch {
			case toFlag != "":
				outFormat, err = codec.ParseFormat(toFlag)
			case outputPath != "":
				outFormat, err = resolveFormat("", outputPath)
			}
			if err != nil {
				return fmt.Errorf("output format: %w", err)
			}
			if outputPath == "" {
				outputPath = strings.TrimSuffix(inputPath, filepath.Ext(inputPath)) + outFormat.Extension()
			}

			req := pipeline.Request{
				Input:        data,
				InputFormat:  inFormat,
				OutputFormat: outFormat,
				Cleanse:      cfg.CleanseOptions(),
				Timing:       cfg.TimingOptions(),
				Style:        cfg.StyleConfig(),
			}
			if req.WordTimings, err = loadWords(wordsPath); err != nil {
				return err
			}
			if req.TextRegions, err = loadRegions(regionsPath); err != nil {
				return err
			}
			if req.SpeakerSegments, err = loadSpeakers(speakersPath); err != nil {
				return err
			}

			proc := pipeline.New(log)
			res, err := proc.Process(ctx, req)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outputPath, res.Output, 0644); err != nil {
				return fmt.Errorf("write output: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d cues, %d warnings)\n", outputPath, res.Cues, len(res.Warnings))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Input subtitle file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file (default: input name with target extension)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "Input format (default: inferred from extension)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Output format (default: from config or output extension)")
	cmd.Flags().StringVar(&wordsPath, "words", "", "JSON file with word-level timings")
	cmd.Flags().StringVar(&regionsPath, "regions", "", "JSON file with on-screen text regions")
	cmd.Flags().StringVar(&speakersPath, "speakers", "", "JSON file with speaker diarization segments")
	cmd.Flags().BoolVar(&analyzeFlag, "analyze", false, "Report defects in the input instead of converting")
	cmd.MarkFlagRequired("input")

	return cmd
}

func resolveFormat(hint, path string) (codec.Format, error) {
	if hint == "" {
		hint = filepath.Ext(path)
	}
	return codec.ParseFormat(hint)
}

func printAnalysis(cmd *cobra.Command, path string, a pipeline.Analysis) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analysis of %s\n", path)
	fmt.Fprintf(out, "  Cues:                 %d\n", a.TotalCues)
	fmt.Fprintf(out, "  Characters:           %d (avg %.1f per cue)\n", a.TotalCharacters, a.AverageCharacters)
	fmt.Fprintf(out, "  Overlapping cues:     %d\n", a.Overlaps)
	fmt.Fprintf(out, "  Suspect characters:   %d cues\n", a.SuspectCharCues)
	fmt.Fprintf(out, "  More than two lines:  %d cues\n", a.OverlongCues)
}
