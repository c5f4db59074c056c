package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/crimson-sun/aulos/internal/config"
	"github.com/crimson-sun/aulos/internal/engine"
	"github.com/crimson-sun/aulos/internal/engine/mapper"
	"github.com/crimson-sun/aulos/internal/engine/sequencer"
	"github.com/crimson-sun/aulos/internal/model"
	"github.com/crimson-sun/aulos/internal/output"
	"github.com/crimson-sun/aulos/internal/output/async"
	"github.com/crimson-sun/aulos/internal/output/jsonl"
	"github.com/crimson-sun/aulos/internal/output/midifile"
	"github.com/crimson-sun/aulos/internal/output/multi"
	"github.com/crimson-sun/aulos/internal/output/stdout"
	"github.com/crimson-sun/aulos/internal/output/wavfile"
	"github.com/crimson-sun/aulos/internal/pipeline"
	"github.com/crimson-sun/aulos/internal/source"
	"github.com/crimson-sun/aulos/internal/synth"
)

var (
	sonifyOutputs []string
	sonifyTempo   float64
	sonifyLimit   int
	sonifyPretty  bool
)

var sonifyCmd = &cobra.Command{
	Use:   "sonify LOGFILE",
	Short: "Convert a log file to music",
	Long: `Sonify parses the given access log and renders the note sequence.
The renderer is chosen by output extension: .mid/.midi for MIDI, .wav for
audio, .jsonl for a symbolic note stream. Without --output, notes are
printed as NDJSON on stdout. Pass --tempo 0 to derive the tempo from the
observed request rate.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		if cmd.Flags().Changed("tempo") {
			cfg.Tempo = sonifyTempo
		}
		if len(sonifyOutputs) == 0 && cfg.Output.Path != "" {
			sonifyOutputs = []string{cfg.Output.Path}
		}
		setupLogging(cfg, len(sonifyOutputs) == 0)
		return runSonify(cmd.Context(), cfg, args[0])
	},
}

func init() {
	sonifyCmd.Flags().StringArrayVarP(&sonifyOutputs, "output", "o", nil, "output file (.mid, .wav, .jsonl); repeatable")
	sonifyCmd.Flags().Float64VarP(&sonifyTempo, "tempo", "t", 120, "tempo in BPM; 0 derives it from the request rate")
	sonifyCmd.Flags().IntVarP(&sonifyLimit, "limit", "n", 0, "max events to process (0 = all)")
	sonifyCmd.Flags().BoolVar(&sonifyPretty, "pretty", false, "pretty-print NDJSON output")
	rootCmd.AddCommand(sonifyCmd)
}

func runSonify(ctx context.Context, cfg config.Config, logfile string) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	src := source.NewFile(logfile)
	src.Limit = sonifyLimit

	tempo := cfg.Tempo
	var events []model.LogEvent
	if tempo <= 0 {
		// Auto tempo needs the full event set up front: the observed
		// request rate fixes the BPM before the clock can move.
		var err error
		events, err = collect(ctx, src)
		if err != nil {
			return err
		}
		tempo = mapper.TempoOf(requestRate(events))
	}

	out, err := buildOutput(cfg, tempo)
	if err != nil {
		return err
	}

	eng := engine.New(mapper.New(), sequencer.New(tempo))
	var p *pipeline.Pipeline
	if events != nil {
		p = pipeline.New(source.Slice(events), eng, out)
	} else {
		p = pipeline.New(src, eng, out)
	}

	runErr := p.Run(ctx)
	if err := p.Close(); err != nil && runErr == nil {
		runErr = err
	}
	if runErr != nil && runErr != context.Canceled {
		return runErr
	}

	stats := p.Stats()
	fmt.Fprintf(os.Stderr, "sonified %d events, %.1fs at %.0f BPM\n",
		stats.EventCount, stats.TotalDuration, stats.Tempo)
	return nil
}

// buildOutput picks renderers by file extension, fanning out when more
// than one output is requested. WAV rendering is wrapped in an async
// writer so per-note synthesis doesn't stall the parse loop.
func buildOutput(cfg config.Config, tempo float64) (output.Output, error) {
	if len(sonifyOutputs) == 0 {
		return stdout.New(sonifyPretty), nil
	}

	var outs []output.Output
	for _, path := range sonifyOutputs {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".mid", ".midi":
			outs = append(outs, midifile.New(path, tempo))
		case ".wav":
			s := synth.New(
				synth.WithSampleRate(cfg.Synth.SampleRate),
				synth.WithEnvelope(synth.Envelope{
					Attack:  cfg.Synth.Attack,
					Decay:   cfg.Synth.Decay,
					Sustain: cfg.Synth.Sustain,
					Release: cfg.Synth.Release,
				}),
				synth.WithNoiseSeed(cfg.Synth.NoiseSeed),
			)
			outs = append(outs, async.New(wavfile.New(path, s)))
		case ".jsonl":
			o, err := jsonl.New(path)
			if err != nil {
				return nil, err
			}
			outs = append(outs, o)
		default:
			return nil, fmt.Errorf("unsupported output extension: %s", path)
		}
	}
	if len(outs) == 1 {
		return outs[0], nil
	}
	return multi.New(outs...), nil
}

// collect drains a source into memory.
func collect(ctx context.Context, src source.Source) ([]model.LogEvent, error) {
	ch, err := src.Events(ctx)
	if err != nil {
		return nil, err
	}
	var events []model.LogEvent
	for ev := range ch {
		events = append(events, ev)
	}
	return events, nil
}

// requestRate estimates events per second from the timestamp span.
// A single event (or a span of zero) counts as one request per second.
func requestRate(events []model.LogEvent) float64 {
	if len(events) < 2 {
		return float64(len(events))
	}
	span := events[len(events)-1].Timestamp.Sub(events[0].Timestamp).Seconds()
	if span <= 0 {
		return float64(len(events))
	}
	return float64(len(events)) / span
}
