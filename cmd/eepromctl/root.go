package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-24cxx/bus"
	"github.com/moffa90/go-24cxx/chip"
	"github.com/moffa90/go-24cxx/config"
	"github.com/moffa90/go-24cxx/eeprom"
	"github.com/moffa90/go-24cxx/simulator"
	"github.com/moffa90/go-24cxx/trace"
)

// globalOptions holds the persistent flags. Flags that were set override the
// configuration file.
type globalOptions struct {
	configPath    string
	chip          string
	chipSelect    uint8
	bus           string
	image         string
	trace         string
	logLevel      string
	readyRetries  int
	readyInterval time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "eepromctl",
		Short:         "Read, write and inspect 24Cxx I2C EEPROMs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	f := root.PersistentFlags()
	f.StringVarP(&opts.configPath, "config", "c", "", "YAML configuration file")
	f.StringVar(&opts.chip, "chip", "", "chip variant, e.g. 24C256")
	f.Uint8Var(&opts.chipSelect, "cs", 0, "chip-select pin value")
	f.StringVar(&opts.bus, "bus", "", `I2C bus name (e.g. /dev/i2c-1) or "sim"`)
	f.StringVar(&opts.image, "image", "", "raw file backing the simulator")
	f.StringVar(&opts.trace, "trace", "", "record every bus transaction to this CBOR file")
	f.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	f.IntVar(&opts.readyRetries, "ready-retries", 0, "acknowledge polls after each page write")
	f.DurationVar(&opts.readyInterval, "ready-interval", 0, "pause between acknowledge polls")

	root.AddCommand(
		newInfoCmd(opts),
		newReadCmd(opts),
		newWriteCmd(opts),
		newClearCmd(opts),
		newDumpCmd(opts),
		newLoadCmd(opts),
		newShellCmd(opts),
		newTraceCmd(),
		newInitConfigCmd(opts),
	)

	return root
}

// load builds the effective configuration of cmd.
func (o *globalOptions) load(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("chip") {
		v, err := chip.ParseVariant(o.chip)
		if err != nil {
			return nil, err
		}
		cfg.Chip = v
	}
	if flags.Changed("cs") {
		cfg.ChipSelect = o.chipSelect
	}
	if flags.Changed("bus") {
		cfg.Bus = o.bus
	}
	if flags.Changed("image") {
		cfg.Image = o.image
	}
	if flags.Changed("trace") {
		cfg.Trace = o.trace
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}
	if flags.Changed("ready-retries") {
		cfg.Ready.Retries = o.readyRetries
	}
	if flags.Changed("ready-interval") {
		cfg.Ready.Interval = o.readyInterval
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// session is an opened device with everything behind it.
type session struct {
	cfg    *config.Config
	dev    *eeprom.Device
	sim    *simulator.Chip
	logger *slog.Logger

	closers []func() error
}

// openSession loads the configuration of cmd and opens the device it
// describes. extra options are applied after the configured ones.
func (o *globalOptions) openSession(cmd *cobra.Command, extra ...eeprom.Option) (*session, error) {
	cfg, err := o.load(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg, cmd.ErrOrStderr())
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger}

	var b bus.Bus
	if cfg.UsesSimulator() {
		sim, err := openSimulator(cfg)
		if err != nil {
			return nil, err
		}
		s.sim = sim
		if cfg.Image != "" {
			s.closers = append(s.closers, func() error { return sim.Save(cfg.Image) })
		}
		b = sim
	} else {
		p, err := bus.OpenPeriph(cfg.Bus)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, p.Close)
		b = p
	}

	if cfg.Trace != "" {
		rec, err := trace.NewFileRecorder(cfg.Trace)
		if err != nil {
			_ = s.Close()
			return nil, fmt.Errorf("open trace: %w", err)
		}
		s.closers = append(s.closers, rec.Close)

		var recorder trace.Recorder = rec
		if logger.Enabled(cmd.Context(), slog.LevelDebug) {
			recorder = trace.NewMultiRecorder(rec, trace.NewSlogRecorder(logger))
		}
		traced := trace.NewBus(b, recorder)
		logger.Info("tracing bus", "file", cfg.Trace, "session", traced.SessionID())
		b = traced
	}

	opts := append(cfg.DeviceOptions(), eeprom.WithLogger(eeprom.NewSlogLogger(logger)))
	opts = append(opts, extra...)

	dev, err := eeprom.New(b, cfg.ChipSelect, cfg.Chip, opts...)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.dev = dev

	return s, nil
}

// Close releases the session in reverse order of acquisition.
func (s *session) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

func openSimulator(cfg *config.Config) (*simulator.Chip, error) {
	sim, err := simulator.New(cfg.Chip, cfg.ChipSelect)
	if err != nil {
		return nil, err
	}
	if cfg.Image == "" {
		return sim, nil
	}

	if _, err := os.Stat(cfg.Image); err == nil {
		if err := sim.Load(cfg.Image); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("image: %w", err)
	}
	return sim, nil
}

func newLogger(cfg *config.Config, w io.Writer) (*slog.Logger, error) {
	level, err := cfg.Level()
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), nil
}
