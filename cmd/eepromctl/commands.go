package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/moffa90/go-24cxx/eeprom"
	"github.com/moffa90/go-24cxx/ihex"
	"github.com/moffa90/go-24cxx/trace"
)

func newInfoCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the addressing parameters of the configured part",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			printInfo(cmd.OutOrStdout(), s)
			return nil
		},
	}
}

func printInfo(w io.Writer, s *session) {
	p := s.dev.Profile()
	fmt.Fprintf(w, "Chip:               %s\n", s.dev.Name())
	fmt.Fprintf(w, "Bus:                %s\n", s.cfg.Bus)
	fmt.Fprintf(w, "Base address:       0x%02X\n", s.dev.BaseAddress())
	fmt.Fprintf(w, "Capacity:           %d bytes\n", s.dev.Size())
	fmt.Fprintf(w, "Addressable:        %d bytes\n", p.EffectiveCapacity())
	fmt.Fprintf(w, "Reachable:          %d bytes\n", p.ReachableCapacity())
	fmt.Fprintf(w, "Page size:          %d bytes\n", p.PageSize)
	fmt.Fprintf(w, "Blocks:             %d\n", p.Blocks)
	fmt.Fprintf(w, "Word address bytes: %d\n", p.WordAddressWidth)
	fmt.Fprintf(w, "Status:             %s\n", s.dev.ErrorCode())
}

func newReadCmd(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "read <address> <length>",
		Short: "Read bytes and print a hex dump, or save them with --out",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}
			length, err := parseAddress(args[1])
			if err != nil {
				return fmt.Errorf("length: %w", err)
			}

			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			buf := make([]byte, length)
			if err := s.dev.Read(cmd.Context(), address, buf); err != nil {
				return err
			}

			if out != "" {
				return os.WriteFile(out, buf, 0644)
			}
			hexDump(cmd.OutOrStdout(), address, buf)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the raw bytes to this file")
	return cmd
}

func newWriteCmd(opts *globalOptions) *cobra.Command {
	var file, text string

	cmd := &cobra.Command{
		Use:   "write <address> [hex bytes]",
		Short: "Write hex bytes, a string (--string) or a raw file (--file)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := parseAddress(args[0])
			if err != nil {
				return err
			}

			var data []byte
			switch {
			case file != "":
				if data, err = os.ReadFile(file); err != nil {
					return err
				}
			case text != "":
				data = []byte(text)
			case len(args) == 2:
				if data, err = parseHexBytes(args[1]); err != nil {
					return err
				}
			default:
				return fmt.Errorf("nothing to write: give hex bytes, --string or --file")
			}

			s, err := opts.openSession(cmd, eeprom.WithProgressCallback(progressPrinter(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.dev.Write(cmd.Context(), address, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.ErrOrStderr())
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes at 0x%05X\n", len(data), address)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "raw file to write")
	cmd.Flags().StringVarP(&text, "string", "s", "", "string to write")
	return cmd
}

func newClearCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Write zero over the whole addressable range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openSession(cmd, eeprom.WithProgressCallback(progressPrinter(cmd.ErrOrStderr())))
			if err != nil {
				return err
			}
			defer s.Close()

			if err := s.dev.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", s.dev.Name())
			return nil
		},
	}
}

func newDumpCmd(opts *globalOptions) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Read the whole chip as Intel HEX",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			img, err := ihex.Dump(cmd.Context(), s.dev)
			if err != nil {
				return err
			}

			if out == "" {
				return ihex.Encode(cmd.OutOrStdout(), img)
			}
			if err := ihex.WriteFile(out, img); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "dumped %d bytes to %s\n", img.Size(), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Intel HEX file to create (default stdout)")
	return cmd
}

func newLoadCmd(opts *globalOptions) *cobra.Command {
	var verify bool

	cmd := &cobra.Command{
		Use:   "load <file.hex>",
		Short: "Program an Intel HEX image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := ihex.Parse(args[0])
			if err != nil {
				return err
			}

			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			programOpts := []ihex.Option{ihex.WithProgress(progressPrinter(cmd.ErrOrStderr()))}
			if verify {
				programOpts = append(programOpts, ihex.WithVerify())
			}
			if err := ihex.Program(cmd.Context(), s.dev, img, programOpts...); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "programmed %d bytes in %d segments\n", img.Size(), len(img.Segments))
			return nil
		},
	}
	cmd.Flags().BoolVar(&verify, "verify", false, "read every segment back after programming")
	return cmd
}

func newTraceCmd() *cobra.Command {
	var session string
	var failedOnly bool

	cmd := &cobra.Command{
		Use:   "trace <file>",
		Short: "Print the transactions recorded with --trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := trace.NewFilteredReader(args[0], trace.Filter{SessionID: session, FailedOnly: failedOnly})
			if err != nil {
				return err
			}
			defer r.Close()

			w := cmd.OutOrStdout()
			for {
				event, err := r.Next()
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s %s %s\n", event.Timestamp.Format("15:04:05.000000"), shortID(event.SessionID), event)
			}
		},
	}
	cmd.Flags().StringVar(&session, "session", "", "only show this session")
	cmd.Flags().BoolVar(&failedOnly, "failed", false, "only show transactions that were not acknowledged")
	return cmd
}

func newInitConfigCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config <file.yaml>",
		Short: "Write the effective configuration to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Save(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	}
}

// parseAddress accepts decimal, 0x hex and 0o/0b prefixed values.
func parseAddress(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	return uint32(v), nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
