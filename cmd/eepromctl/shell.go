package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

func newShellCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Interactive session on the configured part",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := opts.openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			return (&shell{s: s}).run(cmd.Context())
		},
	}
}

// scalarTypes lists the value types accepted by get and set.
var scalarTypes = []string{"u8", "i8", "u16", "i16", "u32", "i32", "f32"}

// shell is the interactive command loop.
type shell struct {
	s   *session
	out io.Writer
}

func (sh *shell) run(ctx context.Context) error {
	types := make([]readline.PrefixCompleterInterface, 0, len(scalarTypes))
	for _, t := range scalarTypes {
		types = append(types, readline.PcItem(t))
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          strings.ToLower(sh.s.dev.Name()) + "> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete: readline.NewPrefixCompleter(
			readline.PcItem("help"),
			readline.PcItem("info"),
			readline.PcItem("read"),
			readline.PcItem("write"),
			readline.PcItem("string"),
			readline.PcItem("get", types...),
			readline.PcItem("set", types...),
			readline.PcItem("current"),
			readline.PcItem("clear"),
			readline.PcItem("status"),
			readline.PcItem("exit"),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	sh.out = rl.Stdout()
	sh.printHelp()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(sh.out, "Exiting...")
			return nil
		}

		if sh.execute(ctx, line) {
			fmt.Fprintln(sh.out, "Exiting...")
			return nil
		}
	}
}

// execute runs one command line and reports whether the shell should exit.
func (sh *shell) execute(ctx context.Context, line string) bool {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	var err error
	switch cmd {
	case "help", "?":
		sh.printHelp()
	case "info", "i":
		printInfo(sh.out, sh.s)
	case "read", "r":
		err = sh.cmdRead(ctx, args)
	case "write", "w":
		err = sh.cmdWrite(ctx, args)
	case "string":
		err = sh.cmdString(ctx, input, args)
	case "get":
		err = sh.cmdGet(ctx, args)
	case "set":
		err = sh.cmdSet(ctx, args)
	case "current":
		var b byte
		if b, err = sh.s.dev.ReadCurrent(ctx); err == nil {
			fmt.Fprintf(sh.out, "0x%02X\n", b)
		}
	case "clear":
		if err = sh.s.dev.Clear(ctx); err == nil {
			fmt.Fprintln(sh.out, "cleared")
		}
	case "status":
		fmt.Fprintf(sh.out, "%s\n", sh.s.dev.ErrorCode())
		if fault := sh.s.dev.Err(); fault != nil {
			fmt.Fprintf(sh.out, "  %v\n", fault)
		}
	case "quit", "exit", "q":
		return true
	default:
		fmt.Fprintf(sh.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	if err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
	return false
}

func (sh *shell) printHelp() {
	fmt.Fprintln(sh.out, `
EEPROM Commands:
  read <addr> <len>           - Hex dump len bytes from addr
  write <addr> <hex>          - Write hex bytes, e.g. write 0x10 deadbeef
  string <addr> <text>        - Write text
  get <type> <addr>           - Read a value (u8 i8 u16 i16 u32 i32 f32)
  set <type> <addr> <value>   - Write a value
  current                     - Read the byte at the device address pointer
  clear                       - Zero the whole chip
  info                        - Show the part parameters
  status                      - Show the recorded fault, if any
  exit                        - Leave the shell`)
}

func (sh *shell) cmdRead(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: read <addr> <len>")
	}
	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	length, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	buf := make([]byte, length)
	if err := sh.s.dev.Read(ctx, address, buf); err != nil {
		return err
	}
	hexDump(sh.out, address, buf)
	return nil
}

func (sh *shell) cmdWrite(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: write <addr> <hex>")
	}
	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}
	data, err := parseHexBytes(strings.Join(args[1:], " "))
	if err != nil {
		return err
	}

	if err := sh.s.dev.Write(ctx, address, data); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "wrote %d bytes\n", len(data))
	return nil
}

func (sh *shell) cmdString(ctx context.Context, input string, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: string <addr> <text>")
	}
	address, err := parseAddress(args[0])
	if err != nil {
		return err
	}

	// keep the spacing of the text as typed
	rest := strings.TrimSpace(input[len(strings.Fields(input)[0]):])
	text := strings.TrimSpace(rest[len(args[0]):])

	if err := sh.s.dev.Write(ctx, address, []byte(text)); err != nil {
		return err
	}
	fmt.Fprintf(sh.out, "wrote %d bytes\n", len(text))
	return nil
}

func (sh *shell) cmdGet(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: get <type> <addr>")
	}
	address, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	dev := sh.s.dev
	var v any
	switch strings.ToLower(args[0]) {
	case "u8":
		v, err = dev.ReadUint8(ctx, address)
	case "i8":
		v, err = dev.ReadInt8(ctx, address)
	case "u16":
		v, err = dev.ReadUint16(ctx, address)
	case "i16":
		v, err = dev.ReadInt16(ctx, address)
	case "u32":
		v, err = dev.ReadUint32(ctx, address)
	case "i32":
		v, err = dev.ReadInt32(ctx, address)
	case "f32":
		v, err = dev.ReadFloat32(ctx, address)
	default:
		return fmt.Errorf("unknown type %q (want one of %s)", args[0], strings.Join(scalarTypes, " "))
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(sh.out, "%v\n", v)
	return nil
}

func (sh *shell) cmdSet(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: set <type> <addr> <value>")
	}
	address, err := parseAddress(args[1])
	if err != nil {
		return err
	}

	dev := sh.s.dev
	value := args[2]
	switch strings.ToLower(args[0]) {
	case "u8":
		var n uint64
		if n, err = strconv.ParseUint(value, 0, 8); err == nil {
			err = dev.WriteUint8(ctx, address, uint8(n))
		}
	case "i8":
		var n int64
		if n, err = strconv.ParseInt(value, 0, 8); err == nil {
			err = dev.WriteInt8(ctx, address, int8(n))
		}
	case "u16":
		var n uint64
		if n, err = strconv.ParseUint(value, 0, 16); err == nil {
			err = dev.WriteUint16(ctx, address, uint16(n))
		}
	case "i16":
		var n int64
		if n, err = strconv.ParseInt(value, 0, 16); err == nil {
			err = dev.WriteInt16(ctx, address, int16(n))
		}
	case "u32":
		var n uint64
		if n, err = strconv.ParseUint(value, 0, 32); err == nil {
			err = dev.WriteUint32(ctx, address, uint32(n))
		}
	case "i32":
		var n int64
		if n, err = strconv.ParseInt(value, 0, 32); err == nil {
			err = dev.WriteInt32(ctx, address, int32(n))
		}
	case "f32":
		var f float64
		if f, err = strconv.ParseFloat(value, 32); err == nil {
			err = dev.WriteFloat32(ctx, address, float32(f))
		}
	default:
		return fmt.Errorf("unknown type %q (want one of %s)", args[0], strings.Join(scalarTypes, " "))
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(sh.out, "ok")
	return nil
}
