package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	logger, err := newLogger("info", "console")
	if err != nil {
		logger = zap.NewNop()
	}
	env := &cliEnv{out: os.Stdout, log: logger}

	if err := env.app().Run(os.Args); err != nil {
		env.log.Error("canwave failed", zap.Error(err))
		_ = env.log.Sync()
		os.Exit(1)
	}
	_ = env.log.Sync()
}

// cliEnv carries what every command writes to.
type cliEnv struct {
	out io.Writer
	log *zap.Logger
}

func (e *cliEnv) app() *cli.App {
	global := []cli.Flag{
		&cli.StringFlag{
			Name:    "log-level",
			Usage:   "log level (debug|info|warn|error)",
			Value:   "info",
			EnvVars: []string{"CANWAVE_LOG_LEVEL"},
		},
		&cli.StringFlag{
			Name:  "log-format",
			Usage: "log encoding (console|json)",
			Value: "console",
		},
	}
	return &cli.App{
		Name:      "canwave",
		Usage:     "draw the bit pattern and CANH/CANL levels of a CAN frame",
		UsageText: "canwave [render flags]\n   canwave command [command flags] [arguments...]",
		Version:   "1.0.0",
		Writer:    e.out,
		Flags:     append(global, renderFlags()...),
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c.String("log-level"), c.String("log-format"))
			if err != nil {
				return err
			}
			e.log = logger
			return nil
		},
		Action: e.renderAction,
		Commands: []*cli.Command{
			e.renderCommand(),
			e.inspectCommand(),
			e.compareCommand(),
		},
	}
}

// renderFlags builds a fresh set of render flags. The app and the render
// command each need their own instances.
func renderFlags() []cli.Flag {
	def := DefaultConfig()
	return []cli.Flag{
		&cli.IntFlag{Name: "sof", Usage: "start-of-frame value (1 bit)", Value: DefaultFrameFields.SOF},
		&cli.IntFlag{Name: "id", Usage: "identifier (11 bits, 0x prefix for hex)", Value: DefaultFrameFields.ID},
		&cli.IntFlag{Name: "dlc", Usage: "data length code (4 bits)", Value: DefaultFrameFields.DLC},
		&cli.IntFlag{Name: "data", Usage: "data byte (8 bits)", Value: DefaultFrameFields.Data},
		&cli.IntFlag{Name: "eof", Usage: "end-of-frame value (7 bits)", Value: DefaultFrameFields.EOF},
		&cli.StringFlag{Name: "candump", Usage: "take ID, DLC and data from a candump line, e.g. \"123#56\""},
		&cli.StringFlag{Name: "csv", Usage: "take ID, DLC and data from a SavvyCAN CSV row"},
		&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "output image path", Value: def.Output, EnvVars: []string{"CANWAVE_OUT"}},
		&cli.StringFlag{Name: "format", Usage: "png|svg|pdf (default: from --out extension)"},
		&cli.IntFlag{Name: "dpi", Usage: "raster resolution", Value: def.DPI, EnvVars: []string{"CANWAVE_DPI"}},
		&cli.Float64Flag{Name: "width-in", Usage: "figure width in inches", Value: def.WidthIn},
		&cli.Float64Flag{Name: "height-in", Usage: "figure height in inches", Value: def.HeightIn},
		&cli.StringFlag{Name: "backend", Usage: "gonum|chart", Value: def.Backend, EnvVars: []string{"CANWAVE_BACKEND"}},
		&cli.BoolFlag{Name: "lenient", Usage: "let oversized values widen their field instead of failing"},
		&cli.BoolFlag{Name: "show", Usage: "open the image in the desktop viewer"},
		&cli.StringFlag{Name: "layout-out", Usage: "also write the frame layout as CBOR"},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "do not print the frame summary"},
	}
}

func (e *cliEnv) renderCommand() *cli.Command {
	return &cli.Command{
		Name:   "render",
		Usage:  "render a frame to an image (also the default without a command)",
		Flags:  renderFlags(),
		Action: e.renderAction,
	}
}

func (e *cliEnv) renderAction(c *cli.Context) error {
	if c.Args().Present() {
		return fmt.Errorf("unexpected argument %q", c.Args().First())
	}
	cfg := Config{
		Output:    c.String("out"),
		Format:    c.String("format"),
		DPI:       c.Int("dpi"),
		WidthIn:   c.Float64("width-in"),
		HeightIn:  c.Float64("height-in"),
		Backend:   c.String("backend"),
		Lenient:   c.Bool("lenient"),
		Show:      c.Bool("show"),
		LayoutOut: c.String("layout-out"),
		Quiet:     c.Bool("quiet"),
	}

	ff, err := e.frameFields(c, cfg.Lenient)
	if err != nil {
		return err
	}

	r, err := NewFrameRenderer(cfg, e.log)
	if err != nil {
		return err
	}
	res, err := r.Render(ff)
	if err != nil {
		return err
	}
	if !cfg.Quiet {
		printRenderSummary(c.App.Writer, res)
	}
	return nil
}

// frameFields resolves the drawn fields: defaults, then a parsed candump or
// CSV line, then any field flag given explicitly.
func (e *cliEnv) frameFields(c *cli.Context, lenient bool) (FrameFields, error) {
	ff := DefaultFrameFields
	candump, row := c.String("candump"), c.String("csv")
	if candump != "" && row != "" {
		return ff, errors.New("--candump and --csv are mutually exclusive")
	}

	var (
		frame *CANFrame
		err   error
	)
	switch {
	case candump != "":
		frame, err = parseCandumpLine(candump)
	case row != "":
		frame, err = parseCSVLine(row)
	}
	if err != nil {
		return ff, fmt.Errorf("parse frame: %w", err)
	}
	if frame != nil {
		if ff, err = fieldsFromFrame(frame, ff, lenient); err != nil {
			return ff, err
		}
		e.log.Debug("frame parsed",
			zap.String("id", frame.ID),
			zap.Bool("extended", frame.IsExtended),
			zap.String("timestamp", frame.Timestamp),
			zap.Int("len", frame.Length))
	}

	if frame == nil || c.IsSet("sof") {
		ff.SOF = c.Int("sof")
	}
	if frame == nil || c.IsSet("id") {
		ff.ID = c.Int("id")
	}
	if frame == nil || c.IsSet("dlc") {
		ff.DLC = c.Int("dlc")
	}
	if frame == nil || c.IsSet("data") {
		ff.Data = c.Int("data")
	}
	if frame == nil || c.IsSet("eof") {
		ff.EOF = c.Int("eof")
	}
	return ff, nil
}

func (e *cliEnv) inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print the structure of a CBOR layout file",
		ArgsUsage: "FILE",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 1 {
				return errors.New("inspect needs exactly one file")
			}
			path := c.Args().First()
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			items, err := InspectCBOR(c.App.Writer, data)
			if err != nil {
				return fmt.Errorf("inspect %s: %w", path, err)
			}
			fmt.Fprintln(c.App.Writer, "===================================================")
			fmt.Fprintf(c.App.Writer, "📊 %s: %d item(s), %d bytes\n", path, items, len(data))
			return nil
		},
	}
}

func (e *cliEnv) compareCommand() *cli.Command {
	return &cli.Command{
		Name:      "compare",
		Usage:     "compare two CBOR layout files bit by bit",
		ArgsUsage: "A B",
		Action: func(c *cli.Context) error {
			if c.Args().Len() != 2 {
				return errors.New("compare needs exactly two files")
			}
			pathA, pathB := c.Args().Get(0), c.Args().Get(1)
			a, err := ReadLayout(pathA)
			if err != nil {
				return err
			}
			b, err := ReadLayout(pathB)
			if err != nil {
				return err
			}
			diff := CompareLayouts(a, b)
			printLayoutDiff(c.App.Writer, pathA, pathB, a, b, diff)
			e.log.Debug("layouts compared", zap.Int("differing_bits", len(diff.Bits)))
			return nil
		},
	}
}
