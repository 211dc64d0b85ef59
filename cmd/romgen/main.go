package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/wippyai/romgen"
	"github.com/wippyai/romgen/emit"
	"github.com/wippyai/romgen/errors"
	"github.com/wippyai/romgen/layout"
	"github.com/wippyai/romgen/schematic"
)

func main() {
	name := filepath.Base(os.Args[0])
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() { usage(os.Stdout, name, fs) }

	cfg, err := ParseConfig(fs, os.Args[1:])
	if err != nil {
		switch {
		case stderrors.Is(err, flag.ErrHelp):
			return
		case stderrors.Is(err, errors.ErrInvalidArguments):
			fs.Usage()
		default:
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}

	os.Exit(run(cfg, os.Stdout, os.Stderr))
}

func usage(w io.Writer, name string, fs *flag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [flags] <input file path> <output file path>\n", name)
	fs.SetOutput(w)
	fs.PrintDefaults()
}

func newLogger(level string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		lvl,
	)
	return zap.New(core), nil
}

func run(cfg Config, stdout, stderr io.Writer) int {
	logger, err := newLogger(cfg.LogLevel, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error: log level: %v\n", err)
		return 1
	}
	defer logger.Sync()
	emit.SetLogger(logger.Named("emit"))
	schematic.SetLogger(logger.Named("schematic"))

	opts := romgen.Options{
		Input:    cfg.Input,
		Output:   cfg.Output,
		Version:  cfg.Version,
		Palette:  emit.Palette{On: cfg.OnBlock, Off: cfg.OffBlock},
		Verify:   cfg.Verify,
		Progress: stdout,
	}

	if cfg.Interactive {
		err = runPreview(opts)
	} else {
		var res *romgen.Result
		res, err = romgen.Generate(opts)
		if err == nil {
			logger.Info("schematic written",
				zap.String("path", res.OutputPath),
				zap.Int("placements", len(res.Placements)))
		}
	}
	if err != nil {
		return report(err, stdout, stderr)
	}
	return 0
}

func runPreview(opts romgen.Options) error {
	if f, ok := opts.Progress.(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return errors.InvalidArguments("interactive mode requires a terminal")
	}

	res, err := romgen.Prepare(opts)
	if err != nil {
		return err
	}
	write, err := runInteractive(res, opts)
	if err != nil {
		return err
	}
	if !write {
		fmt.Fprintln(opts.Progress, "Aborted, nothing written")
		return nil
	}
	return romgen.Write(res, opts)
}

func report(err error, stdout, stderr io.Writer) int {
	var re *errors.Error
	if stderrors.As(err, &re) && re.Kind == errors.KindPayloadTooLarge {
		size, _ := re.Value.(int)
		fmt.Fprintf(stdout, "Error: program too large! Program size (%d bytes) exceeds maximum size of %d bytes!\n",
			size, layout.MaxSize)
		return 1
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}
