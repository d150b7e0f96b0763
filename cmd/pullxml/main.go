package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-kit/kit/log"
	"github.com/go-kit/kit/log/level"
	"github.com/jacoelho/pullxml"
	xerrors "github.com/jacoelho/pullxml/errors"
	"github.com/jacoelho/pullxml/internal/flatten"
	"github.com/jacoelho/pullxml/internal/interactive"
	"github.com/jacoelho/pullxml/pkg/xmlpull"
	"github.com/kolide/kit/logutil"
	"github.com/kolide/kit/version"
	"github.com/peterbourgon/ff/v3"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	modeWalk        = "walk"
	modeNames       = "names"
	modeFlatten     = "flatten"
	modeInteractive = "interactive"
)

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

type config struct {
	mode           string
	logFile        string
	separator      string
	maxDepth       int
	maxSize        int64
	debug          bool
	printVersion   bool
	group          bool
	strictEntities bool
	strictEndTags  bool
	skipEmptyData  bool
}

func (c config) parserOptions() []xmlpull.Options {
	opts := []xmlpull.Options{
		xmlpull.StrictEntities(c.strictEntities),
		xmlpull.StrictEndTags(c.strictEndTags),
		xmlpull.EmitEmptyData(!c.skipEmptyData),
	}
	if c.maxDepth > 0 {
		opts = append(opts, xmlpull.MaxDepth(c.maxDepth))
	}
	return opts
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("pullxml", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var cfg config
	fs.StringVar(&cfg.mode, "mode", modeWalk, "output mode: walk, names, flatten, or interactive")
	fs.StringVar(&cfg.logFile, "log-file", "", "write logs to this file with rotation instead of stderr")
	fs.StringVar(&cfg.separator, "separator", "/", "path separator for flatten output")
	fs.IntVar(&cfg.maxDepth, "max-depth", 0, "maximum element nesting depth, 0 for unlimited")
	fs.Int64Var(&cfg.maxSize, "max-size", 0, "maximum document size in bytes, 0 for the default")
	fs.BoolVar(&cfg.debug, "debug", false, "use a debug logger")
	fs.BoolVar(&cfg.group, "group", false, "group flatten output under each parent path")
	fs.BoolVar(&cfg.printVersion, "version", false, "print version and exit")
	fs.BoolVar(&cfg.strictEntities, "strict-entities", false, "reject unknown entity names instead of dropping them")
	fs.BoolVar(&cfg.strictEndTags, "strict-end-tags", false, "require closing tag names to match the open element")
	fs.BoolVar(&cfg.skipEmptyData, "skip-empty-data", false, "report an element closed right after opening as Element, not empty Data")
	_ = fs.String("config", "", "config file (optional)")

	var usageErr error
	fs.Usage = func() {
		usageErr = errors.Join(
			usageErr,
			writef(stderr, "Usage: pullxml [flags] [document.xml]\n\n"),
			writeln(stderr, "Steps through an XML document and prints each parse event."),
			writeln(stderr, "Reads standard input when no document is given."),
			writeln(stderr),
			writeln(stderr, "Options:"),
		)
		fs.PrintDefaults()
	}

	err := ff.Parse(fs, args,
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithEnvVarPrefix("PULLXML"),
	)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		return 2
	}

	if cfg.printVersion {
		v := version.Version()
		if err := writef(stdout, "pullxml %s (revision %s, %s)\n", v.Version, v.Revision, v.GoVersion); err != nil {
			return 1
		}
		return 0
	}

	switch cfg.mode {
	case modeWalk, modeNames, modeFlatten, modeInteractive:
	default:
		return usageError(fs, stderr, &usageErr, fmt.Sprintf("error: unknown mode %q", cfg.mode))
	}
	remaining := fs.Args()
	if len(remaining) > 1 {
		return usageError(fs, stderr, &usageErr, "error: at most one XML file argument is allowed")
	}
	var docPath string
	if len(remaining) == 1 && remaining[0] != "-" {
		docPath = remaining[0]
	}

	logger, closeLogger := newLogger(cfg.debug, cfg.logFile)
	defer func() {
		if err := closeLogger(); err != nil {
			_ = writef(stderr, "error closing log file: %v\n", err)
		}
	}()
	level.Debug(logger).Log("msg", "starting", "mode", cfg.mode, "document", docPath)

	if err := execute(cfg, docPath, stdin, stdout, logger); err != nil {
		level.Debug(logger).Log("msg", "run failed", "err", err)
		return reportError(stderr, err)
	}
	return 0
}

func execute(cfg config, docPath string, stdin io.Reader, stdout io.Writer, logger log.Logger) error {
	if cfg.mode == modeInteractive && docPath == "" {
		return interactive.New(stdin, stdout, logger).RunPasted(cfg.parserOptions()...)
	}

	p, err := load(cfg, docPath, stdin)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "loaded document", "document", docPath)

	switch cfg.mode {
	case modeInteractive:
		return interactive.New(stdin, stdout, logger).Run(p)
	case modeFlatten:
		rows, err := flatten.Flatten(p)
		if err != nil {
			return err
		}
		if cfg.group {
			return writeGroups(stdout, flatten.GroupByParent(rows, cfg.separator), cfg.separator)
		}
		for _, row := range rows {
			if err := writef(stdout, "%s=%s\n", row.StringPath(cfg.separator), row.Value); err != nil {
				return err
			}
		}
		return nil
	case modeNames:
		return pullxml.Walk(p, func(ev pullxml.Event) error {
			return writeln(stdout, ev.Element.Name())
		})
	default:
		return pullxml.Walk(p, func(ev pullxml.Event) error {
			return writeln(stdout, formatEvent(ev))
		})
	}
}

func load(cfg config, docPath string, stdin io.Reader) (*xmlpull.Parser, error) {
	lo := pullxml.LoadOptions{MaxInputSize: cfg.maxSize}
	if docPath == "" {
		return pullxml.LoadReaderWithOptions(stdin, lo, cfg.parserOptions()...)
	}
	return pullxml.LoadWithOptions(os.DirFS(filepath.Dir(docPath)), filepath.Base(docPath), lo, cfg.parserOptions()...)
}

func writeGroups(w io.Writer, groups []flatten.Group, sep string) error {
	for _, g := range groups {
		parent := g.Parent
		if parent == "" {
			parent = sep
		}
		if err := writeln(w, parent); err != nil {
			return err
		}
		for i, key := range g.Keys {
			if err := writef(w, "  %s=%s\n", key, g.Values[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatEvent(ev pullxml.Event) string {
	switch ev.Kind {
	case xmlpull.KindData:
		return fmt.Sprintf("%s %s %s", ev.Kind, ev.Path, strconv.Quote(ev.Element.Data()))
	case xmlpull.KindAltClosing:
		return fmt.Sprintf("%s %s %s", ev.Kind, ev.Path, ev.Element.Name())
	default:
		return fmt.Sprintf("%s %s", ev.Kind, ev.Path)
	}
}

func newLogger(debug bool, logFile string) (log.Logger, func() error) {
	if logFile == "" {
		return logutil.NewCLILogger(debug), func() error { return nil }
	}

	lj := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}
	logger := log.NewJSONLogger(log.NewSyncWriter(lj))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC, "caller", log.DefaultCaller)

	allowed := level.AllowInfo()
	if debug {
		allowed = level.AllowDebug()
	}
	return level.NewFilter(logger, allowed), lj.Close
}

func reportError(stderr io.Writer, err error) int {
	if report, ok := xerrors.AsReport(err); ok {
		_ = writeln(stderr, report.Error())
		return 1
	}
	if report, ok := xerrors.FromError(err); ok {
		_ = writeln(stderr, report.Error())
		return 1
	}
	_ = writef(stderr, "error: %v\n", err)
	return 1
}

func usageError(fs *flag.FlagSet, stderr io.Writer, usageErr *error, msg string) int {
	if err := writeln(stderr, msg); err != nil {
		return 1
	}
	fs.Usage()
	if *usageErr != nil {
		return 1
	}
	return 2
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func writeln(w io.Writer, args ...any) error {
	_, err := fmt.Fprintln(w, args...)
	return err
}
