package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/jessevdk/go-flags"
	"github.com/rs/xid"

	"github.com/babarot/sweep/internal/config"
	"github.com/babarot/sweep/internal/env"
	"github.com/babarot/sweep/internal/kv"
	"github.com/babarot/sweep/internal/kv/backend"
	"github.com/babarot/sweep/internal/library"
	"github.com/babarot/sweep/internal/library/dirlib"
	"github.com/babarot/sweep/internal/selector"
	"github.com/babarot/sweep/internal/trash"
	"github.com/babarot/sweep/internal/utils/debug"
	"github.com/babarot/sweep/internal/utils/log"
)

type Option struct {
	Config string `long:"config" description:"Path to config file" default:""`

	Trash TrashOption `group:"Trash Options"`
	Meta  MetaOption  `group:"Meta Options"`
}

type TrashOption struct {
	Delete  []string `short:"d" long:"delete" value-name:"ID" description:"Move the asset to the trash (repeatable)"`
	Restore []string `short:"b" long:"restore" value-name:"ID" description:"Take the asset out of the trash (repeatable)"`
	List    bool     `short:"l" long:"list" description:"List trashed assets"`
	Empty   bool     `long:"empty" description:"Permanently delete every trashed asset"`
	Yes     bool     `short:"y" long:"yes" description:"Do not ask for confirmation with --empty"`
	Next    bool     `long:"next" description:"Print one random asset that is not in the trash"`
	Count   bool     `long:"count" description:"Print the number of trashed assets"`
}

type MetaOption struct {
	Version bool   `short:"V" long:"version" description:"Show version"`
	Debug   string `long:"debug" description:"View debug logs (default: \"full\")" optional-value:"full" optional:"yes" choice:"full" choice:"live"`
	Lines   int    `short:"n" long:"lines" value-name:"N" description:"With --debug, show only the last N lines" default:"0"`
}

type CLI struct {
	version Version
	option  Option
	config  config.Config
	runID   string

	storage  kv.Storage
	store    *trash.Store
	library  library.Library
	source   string
	selector *selector.Selector

	in  io.Reader
	out io.Writer
}

var runID = sync.OnceValue(func() string {
	id := xid.New().String()
	return id
})

func Run(v Version) error {
	var opt Option
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = v.AppName
	parser.Usage = "[-d ID | -b ID | -l | --empty | --next | --count]"
	if _, err := parser.Parse(); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(os.Stdout, v.Print())
		return nil
	}

	cfg, err := config.Parse(opt.Config)
	if err != nil {
		return err
	}

	if opt.Meta.Debug != "" {
		return debug.Logs(os.Stdout, cfg.Logging, debug.Options{
			Path:  env.SWEEP_LOG_PATH,
			Live:  opt.Meta.Debug == "live",
			Lines: opt.Meta.Lines,
		})
	}

	closeLog, err := setupLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closeLog()

	defer slog.Debug("main function finished\n\n\n")
	slog.Debug("main function started", "version", v.Version, "revision", v.Revision, "buildDate", v.BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cli, err := newCLI(ctx, v, opt, cfg)
	if err != nil {
		return err
	}
	defer cli.Close()

	if err := cli.Run(ctx); err != nil {
		slog.Error("exit", "error", fmt.Errorf("cli.run failed: %w", err))
		return err
	}
	return nil
}

func setupLogger(cfg config.LoggingConfig) (func(), error) {
	if !cfg.Enabled {
		log.New(log.UseOutput(io.Discard), log.AsDefault())
		return func() {}, nil
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	w, err := log.NewRotateWriter(env.SWEEP_LOG_PATH, cfg.Rotation)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	log.New(
		log.UseOutput(w),
		log.UseLevel(level),
		log.UseCaller(),
		log.UseTimestamp(time.Kitchen),
		log.UseAttrs("run_id", runID()),
		log.AsDefault(),
	)
	return func() { _ = w.Close() }, nil
}

// newCLI wires the storage backend, trash store, library and selector.
// It is the only place these are constructed.
func newCLI(ctx context.Context, v Version, opt Option, cfg config.Config) (*CLI, error) {
	storage, err := backend.Open(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	mediaType, err := library.ParseMediaType(cfg.Library.MediaType)
	if err != nil {
		_ = storage.Close()
		return nil, err
	}

	store := trash.New(storage,
		trash.WithKey(cfg.Trash.Key),
		trash.WithLogger(slog.Default()),
	)
	lib := dirlib.New(cfg.Library.Root, library.NewFilterOptions(cfg.Library))
	sel := selector.New(lib, store, selector.Options{
		MediaType:   mediaType,
		MaxAttempts: cfg.Selection.MaxAttempts,
		Recent:      cfg.Selection.Recent,
	})

	return &CLI{
		version:  v,
		option:   opt,
		config:   cfg,
		runID:    runID(),
		storage:  storage,
		store:    store,
		library:  lib,
		source:   lib.Root(),
		selector: sel,
		in:       os.Stdin,
		out:      os.Stdout,
	}, nil
}

func (c *CLI) Close() error {
	return c.storage.Close()
}

func (c *CLI) Run(ctx context.Context) error {
	opt := c.option.Trash

	switch {
	case len(opt.Delete) > 0:
		return c.Put(ctx, opt.Delete)

	case len(opt.Restore) > 0:
		return c.Restore(ctx, opt.Restore)

	case opt.List:
		return c.List(ctx)

	case opt.Empty:
		return c.Empty(ctx)

	case opt.Next:
		return c.Next(ctx)

	case opt.Count:
		return c.Count(ctx)

	default:
		return c.Triage(ctx)
	}
}
