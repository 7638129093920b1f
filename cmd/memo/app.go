package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/kjk/memo/config"
	"github.com/kjk/memo/datafile"
	"github.com/kjk/memo/display"
	"github.com/kjk/memo/log"
	"github.com/kjk/memo/memo"
	"github.com/kjk/memo/u"
)

const version = "0.4.0"

// errFailed is returned when at least one operation failed.
// The failure has been printed to ErrWriter.
var errFailed = errors.New("memo: operation failed")

func newApp() *cli.Command {
	return &cli.Command{
		Name:      "memo",
		Usage:     "Take notes in the terminal",
		Version:   version,
		ArgsUsage: "[message...]",
		// "memo help me" adds a memo
		HideHelpCommand: true,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "init",
				Aliases: []string{"i"},
				Usage:   "Create data directory and empty data file",
			},
			&cli.BoolFlag{
				Name:    "list",
				Aliases: []string{"l"},
				Usage:   "List memos (default when no message is given)",
			},
			&cli.StringSliceFlag{
				Name:    "remove",
				Aliases: []string{"r"},
				Usage:   "Remove memo with `ID`, can be repeated or comma separated",
			},
			&cli.StringFlag{
				Name:    "backup",
				Aliases: []string{"b"},
				Usage:   "Write a copy of all memos to `PATH`, compressed if it ends with .zst, .br or .gz",
			},
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "List memos in data file format",
			},
			&cli.BoolFlag{
				Name:  "verbose",
				Usage: "Print log messages to stderr",
			},
		},
		Action: runMemo,
	}
}

type app struct {
	out    io.Writer
	errOut io.Writer
	st     *display.Styles
	path   string
	failed bool
}

func (a *app) fail(what string, err error) {
	a.failed = true
	log.IfErrf(err, "%s: %s", what, err)
	fmt.Fprintln(a.errOut, display.ErrorLine(a.st, what, err))
}

// flags that consume the next argument as their value
var valueFlags = []string{"-r", "--remove", "-b", "--backup"}

// checkArgs rejects blank arguments. cli trims arguments and stops
// parsing at a blank one, silently dropping everything after it.
func checkArgs(args []string) (string, error) {
	for i := 1; i < len(args); i++ {
		if strings.TrimSpace(args[i]) != "" {
			continue
		}
		if slices.Contains(valueFlags, args[i-1]) {
			return "Invalid argument", fmt.Errorf("value of '%s' is empty", args[i-1])
		}
		return "Could not add memo", fmt.Errorf("argument %d: %w: text is empty", i, memo.ErrInvalidText)
	}
	return "", nil
}

// runApp runs cmd with command line args
func runApp(ctx context.Context, cmd *cli.Command, args []string) error {
	what, err := checkArgs(args)
	if err == nil {
		return cmd.Run(ctx, args)
	}
	w := cmd.ErrWriter
	if w == nil {
		w = os.Stderr
	}
	fmt.Fprintln(w, display.ErrorLine(display.StylesFor(w), what, err))
	return errFailed
}

// parseIDs parses ids given with --remove. Each value can be
// a comma separated list. Ids start at 1. Repeated ids are
// removed once.
func parseIDs(vals []string) ([]uint32, error) {
	var res []uint32
	for _, v := range vals {
		for _, s := range strings.Split(v, ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.ParseUint(s, 10, 32)
			if err != nil || id == 0 {
				return nil, fmt.Errorf("invalid id '%s'", s)
			}
			if !slices.Contains(res, uint32(id)) {
				res = append(res, uint32(id))
			}
		}
	}
	return res, nil
}

func runMemo(_ context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(config.DataDir())
	if err != nil {
		return err
	}
	log.Verbose = cmd.Bool("verbose")
	log.Init(&log.Config{Dir: cfg.LogDir})
	defer log.Close()

	a := &app{
		out:    cmd.Writer,
		errOut: cmd.ErrWriter,
		st:     display.StylesFor(cmd.ErrWriter),
		path:   cfg.DataFilePath(),
	}

	if cmd.Bool("init") {
		a.initDataFile()
		return a.result()
	}

	m, err := memo.Load(a.path)
	if err != nil {
		if errors.Is(err, datafile.ErrFileNotFound) {
			err = fmt.Errorf("%w (run 'memo --init' first)", err)
		}
		a.fail("Could not load data file", err)
		return a.result()
	}
	log.Verbosef("loaded %d memos from '%s'\n", m.Len(), a.path)

	if args := cmd.Args().Slice(); len(args) > 0 {
		a.add(m, strings.Join(args, " "))
	}
	if vals := cmd.StringSlice("remove"); len(vals) > 0 {
		a.remove(m, vals)
	}
	if path := cmd.String("backup"); path != "" {
		a.backup(m, path)
	}
	if cmd.Bool("list") || cmd.Args().Len() == 0 {
		a.list(m, cmd.Bool("plain") || cfg.Plain)
	}
	return a.result()
}

func (a *app) result() error {
	if a.failed {
		return errFailed
	}
	return nil
}

func (a *app) initDataFile() {
	if err := memo.Init(a.path); err != nil {
		a.fail("Initialization error", err)
		return
	}
	log.Event("memo.init", "path", a.path)
	fmt.Fprintf(a.errOut, "Initialized data file '%s'\n", a.path)
}

func (a *app) add(m *memo.Memos, text string) {
	start := time.Now()
	id, err := memo.AddAndPersist(m, text, a.path)
	if err != nil {
		a.fail("Could not add memo", err)
		return
	}
	log.EventWithDuration("memo.add", time.Since(start), "id", id)
	log.Verbosef("added memo %d\n", id)
}

func (a *app) remove(m *memo.Memos, vals []string) {
	ids, err := parseIDs(vals)
	if err != nil {
		a.fail("Could not remove memo", err)
		return
	}
	start := time.Now()
	if err = memo.RemoveManyAndPersist(m, ids, a.path); err != nil {
		a.fail("Could not remove memo", err)
		return
	}
	dur := time.Since(start)
	for _, id := range ids {
		log.EventWithDuration("memo.remove", dur, "id", id)
	}
	log.Verbosef("removed %d memos\n", len(ids))
}

func (a *app) backup(m *memo.Memos, path string) {
	path = u.ExpandTildeInPath(path)
	d := []byte(memo.Serialize(m))
	if err := u.WriteFileMaybeCompressed(path, d); err != nil {
		a.fail("Could not write backup", err)
		return
	}
	// snapshot must read back to the same data
	d2, err := u.ReadFileMaybeCompressed(path)
	if err == nil && !bytes.Equal(d, d2) {
		err = fmt.Errorf("'%s' content differs from data file", path)
	}
	if err != nil {
		a.fail("Could not verify backup", err)
		return
	}
	log.Event("memo.backup", "path", path, "size", len(d), "compressed", u.IsCompressedPath(path))
	log.Verbosef("wrote backup of %d memos to '%s'\n", m.Len(), path)
}

func (a *app) list(m *memo.Memos, plain bool) {
	entries := memo.RenderSorted(m)
	var err error
	if plain {
		err = display.Plain(a.out, entries)
	} else {
		err = display.Grouped(a.out, display.StylesFor(a.out), entries)
	}
	if err != nil {
		a.fail("Could not list memos", err)
	}
}
