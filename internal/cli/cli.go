// Package cli provides the command-line interface with injectable io.Writer for testing.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/mcdonaldj/fskit/internal/config"
	"github.com/mcdonaldj/fskit/internal/filefilter"
	"github.com/mcdonaldj/fskit/internal/fileutil"
	"github.com/mcdonaldj/fskit/internal/freespace"
	"github.com/mcdonaldj/fskit/internal/monitor"
	"github.com/mcdonaldj/fskit/internal/pathname"
	"github.com/mcdonaldj/fskit/internal/ports"
	"github.com/mcdonaldj/fskit/internal/walker"
	"github.com/sergi/go-diff/diffmatchpatch"
)

// ConfigService provides configuration operations for the CLI.
type ConfigService interface {
	Load() (*config.Config, error)
	Save(cfg *config.Config) error
	ConfigPath() string
	DefaultConfig() *config.Config
}

// WatchService provides change-watching operations for the CLI.
type WatchService interface {
	NewWatcher() (ports.Watcher, error)
	NewObserver(root string) *monitor.Observer
	NewMonitor(interval time.Duration) *monitor.Monitor
}

// CLI represents the command-line interface with injectable dependencies.
type CLI struct {
	Out     io.Writer // Standard output
	Err     io.Writer // Standard error
	Version string    // Application version
	Args    []string  // Command arguments (like os.Args)

	// Exit function for testability (defaults to os.Exit)
	Exit func(code int)

	// Injectable dependencies (nil means use defaults)
	ConfigSvc ConfigService
	WatchSvc  WatchService

	// Signals stops the watch command; nil means interrupt/terminate.
	Signals <-chan os.Signal

	// Color functions (can be disabled for testing)
	green  func(a ...interface{}) string
	yellow func(a ...interface{}) string
	cyan   func(a ...interface{}) string
	gray   func(a ...interface{}) string
	red    func(a ...interface{}) string
}

// New creates a new CLI with default settings.
func New(version string) *CLI {
	return &CLI{
		Out:     os.Stdout,
		Err:     os.Stderr,
		Version: version,
		Args:    os.Args,
		Exit:    os.Exit,
		green:   color.New(color.FgGreen, color.Bold).SprintFunc(),
		yellow:  color.New(color.FgYellow).SprintFunc(),
		cyan:    color.New(color.FgCyan).SprintFunc(),
		gray:    color.New(color.FgHiBlack).SprintFunc(),
		red:     color.New(color.FgRed).SprintFunc(),
	}
}

// NewForTesting creates a CLI configured for testing (no colors, captured output).
func NewForTesting(out, errOut io.Writer, args []string) *CLI {
	noColor := func(a ...interface{}) string { return fmt.Sprint(a...) }
	exitCode := 0
	return &CLI{
		Out:     out,
		Err:     errOut,
		Version: "test",
		Args:    args,
		Exit:    func(code int) { exitCode = code; _ = exitCode },
		green:   noColor,
		yellow:  noColor,
		cyan:    noColor,
		gray:    noColor,
		red:     noColor,
	}
}

// defaultConfigService wraps the config package functions.
type defaultConfigService struct{}

func (d *defaultConfigService) Load() (*config.Config, error) { return config.Load() }
func (d *defaultConfigService) Save(cfg *config.Config) error { return cfg.Save() }
func (d *defaultConfigService) ConfigPath() string            { return config.ConfigPath() }
func (d *defaultConfigService) DefaultConfig() *config.Config { return config.DefaultConfig() }

// defaultWatchService wraps the monitor package constructors.
type defaultWatchService struct{}

func (d *defaultWatchService) NewWatcher() (ports.Watcher, error) { return monitor.NewNotifyWatcher() }
func (d *defaultWatchService) NewObserver(root string) *monitor.Observer {
	return monitor.NewObserver(root)
}
func (d *defaultWatchService) NewMonitor(interval time.Duration) *monitor.Monitor {
	return monitor.NewMonitor(interval)
}

// Helper methods to get the service or default
func (c *CLI) configSvc() ConfigService {
	if c.ConfigSvc != nil {
		return c.ConfigSvc
	}
	return &defaultConfigService{}
}

func (c *CLI) watchSvc() WatchService {
	if c.WatchSvc != nil {
		return c.WatchSvc
	}
	return &defaultWatchService{}
}

// Run executes the CLI with the configured arguments.
func (c *CLI) Run() {
	if len(c.Args) < 2 {
		fmt.Fprintln(c.Out, "No command specified. Use 'fskit help' for usage.")
		return
	}

	switch c.Args[1] {
	case "normalize":
		c.RunNormalize()
	case "tree":
		c.RunTree()
	case "du":
		c.RunDu()
	case "free":
		c.RunFree()
	case "checksum":
		c.RunChecksum()
	case "diff":
		c.RunDiff()
	case "clean":
		c.RunClean()
	case "watch":
		c.RunWatch()
	case "init":
		c.InitConfig()
	case "config":
		c.ShowConfig()
	case "version", "-v", "--version":
		fmt.Fprintf(c.Out, "fskit v%s\n", c.Version)
	case "help", "-h", "--help":
		c.PrintUsage()
	default:
		fmt.Fprintf(c.Err, "Unknown command: %s\n", c.Args[1])
		c.PrintUsage()
		c.Exit(1)
	}
}

// PrintUsage prints the help message.
func (c *CLI) PrintUsage() {
	fmt.Fprintln(c.Out, `fskit - Filesystem Toolkit

Usage:
  fskit                                    Launch interactive browser
  fskit ui                                 Launch interactive browser
  fskit normalize <path> [--unix|--windows] [--no-trailing]
                                           Normalize a pathname lexically
  fskit tree <dir> [--depth=N] [--all]     Print a directory tree
  fskit du <path>...                       Show total size of each path
  fskit free [path]                        Show free space on the volume
  fskit checksum <file>...                 Print SHA-256 checksums
  fskit diff <file1> <file2>               Compare two text files line by line
  fskit clean <dir>                        Remove the contents of a directory
  fskit watch <dir> [--poll] [--interval=2s]
                                           Report filesystem changes until interrupted
  fskit init                               Create default config file
  fskit config                             Show current configuration
  fskit version, -v                        Show version
  fskit help, -h                           Show this help

Config: ~/.fskit/config.yaml`)
}

// InitConfig creates the default config file.
func (c *CLI) InitConfig() {
	svc := c.configSvc()
	cfg := svc.DefaultConfig()
	if err := svc.Save(cfg); err != nil {
		fmt.Fprintf(c.Err, "Error saving config: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "Created config at %s\n", svc.ConfigPath())
}

// ShowConfig prints the effective configuration.
func (c *CLI) ShowConfig() {
	svc := c.configSvc()
	cfg, err := svc.Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintln(c.Out, "fskit config:")
	fmt.Fprintf(c.Out, "  Config:        %s\n", svc.ConfigPath())
	fmt.Fprintf(c.Out, "  Exclude:       %s\n", strings.Join(cfg.Exclude, ", "))
	fmt.Fprintf(c.Out, "  MaxDepth:      %d\n", cfg.MaxDepth)
	fmt.Fprintf(c.Out, "  ShowHidden:    %v\n", cfg.ShowHidden)
	fmt.Fprintf(c.Out, "  PollInterval:  %s\n", cfg.PollInterval)
	fmt.Fprintf(c.Out, "  SnapshotDir:   %s\n", cfg.SnapshotDir)
}

// RunNormalize normalizes a pathname and prints the result.
func (c *CLI) RunNormalize() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: fskit normalize <path> [--unix|--windows] [--no-trailing]")
		c.Exit(1)
		return
	}

	path := c.Args[2]
	unixSep := pathname.SystemSeparator == pathname.UnixSeparator
	trailing := true
	for _, arg := range c.Args[3:] {
		switch arg {
		case "--unix":
			unixSep = true
		case "--windows":
			unixSep = false
		case "--no-trailing":
			trailing = false
		default:
			fmt.Fprintf(c.Err, "Unknown flag: %s\n", arg)
			c.Exit(1)
			return
		}
	}

	var result string
	var ok bool
	if trailing {
		result, ok = pathname.NormalizeTo(path, unixSep)
	} else {
		result, ok = pathname.NormalizeNoEndSeparatorTo(path, unixSep)
	}
	if !ok {
		fmt.Fprintf(c.Err, "Cannot normalize %q: too many parent references\n", path)
		c.Exit(1)
		return
	}
	fmt.Fprintln(c.Out, result)
}

// RunTree prints a directory tree.
func (c *CLI) RunTree() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: fskit tree <dir> [--depth=N] [--all]")
		c.Exit(1)
		return
	}

	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	root := c.Args[2]
	depth := cfg.MaxDepth
	showHidden := cfg.ShowHidden
	for _, arg := range c.Args[3:] {
		switch {
		case strings.HasPrefix(arg, "--depth="):
			depth, err = strconv.Atoi(strings.TrimPrefix(arg, "--depth="))
			if err != nil {
				fmt.Fprintf(c.Err, "Invalid depth: %v\n", err)
				c.Exit(1)
				return
			}
		case arg == "--all":
			showHidden = true
		default:
			fmt.Fprintf(c.Err, "Unknown flag: %s\n", arg)
			c.Exit(1)
			return
		}
	}

	filter := treeFilter(cfg.Exclude, showHidden)
	dirs, files := 0, 0
	w := walker.New()
	w.DirFilter = filter
	w.FileFilter = filter
	w.DepthLimit = depth

	err = w.Walk(root, &walker.FuncVisitor{
		OnEnterDir: func(path string, depth int) (bool, error) {
			if depth == 0 {
				fmt.Fprintln(c.Out, c.cyan(path))
			} else {
				fmt.Fprintf(c.Out, "%s%s\n", indent(depth), c.cyan(filepath.Base(path)))
				dirs++
			}
			return true, nil
		},
		OnFile: func(path string, depth int) error {
			fmt.Fprintf(c.Out, "%s%s\n", indent(depth), filepath.Base(path))
			files++
			return nil
		},
	})
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintln(c.Out)
	fmt.Fprintf(c.Out, "%s directories, %s files\n",
		c.green(fmt.Sprintf("%d", dirs)),
		c.green(fmt.Sprintf("%d", files)))
}

func indent(depth int) string {
	return strings.Repeat("  ", depth)
}

// treeFilter builds the walk filter from the exclude list and hidden setting.
func treeFilter(exclude []string, showHidden bool) filefilter.Filter {
	f := filefilter.True()
	if !showHidden {
		f = filefilter.Not(filefilter.Hidden())
	}
	for _, pat := range exclude {
		if strings.ContainsAny(pat, "*?") {
			f = filefilter.And(f, filefilter.Not(filefilter.Wildcard(pat)))
		} else {
			f = filefilter.And(f, filefilter.Not(filefilter.Name(pat)))
		}
	}
	return f
}

// RunDu shows the total size of each path argument.
func (c *CLI) RunDu() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: fskit du <path>...")
		c.Exit(1)
		return
	}

	failed := false
	for _, path := range c.Args[2:] {
		size, err := fileutil.SizeOf(path)
		if err != nil {
			fmt.Fprintf(c.Err, "  %s %s: %v\n", c.red("x"), path, err)
			failed = true
			continue
		}
		fmt.Fprintf(c.Out, "  %s %s\n", c.yellow(fmt.Sprintf("%10s", fileutil.FormatSize(size))), path)
	}
	if failed {
		c.Exit(1)
	}
}

// RunFree shows the free space on the volume containing a path.
func (c *CLI) RunFree() {
	path := "."
	if len(c.Args) > 2 {
		path = c.Args[2]
	}

	usage, err := freespace.Stat(path)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "Volume containing %s:\n", c.cyan(path))
	fmt.Fprintf(c.Out, "  Total:     %s\n", fileutil.FormatSize(int64(usage.Total)))
	fmt.Fprintf(c.Out, "  Used:      %s\n", fileutil.FormatSize(int64(usage.Used())))
	fmt.Fprintf(c.Out, "  Free:      %s\n", c.green(fileutil.FormatSize(int64(usage.Free))))
	fmt.Fprintf(c.Out, "  Available: %s\n", c.green(fileutil.FormatSize(int64(usage.Available))))
}

// RunChecksum prints SHA-256 checksums for the file arguments.
func (c *CLI) RunChecksum() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: fskit checksum <file>...")
		c.Exit(1)
		return
	}

	failed := false
	for _, path := range c.Args[2:] {
		sum, err := fileutil.Checksum(path)
		if err != nil {
			fmt.Fprintf(c.Err, "  %s %s: %v\n", c.red("x"), path, err)
			failed = true
			continue
		}
		fmt.Fprintf(c.Out, "%s  %s\n", sum, path)
	}
	if failed {
		c.Exit(1)
	}
}

// RunDiff compares two text files line by line.
func (c *CLI) RunDiff() {
	if len(c.Args) < 4 {
		fmt.Fprintln(c.Out, "Usage: fskit diff <file1> <file2>")
		c.Exit(1)
		return
	}

	path1, path2 := c.Args[2], c.Args[3]
	same, err := fileutil.ContentEquals(path1, path2)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}
	if same {
		fmt.Fprintf(c.Out, "%s Files are identical\n", c.green("*"))
		return
	}

	text1, err := os.ReadFile(path1)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}
	text2, err := os.ReadFile(path2)
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(text1), string(text2))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	fmt.Fprintf(c.Out, "--- %s\n+++ %s\n", path1, path2)
	for _, d := range diffs {
		for _, line := range splitDiffLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(c.Out, "%s\n", c.red("-"+line))
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(c.Out, "%s\n", c.green("+"+line))
			default:
				fmt.Fprintf(c.Out, "%s\n", c.gray(" "+line))
			}
		}
	}
	c.Exit(1)
}

func splitDiffLines(text string) []string {
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

// RunClean removes the contents of a directory, keeping the directory itself.
func (c *CLI) RunClean() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: fskit clean <dir>")
		c.Exit(1)
		return
	}

	dir := c.Args[2]
	fmt.Fprintf(c.Out, "%s Cleaning %s...\n", c.yellow("!"), dir)
	if err := fileutil.CleanDir(dir); err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}
	fmt.Fprintf(c.Out, "%s Cleaned %s\n", c.green("*"), dir)
}

// RunWatch reports filesystem changes under a directory until interrupted.
func (c *CLI) RunWatch() {
	if len(c.Args) < 3 {
		fmt.Fprintln(c.Out, "Usage: fskit watch <dir> [--poll] [--interval=2s]")
		c.Exit(1)
		return
	}

	cfg, err := c.configSvc().Load()
	if err != nil {
		fmt.Fprintf(c.Err, "Error loading config: %v\n", err)
		c.Exit(1)
		return
	}

	root := c.Args[2]
	poll := false
	interval, err := time.ParseDuration(cfg.PollInterval)
	if err != nil {
		interval = 2 * time.Second
	}
	for _, arg := range c.Args[3:] {
		switch {
		case arg == "--poll":
			poll = true
		case strings.HasPrefix(arg, "--interval="):
			interval, err = time.ParseDuration(strings.TrimPrefix(arg, "--interval="))
			if err != nil {
				fmt.Fprintf(c.Err, "Invalid interval: %v\n", err)
				c.Exit(1)
				return
			}
		default:
			fmt.Fprintf(c.Err, "Unknown flag: %s\n", arg)
			c.Exit(1)
			return
		}
	}

	stop := c.Signals
	if stop == nil {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(ch)
		stop = ch
	}

	if poll {
		c.watchPolling(root, interval, stop)
		return
	}
	c.watchNative(root, stop)
}

func (c *CLI) watchPolling(root string, interval time.Duration, stop <-chan os.Signal) {
	svc := c.watchSvc()
	obs := svc.NewObserver(root)
	obs.Subscribe(func(ev ports.WatchEvent) { c.printEvent(ev) })

	m := svc.NewMonitor(interval)
	m.Add(obs)
	if err := m.Start(context.Background()); err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Polling %s every %s (ctrl-c to stop)\n", c.cyan("=>"), root, interval)
	<-stop
	if err := m.Stop(); err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
	}
}

func (c *CLI) watchNative(root string, stop <-chan os.Signal) {
	w, err := c.watchSvc().NewWatcher()
	if err != nil {
		fmt.Fprintf(c.Err, "Error: %v\n", err)
		c.Exit(1)
		return
	}
	defer w.Close()

	if err := w.Add(root); err != nil {
		fmt.Fprintf(c.Err, "Error watching %s: %v\n", root, err)
		c.Exit(1)
		return
	}

	fmt.Fprintf(c.Out, "%s Watching %s (ctrl-c to stop)\n", c.cyan("=>"), root)
	for {
		select {
		case ev, ok := <-w.Events():
			if !ok {
				return
			}
			c.printEvent(ev)
		case err, ok := <-w.Errors():
			if !ok {
				return
			}
			fmt.Fprintf(c.Err, "Watch error: %v\n", err)
		case <-stop:
			return
		}
	}
}

func (c *CLI) printEvent(ev ports.WatchEvent) {
	mark := c.gray("?")
	switch {
	case ev.Op.Has(ports.OpCreate):
		mark = c.green("+")
	case ev.Op.Has(ports.OpWrite):
		mark = c.yellow("~")
	case ev.Op.Has(ports.OpRemove), ev.Op.Has(ports.OpRename):
		mark = c.red("-")
	}
	fmt.Fprintf(c.Out, "  %s %s %s\n", mark, ev.Path, c.gray(ev.Op.String()))
}
