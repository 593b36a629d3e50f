package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	stix "github.com/SkyezerFox/stix"
)

const (
	appName     = "stix"
	historyFile = ".stix_history"
	promptMain  = "==> "
	promptCont  = "... "
)

var (
	banner   = fmt.Sprintf("stix %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", stix.Version)
	helpText = `
REPL commands:
  :quit    Exit the REPL
  :help    Show this help
`
)

func red(s string) string  { return "\x1b[31m" + s + "\x1b[0m" }
func blue(s string) string { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	if len(os.Args) < 2 {
		os.Exit(cmdRepl(nil))
	}

	cmd := os.Args[1]
	switch cmd {
	case "run":
		os.Exit(cmdRun(os.Args[2:]))
	case "build":
		os.Exit(cmdBuild(os.Args[2:]))
	case "repl":
		os.Exit(cmdRepl(os.Args[2:]))
	case "version":
		fmt.Println(stix.Version)
		return
	case "-h", "--help", "help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "%s: unknown command %q\n", appName, cmd)
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Printf(`stix %s

Usage:
  %s run [-debug] <file.stix>             Compile a script in memory and run it.
  %s build [-debug] -o <out> <file.stix>  Compile a script to a binary.
  %s repl                                 Start the REPL (also the default with no arguments).
  %s version                              Print the compiled version

`, stix.Version, appName, appName, appName, appName)
}

func enableDebugLogging() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

func cmdRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s run [-debug] <file.stix>\n", appName)
		return 2
	}
	if *debug {
		enableDebugLogging()
	}

	if err := stix.Compile(fs.Arg(0), stix.JIT()); err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// build
// -----------------------------------------------------------------------------

func cmdBuild(args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	out := fs.String("o", "", "output binary path")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s build [-debug] -o <out> <file.stix>\n", appName)
		return 2
	}
	if *debug {
		enableDebugLogging()
	}

	file := fs.Arg(0)
	dest := *out
	if dest == "" {
		dest = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	}

	err := stix.Compile(file, stix.AheadOfTime(dest))
	if errors.Is(err, stix.ErrUnsupportedMode) {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		return 1
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, red(err.Error()))
		return 1
	}
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func cmdRepl(_ []string) int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return 0
			case ":help":
				fmt.Print(helpText)
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		root, err := stix.Parse(ensureTerminated(code))
		if err != nil {
			fmt.Fprintln(os.Stderr, red(stix.WrapErrorWithSource(err, code).Error()))
			continue
		}
		walker := stix.NewWalker()
		if err := walker.Walk(root); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		fmt.Println(blue(stix.PrintBlock(&root.Value)))
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// ensureTerminated lets a bare expression be entered without its trailing
// semicolon.
func ensureTerminated(code string) string {
	t := strings.TrimSpace(code)
	if strings.HasSuffix(t, ";") || strings.HasSuffix(t, "}") {
		return code
	}
	return code + ";"
}

// readByParseProbe keeps reading continuation lines while the input parses
// as incomplete, so multi-line blocks can be typed naturally.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if _, perr := stix.Parse(ensureTerminated(src)); stix.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
