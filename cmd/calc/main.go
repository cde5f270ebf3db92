// Command calc evaluates arithmetic expressions.
//
// With arguments, calc joins them with spaces and evaluates the result. With
// --in, it evaluates each line of a file. Otherwise it reads expressions
// interactively until an empty line or end of input.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	"github.com/zephyrtronium/calc"
	"github.com/zephyrtronium/calc/server"
)

// Set via -ldflags at build time.
var version = "dev"

// errFailed reports that an expression failed after its error was printed.
var errFailed = errors.New("evaluation failed")

var rootCmd = &cobra.Command{
	Use:           "calc [expression...]",
	Short:         "Evaluate arithmetic expressions",
	RunE:          run,
	SilenceErrors: true,
	SilenceUsage:  true,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve expression evaluation over HTTP",
	Args:  cobra.NoArgs,
	RunE:  serve,
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().String("config", "", "YAML config file (env CALC_CONFIG)")
	rootCmd.PersistentFlags().String("domain", "", "number domain: "+strings.Join(calc.DomainNames(), ", ")+" (default real, env CALC_DOMAIN)")
	rootCmd.PersistentFlags().Uint("prec", 0, "precision in bits of the float domain (default 64, env CALC_PREC)")
	rootCmd.Flags().String("in", "", "file of expressions, one per line (- for stdin)")
	rootCmd.Flags().Bool("postfix", false, "dump each expression's postfix tokens to stderr")
	rootCmd.Flags().String("history", "", "interactive history file")
	serveCmd.Flags().String("addr", "", "listen address (default localhost:8080)")
	rootCmd.AddCommand(serveCmd)
}

func main() {
	log.SetFlags(0)
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errFailed) {
			log.Println(err)
		}
		os.Exit(1)
	}
}

// settings resolves configuration from defaults, the config file, the
// environment, and flags, in increasing priority.
func settings(cmd *cobra.Command) (config, error) {
	cfg := defaults()
	f, _ := cmd.Flags().GetString("config")
	path, required := configPath(f, os.Getenv)
	if err := cfg.load(path, required); err != nil {
		return cfg, err
	}
	if err := cfg.env(os.Getenv); err != nil {
		return cfg, err
	}
	if v, _ := cmd.Flags().GetString("domain"); v != "" {
		cfg.Domain = v
	}
	if cmd.Flags().Changed("prec") {
		cfg.Prec, _ = cmd.Flags().GetUint("prec")
	}
	if cmd.Flags().Lookup("history") != nil && cmd.Flags().Changed("history") {
		cfg.History, _ = cmd.Flags().GetString("history")
	}
	if cmd.Flags().Lookup("addr") != nil && cmd.Flags().Changed("addr") {
		cfg.Addr, _ = cmd.Flags().GetString("addr")
	}
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	c, err := calc.Lookup(cfg.Domain, cfg.Prec)
	if err != nil {
		return err
	}
	p := printer{out: os.Stdout, c: c}
	if v, _ := cmd.Flags().GetBool("postfix"); v {
		p.trace = os.Stderr
	}

	in, _ := cmd.Flags().GetString("in")
	switch {
	case len(args) > 0:
		if !p.calculate(strings.Join(args, " ")) {
			return errFailed
		}
		return nil
	case in != "":
		return p.file(in)
	default:
		return repl(p, cfg.History)
	}
}

// printer evaluates expressions and prints their results.
type printer struct {
	out   io.Writer
	trace io.Writer
	c     calc.Calculator
}

// calculate prints "expr = result", or the error in place of the result. The
// result is false if evaluation failed.
func (p printer) calculate(expr string) bool {
	if p.trace != nil {
		// Errors are reported by evaluation.
		toks, _ := calc.Postfix(expr)
		spew.Fdump(p.trace, toks)
	}
	r, err := p.c.Calculate(expr)
	if err != nil {
		fmt.Fprintf(p.out, "%s = Error: %v\n", expr, err)
		return false
	}
	fmt.Fprintf(p.out, "%s = %s\n", expr, r)
	return true
}

// file evaluates each non-blank line of the named file.
func (p printer) file(name string) error {
	var f io.Reader = os.Stdin
	if name != "-" {
		in, err := os.Open(name)
		if err != nil {
			return err
		}
		defer in.Close()
		f = in
	}
	return p.lines(f)
}

func (p printer) lines(r io.Reader) error {
	ok := true
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		ok = p.calculate(line) && ok
	}
	if err := sc.Err(); err != nil {
		return err
	}
	if !ok {
		return errFailed
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := settings(cmd)
	if err != nil {
		return err
	}
	srv, err := server.New(server.Config{Domain: cfg.Domain, Prec: cfg.Prec, Log: os.Stderr})
	if err != nil {
		return err
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Println("Shutting down...")
		if err := srv.Shutdown(); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	log.Printf("calc listening on %s (domain=%s)", cfg.Addr, cfg.Domain)
	return srv.Listen(cfg.Addr)
}
