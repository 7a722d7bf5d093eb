package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/theoremtool/xmatch"
)

func main() {
	log.SetFlags(0)
	var (
		inname            string
		shallow, splitpow bool
		echo, verbose     bool
	)
	flag.StringVar(&inname, "in", "", "read candidate expressions from a file, one per line (- for stdin)")
	flag.BoolVar(&shallow, "shallow", false, "use shallow matching instead of deep")
	flag.BoolVar(&splitpow, "split-pow", false, "decompose powers instead of treating them as atomic")
	flag.BoolVar(&echo, "echo", false, "print the canonical parse of each input")
	flag.BoolVar(&verbose, "v", false, "log parse failures to stderr")
	flag.Parse()
	if verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if flag.NArg() < 1 {
		log.Fatal("usage: xmatch [flags] THEOREM [EXPR ...]")
	}

	stmt := flag.Arg(0)
	a, err := xmatch.ParseString(stmt)
	if err != nil {
		log.Fatalf("theorem %q: %v", stmt, err)
	}
	if echo {
		fmt.Printf("theorem: %v\n", a)
	}
	thm := xmatch.Theorem{Stmt: stmt, Deep: !shallow, PowerAsAtomic: !splitpow}

	exprs := flag.Args()[1:]
	if inname != "" {
		more, err := readexprs(inname)
		if err != nil {
			log.Fatal(err)
		}
		exprs = append(exprs, more...)
	}
	if len(exprs) == 0 {
		log.Fatal("no candidate expressions")
	}

	for _, expr := range exprs {
		if echo {
			if b, err := xmatch.ParseString(expr); err == nil {
				fmt.Printf("%s : %v\n", expr, b)
			}
		}
		r := thm.Match(expr)
		if len(r) == 0 {
			fmt.Printf("%s: no match\n", expr)
			continue
		}
		fmt.Printf("%s:\n", expr)
		for _, p := range r.Pairs() {
			fmt.Printf("\t%s ~ %s\n", p.A, p.B)
		}
	}
}

// readexprs reads newline-separated expressions from a file, checking that
// each parses on its own. Blank lines are skipped.
func readexprs(inname string) ([]string, error) {
	var f *os.File
	if inname == "-" {
		f = os.Stdin
	} else {
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		defer in.Close()
		f = in
	}
	var exprs []string
	in := bufio.NewReader(f)
	for {
		line, err := in.ReadString('\n')
		if s := strings.TrimSpace(line); s != "" {
			if _, perr := xmatch.ParseString(s, xmatch.StopOn('\n')); perr != nil {
				return nil, fmt.Errorf("%s: %w", s, perr)
			}
			exprs = append(exprs, s)
		}
		if err != nil {
			if err == io.EOF {
				return exprs, nil
			}
			return nil, err
		}
	}
}
