package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/peterh/liner"
)

const prompt = "> "

// repl reads expressions interactively until an empty line or end of input.
func repl(p printer, history string) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	// History is best-effort.
	if history != "" {
		if f, err := os.Open(history); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}

	for {
		line, err := ln.Prompt(prompt)
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			// EOF, or the terminal went away.
			fmt.Fprintln(p.out)
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		p.calculate(line)
		ln.AppendHistory(line)
	}

	if history != "" {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}
	return nil
}
