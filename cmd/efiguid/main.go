package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/docker/go-units"
	"github.com/go-debos/efiguid/names"
	"github.com/jessevdk/go-flags"
)

type options struct {
	Format       string            `short:"f" long:"format" default:"text" choice:"text" choice:"braced" choice:"hex" choice:"c" choice:"uuid" description:"Output format"`
	Lookup       bool              `short:"l" long:"lookup" description:"Print the symbol and description of each GUID"`
	Symbol       bool              `short:"s" long:"symbol" description:"Arguments are symbols to resolve instead of GUIDs"`
	List         bool              `long:"list" description:"List all known GUIDs and exit"`
	Tables       []string          `short:"t" long:"table" description:"Additional GUID table file"`
	TemplateVars map[string]string `long:"template-var" description:"Template variables for table files (use KEY:VALUE syntax)"`
	TableLimit   string            `long:"table-limit" default:"1MiB" description:"Maximum size of a table file"`
	Dump         bool              `long:"dump" description:"Dump the parsed tables"`
}

func loadTables(opts options) (*names.Table, error) {
	table := names.Builtin()
	if len(opts.Tables) == 0 {
		return table, nil
	}

	limit, err := units.RAMInBytes(opts.TableLimit)
	if err != nil {
		return nil, fmt.Errorf("invalid table limit: %w", err)
	}

	loader := names.Loader{TemplateVars: opts.TemplateVars, MaxSize: limit}
	extra, err := loader.LoadFiles(context.Background(), opts.Tables...)

	var le *names.LoadError
	if errors.As(err, &le) {
		for _, e := range le.Errors {
			log.Printf("Skipping table entry: %v", e)
		}
	} else if err != nil {
		return nil, err
	}

	for _, e := range table.Merge(extra) {
		log.Printf("Skipping table entry: %v", e)
	}

	return table, nil
}

func run(opts options, args []string, table *names.Table, out io.Writer) int {
	if opts.List {
		for _, n := range table.All() {
			fmt.Fprintln(out, describe(n.GUID, opts.Format, table, true))
		}
		return 0
	}

	exitcode := 0
	for _, arg := range args {
		g, err := resolve(arg, opts.Symbol, table)
		if err != nil {
			log.Printf("%v", err)
			exitcode = 1
			continue
		}

		fmt.Fprintln(out, describe(g, opts.Format, table, opts.Lookup))
	}

	return exitcode
}

func main() {
	var opts options

	log.SetPrefix(os.Args[0] + ": ")
	log.SetOutput(os.Stderr)
	log.SetFlags(0)

	exitcode := 1
	defer func() {
		os.Exit(exitcode)
	}()

	parser := flags.NewParser(&opts, flags.Default)
	parser.Usage = "[OPTIONS] GUID..."

	args, err := parser.Parse()
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if ok && flagsErr.Type == flags.ErrHelp {
			exitcode = 0
		} else {
			log.Printf("Failed to parse arguments: %v\n", err)
		}

		return
	}

	if len(args) == 0 && !opts.List && !opts.Dump {
		log.Printf("No GUID given!")
		return
	}

	table, err := loadTables(opts)
	if err != nil {
		log.Printf("Failed to load GUID tables: %v", err)
		return
	}

	if opts.Dump {
		names.Dump(table, 0)
	}

	exitcode = run(opts, args, table, os.Stdout)
}
