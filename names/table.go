package names

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"
	"text/template"

	"github.com/alessio/shellescape"
	"github.com/go-debos/efiguid"
	"github.com/go-task/slim-sprig/v3"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v2"
)

//go:embed builtin.yaml
var builtin []byte

type entry struct {
	GUID        string `yaml:"guid"`
	Symbol      string `yaml:"symbol"`
	Description string `yaml:"description"`
}

type tableFile struct {
	GUIDs []entry `yaml:"guids"`
}

// EntryError reports a single table entry that was skipped.
type EntryError struct {
	File  string
	Index int
	Err   error
}

func (e *EntryError) Error() string {
	return fmt.Sprintf("%s: entry %d: %v", e.File, e.Index, e.Err)
}

func (e *EntryError) Unwrap() error {
	return e.Err
}

// LoadError is returned next to a usable table when some entries had to be
// skipped.
type LoadError struct {
	Errors []error
}

func (e *LoadError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, err := range e.Errors {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "\n")
}

func (e *LoadError) Unwrap() []error {
	return e.Errors
}

// Loader reads table files.
type Loader struct {
	// Variables made available to the table templates
	TemplateVars map[string]string
	// Files larger than this are refused, 0 disables the check
	MaxSize int64
}

func escape(s string) string {
	return shellescape.Quote(s)
}

func uuid5(namespace string, data string) string {
	id := uuid.NewSHA1(uuid.MustParse(namespace), []byte(data))
	return id.String()
}

/*
Parse reads a YAML table file and returns the table it describes.

If some entries are malformed the valid ones are still returned, together
with a *LoadError listing the skipped ones. Any other error comes with a nil
table.
*/
func (l Loader) Parse(file string) (*Table, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	// Pipes and procfs files report a size of 0, so count what is read
	var r io.Reader = f
	if l.MaxSize > 0 {
		r = io.LimitReader(f, l.MaxSize+1)
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if l.MaxSize > 0 && int64(len(data)) > l.MaxSize {
		return nil, fmt.Errorf("table %s is larger than %d bytes", file, l.MaxSize)
	}

	return l.parse(file, data)
}

func (l Loader) parse(name string, data []byte) (*Table, error) {
	t := template.New(path.Base(name))
	funcs := template.FuncMap{
		"escape": escape,
		"uuid5":  uuid5,
	}
	t.Funcs(funcs)

	/* Add slim-sprig functions to template language */
	t.Funcs(sprig.FuncMap())

	if _, err := t.Parse(string(data)); err != nil {
		return nil, err
	}

	vars := l.TemplateVars
	if vars == nil {
		vars = make(map[string]string)
	}

	out := new(bytes.Buffer)
	if err := t.Execute(out, vars); err != nil {
		return nil, err
	}

	var f tableFile
	if err := yaml.Unmarshal(out.Bytes(), &f); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	table := NewTable()
	var errs []error

	for i, e := range f.GUIDs {
		g, err := efiguid.Parse(e.GUID)
		if err == nil {
			err = table.Add(Name{GUID: g, Symbol: e.Symbol, Description: e.Description})
		}
		if err != nil {
			errs = append(errs, &EntryError{name, i, err})
		}
	}

	if len(errs) > 0 {
		return table, &LoadError{errs}
	}

	return table, nil
}

/*
LoadFiles parses the given table files concurrently and merges them in
argument order. Entries skipped inside a file or conflicting with an earlier
file are reported through a *LoadError next to the merged table.

ctx only gates starting work: a file whose parse has already begun is read
to the end, but no further files are started once ctx is done.
*/
func (l Loader) LoadFiles(ctx context.Context, files ...string) (*Table, error) {
	tables := make([]*Table, len(files))
	soft := make([]*LoadError, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, file := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			t, err := l.Parse(file)
			var le *LoadError
			if errors.As(err, &le) {
				soft[i] = le
				err = nil
			}
			tables[i] = t
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := NewTable()
	var errs []error

	for i, t := range tables {
		if soft[i] != nil {
			errs = append(errs, soft[i].Errors...)
		}
		for _, err := range merged.Merge(t) {
			errs = append(errs, fmt.Errorf("%s: %w", files[i], err))
		}
	}

	if len(errs) > 0 {
		return merged, &LoadError{errs}
	}

	return merged, nil
}

// Parse reads a table file, see Loader.Parse. Multiple template maps have no
// effect; only the first one is used.
func Parse(file string, templateVars ...map[string]string) (*Table, error) {
	var l Loader
	if len(templateVars) > 0 {
		l.TemplateVars = templateVars[0]
	}
	return l.Parse(file)
}

// Builtin returns a fresh copy of the table of well-known EFI GUIDs.
func Builtin() *Table {
	t, err := Loader{}.parse("builtin.yaml", builtin)
	if err != nil {
		panic(err)
	}
	return t
}

const tabs = 2

// Dump logs every entry of t.
func Dump(t *Table, depth int) {
	tab := strings.Repeat(" ", depth*tabs)

	log.Printf("%s  guids: %d\n", tab, t.Len())
	for _, n := range t.All() {
		log.Printf("%s  - guid: %s, symbol: %s, description: %s", tab, n.GUID, n.Symbol, n.Description)
	}
}
