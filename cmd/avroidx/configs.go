package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"github.com/signadot/avroidx/schema"
)

type MainConfig struct {
	J     bool `cli:"name=j aliases=json desc='output json instead of yaml'"`
	Color bool `cli:"name=color desc='output with color'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

type SkipConfig struct {
	*MainConfig
	Schema    string `cli:"name=schema desc='schema of the values in raw files'"`
	Container bool   `cli:"name=container aliases=c desc='inputs are object container files'"`
	Sized     bool   `cli:"name=sized desc='skip size prefixed blocks by their size'"`

	Skip *cli.Command
}

type MapConfig struct {
	*MainConfig
	Schema    string `cli:"name=schema desc='schema of the values in raw files'"`
	Container bool   `cli:"name=container aliases=c desc='inputs are object container files'"`
	Chunk     int    `cli:"name=chunk desc='array elements per recorded offset'"`

	Map *cli.Command
}

type BlocksConfig struct {
	*MainConfig
	Check bool `cli:"name=check desc='skip the values of every block'"`

	Blocks *cli.Command
}

// loadSchema parses the -schema file, which raw input requires and
// container input must not have.
func loadSchema(file string, container bool) (schema.Schema, error) {
	switch {
	case container && file != "":
		return nil, fmt.Errorf("%w: -schema does not apply to container files", cli.ErrUsage)
	case container:
		return nil, nil
	case file == "":
		return nil, fmt.Errorf("%w: -schema is required for raw input", cli.ErrUsage)
	}
	return schema.ParseFile(file)
}

func (cfg *MainConfig) encOpts() []yaml.EncodeOption {
	if cfg.J {
		return []yaml.EncodeOption{yaml.JSON()}
	}
	return []yaml.EncodeOption{yaml.Indent(2)}
}

// encode writes v as one yaml document, or one line of json.
func (cfg *MainConfig) encode(w io.Writer, v any) error {
	d, err := yaml.MarshalWithOptions(v, cfg.encOpts()...)
	if err != nil {
		return err
	}
	if len(d) == 0 || d[len(d)-1] != '\n' {
		d = append(d, '\n')
	}
	_, err = w.Write(d)
	return err
}

type colors struct {
	header func(string, ...any) string
	err    func(string, ...any) string
}

func newColors() *colors {
	hdr := color.RGB(128, 216, 236)
	hdr.EnableColor()
	e := color.RGB(196, 96, 16)
	e.EnableColor()
	return &colors{header: hdr.SprintfFunc(), err: e.SprintfFunc()}
}

func plainColors() *colors {
	return &colors{header: fmt.Sprintf, err: fmt.Sprintf}
}

func (cfg *MainConfig) colors(w io.Writer) *colors {
	if cfg.Color {
		return newColors()
	}
	colorsSet := false
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		colorsSet = opt.Value != nil
		break
	}
	if colorsSet {
		return plainColors()
	}
	f, ok := w.(*os.File)
	if !ok {
		return plainColors()
	}
	if isatty.IsTerminal(f.Fd()) {
		return newColors()
	}
	return plainColors()
}

// header starts a yaml document with a comment naming its source. Json
// output has no headers.
func (cfg *MainConfig) header(w io.Writer, i int, name string) {
	if cfg.J {
		return
	}
	c := cfg.colors(w)
	if i > 0 {
		io.WriteString(w, "---\n")
	}
	io.WriteString(w, c.header("# %s", name)+"\n")
}

func openInput(file string) (io.ReadCloser, error) {
	if file == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", file, err)
	}
	return f, nil
}

// inputs returns the file arguments, stdin when there are none.
func inputs(args []string) []string {
	if len(args) == 0 {
		return []string{"-"}
	}
	return args
}
