package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/container"
	"github.com/signadot/avroidx/datum"
	"github.com/signadot/avroidx/schema"
)

// errZeroWidth is returned for raw input whose schema encodes values in
// zero bytes, such as "null" or an empty record. Such input can never be
// consumed.
var errZeroWidth = errors.New("trailing bytes not consumed by a zero-width schema")

type skipResult struct {
	File   string `yaml:"file"`
	Values int64  `yaml:"values"`
	Bytes  int64  `yaml:"bytes"`
	Blocks int    `yaml:"blocks,omitempty"`
}

func skip(cfg *SkipConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Skip.Parse(cc, args)
	if err != nil {
		return err
	}
	s, err := loadSchema(cfg.Schema, cfg.Container)
	if err != nil {
		return err
	}
	for i, file := range inputs(args) {
		res, err := skipFile(cfg, s, file)
		if err != nil {
			reportErr(cfg.MainConfig, cc.Out, file, err)
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		cfg.header(cc.Out, i, file)
		if err := cfg.encode(cc.Out, res); err != nil {
			return err
		}
	}
	return nil
}

func skipFile(cfg *SkipConfig, s schema.Schema, file string) (*skipResult, error) {
	f, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if cfg.Container {
		return skipContainer(cfg, f, file)
	}
	skipFn := datum.Skip
	if cfg.Sized {
		skipFn = datum.SkipSized
	}
	res := &skipResult{File: file}
	br := binary.NewReader(f)
	for {
		more, err := br.More()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
		start := br.Position()
		if err := skipFn(br, s); err != nil {
			return nil, fmt.Errorf("value %d at offset %d: %w", res.Values, start, err)
		}
		if br.Position() == start {
			return nil, fmt.Errorf("value %d at offset %d: %w", res.Values, start, errZeroWidth)
		}
		res.Values++
	}
	res.Bytes = br.Position()
	return res, nil
}

func skipContainer(cfg *SkipConfig, r io.Reader, file string) (*skipResult, error) {
	cr, err := container.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer cr.Close()
	res := &skipResult{File: file}
	log := fileLog(file)
	for {
		b, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		if cfg.Sized {
			err = b.SkipSized(cr.Schema)
		} else {
			err = b.Skip(cr.Schema)
		}
		if err != nil {
			return nil, err
		}
		log.Debug("skipped block", "block", b.Index, "values", b.Count)
		res.Values += b.Count
		res.Bytes += int64(len(b.Data))
		res.Blocks++
	}
}

// reportErr logs the classification of a decoding error and the value
// path at which it occurred.
func reportErr(cfg *MainConfig, w io.Writer, file string, err error) {
	kind := datum.KindOf(err)
	fileLog(file).Error(cfg.colors(w).err("%s", kind), "path", strings.Join(datum.Path(err), "/"))
}
