package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	"github.com/signadot/avroidx/binary"
	"github.com/signadot/avroidx/container"
	"github.com/signadot/avroidx/datum"
	"github.com/signadot/avroidx/schema"
)

type blockIndex struct {
	Block    int          `yaml:"block"`
	Offset   int64        `yaml:"offset"`
	Absolute bool         `yaml:"absolute"`
	Values   []datum.Node `yaml:"values"`
}

func mapFiles(cfg *MapConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Map.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Chunk < 0 {
		return fmt.Errorf("%w: -chunk must be positive", cli.ErrUsage)
	}
	s, err := loadSchema(cfg.Schema, cfg.Container)
	if err != nil {
		return err
	}
	for i, file := range inputs(args) {
		idx, err := mapFile(cfg, s, file)
		if err != nil {
			reportErr(cfg.MainConfig, cc.Out, file, err)
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		cfg.header(cc.Out, i, file)
		if err := cfg.encode(cc.Out, idx); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *MapConfig) mapOpts() []datum.MapOption {
	return []datum.MapOption{datum.WithChunkSize(cfg.Chunk)}
}

func mapFile(cfg *MapConfig, s schema.Schema, file string) (any, error) {
	f, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if cfg.Container {
		return mapContainer(cfg, f)
	}
	nodes := []datum.Node{}
	br := binary.NewReader(f)
	for {
		more, err := br.More()
		if err != nil {
			return nil, err
		}
		if !more {
			return nodes, nil
		}
		start := br.Position()
		n, err := datum.Map(br, s, cfg.mapOpts()...)
		if err != nil {
			return nil, fmt.Errorf("value %d at offset %d: %w", len(nodes), start, err)
		}
		if br.Position() == start {
			return nil, fmt.Errorf("value %d at offset %d: %w", len(nodes), start, errZeroWidth)
		}
		nodes = append(nodes, n)
	}
}

func mapContainer(cfg *MapConfig, r io.Reader) ([]blockIndex, error) {
	cr, err := container.NewReader(r)
	if err != nil {
		return nil, err
	}
	defer cr.Close()
	res := []blockIndex{}
	for {
		b, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return res, nil
		}
		if err != nil {
			return nil, err
		}
		nodes, err := b.Map(cr.Schema, cfg.mapOpts()...)
		if err != nil {
			return nil, err
		}
		res = append(res, blockIndex{
			Block:    b.Index,
			Offset:   b.Offset,
			Absolute: b.Absolute(),
			Values:   nodes,
		})
	}
}
