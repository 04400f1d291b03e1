package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/avroidx/container"
	"github.com/signadot/avroidx/schema"
)

type fileInfo struct {
	File   string            `yaml:"file"`
	Codec  string            `yaml:"codec"`
	Schema schema.Type       `yaml:"schema"`
	Meta   map[string]string `yaml:"meta,omitempty"`
	Blocks []blockInfo       `yaml:"blocks"`
}

type blockInfo struct {
	Index  int   `yaml:"index"`
	Count  int64 `yaml:"count"`
	Start  int64 `yaml:"start"`
	Offset int64 `yaml:"offset"`
	Size   int64 `yaml:"size"`
	Data   int   `yaml:"data"`
}

func blocks(cfg *BlocksConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Blocks.Parse(cc, args)
	if err != nil {
		return err
	}
	for i, file := range inputs(args) {
		info, err := blocksFile(cfg, file)
		if err != nil {
			reportErr(cfg.MainConfig, cc.Out, file, err)
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		cfg.header(cc.Out, i, file)
		if err := cfg.encode(cc.Out, info); err != nil {
			return err
		}
	}
	return nil
}

func blocksFile(cfg *BlocksConfig, file string) (*fileInfo, error) {
	f, err := openInput(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	cr, err := container.NewReader(f)
	if err != nil {
		return nil, err
	}
	defer cr.Close()
	info := &fileInfo{
		File:   file,
		Codec:  cr.Codec.Name(),
		Schema: cr.Schema.Type(),
		Blocks: []blockInfo{},
	}
	for k, v := range cr.Meta {
		if strings.HasPrefix(k, "avro.") {
			continue
		}
		if info.Meta == nil {
			info.Meta = map[string]string{}
		}
		info.Meta[k] = string(v)
	}
	for {
		b, err := cr.Next()
		if errors.Is(err, io.EOF) {
			return info, nil
		}
		if err != nil {
			return nil, err
		}
		if cfg.Check {
			if err := b.Skip(cr.Schema); err != nil {
				return nil, err
			}
		}
		info.Blocks = append(info.Blocks, blockInfo{
			Index:  b.Index,
			Count:  b.Count,
			Start:  b.Start,
			Offset: b.Offset,
			Size:   b.Size,
			Data:   len(b.Data),
		})
	}
}
