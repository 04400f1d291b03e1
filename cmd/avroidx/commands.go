package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "avroidx").
		WithSynopsis("avroidx [opts] command [opts]").
		WithDescription("avroidx skips and indexes avro binary data.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return avroidxMain(cfg, cc, args)
		}).
		WithSubs(
			SkipCommand(cfg),
			MapCommand(cfg),
			BlocksCommand(cfg))
}

func SkipCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SkipConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Skip, "skip").
		WithAliases("s").
		WithSynopsis("skip [-schema file | -container] [-sized] [files]").
		WithDescription("skip every value and report how many bytes each file holds").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return skip(cfg, cc, args)
		})
}

func MapCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MapConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Map, "map").
		WithAliases("m").
		WithSynopsis("map [-schema file | -container] [-chunk n] [files]").
		WithDescription("print the chunk offset index of every value").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return mapFiles(cfg, cc, args)
		})
}

func BlocksCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BlocksConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Blocks, "blocks").
		WithAliases("b").
		WithSynopsis("blocks [-check] [files]").
		WithDescription("list the blocks of object container files").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return blocks(cfg, cc, args)
		})
}
