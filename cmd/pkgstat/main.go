// Command pkgstat reports which packages in a Debian archive install the
// most files, based on the per-architecture Contents index.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/pkgstat/pkgstat/internal/archive"
	"github.com/pkgstat/pkgstat/internal/config"
	"github.com/pkgstat/pkgstat/internal/contents"
	"github.com/pkgstat/pkgstat/internal/report"
)

type options struct {
	configPath string
	mirror     string
	dist       string
	area       string
	top        int
	match      string
	jsonOut    bool
	keep       bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "pkgstat <architecture>",
		Short: "Rank Debian packages by the number of files they install",
		Long: "pkgstat downloads the Contents index for the given architecture\n" +
			"from a Debian archive mirror and prints the packages that install\n" +
			"the most files.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configPath, "config", "c", "pkgstat.toml", "path to configuration file")
	flags.StringVar(&opts.mirror, "mirror", "", "archive mirror URL")
	flags.StringVar(&opts.dist, "dist", "", "distribution to inspect")
	flags.StringVar(&opts.area, "area", "", "archive area to inspect")
	flags.IntVarP(&opts.top, "top", "n", 0, "number of packages to show")
	flags.StringVar(&opts.match, "match", "", "only count file paths matching this glob")
	flags.BoolVar(&opts.jsonOut, "json", false, "emit JSON instead of a table")
	flags.BoolVar(&opts.keep, "keep", false, "keep the downloaded index file")
	return cmd
}

// run drives the stages in order: config, architecture validation, download,
// decompression, aggregation, rendering. Every stage reports failure through
// its error return; only cobra's caller terminates the process.
func run(cmd *cobra.Command, opts options, arch string) error {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	if opts.mirror != "" {
		cfg.Mirror = opts.mirror
	}
	if opts.dist != "" {
		cfg.Distribution = opts.dist
	}
	if opts.area != "" {
		cfg.Area = opts.area
	}
	if opts.top > 0 {
		cfg.Top = opts.top
	}

	client, err := archive.NewClient(cfg.Mirror, cfg.Distribution, cfg.Area)
	if err != nil {
		return err
	}

	if err := client.ValidateArchitecture(arch); err != nil {
		return err
	}

	path, cleanup, err := client.FetchContents(arch)
	if err != nil {
		return err
	}
	if opts.keep {
		log.Printf("Keeping %s", path)
	} else {
		defer cleanup()
	}

	stream, err := archive.OpenContents(path)
	if err != nil {
		return err
	}
	defer stream.Close()

	counter := contents.NewCounter()
	if opts.match != "" {
		err = counter.ConsumeMatching(stream, opts.match)
	} else {
		err = counter.Consume(stream)
	}
	if err != nil {
		return fmt.Errorf("could not read %s: %w", path, err)
	}
	log.Printf("Counted %d distinct packages", counter.Distinct())

	ranked := counter.Top(cfg.Top)
	if opts.jsonOut {
		out, err := report.RenderJSON(ranked)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	}
	fmt.Fprint(cmd.OutOrStdout(), report.Render(ranked))
	return nil
}
