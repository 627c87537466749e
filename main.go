package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"

	"github.com/colorq/ciq/ciq"
	"github.com/dustin/go-humanize"
	"github.com/unixpickle/essentials"
)

func main() {
	var config ciq.Config
	var seed int64
	flag.IntVar(&config.K, "k", ciq.DefaultK,
		"number of colors in the output palette")
	flag.IntVar(&config.MaxIters, "max-iters", ciq.DefaultMaxIters,
		"maximum number of clustering iterations")
	flag.BoolVar(&config.Canonical, "canonical", false,
		"seed with canonical k-means++ weighting (distance to the nearest "+
			"chosen centroid) instead of the default chained weighting")
	flag.Int64Var(&seed, "seed", -1,
		"random seed for reproducible palettes (-1 for a time-based seed)")
	flag.StringVar(&config.PalettePath, "palette", "",
		"palette output path (default: output path with a .pal extension)")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage:", os.Args[0], "[flags] <input> <output>")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}

	flag.Parse()

	if len(flag.Args()) != 2 {
		flag.Usage()
	}
	inputPath := flag.Args()[0]
	outputPath := flag.Args()[1]

	if seed >= 0 {
		config.Rand = rand.New(rand.NewSource(seed))
	}
	config.Progress = func(iter int) {
		fmt.Printf("iteration %d/%d\r", iter, config.MaxIters)
	}

	res, err := ciq.QuantizeFile(inputPath, outputPath, &config)
	essentials.Must(err)
	fmt.Println()

	inStats, err := os.Stat(inputPath)
	essentials.Must(err)
	outStats, err := os.Stat(outputPath)
	essentials.Must(err)

	status := "stable"
	if !res.Stable {
		status = "iteration limit"
	}
	fmt.Printf(
		"%s pixels -> %d colors in %d iterations (%s), %s -> %s\n",
		humanize.Comma(int64(len(res.Pixels))),
		len(res.Palette),
		res.Iters,
		status,
		humanize.Bytes(uint64(inStats.Size())),
		humanize.Bytes(uint64(outStats.Size())),
	)
}
