package main

/*
bio-umi-bin assigns sequencing reads to UMI bins from a pair of per-end SAM
alignment files and reports per-bin statistics.
*/

import (
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"

	"github.com/grailbio/umibin/umibin"
)

var (
	outputDir       = flag.String("output-dir", "", "Directory containing read_binning/umi{1,2}_map.sam; outputs are written alongside")
	perUmiMax       = flag.Int("per-umi-max", 3, "Max per-end edit distance")
	combinedMax     = flag.Int("combined-max", 5, "Max combined (e1+e2) edit distance")
	umeMeanMax      = flag.Float64("ume-mean-max", 2.0, "Max per-UMI mean combined edit distance")
	umeSDMax        = flag.Float64("ume-sd-max", 2.0, "Max per-UMI combined edit distance standard deviation")
	roFrac          = flag.Float64("ro-frac", 0.3, "Minimum minority-strand fraction; must satisfy 0 < ro-frac <= 0.5")
	maxBinSize      = flag.Int("max-bin-size", umibin.MaxBinSize, "Per-strand read cap applied to rof_ok bins")
	binClusterRatio = flag.Float64("bin-cluster-ratio", umibin.BinClusterRatio, "Max bin_size/cluster_size ratio")

	checkCatalog   = flag.String("check-catalog", "", "Optional path to a newline-separated UMI sequence catalog; if set, warns about near-duplicate references instead of running the binning pipeline")
	catalogMinEdit = flag.Int("catalog-min-edit", 3, "Catalog entries closer than this many edits are reported as ambiguous")
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s -output-dir DIR [OPTIONS]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	if *checkCatalog != "" {
		runCatalogCheck(*checkCatalog, *catalogMinEdit)
		return
	}

	opts := umibin.Opts{
		OutputDir:       *outputDir,
		PerUmiMax:       *perUmiMax,
		CombinedMax:     *combinedMax,
		UmeMeanMax:      *umeMeanMax,
		UmeSDMax:        *umeSDMax,
		RoFrac:          *roFrac,
		MaxBinSize:      *maxBinSize,
		BinClusterRatio: *binClusterRatio,
	}

	ctx := vcontext.Background()
	stats, err := umibin.Run(ctx, opts)
	if err != nil {
		log.Fatalf("%v", err)
	}
	log.Printf("umibin: %d reads resolved, %d canonical UMIs, %d bins emitted",
		stats.NReadsResolved, stats.NCanonicalUmis, stats.NBinsEmitted)
}

func runCatalogCheck(path string, minEdits int) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		log.Fatalf("%v", err)
	}
	warnings := umibin.CheckCatalogAmbiguity(data, minEdits)
	if len(warnings) == 0 {
		log.Printf("umibin: no catalog ambiguities found below %d edits", minEdits)
		return
	}
	for _, w := range warnings {
		fmt.Printf("%s\t%s\t%d\n", w.Umi, w.NearestUmi, w.Edits)
	}
}
