package umibin

import (
	"context"
	"io"
	"path/filepath"
	"sort"

	"github.com/grailbio/base/errors"
	"github.com/grailbio/base/file"
	"github.com/grailbio/base/fileio"
	"github.com/grailbio/base/log"
	"github.com/klauspost/compress/gzip"

	"github.com/grailbio/umibin/internal/intern"
	"github.com/grailbio/umibin/samio"
)

// inputDir is the fixed subdirectory (relative to Opts.OutputDir) that holds
// the two input SAM files.
const inputDir = "read_binning"

// Run executes the full pipeline: load both SAM files, resolve, filter, and
// write umi_binning_stats.txt / umi_bin_map.txt under opts.OutputDir. It
// mirrors the load-resolve-filter-emit structure of fusion's top-level
// Driver, substituting this package's stages for fusion's.
func Run(ctx context.Context, opts Opts) (RunStats, error) {
	var stats RunStats
	if err := opts.Validate(); err != nil {
		return stats, err
	}

	readTable := intern.New(1 << 16)
	rawUmiTable := intern.New(1 << 12)
	canonTable := intern.New(1 << 12)

	log.Printf("umibin: loading UMI1 hits")
	index1, n1, err := loadIndex(ctx, filepath.Join(opts.OutputDir, inputDir, "umi1_map.sam"), rawUmiTable, readTable)
	if err != nil {
		return stats, err
	}
	stats.NUmi1Hits = n1

	log.Printf("umibin: loading UMI2 hits")
	index2, n2, err := loadIndex(ctx, filepath.Join(opts.OutputDir, inputDir, "umi2_map.sam"), rawUmiTable, readTable)
	if err != nil {
		return stats, err
	}
	stats.NUmi2Hits = n2

	log.Printf("umibin: resolving cross-end assignments")
	assignments, dropped := Resolve(index1, index2, opts.PerUmiMax, opts.CombinedMax)
	stats.NReadsResolved = int64(len(assignments))
	stats.NReadsDropped = dropped

	log.Printf("umibin: applying orientation filter")
	groups := GroupByCanonical(assignments, rawUmiTable, canonTable)

	canonIDs := make([]int32, 0, len(groups))
	for cid := range groups {
		canonIDs = append(canonIDs, cid)
	}
	sort.Slice(canonIDs, func(i, j int) bool { return canonIDs[i] < canonIDs[j] })

	statsRows := make([]BinStats, 0, len(canonIDs))
	var binRows []BinMapRow

	log.Printf("umibin: applying UME and BCR filters")
	for _, cid := range canonIDs {
		g := groups[cid]
		canonicalUmi := canonTable.String(cid)

		rorState, plusCap, negCap := ClassifyOrientation(g.plusCount, g.negCount, opts.RoFrac, opts.MaxBinSize)
		switch rorState {
		case RofOK:
			stats.NRofOK++
		case RofSubset:
			stats.NRofSubset++
		case RofFail:
			stats.NRofFail++
		}

		survivors := g.Subsample(rorState, plusCap, negCap)

		row := BinStats{
			CanonicalUmi: canonicalUmi,
			RawN:         len(g.members),
			FiltN:        len(survivors),
			PlusCount:    g.plusCount,
			NegCount:     g.negCount,
			PlusCap:      plusCap,
			NegCap:       negCap,
			RorState:     rorState,
		}

		if rorState == RofFail {
			statsRows = append(statsRows, row)
			continue
		}

		errStats := ComputeErrorStats(survivors, opts.UmeMeanMax, opts.UmeSDMax)
		row.UmeState = errStats.State
		if errStats.State != UmeNA {
			mean, sd := errStats.Mean, errStats.SD
			row.UmeMean, row.UmeSD = &mean, &sd
		}
		switch errStats.State {
		case UmeOK:
			stats.NUmeOK++
		case UmeFail:
			stats.NUmeFail++
		}

		if errStats.State != UmeOK {
			statsRows = append(statsRows, row)
			continue
		}

		bcr := ComputeClusterRatio(canonicalUmi, row.RawN, opts.BinClusterRatio)
		row.BcrState = bcr.State
		if bcr.HasRatio {
			ratio := bcr.Ratio
			row.Bcr = &ratio
		}
		switch bcr.State {
		case BcrOK:
			stats.NBcrOK++
		case BcrFail:
			stats.NBcrFail++
		}

		statsRows = append(statsRows, row)

		// Only rof_ok (never rof_subset) bins with ume_ok and bcr_ok are
		// emitted to the bin map.
		if rorState == RofOK && bcr.State == BcrOK {
			for _, s := range survivors {
				binRows = append(binRows, BinMapRow{
					CanonicalUmi: canonicalUmi,
					ReadID:       readTable.String(s.Read),
					Err:          s.Err,
				})
			}
			stats.NBinsEmitted++
		}
	}
	stats.NCanonicalUmis = int64(len(canonIDs))

	log.Printf("umibin: writing reports")
	if err := writeReports(ctx, opts.OutputDir, statsRows, binRows); err != nil {
		return stats, err
	}

	log.Printf("umibin: done (%d canonical UMIs, %d bins emitted)", stats.NCanonicalUmis, stats.NBinsEmitted)
	return stats, nil
}

func loadIndex(ctx context.Context, path string, umiTable, readTable *intern.Table) (idx *CandidateIndex, n int64, err error) {
	f, err := file.Open(ctx, path)
	if err != nil {
		return nil, 0, err
	}
	defer file.CloseAndReport(ctx, f, &err)

	r, err := decompressingReader(path, f.Reader(ctx))
	if err != nil {
		return nil, 0, err
	}

	idx, err = BuildCandidateIndex(samio.NewReader(r), umiTable, readTable)
	if err != nil {
		return nil, 0, err
	}
	for _, u := range idx.Umis() {
		n += int64(len(idx.Reads(u)))
	}
	return idx, n, nil
}

// decompressingReader wraps r in a gzip.Reader when path's extension
// indicates gzip content, following the pattern used throughout this
// repository for reading input files that may or may not be compressed
// (e.g. interval.NewBEDUnionFromPath).
func decompressingReader(path string, r io.Reader) (io.Reader, error) {
	if fileio.DetermineType(path) == fileio.Gzip {
		return gzip.NewReader(r)
	}
	return r, nil
}

func writeReports(ctx context.Context, outputDir string, statsRows []BinStats, binRows []BinMapRow) error {
	e := errors.Once{}

	statsFile, err := file.Create(ctx, filepath.Join(outputDir, "umi_binning_stats.txt"))
	if err != nil {
		return err
	}
	e.Set(WriteStats(statsFile.Writer(ctx), statsRows))
	e.Set(statsFile.Close(ctx))

	binFile, err := file.Create(ctx, filepath.Join(outputDir, "umi_bin_map.txt"))
	if err != nil {
		e.Set(err)
		return e.Err()
	}
	e.Set(WriteBinMap(binFile.Writer(ctx), binRows))
	e.Set(binFile.Close(ctx))

	return e.Err()
}
