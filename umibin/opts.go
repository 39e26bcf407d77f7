package umibin

import "github.com/pkg/errors"

// MaxBinSize is the default value of Opts.MaxBinSize.
const MaxBinSize = 10000

// BinClusterRatio is the default value of Opts.BinClusterRatio.
const BinClusterRatio = 10.0

// Opts bundles the pipeline's tunable thresholds. It intentionally has no
// defaults for the fields without an obvious one: those are config errors
// if left unset, following fusion.Opts/fusion.DefaultOpts for the fields
// that do have sensible defaults.
type Opts struct {
	// OutputDir contains read_binning/umi1_map.sam and umi2_map.sam on input;
	// umi_bin_map.txt and umi_binning_stats.txt are written alongside.
	OutputDir string

	// PerUmiMax is the maximum per-end edit distance.
	PerUmiMax int
	// CombinedMax is the maximum combined (e1+e2) edit distance.
	CombinedMax int

	// UmeMeanMax and UmeSDMax are the ErrorStatsFilter cutoffs.
	UmeMeanMax float64
	UmeSDMax   float64

	// RoFrac is the minimum minority-strand fraction required for rof_ok.
	// Must satisfy 0 < RoFrac <= 0.5.
	RoFrac float64

	// MaxBinSize is both caps when a UMI's orientation is rof_ok. Defaults to
	// the package constant MaxBinSize.
	MaxBinSize int
	// BinClusterRatio is the ClusterRatioFilter cutoff. Defaults to the
	// package constant BinClusterRatio.
	BinClusterRatio float64
}

// DefaultOpts carries the two fields that have sensible defaults; every
// other field must be supplied explicitly and is validated by Validate.
var DefaultOpts = Opts{
	MaxBinSize:      MaxBinSize,
	BinClusterRatio: BinClusterRatio,
}

// Validate reports a config error for any missing or out-of-range required
// option.
func (o *Opts) Validate() error {
	if o.OutputDir == "" {
		return errors.New("output_dir is required")
	}
	if o.PerUmiMax < 0 {
		return errors.Errorf("per_umi_max must be >= 0, got %d", o.PerUmiMax)
	}
	if o.CombinedMax < 0 {
		return errors.Errorf("combined_max must be >= 0, got %d", o.CombinedMax)
	}
	if o.UmeMeanMax <= 0 {
		return errors.Errorf("ume_mean_max is required and must be > 0, got %v", o.UmeMeanMax)
	}
	if o.UmeSDMax <= 0 {
		return errors.Errorf("ume_sd_max is required and must be > 0, got %v", o.UmeSDMax)
	}
	if o.RoFrac <= 0 || o.RoFrac > 0.5 {
		return errors.Errorf("ro_frac must satisfy 0 < ro_frac <= 0.5, got %v", o.RoFrac)
	}
	if o.MaxBinSize <= 0 {
		return errors.Errorf("max_bin_size must be > 0, got %d", o.MaxBinSize)
	}
	if o.BinClusterRatio <= 0 {
		return errors.Errorf("bin_cluster_ratio must be > 0, got %v", o.BinClusterRatio)
	}
	return nil
}
