package umibin

import (
	"bufio"
	"fmt"
	"io"
)

// statsHeader is the fixed column order of umi_binning_stats.txt.
var statsHeader = []string{
	"umi_name", "read_n_raw", "read_n_filt", "read_n_plus", "read_n_neg",
	"read_max_plus", "read_max_neg", "read_orientation_ratio", "ror_filter",
	"umi_match_error_mean", "umi_match_error_sd", "ume_filter",
	"bin_cluster_ratio", "bcr_filter",
}

// WriteStats writes umi_binning_stats.txt. rows is expected to already be in
// the caller's desired (deterministic) order; WriteStats does not itself
// sort.
//
// A plain bufio.Writer is used here rather than grailbio/base/tsv.Writer:
// the latter commits to a schema-tagged struct shape and a TSV dialect that
// doesn't match this single-space-separated, mixed-blank-field format, and
// pulling it in for one writer would be more friction than it saves.
func WriteStats(w io.Writer, rows []BinStats) error {
	bw := bufio.NewWriter(w)
	for i, col := range statsHeader {
		if i > 0 {
			if _, err := bw.WriteByte(' '); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString(col); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	for _, b := range rows {
		ror := float64(0)
		if total := b.PlusCount + b.NegCount; total > 0 {
			minor := b.PlusCount
			if b.NegCount < minor {
				minor = b.NegCount
			}
			ror = float64(minor) / float64(total)
		}

		_, err := fmt.Fprintf(bw, "%s %d %d %d %d %d %d %s %s %s %s %s %s %s\n",
			b.CanonicalUmi,
			b.RawN, b.FiltN, b.PlusCount, b.NegCount,
			b.ReadMaxPlus(), b.ReadMaxNeg(),
			formatFloat(ror),
			string(b.RorState),
			formatFloatPtr(b.UmeMean), formatFloatPtr(b.UmeSD),
			string(b.UmeState),
			formatFloatPtr(b.Bcr),
			string(b.BcrState),
		)
		if err != nil {
			return err
		}
	}
	return bw.Flush()
}

// BinMapRow is one already-resolved row of umi_bin_map.txt.
type BinMapRow struct {
	CanonicalUmi string
	ReadID       string
	Err          int
}

// WriteBinMap writes umi_bin_map.txt: one row per retained read, in the
// order rows is given. The caller is responsible for including only reads
// whose UMI's ror_filter is rof_ok (never rof_subset) and whose
// ume_filter/bcr_filter are both *_ok.
func WriteBinMap(w io.Writer, rows []BinMapRow) error {
	bw := bufio.NewWriter(w)
	for _, r := range rows {
		if _, err := fmt.Fprintf(bw, "%s %s %d\n", r.CanonicalUmi, r.ReadID, r.Err); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func formatFloat(f float64) string {
	return fmt.Sprintf("%.6g", f)
}

func formatFloatPtr(f *float64) string {
	if f == nil {
		return ""
	}
	return formatFloat(*f)
}
