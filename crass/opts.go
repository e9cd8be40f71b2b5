// Package crass wires the String Table, Read Registry, Long-Read Finder,
// Singleton Recruiter, and Aligner into the two-pass discovery pipeline.
// Grounded on original_source/src/crass/libcrispr.cpp's decideWhichSearch
// (pass 1 driver) and findSingletons2 (pass 2 driver), with the
// options-struct-driven orchestration style of
// grailbio-bio/cmd/bio-fusion/main.go and the Opts/DefaultOpts pattern of
// grailbio-bio/fusion/opts.go.
package crass

import (
	"github.com/pkg/errors"

	"github.com/HealthVivo/crass/align"
	"github.com/HealthVivo/crass/finder"
)

// Opts collects every documented pipeline configuration option, plus the
// alignment tuning the align package exposes. Command-line flag parsing
// lives only in cmd/crass-find, never here.
type Opts struct {
	Finder finder.Opts
	Align  align.Opts

	// RemoveHomopolymers run-length-encodes reads before search.
	RemoveHomopolymers bool
	// CovCutoff is the minimum number of reads a token's group must have to
	// be emitted to the Aligner.
	CovCutoff int
	// KmerClustSize is the number of shared kmers required to cluster DR
	// variants downstream of this pipeline; recorded here because it is a
	// recognized option even though no component in this repo consumes it
	// (clustering is explicitly downstream of this pipeline, not part of
	// it).
	KmerClustSize int

	// ConservationCutoff and MinReadDepth configure
	// align.CalculateDRZone.
	ConservationCutoff float64
	MinReadDepth       int

	// Verbosity is a single int log-verbosity level, set from the CLI's -v
	// flag. Run does not read it: logging is not filtered by this value.
	Verbosity int
}

// DefaultOpts holds every documented default for the finder, aligner, and
// pipeline-level options.
var DefaultOpts = Opts{
	Finder:             finder.DefaultOpts,
	Align:              align.DefaultOpts,
	RemoveHomopolymers: false,
	CovCutoff:          3,
	KmerClustSize:      6,
	ConservationCutoff: 0.55,
	MinReadDepth:        2,
}

// Validate checks o's finder bounds for the fatal-at-startup conditions:
// the seed window must fall within [6,9], and the min/max bounds on both DR
// and spacer length must not be inverted.
func (o Opts) Validate() error {
	if o.Finder.Window < 6 || o.Finder.Window > 9 {
		return errors.Errorf("crass: window %d outside [6,9]", o.Finder.Window)
	}
	if o.Finder.MinDR > o.Finder.MaxDR {
		return errors.Errorf("crass: min-dr %d exceeds max-dr %d", o.Finder.MinDR, o.Finder.MaxDR)
	}
	if o.Finder.MinSpacer > o.Finder.MaxSpacer {
		return errors.Errorf("crass: min-spacer %d exceeds max-spacer %d", o.Finder.MinSpacer, o.Finder.MaxSpacer)
	}
	return nil
}
