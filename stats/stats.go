// Package stats tracks run-level counters across a crass run. Grounded on
// grailbio-bio/fusion/stats.go's Stats struct + Merge.
package stats

// Stats holds the counters a crass run accumulates across pass 1 and pass 2.
type Stats struct {
	// ReadsProcessed is the total number of reads streamed through pass 1,
	// used for the progress-logging cadence (the original's
	// CRASS_DEF_READ_COUNTER_LOGGER).
	ReadsProcessed int
	// LongReadsFound is the number of reads pass 1 registered via the
	// Long-Read Finder.
	LongReadsFound int
	// QCRejected is a counter for candidates rejected by qcFoundRepeats.
	// crass.Run does not increment it, so it is zero in a Run result.
	QCRejected int
	// SingletonsRecruited is the number of reads pass 2 registered via the
	// Singleton Recruiter.
	SingletonsRecruited int
	// GroupsBelowCovCutoff is the number of token groups dropped before
	// alignment for having fewer reads than Opts.CovCutoff.
	GroupsBelowCovCutoff int
	// AlignmentsFailed is the number of AlignSlave calls that returned
	// Failed (both orientations below min_score).
	AlignmentsFailed int
}

// Merge adds the field values of two Stats and returns a new Stats, the way
// fusion.Stats.Merge does.
func (s Stats) Merge(o Stats) Stats {
	s.ReadsProcessed += o.ReadsProcessed
	s.LongReadsFound += o.LongReadsFound
	s.QCRejected += o.QCRejected
	s.SingletonsRecruited += o.SingletonsRecruited
	s.GroupsBelowCovCutoff += o.GroupsBelowCovCutoff
	s.AlignmentsFailed += o.AlignmentsFailed
	return s
}
