package crass

import (
	"io"

	"github.com/grailbio/base/log"
	"github.com/pkg/errors"

	"github.com/HealthVivo/crass/align"
	"github.com/HealthVivo/crass/fastx"
	"github.com/HealthVivo/crass/finder"
	"github.com/HealthVivo/crass/reads"
	"github.com/HealthVivo/crass/registry"
	"github.com/HealthVivo/crass/seqtable"
	"github.com/HealthVivo/crass/singleton"
	"github.com/HealthVivo/crass/stats"
)

// progressLoggerInterval mirrors original_source/src/crass/crassDefines.h's
// CRASS_DEF_READ_COUNTER_LOGGER: progress is logged once per this many reads
// processed in pass 1.
const progressLoggerInterval = 100000

// GroupResult is the Aligner's output for one merged group of tokens: the
// master token the group was aligned against, the per-token alignment
// outcomes, the generated consensus, and the located DR zone.
type GroupResult struct {
	Master       seqtable.Token
	AlignResults map[seqtable.Token]align.Result
	Consensus    *align.Consensus
	Zone         align.Zone
}

// Result is the populated state after a full crass run: the String Table,
// the Read Registry, accumulated Stats, and the Aligner's output for the
// one merged group of tokens that survived CovCutoff filtering.
type Result struct {
	Table    *seqtable.Table
	Registry *registry.Registry
	Stats    stats.Stats
	Group    *GroupResult
}

// Run executes the two-pass pipeline: pass 1 runs the Long-Read Finder over
// every record open1 yields; pass 2 builds a Singleton Recruiter over pass
// 1's confirmed DR patterns and streams open2's records looking for
// singleton occurrences. Two separate input-opening functions are accepted
// because the input source does not seek; a CLI caller typically reopens
// the same file path for each.
func Run(open1, open2 func() (io.Reader, error), opts Opts) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, errors.Wrap(err, "crass: invalid options")
	}

	tbl := seqtable.New()
	reg := registry.New()
	var st stats.Stats

	if err := pass1(open1, tbl, reg, &st, opts); err != nil {
		return nil, errors.Wrap(err, "crass: pass 1")
	}
	if err := pass2(open2, tbl, reg, &st, opts); err != nil {
		return nil, errors.Wrap(err, "crass: pass 2")
	}

	group := alignGroups(tbl, reg, &st, opts)

	return &Result{Table: tbl, Registry: reg, Stats: st, Group: group}, nil
}

func pass1(open func() (io.Reader, error), tbl *seqtable.Table, reg *registry.Registry, st *stats.Stats, opts Opts) error {
	r, err := open()
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	scanner, err := fastx.NewScanner(r)
	if err != nil {
		return errors.Wrap(err, "constructing scanner")
	}

	var rec fastx.Record
	for scanner.Scan(&rec) {
		runFinderOnRecord(rec, tbl, reg, st, opts)
		st.ReadsProcessed++
		if st.ReadsProcessed%progressLoggerInterval == 0 {
			log.Printf("crass: pass 1: processed %d reads", st.ReadsProcessed)
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrapf(err, "record %d", st.ReadsProcessed+1)
	}
	return nil
}

// runFinderOnRecord runs the finder over one record, recovering from any
// panic raised by a coordinate-arithmetic bug in the finder (a programmer
// error, not a per-read failure) the way
// original_source/src/crass/libcrispr.cpp's decideWhichSearch wraps
// longReadSearch in a try/catch. The read is simply skipped and the run
// continues.
func runFinderOnRecord(rec fastx.Record, tbl *seqtable.Table, reg *registry.Registry, st *stats.Stats, opts Opts) {
	defer func() {
		if p := recover(); p != nil {
			log.Error.Printf("crass: pass 1: read %q: recovered from panic: %v", rec.Header, p)
		}
	}()

	r := reads.New(rec.Header, rec.Comment, rec.Bases, rec.Quality)
	if opts.RemoveHomopolymers {
		r.Encode()
	}

	if !finder.Find(r, opts.Finder) {
		return
	}
	finder.Register(r, tbl, reg)
	st.LongReadsFound++
}

func pass2(open func() (io.Reader, error), tbl *seqtable.Table, reg *registry.Registry, st *stats.Stats, opts Opts) error {
	toks := reg.Tokens()
	if len(toks) == 0 {
		return nil
	}
	rec := singleton.NewRecruiter(tbl, toks)

	r, err := open()
	if err != nil {
		return errors.Wrap(err, "opening input")
	}
	scanner, err := fastx.NewScanner(r)
	if err != nil {
		return errors.Wrap(err, "constructing scanner")
	}

	var fr fastx.Record
	for scanner.Scan(&fr) {
		if recruitSingleton(rec, fr, reg, st) {
			st.SingletonsRecruited++
		}
	}
	if err := scanner.Err(); err != nil {
		return errors.Wrap(err, "pass 2 scan")
	}
	return nil
}

func recruitSingleton(rec *singleton.Recruiter, fr fastx.Record, reg *registry.Registry, st *stats.Stats) (recruited bool) {
	defer func() {
		if p := recover(); p != nil {
			log.Error.Printf("crass: pass 2: read %q: recovered from panic: %v", fr.Header, p)
			recruited = false
		}
	}()
	return rec.Recruit(fr.Header, fr.Comment, fr.Bases, fr.Quality, reg)
}

// alignGroups filters the registry's tokens by CovCutoff, picks the
// surviving token with the most registered reads as the alignment master
// (absent a clustering mechanism, which this pipeline places downstream of
// itself), and aligns every other surviving token's DR against it.
func alignGroups(tbl *seqtable.Table, reg *registry.Registry, st *stats.Stats, opts Opts) *GroupResult {
	var surviving []seqtable.Token
	for _, tok := range reg.Tokens() {
		if len(reg.Group(tok)) < opts.CovCutoff {
			st.GroupsBelowCovCutoff++
			continue
		}
		surviving = append(surviving, tok)
	}
	if len(surviving) == 0 {
		return nil
	}

	master := surviving[0]
	for _, tok := range surviving[1:] {
		if len(reg.Group(tok)) > len(reg.Group(master)) {
			master = tok
		}
	}

	al := align.New(opts.Align)
	al.SetMaster(tbl.StringOf(master))
	results := map[seqtable.Token]align.Result{master: {Offset: 0}}
	for _, tok := range surviving {
		if tok == master {
			continue
		}
		res := al.AlignSlave(tok, tbl.StringOf(tok))
		results[tok] = res
		if res.Failed {
			st.AlignmentsFailed++
		}
	}

	cons := align.GenerateConsensus(reg, surviving, results)
	zone := align.CalculateDRZone(cons, opts.ConservationCutoff, opts.MinReadDepth)

	return &GroupResult{Master: master, AlignResults: results, Consensus: cons, Zone: zone}
}
