// Command crass-find runs the CRISPR-array discovery pipeline over a
// FASTA/FASTQ input file and reports the registered groups and any merged
// consensus found. Grounded on grailbio-bio/cmd/bio-fusion/main.go's
// flag-based CLI construction and grailbio/base/log usage; option parsing
// lives only here, since the pipeline itself treats configuration as an
// external collaborator, not core behavior.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/grailbio/base/log"

	"github.com/HealthVivo/crass/crass"
)

func main() {
	var (
		inputPath          = flag.String("input", "", "path to a FASTA/FASTQ file (optionally gzip-compressed)")
		minDR              = flag.Int("min-dr", crass.DefaultOpts.Finder.MinDR, "minimum direct repeat length")
		maxDR              = flag.Int("max-dr", crass.DefaultOpts.Finder.MaxDR, "maximum direct repeat length")
		minSpacer          = flag.Int("min-spacer", crass.DefaultOpts.Finder.MinSpacer, "minimum spacer length")
		maxSpacer          = flag.Int("max-spacer", crass.DefaultOpts.Finder.MaxSpacer, "maximum spacer length")
		window             = flag.Int("window", crass.DefaultOpts.Finder.Window, "seed k-mer length (6-9)")
		minRepeats         = flag.Int("min-repeats", crass.DefaultOpts.Finder.MinRepeats, "minimum tandem repeats to accept a candidate")
		removeHomopolymers = flag.Bool("remove-homopolymers", crass.DefaultOpts.RemoveHomopolymers, "run-length-encode reads before search")
		covCutoff          = flag.Int("cov-cutoff", crass.DefaultOpts.CovCutoff, "minimum reads per emitted group")
		verbosity          = flag.Int("v", 0, "log verbosity")
	)
	flag.Parse()

	if *inputPath == "" {
		log.Error.Printf("crass-find: -input is required")
		os.Exit(1)
	}

	opts := crass.DefaultOpts
	opts.Finder.MinDR = *minDR
	opts.Finder.MaxDR = *maxDR
	opts.Finder.MinSpacer = *minSpacer
	opts.Finder.MaxSpacer = *maxSpacer
	opts.Finder.Window = *window
	opts.Finder.MinRepeats = *minRepeats
	opts.RemoveHomopolymers = *removeHomopolymers
	opts.CovCutoff = *covCutoff
	opts.Verbosity = *verbosity

	open := func() (io.Reader, error) {
		return os.Open(*inputPath)
	}

	result, err := crass.Run(open, open, opts)
	if err != nil {
		log.Error.Printf("crass-find: %v", err)
		os.Exit(1)
	}

	fmt.Printf("reads processed: %d\n", result.Stats.ReadsProcessed)
	fmt.Printf("long reads registered: %d\n", result.Stats.LongReadsFound)
	fmt.Printf("singletons recruited: %d\n", result.Stats.SingletonsRecruited)
	fmt.Printf("distinct DR tokens: %d\n", result.Table.Len())
	if result.Group != nil {
		fmt.Printf("merged group master token: %d\n", result.Group.Master)
		fmt.Printf("DR zone found: %v\n", result.Group.Zone.Found)
		if result.Group.Zone.Found {
			fmt.Printf("DR zone: [%d, %d)\n", result.Group.Zone.Start, result.Group.Zone.End)
		}
	}
}
