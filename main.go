package main

/* Tim Henderson (tadh@case.edu)
*
* Copyright (c) 2015, Tim Henderson, Case Western Reserve University
* Cleveland, Ohio 44106. All Rights Reserved.
*
* This library is free software; you can redistribute it and/or modify
* it under the terms of the GNU General Public License as published by
* the Free Software Foundation; either version 3 of the License, or (at
* your option) any later version.
*
* This library is distributed in the hope that it will be useful, but
* WITHOUT ANY WARRANTY; without even the implied warranty of
* MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
* General Public License for more details.
*
* You should have received a copy of the GNU General Public License
* along with this library; if not, write to the Free Software
* Foundation, Inc.,
*   51 Franklin Street, Fifth Floor,
*   Boston, MA  02110-1301
*   USA
 */

import (
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/simplets/canon"
	"github.com/timtadh/simplets/cmd"
	"github.com/timtadh/simplets/config"
)

func init() {
	cmd.UsageMessage = "simplets --help"
	cmd.ExtendedMessage = `
simplets - mine the frequent simplets of a simplicial complex

$ simplets -o <path> --support=<int> --max-size=<int> [Global Options] \
    <loader> [Loader Options] <input-path> \
    [<mode> [Mode Options]] \
    [<reporter> [Reporter Options]]

Note: You must supply [Global Options] then [<loader> [Loader Options]] then
      <input-path> then [<mode> [Mode Options]] and finally the reporters.
      Changes in ordering are not supported.

Note: You may either supply the <input-path> as a regular file or a gzipped
      file. If supplying a gzip file the file extension must be '.gz'.

Note: If you don't supply a reporter by default it will use 'chain log file'.

Note: Options given on the command line override the --config file.

Global Options
    -h, --help                view this message
    --loaders                 show the available loaders
    --modes                   show the available modes
    --reporters               show the available reporters
    -o, --output=<path>       path to output directory (default .)
    --config=<path>           read options from a yaml file. keys: output,
                              support, min_dim, max_size, measure, harmful,
                              greedy, all_matches, timeout, limited,
                              parallelism
    --name=<name>             dataset name used in output file names
                              (default: the input file name)
    -s, --support=<int>       minimum frequency of patterns (required)
    --min-dim=<int>           only report patterns of at least this
                              dimension (default 0)
    -M, --max-size=<int>      maximum number of pattern vertices (required)
    --measure=<mni|mis>       support measure (default mni)
                                mni  minimum image size
                                mis  maximum independent set of the
                                     embedding overlap graph (implies
                                     all-matches)
    --harmful                 with mis only count harmful overlaps
    --greedy                  with mis use the greedy independent set
    -p, --parallelism=<int>   number of workers (-1 for all cpus, the default)
    --canon=<engine>          canonical labeling engine: bliss (default) or
                              exhaustive
    --skip-log=<level>        don't output the given log level.

Developer Options
    --cpu-profile=<path>      write a cpu-profile to this location

Loaders
    simplex                   one face per line, vertices are space separated
                              integers. Blank lines and # comments are skipped.
    components                one connected component per line. Faces are
                              separated by two tabs and written [a, b, c].
                              Every component is mined on its own.
    dot                       a graphviz file. Every edge is a face. A node
                              attribute face="a b c" adds a higher face.

    simplex and dot Options
        -c, --components      mine every connected component on its own

Modes
    single                    (default for mni) find one embedding per image
                              candidate, stop at the support
    all-matches               find every embedding

    single Options
        -t, --timeout=<dur>   bound each match search. Takes a duration (2s,
                              250ms) or milliseconds. Inconclusive searches are
                              retried without the bound when needed.
        -l, --limited         release image sets once all children are
                              generated

    all-matches Options
        -l, --limited         as for single

Reporters
    chain                     chain several reporters together (end the chain
                              with endchain)
    log                       log the patterns
    file                      write <frequency>\t<faces> lines to the result
                              file in the output dir
    count                     write the number of patterns
    unique                    pass only the first pattern with each canonical
                              label to an inner reporter
    skip                      pass every n-th pattern to an inner reporter
    occurrences               write the vertex to pattern occurrence map of
                              every frequent pattern. takes an optional inner
                              reporter.

    log Options
        -l, level=<string>    log level the logger should use
        -p, prefix=<string>   a prefix to put before the log line

    file Options
        -i, images=<name>     also write the image sets to this file

    count Options
        -f, filename=<name>   file in the output directory

    unique Options
        --histogram=<name>    write how many times each pattern was seen

    skip Options
        -n, every=<int>       pass on every n-th pattern

    Examples

        $ simplets -o /tmp/out --support=5 --min-dim=1 --max-size=4 \
            simplex ./contacts.txt.gz \
            single --timeout=500ms

        $ simplets -o /tmp/out --support=3 --max-size=3 --measure=mis \
            components ./temporal.txt \
            chain log occurrences file endchain
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"ho:s:M:p:",
		[]string{
			"help",
			"loaders", "modes", "reporters",
			"output=",
			"config=",
			"name=",
			"support=",
			"min-dim=",
			"max-size=",
			"measure=",
			"harmful",
			"greedy",
			"parallelism=",
			"canon=",
			"skip-log=",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr, "could not process your arguments try:")
		fmt.Fprintf(os.Stderr, "$ %v --help\n", os.Args[0])
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	conf := config.Default()
	for _, oa := range optargs {
		if oa.Opt() == "--config" {
			if err := conf.Load(cmd.AssertFileOrDirExists(oa.Arg())); err != nil {
				fmt.Fprintln(os.Stderr, err)
				cmd.Usage(cmd.ErrorCodes["badconf"])
			}
		}
	}

	var engine canon.Canonicalizer = canon.Bliss{}
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "--config":
		case "-o", "--output":
			conf.Output = oa.Arg()
		case "--name":
			conf.Data = oa.Arg()
		case "-s", "--support":
			conf.Support = cmd.ParseInt(oa.Arg())
		case "--min-dim":
			conf.MinDim = cmd.ParseInt(oa.Arg())
		case "-M", "--max-size":
			conf.MaxSize = cmd.ParseInt(oa.Arg())
		case "--measure":
			conf.Measure = cmd.Measure(oa.Arg())
		case "--harmful":
			conf.Harmful = true
		case "--greedy":
			conf.Greedy = true
		case "-p", "--parallelism":
			conf.Parallelism = cmd.ParseInt(oa.Arg())
		case "--canon":
			e, has := cmd.Engines[oa.Arg()]
			if !has {
				fmt.Fprintf(os.Stderr, "Unknown canonical labeling engine '%v'\n", oa.Arg())
				cmd.Usage(cmd.ErrorCodes["opts"])
			}
			engine = e
		case "--loaders":
			fmt.Fprintln(os.Stderr, "Loaders:")
			for k := range cmd.Loaders {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--modes":
			fmt.Fprintln(os.Stderr, "Modes:")
			for k := range cmd.Modes {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--reporters":
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range cmd.Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			os.Exit(0)
		case "--skip-log":
			level := strings.ToUpper(oa.Arg())
			errors.Logf("INFO", "not logging level %v", level)
			errors.SkipLogging[level] = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}
	conf.Output = cmd.AssertDir(conf.Output)

	if cpuProfile != "" {
		errors.Logf("DEBUG", "starting cpu profile: %v", cpuProfile)
		f, err := os.Create(cpuProfile)
		if err != nil {
			log.Fatal(err)
		}
		err = pprof.StartCPUProfile(f)
		if err != nil {
			log.Fatal(err)
		}
		defer func() {
			errors.Logf("DEBUG", "closing cpu profile")
			pprof.StopCPUProfile()
			err := f.Close()
			errors.Logf("DEBUG", "closed cpu profile, err: %v", err)
		}()
	}

	return cmd.Main(args, conf, engine)
}
