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
	"bufio"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"sort"
	"strings"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/simplets/canon"
	"github.com/timtadh/simplets/cmd"
	"github.com/timtadh/simplets/host"
	"github.com/timtadh/simplets/search"
	"github.com/timtadh/simplets/simplet"
)

func init() {
	cmd.UsageMessage = "find-embeddings --help"
	cmd.ExtendedMessage = `
find-embeddings -p <pattern> [--loader=<loader>] [--distinct] <input-path>
find-embeddings --patterns=<result-file> [--distinct] <input-path>

Options
    -h, --help                view this message
    -p, --pattern=<faces>     the pattern as a comma separated list of faces,
                              eg. "0 1 2, 2 3"
    --patterns=<path>         find every pattern of a result file written by
                              the file reporter
    --loader=<loader>         simplex (default), dot or components
    -d, --distinct            list each set of host vertices once
    --cpu-profile=<path>      write a cpu-profile to this location
`
}

func main() {
	os.Exit(run())
}

func run() int {
	args, optargs, err := getopt.GetOpt(
		os.Args[1:],
		"hp:d",
		[]string{
			"help",
			"pattern=",
			"patterns=",
			"loader=",
			"distinct",
			"cpu-profile=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}

	patterns := make([]string, 0, 1)
	loaderName := "simplex"
	distinct := false
	cpuProfile := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			cmd.Usage(0)
		case "-p", "--pattern":
			patterns = append(patterns, oa.Arg())
		case "--patterns":
			loaded, err := loadPatterns(cmd.AssertFileOrDirExists(oa.Arg()))
			if err != nil {
				fmt.Fprintf(os.Stderr, "could not read patterns from %v: %v\n", oa.Arg(), err)
				return 1
			}
			patterns = append(patterns, loaded...)
		case "--loader":
			loaderName = oa.Arg()
		case "-d", "--distinct":
			distinct = true
		case "--cpu-profile":
			cpuProfile = cmd.AssertFile(oa.Arg())
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			cmd.Usage(cmd.ErrorCodes["opts"])
		}
	}

	if len(patterns) == 0 {
		fmt.Fprintf(os.Stderr, "You must supply a pattern (-p or --patterns)\n")
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	load, has := host.Loaders[loaderName]
	if !has {
		fmt.Fprintf(os.Stderr, "Unknown loader '%v'\n", loaderName)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		cmd.Usage(cmd.ErrorCodes["opts"])
	}
	inputPath := cmd.AssertFileOrDirExists(args[0])

	input, closer := cmd.Input(inputPath)
	complexes, err := load(input)
	closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}

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

	total := 0
	for id, pattern := range patterns {
		p, err := parsePattern(id, pattern)
		if err != nil {
			fmt.Fprintf(os.Stderr, "There was error building the pattern '%v'\n", pattern)
			fmt.Fprintf(os.Stderr, "%v\n", err)
			return 1
		}
		errors.Logf("INFO", "loaded pattern %v", p.Label())
		for i, h := range complexes {
			found := embeddings(h, p, distinct, func(emb search.Embedding) {
				fmt.Printf("%v\t%d\t%v\n", p.Label(), i, emb)
			})
			errors.Logf("INFO", "pattern %v complex %d: %v embeddings", p.Label(), i, found)
			total += found
		}
	}
	errors.Logf("INFO", "total embeddings %v", total)
	return 0
}

func parsePattern(id int, pattern string) (*simplet.Simplet, error) {
	faces, err := simplet.ParseFaces(pattern)
	if err != nil {
		return nil, err
	}
	p, err := simplet.FromFaces(id, canon.Exhaustive{}, faces)
	if err != nil {
		return nil, err
	}
	if len(p.DFS(0)) != p.NumVertices() {
		return nil, errors.Errorf("the pattern is not connected")
	}
	return p, nil
}

// embeddings calls do with every embedding of p into h and returns how many
// there were. With distinct set, embeddings onto the same host vertices are
// passed on once.
func embeddings(h *host.Complex, p *simplet.Simplet, distinct bool, do func(search.Embedding)) int {
	m := search.New(h, p, search.Options{Support: 1, Timeout: -1})
	seen := make(map[string]bool)
	found := 0
	m.FindAll(search.NewEmbedding(p.NumVertices()), p.DFS(0), func(emb search.Embedding) {
		if distinct {
			key := hostKey(emb)
			if seen[key] {
				return
			}
			seen[key] = true
		}
		found++
		do(emb)
	})
	return found
}

// loadPatterns reads the labels of a result file. Lines are
// "<frequency>\t<faces>" or just "<faces>".
func loadPatterns(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	patterns := make([]string, 0, 10)
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" {
			continue
		}
		if i := strings.LastIndex(line, "\t"); i >= 0 {
			line = line[i+1:]
		}
		patterns = append(patterns, line)
	}
	return patterns, s.Err()
}

func hostKey(emb search.Embedding) string {
	hosts := make([]int, len(emb))
	copy(hosts, emb)
	sort.Ints(hosts)
	parts := make([]string, 0, len(hosts))
	for _, h := range hosts {
		parts = append(parts, fmt.Sprint(h))
	}
	return strings.Join(parts, " ")
}
