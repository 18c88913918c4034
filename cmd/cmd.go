package cmd

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
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"
)

import (
	"github.com/timtadh/data-structures/errors"
	"github.com/timtadh/getopt"
)

import (
	"github.com/timtadh/simplets/canon"
	"github.com/timtadh/simplets/config"
	"github.com/timtadh/simplets/host"
	"github.com/timtadh/simplets/metrics"
	"github.com/timtadh/simplets/miner"
	"github.com/timtadh/simplets/reporters"
	"github.com/timtadh/simplets/simplet"
)

var ErrorCodes map[string]int = map[string]int{
	"usage":    0,
	"version":  2,
	"opts":     3,
	"badint":   5,
	"baddir":   6,
	"badfile":  7,
	"baddur":   8,
	"badconf":  9,
}

var UsageMessage string
var ExtendedMessage string

func Usage(code int) {
	fmt.Fprintln(os.Stderr, UsageMessage)
	if code == 0 {
		fmt.Fprintln(os.Stdout, ExtendedMessage)
		code = ErrorCodes["usage"]
	} else {
		fmt.Fprintln(os.Stderr, "Try -h or --help for help")
	}
	os.Exit(code)
}

func Input(input_path string) (reader io.Reader, closeall func()) {
	stat, err := os.Stat(input_path)
	if err != nil {
		panic(err)
	}
	if stat.IsDir() {
		return InputDir(input_path)
	} else {
		return InputFile(input_path)
	}
}

func InputFile(input_path string) (reader io.Reader, closeall func()) {
	freader, err := os.Open(input_path)
	if err != nil {
		panic(err)
	}
	if strings.HasSuffix(input_path, ".gz") {
		greader, err := gzip.NewReader(freader)
		if err != nil {
			panic(err)
		}
		return greader, func() {
			greader.Close()
			freader.Close()
		}
	}
	return freader, func() {
		freader.Close()
	}
}

func InputDir(input_dir string) (reader io.Reader, closeall func()) {
	var readers []io.Reader
	var closers []func()
	dir, err := ioutil.ReadDir(input_dir)
	if err != nil {
		panic(err)
	}
	for _, info := range dir {
		if info.IsDir() {
			continue
		}
		creader, closer := InputFile(path.Join(input_dir, info.Name()))
		readers = append(readers, creader)
		closers = append(closers, closer)
	}
	reader = io.MultiReader(readers...)
	return reader, func() {
		for _, closer := range closers {
			closer()
		}
	}
}

// DatasetName is the input file name without directories or the .gz and
// format extensions.
func DatasetName(input_path string) string {
	name := filepath.Base(input_path)
	name = strings.TrimSuffix(name, ".gz")
	return strings.TrimSuffix(name, filepath.Ext(name))
}

func ParseInt(str string) int {
	i, err := strconv.Atoi(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected an int\n", str)
		Usage(ErrorCodes["badint"])
	}
	return i
}

// ParseDuration accepts Go durations ("250ms", "2s") and bare integers,
// read as milliseconds. Negative values mean no bound.
func ParseDuration(str string) time.Duration {
	if ms, err := strconv.Atoi(str); err == nil {
		if ms < 0 {
			return -1
		}
		return time.Duration(ms) * time.Millisecond
	}
	d, err := time.ParseDuration(str)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing '%v' expected a duration\n", str)
		Usage(ErrorCodes["baddur"])
	}
	return d
}

func AssertDir(dir string) string {
	dir = path.Clean(dir)
	fi, err := os.Stat(dir)
	if err != nil && os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0775)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			Usage(ErrorCodes["baddir"])
		}
		return dir
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["baddir"])
	}
	if !fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was not a directory, %s\n", dir)
		Usage(ErrorCodes["baddir"])
	}
	return dir
}

func AssertFileOrDirExists(fname string) string {
	fname = path.Clean(fname)
	_, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "File '%s' does not exist!\n", fname)
		Usage(ErrorCodes["badfile"])
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

func AssertFile(fname string) string {
	fname = path.Clean(fname)
	fi, err := os.Stat(fname)
	if err != nil && os.IsNotExist(err) {
		return fname
	} else if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		Usage(ErrorCodes["badfile"])
	} else if fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Passed in file was a directory, %s\n", fname)
		Usage(ErrorCodes["badfile"])
	}
	return fname
}

// Load reads the complexes to mine from an input stream.
type Load func(io.Reader) ([]*host.Complex, error)

type Loader func([]string, *config.Config) (Load, []string)

// splitting mines every connected component of the loaded complexes on its
// own.
func splitting(load host.Loader) Load {
	return func(r io.Reader) ([]*host.Complex, error) {
		complexes, err := load(r)
		if err != nil {
			return nil, err
		}
		parts := make([]*host.Complex, 0, len(complexes))
		for _, c := range complexes {
			cs, err := c.Components()
			if err != nil {
				return nil, err
			}
			parts = append(parts, cs...)
		}
		return parts, nil
	}
}

func componentsLoader(name string) Loader {
	return func(argv []string, conf *config.Config) (Load, []string) {
		args, optargs, err := getopt.GetOpt(
			argv,
			"hc",
			[]string{
				"help",
				"components",
			},
		)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			Usage(ErrorCodes["opts"])
		}
		split := false
		for _, oa := range optargs {
			switch oa.Opt() {
			case "-h", "--help":
				Usage(0)
			case "-c", "--components":
				split = true
			default:
				fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
				Usage(ErrorCodes["opts"])
			}
		}
		load := host.Loaders[name]
		if split {
			return splitting(load), args
		}
		return Load(load), args
	}
}

func temporalLoader(argv []string, conf *config.Config) (Load, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return Load(host.Loaders["components"]), args
}

var Loaders map[string]Loader = map[string]Loader{
	"simplex":    componentsLoader("simplex"),
	"dot":        componentsLoader("dot"),
	"components": temporalLoader,
}

type Mode func(argv []string, conf *config.Config) []string

func SingleMode(argv []string, conf *config.Config) []string {
	args, optargs, err := getopt.GetOpt(
		argv,
		"ht:l",
		[]string{
			"help",
			"timeout=",
			"limited",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-t", "--timeout":
			conf.Timeout = ParseDuration(oa.Arg())
		case "-l", "--limited":
			conf.Limited = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	conf.AllMatches = false
	return args
}

func AllMatchesMode(argv []string, conf *config.Config) []string {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl",
		[]string{
			"help",
			"limited",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--limited":
			conf.Limited = true
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	conf.AllMatches = true
	return args
}

var Modes map[string]Mode = map[string]Mode{
	"single":      SingleMode,
	"all-matches": AllMatchesMode,
}

type Reporter func(map[string]Reporter, []string, *config.Config) (miner.Reporter, []string)

func logReporter(rptrs map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hl:p:",
		[]string{
			"help",
			"level=",
			"prefix=",
		},
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	level := "INFO"
	prefix := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-l", "--level":
			level = oa.Arg()
		case "-p", "--prefix":
			prefix = oa.Arg()
		default:
			fmt.Fprintf(os.Stderr, "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewLog(level, prefix), args
}

func fileReporter(rptrs map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hi:",
		[]string{
			"help",
			"images=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	images := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-i", "--images":
			images = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	fr, err := reporters.NewFile(conf, images)
	if err != nil {
		errors.Logf("ERROR", "There was error creating output files\n")
		errors.Logf("ERROR", "%v\n", err)
		os.Exit(1)
	}
	return fr, args
}

func countReporter(rptrs map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hf:",
		[]string{
			"help",
			"filename=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	filename := conf.ResultName("_count.txt")
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-f", "--filename":
			filename = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'\n", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	return reporters.NewCount(conf, filename), args
}

// inner parses the reporter wrapped by a wrapping reporter.
func inner(name string, reports map[string]Reporter, args []string, conf *config.Config, required bool) (miner.Reporter, []string) {
	if len(args) == 0 || args[0] == "endchain" {
		if !required {
			return nil, args
		}
		errors.Logf("ERROR", "You must supply an inner reporter to %v", name)
		fmt.Fprintf(os.Stderr, "try: %v file\n", name)
		Usage(ErrorCodes["opts"])
	} else if _, has := reports[args[0]]; !has {
		if !required {
			return nil, args
		}
		errors.Logf("ERROR", "Unknown reporter '%v'", args[0])
		fmt.Fprintln(os.Stderr, "Reporters:")
		for k := range reports {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	return reports[args[0]](reports, args[1:], conf)
}

func chainReporter(reports map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptrs := make([]miner.Reporter, 0, 10)
	for len(args) >= 1 {
		if args[0] == "endchain" {
			args = args[1:]
			break
		}
		var rptr miner.Reporter
		rptr, args = inner("chain", reports, args, conf, true)
		rptrs = append(rptrs, rptr)
	}
	if len(rptrs) == 0 {
		errors.Logf("ERROR", "Empty chain")
		fmt.Fprintln(os.Stderr, "try: chain log file")
		Usage(ErrorCodes["opts"])
	}
	return &reporters.Chain{Reporters: rptrs}, args
}

func uniqueReporter(reports map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
			"histogram=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	histogram := ""
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "--histogram":
			histogram = oa.Arg()
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := inner("unique", reports, args, conf, true)
	uniq, err := reporters.NewUnique(conf, rptr, histogram)
	if err != nil {
		errors.Logf("ERROR", "Error creating unique reporter '%v'\n", err)
		Usage(ErrorCodes["opts"])
	}
	return uniq, args
}

func skipReporter(reports map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"hn:",
		[]string{
			"help",
			"every=",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	every := 1
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		case "-n", "--every":
			every = ParseInt(oa.Arg())
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	if every < 1 {
		errors.Logf("ERROR", "skip needs --every >= 1")
		Usage(ErrorCodes["opts"])
	}
	rptr, args := inner("skip", reports, args, conf, true)
	return reporters.NewSkip(every, rptr), args
}

func occurrencesReporter(reports map[string]Reporter, argv []string, conf *config.Config) (miner.Reporter, []string) {
	args, optargs, err := getopt.GetOpt(
		argv,
		"h",
		[]string{
			"help",
		},
	)
	if err != nil {
		errors.Logf("ERROR", "%v", err)
		Usage(ErrorCodes["opts"])
	}
	for _, oa := range optargs {
		switch oa.Opt() {
		case "-h", "--help":
			Usage(0)
		default:
			errors.Logf("ERROR", "Unknown flag '%v'", oa.Opt())
			Usage(ErrorCodes["opts"])
		}
	}
	rptr, args := inner("occurrences", reports, args, conf, false)
	return reporters.NewOccurrences(conf, rptr), args
}

var Reporters map[string]Reporter = map[string]Reporter{
	"log":         logReporter,
	"file":        fileReporter,
	"count":       countReporter,
	"chain":       chainReporter,
	"unique":      uniqueReporter,
	"skip":        skipReporter,
	"occurrences": occurrencesReporter,
}

var Engines map[string]canon.Canonicalizer = map[string]canon.Canonicalizer{
	"bliss":      canon.Bliss{},
	"exhaustive": canon.Exhaustive{},
}

// Main runs
//
//	<loader> [Loader Options] <input-path> [<mode> [Mode Options]] [<reporter> ...]
//
// against conf, which already holds the global options. Every complex the
// loader returns is mined on its own with a fresh reporter.
func Main(args []string, conf *config.Config, engine canon.Canonicalizer) int {
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply a loader and an input path\n")
		Usage(ErrorCodes["opts"])
	} else if _, has := Loaders[args[0]]; !has {
		fmt.Fprintf(os.Stderr, "Unknown loader '%v'\n", args[0])
		fmt.Fprintln(os.Stderr, "Loaders:")
		for k := range Loaders {
			fmt.Fprintln(os.Stderr, "  ", k)
		}
		Usage(ErrorCodes["opts"])
	}
	load, args := Loaders[args[0]](args[1:], conf)

	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "You must supply exactly an input path\n")
		fmt.Fprintf(os.Stderr, "You gave: %v\n", args)
		Usage(ErrorCodes["opts"])
	}
	inputPath := AssertFileOrDirExists(args[0])
	args = args[1:]
	if conf.Data == "" {
		conf.Data = DatasetName(inputPath)
	}

	if len(args) >= 1 {
		if mode, has := Modes[args[0]]; has {
			args = mode(args[1:], conf)
		}
	}

	if err := conf.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["badconf"])
	}

	rptrArgs := []string{"chain", "log", "file"}
	if len(args) > 0 {
		if _, has := Reporters[args[0]]; !has {
			fmt.Fprintf(os.Stderr, "Unknown reporter '%v'\n", args[0])
			fmt.Fprintln(os.Stderr, "Reporters:")
			for k := range Reporters {
				fmt.Fprintln(os.Stderr, "  ", k)
			}
			Usage(ErrorCodes["opts"])
		}
		rptrArgs = args
	}
	errors.Logf("INFO", "Got configuration about to load dataset %v", conf.Data)
	input, closer := Input(inputPath)
	complexes, err := load(input)
	closer()
	if err != nil {
		fmt.Fprintf(os.Stderr, "There was error during the loading process\n")
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	errors.Logf("INFO", "loaded %d complexes, about to start mining", len(complexes))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mets := metrics.New()
	code := 0
	for i, cx := range complexes {
		c := conf.Copy()
		if len(complexes) > 1 || conf.Component >= 0 {
			c.Component = i
		}
		rptr, rest := Reporters[rptrArgs[0]](Reporters, rptrArgs[1:], c)
		if len(rest) != 0 {
			fmt.Fprintf(os.Stderr, "unconsumed commandline options: '%v'\n", strings.Join(rest, " "))
			Usage(ErrorCodes["opts"])
		}
		mineErr := miner.New(c, engine, mets).Mine(ctx, cx, rptr)
		if e := rptr.Close(); e != nil {
			errors.Logf("ERROR", "error closing %v", e)
			code++
		}
		if mineErr != nil {
			fmt.Fprintf(os.Stderr, "There was error during the mining process\n")
			fmt.Fprintf(os.Stderr, "%v\n", mineErr)
			code++
			break
		}
	}
	if err := mets.WriteFile(conf.OutputFile("statistics.prom")); err != nil {
		log.Println(err)
		code++
	}
	if code == 0 {
		errors.Logf("INFO", "Done!")
	}
	return code
}

// Measure parses a support measure flag.
func Measure(str string) simplet.Measure {
	m, err := simplet.ParseMeasure(str)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		Usage(ErrorCodes["opts"])
	}
	return m
}
