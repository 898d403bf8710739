package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"gopkg.in/gcfg.v1"

	"fibervox/facet"
	"fibervox/fiber"
	"fibervox/io"
	"fibervox/props"
	"fibervox/report"
	"fibervox/tess"
	"fibervox/voxel"
)

func main() {
	var (
		extractStr    string
		exampleConfig string
		threads       int
	)
	vars := map[string]*string{
		"Extract":       &extractStr,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&extractStr, "Extract", "",
		"Configuration file for [Extract] mode.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. The only accepted argument is 'Extract'.",
	)
	flag.IntVar(
		&threads, "Threads", 0,
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.Parse()

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Extract":
		wrap := io.DefaultExtractWrapper()
		err := gcfg.ReadFileInto(wrap, extractStr)
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Extract
		if threads > 0 {
			con.Threads = threads
		}

		if !con.ValidPoreFile() {
			log.Fatal("Invalid/non-existent 'PoreFile' value.")
		} else if !con.ValidThroatFile() {
			log.Fatal("Invalid/non-existent 'ThroatFile' value.")
		} else if !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidFiberRad() {
			log.Fatal("'FiberRad' must be positive.")
		} else if !con.ValidResolution() {
			log.Fatal("'Resolution' must be positive.")
		} else if !con.ValidRasterSize() {
			log.Fatal("'RasterSize' must be positive.")
		} else if !con.ValidChunkLen() {
			log.Fatal("'ChunkLen' must be positive.")
		}

		extractMain(con)

	case "ExampleConfig":
		switch exampleConfig {
		case "Extract":
			fmt.Println(io.ExampleExtractFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only " +
					"recognized argument is 'Extract'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}
	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}
	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but only one flag may be "+
				"given at a time.",
			strings.Join(setNames, ", "),
		)
	}
	return setNames[0], nil
}

// extractMain runs the full extraction pipeline for one configuration.
func extractMain(con *io.ExtractConfig) {
	var logFile *os.File
	if con.ValidLogFile() {
		var err error
		logFile, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	workers := con.Threads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(workers)

	ts, err := tess.Load(
		con.PoreFile, con.ThroatFile, con.FiberRad, con.Resolution,
	)
	if err != nil {
		log.Fatal(err.Error())
	}
	g := ts.Grid()
	log.Printf("Loaded %d pores, %d throats", len(ts.Pores), len(ts.Throats))
	log.Printf("Voxels: %d %d %d", g.Width[0], g.Width[1], g.Width[2])

	rec := &report.Recorder{}

	labels := voxel.Voxelize(ts, workers, rec)

	phase, dist, err := fiber.Build(ts, fiber.Opts{
		ChunkLen:     con.ChunkLen,
		MemBudgetMB:  con.MemBudgetMB,
		Workers:      workers,
		ForceChunked: con.ForceChunked,
	}, rec)
	if err != nil {
		log.Fatal(err.Error())
	}

	facets := facet.AnalyzeAll(
		ts, con.RasterSize, con.DebugMaskDir, workers, rec,
	)

	net := props.Aggregate(ts, labels, phase, dist, facets)
	log.Printf("Porosity: %.4f", net.Porosity)

	for _, c := range rec.Conditions() {
		log.Printf("Condition: %s", c)
	}

	if err := io.WriteTables(con.Output, net); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Wrote property tables to %s", con.Output)
}
