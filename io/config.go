/*package io contains the configuration handling for the extraction
command.*/
package io

import (
	"os"
)

const ExampleExtractFile = `[Extract]

#######################
# Required Parameters #
#######################

# PoreFile is a whitespace-column text file with one pore hull vertex per
# row: poreID x y z
PoreFile = path/to/pores.txt

# ThroatFile is a whitespace-column text file with one throat facet vertex
# per row: throatID pore1 pore2 x y z
ThroatFile = path/to/throats.txt

# Physical radius applied to the fibers occupying the tessellation edges.
FiberRad = 5e-6

# Physical edge length of one voxel. Choose with care: memory scales with
# the cube of the domain extent over this value.
Resolution = 2e-6

# Directory the pore and throat property tables are written to.
Output = path/to/output/dir

#######################
# Optional Parameters #
#######################

# Longer edge of the per-throat facet raster, in cells.
# RasterSize = 200

# Cubic chunk edge, in voxels, used when the domain exceeds the memory
# budget.
# ChunkLen = 100

# Budget for the voxel working set, in MB. Exceeding it selects chunked
# processing; if a single chunk with its halo still exceeds it, the run
# aborts.
# MemBudgetMB = 4096

# Number of worker goroutines. Defaults to the number of logical cores.
# Threads = 0

# Always take the chunked path, regardless of the memory estimate.
# ForceChunked = false

# Redirect the log to a file.
# LogFile = log.out

# Write a PNG of every eroded throat mask into this directory.
# DebugMaskDir = path/to/masks`

// ExtractConfig describes a run of the geometry extraction pipeline.
type ExtractConfig struct {
	PoreFile   string
	ThroatFile string
	FiberRad   float64
	Resolution float64
	Output     string

	RasterSize   int
	ChunkLen     int
	MemBudgetMB  int
	Threads      int
	ForceChunked bool
	LogFile      string
	DebugMaskDir string
}

// ExtractWrapper is the gcfg wrapper around the [Extract] section.
type ExtractWrapper struct {
	Extract ExtractConfig
}

// DefaultExtractWrapper returns a wrapper with the default optional
// parameters filled in.
func DefaultExtractWrapper() *ExtractWrapper {
	return &ExtractWrapper{Extract: ExtractConfig{
		RasterSize:  200,
		ChunkLen:    100,
		MemBudgetMB: 4096,
	}}
}

func validFile(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && !info.IsDir()
}

func validDir(name string) bool {
	if name == "" {
		return false
	}
	info, err := os.Stat(name)
	return err == nil && info.IsDir()
}

func (con *ExtractConfig) ValidPoreFile() bool   { return validFile(con.PoreFile) }
func (con *ExtractConfig) ValidThroatFile() bool { return validFile(con.ThroatFile) }
func (con *ExtractConfig) ValidOutput() bool     { return validDir(con.Output) }

func (con *ExtractConfig) ValidFiberRad() bool   { return con.FiberRad > 0 }
func (con *ExtractConfig) ValidResolution() bool { return con.Resolution > 0 }

func (con *ExtractConfig) ValidRasterSize() bool { return con.RasterSize > 0 }
func (con *ExtractConfig) ValidChunkLen() bool   { return con.ChunkLen > 0 }

func (con *ExtractConfig) ValidLogFile() bool      { return con.LogFile != "" }
func (con *ExtractConfig) ValidDebugMaskDir() bool { return con.DebugMaskDir != "" }
