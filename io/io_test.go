package io

import (
	"math"
	"os"
	"path"
	"strings"
	"testing"

	"gopkg.in/gcfg.v1"

	"fibervox/geom"
	"fibervox/props"
)

func TestExampleExtractFileParses(t *testing.T) {
	wrap := DefaultExtractWrapper()
	if err := gcfg.ReadStringInto(wrap, ExampleExtractFile); err != nil {
		t.Fatalf("example config does not parse: %v", err)
	}

	con := &wrap.Extract
	if con.PoreFile != "path/to/pores.txt" {
		t.Errorf("PoreFile = %q", con.PoreFile)
	}
	if con.FiberRad != 5e-6 {
		t.Errorf("FiberRad = %g", con.FiberRad)
	}
	if con.Resolution != 2e-6 {
		t.Errorf("Resolution = %g", con.Resolution)
	}

	// Commented-out optionals keep their defaults.
	if con.RasterSize != 200 || con.ChunkLen != 100 || con.MemBudgetMB != 4096 {
		t.Errorf("defaults lost: %d %d %d",
			con.RasterSize, con.ChunkLen, con.MemBudgetMB)
	}
	if con.ForceChunked {
		t.Errorf("ForceChunked defaulted to true")
	}
}

func TestValidators(t *testing.T) {
	dir := t.TempDir()
	file := path.Join(dir, "pores.txt")
	if err := os.WriteFile(file, []byte("0 0 0 0\n"), 0644); err != nil {
		t.Fatal(err)
	}

	con := &ExtractConfig{
		PoreFile: file, ThroatFile: file, Output: dir,
		FiberRad: 5e-6, Resolution: 2e-6,
		RasterSize: 200, ChunkLen: 100,
	}

	if !con.ValidPoreFile() || !con.ValidThroatFile() || !con.ValidOutput() {
		t.Errorf("valid paths rejected")
	}
	if !con.ValidFiberRad() || !con.ValidResolution() {
		t.Errorf("valid scalars rejected")
	}

	con.PoreFile = path.Join(dir, "missing.txt")
	if con.ValidPoreFile() {
		t.Errorf("missing pore file accepted")
	}
	con.Output = file
	if con.ValidOutput() {
		t.Errorf("plain file accepted as output directory")
	}
	con.FiberRad = 0
	if con.ValidFiberRad() {
		t.Errorf("zero fiber radius accepted")
	}
}

func TestWriteTables(t *testing.T) {
	dir := t.TempDir()
	net := &props.Network{
		Pores: []props.PoreGeom{
			{Id: 0, Volume: 1.5, Centroid: geom.Vec{1, 2, 3}},
			{Id: 1, Volume: 2.5, Centroid: geom.Vec{4, 5, 6}},
		},
		Throats: []props.ThroatGeom{{
			Id: 0, Pore1: 0, Pore2: 1,
			Area: 0.5, Perimeter: 3,
			ConduitLens: [3]float64{0.1, 0.2, 0.1},
			C2C:         0.4,
		}},
		Porosity: 0.7,
	}

	if err := WriteTables(dir, net); err != nil {
		t.Fatal(err)
	}

	pores, err := os.ReadFile(path.Join(dir, "pores.dat"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(pores)), "\n")
	if len(lines) != 3 {
		t.Fatalf("pore table has %d lines instead of 3", len(lines))
	}
	if !strings.HasPrefix(lines[0], "# id") {
		t.Errorf("pore table header %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "0 1.5 ") {
		t.Errorf("pore row %q", lines[1])
	}

	throats, err := os.ReadFile(path.Join(dir, "throats.dat"))
	if err != nil {
		t.Fatal(err)
	}
	lines = strings.Split(strings.TrimSpace(string(throats)), "\n")
	if len(lines) != 2 {
		t.Fatalf("throat table has %d lines instead of 2", len(lines))
	}
	if !strings.Contains(lines[1], " 0.5 3 ") {
		t.Errorf("throat row %q", lines[1])
	}
}

func TestWriteTablesNaN(t *testing.T) {
	dir := t.TempDir()
	nan := math.NaN()
	net := &props.Network{
		Throats: []props.ThroatGeom{{
			Id: 0, ConduitLens: [3]float64{nan, nan, nan}, C2C: nan,
		}},
	}
	if err := WriteTables(dir, net); err != nil {
		t.Fatal(err)
	}

	throats, err := os.ReadFile(path.Join(dir, "throats.dat"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(throats), "NaN") {
		t.Errorf("undefined lengths not written as NaN")
	}
}
