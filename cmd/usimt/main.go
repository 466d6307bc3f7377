// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/usimt/asm"
	"github.com/ezrec/usimt/gpu"
	"github.com/ezrec/usimt/sim"
)

func starlarkWord(value starlark.Value) (word uint32, err error) {
	stInt, ok := value.(starlark.Int)
	if !ok {
		err = fmt.Errorf("data: %v is not an integer", value)
		return
	}
	i64, ok := stInt.Int64()
	if !ok || i64 > 0xffffffff || i64 < -int64(0x80000000) {
		err = fmt.Errorf("data: %v does not fit in a word", value)
		return
	}
	word = uint32(i64)
	return
}

// evalData evaluates a starlark expression to the initial data-memory
// words: either a single integer or any iterable of integers.
func evalData(expr string) (words []uint32, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}

	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "data", prog, starlark.StringDict{})
	if err != nil {
		return
	}
	rc, ok := dict["rc"]
	if !ok {
		err = fmt.Errorf("data: %v is not a valid expression", expr)
		return
	}

	if iter := starlark.Iterate(rc); iter != nil {
		defer iter.Done()
		var value starlark.Value
		for iter.Next(&value) {
			var word uint32
			word, err = starlarkWord(value)
			if err != nil {
				return
			}
			words = append(words, word)
		}
		return
	}

	word, err := starlarkWord(rc)
	if err != nil {
		return
	}
	words = []uint32{word}
	return
}

func main() {
	var maxCycles int
	var data string
	var dump int
	var verbose bool

	flag.IntVar(&maxCycles, "m", 10000, "Maximum number of simulated cycles")
	flag.StringVar(&data, "data", "", "Initial data memory (starlark expression)")
	flag.IntVar(&dump, "dump", 0, "Print the first N data cells after the run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: usage: usimt [options] <input.asm>", os.Args[0])
	}
	input := flag.Arg(0)

	inf, err := os.Open(input)
	if err != nil {
		log.Fatalf("%v: %v", input, err)
	}
	defer inf.Close()

	assembler := &asm.Assembler{Verbose: verbose}
	prog, err := assembler.Parse(inf)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v: %v\n", input, err)
		os.Exit(1)
	}

	dut := gpu.New()
	dut.Verbose = verbose
	instructionMem := sim.NewInstructionMemory(dut)
	dataMem := sim.NewDataMemory(dut)

	instructionMem.LoadProgram(prog)

	if len(data) != 0 {
		var words []uint32
		words, err = evalData(data)
		if err != nil {
			log.Fatalf("%v", err)
		}
		for _, word := range words {
			dataMem.PushData(word)
		}
	}

	config := prog.Config
	sim.SetKernelConfig(dut, config.BaseInstructionsAddr, config.BaseDataAddr, config.NumBlocks, config.NumWarpsPerBlock)

	done := sim.Simulate(dut, instructionMem, dataMem, maxCycles)

	if dump > 0 {
		dataMem.PrintMemory(dump)
	}

	if !done {
		log.Fatalf("%v: no halt within %v cycles", input, maxCycles)
	}
}
