// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package sim drives the co-simulation: it owns the memory models that
// service the device's request buses once per clock, the kernel-config
// bus, and the cycle loop that steps the device until it signals done
// or the cycle budget runs out.
package sim

import (
	"github.com/ezrec/usimt/gpu"
	"github.com/ezrec/usimt/translate"
)

var f = translate.From

func setBit(signal *uint8, bit int, value bool) {
	if value {
		*signal |= 1 << bit
	} else {
		*signal &^= 1 << bit
	}
}

// Tick pulses the device clock through one full cycle.
func Tick(dut *gpu.Gpu) {
	dut.Clk = 0
	dut.Eval()
	dut.Clk = 1
	dut.Eval()
}

// SetKernelConfig drives the 4-slot kernel-config bus. The slot order
// is observable to the device and fixed: [3]=base instructions address,
// [2]=base data address, [1]=blocks, [0]=warps per block.
func SetKernelConfig(dut *gpu.Gpu, baseInstructionsAddr, baseDataAddr, numBlocks, numWarpsPerBlock uint32) {
	dut.KernelConfig[3] = baseInstructionsAddr
	dut.KernelConfig[2] = baseDataAddr
	dut.KernelConfig[1] = numBlocks
	dut.KernelConfig[0] = numWarpsPerBlock
}

// Simulate runs the cycle loop. Each cycle: settle the outputs, check
// the done flag, service both memories, settle the freshly driven
// inputs, then pulse the clock. Returns false if the device has not
// raised execution_done within maxCycles; the memories are left
// untouched for inspection either way.
func Simulate(dut *gpu.Gpu, instructionMem *InstructionMemory, dataMem *DataMemory, maxCycles int) bool {
	dut.ExecutionStart = 1

	for cycle := 0; cycle < maxCycles; cycle++ {
		dut.Eval()

		if dut.ExecutionDone != 0 {
			return true
		}

		instructionMem.Process()
		dataMem.Process()

		dut.Eval()

		Tick(dut)
	}

	return false
}
