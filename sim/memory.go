package sim

import (
	"fmt"
	"log"
	"maps"
	"math"
	"slices"

	"github.com/ezrec/usimt/asm"
	"github.com/ezrec/usimt/gpu"
	"github.com/ezrec/usimt/isa"
)

// MAX_SIZE bounds the addressable range of both memories.
const MAX_SIZE = uint32(math.MaxUint32)

// InstructionMemory services the instruction fetch bus: one read
// request per channel per cycle. Cells default to zero.
type InstructionMemory struct {
	Dut    *gpu.Gpu
	Memory map[uint32]uint32

	// PushPtr is the append cursor used by test setup. It advances only
	// on PushInstruction (LoadProgram pushes through it); direct
	// LoadInstruction writes never move or reset it.
	PushPtr uint32
}

// NewInstructionMemory creates an empty instruction memory bound to a
// device.
func NewInstructionMemory(dut *gpu.Gpu) *InstructionMemory {
	return &InstructionMemory{Dut: dut, Memory: map[uint32]uint32{}}
}

// Process services this cycle's read requests. A channel's ready bit is
// raised iff its valid bit is set this cycle.
func (mem *InstructionMemory) Process() {
	dut := mem.Dut
	for i := 0; i < gpu.INSTRUCTION_MEM_NUM_CHANNELS; i++ {
		if dut.InstructionMemReadValid&(1<<i) != 0 {
			addr := dut.InstructionMemReadAddress[i]
			if addr < MAX_SIZE {
				dut.InstructionMemReadData[i] = mem.Memory[addr]
			} else {
				dut.InstructionMemReadData[i] = 0
				log.Print(f("Error: Read out of bounds %v", addr))
			}
			setBit(&dut.InstructionMemReadReady, i, true)
		} else {
			setBit(&dut.InstructionMemReadReady, i, false)
		}
	}
}

// LoadInstruction stores one encoded word at an explicit address.
func (mem *InstructionMemory) LoadInstruction(addr uint32, word isa.Bits) {
	if addr < MAX_SIZE {
		mem.Memory[addr] = uint32(word)
	} else {
		log.Print(f("Error: Attempt to load instruction at invalid address %v", addr))
	}
}

// PushInstruction appends one encoded word at the push cursor.
func (mem *InstructionMemory) PushInstruction(word isa.Bits) {
	mem.Memory[mem.PushPtr] = uint32(word)
	mem.PushPtr++
}

// LoadProgram pushes an assembled program starting at the push cursor.
func (mem *InstructionMemory) LoadProgram(prog *asm.Program) {
	for _, word := range prog.Codes() {
		mem.PushInstruction(word)
	}
}

// At reads one cell.
func (mem *InstructionMemory) At(addr uint32) uint32 {
	return mem.Memory[addr]
}

// DataMemory services the data bus: per-channel reads and writes, with
// writes applied before reads within a cycle.
type DataMemory struct {
	Dut    *gpu.Gpu
	Memory map[uint32]uint32

	// PushPtr is the append cursor used by test setup. It advances only
	// on PushData; direct Set writes never move or reset it.
	PushPtr uint32
}

// NewDataMemory creates an empty data memory bound to a device.
func NewDataMemory(dut *gpu.Gpu) *DataMemory {
	return &DataMemory{Dut: dut, Memory: map[uint32]uint32{}}
}

// Process services this cycle's requests: writes first, then reads, so
// a read of an address written in the same cycle returns the new value.
func (mem *DataMemory) Process() {
	dut := mem.Dut

	for i := 0; i < gpu.DATA_MEM_NUM_CHANNELS; i++ {
		if dut.DataMemWriteValid&(1<<i) != 0 {
			addr := dut.DataMemWriteAddress[i]
			if addr < MAX_SIZE {
				mem.Memory[addr] = dut.DataMemWriteData[i]
			} else {
				log.Print(f("Error: Write to invalid address %v", addr))
			}
			setBit(&dut.DataMemWriteReady, i, true)
		} else {
			setBit(&dut.DataMemWriteReady, i, false)
		}
	}

	for i := 0; i < gpu.DATA_MEM_NUM_CHANNELS; i++ {
		if dut.DataMemReadValid&(1<<i) != 0 {
			addr := dut.DataMemReadAddress[i]
			if addr < MAX_SIZE {
				dut.DataMemReadData[i] = mem.Memory[addr]
			} else {
				dut.DataMemReadData[i] = 0
				log.Print(f("Error: Read from invalid address %v", addr))
			}
			setBit(&dut.DataMemReadReady, i, true)
		} else {
			setBit(&dut.DataMemReadReady, i, false)
		}
	}
}

// PushData appends one word at the push cursor.
func (mem *DataMemory) PushData(data uint32) {
	mem.Memory[mem.PushPtr] = data
	mem.PushPtr++
}

// At reads one cell.
func (mem *DataMemory) At(addr uint32) uint32 {
	return mem.Memory[addr]
}

// Set writes one cell directly. The push cursor is unaffected.
func (mem *DataMemory) Set(addr, data uint32) {
	mem.Memory[addr] = data
}

// PrintMemory prints up to maxLines occupied cells in address order.
func (mem *DataMemory) PrintMemory(maxLines int) {
	for n, addr := range slices.Sorted(maps.Keys(mem.Memory)) {
		if n >= maxLines {
			break
		}
		fmt.Printf("Memory[%v]: %v\n", addr, mem.Memory[addr])
	}
}
