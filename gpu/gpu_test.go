package gpu

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/usimt/isa"
)

func TestGpuIdle(t *testing.T) {
	assert := assert.New(t)

	dut := New()
	dut.Eval()

	assert.Equal(uint8(0), dut.ExecutionDone)
	assert.Equal(uint8(0), dut.InstructionMemReadValid)
}

func TestGpuHaltHandshake(t *testing.T) {
	assert := assert.New(t)

	dut := New()
	dut.KernelConfig[KERNEL_CONFIG_NUM_BLOCKS] = 1
	dut.KernelConfig[KERNEL_CONFIG_NUM_WARPS] = 1
	dut.ExecutionStart = 1

	dut.Eval()
	assert.Equal(uint8(0), dut.ExecutionDone)

	// One warp fetching its first word on channel 0.
	assert.Equal(uint8(1), dut.InstructionMemReadValid)
	assert.Equal(uint32(0), dut.InstructionMemReadAddress[0])

	// Service the fetch with a halt; nothing moves until the edge.
	dut.InstructionMemReadData[0] = uint32(isa.MakeHalt())
	dut.InstructionMemReadReady = 1
	dut.Eval()
	assert.Equal(uint8(0), dut.ExecutionDone)
	assert.Equal(uint8(1), dut.InstructionMemReadValid)

	dut.Clk = 0
	dut.Eval()
	dut.Clk = 1
	dut.Eval()

	assert.Equal(uint8(1), dut.ExecutionDone)
	assert.Equal(uint8(0), dut.InstructionMemReadValid)
}

func TestGpuBaseAddresses(t *testing.T) {
	assert := assert.New(t)

	dut := New()
	dut.KernelConfig[KERNEL_CONFIG_NUM_BLOCKS] = 1
	dut.KernelConfig[KERNEL_CONFIG_NUM_WARPS] = 1
	dut.KernelConfig[KERNEL_CONFIG_BASE_INSTRUCTIONS] = 0x100
	dut.ExecutionStart = 1

	dut.Eval()

	// Fetches are offset by the instruction base address.
	assert.Equal(uint32(0x100), dut.InstructionMemReadAddress[0])
}

func TestGpuEvalIsIdempotentWithoutEdge(t *testing.T) {
	assert := assert.New(t)

	dut := New()
	dut.KernelConfig[KERNEL_CONFIG_NUM_BLOCKS] = 1
	dut.KernelConfig[KERNEL_CONFIG_NUM_WARPS] = 1
	dut.ExecutionStart = 1

	dut.Eval()
	valid := dut.InstructionMemReadValid
	addr := dut.InstructionMemReadAddress

	// Re-settling without a clock edge must not advance state, even
	// with ready asserted.
	dut.InstructionMemReadData[0] = uint32(isa.MakeHalt())
	dut.InstructionMemReadReady = 1
	dut.Eval()
	dut.Eval()

	assert.Equal(valid, dut.InstructionMemReadValid)
	assert.Equal(addr, dut.InstructionMemReadAddress)
	assert.Equal(uint8(0), dut.ExecutionDone)
}
