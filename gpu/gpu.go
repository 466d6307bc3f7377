// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package gpu

import (
	"log"

	"github.com/ezrec/usimt/isa"
	"github.com/ezrec/usimt/translate"
)

var f = translate.From

// Channel counts of the memory request buses. The valid/ready signals
// are bitmasks with one bit per channel.
const (
	INSTRUCTION_MEM_NUM_CHANNELS = 8
	DATA_MEM_NUM_CHANNELS        = 8
)

// Kernel-config bus slot indexes. The slot order is part of the device
// contract and must match the host driver.
const (
	KERNEL_CONFIG_NUM_WARPS         = 0
	KERNEL_CONFIG_NUM_BLOCKS        = 1
	KERNEL_CONFIG_BASE_DATA         = 2
	KERNEL_CONFIG_BASE_INSTRUCTIONS = 3
)

// Gpu is the simulated device. The exported fields are the signal
// contract; drive the inputs, call Eval to settle, and pulse Clk to
// step sequential state. All other state is internal to the device.
type Gpu struct {
	Verbose bool // If set, enables verbose logging.

	Clk            uint8
	ExecutionStart uint8
	ExecutionDone  uint8
	KernelConfig   [4]uint32

	InstructionMemReadValid   uint8
	InstructionMemReadAddress [INSTRUCTION_MEM_NUM_CHANNELS]uint32
	InstructionMemReadReady   uint8
	InstructionMemReadData    [INSTRUCTION_MEM_NUM_CHANNELS]uint32

	DataMemReadValid   uint8
	DataMemReadAddress [DATA_MEM_NUM_CHANNELS]uint32
	DataMemReadReady   uint8
	DataMemReadData    [DATA_MEM_NUM_CHANNELS]uint32

	DataMemWriteValid   uint8
	DataMemWriteAddress [DATA_MEM_NUM_CHANNELS]uint32
	DataMemWriteData    [DATA_MEM_NUM_CHANNELS]uint32
	DataMemWriteReady   uint8

	lastClk uint8
	started bool
	warps   []*warp

	// Request grants as of the last settle. The posedge consumes the
	// ready/data inputs against these.
	instGrant [INSTRUCTION_MEM_NUM_CHANNELS]*warp
	dataGrant [DATA_MEM_NUM_CHANNELS]dataGrant
}

type dataGrant struct {
	warp *warp
	req  int
}

// New creates a device in reset.
func New() *Gpu {
	return &Gpu{}
}

// Eval settles the combinational outputs. A 0->1 transition of Clk
// since the previous Eval commits sequential state first.
func (g *Gpu) Eval() {
	if g.Clk == 1 && g.lastClk == 0 {
		g.posedge()
	}
	g.lastClk = g.Clk
	g.settle()
}

// launch builds the warp set from the kernel-config bus.
func (g *Gpu) launch() {
	numBlocks := g.KernelConfig[KERNEL_CONFIG_NUM_BLOCKS]
	numWarps := g.KernelConfig[KERNEL_CONFIG_NUM_WARPS]

	g.warps = nil
	for block := uint32(0); block < numBlocks; block++ {
		for index := uint32(0); index < numWarps; index++ {
			g.warps = append(g.warps, newWarp(block, index, numWarps))
		}
	}
	g.started = true

	if g.Verbose {
		log.Printf("gpu: launch %v blocks x %v warps", numBlocks, numWarps)
	}
}

// settle recomputes every output from the current state: fetch requests
// for warps waiting on an instruction, data requests for warps with
// outstanding memory accesses, and the done flag.
func (g *Gpu) settle() {
	if !g.started && g.ExecutionStart != 0 {
		g.launch()
	}

	g.InstructionMemReadValid = 0
	g.DataMemReadValid = 0
	g.DataMemWriteValid = 0
	for i := range g.instGrant {
		g.instGrant[i] = nil
	}
	for i := range g.dataGrant {
		g.dataGrant[i] = dataGrant{}
	}

	baseInstructions := g.KernelConfig[KERNEL_CONFIG_BASE_INSTRUCTIONS]
	baseData := g.KernelConfig[KERNEL_CONFIG_BASE_DATA]

	channel := 0
	done := g.started
	for n, w := range g.warps {
		switch w.state {
		case WS_FETCH:
			slot := n % INSTRUCTION_MEM_NUM_CHANNELS
			if g.instGrant[slot] == nil {
				g.instGrant[slot] = w
				g.InstructionMemReadValid |= 1 << slot
				g.InstructionMemReadAddress[slot] = baseInstructions + w.pc
			}
			done = false
		case WS_MEM:
			for r := range w.pending {
				if channel >= DATA_MEM_NUM_CHANNELS {
					break
				}
				req := &w.pending[r]
				if req.done {
					continue
				}
				g.dataGrant[channel] = dataGrant{warp: w, req: r}
				if w.load {
					g.DataMemReadValid |= 1 << channel
					g.DataMemReadAddress[channel] = baseData + req.addr
				} else {
					g.DataMemWriteValid |= 1 << channel
					g.DataMemWriteAddress[channel] = baseData + req.addr
					g.DataMemWriteData[channel] = req.value
				}
				channel++
			}
			done = false
		case WS_HALTED:
		}
	}

	g.ExecutionDone = 0
	if done {
		g.ExecutionDone = 1
	}
}

// posedge commits one clock edge: retire granted memory requests whose
// ready bit is up, then consume completed instruction fetches.
func (g *Gpu) posedge() {
	if !g.started {
		return
	}

	for channel := range g.dataGrant {
		grant := g.dataGrant[channel]
		if grant.warp == nil {
			continue
		}
		if grant.warp.load {
			if g.DataMemReadReady&(1<<channel) == 0 {
				continue
			}
			grant.warp.retireLoad(grant.req, g.DataMemReadData[channel])
		} else {
			if g.DataMemWriteReady&(1<<channel) == 0 {
				continue
			}
			grant.warp.pending[grant.req].done = true
		}
	}

	for _, w := range g.warps {
		if w.state == WS_MEM && w.pendingDone() {
			w.finishMem()
		}
	}

	for channel, w := range g.instGrant {
		if w == nil {
			continue
		}
		if g.InstructionMemReadReady&(1<<channel) == 0 {
			continue
		}
		w.execute(isa.Bits(g.InstructionMemReadData[channel]))
	}
}
