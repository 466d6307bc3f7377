package gpu

import (
	"log"

	"github.com/ezrec/usimt/isa"
)

type warpState int

const (
	WS_FETCH = warpState(iota)
	WS_MEM
	WS_HALTED
)

// memReq is one outstanding memory access. thread is -1 for an access
// through the scalar file.
type memReq struct {
	thread int
	addr   uint32
	value  uint32
	done   bool
}

// warp is one group of 32 lock-stepped threads. The scalar file is
// per-warp; the vector file holds one lane per thread. Scalar register
// 1 doubles as the execution mask.
type warp struct {
	blockID uint32
	warpID  uint32

	pc    uint32
	state warpState

	scalar [isa.NUM_REGISTERS]uint32
	vector [isa.NUM_REGISTERS][isa.WARP_SIZE]uint32

	inst    isa.Bits // in-flight memory instruction
	load    bool
	pending []memReq
}

func newWarp(blockID, warpID, warpsPerBlock uint32) (w *warp) {
	w = &warp{blockID: blockID, warpID: warpID}

	blockSize := warpsPerBlock * isa.WARP_SIZE
	for t := 0; t < isa.WARP_SIZE; t++ {
		w.vector[isa.REG_THREAD_ID][t] = warpID*isa.WARP_SIZE + uint32(t)
		w.vector[isa.REG_BLOCK_ID][t] = blockID
		w.vector[isa.REG_BLOCK_SIZE][t] = blockSize
	}
	w.scalar[isa.REG_THREAD_ID] = ^uint32(0) // all threads enabled
	w.scalar[isa.REG_BLOCK_ID] = blockID
	w.scalar[isa.REG_BLOCK_SIZE] = blockSize

	return
}

func (w *warp) mask() uint32 {
	return w.scalar[isa.REG_THREAD_ID]
}

func (w *warp) active(t int) bool {
	return (w.mask()>>t)&1 != 0
}

// writeVector ignores the read-only lanes x0..x3.
func (w *warp) writeVector(rd int32, t int, value uint32) {
	if rd <= isa.REG_BLOCK_SIZE {
		return
	}
	w.vector[rd][t] = value
}

// writeScalar ignores s0. Writing s1 replaces the execution mask.
func (w *warp) writeScalar(rd int32, value uint32) {
	if rd == isa.REG_ZERO {
		return
	}
	w.scalar[rd] = value
}

// execute consumes one fetched instruction word.
func (w *warp) execute(word isa.Bits) {
	name := word.Opcode()

	switch {
	case name == isa.MN_HALT:
		w.state = WS_HALTED
		return
	case name == isa.MN_SX_SLTI, name == isa.MN_SX_SLT:
		w.executeCross(word)
	case name.IsItypeArithmetic():
		w.executeAlu(word, uint32(word.Imm()), true)
	case name.IsRtype():
		w.executeAlu(word, 0, false)
	case name.IsLoad(), name.IsStore():
		if w.beginMem(word) {
			return
		}
	case word == 0:
		// A zero word fetched from unloaded memory is a no-op.
	default:
		log.Print(f("gpu: unknown opcode %#02x at pc %v", uint32(word)&0x3f, w.pc))
	}

	w.pc++
}

func (w *warp) executeAlu(word isa.Bits, imm uint32, immediate bool) {
	name := word.Opcode()
	rd, rs1, rs2 := word.Rd(), word.Rs1(), word.Rs2()

	if word.Scalar() {
		b := imm
		if !immediate {
			b = w.scalar[rs2]
		}
		w.writeScalar(rd, aluOp(name, w.scalar[rs1], b))
		return
	}

	for t := 0; t < isa.WARP_SIZE; t++ {
		if !w.active(t) {
			continue
		}
		b := imm
		if !immediate {
			b = w.vector[rs2][t]
		}
		w.writeVector(rd, t, aluOp(name, w.vector[rs1][t], b))
	}
}

// executeCross reduces a per-thread signed comparison into a scalar
// bitmask: bit t is set iff thread t is active and compares true.
func (w *warp) executeCross(word isa.Bits) {
	rd, rs1, rs2 := word.Rd(), word.Rs1(), word.Rs2()

	var bits uint32
	for t := 0; t < isa.WARP_SIZE; t++ {
		if !w.active(t) {
			continue
		}
		b := uint32(word.Imm())
		if word.Opcode() == isa.MN_SX_SLT {
			b = w.vector[rs2][t]
		}
		if int32(w.vector[rs1][t]) < int32(b) {
			bits |= 1 << t
		}
	}

	w.writeScalar(rd, bits)
}

func aluOp(name isa.MnemonicName, a, b uint32) uint32 {
	switch name {
	case isa.MN_ADDI, isa.MN_ADD:
		return a + b
	case isa.MN_SUB:
		return a - b
	case isa.MN_SLTI, isa.MN_SLT:
		if int32(a) < int32(b) {
			return 1
		}
		return 0
	case isa.MN_XORI, isa.MN_XOR:
		return a ^ b
	case isa.MN_ORI, isa.MN_OR:
		return a | b
	case isa.MN_ANDI, isa.MN_AND:
		return a & b
	case isa.MN_SLLI, isa.MN_SLL:
		return a << (b & 0x1f)
	case isa.MN_SRLI, isa.MN_SRL:
		return a >> (b & 0x1f)
	case isa.MN_SRAI, isa.MN_SRA:
		return uint32(int32(a) >> (b & 0x1f))
	}
	return 0
}

// beginMem queues the per-thread accesses of a load or store. Returns
// false when nothing is pending (no active threads), in which case the
// instruction retires immediately.
func (w *warp) beginMem(word isa.Bits) (busy bool) {
	w.inst = word
	w.load = word.Opcode().IsLoad()
	w.pending = w.pending[:0]

	imm := uint32(word.Imm())
	rs1, rs2 := word.Rs1(), word.Rs2()

	switch {
	case w.load && word.Scalar():
		// Scalar (mask) load: a single access through the scalar file.
		w.pending = append(w.pending, memReq{thread: -1, addr: w.scalar[rs1] + imm})
	case w.load:
		for t := 0; t < isa.WARP_SIZE; t++ {
			if !w.active(t) {
				continue
			}
			w.pending = append(w.pending, memReq{thread: t, addr: w.vector[rs1][t] + imm})
		}
	case word.Scalar():
		// Store: rs2 carries the address base, rs1 the value.
		w.pending = append(w.pending, memReq{
			thread: -1,
			addr:   w.scalar[rs2] + imm,
			value:  storeValue(word.Opcode(), w.scalar[rs1]),
		})
	default:
		for t := 0; t < isa.WARP_SIZE; t++ {
			if !w.active(t) {
				continue
			}
			w.pending = append(w.pending, memReq{
				thread: t,
				addr:   w.vector[rs2][t] + imm,
				value:  storeValue(word.Opcode(), w.vector[rs1][t]),
			})
		}
	}

	if len(w.pending) == 0 {
		return false
	}
	w.state = WS_MEM
	return true
}

// retireLoad completes one granted load access.
func (w *warp) retireLoad(req int, data uint32) {
	pending := &w.pending[req]
	if pending.done {
		return
	}
	pending.done = true

	value := loadValue(w.inst.Opcode(), data)
	if pending.thread < 0 {
		w.writeScalar(w.inst.Rd(), value)
	} else {
		w.writeVector(w.inst.Rd(), pending.thread, value)
	}
}

func (w *warp) pendingDone() bool {
	for n := range w.pending {
		if !w.pending[n].done {
			return false
		}
	}
	return true
}

func (w *warp) finishMem() {
	w.pending = w.pending[:0]
	w.state = WS_FETCH
	w.pc++
}

func loadValue(name isa.MnemonicName, data uint32) uint32 {
	switch name {
	case isa.MN_LB:
		return uint32(int32(int8(data)))
	case isa.MN_LH:
		return uint32(int32(int16(data)))
	}
	return data
}

// Memory is word-addressed; sub-word stores truncate the value rather
// than merging into the target cell.
func storeValue(name isa.MnemonicName, value uint32) uint32 {
	switch name {
	case isa.MN_SB:
		return value & 0xff
	case isa.MN_SH:
		return value & 0xffff
	}
	return value
}
