package cpu_test

import (
	"testing"

	"github.com/famicore/gones/cpu"
)

const origin = 0x8000

// Load a machine-code program into flat memory and reset the CPU so the
// program counter points at it.
func loadCPU(program []byte) *cpu.CPU {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(mem)
	c.Load(program, origin)
	c.Reset()
	return c
}

func stepCPU(c *cpu.CPU, steps int) {
	for i := 0; i < steps; i++ {
		c.Step()
	}
}

func runCPU(program []byte) *cpu.CPU {
	c := loadCPU(program)
	c.Run()
	return c
}

func expectPC(t *testing.T, c *cpu.CPU, pc uint16) {
	t.Helper()
	if c.Reg.PC != pc {
		t.Errorf("PC incorrect. exp: $%04X, got: $%04X", pc, c.Reg.PC)
	}
}

func expectCycles(t *testing.T, c *cpu.CPU, cycles uint64) {
	t.Helper()
	if c.Cycles != cycles {
		t.Errorf("Cycles incorrect. exp: %d, got: %d", cycles, c.Cycles)
	}
}

func expectACC(t *testing.T, c *cpu.CPU, acc byte) {
	t.Helper()
	if c.Reg.A != acc {
		t.Errorf("Accumulator incorrect. exp: $%02X, got: $%02X", acc, c.Reg.A)
	}
}

func expectX(t *testing.T, c *cpu.CPU, x byte) {
	t.Helper()
	if c.Reg.X != x {
		t.Errorf("X incorrect. exp: $%02X, got: $%02X", x, c.Reg.X)
	}
}

func expectSP(t *testing.T, c *cpu.CPU, sp byte) {
	t.Helper()
	if c.Reg.SP != sp {
		t.Errorf("Stack pointer incorrect. exp: $%02X, got: $%02X", sp, c.Reg.SP)
	}
}

func expectMem(t *testing.T, c *cpu.CPU, addr uint16, v byte) {
	t.Helper()
	got := c.Mem.LoadByte(addr)
	if got != v {
		t.Errorf("Memory at $%04X incorrect. exp: $%02X, got: $%02X", addr, v, got)
	}
}

func expectFlag(t *testing.T, name string, got, exp bool) {
	t.Helper()
	if got != exp {
		t.Errorf("%s flag incorrect. exp: %v, got: %v", name, exp, got)
	}
}

func TestPowerOnState(t *testing.T) {
	c := loadCPU([]byte{0x00})

	expectPC(t, c, origin)
	expectSP(t, c, 0xfd)
	expectACC(t, c, 0)
	expectFlag(t, "InterruptDisable", c.Reg.InterruptDisable, true)
	expectFlag(t, "Carry", c.Reg.Carry, false)
	expectFlag(t, "Decimal", c.Reg.Decimal, false)
}

func TestLoadTransferIncrement(t *testing.T) {
	// LDA #$C0; TAX; INX; BRK
	c := runCPU([]byte{0xa9, 0xc0, 0xaa, 0xe8, 0x00})

	expectACC(t, c, 0xc0)
	expectX(t, c, 0xc1)
	if !c.Halted() {
		t.Error("CPU not halted after BRK")
	}
}

func TestIncrementWrap(t *testing.T) {
	// LDX #$FF; INX; INX; BRK
	c := runCPU([]byte{0xa2, 0xff, 0xe8, 0xe8, 0x00})

	expectX(t, c, 1)
	expectFlag(t, "Zero", c.Reg.Zero, false)
}

func TestZeroFlag(t *testing.T) {
	c := runCPU([]byte{0xa9, 0x00, 0x00}) // LDA #$00; BRK
	expectFlag(t, "Zero", c.Reg.Zero, true)
	expectFlag(t, "Sign", c.Reg.Sign, false)

	c = runCPU([]byte{0xa9, 0x80, 0x00}) // LDA #$80; BRK
	expectFlag(t, "Zero", c.Reg.Zero, false)
	expectFlag(t, "Sign", c.Reg.Sign, true)
}

func TestZeroPageLoad(t *testing.T) {
	c := loadCPU([]byte{0xa5, 0x10, 0x00}) // LDA $10; BRK
	c.Mem.StoreByte(0x10, 0x55)
	c.Run()

	expectACC(t, c, 0x55)
}

func TestStoreAndAccumulator(t *testing.T) {
	// LDA #$5E; STA $15; STA $1500; BRK
	c := loadCPU([]byte{0xa9, 0x5e, 0x85, 0x15, 0x8d, 0x00, 0x15, 0x00})
	stepCPU(c, 3)

	expectPC(t, c, origin+7)
	expectCycles(t, c, 9)
	expectACC(t, c, 0x5e)
	expectMem(t, c, 0x15, 0x5e)
	expectMem(t, c, 0x1500, 0x5e)
}

func TestZeroPageIndexWrap(t *testing.T) {
	// LDX #$FF; LDA $80,X -> wraps to $7F
	c := loadCPU([]byte{0xa2, 0xff, 0xb5, 0x80, 0x00})
	c.Mem.StoreByte(0x7f, 0x42)
	c.Run()

	expectACC(t, c, 0x42)
}

func TestIndirectIndexed(t *testing.T) {
	// LDA #$11; STA $06; LDA #$05; STA $07; LDX #$01; LDY #$01;
	// LDA #$BB; STA ($05,X); STA ($06),Y; BRK
	c := runCPU([]byte{
		0xa9, 0x11, 0x85, 0x06,
		0xa9, 0x05, 0x85, 0x07,
		0xa2, 0x01, 0xa0, 0x01,
		0xa9, 0xbb, 0x81, 0x05, 0x91, 0x06,
		0x00,
	})

	expectMem(t, c, 0x0511, 0xbb)
	expectMem(t, c, 0x0512, 0xbb)
}

func TestIndirectZeroPagePointerWrap(t *testing.T) {
	// Pointer at $FF spans the zero-page boundary: low byte from $FF,
	// high byte from $00.
	c := loadCPU([]byte{0xa0, 0x00, 0xb1, 0xff, 0x00}) // LDY #0; LDA ($FF),Y; BRK
	c.Mem.StoreByte(0xff, 0x34)
	c.Mem.StoreByte(0x00, 0x12)
	c.Mem.StoreByte(0x1234, 0x99)
	c.Run()

	expectACC(t, c, 0x99)
}

func TestPageCrossCycles(t *testing.T) {
	// LDA #$55 (2); STA $1101 (4); LDA #$00 (2); LDX #$FF (2);
	// LDA $1002,X (4+1)
	c := loadCPU([]byte{
		0xa9, 0x55, 0x8d, 0x01, 0x11,
		0xa9, 0x00, 0xa2, 0xff,
		0xbd, 0x02, 0x10,
	})
	stepCPU(c, 5)

	expectCycles(t, c, 15)
	expectACC(t, c, 0x55)
}

func TestBranchCycles(t *testing.T) {
	// LDA #$01 (2 cycles); BNE +0 (2+1 taken, same page)
	c := loadCPU([]byte{0xa9, 0x01, 0xd0, 0x00, 0x00})
	stepCPU(c, 2)
	expectCycles(t, c, 5)

	// LDA #$00 (2); BNE not taken (2)
	c = loadCPU([]byte{0xa9, 0x00, 0xd0, 0x10, 0x00})
	stepCPU(c, 2)
	expectCycles(t, c, 4)
}

func TestAddWithCarry(t *testing.T) {
	// CLC; LDA #$50; ADC #$50 -> $A0, overflow set, carry clear
	c := runCPU([]byte{0x18, 0xa9, 0x50, 0x69, 0x50, 0x00})
	expectACC(t, c, 0xa0)
	expectFlag(t, "Overflow", c.Reg.Overflow, true)
	expectFlag(t, "Carry", c.Reg.Carry, false)
	expectFlag(t, "Sign", c.Reg.Sign, true)

	// CLC; LDA #$FF; ADC #$01 -> $00, carry set, zero set, no overflow
	c = runCPU([]byte{0x18, 0xa9, 0xff, 0x69, 0x01, 0x00})
	expectACC(t, c, 0x00)
	expectFlag(t, "Carry", c.Reg.Carry, true)
	expectFlag(t, "Zero", c.Reg.Zero, true)
	expectFlag(t, "Overflow", c.Reg.Overflow, false)
}

func TestAddIgnoresDecimalFlag(t *testing.T) {
	// SED; SEC; LDA #$09; ADC #$01 -> binary $0B, not BCD $10
	c := runCPU([]byte{0xf8, 0x38, 0xa9, 0x09, 0x69, 0x01, 0x00})
	expectACC(t, c, 0x0b)
	expectFlag(t, "Decimal", c.Reg.Decimal, true)
}

func TestSubtractWithCarry(t *testing.T) {
	// SEC; LDA #$50; SBC #$F0 -> $60, overflow set, carry clear
	c := runCPU([]byte{0x38, 0xa9, 0x50, 0xe9, 0xf0, 0x00})
	expectACC(t, c, 0x60)
	expectFlag(t, "Overflow", c.Reg.Overflow, true)
	expectFlag(t, "Carry", c.Reg.Carry, false)

	// SEC; LDA #$50; SBC #$10 -> $40, carry set
	c = runCPU([]byte{0x38, 0xa9, 0x50, 0xe9, 0x10, 0x00})
	expectACC(t, c, 0x40)
	expectFlag(t, "Carry", c.Reg.Carry, true)
	expectFlag(t, "Overflow", c.Reg.Overflow, false)
}

func TestCompare(t *testing.T) {
	// LDA #$40; CMP #$30
	c := runCPU([]byte{0xa9, 0x40, 0xc9, 0x30, 0x00})
	expectFlag(t, "Carry", c.Reg.Carry, true)
	expectFlag(t, "Zero", c.Reg.Zero, false)

	// LDX #$30; CPX #$40 -> borrow, sign from $F0
	c = runCPU([]byte{0xa2, 0x30, 0xe0, 0x40, 0x00})
	expectFlag(t, "Carry", c.Reg.Carry, false)
	expectFlag(t, "Sign", c.Reg.Sign, true)
}

func TestStack(t *testing.T) {
	// LDA #$11; PHA; LDA #$12; PHA; LDA #$13; PHA; PLA; PLA; PLA
	c := loadCPU([]byte{
		0xa9, 0x11, 0x48,
		0xa9, 0x12, 0x48,
		0xa9, 0x13, 0x48,
		0x68, 0x68, 0x68,
		0x00,
	})
	stepCPU(c, 6)

	expectSP(t, c, 0xfa)
	expectMem(t, c, 0x1fd, 0x11)
	expectMem(t, c, 0x1fc, 0x12)
	expectMem(t, c, 0x1fb, 0x13)

	stepCPU(c, 3)
	expectACC(t, c, 0x11)
	expectSP(t, c, 0xfd)
}

func TestStackPointerWrap(t *testing.T) {
	// TXS with X=0; PHA wraps the pointer to $FF and stores at $0100.
	c := loadCPU([]byte{0xa2, 0x00, 0x9a, 0xa9, 0x77, 0x48, 0x00})
	c.Run()

	expectSP(t, c, 0xff)
	expectMem(t, c, 0x0100, 0x77)
}

func TestStatusPushArtifacts(t *testing.T) {
	// SEC; PHP -> pushed byte has break and reserved bits set.
	c := loadCPU([]byte{0x38, 0x08, 0x00})
	stepCPU(c, 2)

	ps := c.Mem.LoadByte(0x01fd)
	if ps&cpu.BreakBit == 0 {
		t.Error("PHP did not set break bit in pushed status")
	}
	if ps&cpu.ReservedBit == 0 {
		t.Error("PHP did not set reserved bit in pushed status")
	}
	if ps&cpu.CarryBit == 0 {
		t.Error("PHP lost carry bit")
	}

	// Pushing $FF and pulling it back must not leak the break bit into
	// a subsequent PHP of otherwise clear flags.
	c = loadCPU([]byte{0xa9, 0xff, 0x48, 0x28, 0x18, 0xd8, 0xb8, 0x08, 0x00})
	// LDA #$FF; PHA; PLP; CLC; CLD; CLV; PHP; BRK
	c.Run()
	ps = c.Mem.LoadByte(0x01fd)
	if ps&cpu.BreakBit == 0 || ps&cpu.ReservedBit == 0 {
		t.Errorf("PHP artifact bits missing: got $%02X", ps)
	}
}

func TestSubroutine(t *testing.T) {
	// JSR $8005; BRK; NOP; LDA #$42; RTS
	c := loadCPU([]byte{
		0x20, 0x05, 0x80, // 8000: JSR $8005
		0x00,       // 8003: BRK
		0xea,       // 8004: NOP
		0xa9, 0x42, // 8005: LDA #$42
		0x60, // 8007: RTS
	})
	c.Run()

	expectACC(t, c, 0x42)
	expectPC(t, c, origin+4) // BRK consumed
	expectSP(t, c, 0xfd)
}

func TestJumpIndirectPageBug(t *testing.T) {
	// JMP ($10FF): low byte from $10FF, high byte from $1000.
	c := loadCPU([]byte{0x6c, 0xff, 0x10})
	c.Mem.StoreByte(0x10ff, 0x00)
	c.Mem.StoreByte(0x1000, 0x90)
	c.Mem.StoreByte(0x1100, 0x80) // would give $8000 without the bug
	c.Mem.StoreByte(0x9000, 0x00) // BRK at the buggy target
	c.Run()

	expectPC(t, c, 0x9001)
}

func TestRunWithCallback(t *testing.T) {
	// The callback runs before each fetch and can rewrite memory the
	// program is about to read.
	c := loadCPU([]byte{0xa5, 0xfe, 0x00}) // LDA $FE; BRK
	c.RunWithCallback(func(c *cpu.CPU) {
		c.Mem.StoreByte(0xfe, 0x07)
	})

	expectACC(t, c, 0x07)
}

func TestCallbackHalt(t *testing.T) {
	steps := 0
	c := loadCPU([]byte{0xea, 0xea, 0xea, 0x00})
	c.RunWithCallback(func(c *cpu.CPU) {
		steps++
		if steps == 2 {
			c.Halt()
		}
	})

	if !c.Halted() {
		t.Error("CPU not halted by callback")
	}
	expectPC(t, c, origin+1) // only one NOP executed
}

func TestStepAfterHaltIsNoop(t *testing.T) {
	c := runCPU([]byte{0x00})
	pc := c.Reg.PC
	cycles := c.Cycles
	c.Step()

	expectPC(t, c, pc)
	expectCycles(t, c, cycles)
}

func TestResetRestarts(t *testing.T) {
	c := runCPU([]byte{0xa9, 0x10, 0x00})
	expectACC(t, c, 0x10)

	c.Reset()
	if c.Halted() {
		t.Error("CPU still halted after reset")
	}
	expectPC(t, c, origin)
	expectACC(t, c, 0)
	expectSP(t, c, 0xfd)
}

func TestUnofficialLAXAndSAX(t *testing.T) {
	// *LAX $10; *SAX $20; BRK
	c := loadCPU([]byte{0xa7, 0x10, 0x87, 0x20, 0x00})
	c.Mem.StoreByte(0x10, 0xf3)
	c.Run()

	expectACC(t, c, 0xf3)
	expectX(t, c, 0xf3)
	expectMem(t, c, 0x20, 0xf3)
	expectFlag(t, "Sign", c.Reg.Sign, true)
}

func TestUnofficialDCP(t *testing.T) {
	// LDA #$10; *DCP $40 (mem $11 -> $10, then compare)
	c := loadCPU([]byte{0xa9, 0x10, 0xc7, 0x40, 0x00})
	c.Mem.StoreByte(0x40, 0x11)
	c.Run()

	expectMem(t, c, 0x40, 0x10)
	expectFlag(t, "Zero", c.Reg.Zero, true)
	expectFlag(t, "Carry", c.Reg.Carry, true)
}

func TestUnofficialISB(t *testing.T) {
	// SEC; LDA #$20; *ISB $40 (mem $0F -> $10, A = $20 - $10)
	c := loadCPU([]byte{0x38, 0xa9, 0x20, 0xe7, 0x40, 0x00})
	c.Mem.StoreByte(0x40, 0x0f)
	c.Run()

	expectMem(t, c, 0x40, 0x10)
	expectACC(t, c, 0x10)
	expectFlag(t, "Carry", c.Reg.Carry, true)
}

func TestUnofficialSLO(t *testing.T) {
	// LDA #$01; *SLO $40 (mem $80 -> $00, carry set, A |= 0)
	c := loadCPU([]byte{0xa9, 0x01, 0x07, 0x40, 0x00})
	c.Mem.StoreByte(0x40, 0x80)
	c.Run()

	expectMem(t, c, 0x40, 0x00)
	expectACC(t, c, 0x01)
	expectFlag(t, "Carry", c.Reg.Carry, true)
}

func TestUnofficialRLA(t *testing.T) {
	// SEC; LDA #$FF; *RLA $40 (mem $40 -> $81, A &= $81)
	c := loadCPU([]byte{0x38, 0xa9, 0xff, 0x27, 0x40, 0x00})
	c.Mem.StoreByte(0x40, 0x40)
	c.Run()

	expectMem(t, c, 0x40, 0x81)
	expectACC(t, c, 0x81)
	expectFlag(t, "Carry", c.Reg.Carry, false)
}

func TestUnofficialSREAndRRA(t *testing.T) {
	// LDA #$03; *SRE $40 (mem $03 -> $01, carry set, A ^= $01)
	c := loadCPU([]byte{0xa9, 0x03, 0x47, 0x40, 0x00})
	c.Mem.StoreByte(0x40, 0x03)
	c.Run()
	expectMem(t, c, 0x40, 0x01)
	expectACC(t, c, 0x02)
	expectFlag(t, "Carry", c.Reg.Carry, true)

	// CLC; LDA #$10; *RRA $40 (mem $02 -> $01, A = $10 + $01)
	c = loadCPU([]byte{0x18, 0xa9, 0x10, 0x67, 0x40, 0x00})
	c.Mem.StoreByte(0x40, 0x02)
	c.Run()
	expectMem(t, c, 0x40, 0x01)
	expectACC(t, c, 0x11)
}

func TestUnofficialImmediates(t *testing.T) {
	// LDA #$C0; *ANC #$80 -> A=$80, carry mirrors sign
	c := runCPU([]byte{0xa9, 0xc0, 0x0b, 0x80, 0x00})
	expectACC(t, c, 0x80)
	expectFlag(t, "Carry", c.Reg.Carry, true)

	// LDA #$03; *ALR #$03 -> A=$01, carry from shifted-out bit
	c = runCPU([]byte{0xa9, 0x03, 0x4b, 0x03, 0x00})
	expectACC(t, c, 0x01)
	expectFlag(t, "Carry", c.Reg.Carry, true)

	// LDA #$F0; LDX #$FF; *AXS #$10 -> X = $F0 - $10
	c = runCPU([]byte{0xa9, 0xf0, 0xa2, 0xff, 0xcb, 0x10, 0x00})
	expectX(t, c, 0xe0)
	expectFlag(t, "Carry", c.Reg.Carry, true)

	// SEC; LDA #$C0; *ARR #$FF -> A = ($C0>>1)|$80 = $E0,
	// carry from bit 6, overflow from bits 6^5
	c = runCPU([]byte{0x38, 0xa9, 0xc0, 0x6b, 0xff, 0x00})
	expectACC(t, c, 0xe0)
	expectFlag(t, "Carry", c.Reg.Carry, true)
	expectFlag(t, "Overflow", c.Reg.Overflow, false)
}

func TestUnofficialNOPs(t *testing.T) {
	// *NOP zpg, *NOP abs, *NOP imm, *NOP implied leave state alone.
	c := loadCPU([]byte{
		0x04, 0x10, // *NOP $10
		0x0c, 0x00, 0x20, // *NOP $2000
		0x80, 0x55, // *NOP #$55
		0x1a, // *NOP
		0x00,
	})
	c.Run()

	expectACC(t, c, 0)
	expectX(t, c, 0)
	expectPC(t, c, origin+9)
}

func TestUnofficialSBC(t *testing.T) {
	// SEC; LDA #$40; *SBC #$20 behaves exactly like the official SBC.
	c := runCPU([]byte{0x38, 0xa9, 0x40, 0xeb, 0x20, 0x00})
	expectACC(t, c, 0x20)
	expectFlag(t, "Carry", c.Reg.Carry, true)
}

func TestEveryOpcodeDefined(t *testing.T) {
	set := cpu.GetInstructionSet()
	for i := 0; i < 256; i++ {
		inst := set.Lookup(byte(i))
		if inst == nil || inst.Name == "" {
			t.Errorf("opcode $%02X has no instruction", i)
		}
		if inst.Length < 1 || inst.Length > 3 {
			t.Errorf("opcode $%02X has invalid length %d", i, inst.Length)
		}
	}
}

func TestDebuggerBreakpoints(t *testing.T) {
	var hits []uint16
	handler := &bpHandler{onBP: func(c *cpu.CPU, b *cpu.Breakpoint) {
		hits = append(hits, b.Address)
	}}

	c := loadCPU([]byte{0xea, 0xea, 0xea, 0x00})
	d := cpu.NewDebugger(handler)
	d.AddBreakpoint(origin + 2)
	c.AttachDebugger(d)
	c.Run()

	if len(hits) != 1 || hits[0] != origin+2 {
		t.Errorf("breakpoint hits incorrect: %v", hits)
	}
}

func TestDebuggerDataBreakpoints(t *testing.T) {
	var hits int
	handler := &bpHandler{onDBP: func(c *cpu.CPU, b *cpu.DataBreakpoint) {
		hits++
	}}

	// LDA #$07; STA $30; STA $31; BRK
	c := loadCPU([]byte{0xa9, 0x07, 0x85, 0x30, 0x85, 0x31, 0x00})
	d := cpu.NewDebugger(handler)
	d.AddDataBreakpoint(0x31)
	d.AddConditionalDataBreakpoint(0x30, 0x99) // value never stored
	c.AttachDebugger(d)
	c.Run()

	if hits != 1 {
		t.Errorf("data breakpoint hits incorrect: %d", hits)
	}
}

type bpHandler struct {
	onBP  func(*cpu.CPU, *cpu.Breakpoint)
	onDBP func(*cpu.CPU, *cpu.DataBreakpoint)
}

func (h *bpHandler) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if h.onBP != nil {
		h.onBP(c, b)
	}
}

func (h *bpHandler) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	if h.onDBP != nil {
		h.onDBP(c, b)
	}
}
