// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Undocumented NMOS 6502 instructions. Most combine two documented
// operations on the same memory cell; the rest are accidents of the
// instruction decoder that nonetheless behave deterministically enough
// for games to depend on them.

// Magic constant observed on the data bus during the unstable LXA and
// XAA operations. Varies by chip and temperature on real hardware.
const busNoise = 0xee

// Decrement memory, then compare the result with the accumulator.
func (cpu *CPU) dcp(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) - 1
	cpu.store(inst.Mode, operand, v)
	cpu.compare(cpu.Reg.A, v)
}

// Increment memory, then subtract it from the accumulator with borrow.
func (cpu *CPU) isb(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) + 1
	cpu.store(inst.Mode, operand, v)
	cpu.addWithCarry(^v)
}

// Shift memory left, then OR it into the accumulator.
func (cpu *CPU) slo(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 0x80) != 0)
	v <<= 1
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.A |= v
	cpu.updateNZ(cpu.Reg.A)
}

// Rotate memory left, then AND it into the accumulator.
func (cpu *CPU) rla(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp << 1) | boolToByte(cpu.Reg.Carry)
	cpu.Reg.Carry = ((tmp & 0x80) != 0)
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.A &= v
	cpu.updateNZ(cpu.Reg.A)
}

// Shift memory right, then XOR it into the accumulator.
func (cpu *CPU) sre(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.Carry = ((v & 1) != 0)
	v >>= 1
	cpu.store(inst.Mode, operand, v)
	cpu.Reg.A ^= v
	cpu.updateNZ(cpu.Reg.A)
}

// Rotate memory right, then add it to the accumulator with carry.
func (cpu *CPU) rra(inst *Instruction, operand []byte) {
	tmp := cpu.load(inst.Mode, operand)
	v := (tmp >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.Carry = ((tmp & 1) != 0)
	cpu.store(inst.Mode, operand, v)
	cpu.addWithCarry(v)
}

// Load both the accumulator and X from memory.
func (cpu *CPU) lax(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand)
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.updateNZ(v)
}

// Store the AND of the accumulator and X. Affects no flags.
func (cpu *CPU) sax(inst *Instruction, operand []byte) {
	cpu.store(inst.Mode, operand, cpu.Reg.A&cpu.Reg.X)
}

// AND the operand into A, copying the sign bit into carry.
func (cpu *CPU) anc(inst *Instruction, operand []byte) {
	cpu.Reg.A &= operand[0]
	cpu.updateNZ(cpu.Reg.A)
	cpu.Reg.Carry = cpu.Reg.Sign
}

// AND the operand into A, then shift A right.
func (cpu *CPU) alr(inst *Instruction, operand []byte) {
	v := cpu.Reg.A & operand[0]
	cpu.Reg.Carry = ((v & 1) != 0)
	cpu.Reg.A = v >> 1
	cpu.updateNZ(cpu.Reg.A)
}

// AND the operand into A, then rotate A right. Carry comes from bit 6
// of the result and overflow from bits 6 and 5, an artifact of the
// adder being wired into the rotate.
func (cpu *CPU) arr(inst *Instruction, operand []byte) {
	v := cpu.Reg.A & operand[0]
	v = (v >> 1) | (boolToByte(cpu.Reg.Carry) << 7)
	cpu.Reg.A = v
	cpu.updateNZ(v)
	cpu.Reg.Carry = ((v & 0x40) != 0)
	cpu.Reg.Overflow = (((v >> 6) ^ (v >> 5)) & 1) != 0
}

// Set X to (A AND X) minus the operand, without borrow.
func (cpu *CPU) axs(inst *Instruction, operand []byte) {
	ax := cpu.Reg.A & cpu.Reg.X
	cpu.Reg.Carry = (ax >= operand[0])
	cpu.Reg.X = ax - operand[0]
	cpu.updateNZ(cpu.Reg.X)
}

// Load A and X with the operand ANDed with bus noise. Unstable on real
// hardware.
func (cpu *CPU) lxa(inst *Instruction, operand []byte) {
	v := (cpu.Reg.A | busNoise) & operand[0]
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.updateNZ(v)
}

// Set A to X AND the operand, mixed with bus noise. Unstable on real
// hardware.
func (cpu *CPU) xaa(inst *Instruction, operand []byte) {
	cpu.Reg.A = (cpu.Reg.A | busNoise) & cpu.Reg.X & operand[0]
	cpu.updateNZ(cpu.Reg.A)
}

// AND memory with the stack pointer, storing the result in A, X and SP.
func (cpu *CPU) las(inst *Instruction, operand []byte) {
	v := cpu.load(inst.Mode, operand) & cpu.Reg.SP
	cpu.Reg.A = v
	cpu.Reg.X = v
	cpu.Reg.SP = v
	cpu.updateNZ(v)
}

// Set SP to A AND X, then store SP AND (high byte of target + 1).
func (cpu *CPU) tas(inst *Instruction, operand []byte) {
	base := operandToAddress(operand)
	addr, _ := offsetAddress(base, cpu.Reg.Y)
	cpu.Reg.SP = cpu.Reg.A & cpu.Reg.X
	cpu.storeByte(cpu, addr, cpu.Reg.SP&(byte(base>>8)+1))
}

// Store A AND X AND (high byte of target + 1).
func (cpu *CPU) ahx(inst *Instruction, operand []byte) {
	var base uint16
	switch inst.Mode {
	case ABY:
		base = operandToAddress(operand)
	case IDY:
		base = cpu.Mem.LoadAddress(operandToAddress(operand))
	default:
		panic("Invalid addressing mode")
	}
	addr, _ := offsetAddress(base, cpu.Reg.Y)
	cpu.storeByte(cpu, addr, cpu.Reg.A&cpu.Reg.X&(byte(base>>8)+1))
}

// Store X AND (high byte of target + 1).
func (cpu *CPU) shx(inst *Instruction, operand []byte) {
	base := operandToAddress(operand)
	addr, _ := offsetAddress(base, cpu.Reg.Y)
	cpu.storeByte(cpu, addr, cpu.Reg.X&(byte(base>>8)+1))
}

// Store Y AND (high byte of target + 1).
func (cpu *CPU) shy(inst *Instruction, operand []byte) {
	base := operandToAddress(operand)
	addr, _ := offsetAddress(base, cpu.Reg.X)
	cpu.storeByte(cpu, addr, cpu.Reg.Y&(byte(base>>8)+1))
}
