// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package disasm implements a 6502 instruction set disassembler and an
// execution trace formatter.
package disasm

import (
	"fmt"

	"github.com/famicore/gones/cpu"
)

// Disassembler formatting for addressing modes
var modeFormat = []string{
	"#$%s",    // IMM
	"%s",      // IMP
	"$%s",     // REL
	"$%s",     // ZPG
	"$%s,X",   // ZPX
	"$%s,Y",   // ZPY
	"$%s",     // ABS
	"$%s,X",   // ABX
	"$%s,Y",   // ABY
	"($%s)",   // IND
	"($%s,X)", // IDX
	"($%s),Y", // IDY
	"%s",      // ACC
}

var hex = "0123456789ABCDEF"

// Return a hexadecimal string representation of the byte slice,
// least significant byte first.
func hexString(b []byte) string {
	hexlen := len(b) * 2
	hexbuf := make([]byte, hexlen)
	j := hexlen - 1
	for _, n := range b {
		hexbuf[j] = hex[n&0xf]
		hexbuf[j-1] = hex[n>>4]
		j -= 2
	}
	return string(hexbuf)
}

// Disassemble the machine code in memory 'm' at address 'addr'. Return a
// 'line' string representing the disassembled instruction and a 'next'
// address that starts the following line of machine code. Undocumented
// instructions are marked with a leading '*'.
func Disassemble(m cpu.Memory, addr uint16) (line string, next uint16) {
	opcode := m.LoadByte(addr)
	set := cpu.GetInstructionSet()
	inst := set.Lookup(opcode)

	operand := make([]byte, inst.Length-1)
	m.LoadBytes(addr+1, operand)

	if inst.Mode == cpu.REL {
		// Convert relative offset to absolute address.
		braddr := int(addr) + int(inst.Length) + int(operand[0])
		if operand[0] > 0x7f {
			braddr -= 256
		}
		operand = []byte{byte(braddr & 0xff), byte(braddr >> 8)}
	}

	prefix := " "
	if inst.Unofficial {
		prefix = "*"
	}
	format := "%s%s " + modeFormat[inst.Mode]
	line = fmt.Sprintf(format, prefix, inst.Name, hexString(operand))
	next = addr + uint16(inst.Length)
	return line, next
}

// CodeBytes returns the hexadecimal representation of the machine code
// bytes making up the instruction at 'addr', separated by spaces.
func CodeBytes(m cpu.Memory, addr uint16) string {
	opcode := m.LoadByte(addr)
	inst := cpu.GetInstructionSet().Lookup(opcode)

	buf := make([]byte, inst.Length)
	m.LoadBytes(addr, buf)

	s := ""
	for i, n := range buf {
		if i > 0 {
			s += " "
		}
		s += string(hex[n>>4]) + string(hex[n&0xf])
	}
	return s
}

// Registers formats the register file the way an execution trace log
// displays it.
func Registers(r cpu.Registers) string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X",
		r.A, r.X, r.Y, r.SavePS(false), r.SP)
}

// Trace formats one execution trace line for the instruction the CPU is
// about to run:
//
//	C000  4C F5 C5  JMP $C5F5                        A:00 X:00 Y:00 P:24 SP:FD
func Trace(c *cpu.CPU) string {
	pc := c.Reg.PC
	line, _ := Disassemble(c.Mem, pc)
	return fmt.Sprintf("%04X  %-8s %-32s %s",
		pc, CodeBytes(c.Mem, pc), line, Registers(c.Reg))
}
