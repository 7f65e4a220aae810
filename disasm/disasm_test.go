package disasm_test

import (
	"strings"
	"testing"

	"github.com/famicore/gones/cpu"
	"github.com/famicore/gones/disasm"
)

func loadMem(origin uint16, code []byte) *cpu.FlatMemory {
	m := cpu.NewFlatMemory()
	m.StoreBytes(origin, code)
	return m
}

func TestDisassemble(t *testing.T) {
	cases := []struct {
		code []byte
		want string
		next uint16
	}{
		{[]byte{0x4c, 0xf5, 0xc5}, " JMP $C5F5", 0xc003},
		{[]byte{0xa9, 0x10}, " LDA #$10", 0xc002},
		{[]byte{0xb5, 0x40}, " LDA $40,X", 0xc002},
		{[]byte{0xbd, 0x00, 0x20}, " LDA $2000,X", 0xc003},
		{[]byte{0xb1, 0x40}, " LDA ($40),Y", 0xc002},
		{[]byte{0xa1, 0x40}, " LDA ($40,X)", 0xc002},
		{[]byte{0x6c, 0xff, 0x10}, " JMP ($10FF)", 0xc003},
		{[]byte{0xea}, " NOP ", 0xc001},
		{[]byte{0x0a}, " ASL ", 0xc001},
		{[]byte{0xa7, 0x40}, "*LAX $40", 0xc002},
		{[]byte{0x04, 0x40}, "*NOP $40", 0xc002},
	}

	for _, c := range cases {
		m := loadMem(0xc000, c.code)
		line, next := disasm.Disassemble(m, 0xc000)
		if line != c.want {
			t.Errorf("Disassemble(% X) = %q, want %q", c.code, line, c.want)
		}
		if next != c.next {
			t.Errorf("Disassemble(% X) next = %04X, want %04X", c.code, next, c.next)
		}
	}
}

func TestDisassembleBranchTarget(t *testing.T) {
	// Branches display the resolved target, not the relative offset.
	m := loadMem(0xc000, []byte{0xd0, 0xfe}) // BNE -2
	line, _ := disasm.Disassemble(m, 0xc000)
	if line != " BNE $C000" {
		t.Errorf("backward branch = %q", line)
	}

	m = loadMem(0xc000, []byte{0xd0, 0x05}) // BNE +5
	line, _ = disasm.Disassemble(m, 0xc000)
	if line != " BNE $C007" {
		t.Errorf("forward branch = %q", line)
	}
}

func TestTrace(t *testing.T) {
	m := loadMem(0xc000, []byte{0x4c, 0xf5, 0xc5})
	m.StoreAddress(0xfffc, 0xc000)

	c := cpu.NewCPU(m)
	c.Reset()

	line := disasm.Trace(c)
	if !strings.HasPrefix(line, "C000  4C F5 C5") {
		t.Errorf("trace prefix incorrect: %q", line)
	}
	if !strings.Contains(line, "JMP $C5F5") {
		t.Errorf("trace missing disassembly: %q", line)
	}
	if !strings.HasSuffix(line, "A:00 X:00 Y:00 P:24 SP:FD") {
		t.Errorf("trace registers incorrect: %q", line)
	}
}
