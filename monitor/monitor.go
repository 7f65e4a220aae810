// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package monitor implements an interactive machine-language monitor
// for the emulated console. Within the monitor it is possible to load
// ROM images and raw binaries, run and single-step the CPU, set address
// and data breakpoints, dump and modify memory, disassemble code,
// manipulate CPU registers, and attach Lua automation scripts.
package monitor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/beevik/cmd"

	"github.com/famicore/gones/bus"
	"github.com/famicore/gones/cartridge"
	"github.com/famicore/gones/cpu"
	"github.com/famicore/gones/disasm"
	"github.com/famicore/gones/script"
)

type displayFlags uint8

const (
	displayRegisters displayFlags = 1 << iota
	displayCycles

	displayAll = displayRegisters | displayCycles
)

type state byte

const (
	stateProcessingCommands state = iota
	stateRunning
	stateBreakpoint
	stateStepOverBreakpoint
)

// A Monitor drives an emulated console from a command stream. It starts
// with a flat 64K memory so raw binaries can run without a cartridge;
// loading a ROM replaces the memory with a full console bus.
type Monitor struct {
	input       *bufio.Scanner
	output      *bufio.Writer
	interactive bool
	mem         cpu.Memory
	cpu         *cpu.CPU
	debugger    *cpu.Debugger
	hook        *script.Hook
	lastCmd     *cmd.Selection
	state       state
	settings    *settings
}

// New creates a new console monitor.
func New() *Monitor {
	m := &Monitor{
		state:    stateProcessingCommands,
		settings: newSettings(),
	}

	// Create the emulated CPU and memory.
	m.mem = cpu.NewFlatMemory()
	m.cpu = cpu.NewCPU(m.mem)

	// Create a CPU debugger and attach it to the CPU.
	m.debugger = cpu.NewDebugger(newDebugHandler(m))
	m.cpu.AttachDebugger(m.debugger)

	return m
}

// RunCommands accepts monitor commands from a reader and outputs the
// results to a writer. If the commands are interactive, a prompt is
// displayed while the monitor waits for the next command to be entered.
func (m *Monitor) RunCommands(r io.Reader, w io.Writer, interactive bool) {
	m.input = bufio.NewScanner(r)
	m.output = bufio.NewWriter(w)
	m.interactive = interactive

	if interactive {
		m.println()
		m.displayPC()
	}

	for {
		m.prompt()

		line, err := m.getLine()
		if err != nil {
			break
		}

		var c cmd.Selection
		if line != "" {
			c, err = cmds.Lookup(line)
			switch {
			case errors.Is(err, cmd.ErrNotFound):
				m.println("Command not found.")
				continue
			case errors.Is(err, cmd.ErrAmbiguous):
				m.println("Command is ambiguous.")
				continue
			case err != nil:
				m.printf("ERROR: %v.\n", err)
				continue
			}
		} else if m.lastCmd != nil {
			c = *m.lastCmd
		}

		if c.Command == nil {
			continue
		}
		m.lastCmd = &c

		handler := c.Command.Data.(func(*Monitor, cmd.Selection) error)
		err = handler(m, c)
		if err != nil {
			break
		}
	}
}

// Break interrupts a running CPU.
func (m *Monitor) Break() {
	m.println()

	if m.state == stateRunning {
		m.displayPC()
	}
	if m.state == stateProcessingCommands {
		m.prompt()
	}
	m.state = stateProcessingCommands
}

func (m *Monitor) printf(format string, args ...any) {
	fmt.Fprintf(m.output, format, args...)
	m.flush()
}

func (m *Monitor) println(args ...any) {
	fmt.Fprintln(m.output, args...)
	m.flush()
}

func (m *Monitor) flush() {
	m.output.Flush()
}

func (m *Monitor) getLine() (string, error) {
	if m.input.Scan() {
		return m.input.Text(), nil
	}
	if m.input.Err() != nil {
		return "", m.input.Err()
	}
	return "", io.EOF
}

func (m *Monitor) prompt() {
	if m.interactive {
		m.printf("* ")
	}
}

func (m *Monitor) displayPC() {
	if m.interactive {
		d, _ := m.disassemble(m.cpu.Reg.PC, displayAll)
		m.println(d)
	}
}

func (m *Monitor) cmdHelp(c cmd.Selection) error {
	switch {
	case len(c.Args) == 0:
		m.displayCommands(cmds)
	default:
		s, err := cmds.Lookup(strings.Join(c.Args, " "))
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		switch {
		case s.Command.Subtree != nil:
			m.displayCommands(s.Command.Subtree)
		default:
			if s.Command.Usage != "" {
				m.printf("Syntax: %s\n\n", s.Command.Usage)
			}
			switch {
			case s.Command.Description != "":
				m.printf("Description:\n%s\n\n", indentWrap(3, s.Command.Description))
			case s.Command.Brief != "":
				m.printf("Description:\n%s.\n\n", indentWrap(3, s.Command.Brief))
			}
		}
	}
	return nil
}

func (m *Monitor) cmdBreakpointList(c cmd.Selection) error {
	m.println("Addr  Enabled")
	m.println("----- -------")
	for _, b := range m.debugger.GetBreakpoints() {
		m.printf("$%04X %v\n", b.Address, !b.Disabled)
	}
	return nil
}

func (m *Monitor) cmdBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	m.debugger.AddBreakpoint(addr)
	m.printf("Breakpoint added at $%04X.\n", addr)
	return nil
}

func (m *Monitor) cmdBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	if m.debugger.GetBreakpoint(addr) == nil {
		m.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	m.debugger.RemoveBreakpoint(addr)
	m.printf("Breakpoint at $%04X removed.\n", addr)
	return nil
}

func (m *Monitor) cmdBreakpointEnable(c cmd.Selection) error {
	return m.setBreakpointEnabled(c, true)
}

func (m *Monitor) cmdBreakpointDisable(c cmd.Selection) error {
	return m.setBreakpointEnabled(c, false)
}

func (m *Monitor) setBreakpointEnabled(c cmd.Selection, enable bool) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	b := m.debugger.GetBreakpoint(addr)
	if b == nil {
		m.printf("No breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	if enable {
		m.printf("Breakpoint at $%04X enabled.\n", addr)
	} else {
		m.printf("Breakpoint at $%04X disabled.\n", addr)
	}
	return nil
}

func (m *Monitor) cmdDataBreakpointList(c cmd.Selection) error {
	m.println("Addr  Enabled  Value")
	m.println("----- -------  -----")
	for _, b := range m.debugger.GetDataBreakpoints() {
		if b.Conditional {
			m.printf("$%04X %-5v    $%02X\n", b.Address, !b.Disabled, b.Value)
		} else {
			m.printf("$%04X %-5v    <none>\n", b.Address, !b.Disabled)
		}
	}
	return nil
}

func (m *Monitor) cmdDataBreakpointAdd(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	if len(c.Args) > 1 {
		value, err := m.parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.debugger.AddConditionalDataBreakpoint(addr, byte(value))
		m.printf("Conditional data breakpoint added at $%04X for value $%02X.\n", addr, value)
	} else {
		m.debugger.AddDataBreakpoint(addr)
		m.printf("Data breakpoint added at $%04X.\n", addr)
	}

	return nil
}

func (m *Monitor) cmdDataBreakpointRemove(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	if m.debugger.GetDataBreakpoint(addr) == nil {
		m.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	m.debugger.RemoveDataBreakpoint(addr)
	m.printf("Data breakpoint at $%04X removed.\n", addr)
	return nil
}

func (m *Monitor) cmdDataBreakpointEnable(c cmd.Selection) error {
	return m.setDataBreakpointEnabled(c, true)
}

func (m *Monitor) cmdDataBreakpointDisable(c cmd.Selection) error {
	return m.setDataBreakpointEnabled(c, false)
}

func (m *Monitor) setDataBreakpointEnabled(c cmd.Selection, enable bool) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	b := m.debugger.GetDataBreakpoint(addr)
	if b == nil {
		m.printf("No data breakpoint was set on $%04X.\n", addr)
		return nil
	}

	b.Disabled = !enable
	if enable {
		m.printf("Data breakpoint at $%04X enabled.\n", addr)
	} else {
		m.printf("Data breakpoint at $%04X disabled.\n", addr)
	}
	return nil
}

func (m *Monitor) cmdDisassemble(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = m.settings.NextDisasmAddr
		if addr == 0 {
			addr = m.cpu.Reg.PC
		}

	case ".":
		addr = m.cpu.Reg.PC

	default:
		a, err := m.parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	lines := m.settings.DisasmLines
	if len(c.Args) > 1 {
		l, err := m.parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		lines = int(l)
	}

	for i := 0; i < lines; i++ {
		d, next := m.disassemble(addr, 0)
		m.println(d)
		addr = next
	}

	m.settings.NextDisasmAddr = addr
	m.lastCmd.Args = []string{"$", fmt.Sprintf("%d", lines)}
	return nil
}

func (m *Monitor) cmdLoadROM(c cmd.Selection) error {
	if len(c.Args) < 1 {
		m.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".nes"
	}

	raw, err := os.ReadFile(filename)
	if err != nil {
		m.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	cart, err := cartridge.DecodeiNES(raw)
	if err != nil {
		m.printf("Failed to decode '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.attachMemory(bus.New(cart))
	m.cpu.Reset()

	m.printf("Loaded '%s': PRG %dK, CHR %dK.\n", filepath.Base(filename),
		len(cart.PRG)/1024, len(cart.CHR)/1024)
	m.displayPC()
	return nil
}

func (m *Monitor) cmdLoadBinary(c cmd.Selection) error {
	if len(c.Args) < 2 {
		m.displayUsage(c.Command)
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}

	addr, err := m.parseAddr(c.Args[1])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	code, err := os.ReadFile(filename)
	if err != nil {
		m.printf("Failed to open '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.attachMemory(cpu.NewFlatMemory())
	m.cpu.Load(code, addr)
	m.cpu.Reset()

	m.printf("Loaded '%s' to $%04X..$%04X\n", filepath.Base(filename),
		addr, int(addr)+len(code)-1)
	m.displayPC()
	return nil
}

func (m *Monitor) cmdMemoryDump(c cmd.Selection) error {
	if len(c.Args) == 0 {
		c.Args = []string{"$"}
	}

	var addr uint16
	switch c.Args[0] {
	case "$":
		addr = m.settings.NextMemDumpAddr
		if addr == 0 {
			addr = m.cpu.Reg.PC
		}

	case ".":
		addr = m.cpu.Reg.PC

	default:
		a, err := m.parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		addr = a
	}

	bytes := uint16(m.settings.MemDumpBytes)
	if len(c.Args) >= 2 {
		var err error
		bytes, err = m.parseAddr(c.Args[1])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
	}

	m.dumpMemory(addr, bytes)

	m.settings.NextMemDumpAddr = addr + bytes
	m.lastCmd.Args = []string{"$", fmt.Sprintf("%d", bytes)}
	return nil
}

func (m *Monitor) cmdMemorySet(c cmd.Selection) error {
	if len(c.Args) < 2 {
		m.displayUsage(c.Command)
		return nil
	}

	addr, err := m.parseAddr(c.Args[0])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	for i, arg := range c.Args[1:] {
		v, err := m.parseAddr(arg)
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.cpu.Mem.StoreByte(addr+uint16(i), byte(v))
	}

	m.printf("%d byte(s) set starting at $%04X.\n", len(c.Args)-1, addr)
	return nil
}

func (m *Monitor) cmdQuit(c cmd.Selection) error {
	return errors.New("exiting program")
}

func (m *Monitor) cmdRegister(c cmd.Selection) error {
	if len(c.Args) == 0 {
		d, _ := m.disassemble(m.cpu.Reg.PC, displayAll)
		m.println(d)
		return nil
	}

	if len(c.Args) < 2 {
		m.displayUsage(c.Command)
		return nil
	}

	value, err := m.parseAddr(c.Args[1])
	if err != nil {
		m.printf("%v\n", err)
		return nil
	}

	reg := &m.cpu.Reg
	key := strings.ToLower(c.Args[0])
	sz := -1
	switch key {
	case "a":
		reg.A, sz = byte(value), 1
	case "x":
		reg.X, sz = byte(value), 1
	case "y":
		reg.Y, sz = byte(value), 1
	case "sp":
		reg.SP, sz = byte(value), 1
	case ".":
		key = "pc"
		fallthrough
	case "pc":
		reg.PC, sz = value, 2
	case "c", "carry":
		reg.Carry, sz = value != 0, 0
	case "z", "zero":
		reg.Zero, sz = value != 0, 0
	case "i", "interruptdisable":
		reg.InterruptDisable, sz = value != 0, 0
	case "d", "decimal":
		reg.Decimal, sz = value != 0, 0
	case "v", "overflow":
		reg.Overflow, sz = value != 0, 0
	case "n", "sign":
		reg.Sign, sz = value != 0, 0
	}

	switch sz {
	case 0:
		m.printf("Flag %s set to %v.\n", strings.ToUpper(key), value != 0)
	case 1:
		m.printf("Register %s set to $%02X.\n", strings.ToUpper(key), byte(value))
	case 2:
		m.printf("Register %s set to $%04X.\n", strings.ToUpper(key), value)
	default:
		m.printf("Unknown register '%s'.\n", c.Args[0])
	}
	return nil
}

func (m *Monitor) cmdReset(c cmd.Selection) error {
	m.cpu.Reset()
	m.printf("CPU reset. Execution begins at $%04X.\n", m.cpu.Reg.PC)
	m.displayPC()
	return nil
}

func (m *Monitor) cmdRun(c cmd.Selection) error {
	if len(c.Args) > 0 {
		pc, err := m.parseAddr(c.Args[0])
		if err != nil {
			m.printf("%v\n", err)
			return nil
		}
		m.cpu.SetPC(pc)
	}

	if m.cpu.Halted() {
		m.println("CPU is halted. Type 'reset' to restart it.")
		return nil
	}

	m.printf("Running from $%04X. Press ctrl-C to break.\n", m.cpu.Reg.PC)

	m.state = stateRunning
	for m.state == stateRunning && !m.cpu.Halted() {
		m.step()
	}
	m.state = stateProcessingCommands

	if m.cpu.Halted() {
		m.printf("CPU halted at $%04X after %d cycles.\n", m.cpu.LastPC, m.cpu.Cycles)
	}

	m.settings.NextDisasmAddr = m.cpu.Reg.PC
	return nil
}

func (m *Monitor) cmdScript(c cmd.Selection) error {
	if m.hook != nil {
		m.hook.Close()
		m.hook = nil
	}

	if len(c.Args) == 0 {
		m.println("Script detached.")
		return nil
	}

	filename := c.Args[0]
	if filepath.Ext(filename) == "" {
		filename += ".lua"
	}

	hook, err := script.Load(filename)
	if err != nil {
		m.printf("Failed to load '%s': %v\n", filepath.Base(filename), err)
		return nil
	}

	m.hook = hook
	m.printf("Script '%s' attached.\n", filepath.Base(filename))
	return nil
}

func (m *Monitor) cmdSet(c cmd.Selection) error {
	switch len(c.Args) {
	case 0:
		m.println("Variables:")
		m.settings.Display(m.output)
		m.flush()

	case 1:
		m.displayUsage(c.Command)

	default:
		key, value := strings.ToLower(c.Args[0]), strings.Join(c.Args[1:], " ")

		var err error
		switch m.settings.Kind(key) {
		case reflect.Invalid:
			err = fmt.Errorf("setting '%s' not found", key)
		case reflect.Bool:
			var v bool
			v, err = stringToBool(value)
			if err == nil {
				err = m.settings.Set(key, v)
			}
		default:
			var v uint16
			v, err = m.parseAddr(value)
			if err == nil {
				err = m.settings.Set(key, v)
			}
		}

		if err == nil {
			m.println("Setting updated.")
		} else {
			m.printf("%v\n", err)
		}
	}

	return nil
}

func (m *Monitor) cmdStepIn(c cmd.Selection) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := m.parseAddr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step the CPU count times.
	m.state = stateRunning
	for i := count - 1; i >= 0 && m.state == stateRunning && !m.cpu.Halted(); i-- {
		m.step()
		switch {
		case i == m.settings.StepLines:
			m.println("...")
		case i < m.settings.StepLines:
			m.displayPC()
		}
	}
	m.state = stateProcessingCommands

	m.settings.NextDisasmAddr = m.cpu.Reg.PC
	return nil
}

func (m *Monitor) cmdStepOver(c cmd.Selection) error {
	// Parse the number of steps.
	count := 1
	if len(c.Args) > 0 {
		n, err := m.parseAddr(c.Args[0])
		if err == nil {
			count = int(n)
		}
	}

	// Step over the next instruction count times.
	m.state = stateRunning
	for i := count - 1; i >= 0 && m.state == stateRunning && !m.cpu.Halted(); i-- {
		m.stepOver()
		switch {
		case i == m.settings.StepLines:
			m.println("...")
		case i < m.settings.StepLines:
			m.displayPC()
		}
	}
	m.state = stateProcessingCommands

	m.settings.NextDisasmAddr = m.cpu.Reg.PC
	return nil
}

// attachMemory rebinds the CPU to a new address space. Breakpoints and
// the attached script survive; power-on state does not.
func (m *Monitor) attachMemory(mem cpu.Memory) {
	m.mem = mem
	m.cpu.Mem = mem
}

func (m *Monitor) step() {
	if m.settings.Trace {
		m.println(disasm.Trace(m.cpu))
	}
	if m.hook != nil {
		m.hook.Step(m.cpu)
		if err := m.hook.Err(); err != nil {
			m.printf("Script error: %v\n", err)
		}
		if m.cpu.Halted() {
			return
		}
	}
	m.cpu.Step()
}

func (m *Monitor) stepOver() {
	// JSR instructions need to be handled specially.
	inst := m.cpu.GetInstruction(m.cpu.Reg.PC)
	if inst.Name != "JSR" {
		m.step()
		return
	}

	// Place a step-over breakpoint on the instruction following the JSR.
	// Either modify an already existing breakpoint on that instruction, or
	// create a temporary one.
	next := m.cpu.Reg.PC + uint16(inst.Length)
	tmpBreakpointCreated := false
	b := m.debugger.GetBreakpoint(next)
	if b == nil {
		b = m.debugger.AddBreakpoint(next)
		tmpBreakpointCreated = true
	}
	b.StepOver = true

	// Run until interrupted.
	for m.state == stateRunning && !m.cpu.Halted() {
		m.step()
	}
	b.StepOver = false

	// If we were interrupted by the temporary step-over breakpoint,
	// then continue as normal.
	if m.state == stateStepOverBreakpoint {
		m.state = stateRunning
	}

	// Remove the temporarily created breakpoint.
	if tmpBreakpointCreated {
		m.debugger.RemoveBreakpoint(next)
	}
}

func (m *Monitor) disassemble(addr uint16, flags displayFlags) (str string, next uint16) {
	var line string
	line, next = disasm.Disassemble(m.cpu.Mem, addr)

	str = fmt.Sprintf("%04X-   %-8s   %-15s", addr, disasm.CodeBytes(m.cpu.Mem, addr), line)

	if (flags & displayRegisters) != 0 {
		str += " " + disasm.Registers(m.cpu.Reg)
	}

	if (flags & displayCycles) != 0 {
		str += fmt.Sprintf(" C=%-12d", m.cpu.Cycles)
	}

	return str, next
}

func (m *Monitor) dumpMemory(addr0, bytes uint16) {
	if bytes == 0 {
		return
	}

	addr1 := addr0 + bytes - 1
	if addr1 < addr0 {
		addr1 = 0xffff
	}

	buf := []byte("    -" + strings.Repeat(" ", 35))

	// Don't align display for short dumps.
	if addr1-addr0 < 8 {
		addrToBuf(addr0, buf[0:4])
		for a, c1, c2 := addr0, 6, 32; a <= addr1; a, c1, c2 = a+1, c1+3, c2+1 {
			v := m.cpu.Mem.LoadByte(a)
			byteToBuf(v, buf[c1:c1+2])
			buf[c2] = toPrintableChar(v)
		}
		m.println(string(buf))
		return
	}

	// Align addr0 and addr1 to 8-byte boundaries.
	start := uint32(addr0) & 0xfff8
	stop := (uint32(addr1) + 8) & 0xffff8
	if stop > 0x10000 {
		stop = 0x10000
	}

	a := uint16(start)
	for r := start; r < stop; r += 8 {
		addrToBuf(a, buf[0:4])
		for c1, c2 := 6, 32; c1 < 29; c1, c2, a = c1+3, c2+1, a+1 {
			if a >= addr0 && a <= addr1 {
				v := m.cpu.Mem.LoadByte(a)
				byteToBuf(v, buf[c1:c1+2])
				buf[c2] = toPrintableChar(v)
			} else {
				buf[c1] = ' '
				buf[c1+1] = ' '
				buf[c2] = ' '
			}
		}
		m.println(string(buf))
	}
}

func (m *Monitor) displayUsage(c *cmd.Command) {
	if c.Usage != "" {
		m.printf("Syntax: %s\n", c.Usage)
	} else {
		m.println("<no help text>")
	}
}

func (m *Monitor) displayCommands(commands *cmd.Tree) {
	m.printf("%s commands:\n", commands.Name)
	for _, c := range commands.Commands() {
		if c.Brief != "" {
			m.printf("    %-15s  %s\n", c.Name, c.Brief)
		}
	}
}

func (m *Monitor) onBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	if b.StepOver {
		m.state = stateStepOverBreakpoint
	} else {
		m.state = stateBreakpoint
		m.printf("Breakpoint hit at $%04X.\n", b.Address)
		m.displayPC()
	}
}

func (m *Monitor) onDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	m.printf("Data breakpoint hit on address $%04X.\n", b.Address)

	m.state = stateBreakpoint

	if c.LastPC != c.Reg.PC {
		d, _ := m.disassemble(c.LastPC, displayAll)
		m.println(d)
	}

	m.displayPC()
}
