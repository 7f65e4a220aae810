// Copyright 2024-2026 The famicore authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package script runs Lua automation scripts against an emulated CPU.
// A script may define a step function, which is called before every
// instruction and can inspect registers, read and write memory, and
// halt the CPU. This is how game input and pseudo-random seeds are
// injected when running ROMs headlessly.
package script

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/famicore/gones/cpu"
)

// A Hook owns a Lua interpreter state and the script loaded into it.
// Its Step method is intended to be passed to cpu.RunWithCallback.
type Hook struct {
	ls   *lua.LState
	step lua.LValue
	cpu  *cpu.CPU
	err  error
}

func newHook() *Hook {
	h := &Hook{ls: lua.NewState()}
	h.ls.SetGlobal("peek", h.ls.NewFunction(h.luaPeek))
	h.ls.SetGlobal("poke", h.ls.NewFunction(h.luaPoke))
	h.ls.SetGlobal("halt", h.ls.NewFunction(h.luaHalt))
	h.ls.SetGlobal("getreg", h.ls.NewFunction(h.luaGetReg))
	h.ls.SetGlobal("setreg", h.ls.NewFunction(h.luaSetReg))
	return h
}

// Load reads a Lua script from a file and returns a hook for it.
func Load(filename string) (*Hook, error) {
	h := newHook()
	if err := h.ls.DoFile(filename); err != nil {
		h.Close()
		return nil, err
	}
	h.step = h.ls.GetGlobal("step")
	return h, nil
}

// LoadString compiles a Lua script from a string and returns a hook
// for it.
func LoadString(src string) (*Hook, error) {
	h := newHook()
	if err := h.ls.DoString(src); err != nil {
		h.Close()
		return nil, err
	}
	h.step = h.ls.GetGlobal("step")
	return h, nil
}

// Close shuts down the Lua interpreter. The hook must not be used
// afterwards.
func (h *Hook) Close() {
	h.ls.Close()
}

// Err returns the first error raised by the script's step function, if
// any.
func (h *Hook) Err() error {
	return h.err
}

// Step invokes the script's step function, if the script defines one.
// A script error halts the CPU and is retained for Err. Pass this
// method to cpu.RunWithCallback.
func (h *Hook) Step(c *cpu.CPU) {
	if h.step == lua.LNil || h.err != nil {
		return
	}

	h.cpu = c
	err := h.ls.CallByParam(lua.P{Fn: h.step, NRet: 0, Protect: true})
	h.cpu = nil

	if err != nil {
		h.err = err
		c.Halt()
	}
}

// peek(addr) -> value
func (h *Hook) luaPeek(ls *lua.LState) int {
	addr := uint16(ls.CheckInt(1))
	ls.Push(lua.LNumber(h.cpu.Mem.LoadByte(addr)))
	return 1
}

// poke(addr, value)
func (h *Hook) luaPoke(ls *lua.LState) int {
	addr := uint16(ls.CheckInt(1))
	v := byte(ls.CheckInt(2))
	h.cpu.Mem.StoreByte(addr, v)
	return 0
}

// halt()
func (h *Hook) luaHalt(ls *lua.LState) int {
	h.cpu.Halt()
	return 0
}

// getreg(name) -> value
func (h *Hook) luaGetReg(ls *lua.LState) int {
	reg := &h.cpu.Reg
	switch name := ls.CheckString(1); name {
	case "a":
		ls.Push(lua.LNumber(reg.A))
	case "x":
		ls.Push(lua.LNumber(reg.X))
	case "y":
		ls.Push(lua.LNumber(reg.Y))
	case "sp":
		ls.Push(lua.LNumber(reg.SP))
	case "pc":
		ls.Push(lua.LNumber(reg.PC))
	case "p":
		ls.Push(lua.LNumber(reg.SavePS(false)))
	default:
		ls.RaiseError("unknown register '%s'", name)
	}
	return 1
}

// setreg(name, value)
func (h *Hook) luaSetReg(ls *lua.LState) int {
	reg := &h.cpu.Reg
	v := ls.CheckInt(2)
	switch name := ls.CheckString(1); name {
	case "a":
		reg.A = byte(v)
	case "x":
		reg.X = byte(v)
	case "y":
		reg.Y = byte(v)
	case "sp":
		reg.SP = byte(v)
	case "pc":
		reg.PC = uint16(v)
	case "p":
		reg.RestorePS(byte(v))
	default:
		ls.RaiseError("unknown register '%s'", name)
	}
	return 0
}
