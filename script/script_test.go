package script_test

import (
	"testing"

	"github.com/famicore/gones/cpu"
	"github.com/famicore/gones/script"
)

// An infinite loop at $8000: JMP $8000.
var loop = []byte{0x4c, 0x00, 0x80}

func newLoopCPU() *cpu.CPU {
	mem := cpu.NewFlatMemory()
	c := cpu.NewCPU(mem)
	c.Load(loop, 0x8000)
	c.Reset()
	return c
}

func TestStepHalts(t *testing.T) {
	hook, err := script.LoadString(`
		steps = 0
		function step()
			steps = steps + 1
			if steps == 10 then
				halt()
			end
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	defer hook.Close()

	c := newLoopCPU()
	c.RunWithCallback(hook.Step)

	if !c.Halted() {
		t.Error("CPU not halted by script")
	}
	if err := hook.Err(); err != nil {
		t.Errorf("script error: %v", err)
	}
	// 9 instructions ran before the 10th callback halted the CPU.
	if c.Cycles != 9*3 {
		t.Errorf("cycles = %d, want 27", c.Cycles)
	}
}

func TestPeekPoke(t *testing.T) {
	hook, err := script.LoadString(`
		function step()
			poke(0x10, peek(0x10) + 1)
			if peek(0x10) == 5 then
				halt()
			end
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	defer hook.Close()

	c := newLoopCPU()
	c.RunWithCallback(hook.Step)

	if got := c.Mem.LoadByte(0x10); got != 5 {
		t.Errorf("mem[10] = %d, want 5", got)
	}
}

func TestRegisterAccess(t *testing.T) {
	hook, err := script.LoadString(`
		function step()
			if getreg("pc") == 0x8000 then
				setreg("a", 0x42)
				setreg("x", getreg("a") + 1)
				halt()
			end
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	defer hook.Close()

	c := newLoopCPU()
	c.RunWithCallback(hook.Step)

	if c.Reg.A != 0x42 {
		t.Errorf("A = %02X, want 42", c.Reg.A)
	}
	if c.Reg.X != 0x43 {
		t.Errorf("X = %02X, want 43", c.Reg.X)
	}
}

func TestScriptWithoutStep(t *testing.T) {
	hook, err := script.LoadString(`x = 1`)
	if err != nil {
		t.Fatal(err)
	}
	defer hook.Close()

	c := newLoopCPU()
	hook.Step(c) // no step function defined; must be a no-op
	if c.Halted() {
		t.Error("CPU halted unexpectedly")
	}
}

func TestScriptErrorHaltsCPU(t *testing.T) {
	hook, err := script.LoadString(`
		function step()
			error("boom")
		end
	`)
	if err != nil {
		t.Fatal(err)
	}
	defer hook.Close()

	c := newLoopCPU()
	c.RunWithCallback(hook.Step)

	if !c.Halted() {
		t.Error("CPU not halted after script error")
	}
	if hook.Err() == nil {
		t.Error("script error not retained")
	}
}

func TestLoadStringSyntaxError(t *testing.T) {
	if _, err := script.LoadString(`function step(`); err == nil {
		t.Error("syntax error not reported")
	}
}
