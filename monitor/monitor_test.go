package monitor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// runScript feeds a command script to a fresh monitor and returns the
// combined output.
func runScript(t *testing.T, commands ...string) string {
	t.Helper()
	var out bytes.Buffer
	m := New()
	m.RunCommands(strings.NewReader(strings.Join(commands, "\n")), &out, false)
	return out.String()
}

// writeBinary saves a raw program to a temp file and returns its path.
func writeBinary(t *testing.T, code []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.bin")
	if err := os.WriteFile(path, code, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadBinaryAndRun(t *testing.T) {
	// LDA #$42, STA $0200, BRK
	path := writeBinary(t, []byte{0xa9, 0x42, 0x8d, 0x00, 0x02, 0x00})

	out := runScript(t,
		"load binary "+path+" $8000",
		"run",
		"memory dump $0200 1",
	)

	if !strings.Contains(out, "Loaded 'prog.bin' to $8000..$8005") {
		t.Errorf("load message missing:\n%s", out)
	}
	if !strings.Contains(out, "CPU halted at $8005") {
		t.Errorf("halt message missing:\n%s", out)
	}
	if !strings.Contains(out, "42") {
		t.Errorf("memory dump missing value:\n%s", out)
	}
}

func TestBreakpoint(t *testing.T) {
	// LDX #$01, INX, INX, BRK
	path := writeBinary(t, []byte{0xa2, 0x01, 0xe8, 0xe8, 0x00})

	out := runScript(t,
		"load binary "+path+" $8000",
		"breakpoint add $8003",
		"run",
		"register",
	)

	if !strings.Contains(out, "Breakpoint added at $8003.") {
		t.Errorf("add message missing:\n%s", out)
	}
	if !strings.Contains(out, "Breakpoint hit at $8003.") {
		t.Errorf("hit message missing:\n%s", out)
	}
	// One INX has run when the breakpoint fires.
	if !strings.Contains(out, "X:02") {
		t.Errorf("register display missing X:02:\n%s", out)
	}
}

func TestDataBreakpoint(t *testing.T) {
	// LDA #$07, STA $0010, BRK
	path := writeBinary(t, []byte{0xa9, 0x07, 0x85, 0x10, 0x00})

	out := runScript(t,
		"load binary "+path+" $8000",
		"databreakpoint add $0010",
		"run",
	)

	if !strings.Contains(out, "Data breakpoint hit on address $0010.") {
		t.Errorf("data breakpoint message missing:\n%s", out)
	}
}

func TestRegisterSet(t *testing.T) {
	out := runScript(t,
		"register a $42",
		"register pc $1234",
		"register n 1",
	)

	if !strings.Contains(out, "Register A set to $42.") {
		t.Errorf("A set message missing:\n%s", out)
	}
	if !strings.Contains(out, "Register PC set to $1234.") {
		t.Errorf("PC set message missing:\n%s", out)
	}
	if !strings.Contains(out, "Flag N set to true.") {
		t.Errorf("flag set message missing:\n%s", out)
	}
}

func TestMemorySet(t *testing.T) {
	out := runScript(t,
		"memory set $0300 $de $ad $be $ef",
		"memory dump $0300 4",
	)

	if !strings.Contains(out, "4 byte(s) set starting at $0300.") {
		t.Errorf("set message missing:\n%s", out)
	}
	if !strings.Contains(out, "DE AD BE EF") {
		t.Errorf("dump missing stored bytes:\n%s", out)
	}
}

func TestDisassembleCommand(t *testing.T) {
	path := writeBinary(t, []byte{0xa9, 0x42, 0x00})

	out := runScript(t,
		"load binary "+path+" $8000",
		"disassemble $8000 2",
	)

	if !strings.Contains(out, "LDA #$42") {
		t.Errorf("disassembly missing LDA:\n%s", out)
	}
	if !strings.Contains(out, "BRK") {
		t.Errorf("disassembly missing BRK:\n%s", out)
	}
}

func TestSettings(t *testing.T) {
	out := runScript(t,
		"set hexmode true",
		"set",
	)

	if !strings.Contains(out, "Setting updated.") {
		t.Errorf("update message missing:\n%s", out)
	}
	if !strings.Contains(out, "HexMode") || !strings.Contains(out, "hexadecimal input mode") {
		t.Errorf("settings display missing HexMode:\n%s", out)
	}
}

func TestTraceSetting(t *testing.T) {
	// LDA #$42, BRK
	path := writeBinary(t, []byte{0xa9, 0x42, 0x00})

	out := runScript(t,
		"load binary "+path+" $8000",
		"set trace on",
		"run",
	)

	if !strings.Contains(out, "8000  A9 42") {
		t.Errorf("trace line missing:\n%s", out)
	}
	if !strings.Contains(out, "A:00 X:00 Y:00 P:24 SP:FD") {
		t.Errorf("trace registers missing:\n%s", out)
	}
}

func TestScriptCommand(t *testing.T) {
	// Infinite loop; the script halts it after five callbacks.
	path := writeBinary(t, []byte{0x4c, 0x00, 0x80})

	luaPath := filepath.Join(t.TempDir(), "auto.lua")
	lua := `
		steps = 0
		function step()
			steps = steps + 1
			if steps == 5 then
				halt()
			end
		end
	`
	if err := os.WriteFile(luaPath, []byte(lua), 0644); err != nil {
		t.Fatal(err)
	}

	out := runScript(t,
		"load binary "+path+" $8000",
		"script "+luaPath,
		"run",
	)

	if !strings.Contains(out, "Script 'auto.lua' attached.") {
		t.Errorf("attach message missing:\n%s", out)
	}
	if !strings.Contains(out, "CPU halted") {
		t.Errorf("halt message missing:\n%s", out)
	}
}

func TestUnknownCommand(t *testing.T) {
	out := runScript(t, "frobnicate")
	if !strings.Contains(out, "Command not found.") {
		t.Errorf("unknown command message missing:\n%s", out)
	}
}

func TestParseAddr(t *testing.T) {
	m := New()

	if v, err := m.parseAddr("$1234"); err != nil || v != 0x1234 {
		t.Errorf("parseAddr($1234) = %04X, %v", v, err)
	}
	if v, err := m.parseAddr("0xBEEF"); err != nil || v != 0xbeef {
		t.Errorf("parseAddr(0xBEEF) = %04X, %v", v, err)
	}
	if v, err := m.parseAddr("100"); err != nil || v != 100 {
		t.Errorf("parseAddr(100) = %d, %v", v, err)
	}

	m.settings.HexMode = true
	if v, err := m.parseAddr("100"); err != nil || v != 0x100 {
		t.Errorf("parseAddr(100) in hex mode = %04X, %v", v, err)
	}

	if _, err := m.parseAddr("zzz"); err == nil {
		t.Error("parseAddr(zzz) did not fail")
	}
}
