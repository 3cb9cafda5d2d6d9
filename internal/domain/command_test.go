package domain

import "testing"

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    byte
		expected Command
	}{
		{'L', CommandLeft},
		{'R', CommandRight},
		{'U', CommandUp},
		{'D', CommandDown},
		{'S', CommandShoot},
		{'N', CommandRename},
		{'l', CommandUnknown},
		{'M', CommandUnknown}, // Только с панели
		{'X', CommandUnknown},
		{0, CommandUnknown},
	}

	for _, tt := range tests {
		result := ParseCommand(tt.input)
		if result != tt.expected {
			t.Errorf("ParseCommand(%q) = %v, want %v", tt.input, result, tt.expected)
		}
	}
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected string
	}{
		{CommandLeft, "LEFT"},
		{CommandShoot, "SHOOT"},
		{CommandMark, "MARK"},
		{CommandUnknown, "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.cmd.String(); got != tt.expected {
			t.Errorf("Command(%d).String() = %q, want %q", tt.cmd, got, tt.expected)
		}
	}
}

func TestCommand_IsMovement(t *testing.T) {
	for _, c := range []Command{CommandLeft, CommandRight, CommandUp, CommandDown} {
		if !c.IsMovement() {
			t.Errorf("%v should be a movement", c)
		}
	}
	for _, c := range []Command{CommandShoot, CommandRename, CommandMark, CommandUnknown} {
		if c.IsMovement() {
			t.Errorf("%v should not be a movement", c)
		}
	}
}
