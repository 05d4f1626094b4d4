package profile

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cannonYAML = `vm: cannon
goos: linux
goarch: mips
allowed_opcodes:
  - opcode: "0x00"
    funct: ["0x20", "0x21", "0X2A"]
  - opcode: "0x08"
  - opcode: "35"
ignored_functions:
  - runtime.morestack
entrypoints:
  - main.main
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadProfileYAML(t *testing.T) {
	prof, err := LoadProfile(writeFile(t, "cannon.yaml", cannonYAML))
	require.NoError(t, err)

	assert.Equal(t, "cannon", prof.VMName)
	assert.Equal(t, "linux", prof.GOOS)
	assert.Equal(t, "mips", prof.GOARCH)
	require.Len(t, prof.AllowedOpcodes, 3)
	assert.Equal(t, []string{"0x20", "0x21", "0X2A"}, prof.AllowedOpcodes[0].Funct)
	assert.Equal(t, []string{"main.main"}, prof.Entrypoints)

	order, err := prof.ByteOrder()
	require.NoError(t, err)
	assert.Equal(t, binary.BigEndian, order)
}

func TestLoadProfileJSON(t *testing.T) {
	prof, err := LoadProfile(writeFile(t, "cannon.json", `{
		"vm": "cannon",
		"goarch": "mipsle",
		"allowed_opcodes": [{"opcode": "0x02"}],
		"ignored_functions": ["runtime.abort"]
	}`))
	require.NoError(t, err)

	assert.Equal(t, "mipsle", prof.GOARCH)
	assert.True(t, prof.IsIgnored("runtime.abort"))
	assert.False(t, prof.IsIgnored("main.main"))

	order, err := prof.ByteOrder()
	require.NoError(t, err)
	assert.Equal(t, binary.LittleEndian, order)
}

func TestLoadProfileErrors(t *testing.T) {
	tests := map[string]struct {
		name    string
		content string
		errMsg  string
	}{
		"unknown extension": {"profile.toml", cannonYAML, "unsupported profile format"},
		"bad yaml":          {"profile.yaml", "vm: [", "failed to parse profile"},
		"bad arch":          {"profile.yaml", "goarch: arm64\n", "unsupported GOARCH"},
		"bad opcode":        {"profile.yaml", "goarch: mips\nallowed_opcodes:\n  - opcode: lw\n", `opcode "lw"`},
		"bad funct":         {"profile.yaml", "goarch: mips\nallowed_opcodes:\n  - opcode: \"0\"\n    funct: [\"0x100\"]\n", `funct "0x100"`},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadProfile(writeFile(t, tc.name, tc.content))
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}

	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to open profile")
}

func TestAllows(t *testing.T) {
	prof, err := LoadProfile(writeFile(t, "cannon.yaml", cannonYAML))
	require.NoError(t, err)

	assert.True(t, prof.Allows(0x00, 0x20))
	assert.True(t, prof.Allows(0x00, 0x2A))
	assert.False(t, prof.Allows(0x00, 0x22))
	assert.True(t, prof.Allows(0x08, 0x00))
	// funct bits of an I-Type word are part of the immediate
	assert.True(t, prof.Allows(0x08, 0x3F))
	assert.True(t, prof.Allows(0x23, 0x00))
	assert.False(t, prof.Allows(0x2B, 0x00))

	open := &VMProfile{GOARCH: "mips"}
	assert.True(t, open.Allows(0x3F, 0x3F))
}
