package mips

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/decoder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"
)

// extractListings writes every file of testdata/listings.txtar to a temp dir.
func extractListings(t *testing.T) string {
	t.Helper()
	archive, err := txtar.ParseFile(filepath.Join("testdata", "listings.txtar"))
	require.NoError(t, err)

	dir := t.TempDir()
	for _, f := range archive.Files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0600))
	}
	return dir
}

func TestParse(t *testing.T) {
	dir := extractListings(t)

	graph, err := NewParser(binary.BigEndian).Parse(filepath.Join(dir, "objdump.s"))
	require.NoError(t, err)

	segments := graph.Segments()
	require.Len(t, segments, 2)

	segment1, segment2 := segments[0], segments[1]
	assert.Equal(t, "internal/abi.Kind.String", segment1.Label())
	assert.Equal(t, uint64(0x11000), segment1.Address())
	assert.Equal(t, 5, segment1.Line())

	assert.Equal(t, "runtime.read", segment2.Label())
	assert.Equal(t, uint64(0x8d9d8), segment2.Address())
	assert.Equal(t, 11, segment2.Line())

	instrs := segment1.Instructions()
	require.Len(t, instrs, 5)

	// ld is a MIPS64 opcode
	assert.Equal(t, uint64(0x11000), instrs[0].Address())
	assert.Equal(t, "0x37", instrs[0].OpcodeHex())
	assert.Equal(t, "", instrs[0].Funct())
	assert.Equal(t, "ld", instrs[0].Mnemonic())
	assert.Nil(t, instrs[0].Decoded())
	assert.ErrorIs(t, instrs[0].Err(), decoder.ErrUnknownOpcode)
	assert.Equal(t, 6, instrs[0].Line())

	assert.Equal(t, "0x0", instrs[1].OpcodeHex())
	assert.Equal(t, "0x2b", instrs[1].Funct())
	assert.Equal(t, "sltu", instrs[1].Mnemonic())
	require.NoError(t, instrs[1].Err())
	assert.Equal(t, decoder.TypeR, instrs[1].Decoded().Type())
	assert.Equal(t, "sltu $1, $1, $29", instrs[1].Decoded().String())

	// syscall is not a recognized function code
	assert.Equal(t, "0xc", instrs[2].Funct())
	assert.ErrorIs(t, instrs[2].Err(), decoder.ErrUnknownFunction)

	assert.Equal(t, "0x3", instrs[3].OpcodeHex())
	assert.Equal(t, "jal", instrs[3].Mnemonic())
	assert.Equal(t, &decoder.JumpInstruction{Opcode: decoder.OpJumpAndLink, Target: 0x023676}, instrs[3].Decoded())

	assert.Equal(t, "nop", instrs[4].Mnemonic())
	assert.Equal(t, "sll $0, $0, 0", instrs[4].Decoded().String())

	instrs = segment2.Instructions()
	require.Len(t, instrs, 7)
	assert.Equal(t, "lw $4, 8($29)", instrs[0].Decoded().String())
	assert.ErrorIs(t, instrs[3].Err(), decoder.ErrUnknownOpcode)
	assert.Equal(t, "0x19", instrs[3].OpcodeHex())
	assert.Equal(t, "beq $7, $0, 2", instrs[5].Decoded().String())
	assert.Equal(t, "beqz", instrs[5].Mnemonic())
	assert.ErrorIs(t, instrs[6].Err(), decoder.ErrUnknownFunction)

	parents := graph.ParentsOf(segment2)
	require.Len(t, parents, 1)
	assert.Equal(t, "internal/abi.Kind.String", parents[0].Label())
	assert.Empty(t, graph.ParentsOf(segment1))
}

func TestParseByteListing(t *testing.T) {
	dir := extractListings(t)

	graph, err := NewParser(binary.BigEndian).Parse(filepath.Join(dir, "llvm.s"))
	require.NoError(t, err)

	segments := graph.Segments()
	require.Len(t, segments, 2)
	assert.Equal(t, "main.main", segments[0].Label())
	assert.Equal(t, "main.helper", segments[1].Label())

	instrs := segments[0].Instructions()
	require.Len(t, instrs, 4)
	assert.Equal(t, decoder.Word(0x3c1c0042), instrs[0].Word())
	assert.Equal(t, "lui $28, 66", instrs[0].Decoded().String())
	assert.Equal(t, "addiu $28, $28, -32752", instrs[1].Decoded().String())

	instrs = segments[1].Instructions()
	require.Len(t, instrs, 2)
	assert.Equal(t, "jr $31", instrs[0].Decoded().String())
	// no mnemonic printed, falls back to the decoded one
	assert.Equal(t, "add", instrs[1].Mnemonic())

	parents := graph.ParentsOf(segments[1])
	require.Len(t, parents, 1)
	assert.Equal(t, "main.main", parents[0].Label())
}

func TestParseLittleEndianByteListing(t *testing.T) {
	dir := extractListings(t)

	graph, err := NewParser(binary.LittleEndian).Parse(filepath.Join(dir, "llvm-le.s"))
	require.NoError(t, err)

	instrs := graph.Segments()[0].Instructions()
	require.Len(t, instrs, 3)
	assert.Equal(t, decoder.Word(0x20a50014), instrs[0].Word())
	assert.Equal(t, "addi $5, $5, 20", instrs[0].Decoded().String())
	assert.Equal(t, "jr $31", instrs[1].Decoded().String())
	// plain words are numeric values whatever the byte order
	assert.Equal(t, decoder.Word(0x00851820), instrs[2].Word())
}

func TestParseUndisassembledWords(t *testing.T) {
	dir := extractListings(t)

	graph, err := NewParser(binary.BigEndian).Parse(filepath.Join(dir, "raw.s"))
	require.NoError(t, err)

	instrs := graph.Segments()[0].Instructions()
	require.Len(t, instrs, 3)

	assert.Equal(t, ".word", instrs[0].Mnemonic())
	assert.Equal(t, decoder.Word(0x7c00003b), instrs[0].Word())
	assert.ErrorIs(t, instrs[0].Err(), decoder.ErrUnknownOpcode)

	assert.Equal(t, "<unknown>", instrs[1].Mnemonic())
	assert.Equal(t, uint64(0x400004), instrs[1].Address())
	assert.ErrorIs(t, instrs[1].Err(), decoder.ErrUnknownOpcode)

	assert.Equal(t, "add $3, $4, $5", instrs[2].Decoded().String())
}

func TestParseListingWord(t *testing.T) {
	word, err := parseListingWord("14 00 a5 20", binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, decoder.Word(0x20a50014), word)

	word, err = parseListingWord("14 00 a5 20", binary.BigEndian)
	require.NoError(t, err)
	assert.Equal(t, decoder.Word(0x1400a520), word)

	word, err = parseListingWord("20a50014", binary.LittleEndian)
	require.NoError(t, err)
	assert.Equal(t, decoder.Word(0x20a50014), word)

	_, err = parseListingWord("14 00 a5", binary.BigEndian)
	assert.Error(t, err)
}

func TestParseInstructionBeforeSegment(t *testing.T) {
	dir := extractListings(t)

	_, err := NewParser(binary.BigEndian).Parse(filepath.Join(dir, "orphan.s"))
	assert.ErrorContains(t, err, "before segment definition")
}

func TestParseMissingFile(t *testing.T) {
	_, err := NewParser(binary.BigEndian).Parse(filepath.Join(t.TempDir(), "missing.s"))
	assert.Error(t, err)
}

func TestParseWord(t *testing.T) {
	tests := []struct {
		in      string
		want    decoder.Word
		wantErr bool
	}{
		{in: "20a50014", want: 0x20A50014},
		{in: "0x00851820", want: 0x00851820},
		{in: "0X08000010", want: 0x08000010},
		{in: "3c 1c 00 42", want: 0x3c1c0042},
		{in: "zz", wantErr: true},
		{in: "123456789", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWord(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func writeImage(t *testing.T, order binary.ByteOrder, words ...uint32) string {
	t.Helper()
	data := make([]byte, 4*len(words))
	for i, w := range words {
		order.PutUint32(data[4*i:], w)
	}
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, data, 0600))
	return path
}

func TestBinaryParse(t *testing.T) {
	for name, order := range map[string]binary.ByteOrder{"big": binary.BigEndian, "little": binary.LittleEndian} {
		t.Run(name, func(t *testing.T) {
			path := writeImage(t, order,
				0x0c100004, // 400000: jal 0x400010
				0x00000000, // 400004: nop
				0x08100000, // 400008: j 0x400000
				0xfc000000, // 40000c: unknown opcode 0x3f
				0x00851820, // 400010: add $3, $4, $5
				0x03e00008, // 400014: jr $31
			)

			graph, err := NewBinaryParser(0x400000, order).Parse(path)
			require.NoError(t, err)

			segments := graph.Segments()
			require.Len(t, segments, 2)
			assert.Equal(t, EntryLabel, segments[0].Label())
			assert.Equal(t, uint64(0x400000), segments[0].Address())
			assert.Equal(t, "sub_400010", segments[1].Label())

			instrs := segments[0].Instructions()
			require.Len(t, instrs, 4)
			assert.Equal(t, "jal", instrs[0].Mnemonic())
			assert.ErrorIs(t, instrs[3].Err(), decoder.ErrUnknownOpcode)
			assert.Equal(t, 4, instrs[3].Line())

			instrs = segments[1].Instructions()
			require.Len(t, instrs, 2)
			assert.Equal(t, "add $3, $4, $5", instrs[0].Decoded().String())

			parents := graph.ParentsOf(segments[1])
			require.Len(t, parents, 1)
			assert.Equal(t, EntryLabel, parents[0].Label())

			// the j back to the entry makes it its own parent
			parents = graph.ParentsOf(segments[0])
			require.Len(t, parents, 1)
			assert.Equal(t, EntryLabel, parents[0].Label())
		})
	}
}

func TestBinaryParseTruncated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.bin")
	require.NoError(t, os.WriteFile(path, []byte{0x00, 0x85, 0x18}, 0600))

	_, err := NewBinaryParser(0, binary.BigEndian).Parse(path)
	assert.ErrorContains(t, err, "not a multiple of the word size")
}

func TestResolveJumpTarget(t *testing.T) {
	assert.Equal(t, uint64(0x8d9d8), asmparser.ResolveJumpTarget(0x1100c, 0x023676))
	assert.Equal(t, uint64(0x400010), asmparser.ResolveJumpTarget(0x400008, 0x100004))
	// upper bits come from the delay slot address
	assert.Equal(t, uint64(0x10000040), asmparser.ResolveJumpTarget(0x1ffffff8, 0x10))
	assert.Equal(t, uint64(0x20000040), asmparser.ResolveJumpTarget(0x1ffffffc, 0x10))
}
