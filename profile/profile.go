// Package profile loads VM profiles describing which instructions a target VM supports.
package profile

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// VMProfile represents the configuration for a specific VM.
type VMProfile struct {
	VMName           string              `json:"vm" yaml:"vm"`
	GOOS             string              `json:"goos" yaml:"goos"`
	GOARCH           string              `json:"goarch" yaml:"goarch"`
	AllowedOpcodes   []OpcodeInstruction `json:"allowed_opcodes" yaml:"allowed_opcodes"`
	IgnoredFunctions []string            `json:"ignored_functions" yaml:"ignored_functions"`
	Entrypoints      []string            `json:"entrypoints" yaml:"entrypoints"`
}

// OpcodeInstruction allows an opcode. Funct restricts opcode 0 to the listed
// function codes.
type OpcodeInstruction struct {
	Opcode string   `json:"opcode" yaml:"opcode"`
	Funct  []string `json:"funct" yaml:"funct"`
}

// LoadProfile loads a VM profile from a YAML or JSON file, chosen by extension.
func LoadProfile(filename string) (*VMProfile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open profile: %w", err)
	}

	var profile VMProfile
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		err = json.Unmarshal(data, &profile)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &profile)
	default:
		return nil, fmt.Errorf("unsupported profile format: %s", filename)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile: %w", err)
	}
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile %s: %w", filename, err)
	}
	return &profile, nil
}

// Validate checks the architecture and that all codes are integers.
func (p *VMProfile) Validate() error {
	if _, err := p.ByteOrder(); err != nil {
		return err
	}
	for _, allowed := range p.AllowedOpcodes {
		if _, err := parseCode(allowed.Opcode); err != nil {
			return fmt.Errorf("opcode %q: %w", allowed.Opcode, err)
		}
		for _, funct := range allowed.Funct {
			if _, err := parseCode(funct); err != nil {
				return fmt.Errorf("funct %q of opcode %s: %w", funct, allowed.Opcode, err)
			}
		}
	}
	return nil
}

// ByteOrder returns the instruction word order of the profile architecture.
func (p *VMProfile) ByteOrder() (binary.ByteOrder, error) {
	switch p.GOARCH {
	case "mips":
		return binary.BigEndian, nil
	case "mipsle":
		return binary.LittleEndian, nil
	default:
		return nil, fmt.Errorf("unsupported GOARCH: %q", p.GOARCH)
	}
}

// Allows reports whether the profile supports an instruction. funct is only
// consulted for opcode 0. A profile without allowed opcodes allows everything.
func (p *VMProfile) Allows(opcode, funct uint8) bool {
	if len(p.AllowedOpcodes) == 0 {
		return true
	}
	return slices.ContainsFunc(p.AllowedOpcodes, func(instr OpcodeInstruction) bool {
		code, err := parseCode(instr.Opcode)
		if err != nil || code != uint64(opcode) {
			return false
		}
		if opcode != 0 || len(instr.Funct) == 0 {
			return true
		}
		return slices.ContainsFunc(instr.Funct, func(s string) bool {
			f, err := parseCode(s)
			return err == nil && f == uint64(funct)
		})
	})
}

// IsIgnored reports whether issues inside function are downgraded.
func (p *VMProfile) IsIgnored(function string) bool {
	return slices.Contains(p.IgnoredFunctions, function)
}

func parseCode(s string) (uint64, error) {
	return strconv.ParseUint(strings.TrimSpace(s), 0, 8) // auto detect base
}
