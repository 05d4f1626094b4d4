// Package disassembler produces objdump listings from ELF binaries so they can
// be read by the listing parser.
package disassembler

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

// DefaultTool is the objdump binary used when none is configured.
const DefaultTool = "objdump"

type Disassembler interface {
	// Disassemble writes the listing of the ELF at target to outputPath.
	Disassemble(ctx context.Context, target string, outputPath string) error
}

type Objdump struct {
	Tool string
	Args []string
}

// New returns an objdump disassembler. An empty tool selects DefaultTool.
func New(tool string) *Objdump {
	if tool == "" {
		tool = DefaultTool
	}
	return &Objdump{Tool: tool, Args: []string{"-d"}}
}

func (o *Objdump) Disassemble(ctx context.Context, target string, outputPath string) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to get absolute path of %s: %w", target, err)
	}

	args := append(append([]string{}, o.Args...), absTarget)
	//nolint:gosec
	cmd := exec.CommandContext(ctx, o.Tool, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("failed to disassemble %s: %w\nOutput:\n%s", target, err, exitErr.Stderr)
		}
		return fmt.Errorf("failed to disassemble %s: %w", target, err)
	}

	if err := os.WriteFile(outputPath, output, 0600); err != nil {
		return fmt.Errorf("failed to write to output file: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"tool":   o.Tool,
		"target": absTarget,
		"bytes":  len(output),
	}).Debug("disassembly written")
	return nil
}

// ToListing disassembles target into a temporary file and returns its path
// with a cleanup function.
func ToListing(ctx context.Context, d Disassembler, target string) (string, func(), error) {
	dir, err := os.MkdirTemp("", "mipsdec")
	if err != nil {
		return "", nil, err
	}
	cleanup := func() {
		_ = os.RemoveAll(dir)
	}
	listing := filepath.Join(dir, filepath.Base(target)+".s")
	if err := d.Disassemble(ctx, target, listing); err != nil {
		cleanup()
		return "", nil, err
	}
	return listing, cleanup, nil
}
