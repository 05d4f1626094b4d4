// Package opcode implements analyzer.Analyzer for detecting undecodable and disallowed instructions.
package opcode

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ChainSafe/mipsdec/analyzer"
	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/common"
	"github.com/ChainSafe/mipsdec/decoder"
	"github.com/ChainSafe/mipsdec/profile"
	"github.com/sirupsen/logrus"
)

const (
	undecodableImpact = "The VM cannot decode this word and will halt if execution reaches it."
	disallowedImpact  = "The instruction decodes but the VM profile does not support it."
	referenceURL      = "https://en.wikibooks.org/wiki/MIPS_Assembly/Instruction_Formats"
)

type opcode struct {
	profile *profile.VMProfile
	parser  asmparser.Parser
}

// NewAnalyser returns an analyzer checking every instruction parsed by parser
// against profile.
func NewAnalyser(profile *profile.VMProfile, parser asmparser.Parser) analyzer.Analyzer {
	return &opcode{profile: profile, parser: parser}
}

func (op *opcode) Analyze(path string, withTrace bool) ([]*analyzer.Issue, error) {
	callGraph, err := op.parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing program: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	entrypoint := common.ProgramEntrypoint(op.profile)
	issues := make([]*analyzer.Issue, 0)
	for _, segment := range callGraph.Segments() {
		var source *analyzer.CallStack
		traced := false
		for _, instruction := range segment.Instructions() {
			issue := op.check(instruction)
			if issue == nil {
				continue
			}
			if !traced {
				source = op.trace(absPath, callGraph, segment, entrypoint)
				traced = true
			}
			issue.CallStack = source.Copy()
			if source == nil {
				// unreachable code can not be executed by the VM
				issue.Severity = analyzer.IssueSeverityWarning
				issue.CallStack = &analyzer.CallStack{
					File:     filepath.Base(absPath),
					Line:     segment.Line(),
					AbsPath:  absPath,
					Function: segment.Label(),
				}
			} else if shouldIgnoreSource(source, op.profile) {
				issue.Severity = analyzer.IssueSeverityWarning
			}
			if !withTrace && issue.CallStack != nil {
				issue.CallStack.CallStack = nil
			}
			issues = append(issues, issue)
		}
	}

	logrus.WithFields(logrus.Fields{
		"path":     absPath,
		"segments": len(callGraph.Segments()),
		"issues":   len(issues),
	}).Debug("opcode analysis finished")
	return issues, nil
}

// check returns an issue for an instruction the profile's VM can not run.
func (op *opcode) check(instruction asmparser.Instruction) *analyzer.Issue {
	word := instruction.Word()
	issue := &analyzer.Issue{
		Severity:  analyzer.IssueSeverityCritical,
		Reference: referenceURL,
		Address:   instruction.Address(),
		Word:      uint32(word),
	}

	if err := instruction.Err(); err != nil {
		kind := "Opcode"
		if errors.Is(err, decoder.ErrUnknownFunction) {
			kind = "Function"
		}
		issue.Message = fmt.Sprintf("Unknown %s Detected: Opcode: %s, Funct: %s",
			kind, instruction.OpcodeHex(), instruction.Funct())
		issue.Impact = undecodableImpact
		return issue
	}

	if op.profile.Allows(word.Opcode(), word.Funct()) {
		return nil
	}
	issue.Message = fmt.Sprintf("Potential Incompatible Opcode Detected: Opcode: %s, Funct: %s (%s)",
		instruction.OpcodeHex(), instruction.Funct(), instruction.Decoded().Mnemonic())
	issue.Impact = disallowedImpact
	return issue
}

func (op *opcode) trace(absPath string, graph asmparser.CallGraph, segment asmparser.Segment, entrypoint func(string) bool) *analyzer.CallStack {
	source, err := common.TraceSegment(absPath, graph, segment, entrypoint)
	if err != nil {
		logrus.WithField("segment", segment.Label()).Debug(err)
		return nil
	}
	return source
}

// TraceStack generates callstack for a function to debug
func (op *opcode) TraceStack(path string, function string) (*analyzer.CallStack, error) {
	graph, err := op.parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("error parsing program: %w", err)
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return common.TraceAsmCaller(absPath, graph, function, common.ProgramEntrypoint(op.profile))
}

func shouldIgnoreSource(callStack *analyzer.CallStack, prof *profile.VMProfile) bool {
	for s := callStack; s != nil; s = s.CallStack {
		if prof.IsIgnored(s.Function) {
			return true
		}
	}
	return false
}
