// Package common holds helpers shared by the analyzers.
package common

import (
	"fmt"
	"path/filepath"

	"github.com/ChainSafe/mipsdec/analyzer"
	"github.com/ChainSafe/mipsdec/asmparser"
	"github.com/ChainSafe/mipsdec/common/lifo"
)

// TraceAsmCaller finds a chain of callers from function up to a segment
// matching endCond. Parents are explored depth first in address order, so the
// result is deterministic.
func TraceAsmCaller(
	filePath string,
	graph asmparser.CallGraph,
	function string,
	endCond func(string) bool,
) (*analyzer.CallStack, error) {
	var start asmparser.Segment
	for _, seg := range graph.Segments() {
		if seg.Label() == function {
			start = seg
			break
		}
	}
	if start == nil {
		return nil, fmt.Errorf("could not find %s in %s", function, filePath)
	}
	return TraceSegment(filePath, graph, start, endCond)
}

// TraceSegment is TraceAsmCaller for an already resolved segment.
func TraceSegment(
	filePath string,
	graph asmparser.CallGraph,
	start asmparser.Segment,
	endCond func(string) bool,
) (*analyzer.CallStack, error) {
	seen := make(map[uint64]bool)
	paths := lifo.New(lifo.New(start))
	for !paths.IsEmpty() {
		path, _ := paths.Pop()
		segment, _ := path.Peek()
		if seen[segment.Address()] {
			continue
		}
		seen[segment.Address()] = true

		if endCond(segment.Label()) {
			return buildCallStack(filePath, path), nil
		}
		parents := graph.ParentsOf(segment)
		// pushed in reverse so the lowest address is explored first
		for i := len(parents) - 1; i >= 0; i-- {
			if seen[parents[i].Address()] {
				continue
			}
			next := path.Copy()
			next.Push(parents[i])
			paths.Push(next)
		}
	}
	return nil, fmt.Errorf("no trace found to root for %s", start.Label())
}

// buildCallStack turns a path, callee at the bottom, into a CallStack chain.
func buildCallStack(filePath string, path *lifo.Stack[asmparser.Segment]) *analyzer.CallStack {
	var root *analyzer.CallStack
	for _, seg := range path.Items() {
		frame := &analyzer.CallStack{
			File:     filepath.Base(filePath),
			Line:     seg.Line(),
			AbsPath:  filePath,
			Function: seg.Label(),
		}
		if root == nil {
			root = frame
			continue
		}
		root.AddCallStack(frame)
	}
	return root
}
