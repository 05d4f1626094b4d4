// Package analyzer provides an interface for analyzing MIPS programs for compatibility issues.
package analyzer

// Analyzer represents the interface for the analyzer.
type Analyzer interface {
	// Analyze analyzes the program at path and returns any issues found.
	Analyze(path string, withTrace bool) ([]*Issue, error)

	// TraceStack generates callstack for a function to debug
	TraceStack(path string, function string) (*CallStack, error)
}

// IssueSeverity represents the severity level of an issue.
type IssueSeverity string

const (
	IssueSeverityCritical IssueSeverity = "CRITICAL"
	IssueSeverityWarning  IssueSeverity = "WARNING"
)

// Issue represents a single issue found by the analyzer.
type Issue struct {
	CallStack *CallStack    `json:"callStack,omitempty"`
	Message   string        `json:"message"` // A description of the issue.
	Severity  IssueSeverity `json:"severity"`
	Impact    string        `json:"impact,omitempty"`
	Reference string        `json:"reference,omitempty"`
	Address   uint64        `json:"address"`
	Word      uint32        `json:"word"`
}

// CallStack represents a location in the program where the issue originates.
type CallStack struct {
	File      string     `json:"file"`
	Line      int        `json:"line"`                // The line of the segment start.
	Function  string     `json:"function"`            // The segment label.
	AbsPath   string     `json:"absPath"`             // The absolute file path.
	CallStack *CallStack `json:"callStack,omitempty"` // The caller of Function.
}

// Copy creates a deep copy of the CallStack.
func (src *CallStack) Copy() *CallStack {
	if src == nil {
		return nil
	}
	return &CallStack{
		File:      src.File,
		Line:      src.Line,
		Function:  src.Function,
		AbsPath:   src.AbsPath,
		CallStack: src.CallStack.Copy(),
	}
}

// AddCallStack appends stack at the end of the chain.
func (src *CallStack) AddCallStack(stack *CallStack) {
	if src.CallStack == nil {
		src.CallStack = stack
		return
	}
	src.CallStack.AddCallStack(stack)
}

// Depth returns the number of frames in the chain.
func (src *CallStack) Depth() int {
	depth := 0
	for s := src; s != nil; s = s.CallStack {
		depth++
	}
	return depth
}
