package renderer

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ChainSafe/mipsdec/analyzer"
	"github.com/ChainSafe/mipsdec/profile"
	"github.com/fatih/color"
)

var (
	criticalColor = color.New(color.FgRed, color.Bold)
	warningColor  = color.New(color.FgYellow)
	locationColor = color.New(color.FgHiBlue)
)

// TextRenderer formats the analysis report in a structured text format.
type TextRenderer struct {
	profile *profile.VMProfile
	now     func() time.Time
}

// NewTextRenderer creates a new instance of TextRenderer.
func NewTextRenderer(profile *profile.VMProfile) Renderer {
	return &TextRenderer{profile: profile, now: time.Now}
}

type issueGroup struct {
	severity analyzer.IssueSeverity
	message  string
}

// Render groups issues by severity and message and writes the report.
func (r *TextRenderer) Render(issues []*analyzer.Issue, output io.Writer) error {
	groupedIssues := make(map[issueGroup][]*analyzer.Issue)
	for _, issue := range issues {
		key := issueGroup{severity: issue.Severity, message: issue.Message}
		groupedIssues[key] = append(groupedIssues[key], issue)
	}

	numOfCriticalIssues := 0
	sortedGroups := make([]issueGroup, 0, len(groupedIssues))
	for key := range groupedIssues {
		if key.severity == analyzer.IssueSeverityCritical {
			numOfCriticalIssues++
		}
		sortedGroups = append(sortedGroups, key)
	}
	// criticals first, then by message
	sort.Slice(sortedGroups, func(i, j int) bool {
		a, b := sortedGroups[i], sortedGroups[j]
		if a.severity != b.severity {
			return a.severity == analyzer.IssueSeverityCritical
		}
		return a.message < b.message
	})

	var report strings.Builder
	report.WriteString("==============================\n")
	report.WriteString("MIPS Compatibility Analysis Report\n")
	report.WriteString("==============================\n\n")
	fmt.Fprintf(&report, "VM Name: %s\n", r.profile.VMName)
	fmt.Fprintf(&report, "GOOS: %s\n", r.profile.GOOS)
	fmt.Fprintf(&report, "GOARCH: %s\n", r.profile.GOARCH)
	fmt.Fprintf(&report, "Timestamp: %s\n\n", r.now().UTC().Format("2006-01-02 15:04:05 UTC"))
	report.WriteString("------------------------------\n")
	report.WriteString("Summary of Issues\n")
	report.WriteString("------------------------------\n")
	fmt.Fprintf(&report, "Critical Issues: %d\n", numOfCriticalIssues)
	fmt.Fprintf(&report, "Warnings: %d\n", len(groupedIssues)-numOfCriticalIssues)
	fmt.Fprintf(&report, "Total Issues: %d\n\n", len(groupedIssues))

	if len(groupedIssues) > 0 {
		report.WriteString("------------------------------\n")
		report.WriteString("Detailed Issues\n")
		report.WriteString("------------------------------\n\n")
	}
	for n, key := range sortedGroups {
		group := groupedIssues[key]
		fmt.Fprintf(&report, "%d. [%s] %s\n", n+1, severity(key.severity), key.message)
		if group[0].Impact != "" {
			fmt.Fprintf(&report, "   - Impact: %s\n", group[0].Impact)
		}
		if group[0].Reference != "" {
			fmt.Fprintf(&report, "   - Reference: %s\n", group[0].Reference)
		}
		report.WriteString("   - Occurrences:\n")
		for _, issue := range group {
			fmt.Fprintf(&report, "       0x%08x: %08x", issue.Address, issue.Word)
			report.WriteString(buildCallStack(issue.CallStack, ""))
			report.WriteString("\n")
		}
	}

	_, err := io.WriteString(output, report.String())
	return err
}

func severity(s analyzer.IssueSeverity) string {
	if s == analyzer.IssueSeverityCritical {
		return criticalColor.Sprint(s)
	}
	return warningColor.Sprint(s)
}

func buildCallStack(source *analyzer.CallStack, str string) string {
	if source == nil {
		return str
	}
	location := locationColor.Sprintf("%s:%d", source.File, source.Line)
	str += fmt.Sprintf("\n         -> %s : (%s)", location, source.Function)
	return buildCallStack(source.CallStack, str)
}

// Format returns the format type.
func (r *TextRenderer) Format() string {
	return "text"
}
