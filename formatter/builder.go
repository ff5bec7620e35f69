// Package formatter renders lint issues as colored, rustc-style
// diagnostics with source snippets and underlines.
package formatter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"unicode"

	"github.com/fatih/color"

	tt "github.com/guicamillo/eslint-plugin-testing-library/internal/types"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	warningStyle = color.New(color.FgHiYellow, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgHiBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
	noteStyle    = color.New(color.FgGreen, color.Bold)
)

// issueFormatter is the interface that wraps the IssueTemplate method.
// Implementations are responsible for formatting specific types of lint
// issues.
type issueFormatter interface {
	IssueTemplate() string
}

// getIssueFormatter returns the appropriate formatter for the given rule.
// Rules carrying auto-fix edits get the fixable variant; everything else
// uses the general one.
func getIssueFormatter(issue tt.Issue) issueFormatter {
	if len(issue.Fixes) > 0 {
		return &FixableIssueFormatter{}
	}
	return &GeneralIssueFormatter{}
}

// GenerateFormattedIssue formats a slice of issues into a human-readable
// string, one diagnostic per issue.
func GenerateFormattedIssue(issues []tt.Issue, snippet *tt.SourceCode) string {
	var builder strings.Builder
	for _, issue := range issues {
		builder.WriteString(buildIssue(issue, snippet, getIssueFormatter(issue)))
	}
	return builder.String()
}

/***** Issue Formatter Builder *****/

type IssueData struct {
	Category        string
	Severity        string
	Rule            string
	Filename        string
	Padding         string
	StartLine       int
	StartColumn     int
	EndLine         int
	EndColumn       int
	MaxLineNumWidth int
	Message         string
	Note            string
	SnippetLines    []string
	CommonIndent    string
}

func buildIssue(issue tt.Issue, snippet *tt.SourceCode, formatter issueFormatter) string {
	startLine := issue.Start.Line
	endLine := issue.End.Line
	maxLineNumWidth := calculateMaxLineNumWidth(endLine)
	padding := strings.Repeat(" ", maxLineNumWidth+1)

	var commonIndent string
	if startLine-1 < 0 || endLine > len(snippet.Lines) || startLine > endLine {
		commonIndent = ""
	} else {
		commonIndent = findCommonIndent(snippet.Lines[startLine-1 : endLine])
	}

	data := IssueData{
		Severity:        issue.Severity.String(),
		Category:        issue.Category,
		Rule:            issue.Rule,
		Filename:        issue.Filename,
		StartLine:       issue.Start.Line,
		StartColumn:     issue.Start.Column,
		EndLine:         issue.End.Line,
		EndColumn:       issue.End.Column,
		Message:         issue.Message,
		Note:            issue.Note,
		MaxLineNumWidth: maxLineNumWidth,
		Padding:         padding,
		CommonIndent:    commonIndent,
		SnippetLines:    snippet.Lines,
	}

	funcMap := template.FuncMap{
		"header":              header,
		"note":                note,
		"snippet":             codeSnippet,
		"underlineAndMessage": underlineAndMessage,
		"fixable":             fixable,
	}

	tmpl := template.Must(template.New("issue").Funcs(funcMap).Parse(formatter.IssueTemplate()))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Sprintf("Error formatting issue: %v", err)
	}
	return buf.String()
}

// utils functions used in the text templates

func header(rule string, severity string, maxLineNumWidth int, filename string, startLine int, startColumn int) string {
	var endString string
	switch severity {
	case "ERROR":
		endString = errorStyle.Sprintf("error: ")
	case "WARNING":
		endString = warningStyle.Sprintf("warning: ")
	case "INFO":
		endString = messageStyle.Sprintf("info: ")
	}

	endString += ruleStyle.Sprintf("%s\n", rule)

	padding := strings.Repeat(" ", maxLineNumWidth)
	endString += lineStyle.Sprintf("%s--> ", padding)
	endString += fileStyle.Sprintf("%s:%d:%d", filename, startLine, startColumn)

	return endString
}

func codeSnippet(snippetLines []string, startLine int, endLine int, maxLineNumWidth int, commonIndent string, padding string) string {
	var endString string
	endString = lineStyle.Sprintf("%s|\n", padding)

	for i := startLine; i <= endLine; i++ {
		if i-1 < 0 || i-1 >= len(snippetLines) {
			continue
		}

		line := strings.TrimPrefix(snippetLines[i-1], commonIndent)
		lineNum := fmt.Sprintf("%*d", maxLineNumWidth, i)

		endString += lineStyle.Sprintf("%s | %s\n", lineNum, line)
	}

	return endString
}

func underlineAndMessage(message string, padding string, startLine int, endLine int, startColumn int, endColumn int, snippetLines []string, commonIndent string) string {
	var endString string
	endString = lineStyle.Sprintf("%s| ", padding)

	if !isValidLineRange(startLine, endLine, snippetLines) {
		endString += messageStyle.Sprintf("%s\n", message)
		return endString
	}

	commonIndentWidth := calculateVisualColumn(commonIndent, len(commonIndent)+1)

	underlineStart := calculateVisualColumn(snippetLines[startLine-1], startColumn) - commonIndentWidth
	if underlineStart < 0 {
		underlineStart = 0
	}

	// single-line spans underline the range, multi-line spans point at the start
	underlineEnd := underlineStart
	if startLine == endLine {
		underlineEnd = calculateVisualColumn(snippetLines[endLine-1], endColumn) - commonIndentWidth
	}
	underlineLength := underlineEnd - underlineStart
	if underlineLength < 1 {
		underlineLength = 1
	}

	endString += fmt.Sprint(strings.Repeat(" ", underlineStart))
	endString += messageStyle.Sprintf("%s\n", strings.Repeat("~", underlineLength))

	endString += lineStyle.Sprintf("%s= ", padding)
	endString += messageStyle.Sprintf("%s\n", message)

	return endString
}

func note(note string) string {
	if note == "" {
		return ""
	}

	var endString string
	endString = noteStyle.Sprint("Note: ")
	endString += lineStyle.Sprintf("%s\n", note)
	return endString
}

func fixable() string {
	return noteStyle.Sprint("Fix: ") + lineStyle.Sprintf("auto-fix available, run with `tlint fix`\n")
}

func isValidLineRange(startLine int, endLine int, snippetLines []string) bool {
	return startLine > 0 &&
		endLine > 0 &&
		startLine <= endLine &&
		startLine <= len(snippetLines) &&
		endLine <= len(snippetLines)
}

func calculateMaxLineNumWidth(endLine int) int {
	return len(fmt.Sprintf("%d", endLine))
}

// calculateVisualColumn calculates the visual column position in a string,
// taking tab characters into account.
func calculateVisualColumn(line string, column int) int {
	if column < 0 {
		return 0
	}
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}

// findCommonIndent finds the common indent in the code snippet.
func findCommonIndent(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	// find first non-empty line's indent
	firstIndent := make([]rune, 0)
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed != "" {
			firstIndent = []rune(line[:len(line)-len(trimmed)])
			break
		}
	}

	if len(firstIndent) == 0 {
		return ""
	}

	// search common indent for all non-empty lines
	for _, line := range lines {
		trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
		if trimmed == "" {
			continue
		}

		currentIndent := []rune(line[:len(line)-len(trimmed)])
		firstIndent = commonPrefix(firstIndent, currentIndent)

		if len(firstIndent) == 0 {
			break
		}
	}

	return string(firstIndent)
}

// commonPrefix finds the common prefix of two rune slices.
func commonPrefix(a, b []rune) []rune {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	for i := 0; i < minLen; i++ {
		if a[i] != b[i] {
			return a[:i]
		}
	}
	return a[:minLen]
}
