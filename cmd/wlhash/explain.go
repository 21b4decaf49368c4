// ABOUTME: Renders a styled per-round breakdown of a hash for the -explain flag.
// ABOUTME: Shows refinement progress per round and each node's label history using lipgloss.
package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/wlhash/hashing"
)

// shortLabel is how many label characters the explain view shows.
const shortLabel = 12

var (
	explainBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("62")).
				Padding(0, 1)

	explainTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("170"))
	explainHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252"))
	explainDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	explainDigestStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	explainStableStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	explainColStyle = lipgloss.NewStyle().Width(10)
	explainKeyStyle = lipgloss.NewStyle().Width(14)
)

// renderExplain formats rep for a terminal.
func renderExplain(file string, rep *hashing.Report) string {
	var b strings.Builder

	b.WriteString(explainTitleStyle.Render(file))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s %s\n", explainKeyStyle.Render("digest"), explainDigestStyle.Render(rep.Digest))
	fmt.Fprintf(&b, "%s %d nodes, %d edges\n", explainKeyStyle.Render("graph"), rep.Nodes, rep.Edges)
	attr := rep.NodeAttr
	if attr == "" {
		attr = "(degree)"
	}
	fmt.Fprintf(&b, "%s %s\n", explainKeyStyle.Render("initial label"), attr)
	fmt.Fprintf(&b, "%s %d x %d bytes\n", explainKeyStyle.Render("rounds"), rep.Iterations, rep.DigestSize)

	if len(rep.Rounds) > 0 {
		b.WriteString("\n")
		b.WriteString(explainHeaderStyle.Render(
			explainColStyle.Render("round") + explainColStyle.Render("distinct") + explainColStyle.Render("largest")))
		b.WriteString("\n")
		prev := -1
		for _, r := range rep.Rounds {
			largest := 0
			for _, c := range r.Counts {
				largest = max(largest, c.Count)
			}
			line := explainColStyle.Render(fmt.Sprint(r.Round)) +
				explainColStyle.Render(fmt.Sprint(r.Distinct)) +
				explainColStyle.Render(fmt.Sprint(largest))
			if r.Distinct == prev {
				line += explainStableStyle.Render("stable")
			}
			b.WriteString(line)
			b.WriteString("\n")
			prev = r.Distinct
		}
	}

	if len(rep.NodeHashes) > 0 {
		b.WriteString("\n")
		b.WriteString(explainHeaderStyle.Render("node labels by round"))
		b.WriteString("\n")
		names := make([]string, 0, len(rep.NodeHashes))
		for name := range rep.NodeHashes {
			names = append(names, name)
		}
		sort.Strings(names)
		width := 0
		for _, name := range names {
			width = max(width, lipgloss.Width(name))
		}
		nameStyle := lipgloss.NewStyle().Width(width + 2)
		for _, name := range names {
			labels := rep.NodeHashes[name]
			short := make([]string, len(labels))
			for i, l := range labels {
				short[i] = truncate(l, shortLabel)
			}
			fmt.Fprintf(&b, "%s%s\n", nameStyle.Render(name), explainDimStyle.Render(strings.Join(short, " ")))
		}
	}

	return explainBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
