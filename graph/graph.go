// Package graph renders a transition table as a Mermaid state diagram or a
// Graphviz DOT digraph.
package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/librescoot/doublestate"
)

// Format selects the output language
type Format string

const (
	FormatMermaid Format = "mermaid"
	FormatDOT     Format = "dot"
)

// Render renders the table in the given format
func Render(t *doublestate.Table, f Format) (string, error) {
	switch f {
	case FormatMermaid:
		return Mermaid(t), nil
	case FormatDOT:
		return DOT(t), nil
	default:
		return "", fmt.Errorf("unknown graph format %q", f)
	}
}

// Mermaid renders the table as a stateDiagram-v2
func Mermaid(t *doublestate.Table) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	names := mermaidNames(t)
	for _, id := range t.States() {
		if names[id] != string(id) {
			fmt.Fprintf(&sb, "\t%s : %s\n", names[id], id)
		}
	}

	fmt.Fprintf(&sb, "\t[*] --> %s\n", names[t.Initial()])
	for _, tr := range t.Transitions() {
		fmt.Fprintf(&sb, "\t%s --> %s : %s\n", names[tr.From], names[tr.To], tr.Kind())
	}
	for _, id := range t.States() {
		if t.KindOf(id) == doublestate.KindTerminal {
			fmt.Fprintf(&sb, "\t%s --> [*]\n", names[id])
		}
	}

	return sb.String()
}

// DOT renders the table as a Graphviz digraph. Linear edges are drawn bold.
func DOT(t *doublestate.Table) string {
	var sb strings.Builder
	sb.WriteString("digraph {\n")
	sb.WriteString("node [shape=Mrecord]\n")
	sb.WriteString("rankdir=\"LR\"\n")

	for _, id := range t.States() {
		fmt.Fprintf(&sb, "%q [label=\"%s\\n%s\"];\n", string(id), escape(string(id)), t.KindOf(id))
	}

	sb.WriteString("init [label=\"\", shape=point];\n")
	fmt.Fprintf(&sb, "init -> %q;\n", string(t.Initial()))

	for _, tr := range t.Transitions() {
		style := ""
		if tr.Linear {
			style = ", style=\"bold\""
		}
		fmt.Fprintf(&sb, "%q -> %q [label=\"%s\"%s];\n", string(tr.From), string(tr.To), tr.Kind(), style)
	}

	sb.WriteString("}\n")
	return sb.String()
}

// mermaidNames assigns every state a unique Mermaid identifier. States whose
// names are already valid keep them; sanitized names that clash with another
// state or alias get a numeric suffix.
func mermaidNames(t *doublestate.Table) map[doublestate.StateID]string {
	names := make(map[doublestate.StateID]string)
	taken := make(map[string]bool)

	for _, id := range t.States() {
		name := sanitize(id)
		if name != string(id) {
			candidate := name
			for n := 1; taken[candidate] || t.Has(doublestate.StateID(candidate)); n++ {
				candidate = fmt.Sprintf("%s_%d", name, n)
			}
			name = candidate
		}
		taken[name] = true
		names[id] = name
	}

	return names
}

// sanitize turns a state name into a Mermaid identifier
func sanitize(id doublestate.StateID) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return r
		}
		return '_'
	}, string(id))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "\"", "\\\"")
}
