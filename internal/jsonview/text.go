package jsonview

import (
	"bufio"
	"io"
	"strings"
)

// WriteText writes n as an indented bullet list, the terminal form of the
// nested list view. Keyed entries print "key: value" for leaves and "key:"
// followed by their children otherwise.
func WriteText(w io.Writer, n *Node) error {
	bw := bufio.NewWriter(w)
	if n.IsLeaf() {
		writeLine(bw, 0, n.Value)
	} else {
		for _, child := range n.Children {
			writeNode(bw, child, 0)
		}
	}
	return bw.Flush()
}

func writeNode(bw *bufio.Writer, n *Node, depth int) {
	label := ""
	if n.HasKey() {
		label = n.Key + ":"
	}
	if n.IsLeaf() {
		if label != "" {
			label += " "
		}
		writeLine(bw, depth, label+n.Value)
		return
	}
	// Unkeyed containers (array items) get a bare bullet so nesting survives.
	writeLine(bw, depth, label)
	depth++
	for _, child := range n.Children {
		writeNode(bw, child, depth)
	}
}

func writeLine(bw *bufio.Writer, depth int, text string) {
	_, _ = bw.WriteString(strings.Repeat("  ", depth))
	_, _ = bw.WriteString("-")
	if text != "" {
		_ = bw.WriteByte(' ')
		_, _ = bw.WriteString(text)
	}
	_ = bw.WriteByte('\n')
}
