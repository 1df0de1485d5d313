package bplus

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"bptree/block"
)

// Dumper renders a breadth-first snapshot of a live tree to any
// io.Writer. The zero value colorizes its output; set NoColor to get
// plain text (useful when redirecting to a file or a non-terminal).
type Dumper struct {
	NoColor bool
}

// Dump writes one line per node, indented by level: index nodes first
// (cyan unless NoColor), then leaves (green), each annotated with its
// block ID and key list.
func (d Dumper) Dump(t *Tree, w io.Writer) {
	nodeTag, leafTag := "I", "L"
	if !d.NoColor {
		nodeTag = color.CyanString("I")
		leafTag = color.GreenString("L")
	}

	type queued struct {
		id    block.ID
		level int
	}

	queue := []queued{{t.root, 0}}
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		n := t.get(item.id)
		indent := strings.Repeat("  ", item.level)
		keys := n.Keys()[:n.NumKeys()]

		if item.level == t.depth {
			fmt.Fprintf(w, "%s%s leaf#%d keys=%v\n", indent, leafTag, item.id, keys)
			continue
		}

		fmt.Fprintf(w, "%s%s node#%d keys=%v\n", indent, nodeTag, item.id, keys)
		for i := 0; i <= n.NumKeys(); i++ {
			queue = append(queue, queued{n.Child(i), item.level + 1})
		}
	}
}

// Dump is a convenience wrapper around the default, colorized Dumper.
func (t *Tree) Dump(w io.Writer) {
	Dumper{}.Dump(t, w)
}
