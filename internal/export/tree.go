package export

import (
	"fmt"

	"github.com/funvibe/funqy/internal/evaluator"
	"github.com/xlab/treeprint"
)

// Tree renders the structure of a value: superposition branches with their
// amplitude and probability, tuples with their components.
func Tree(v evaluator.Value) string {
	root := treeprint.NewWithRoot(v.Inspect())
	addValue(root, v)
	return root.String()
}

func addValue(t treeprint.Tree, v evaluator.Value) {
	switch v := v.(type) {
	case *evaluator.Superposition:
		for _, b := range v.Branches {
			label := fmt.Sprintf("%s  amp=%s  p=%.4f", b.Value.Inspect(), b.Amp, b.Amp.Probability())
			if tuple, ok := b.Value.(*evaluator.Tuple); ok && len(tuple.Elements) > 0 {
				addValue(t.AddBranch(label), tuple)
				continue
			}
			t.AddNode(label)
		}
	case *evaluator.Tuple:
		for _, el := range v.Elements {
			if inner, ok := el.(*evaluator.Tuple); ok && len(inner.Elements) > 0 {
				addValue(t.AddBranch(inner.Inspect()), inner)
				continue
			}
			t.AddNode(el.Inspect())
		}
	}
}
