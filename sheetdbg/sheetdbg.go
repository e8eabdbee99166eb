/*
Package sheetdbg implements helpers to debug a dynamic stylesheet.

______________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>


*/
package sheetdbg

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/dyncss"
	"github.com/xlab/treeprint"
)

// Tree renders the current rules of a sheet as a text tree: one branch
// per rule, tagged with its position, one leaf per declaration.
func Tree(sheet *dyncss.Sheet) treeprint.Tree {
	tree := treeprint.New()
	tree.SetValue("stylesheet")
	for i := 0; i < sheet.Len(); i++ {
		rule := sheet.Rules().Rule(i)
		if rule == nil {
			continue
		}
		branch := tree.AddMetaBranch(i, rule.SelectorText())
		for _, decl := range strings.Split(rule.DeclarationText(), ";") {
			decl = strings.TrimSpace(decl)
			if decl == "" {
				continue
			}
			branch.AddNode(decl)
		}
	}
	return tree
}

// Dump writes the text tree for a sheet to w.
func Dump(sheet *dyncss.Sheet, w io.Writer) {
	fmt.Fprint(w, Tree(sheet).String())
}
