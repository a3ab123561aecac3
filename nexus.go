// SPDX-License-Identifier: MIT

package phylotree

import (
	"fmt"
	"strings"
)

// Nexus returns t wrapped in the minimal Nexus envelope this package
// reads back: a single BEGIN TREES block naming t name.
func (t *Tree) Nexus(name string) string {
	var b strings.Builder
	b.WriteString("BEGIN TREES;\n")
	fmt.Fprintf(&b, "Tree %s=%s\n", name, t.Newick())
	b.WriteString("END;\n")
	return b.String()
}

// ParseNexus reads the first tree out of a minimal
// "BEGIN TREES; Tree <name>=<newick>; END;" envelope and returns it along
// with the name it was declared under. Anything outside that one
// statement (comments, additional blocks, additional trees) is ignored.
func ParseNexus(data []byte) (tree *Tree, name string, err error) {
	text := string(data)

	lower := strings.ToUpper(text)
	begin := strings.Index(lower, "BEGIN TREES")
	if begin < 0 {
		return nil, "", newParseError(0, "missing BEGIN TREES block")
	}

	end := strings.Index(lower[begin:], "END;")
	if end < 0 {
		return nil, "", newParseError(len(text), "missing END; for TREES block")
	}
	body := text[begin : begin+end]

	treeIdx := strings.Index(strings.ToUpper(body), "TREE ")
	if treeIdx < 0 {
		return nil, "", newParseError(begin, "missing Tree statement inside TREES block")
	}
	stmt := body[treeIdx+len("TREE "):]

	eq := strings.IndexByte(stmt, '=')
	if eq < 0 {
		return nil, "", newParseError(begin+treeIdx, "malformed Tree statement: missing '='")
	}
	name = strings.TrimSpace(stmt[:eq])
	newickPart := strings.TrimSpace(stmt[eq+1:])

	semi := strings.IndexByte(newickPart, ';')
	if semi < 0 {
		return nil, "", newParseError(begin+treeIdx, "malformed Tree statement: missing ';'")
	}
	newickPart = newickPart[:semi+1]

	tree, err = ParseNewick([]byte(newickPart))
	if err != nil {
		return nil, "", err
	}
	return tree, name, nil
}
