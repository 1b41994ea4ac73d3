// Package format renders parsed filters as filter text, JSON or YAML.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/jvitoroc/filterql/query"
)

type Format string

const (
	Tree Format = "tree"
	Text Format = "text"
	JSON Format = "json"
	YAML Format = "yaml"
)

var Formats = []Format{Tree, Text, JSON, YAML}

func IsFormat(s string) bool {
	return slices.Contains(Formats, Format(s))
}

// Write writes e to w in the given format.
func Write(w io.Writer, f Format, e query.Expression) error {
	switch f {
	case Tree:
		_, err := io.WriteString(w, e.String())
		return err
	case Text:
		_, err := fmt.Fprintln(w, Filter(e))
		return err
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(toNode(e))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(toNode(e)); err != nil {
			return err
		}
		return enc.Close()
	}

	return fmt.Errorf("unknown format '%s'", f)
}

// node is the JSON and YAML shape of an expression. Groups set Operator and
// Children, comparisons set Name, Comparator and Value.
type node struct {
	Operator   string `json:"operator,omitempty" yaml:"operator,omitempty"`
	Children   []node `json:"children,omitempty" yaml:"children,omitempty"`
	Name       string `json:"name,omitempty" yaml:"name,omitempty"`
	Comparator string `json:"comparator,omitempty" yaml:"comparator,omitempty"`
	Value      any    `json:"value,omitempty" yaml:"value,omitempty"`
}

func toNode(e query.Expression) node {
	switch e := e.(type) {
	case *query.Comparison:
		n := node{Name: e.Name, Comparator: e.Comparator.String()}
		if e.Value.Kind == query.NumberLiteral {
			n.Value = e.Value.Number
		} else {
			n.Value = e.Value.Text
		}
		return n
	case *query.Group:
		n := node{Operator: e.Operator.Word()}
		for _, c := range e.Children {
			n.Children = append(n.Children, toNode(c))
		}
		return n
	}

	return node{}
}
