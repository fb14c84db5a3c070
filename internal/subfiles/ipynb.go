// Package subfiles pre-converts container formats that have no
// tree-sitter grammar of their own into a format dook can parse and
// inject from. Today that is exactly one conversion: a Jupyter
// notebook (.ipynb, JSON) becomes an "unaligned" Markdown document —
// unaligned because cell boundaries do not line up with the
// notebook's own byte offsets, so any match inside a converted file is
// reported against the converted document, not the original JSON.
// Grounded on the original implementation's ipynb.rs.
package subfiles

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// notebook mirrors the handful of nbformat fields dook's conversion
// actually consults; every other field is ignored by json.Unmarshal.
type notebook struct {
	Cells    []cell       `json:"cells"`
	Metadata notebookMeta `json:"metadata"`
}

type notebookMeta struct {
	LanguageInfo languageInfo `json:"language_info"`
}

type languageInfo struct {
	Name string `json:"name"`
}

type cell struct {
	CellType string          `json:"cell_type"`
	Source   multiLineSource `json:"source"`
	Outputs  []output        `json:"outputs"`
}

type output struct {
	Text      multiLineSource            `json:"text"`
	Traceback multiLineSource            `json:"traceback"`
	Data      map[string]multiLineSource `json:"data"`
}

// multiLineSource decodes nbformat's "string or list of strings"
// convention for cell/output text, identical in spirit to
// internal/config's MultiLineString.
type multiLineSource string

func (m *multiLineSource) UnmarshalJSON(data []byte) error {
	var asString string
	if err := json.Unmarshal(data, &asString); err == nil {
		*m = multiLineSource(asString)

		return nil
	}

	var asLines []string
	if err := json.Unmarshal(data, &asLines); err != nil {
		return fmt.Errorf("decode notebook multi-line field: %w", err)
	}

	*m = multiLineSource(joinLines(asLines))

	return nil
}

func joinLines(lines []string) string {
	var b bytes.Buffer

	for _, l := range lines {
		b.WriteString(l)
	}

	return b.String()
}

// ToUnalignedMarkdown converts a notebook's bytes into a Markdown
// document: Markdown cells pass through as-is; code cells become a
// fenced block tagged with the notebook's kernel language; stream
// text, error tracebacks (tagged "py"), and text/plain rich outputs
// each become their own fenced block following the cell that produced
// them.
func ToUnalignedMarkdown(ipynbBytes []byte) ([]byte, error) {
	var nb notebook
	if err := json.Unmarshal(ipynbBytes, &nb); err != nil {
		return nil, fmt.Errorf("decode notebook: %w", err)
	}

	var out bytes.Buffer

	for _, c := range nb.Cells {
		switch c.CellType {
		case "markdown":
			fmt.Fprintf(&out, "%s\n\n", string(c.Source))
		case "code":
			fmt.Fprintf(&out, "```%s\n%s\n```\n\n", nb.Metadata.LanguageInfo.Name, string(c.Source))
		}

		for _, o := range c.Outputs {
			if o.Text != "" {
				fmt.Fprintf(&out, "```\n%s\n```\n\n", string(o.Text))
			}

			if o.Traceback != "" {
				fmt.Fprintf(&out, "```py\n%s\n```\n\n", string(o.Traceback))
			}

			if text, ok := o.Data["text/plain"]; ok {
				fmt.Fprintf(&out, "```\n%s\n```\n\n", string(text))
			}
		}
	}

	return out.Bytes(), nil
}
