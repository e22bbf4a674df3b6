// Package frontmatter splits, parses and emits YAML front matter blocks
// delimited by "---" lines.
package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrMissingClosingDelimiter indicates the document started with a YAML
// front matter delimiter but did not contain a closing delimiter.
var ErrMissingClosingDelimiter = errors.New("yaml front matter start delimiter found but closing delimiter is missing")

const delimiter = "---"

// Split separates YAML front matter from the Markdown body. Both LF and CRLF
// documents are accepted. If the document does not start with a delimiter,
// had is false and body is the full input.
func Split(content []byte) (fm []byte, body []byte, had bool, err error) {
	nl := "\n"
	if bytes.HasPrefix(content, []byte(delimiter+"\r\n")) {
		nl = "\r\n"
	}

	open := []byte(delimiter + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, nil
	}

	rest := content[len(open):]
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, nil
	}

	closeSeq := []byte(nl + delimiter + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// A closing delimiter on the final line without a trailing newline.
		if bytes.HasSuffix(rest, []byte(nl+delimiter)) {
			return rest[:len(rest)-len(delimiter)], []byte{}, true, nil
		}
		return nil, nil, false, ErrMissingClosingDelimiter
	}

	return rest[:idx+len(nl)], rest[idx+len(closeSeq):], true, nil
}

// Join emits fm between delimiters followed by body. An empty fm yields body unchanged.
func Join(fm []byte, body []byte) []byte {
	if len(fm) == 0 {
		return body
	}
	out := make([]byte, 0, len(fm)+len(body)+2*(len(delimiter)+1)+1)
	out = append(out, delimiter+"\n"...)
	out = append(out, fm...)
	if !bytes.HasSuffix(fm, []byte("\n")) {
		out = append(out, '\n')
	}
	out = append(out, delimiter+"\n"...)
	out = append(out, body...)
	return out
}

// ParseYAML parses raw YAML front matter (without delimiters) into a map.
func ParseYAML(fm []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(fm)) == 0 {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(fm, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Prepend serializes fields and places them in front of body.
func Prepend(fields map[string]any, body []byte) ([]byte, error) {
	fm, err := SerializeYAML(fields)
	if err != nil {
		return nil, err
	}
	return Join(fm, body), nil
}
