package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command is an argv. It accepts either:
//
//	command: "xterm -e htop"
//
// or:
//
//	command: [xterm, -e, htop]
type Command []string

func (c *Command) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		argv, err := ParseCommand(value.Value)
		if err != nil {
			return err
		}
		*c = argv
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("command entries must be strings")
			}
			out = append(out, item.Value)
		}
		*c = out
		return nil
	default:
		return fmt.Errorf("command must be a string or list of strings")
	}
}

// ParseCommand splits a command line into arguments, honouring single and
// double quotes and backslash escapes.
func ParseCommand(s string) ([]string, error) {
	var out []string
	var buf strings.Builder
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
	}

	for _, r := range s {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}
		if !inSingle && r == '\\' {
			escaped = true
			continue
		}
		if !inDouble && r == '\'' {
			inSingle = !inSingle
			continue
		}
		if !inSingle && r == '"' {
			inDouble = !inDouble
			continue
		}
		if !inSingle && !inDouble {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				flush()
				continue
			}
		}
		buf.WriteRune(r)
	}

	if escaped {
		return nil, fmt.Errorf("unfinished escape in command %q", s)
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command %q", s)
	}

	flush()
	return out, nil
}
