package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	keyName    = "name"
	keyBaseURL = "glances_api_url"
)

// Load reads a YAML sequence of {name, glances_api_url} mappings.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &Error{Kind: ErrKindNotFound, Path: path, Err: err}
		}
		return nil, &Error{Kind: ErrKindParse, Path: path, Err: fmt.Errorf("read: %w", err)}
	}
	return Parse(path, data)
}

// Parse builds a Registry from YAML bytes; path is only used in errors.
func Parse(path string, data []byte) (*Registry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &Error{Kind: ErrKindParse, Path: path, Err: err}
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, &Error{Kind: ErrKindParse, Path: path, Err: errors.New("configuration file should contain a list of servers")}
	}
	root := doc.Content[0]
	if root.Kind != yaml.SequenceNode {
		return nil, &Error{Kind: ErrKindParse, Path: path, Err: errors.New("configuration file should contain a list of servers")}
	}

	endpoints := make([]Endpoint, 0, len(root.Content))
	for i, item := range root.Content {
		ep, err := decodeEndpoint(item)
		if err != nil {
			return nil, &Error{Kind: ErrKindValidation, Path: path, Err: fmt.Errorf("server #%d (line %d): %w", i+1, item.Line, err)}
		}
		endpoints = append(endpoints, ep)
	}

	reg, err := New(endpoints)
	if err != nil {
		return nil, &Error{Kind: ErrKindValidation, Path: path, Err: err}
	}
	return reg, nil
}

func decodeEndpoint(n *yaml.Node) (Endpoint, error) {
	if n.Kind != yaml.MappingNode {
		return Endpoint{}, errors.New("each server should be a mapping with 'name' and 'glances_api_url'")
	}
	var ep Endpoint
	var haveName, haveURL bool
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, val := n.Content[i], n.Content[i+1]
		switch key.Value {
		case keyName:
			s, err := scalarString(key.Value, val)
			if err != nil {
				return Endpoint{}, err
			}
			ep.Name, haveName = s, true
		case keyBaseURL:
			s, err := scalarString(key.Value, val)
			if err != nil {
				return Endpoint{}, err
			}
			ep.BaseURL, haveURL = s, true
		}
	}
	if !haveName {
		return Endpoint{}, fmt.Errorf("missing %q", keyName)
	}
	if !haveURL {
		return Endpoint{}, fmt.Errorf("missing %q", keyBaseURL)
	}
	return ep, nil
}

func scalarString(key string, n *yaml.Node) (string, error) {
	if n.Kind != yaml.ScalarNode || n.ShortTag() != "!!str" {
		return "", fmt.Errorf("%q must be a string", key)
	}
	return n.Value, nil
}
