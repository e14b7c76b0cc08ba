package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	js "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/ggoodman/slashcmd-go/command"
)

// ErrUnsupportedFormat is returned for files that are neither YAML nor JSON.
var ErrUnsupportedFormat = errors.New("manifest: unsupported file extension")

// DocumentError ties a load failure to the document it came from.
type DocumentError struct {
	Source string
	Err    error
}

func (e *DocumentError) Error() string { return fmt.Sprintf("manifest: %s: %v", e.Source, e.Err) }

func (e *DocumentError) Unwrap() error { return e.Err }

const schemaURL = "slashcmd://document.schema.json"

var documentSchema = sync.OnceValues(func() ([]byte, error) {
	r := &js.Reflector{Anonymous: true, RequiredFromJSONSchemaTags: true}
	s := r.Reflect(&Document{})
	s.Title = "slash command definition"
	return json.MarshalIndent(s, "", "  ")
})

var documentValidator = sync.OnceValues(func() (*jsonschema.Schema, error) {
	raw, err := documentSchema()
	if err != nil {
		return nil, err
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(schemaURL, bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return compiler.Compile(schemaURL)
})

// DocumentSchema returns the JSON Schema every definition document is
// validated against.
func DocumentSchema() ([]byte, error) {
	raw, err := documentSchema()
	if err != nil {
		return nil, fmt.Errorf("manifest: reflect document schema: %w", err)
	}
	return bytes.Clone(raw), nil
}

// Parse decodes a definition document. The format is chosen by the
// extension of name: .yaml/.yml for YAML, .json/.jsonc for JSON with
// comments and trailing commas.
func Parse(name string, data []byte) (*command.Definition, error) {
	doc, err := ParseDocument(name, data)
	if err != nil {
		return nil, err
	}
	def, err := doc.Definition()
	if err != nil {
		return nil, &DocumentError{Source: name, Err: err}
	}
	return def, nil
}

// ParseDocument decodes and schema-validates a document without converting
// it.
func ParseDocument(name string, data []byte) (*Document, error) {
	raw, err := toJSON(name, data)
	if err != nil {
		return nil, &DocumentError{Source: name, Err: err}
	}
	if err := validate(raw); err != nil {
		return nil, &DocumentError{Source: name, Err: err}
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, &DocumentError{Source: name, Err: err}
	}
	return &doc, nil
}

func toJSON(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		var root yaml.Node
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, err
		}
		if len(root.Content) == 0 {
			return nil, errors.New("empty document")
		}
		v, err := fromYAML(root.Content[0])
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, errors.New("empty document")
		}
		return json.Marshal(v)
	case ".json", ".jsonc":
		return jsonc.ToJSON(data), nil
	default:
		return nil, ErrUnsupportedFormat
	}
}

// fromYAML converts a YAML node into JSON-ready values. Numbers become
// json.Number so a float written as 2.0 stays a float after the JSON hop.
func fromYAML(n *yaml.Node) (any, error) {
	switch n.Kind {
	case yaml.AliasNode:
		return fromYAML(n.Alias)
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return fromYAML(n.Content[0])
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		out := make(map[string]any, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			val, err := fromYAML(v)
			if err != nil {
				return nil, err
			}
			out[k.Value] = val
		}
		return out, nil
	}

	switch n.ShortTag() {
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return json.Number(strconv.FormatInt(i, 10)), nil
	case "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		if math.IsInf(f, 0) || math.IsNaN(f) {
			return nil, fmt.Errorf("line %d: %s is not a finite number", n.Line, n.Value)
		}
		text := strconv.FormatFloat(f, 'g', -1, 64)
		if !strings.ContainsAny(text, ".e") {
			text += ".0"
		}
		return json.Number(text), nil
	}
	var v any
	if err := n.Decode(&v); err != nil {
		return nil, fmt.Errorf("line %d: %w", n.Line, err)
	}
	return v, nil
}

func validate(raw []byte) error {
	v, err := documentValidator()
	if err != nil {
		return fmt.Errorf("compile document schema: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var inst any
	if err := dec.Decode(&inst); err != nil {
		return err
	}
	return v.Validate(inst)
}

// LoadFile reads and parses one definition document.
func LoadFile(name string) (*command.Definition, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Parse(name, data)
}

// LoadGlob parses every document in fsys matching pattern, which may use
// ** to cross directories. Documents are returned in path order. All
// documents are attempted and their errors joined; a command name defined
// by two documents is an error.
func LoadGlob(fsys fs.FS, pattern string) ([]*command.Definition, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("manifest: glob %q: %w", pattern, err)
	}
	sort.Strings(matches)

	var (
		defs []*command.Definition
		errs []error
	)
	sources := make(map[string]string, len(matches))
	for _, m := range matches {
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			errs = append(errs, &DocumentError{Source: m, Err: err})
			continue
		}
		def, err := Parse(m, data)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if prev, dup := sources[def.Name]; dup {
			errs = append(errs, &DocumentError{Source: m, Err: fmt.Errorf("command %q already defined in %s", def.Name, prev)})
			continue
		}
		sources[def.Name] = m
		defs = append(defs, def)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return defs, nil
}
