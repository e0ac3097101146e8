package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/KimNorgaard/go-altcfg"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"
	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

var fmtCommand = &command{
	Name:    "fmt",
	Summary: "print documents in canonical form",
	Usage:   "fmt [-w | -d] [--indent n] [files...]",
	Run:     runFmt,
}

func runFmt(a *app, flagSet *pflag.FlagSet, args []string) error {
	var (
		write  bool
		diff   bool
		indent int
	)
	flagSet.BoolVarP(&write, "write", "w", false, "write the result to the source file instead of stdout")
	flagSet.BoolVarP(&diff, "diff", "d", false, "print a diff against the canonical form instead")
	flagSet.IntVar(&indent, "indent", 2, "spaces per nesting level")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	if write && diff {
		return usagef("fmt: -w and -d cannot be used together")
	}
	if indent < 0 {
		return usagef("fmt: --indent must not be negative")
	}

	for _, name := range inputs(flagSet.Args()) {
		if write && name == "-" {
			return usagef("fmt: cannot use -w with standard input")
		}
		root, src, err := a.load(name)
		if err != nil {
			return err
		}
		out, err := altcfg.Marshal(root, altcfg.Indent(indent))
		if err != nil {
			return err
		}

		switch {
		case diff:
			if bytes.Equal(src, out) {
				continue
			}
			from := displayName(name)
			if err := a.writeDiff(from, from+" (canonical)", string(src), string(out)); err != nil {
				return err
			}
		case write:
			if bytes.Equal(src, out) {
				a.log.Debug("already canonical", "file", name)
				continue
			}
			if err := writeFile(name, out); err != nil {
				return err
			}
			a.log.Debug("rewrote file", "file", name, "bytes", len(out))
		default:
			if _, err := a.stdout.Write(out); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeFile replaces the contents of an existing file and keeps its
// permissions.
func writeFile(name string, data []byte) error {
	info, err := os.Stat(name)
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, info.Mode().Perm())
}

var getCommand = &command{
	Name:    "get",
	Summary: "print the value at a dotted path",
	Usage:   "get <path> [file]",
	Run:     runGet,
}

func runGet(a *app, flagSet *pflag.FlagSet, args []string) error {
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	rest := flagSet.Args()
	if len(rest) == 0 || len(rest) > 2 {
		return usagef("get: expected a path and at most one file")
	}
	name := "-"
	if len(rest) == 2 {
		name = rest[1]
	}

	root, _, err := a.load(name)
	if err != nil {
		return err
	}
	n := lookupPath(root, rest[0])
	if n.IsNone() {
		a.log.Debug("path not found", "path", rest[0], "file", displayName(name))
		return exitCode(exitFalse)
	}
	if s, err := n.ToString(); err == nil {
		_, err = fmt.Fprintln(a.stdout, s)
		return err
	}
	return altcfg.Emit(a.stdout, n)
}

// lookupPath follows a dotted path of mapping keys and list indexes from
// n. An empty path or "." selects n itself. The tree is never modified; a
// path that leads nowhere yields nil.
func lookupPath(n *altcfg.Node, path string) *altcfg.Node {
	if path == "" || path == "." {
		return n
	}
	for _, seg := range strings.Split(path, ".") {
		switch {
		case n.IsDict():
			v, ok := n.Lookup(seg)
			if !ok {
				return nil
			}
			n = v
		case n.IsList():
			i, err := strconv.Atoi(seg)
			if err != nil {
				return nil
			}
			n = n.Index(i)
		default:
			return nil
		}
	}
	return n
}

var convertCommand = &command{
	Name:    "convert",
	Summary: "convert a document to JSON or YAML",
	Usage:   "convert [-o json|yaml] [file]",
	Run:     runConvert,
}

func runConvert(a *app, flagSet *pflag.FlagSet, args []string) error {
	var output string
	flagSet.StringVarP(&output, "output", "o", "json", "output format: json or yaml")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	if output != "json" && output != "yaml" {
		return usagef("convert: unknown output format %q", output)
	}
	name, err := singleInput("convert", flagSet.Args())
	if err != nil {
		return err
	}

	root, _, err := a.load(name)
	if err != nil {
		return err
	}
	if output == "yaml" {
		enc := yaml.NewEncoder(a.stdout)
		enc.SetIndent(2)
		if err := enc.Encode(root); err != nil {
			return err
		}
		return enc.Close()
	}
	b, err := json.MarshalIndent(root, "", "  ")
	if err != nil {
		return err
	}
	_, err = a.stdout.Write(append(b, '\n'))
	return err
}

var importCommand = &command{
	Name:    "import",
	Summary: "convert JSON (comments allowed) or YAML to canonical form",
	Usage:   "import [-f json|yaml] [file]",
	Run:     runImport,
}

func runImport(a *app, flagSet *pflag.FlagSet, args []string) error {
	var from string
	flagSet.StringVarP(&from, "from", "f", "", "input format: json or yaml (default: by file extension, else json)")
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	name, err := singleInput("import", flagSet.Args())
	if err != nil {
		return err
	}
	if from == "" {
		from = formatOf(name)
	}

	var decode func([]byte) (*altcfg.Node, error)
	switch from {
	case "json":
		decode = fromJSON
	case "yaml":
		decode = fromYAML
	default:
		return usagef("import: unknown input format %q", from)
	}

	data, err := a.readInput(name)
	if err != nil {
		return err
	}
	root, err := decode(data)
	if err != nil {
		return fmt.Errorf("%s: %w", displayName(name), err)
	}
	if !root.IsDict() {
		return fmt.Errorf("%s: top-level value must be a mapping, got %s", displayName(name), root.Kind())
	}
	a.log.Debug("imported document", "file", displayName(name), "format", from, "entries", root.Len())
	return altcfg.Emit(a.stdout, root)
}

func formatOf(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return "yaml"
	}
	return "json"
}

// fromJSON decodes JSON with comments and trailing commas. Numbers keep
// their source text.
func fromJSON(data []byte) (*altcfg.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(jsonc.ToJSON(data)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return altcfg.ValueOf(v)
}

// fromYAML decodes YAML through its node tree so scalars keep their source
// text. Null values become none nodes.
func fromYAML(data []byte) (*altcfg.Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 {
		return altcfg.Dict(nil), nil
	}
	return yamlToNode(&doc)
}

func yamlToNode(y *yaml.Node) (*altcfg.Node, error) {
	switch y.Kind {
	case yaml.DocumentNode:
		if len(y.Content) == 0 {
			return altcfg.Dict(nil), nil
		}
		return yamlToNode(y.Content[0])
	case yaml.AliasNode:
		return yamlToNode(y.Alias)
	case yaml.ScalarNode:
		if y.ShortTag() == "!!null" {
			return altcfg.None(), nil
		}
		return altcfg.Scalar(y.Value), nil
	case yaml.SequenceNode:
		list := altcfg.List()
		for _, c := range y.Content {
			v, err := yamlToNode(c)
			if err != nil {
				return nil, err
			}
			if err := list.Append(v); err != nil {
				return nil, err
			}
		}
		return list, nil
	case yaml.MappingNode:
		dict := altcfg.Dict(nil)
		for i := 0; i+1 < len(y.Content); i += 2 {
			k, v := y.Content[i], y.Content[i+1]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			if k.ShortTag() == "!!merge" {
				return nil, fmt.Errorf("line %d: merge keys are not supported", k.Line)
			}
			val, err := yamlToNode(v)
			if err != nil {
				return nil, err
			}
			if err := dict.Set(k.Value, val); err != nil {
				return nil, err
			}
		}
		return dict, nil
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node", y.Line)
}

var sumCommand = &command{
	Name:    "sum",
	Summary: "print BLAKE3 checksums of the canonical forms",
	Usage:   "sum [files...]",
	Run:     runSum,
}

func runSum(a *app, flagSet *pflag.FlagSet, args []string) error {
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	for _, name := range inputs(flagSet.Args()) {
		root, _, err := a.load(name)
		if err != nil {
			return err
		}
		out, err := altcfg.Marshal(root)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(a.stdout, "%x  %s\n", blake3.Sum256(out), name); err != nil {
			return err
		}
	}
	return nil
}

var diffCommand = &command{
	Name:    "diff",
	Summary: "compare the canonical forms of two documents",
	Usage:   "diff <file> <file>",
	Run:     runDiff,
}

func runDiff(a *app, flagSet *pflag.FlagSet, args []string) error {
	if err := parseFlags(flagSet, args); err != nil {
		return err
	}
	rest := flagSet.Args()
	if len(rest) != 2 {
		return usagef("diff: expected two files")
	}

	var canonical [2][]byte
	for i, name := range rest {
		root, _, err := a.load(name)
		if err != nil {
			return err
		}
		if canonical[i], err = altcfg.Marshal(root); err != nil {
			return err
		}
	}
	if bytes.Equal(canonical[0], canonical[1]) {
		return nil
	}
	if err := a.writeDiff(rest[0], rest[1], string(canonical[0]), string(canonical[1])); err != nil {
		return err
	}
	return exitCode(exitFalse)
}

func singleInput(cmd string, args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	}
	return "", usagef("%s: expected at most one file", cmd)
}
