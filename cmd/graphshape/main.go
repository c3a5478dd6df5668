package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/hanpama/graphshape/internal/datadict"
	"github.com/hanpama/graphshape/internal/eventbus"
	"github.com/hanpama/graphshape/internal/language"
	"github.com/hanpama/graphshape/internal/nullable"
	"github.com/hanpama/graphshape/internal/operation"
	"github.com/hanpama/graphshape/internal/otel"
	"github.com/hanpama/graphshape/internal/schema"
	"github.com/hanpama/graphshape/internal/selectionset"
	"github.com/hanpama/graphshape/internal/transport"
)

const rootUsage = `graphshape: typed GraphQL operations from the command line

USAGE:
  graphshape <command> [flags]

COMMANDS:
  hash     Print the persisted-operation identifier of a document
  vars     List the variables an operation declares
  fetch    Send an operation to a GraphQL endpoint
  help     Show help for any command
`

const hashUsage = `hash <file>
  Prints the SHA-256 identifier used for persisted and automatically
  persisted documents. Use - to read standard input.
`

const varsUsage = `vars FLAGS <file>
  -operation <name>   Operation to inspect when the document has several
`

const fetchUsage = `fetch FLAGS:
  -endpoint <url>          GraphQL endpoint (required)
  -file <file>             Document to send (required; - for standard input)
  -schema <file>           SDL to validate the document against before sending
  -operation <name>        Operation to send when the document has several
  -mode <mode>             Document mode: literal, persisted or apq (default: literal)
  -var <path=json>         Set a variable. Repeatable; paths may be dotted,
                           e.g. -var review.stars=5. Use null to send null.
  -header <Key: Value>     Add a request header. Repeatable
  -timeout <duration>      Request timeout, e.g. 10s (default: 30s)
  -max-body <bytes>        Limit the response size (default: unlimited)
  -pretty                  Pretty-print the response
  -debug                   Log requests and retries to stderr
  -otel.endpoint <addr>    OTLP collector endpoint
  -otel.service <name>     OpenTelemetry service name (default: graphshape)
`

var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
	stdin  io.Reader = os.Stdin
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	global := flag.NewFlagSet("graphshape", flag.ContinueOnError)
	global.SetOutput(new(bytes.Buffer))
	if err := global.Parse(args); err != nil {
		fmt.Fprint(stderr, rootUsage)
		return err
	}
	remaining := global.Args()
	if len(remaining) == 0 {
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("missing command")
	}

	cmd, cmdArgs := remaining[0], remaining[1:]
	switch cmd {
	case "hash":
		return cmdHash(cmdArgs)
	case "vars":
		return cmdVars(cmdArgs)
	case "fetch":
		return cmdFetch(cmdArgs)
	case "help":
		return cmdHelp(cmdArgs)
	default:
		fmt.Fprint(stderr, rootUsage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func cmdHelp(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(stdout, rootUsage)
		return nil
	}
	switch args[0] {
	case "hash":
		fmt.Fprint(stdout, hashUsage)
	case "vars":
		fmt.Fprint(stdout, varsUsage)
	case "fetch":
		fmt.Fprint(stdout, fetchUsage)
	default:
		return fmt.Errorf("unknown help topic %q", args[0])
	}
	return nil
}

func readDocument(path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read document: %w", err)
	}
	return string(b), nil
}

func cmdHash(args []string) error {
	if len(args) != 1 {
		fmt.Fprint(stderr, hashUsage)
		return fmt.Errorf("hash takes exactly one file")
	}
	text, err := readDocument(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, operation.Identifier(text))
	return nil
}

func cmdVars(args []string) error {
	opName := ""
	fs := flag.NewFlagSet("vars", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&opName, "operation", opName, "Operation to inspect")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, varsUsage)
		return err
	}
	if fs.NArg() != 1 {
		fmt.Fprint(stderr, varsUsage)
		return fmt.Errorf("vars takes exactly one file")
	}
	text, err := readDocument(fs.Arg(0))
	if err != nil {
		return err
	}
	defs, err := operation.ParseVariables(text, opName)
	if err != nil {
		return err
	}
	for _, d := range defs {
		line := fmt.Sprintf("$%s: %s", d.Name, d.Type)
		if d.HasDefault {
			def, err := json.Marshal(d.DefaultValue)
			if err != nil {
				return err
			}
			line += " = " + string(def)
		}
		if d.Required() {
			line += " (required)"
		}
		fmt.Fprintln(stdout, line)
	}
	return nil
}

type stringListFlag []string

func (s *stringListFlag) String() string { return "" }

func (s *stringListFlag) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func cmdFetch(args []string) error {
	endpoint := ""
	file := ""
	schemaFile := ""
	opName := ""
	mode := operation.ModeLiteral.String()
	timeout := 30 * time.Second
	maxBody := int64(0)
	pretty := false
	debug := false
	otelEndpoint := ""
	otelService := "graphshape"
	var vars, headers stringListFlag

	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	fs.SetOutput(new(bytes.Buffer))
	fs.StringVar(&endpoint, "endpoint", endpoint, "GraphQL endpoint")
	fs.StringVar(&file, "file", file, "Document to send")
	fs.StringVar(&schemaFile, "schema", schemaFile, "SDL to validate against")
	fs.StringVar(&opName, "operation", opName, "Operation to send")
	fs.StringVar(&mode, "mode", mode, "Document mode")
	fs.Var(&vars, "var", "Set a variable")
	fs.Var(&headers, "header", "Add a request header")
	fs.DurationVar(&timeout, "timeout", timeout, "Request timeout")
	fs.Int64Var(&maxBody, "max-body", maxBody, "Limit the response size")
	fs.BoolVar(&pretty, "pretty", pretty, "Pretty-print the response")
	fs.BoolVar(&debug, "debug", debug, "Log requests and retries")
	fs.StringVar(&otelEndpoint, "otel.endpoint", otelEndpoint, "OTLP collector endpoint")
	fs.StringVar(&otelService, "otel.service", otelService, "OpenTelemetry service name")
	if err := fs.Parse(args); err != nil {
		fmt.Fprint(stderr, fetchUsage)
		return err
	}
	if endpoint == "" || file == "" {
		fmt.Fprint(stderr, fetchUsage)
		return fmt.Errorf("-endpoint and -file are required")
	}
	m, err := operation.ParseMode(mode)
	if err != nil {
		return err
	}

	text, err := readDocument(file)
	if err != nil {
		return err
	}
	sch, err := loadSchema(schemaFile, text)
	if err != nil {
		return err
	}
	def, err := definition(sch, text, opName, m)
	if err != nil {
		return err
	}
	values, err := parseVars(vars)
	if err != nil {
		return err
	}
	op, err := operation.New(def, values)
	if err != nil {
		return err
	}

	logger, err := newLogger(debug)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	eventbus.Use(eventbus.New())
	defer eventbus.Use(nil)
	shutdown, err := otel.Setup(otelEndpoint, otelService)
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	opts := []transport.Option{
		transport.WithTimeout(timeout),
		transport.WithMaxBodyBytes(maxBody),
		transport.WithLogger(logger),
	}
	for _, h := range headers {
		k, v, ok := strings.Cut(h, ":")
		if !ok {
			return fmt.Errorf("invalid header %q", h)
		}
		opts = append(opts, transport.WithHeader(strings.TrimSpace(k), strings.TrimSpace(v)))
	}

	res, err := transport.Fetch(context.Background(), transport.NewHTTP(endpoint, opts...), op)
	if err != nil {
		return err
	}
	return printResult(res, pretty)
}

// loadSchema builds the schema from schemaFile and validates text against
// it. Without a schema file only the root types are known.
func loadSchema(schemaFile, text string) (*schema.Schema, error) {
	if schemaFile == "" {
		return schema.MustBuildFromSDL(rootSDL), nil
	}
	sdl, err := os.ReadFile(schemaFile)
	if err != nil {
		return nil, fmt.Errorf("read schema: %w", err)
	}
	doc, err := language.LoadSchema(schemaFile, string(sdl))
	if err != nil {
		return nil, fmt.Errorf("load schema: %w", err)
	}
	if _, err := language.LoadQuery(doc, text); err != nil {
		return nil, fmt.Errorf("validate document: %w", err)
	}
	return schema.BuildFromAST(doc), nil
}

const rootSDL = `
type Query { _: Boolean }
type Mutation { _: Boolean }
type Subscription { _: Boolean }
`

// result is the root shape of an operation sent from the command line. It
// declares no selections; the response is printed as received.
type result struct{ data *datadict.DataDict }

func (r result) DataDict() *datadict.DataDict { return r.data }

func definition(sch *schema.Schema, text, opName string, m operation.Mode) (*operation.Definition[result], error) {
	doc, err := language.ParseQuery(text)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	op, err := language.SelectOperation(doc, opName)
	if err != nil {
		return nil, err
	}
	defs, err := operation.ParseVariables(text, op.Name)
	if err != nil {
		return nil, err
	}

	var root *schema.Type
	switch op.Operation {
	case operation.Mutation:
		root = sch.GetMutationType()
	case operation.Subscription:
		root = sch.GetSubscriptionType()
	default:
		root = sch.GetQueryType()
	}
	if root == nil {
		return nil, fmt.Errorf("schema has no %s type", op.Operation)
	}

	var document operation.Document
	switch m {
	case operation.ModePersistedOnly:
		document = operation.Persisted(operation.Identifier(text))
	case operation.ModeAutomaticallyPersisted:
		document = operation.AutomaticallyPersisted("", text)
	default:
		document = operation.Literal(text)
	}
	return &operation.Definition[result]{
		Name:      op.Name,
		Type:      op.Operation,
		Document:  document,
		Variables: defs,
		Data: selectionset.NewType(selectionset.Definition{
			Name:   op.Name + ".Data",
			Parent: root,
			Schema: sch,
		}, func(d *datadict.DataDict) result { return result{d} }),
	}, nil
}

// parseVars builds the variables object from path=json assignments. Values
// that are not valid JSON are taken as strings.
func parseVars(assignments []string) (operation.Variables, error) {
	obj := []byte(`{}`)
	for _, a := range assignments {
		path, raw, ok := strings.Cut(a, "=")
		if !ok || path == "" {
			return nil, fmt.Errorf("invalid variable %q", a)
		}
		var err error
		if gjson.Valid(raw) {
			obj, err = sjson.SetRawBytes(obj, path, []byte(raw))
		} else {
			obj, err = sjson.SetBytes(obj, path, raw)
		}
		if err != nil {
			return nil, fmt.Errorf("variable %s: %w", path, err)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(obj))
	dec.UseNumber()
	var tree map[string]any
	if err := dec.Decode(&tree); err != nil {
		return nil, err
	}
	vars := make(operation.Variables, len(tree))
	for k, v := range tree {
		if v == nil {
			vars[k] = nullable.Null[any]()
			continue
		}
		vars[k] = nullable.Some(v)
	}
	return vars, nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

func printResult(res *transport.Result[result], pretty bool) error {
	out := map[string]any{}
	if res.HasData {
		out["data"] = res.Data.DataDict()
	} else {
		out["data"] = nil
	}
	if len(res.Errors) > 0 {
		out["errors"] = res.Errors
	}
	if len(res.Extensions) > 0 {
		out["extensions"] = res.Extensions
	}
	var (
		b   []byte
		err error
	)
	if pretty {
		b, err = json.MarshalIndent(out, "", "  ")
	} else {
		b, err = json.Marshal(out)
	}
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, string(b))
	if len(res.Errors) > 0 {
		return errors.New("response carried errors")
	}
	return nil
}
