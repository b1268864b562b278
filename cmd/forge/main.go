package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/reoring/forge"
	gen "github.com/reoring/forge/internal/gen"
	"github.com/reoring/forge/source"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:], os.Stdout)
	case "gen":
		genCmd(os.Args[2:])
	case "schema":
		schemaCmd(os.Stdout)
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "forge CLI\n\nUsage:\n  forge check -f decl.(json|yaml|hcl) [-json] [-v]\n  forge gen -f decl -type T -ctor newT [-pkg p] -o out.go [-v]\n  forge schema\n\nNotes:\n  - gen expects T and the forge.Constructor[*T] named by -ctor to exist in the target package.")
}

func newLogger(verbose bool) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		fatalf("init logger: %v", err)
	}
	return l
}

// loadSpecs reads and validates a declaration file, building a throwaway
// factory so method-name collisions are reported too.
func loadSpecs(path string, log *zap.Logger) (*forge.Factory[any], error) {
	format, err := source.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	log.Debug("decoding declarations", zap.String("path", path), zap.Stringer("format", format))
	raw, err := source.Decode(data, format, path)
	if err != nil {
		return nil, err
	}
	return forge.Create(raw, func(args forge.Args) (any, error) { return args, nil }, forge.WithLogger(log))
}

type checkReport struct {
	File    string            `json:"file"`
	Params  []forge.ParamSpec `json:"params"`
	Methods []string          `json:"methods"`
}

func checkCmd(args []string, w io.Writer) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var file string
	var asJSON, verbose bool
	fs.StringVar(&file, "f", "", "declaration file (.json, .yaml, .yml, .hcl)")
	fs.BoolVar(&asJSON, "json", false, "print the report as JSON")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	_ = fs.Parse(args)
	if file == "" {
		fs.Usage()
		os.Exit(2)
	}
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	f, err := loadSpecs(file, log)
	if err != nil {
		fatalf("%s: %s", file, describe(err))
	}
	report := checkReport{File: file, Params: f.Params(), Methods: f.Methods()}
	if asJSON {
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fatalf("encoding report: %v", err)
		}
		fmt.Fprintln(w, string(out))
		return
	}
	fmt.Fprintf(w, "%s: %d params\n", file, len(report.Params))
	for _, m := range report.Methods {
		fmt.Fprintf(w, "  %s\n", m)
	}
}

func genCmd(args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	var file, typeName, ctor, pkg, out string
	var verbose bool
	fs.StringVar(&file, "f", "", "declaration file (.json, .yaml, .yml, .hcl)")
	fs.StringVar(&typeName, "type", "", "target struct type name")
	fs.StringVar(&ctor, "ctor", "", "name of the forge.Constructor[*T] in the target package")
	fs.StringVar(&pkg, "pkg", "", "package name (default: detected from the output directory)")
	fs.StringVar(&out, "o", "", "output filename")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	_ = fs.Parse(args)
	if file == "" || typeName == "" || ctor == "" || out == "" {
		fs.Usage()
		os.Exit(2)
	}
	log := newLogger(verbose)
	defer func() { _ = log.Sync() }()

	f, err := loadSpecs(file, log)
	if err != nil {
		fatalf("%s: %s", file, describe(err))
	}
	if pkg == "" {
		pkg = detectPackageNameFor(filepath.Dir(out))
	}
	if pkg == "" {
		pkg = "main"
	}
	log.Debug("rendering", zap.String("package", pkg), zap.String("type", typeName), zap.String("out", out))

	code, err := gen.Render(gen.File{Package: pkg, Type: typeName, Ctor: ctor, Params: f.Params()})
	if err != nil {
		fatalf("generate: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		fatalf("creating output dir: %v", err)
	}
	if err := os.WriteFile(out, code, 0o644); err != nil {
		fatalf("writing output: %v", err)
	}
}

func schemaCmd(w io.Writer) {
	out, err := json.MarshalIndent(source.Schema(), "", "  ")
	if err != nil {
		fatalf("encoding schema: %v", err)
	}
	fmt.Fprintln(w, string(out))
}

// describe prefers the localized message for forge errors.
func describe(err error) string {
	if fe, ok := forge.AsError(err); ok {
		return fe.Localize(nil) + " [" + fe.Error() + "]"
	}
	return err.Error()
}

func detectPackageNameFor(dir string) string {
	cmd := exec.Command("go", "list", "-f", "{{.Name}}", dir)
	cmd.Env = os.Environ()
	cmd.Dir = "."
	out, err := cmd.CombinedOutput()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
