package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"
	gojson "github.com/goccy/go-json"

	structdown "github.com/structdown/structdown"
	"github.com/structdown/structdown/md"
	"github.com/structdown/structdown/render"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "check":
		checkCmd(os.Args[2:])
	case "render":
		renderCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "structdown CLI\n\nUsage:\n  structdown check -manifest types.json|types.yaml [-policy warn|error|ignore] [-plan]\n  structdown render -manifest types.json -root T -value value.json [-sections 1,3] [-exclude 2] [-hard-breaks]")
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var manifest string
	var policy string
	var plan bool
	fs.StringVar(&manifest, "manifest", "", "registry manifest file (.json or .yaml)")
	fs.StringVar(&policy, "policy", "warn", "severity for the table-cell constraint: ignore|warn|error")
	fs.BoolVar(&plan, "plan", false, "print the classification plan as JSON")
	_ = fs.Parse(args)
	if manifest == "" {
		fs.Usage()
		os.Exit(2)
	}

	reg := loadRegistry(manifest)
	opt := structdown.ClassifyOpt{TableCellPolicy: parsePolicy(policy)}
	shapes, diags, err := structdown.ClassifyAll(reg, opt)
	if err != nil {
		fatalf("classify: %v", err)
	}
	printDiagnostics(diags)
	if plan {
		for _, s := range shapes {
			data, err := structdown.MarshalPlan(s)
			if err != nil {
				fatalf("plan: %v", err)
			}
			fmt.Println(string(data))
		}
	}
	if diags.HasErrors() {
		os.Exit(1)
	}
}

func renderCmd(args []string) {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	var manifest string
	var root string
	var valueFile string
	var sections string
	var exclude string
	var hardBreaks bool
	fs.StringVar(&manifest, "manifest", "", "registry manifest file (.json or .yaml)")
	fs.StringVar(&root, "root", "", "root type name")
	fs.StringVar(&valueFile, "value", "", "JSON file with the object value")
	fs.StringVar(&sections, "sections", "", "comma-separated section numbers to include")
	fs.StringVar(&exclude, "exclude", "", "comma-separated section numbers to exclude")
	fs.BoolVar(&hardBreaks, "hard-breaks", false, "emit field lines with hard line breaks")
	_ = fs.Parse(args)
	if manifest == "" || root == "" || valueFile == "" {
		fs.Usage()
		os.Exit(2)
	}

	reg := loadRegistry(manifest)
	shape, diags, err := structdown.Classify(reg, root, structdown.ClassifyOpt{})
	if err != nil {
		fatalf("classify: %v", err)
	}
	printDiagnostics(diags)

	data, err := os.ReadFile(valueFile)
	if err != nil {
		fatalf("reading value: %v", err)
	}
	var value map[string]any
	if err := gojson.Unmarshal(data, &value); err != nil {
		fatalf("decoding value: %v", err)
	}

	w := md.NewWriter(os.Stdout, md.Options{
		HardLineBreaks:  hardBreaks,
		IncludeSections: parseSections(sections),
		ExcludeSections: parseSections(exclude),
	})
	if err := render.Document(w, shape, value); err != nil {
		fatalf("render: %v", err)
	}
}

func loadRegistry(path string) *structdown.Registry {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading manifest: %v", err)
	}
	var reg *structdown.Registry
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		reg, err = structdown.RegistryFromYAML(data)
	default:
		reg, err = structdown.RegistryFromJSON(data)
	}
	if err != nil {
		fatalf("%v", err)
	}
	return reg
}

func parsePolicy(s string) structdown.Severity {
	switch s {
	case "ignore":
		return structdown.Ignore
	case "error":
		return structdown.Error
	default:
		return structdown.Warn
	}
}

func parseSections(s string) []int {
	if s == "" {
		return nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 {
			fatalf("invalid section number %q", part)
		}
		out = append(out, n)
	}
	return out
}

func printDiagnostics(diags structdown.Diagnostics) {
	warn := color.New(color.FgYellow).SprintFunc()
	errc := color.New(color.FgRed).SprintFunc()
	for _, d := range diags {
		sev := warn(d.Severity.String())
		if d.Severity == structdown.Error {
			sev = errc(d.Severity.String())
		}
		fmt.Fprintf(os.Stderr, "%s %s: %s.%s: %s\n", sev, d.Code, d.Type, d.Field, d.Message)
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
