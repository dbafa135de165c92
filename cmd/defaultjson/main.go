// Command defaultjson validates and normalizes column default values against
// a schema type.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	defaultjson "github.com/tablekit/defaultjson"
	"github.com/tablekit/defaultjson/types"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "normalize":
		normalizeCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "defaultjson CLI\n\nUsage:\n  defaultjson validate -schema schema.{json,yaml}\n  defaultjson validate -type 'decimal(9, 2)' [default.json]\n  defaultjson normalize -type 'map<...>' [-pretty] [default.json]\n\nNotes:\n  - With -schema, every field default in the document is gate-checked.\n  - With -type, the default value is read from the file argument or stdin.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, typeText string
	fs.StringVar(&schemaPath, "schema", "", "schema document to gate-check (.json or .yaml)")
	fs.StringVar(&typeText, "type", "", "compact type text to validate a single default against")
	_ = fs.Parse(args)

	switch {
	case schemaPath != "":
		data, err := os.ReadFile(schemaPath)
		if err != nil {
			fatalf("read schema: %v", err)
		}
		if isYAMLPath(schemaPath) {
			_, err = defaultjson.LoadSchemaYAML(data)
		} else {
			_, err = defaultjson.LoadSchema(data)
		}
		if err != nil {
			reportIssues(err)
			os.Exit(1)
		}
		fmt.Println("ok")
	case typeText != "":
		t, data := typeAndInput(fs, typeText)
		if _, err := defaultjson.DecodeBytes(t, data); err != nil {
			reportIssues(err)
			os.Exit(1)
		}
		fmt.Println("ok")
	default:
		fs.Usage()
		os.Exit(2)
	}
}

func normalizeCmd(args []string) {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	var typeText string
	var pretty bool
	fs.StringVar(&typeText, "type", "", "compact type text of the default")
	fs.BoolVar(&pretty, "pretty", false, "indent the output")
	_ = fs.Parse(args)
	if typeText == "" {
		fs.Usage()
		os.Exit(2)
	}

	t, data := typeAndInput(fs, typeText)
	v, err := defaultjson.DecodeBytes(t, data)
	if err != nil {
		reportIssues(err)
		os.Exit(1)
	}
	if err := defaultjson.EncodeTo(t, v, os.Stdout, pretty); err != nil {
		fatalf("encode: %v", err)
	}
	fmt.Println()
}

func typeAndInput(fs *flag.FlagSet, typeText string) (types.Type, []byte) {
	t, err := types.ParseType(typeText)
	if err != nil {
		fatalf("parse type: %v", err)
	}
	var data []byte
	if fs.NArg() > 0 {
		data, err = os.ReadFile(fs.Arg(0))
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fatalf("read default: %v", err)
	}
	return t, data
}

func reportIssues(err error) {
	if iss, ok := defaultjson.AsIssues(err); ok {
		for _, it := range iss {
			line := fmt.Sprintf("%s at %s (%s)", it.Code, it.Path, it.Type)
			if it.Message != "" {
				line += ": " + it.Message
			}
			if it.InputFragment != "" {
				line += " in " + it.InputFragment
			}
			fmt.Fprintln(os.Stderr, line)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}

func isYAMLPath(p string) bool {
	return strings.HasSuffix(p, ".yaml") || strings.HasSuffix(p, ".yml")
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
