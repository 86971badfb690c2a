package packets

import (
	"bytes"
	"fmt"
	"go/format"
	"path"
	"strings"
)

// EmitOptions controls the Go source produced by the emitters.
type EmitOptions struct {
	// Package is the package clause of every artifact.
	Package string
	// ProtoImport is the import path of the generated protobuf messages.
	ProtoImport string
	// ProtoAlias is the identifier the registry uses for ProtoImport.
	ProtoAlias string
	// Tool names the generator in the "Code generated" header.
	Tool string
}

// DefaultEmitOptions returns the options used by the reliquary library.
func DefaultEmitOptions() EmitOptions {
	return EmitOptions{
		Package:     "reliquary",
		ProtoImport: "github.com/Fesaa/go-reliquary/pb",
		ProtoAlias:  "pb",
		Tool:        "packetgen",
	}
}

const protoRuntimeImport = "google.golang.org/protobuf/proto"

// Source is one emitted Go file.
type Source struct {
	Data []byte
	// FormatErr is set when gofmt rejected the text; Data then holds it unformatted.
	FormatErr error
}

// EmitConstants emits one constant per entry, named verbatim after the entry.
func EmitConstants(entries []PacketEntry, opts EmitOptions) Source {
	var buf bytes.Buffer
	writeHeader(&buf, opts)

	buf.WriteString("const (\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "\t%s = %d\n", e.Name, e.ID)
	}
	buf.WriteString(")\n")

	return formatSource(buf.Bytes())
}

// EmitNames emits the id to name table and the PacketName accessor.
func EmitNames(entries []PacketEntry, opts EmitOptions) Source {
	var buf bytes.Buffer
	writeHeader(&buf, opts)

	buf.WriteString("// PacketName returns the name of the packet with the given id.\n")
	buf.WriteString("// It returns an empty string if the id is unknown.\n")
	buf.WriteString("func PacketName(id uint16) string {\n")
	buf.WriteString("\tif name, ok := packetNames[id]; ok {\n")
	buf.WriteString("\t\treturn name\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn \"\"\n")
	buf.WriteString("}\n\n")

	buf.WriteString("var packetNames = map[uint16]string{\n")
	for _, e := range entries {
		fmt.Fprintf(&buf, "\t%d: %q,\n", e.ID, e.Name)
	}
	buf.WriteString("}\n")

	return formatSource(buf.Bytes())
}

// EmitRegistry emits the id to message factory table and the PacketProto
// accessor. Entries whose id is in excluded are left out.
func EmitRegistry(entries []PacketEntry, excluded ExclusionSet, opts EmitOptions) Source {
	var buf bytes.Buffer
	writeHeader(&buf, opts)

	alias := opts.ProtoAlias
	if alias == "" {
		alias = packageName(opts.ProtoImport)
	}

	buf.WriteString("import (\n")
	if alias != path.Base(opts.ProtoImport) {
		fmt.Fprintf(&buf, "\t%s %q\n", alias, opts.ProtoImport)
	} else {
		fmt.Fprintf(&buf, "\t%q\n", opts.ProtoImport)
	}
	fmt.Fprintf(&buf, "\t%q\n", protoRuntimeImport)
	buf.WriteString(")\n\n")

	if ids := excluded.IDs(); len(ids) > 0 {
		fmt.Fprintf(&buf, "// The commands with ids %s are not registered.\n", formatIDs(ids))
		buf.WriteString("// Their messages are missing or incorrectly mapped in the translated schema.\n")
	} else {
		buf.WriteString("// Every command with a known id is registered.\n")
	}
	buf.WriteString("var packetRegistry = map[uint16]func() proto.Message{\n")
	for _, e := range entries {
		if excluded.Contains(e.ID) {
			continue
		}
		fmt.Fprintf(&buf, "\t%d: func() proto.Message { return &%s.%s{} },\n", e.ID, alias, e.Name)
	}
	buf.WriteString("}\n\n")

	buf.WriteString("// PacketProto returns a new, empty message for the packet with the given id.\n")
	buf.WriteString("// It returns nil if no message is registered for the id.\n")
	buf.WriteString("func PacketProto(id uint16) proto.Message {\n")
	buf.WriteString("\tif factory, ok := packetRegistry[id]; ok {\n")
	buf.WriteString("\t\treturn factory()\n")
	buf.WriteString("\t}\n")
	buf.WriteString("\treturn nil\n")
	buf.WriteString("}\n")

	return formatSource(buf.Bytes())
}

// packageName derives the identifier for an import path, skipping a trailing
// major version element such as /v2. The result is always imported under an
// explicit name when it differs from the last path element.
func packageName(importPath string) string {
	base := path.Base(importPath)
	if dir := path.Dir(importPath); dir != "." && isMajorVersion(base) {
		return path.Base(dir)
	}
	return base
}

func isMajorVersion(elem string) bool {
	if len(elem) < 2 || elem[0] != 'v' {
		return false
	}
	for _, c := range elem[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func writeHeader(buf *bytes.Buffer, opts EmitOptions) {
	tool := opts.Tool
	if tool == "" {
		tool = "packetgen"
	}
	fmt.Fprintf(buf, "// Code generated by %s. DO NOT EDIT.\n\n", tool)
	fmt.Fprintf(buf, "package %s\n\n", opts.Package)
}

func formatIDs(ids []uint16) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprint(id)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func formatSource(src []byte) Source {
	formatted, err := format.Source(src)
	if err != nil {
		return Source{Data: src, FormatErr: err}
	}
	return Source{Data: formatted}
}
