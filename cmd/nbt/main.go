// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/tagforge/nbt/lib/buffer"
	"github.com/tagforge/nbt/lib/compress"
	"github.com/tagforge/nbt/lib/convert"
	"github.com/tagforge/nbt/lib/mapper"
	"github.com/tagforge/nbt/lib/pretty"
	"github.com/tagforge/nbt/lib/snbt"
	"github.com/tagforge/nbt/lib/stream"
	"github.com/tagforge/nbt/lib/tag"
	"github.com/tagforge/nbt/lib/version"
	"github.com/tagforge/nbt/lib/wire"
)

func main() {
	os.Exit(run())
}

// options holds the parsed command line.
type options struct {
	inputPath   string
	readFormat  string
	writeFormat string
	outputPath  string
	compression string
	asJSON      bool
	asYAML      bool
	quota       int64
	noQuota     bool
	maxDepth    int
	noColor     bool
}

func run() int {
	var parsed options

	flagSet := pflag.NewFlagSet("nbt", pflag.ContinueOnError)
	flagSet.StringVar(&parsed.readFormat, "format", "named", "input layout: named, value, file, network, snbt")
	flagSet.StringVar(&parsed.writeFormat, "write-format", "", "re-encode layout for --out: named, value, file, network, snbt")
	flagSet.StringVar(&parsed.outputPath, "out", "", "write converted output to this file instead of printing")
	flagSet.StringVar(&parsed.compression, "compress", "none", "compression for --out: none, gzip, zlib, lz4")
	flagSet.BoolVar(&parsed.asJSON, "json", false, "print the tree as JSON")
	flagSet.BoolVar(&parsed.asYAML, "yaml", false, "print the tree as YAML")
	flagSet.Int64Var(&parsed.quota, "quota", stream.DefaultQuota, "read quota in estimated bytes")
	flagSet.BoolVar(&parsed.noQuota, "no-quota", false, "disable the read quota")
	flagSet.IntVar(&parsed.maxDepth, "max-depth", stream.DefaultMaxDepth, "maximum nesting depth")
	flagSet.BoolVar(&parsed.noColor, "no-color", false, "disable colorized output")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing to match other tools.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("nbt %s\n", version.Info())
		return 0
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return 0
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0
	}

	switch flagSet.NArg() {
	case 0:
		parsed.inputPath = "-"
	case 1:
		parsed.inputPath = flagSet.Arg(0)
	default:
		fmt.Fprintf(os.Stderr, "error: expected one input file, got %d\n", flagSet.NArg())
		return 2
	}

	node, err := readTree(parsed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}

	if err := emit(parsed, node); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Println("usage: nbt [flags] [file]")
	fmt.Println()
	fmt.Println("Reads NBT (binary or SNBT, compression auto-detected) and prints or")
	fmt.Println("re-encodes it.")
	fmt.Println()
	fmt.Println(flagSet.FlagUsages())
}

// readTree loads, decompresses, and decodes the input into the
// canonical tree.
func readTree(parsed options) (tag.Node, error) {
	var source io.Reader = os.Stdin
	if parsed.inputPath != "-" {
		file, err := os.Open(parsed.inputPath)
		if err != nil {
			return tag.Node{}, err
		}
		defer file.Close()
		source = file
	}

	_, decompressed, err := compress.NewReader(source)
	if err != nil {
		return tag.Node{}, err
	}
	defer decompressed.Close()

	limitOptions := []stream.Option{
		stream.WithQuota(parsed.quota),
		stream.WithMaxDepth(parsed.maxDepth),
	}
	if parsed.noQuota {
		limitOptions = append(limitOptions, stream.WithUnlimitedQuota())
	}

	switch parsed.readFormat {
	case "named":
		return stream.NewReader(decompressed, mapper.Nodes, limitOptions...).ReadNamed()
	case "value":
		return stream.NewReader(decompressed, mapper.Nodes, limitOptions...).ReadValue()
	case "file":
		return stream.NewReader(decompressed, mapper.Nodes, limitOptions...).ReadFile()
	case "network":
		data, err := io.ReadAll(decompressed)
		if err != nil {
			return tag.Node{}, err
		}
		reader := buffer.NewNetworkReader(wire.NewBufferFrom(data), mapper.Nodes,
			buffer.WithMaxDepth(parsed.maxDepth))
		return reader.ReadNamed()
	case "snbt":
		data, err := io.ReadAll(decompressed)
		if err != nil {
			return tag.Node{}, err
		}
		parseOptions := []snbt.Option{
			snbt.WithQuota(parsed.quota),
			snbt.WithMaxDepth(parsed.maxDepth),
		}
		if parsed.noQuota {
			parseOptions = append(parseOptions, snbt.WithUnlimitedQuota())
		}
		return snbt.ParseNode(string(data), parseOptions...)
	default:
		return tag.Node{}, fmt.Errorf("unknown input format %q", parsed.readFormat)
	}
}

// emit prints the tree, or re-encodes it when --out is given.
func emit(parsed options, node tag.Node) error {
	if parsed.outputPath != "" {
		return writeTree(parsed, node)
	}

	switch {
	case parsed.asJSON:
		data, err := convert.ToJSONIndent(node)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case parsed.asYAML:
		data, err := convert.ToYAML(node)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		color := !parsed.noColor && term.IsTerminal(int(os.Stdout.Fd()))
		rendered, err := pretty.NewPrinter(pretty.WithColor(color)).Render(node)
		if err != nil {
			return err
		}
		fmt.Println(rendered)
	}
	return nil
}

// writeTree re-encodes the tree to --out in --write-format, wrapped
// in --compress.
func writeTree(parsed options, node tag.Node) error {
	if parsed.writeFormat == "" {
		return fmt.Errorf("--out requires --write-format")
	}
	format, err := compress.ParseFormat(parsed.compression)
	if err != nil {
		return err
	}

	file, err := os.Create(parsed.outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	compressed, err := compress.NewWriter(file, format)
	if err != nil {
		return err
	}

	switch parsed.writeFormat {
	case "named":
		err = stream.NewWriter(compressed, mapper.Nodes).WriteNamed("", node)
	case "value":
		err = stream.NewWriter(compressed, mapper.Nodes).WriteValue(node)
	case "file":
		err = stream.NewWriter(compressed, mapper.Nodes).WriteFile(0, node)
	case "network":
		staging := wire.NewBuffer()
		if err = buffer.NewNetworkWriter(staging, mapper.Nodes).WriteNamed("", node); err == nil {
			_, err = compressed.Write(staging.Bytes())
		}
	case "snbt":
		var text string
		if text, err = snbt.WriteNode(node); err == nil {
			_, err = io.WriteString(compressed, text)
		}
	default:
		err = fmt.Errorf("unknown output format %q", parsed.writeFormat)
	}
	if err != nil {
		return err
	}

	// Close the compressor before the deferred file close so trailing
	// blocks land in the file.
	return compressed.Close()
}
