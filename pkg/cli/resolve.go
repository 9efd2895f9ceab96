package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/khalid-nowaf/pathtrie/pkg/pathmap"
)

// MappingFlags select and read the mapping files.
// In a JSON config file the keys are snake_case: src_key, dst_key, separator.
type MappingFlags struct {
	Mappings  []string `help:"Mapping files in CSV, TSV, JSON, YAML or TOML format" type:"existingfile" required:"" short:"m"`
	SrcKey    string   `help:"Field holding the source path (config key: src_key)" default:"src"`
	DstKey    string   `help:"Field holding the destination path (config key: dst_key)" default:"dst"`
	Separator string   `help:"Path separator" default:"/"`
}

// OutputFlags control how results are written.
type OutputFlags struct {
	Output  string `help:"Output format (${enum})" enum:"text,csv,tsv,json" default:"text" short:"o"`
	OutFile string `help:"Write results to a file instead of stdout" type:"path"`
	Strict  bool   `help:"Fail if a path has no mapping"`
}

type ResolveCmd struct {
	Paths   []string     `arg:"" help:"Paths to remap"`
	Mapping MappingFlags `embed:""`
	Out     OutputFlags  `embed:""`
}

// Run executes the resolve command.
func (cmd *ResolveCmd) Run(ctx *Context) error {
	return run(ctx, &cmd.Mapping, &cmd.Out, cmd.Paths, func(pm *pathmap.PathMap, path string) *pathmap.Resolution {
		return pm.Resolve(path)
	})
}

type LookupCmd struct {
	Paths   []string     `arg:"" help:"Source paths to look up"`
	Mapping MappingFlags `embed:""`
	Out     OutputFlags  `embed:""`
}

// Run executes the lookup command.
func (cmd *LookupCmd) Run(ctx *Context) error {
	return run(ctx, &cmd.Mapping, &cmd.Out, cmd.Paths, lookup)
}

// lookup reports the exact mapping of path as a Resolution.
func lookup(pm *pathmap.PathMap, path string) *pathmap.Resolution {
	r := &pathmap.Resolution{Path: path}
	if dst, ok := pm.Lookup(path); ok {
		r.Found = true
		r.Matched = path
		r.Destination = dst
		r.Resolved = dst
	}
	return r
}

// run loads the mapping files, queries every path and writes the results.
func run(ctx *Context, mapping *MappingFlags, out *OutputFlags, paths []string, query func(*pathmap.PathMap, string) *pathmap.Resolution) (err error) {
	stats := &Stats{}
	pm := pathmap.NewPathMap(
		pathmap.WithSeparator(mapping.Separator),
		pathmap.WithLogger(ctx.Logger),
	)

	for _, file := range mapping.Mappings {
		n, err := loadMappings(pm, mapping, file)
		stats.Mappings += n
		if err != nil {
			return err
		}
	}

	results := make([]*pathmap.Resolution, 0, len(paths))
	for _, path := range paths {
		r := query(pm, path)
		stats.Queried++
		if r.Found {
			stats.Matched++
		} else if out.Strict {
			return fmt.Errorf("%w for %s", ErrNoMatch, path)
		}
		results = append(results, r)
	}

	w, closeOutput, err := openOutput(ctx.Stdout, out.OutFile)
	if err != nil {
		return err
	}
	defer keepCloseError(closeOutput, &err)

	if err := newWriter(out.Output).Write(w, results); err != nil {
		return err
	}
	fmt.Fprintln(ctx.Stderr, stats.String())
	return nil
}

// keepCloseError runs closeFn and stores its error in err, unless err already holds one.
func keepCloseError(closeFn func() error, err *error) {
	if cerr := closeFn(); *err == nil {
		*err = cerr
	}
}

func openOutput(stdout io.Writer, outFile string) (io.Writer, func() error, error) {
	if outFile == "" {
		return stdout, func() error { return nil }, nil
	}
	file, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return file, file.Close, nil
}
