package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/khalid-nowaf/pathtrie/pkg/pathmap"
)

// Record is one row of a mapping file, keyed by column or field name.
type Record map[string]string

// Mapping is a source to destination pair read from a file.
type Mapping struct {
	Src string
	Dst string
}

// tomlMappings is the layout of a TOML mapping file:
//
//	[[mapping]]
//	src = "/etc"
//	dst = "/mnt/etc"
type tomlMappings struct {
	Mapping []Record `toml:"mapping"`
}

// loadMappings parses a mapping file and inserts every mapping into pm.
// returns the number of mappings inserted
func loadMappings(pm *pathmap.PathMap, flags *MappingFlags, file string) (int, error) {
	count := 0
	err := parseFile(flags, file, func(m *Mapping) error {
		pm.Insert(m.Src, m.Dst)
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("loading %s: %w", file, err)
	}
	return count, nil
}

// parseFile picks the parser from the file extension.
func parseFile(flags *MappingFlags, file string, onEachMapping func(m *Mapping) error) error {
	switch ext := strings.ToLower(filepath.Ext(file)); ext {
	case ".csv":
		return parseCsv(flags, file, ',', onEachMapping)
	case ".tsv":
		return parseCsv(flags, file, '\t', onEachMapping)
	case ".json":
		return parseJson(flags, file, onEachMapping)
	case ".yaml", ".yml":
		return parseYaml(flags, file, onEachMapping)
	case ".toml":
		return parseToml(flags, file, onEachMapping)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

func parseJson(flags *MappingFlags, file string, onEachMapping func(m *Mapping) error) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := json.NewDecoder(f)

	// Read opening bracket of the array
	if _, err = decoder.Token(); err != nil {
		return err
	}

	for index := 0; decoder.More(); index++ {
		record := Record{}
		if err := decoder.Decode(&record); err != nil {
			return err
		}
		if err := emit(flags, record, index, onEachMapping); err != nil {
			return err
		}
	}

	// Read closing bracket of the array
	_, err = decoder.Token()
	return err
}

func parseCsv(flags *MappingFlags, file string, comma rune, onEachMapping func(m *Mapping) error) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma
	reader.Comment = '#'

	// first line is the header
	headers, err := reader.Read()
	if err != nil {
		return err
	}

	for index := 0; ; index++ {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		record := make(Record, len(headers))
		for i, value := range row {
			record[headers[i]] = value
		}
		if err := emit(flags, record, index, onEachMapping); err != nil {
			return err
		}
	}
}

func parseYaml(flags *MappingFlags, file string, onEachMapping func(m *Mapping) error) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	records := []Record{}
	if err := yaml.NewDecoder(f).Decode(&records); err != nil && err != io.EOF {
		return err
	}
	for index, record := range records {
		if err := emit(flags, record, index, onEachMapping); err != nil {
			return err
		}
	}
	return nil
}

func parseToml(flags *MappingFlags, file string, onEachMapping func(m *Mapping) error) error {
	doc := tomlMappings{}
	if _, err := toml.DecodeFile(file, &doc); err != nil {
		return err
	}
	for index, record := range doc.Mapping {
		if err := emit(flags, record, index, onEachMapping); err != nil {
			return err
		}
	}
	return nil
}

// emit turns a record into a Mapping using the configured keys.
func emit(flags *MappingFlags, record Record, index int, onEachMapping func(m *Mapping) error) error {
	src, ok := record[flags.SrcKey]
	if !ok {
		return fmt.Errorf("record %d: %w %q", index, ErrMissingKey, flags.SrcKey)
	}
	dst, ok := record[flags.DstKey]
	if !ok {
		return fmt.Errorf("record %d: %w %q", index, ErrMissingKey, flags.DstKey)
	}
	return onEachMapping(&Mapping{Src: src, Dst: dst})
}
