package lookup

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"FlowTagger/internal/model"
)

// Index is the queryable mapping from (destination port, protocol name) to
// tag, built once from the lookup table and immutable afterwards.
//
// Tags are normalized to lowercase at build time so that matching is
// case-insensitive end to end; the reports show the lowercased form.
type Index struct {
	entries map[model.LookupKey]string
}

// Load builds an Index from lookup table CSV data with the header
// `dstport,protocol,tag`. The header row is skipped. Rows with a
// non-numeric or negative port, or with fewer than three columns, are
// silently dropped. When several rows share the same (port, protocol),
// the last row wins.
func Load(r io.Reader) (*Index, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	idx := &Index{entries: make(map[model.LookupKey]string)}

	header := true
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read lookup table: %w", err)
		}
		if header {
			header = false
			continue
		}
		if len(row) < 3 {
			continue
		}

		port, err := strconv.Atoi(strings.TrimSpace(row[0]))
		if err != nil || port < 0 {
			continue
		}
		protocol := strings.ToLower(strings.TrimSpace(row[1]))
		tag := strings.ToLower(strings.TrimSpace(row[2]))

		idx.entries[model.LookupKey{Port: port, Protocol: protocol}] = tag
	}

	return idx, nil
}

// LoadFile builds an Index from the lookup table at the given path.
func LoadFile(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open lookup table '%s': %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Lookup returns the tag for a (port, protocol) combination. The protocol
// is lowercased before matching. The second return value is false when the
// combination has no entry.
func (idx *Index) Lookup(port int, protocol string) (string, bool) {
	tag, ok := idx.entries[model.LookupKey{Port: port, Protocol: strings.ToLower(protocol)}]
	return tag, ok
}

// Len returns the number of distinct (port, protocol) entries in the index.
func (idx *Index) Len() int {
	return len(idx.entries)
}
