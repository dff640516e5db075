package flowlog

import (
	"strconv"
	"strings"

	"FlowTagger/internal/model"
)

// Field positions in the version-2 flow log layout:
// version account-id interface-id srcaddr dstaddr srcport dstport protocol
// packets bytes start end action log-status
const (
	fieldDstPort  = 6
	fieldProtocol = 7
	minFields     = 8
)

// ParseLine extracts a FlowRecord from one flow log line. The second return
// value is false when the line should be skipped: blank lines, lines with
// fewer than 8 whitespace-delimited fields, and lines whose port or protocol
// field is not numeric. An unrecognized protocol number is not a parse
// failure; the record comes back with protocol "unknown".
func ParseLine(line string) (model.FlowRecord, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return model.FlowRecord{}, false
	}

	fields := strings.Fields(line)
	if len(fields) < minFields {
		return model.FlowRecord{}, false
	}

	port, err := strconv.Atoi(fields[fieldDstPort])
	if err != nil || port < 0 {
		return model.FlowRecord{}, false
	}

	protoNum, err := strconv.Atoi(fields[fieldProtocol])
	if err != nil {
		return model.FlowRecord{}, false
	}

	return model.FlowRecord{DstPort: port, Protocol: ProtocolName(protoNum)}, true
}
