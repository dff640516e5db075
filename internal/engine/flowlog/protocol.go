package flowlog

// ProtocolUnknown is the protocol name assigned to numbers outside the
// supported set. It never matches a lookup entry, so records carrying it
// always land in the Untagged bucket unless the table says otherwise.
const ProtocolUnknown = "unknown"

// protocolNames maps IANA protocol numbers to canonical lowercase names.
var protocolNames = map[int]string{
	1:  "icmp",
	6:  "tcp",
	17: "udp",
}

// ProtocolName converts a protocol number to its canonical lowercase name.
func ProtocolName(num int) string {
	if name, ok := protocolNames[num]; ok {
		return name
	}
	return ProtocolUnknown
}
