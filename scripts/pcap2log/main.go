package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// pcap2log converts a packet capture into version-2 flow log lines, one per
// IPv4 packet, so captures can be fed straight into ft-run.
func main() {
	inputFile := flag.String("r", "", "Input pcap file path")
	outputFile := flag.String("o", "", "Output flow log file path (default stdout)")
	accountID := flag.String("account", "123456789012", "Account id to stamp on each line")
	ifaceID := flag.String("eni", "eni-0a1b2c3d", "Interface id to stamp on each line")
	flag.Parse()

	if *inputFile == "" {
		log.Fatal("An input pcap file is required (-r).")
	}

	in, err := os.Open(*inputFile)
	if err != nil {
		log.Fatalf("Failed to open pcap file: %v", err)
	}
	defer in.Close()

	reader, err := pcapgo.NewReader(in)
	if err != nil {
		log.Fatalf("Failed to read pcap header: %v", err)
	}

	var out *bufio.Writer
	if *outputFile == "" {
		out = bufio.NewWriter(os.Stdout)
	} else {
		f, err := os.Create(*outputFile)
		if err != nil {
			log.Fatalf("Failed to create output file: %v", err)
		}
		defer f.Close()
		out = bufio.NewWriter(f)
	}

	written, skipped := 0, 0
	for {
		data, ci, err := reader.ReadPacketData()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Failed to read packet: %v", err)
		}

		packet := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)

		ipLayer := packet.Layer(layers.LayerTypeIPv4)
		if ipLayer == nil {
			skipped++
			continue
		}
		ip := ipLayer.(*layers.IPv4)

		var srcPort, dstPort uint16
		switch {
		case packet.Layer(layers.LayerTypeTCP) != nil:
			tcp := packet.Layer(layers.LayerTypeTCP).(*layers.TCP)
			srcPort, dstPort = uint16(tcp.SrcPort), uint16(tcp.DstPort)
		case packet.Layer(layers.LayerTypeUDP) != nil:
			udp := packet.Layer(layers.LayerTypeUDP).(*layers.UDP)
			srcPort, dstPort = uint16(udp.SrcPort), uint16(udp.DstPort)
		}

		ts := ci.Timestamp.Unix()
		fmt.Fprintf(out, "2 %s %s %s %s %d %d %d 1 %d %d %d ACCEPT OK\n",
			*accountID, *ifaceID, ip.SrcIP, ip.DstIP, srcPort, dstPort, ip.Protocol,
			ci.Length, ts, ts)
		written++
	}

	if err := out.Flush(); err != nil {
		log.Fatalf("Failed to flush output: %v", err)
	}

	log.Printf("Converted %d packets (%d skipped) from %s.", written, skipped, *inputFile)
}
