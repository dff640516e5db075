package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

var commonPorts = []int{22, 25, 53, 80, 443, 3306, 8080}

var protocols = []int{6, 6, 6, 17, 17, 1, 99}

func main() {
	outputFile := flag.String("o", "flow_logs.txt", "Output flow log file path")
	lineCount := flag.Int("c", 1000, "Number of log lines to generate")
	flag.Parse()

	f, err := os.Create(*outputFile)
	if err != nil {
		log.Fatalf("Failed to create output file: %v", err)
	}
	defer f.Close()

	out := bufio.NewWriter(f)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	log.Printf("Generating %d flow log lines into %s...", *lineCount, *outputFile)

	now := time.Now().Unix()
	for i := 0; i < *lineCount; i++ {
		srcIP := fmt.Sprintf("10.0.%d.%d", rng.Intn(256), rng.Intn(256))
		dstIP := fmt.Sprintf("10.0.%d.%d", rng.Intn(256), rng.Intn(256))
		srcPort := rng.Intn(65535-1024) + 1024

		// Mix well-known destination ports with random high ones so the
		// output exercises both tagged and untagged combinations.
		dstPort := commonPorts[rng.Intn(len(commonPorts))]
		if rng.Intn(4) == 0 {
			dstPort = rng.Intn(65535-1024) + 1024
		}

		protocol := protocols[rng.Intn(len(protocols))]
		packets := rng.Intn(100) + 1
		bytes := packets * (rng.Intn(1400) + 50)
		start := now - int64(rng.Intn(3600))
		end := start + int64(rng.Intn(60))

		action := "ACCEPT"
		if rng.Intn(10) == 0 {
			action = "REJECT"
		}

		fmt.Fprintf(out, "2 123456789012 eni-%08x %s %s %d %d %d %d %d %d %d %s OK\n",
			rng.Uint32(), srcIP, dstIP, srcPort, dstPort, protocol, packets, bytes, start, end, action)
	}

	if err := out.Flush(); err != nil {
		log.Fatalf("Failed to write output file: %v", err)
	}

	log.Printf("Successfully generated %d lines into %s.", *lineCount, *outputFile)
}
