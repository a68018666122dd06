package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"time"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: emit a synthetic csv metric trace

Usage:

 %[1]s > file

OR

 %[1]s | metric-scope -stdin

The trace contains a mix of smooth, noisy, and bursty series, with
occasional missing and unparseable cells so that gap handling can be
exercised without real infrastructure.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	dur := flag.Duration("sample-interval", time.Second, "Interval between emitting new samples")
	outputName := flag.String("output", "-", "Output file for CSV sample data")
	dropout := flag.Float64("dropout", 0.05, "Probability that a cell is left empty")
	garble := flag.Float64("garble", 0.01, "Probability that a cell is unparseable text")
	flag.Parse()

	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}

	fmt.Fprintln(output, "timestamp_s,requests,latency,errors,queue_depth")

	start := time.Now()
	queueDepth := 50.0
	ticker := time.NewTicker(*dur)
	defer ticker.Stop()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	for {
		select {
		case <-sigChan:
			if err := output.Close(); err != nil {
				log.Printf("failed closing output: %v", err)
			}
			return
		case now := <-ticker.C:
			ts := now.Sub(start).Seconds()
			queueDepth = math.Max(0, queueDepth+rand.NormFloat64()*3)
			values := []float64{
				1000 + 400*math.Sin(ts/30),
				0.2 + 0.1*math.Abs(rand.NormFloat64()),
				float64(rand.Intn(5)),
				queueDepth,
			}
			fmt.Fprintf(output, "%.3f", ts)
			for _, v := range values {
				switch {
				case rand.Float64() < *dropout:
					fmt.Fprint(output, ",")
				case rand.Float64() < *garble:
					fmt.Fprint(output, ",???")
				default:
					fmt.Fprintf(output, ",%f", v)
				}
			}
			fmt.Fprintln(output)
		}
	}
}
