package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Size        string
	SizeRank    int
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ScalingResult aggregates one operation across sequence sizes. Passes are
// window-proportional, so ns/op should stay near flat while the size column
// grows by orders of magnitude.
type ScalingResult struct {
	Operation string
	Results   []BenchmarkResult
	Growth    float64
}

// flatGrowthLimit is the ns/op growth across the full size spread below
// which an operation still counts as flat.
const flatGrowthLimit = 4.0

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	var inputF *os.File
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		inputF = f
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	// Parse benchmarks
	results := parseBenchmarks(scanner)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	// Aggregate per-operation scaling
	scaling := generateScaling(results)

	if !*quiet {
		fmt.Fprintf(os.Stderr, "Aggregated %d operations\n", len(scaling))
	}

	// Generate markdown report
	report := generateMarkdownReport(scaling, results)

	// Write output
	if *outputFile != "" {
		err := os.WriteFile(*outputFile, []byte(report), 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			if inputF != nil {
				inputF.Close()
			}
			os.Exit(1)
		}
		if !*quiet {
			fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
		}
	} else {
		fmt.Fprint(os.Stdout, report)
	}

	// Close input file if opened
	if inputF != nil {
		inputF.Close()
	}
}

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	// Regex to parse benchmark output lines
	// BenchmarkUserScroll/100k-8    10000    12450 ns/op    4096 B/op    8 allocs/op
	benchmarkRegex := regexp.MustCompile(
		`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+(?:B|MB)/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
	)

	for scanner.Scan() {
		line := scanner.Text()

		// Try to parse as JSON (from -json flag)
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		// Parse benchmark line
		matches := benchmarkRegex.FindStringSubmatch(strings.TrimSpace(line))
		if matches == nil {
			continue
		}

		name := matches[1]
		iterations, _ := strconv.Atoi(matches[2])
		nsPerOp, _ := strconv.ParseFloat(matches[3], 64)

		var bytesPerOp int64
		var allocsPerOp int64

		if matches[4] != "" {
			bytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
		}
		if matches[5] != "" {
			allocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
		}

		// Parse name to extract operation and sequence size
		// Format: Benchmark<Operation>/<size>-<procs>
		// Or: Benchmark<Operation>-<procs> for benchmarks without a size axis
		operation, size := splitBenchmarkName(name)

		results = append(results, BenchmarkResult{
			Name:        name,
			Operation:   operation,
			Size:        size,
			SizeRank:    parseSize(size),
			Iterations:  iterations,
			NsPerOp:     nsPerOp,
			BytesPerOp:  bytesPerOp,
			AllocsPerOp: allocsPerOp,
		})
	}

	return results
}

func splitBenchmarkName(name string) (string, string) {
	parts := strings.Split(name, "/")

	operation := strings.TrimPrefix(parts[0], "Benchmark")
	if len(parts) == 1 {
		// No sub-benchmark: strip the -N procs suffix from the operation
		if dashIdx := strings.LastIndex(operation, "-"); dashIdx > 0 {
			operation = operation[:dashIdx]
		}
		return operation, ""
	}

	// Size is the last part with the -N procs suffix removed
	size := parts[len(parts)-1]
	if dashIdx := strings.LastIndex(size, "-"); dashIdx > 0 {
		size = size[:dashIdx]
	}

	return operation, size
}

// parseSize turns a size label like "1k", "100k" or "1m" into a comparable
// magnitude. Benchmarks without a size axis rank first.
func parseSize(label string) int {
	if label == "" {
		return 0
	}

	mult := 1
	num := label
	switch {
	case strings.HasSuffix(label, "k"):
		mult = 1_000
		num = strings.TrimSuffix(label, "k")
	case strings.HasSuffix(label, "m"):
		mult = 1_000_000
		num = strings.TrimSuffix(label, "m")
	}

	n, err := strconv.Atoi(num)
	if err != nil {
		return 0
	}
	return n * mult
}

func generateScaling(results []BenchmarkResult) []ScalingResult {
	grouped := make(map[string][]BenchmarkResult)
	for _, result := range results {
		grouped[result.Operation] = append(grouped[result.Operation], result)
	}

	var scaling []ScalingResult

	for operation, group := range grouped {
		sort.Slice(group, func(i, j int) bool {
			return group[i].SizeRank < group[j].SizeRank
		})

		growth := 1.0
		first := group[0]
		last := group[len(group)-1]
		if len(group) > 1 && first.NsPerOp > 0 {
			growth = last.NsPerOp / first.NsPerOp
		}

		scaling = append(scaling, ScalingResult{
			Operation: operation,
			Results:   group,
			Growth:    growth,
		})
	}

	// Sort by operation name
	sort.Slice(scaling, func(i, j int) bool {
		return scaling[i].Operation < scaling[j].Operation
	})

	return scaling
}

func generateMarkdownReport(scaling []ScalingResult, results []BenchmarkResult) string {
	var sb strings.Builder

	// Header
	sb.WriteString("# Engine Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	// Summary statistics
	flat := 0
	growing := 0
	singleSize := 0

	for _, sc := range scaling {
		switch {
		case len(sc.Results) < 2:
			singleSize++
		case sc.Growth <= flatGrowthLimit:
			flat++
		default:
			growing++
		}
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(results)))
	sb.WriteString(fmt.Sprintf("- **Operations**: %d\n", len(scaling)))
	sb.WriteString(fmt.Sprintf("  - flat across sizes: %d\n", flat))
	sb.WriteString(fmt.Sprintf("  - growing with size: %d\n", growing))
	sb.WriteString(fmt.Sprintf("  - single size: %d\n", singleSize))
	sb.WriteString("\n")

	// Detailed results table
	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Size | ns/op | Memory (B/op) | Allocs |\n")
	sb.WriteString("|-----------|------|-------|---------------|--------|\n")

	for _, sc := range scaling {
		for _, result := range sc.Results {
			size := result.Size
			if size == "" {
				size = "-"
			}
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n",
				result.Operation,
				size,
				formatNumber(result.NsPerOp),
				formatBytes(result.BytesPerOp),
				formatNumber(float64(result.AllocsPerOp)),
			))
		}
	}

	sb.WriteString("\n")

	// Scaling summary
	sb.WriteString("## Scaling by Operation\n\n")

	for _, sc := range scaling {
		if len(sc.Results) < 2 {
			sb.WriteString(fmt.Sprintf("- **%s**: single size, no growth factor\n", sc.Operation))
			continue
		}

		first := sc.Results[0]
		last := sc.Results[len(sc.Results)-1]
		status := "✓"
		if sc.Growth > flatGrowthLimit {
			status = "✗"
		}
		sb.WriteString(fmt.Sprintf("- %s **%s**: %.2fx ns/op growth from %s to %s\n",
			status, sc.Operation, sc.Growth, first.Size, last.Size))
	}

	sb.WriteString("\n")

	// Notes
	sb.WriteString("## Notes\n\n")
	sb.WriteString("- Pass cost is meant to track the window, not the sequence\n")
	sb.WriteString(fmt.Sprintf("- **✓**: ns/op grew less than %.1fx across the size spread\n", flatGrowthLimit))
	sb.WriteString("- **✗**: ns/op grew with sequence size, window proportionality is broken\n")
	sb.WriteString("- **Memory/Allocations**: steady-state per pass, lower is better\n")

	return sb.String()
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}

func formatBytes(b int64) string {
	if b >= 1024*1024 {
		return fmt.Sprintf("%.2fMB", float64(b)/(1024*1024))
	} else if b >= 1024 {
		return fmt.Sprintf("%.1fKB", float64(b)/1024)
	}
	return fmt.Sprintf("%dB", b)
}
