package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/tuneinsight/lattigo/v6/utils/sampling"

	ntt "github.com/jonathanmweiss/go-ntt"
	"github.com/jonathanmweiss/go-ntt/field"
)

type timing struct {
	n     int
	naive time.Duration
	fast  time.Duration
}

func parseLengths(s string) ([]int, error) {
	var out []int
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}

		n, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("invalid length %q: %w", tok, err)
		}

		out = append(out, n)
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no lengths given")
	}

	return out, nil
}

func timeRuns(runs int, fn func() error) (time.Duration, error) {
	start := time.Now()
	for i := 0; i < runs; i++ {
		if err := fn(); err != nil {
			return 0, err
		}
	}

	return time.Since(start), nil
}

func run(n int, cache *ntt.SessionCache, prng *sampling.KeyedPRNG, runs int) (timing, error) {
	s, err := cache.Load(n)
	if err != nil {
		return timing{}, err
	}

	vector := field.NewUniformSampler(s.Field(), prng).Vector(n)

	fmt.Printf("n = %d\n", n)
	fmt.Println("ω =", s.Omega())
	fmt.Println("modulus =", s.Modulus())

	naiveResult, err := s.Naive(vector)
	if err != nil {
		return timing{}, err
	}

	fmt.Println("Input vector:           ", vector)
	fmt.Println("Naive NTT result:       ", naiveResult)

	tm := timing{n: n}
	tm.naive, err = timeRuns(runs, func() error {
		_, err := s.Naive(vector)
		return err
	})
	if err != nil {
		return timing{}, err
	}

	if !field.IsPowerOfTwo(uint64(n)) {
		fmt.Println("Cooley-Tukey NTT result: skipped, n is not a power of two")
		fmt.Printf("Naive NTT: %v for %d runs\n\n", tm.naive, runs)
		return tm, nil
	}

	ctResult, err := s.Forward(vector)
	if err != nil {
		return timing{}, err
	}

	fmt.Println("Cooley-Tukey NTT result:", ctResult)
	fmt.Println("Equal?                  ", slices.Equal(naiveResult, ctResult))

	tm.fast, err = timeRuns(runs, func() error {
		_, err := s.Forward(vector)
		return err
	})
	if err != nil {
		return timing{}, err
	}

	fmt.Printf("Naive NTT:        %v for %d runs\n", tm.naive, runs)
	fmt.Printf("Cooley-Tukey NTT: %v for %d runs\n", tm.fast, runs)

	back, err := s.Inverse(ctResult)
	if err != nil {
		return timing{}, err
	}

	fmt.Println("INV Cooley-Tukey NTT:   ", back)
	fmt.Println("Round trip?             ", slices.Equal(back, vector))
	fmt.Println()

	return tm, nil
}

func renderChart(path string, timings []timing, runs int) error {
	xs := make([]string, len(timings))
	naive := make([]opts.BarData, len(timings))
	fast := make([]opts.BarData, len(timings))

	for i, tm := range timings {
		xs[i] = strconv.Itoa(tm.n)
		naive[i] = opts.BarData{Value: tm.naive.Microseconds()}
		fast[i] = opts.BarData{Value: tm.fast.Microseconds()}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Naive vs. Cooley-Tukey NTT",
			Subtitle: fmt.Sprintf("total time of %d runs", runs),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "n"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "µs"}),
	)
	bar.SetXAxis(xs).
		AddSeries("naive", naive).
		AddSeries("cooley-tukey", fast)

	page := components.NewPage().SetPageTitle("NTT timings")
	page.AddCharts(bar)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return page.Render(f)
}

func main() {
	lengths := flag.String("n", "4", "comma separated transform lengths")
	seed := flag.String("seed", "go-ntt", "PRNG key for the input vectors")
	runs := flag.Int("runs", 100, "invocations timed per transform")
	chartPath := flag.String("chart", "", "optional HTML output file for a timing chart")
	factored := flag.Bool("factored", false, "derive omega from a generator instead of the order search")
	flag.Parse()

	ns, err := parseLengths(*lengths)
	if err != nil {
		log.Fatalf("lengths: %v", err)
	}

	prng, err := sampling.NewKeyedPRNG([]byte(*seed))
	if err != nil {
		log.Fatalf("prng: %v", err)
	}

	var sessionOpts []ntt.Option
	if *factored {
		sessionOpts = append(sessionOpts, ntt.WithFactoredRoot())
	}

	cache := ntt.NewSessionCache(sessionOpts...)

	timings := make([]timing, 0, len(ns))
	for _, n := range ns {
		tm, err := run(n, cache, prng, *runs)
		if err != nil {
			log.Fatalf("n=%d: %v", n, err)
		}

		timings = append(timings, tm)
	}

	if *chartPath != "" {
		if err := renderChart(*chartPath, timings, *runs); err != nil {
			log.Fatalf("chart: %v", err)
		}

		fmt.Println("chart written to", *chartPath)
	}
}
