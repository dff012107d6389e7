package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/paulhankin/simplify/cmd/simplify/simplifycmd"
	"github.com/paulhankin/simplify/logger"
	"github.com/paulhankin/simplify/paths"
	"go.uber.org/zap"
)

type flagQualityValue paths.Quality

func (fq *flagQualityValue) String() string {
	return paths.Quality(*fq).String()
}

func (fq *flagQualityValue) Set(s string) error {
	q, err := paths.ParseQuality(s)
	if err != nil {
		return err
	}
	*fq = flagQualityValue(q)
	return nil
}

var (
	config   = simplifycmd.Config{Quality: paths.HighQuality}
	logLevel string
)

func init() {
	flag.StringVar(&config.In, "in", "", "input file (.svg, .geojson, .json, .polyline, .txt)")
	flag.StringVar(&config.Out, "out", "out.svg", "output file; format is chosen by extension")
	flag.Float64Var(&config.Tolerance, "tolerance", 0.0001, "maximum deviation of a removed point, in input units")
	flag.Var((*flagQualityValue)(&config.Quality), "quality", "fast (radial distance) or high (Ramer-Douglas-Peucker)")
	flag.StringVar(&config.Metric, "metric", "perpendicular", "high quality error metric: perpendicular, segment or area")
	flag.StringVar(&config.SVG, "svg", "simple", "svg input parser: simple (M/L paths) or full")
	flag.StringVar(&config.Stroke, "stroke", "", "svg output stroke colour")
	flag.StringVar(&config.DashArray, "dash", "", "svg output stroke-dasharray, e.g. \"5, 10\"")
	flag.StringVar(&logLevel, "log_level", logger.DefaultLevel, "debug, info, warn or error")
}

func main() {
	flag.Parse()
	log, err := logger.New(logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}
	defer log.Sync()

	if config.In == "" {
		log.Fatal("must specify -in <file>")
	}
	st, err := simplifycmd.Convert(&config, log)
	if err != nil {
		log.Fatal("simplify failed", zap.Error(err))
	}
	fmt.Println(st)
}
