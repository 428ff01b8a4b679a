package coupon

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultDiscountPercent applies to lines that carry a bare code without a
// percent column.
const DefaultDiscountPercent = 10

// fileLoader implements Loader for reading gzipped coupon files.
type fileLoader struct {
	logger zerolog.Logger
}

// NewFileLoader creates a new file-based coupon loader.
func NewFileLoader(logger zerolog.Logger) Loader {
	return &fileLoader{
		logger: logger.With().Str("component", "coupon-loader").Logger(),
	}
}

// Load reads a gzipped coupon file and returns a CouponSet. Each line holds
// "CODE,percent" or a bare code; malformed lines are skipped, not fatal.
func (l *fileLoader) Load(ctx context.Context, filePath string) (CouponSet, error) {
	l.logger.Info().Str("file", filePath).Msg("loading coupon file")

	file, err := os.Open(filePath)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to open coupon file")
		return nil, fmt.Errorf("failed to open coupon file %s: %w", filePath, err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("failed to create gzip reader")
		return nil, fmt.Errorf("failed to create gzip reader for %s: %w", filePath, err)
	}
	defer gzipReader.Close()

	set, skipped, err := readCoupons(ctx, gzipReader)
	if err != nil {
		l.logger.Error().Err(err).Str("file", filePath).Msg("error reading coupon file")
		return nil, fmt.Errorf("error reading coupon file %s: %w", filePath, err)
	}

	l.logger.Info().
		Str("file", filePath).
		Int("coupons_loaded", set.Size()).
		Int("lines_skipped", skipped).
		Msg("coupon file loaded successfully")

	return set, nil
}

// readCoupons parses coupon lines from r into a set, returning the count of
// skipped malformed lines.
func readCoupons(ctx context.Context, r io.Reader) (*mapCouponSet, int, error) {
	set := NewMapCouponSet(1024).(*mapCouponSet)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	lineCount := 0
	skipped := 0
	for scanner.Scan() {
		// Check context cancellation periodically
		if lineCount%100_000 == 0 {
			select {
			case <-ctx.Done():
				return nil, skipped, ctx.Err()
			default:
			}
		}
		lineCount++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		code, percent, ok := parseLine(line)
		if !ok {
			skipped++
			continue
		}
		set.Add(code, percent)
	}

	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}

	return set, skipped, nil
}

// parseLine splits "CODE,percent" into its parts. A bare code gets the
// default discount; percents outside 1-90 are rejected.
func parseLine(line string) (string, int, bool) {
	code, percentField, found := strings.Cut(line, ",")
	code = strings.TrimSpace(code)
	if code == "" {
		return "", 0, false
	}

	if !found || strings.TrimSpace(percentField) == "" {
		return code, DefaultDiscountPercent, true
	}

	percent, err := strconv.Atoi(strings.TrimSpace(percentField))
	if err != nil || percent < 1 || percent > 90 {
		return "", 0, false
	}

	return code, percent, true
}
