package placefile

import (
	"bufio"
	"context"
	"delivery-hub-service/internal/domain"
	"delivery-hub-service/internal/platform/logger"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Fields per record: name,type,population,latitude,longitude.
const recordArity = 5

const maxLineBytes = 1 << 20

var ErrMalformedRecord = errors.New("malformed place record")

// RecordError reports a rejected line. It matches ErrMalformedRecord with
// errors.Is.
type RecordError struct {
	Line   int
	Reason string
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("line %d: %s: %s", e.Line, ErrMalformedRecord, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return ErrMalformedRecord
}

type Options struct {
	// Skip malformed records with a warning instead of failing the load.
	Lenient bool
	Logger  *slog.Logger
}

// LoadFile opens path and loads it with Load.
func LoadFile(ctx context.Context, path string, opts Options) (domain.PlaceSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load places: open %q: %w", path, err)
	}
	defer f.Close()

	places, err := Load(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("load places %q: %w", path, err)
	}
	return places, nil
}

// Load reads places in file order. Blank lines and lines starting with '%'
// are skipped. Each physical line is one record, so a broken line never
// affects the lines after it.
func Load(ctx context.Context, r io.Reader, opts Options) (domain.PlaceSet, error) {
	log := opts.Logger
	if log == nil {
		log = logger.L()
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		places  domain.PlaceSet
		skipped int
	)

	for line := 1; sc.Scan(); line++ {
		if line%1024 == 1 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("load places: %w", err)
			}
		}

		text := sc.Text()
		if trimmed := strings.TrimSpace(text); trimmed == "" || strings.HasPrefix(trimmed, "%") {
			continue
		}

		p, recErr := parseLine(line, text)
		if recErr == nil {
			places = append(places, p)
			continue
		}

		if !opts.Lenient {
			return nil, fmt.Errorf("load places: %w", recErr)
		}
		skipped++
		log.Warn("skipping malformed place record", "line", recErr.Line, "reason", recErr.Reason)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("load places: read: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("load places: %w", err)
	}

	log.Debug("places loaded", "count", len(places), "skipped", skipped)
	return places, nil
}

// parseLine splits one line with CSV quoting rules; quotes never span lines.
func parseLine(line int, text string) (domain.Place, *RecordError) {
	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	fields, err := cr.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		return domain.Place{}, &RecordError{Line: line, Reason: err.Error()}
	}

	return parseRecord(line, fields)
}

func parseRecord(line int, fields []string) (domain.Place, *RecordError) {
	bad := func(format string, args ...any) (domain.Place, *RecordError) {
		return domain.Place{}, &RecordError{Line: line, Reason: fmt.Sprintf(format, args...)}
	}

	if len(fields) != recordArity {
		return bad("expected %d fields, got %d", recordArity, len(fields))
	}

	name := norm.NFC.String(strings.TrimSpace(fields[0]))
	if name == "" {
		return bad("empty name")
	}

	typ, err := domain.ParsePlaceType(fields[1])
	if err != nil {
		return bad("%v", err)
	}

	pop, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil || pop < 0 {
		return bad("invalid population %q", fields[2])
	}

	lat, err := parseDegrees(fields[3], 90)
	if err != nil {
		return bad("invalid latitude %q", fields[3])
	}
	lon, err := parseDegrees(fields[4], 180)
	if err != nil {
		return bad("invalid longitude %q", fields[4])
	}

	return domain.Place{Name: name, Type: typ, Population: pop, Lat: lat, Lon: lon}, nil
}

func parseDegrees(s string, limit float64) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.Abs(v) > limit {
		return 0, fmt.Errorf("out of range: %v", v)
	}
	return v, nil
}
