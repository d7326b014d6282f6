package feed

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// Accepted timestamp layouts, tried in order. Plain unix seconds are also
// accepted.
var timeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05Z07:00",
	"20060102 150405",
	"2006-01-02",
}

// LoadCSV reads an OHLCV bar file: time, open, high, low, close and an
// optional volume column, separated by comma or semicolon (sniffed from
// the first line). A header row is skipped; unparseable lines are counted
// and skipped rather than failing the load, matching how real datasets
// arrive.
func LoadCSV(path string) (bars []Bar, badLines int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("feed: open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	sep, err := sniffSeparator(br)
	if err != nil {
		return nil, 0, fmt.Errorf("feed: %s: %w", path, err)
	}

	r := csv.NewReader(br)
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			badLines++
			continue
		}
		if isHeader(rec[0]) {
			continue
		}
		if len(rec) < 5 {
			badLines++
			continue
		}

		b, ok := parseBar(rec)
		if !ok {
			badLines++
			continue
		}
		bars = append(bars, b)
	}

	if len(bars) == 0 {
		return nil, badLines, fmt.Errorf("feed: no valid bars in %s", path)
	}
	return bars, badLines, nil
}

func sniffSeparator(br *bufio.Reader) (rune, error) {
	head, err := br.Peek(512)
	if err != nil && err != io.EOF {
		return 0, err
	}
	line := string(head)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';', nil
	}
	return ',', nil
}

func isHeader(field string) bool {
	f := strings.ToLower(strings.TrimSpace(field))
	return f == "time" || f == "date" || f == "datetime" || f == "timestamp"
}

func parseBar(rec []string) (Bar, bool) {
	ts, ok := parseTime(strings.TrimSpace(rec[0]))
	if !ok {
		return Bar{}, false
	}

	vals := make([]float64, 0, 5)
	for _, field := range rec[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
		if err != nil {
			break
		}
		vals = append(vals, v)
		if len(vals) == 5 {
			break
		}
	}
	if len(vals) < 4 {
		return Bar{}, false
	}

	b := Bar{Time: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3]}
	if len(vals) > 4 {
		b.Volume = vals[4]
	}
	return b, true
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), true
		}
	}
	if secs, err := strconv.ParseInt(s, 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC(), true
	}
	return time.Time{}, false
}
