// Package dataload reads historical OHLCV series from disk.
package dataload

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/RomaKul/strategy-backtest/internal/market"
)

// FromCSV parses candles from a CSV file with the columns
// open_time,open,high,low,close,volume. open_time is either unix milliseconds
// or RFC3339; close_time is derived from the bar interval. Every row must
// validate, so a malformed export fails loudly instead of poisoning a backtest.
func FromCSV(path string, interval time.Duration) ([]market.Candle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open candles: %w", err)
	}
	defer file.Close()
	return parse(file, interval)
}

func parse(r io.Reader, interval time.Duration) ([]market.Candle, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	var candles []market.Candle
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		line++
		if line == 1 && strings.EqualFold(record[0], "open_time") {
			continue
		}
		if len(record) < 6 {
			return nil, fmt.Errorf("line %d: want 6 columns, got %d", line, len(record))
		}
		openTime, err := parseTime(record[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		var fields [5]float64
		for i := 0; i < 5; i++ {
			fields[i], err = strconv.ParseFloat(strings.TrimSpace(record[i+1]), 64)
			if err != nil {
				return nil, fmt.Errorf("line %d column %d: %w", line, i+2, err)
			}
		}
		c := market.Candle{
			OpenTime:  openTime,
			CloseTime: openTime.Add(interval),
			Open:      fields[0],
			High:      fields[1],
			Low:       fields[2],
			Close:     fields[3],
			Volume:    fields[4],
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		candles = append(candles, c)
	}
	return candles, nil
}

func parseTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse open_time %q: %w", raw, err)
	}
	return t.UTC(), nil
}
