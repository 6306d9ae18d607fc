// Package catalog loads raw smartphone records and normalizes them into the
// canonical representation used for training and display.
//
// The raw format is a header line followed by comma-separated
// deviceName, chargingTime, operatingSystem triples. Charging time combines
// an hour component ("2h") with an optional minute component ("30min").
package catalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/phonepick/internal/domain/model"
)

// recordFieldCount is the minimum number of comma-separated fields a record
// needs to be usable. Shorter records are dropped silently.
const recordFieldCount = 3

const (
	hourSuffix   = "h"
	minuteSuffix = "min"
)

// ParseChargingTime normalizes a raw charging-time field into a minute
// count: "1h 30min" -> 90, "2h" -> 120. The minute component is optional
// and defaults to zero. A malformed hour or minute component is an error
// wrapping ErrChargingTimeFormat, never a silent zero.
func ParseChargingTime(raw string) (int, error) {
	parts := strings.Fields(raw)
	if len(parts) == 0 || len(parts) > 2 {
		return 0, fmt.Errorf("%w: %q", ErrChargingTimeFormat, raw)
	}

	if !strings.HasSuffix(parts[0], hourSuffix) {
		return 0, fmt.Errorf("%w: hour component %q", ErrChargingTimeFormat, parts[0])
	}
	hours, err := strconv.Atoi(strings.TrimSuffix(parts[0], hourSuffix))
	if err != nil {
		return 0, fmt.Errorf("%w: hour component %q", ErrChargingTimeFormat, parts[0])
	}

	minutes := 0
	if len(parts) == 2 {
		if !strings.HasSuffix(parts[1], minuteSuffix) {
			return 0, fmt.Errorf("%w: minute component %q", ErrChargingTimeFormat, parts[1])
		}
		minutes, err = strconv.Atoi(strings.TrimSuffix(parts[1], minuteSuffix))
		if err != nil {
			return 0, fmt.Errorf("%w: minute component %q", ErrChargingTimeFormat, parts[1])
		}
	}

	return hours*60 + minutes, nil
}

// Load parses catalog records from r. The first line is a header and is
// skipped; records with fewer than three fields are dropped; output order
// matches input order. A charging-time parse failure aborts the load.
func Load(r io.Reader) ([]model.Smartphone, error) {
	scanner := bufio.NewScanner(r)

	var phones []model.Smartphone
	header := true
	for scanner.Scan() {
		line := scanner.Text()
		if header {
			header = false
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) < recordFieldCount {
			continue
		}

		minutes, err := ParseChargingTime(strings.TrimSpace(fields[1]))
		if err != nil {
			return nil, fmt.Errorf("record %q: %w", line, err)
		}

		phones = append(phones, model.Smartphone{
			DeviceName:          strings.TrimSpace(fields[0]),
			ChargingTimeMinutes: minutes,
			OperatingSystem:     strings.TrimSpace(fields[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	return phones, nil
}

// LoadFile loads a catalog from the file at path.
func LoadFile(path string) ([]model.Smartphone, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer func() { _ = f.Close() }()

	return Load(f)
}
