package simulator

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ParseJobs reads job descriptors from CSV input. Each record is
//
//	jobID,sizeBytes[,arrivalTime[,duration]]
//
// A header line is tolerated (first field not numeric), blank lines are
// skipped. A missing arrival defaults to 0 and a missing duration defaults to
// max(1, size/500), a rough bytes-per-tick service rate.
func ParseJobs(r io.Reader) ([]JobSpec, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var specs []JobSpec
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading jobs: %w", err)
		}
		line++

		if len(record) == 0 || (len(record) == 1 && strings.TrimSpace(record[0]) == "") {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(record[0])); err != nil {
			if line == 1 {
				continue // header
			}
			return nil, ErrInvalidJob(fmt.Sprintf("line %d: bad job id %q", line, record[0]))
		}
		if len(record) < 2 {
			return nil, ErrInvalidJob(fmt.Sprintf("line %d: need at least jobID,size", line))
		}

		spec, err := parseSpec(record)
		if err != nil {
			return nil, ErrInvalidJob(fmt.Sprintf("line %d: %s", line, err))
		}
		specs = append(specs, spec)
	}
	return specs, nil
}

func parseSpec(record []string) (JobSpec, error) {
	fields := make([]int64, len(record))
	for i, f := range record {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return JobSpec{}, fmt.Errorf("bad field %q", f)
		}
		fields[i] = v
	}

	spec := JobSpec{
		JobID:     int(fields[0]),
		SizeBytes: int(fields[1]),
	}
	if len(fields) > 2 {
		spec.ArrivalTime = fields[2]
	}
	if len(fields) > 3 {
		spec.Duration = fields[3]
	} else {
		spec.Duration = defaultDuration(spec.SizeBytes)
	}
	return spec, nil
}

// defaultDuration estimates service time from job size at 500 bytes per tick.
func defaultDuration(sizeBytes int) int64 {
	d := int64(sizeBytes / 500)
	if d < 1 {
		d = 1
	}
	return d
}

// LoadJobsFromFile parses job descriptors from a CSV file.
func LoadJobsFromFile(path string) ([]JobSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening jobs file: %w", err)
	}
	defer f.Close()
	return ParseJobs(f)
}
