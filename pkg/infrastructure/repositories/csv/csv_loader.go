package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rkowalski/shopsched/pkg/domain/entities"
)

// Loader reads jobs and part timings from CSV files. It feeds the memory
// repositories for scheduling runs driven from the command line.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadJobs loads purchase-order jobs from a CSV file.
//
// Columns: id, po_number, customer, part_number, revision, quantity,
// due_date, machine_type, machine, scheduled_start, scheduled_end.
// due_date and the trailing scheduling columns may be empty.
func (l *Loader) LoadJobs(filename string) ([]*entities.Job, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("jobs CSV: %w", err)
	}

	expectedHeader := []string{"id", "po_number", "customer", "part_number", "revision", "quantity", "due_date", "machine_type", "machine", "scheduled_start", "scheduled_end"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("jobs CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var jobs []*entities.Job
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("jobs CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		job, err := parseJob(record)
		if err != nil {
			return nil, fmt.Errorf("jobs CSV row %d: %w", i+2, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// LoadPartTimings loads the part master timings from a CSV file.
//
// Columns: part_number, revision, setup_hours, cycle_hours.
func (l *Loader) LoadPartTimings(filename string) (map[entities.PartNumber]map[entities.Revision]entities.PartTiming, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("parts CSV: %w", err)
	}

	expectedHeader := []string{"part_number", "revision", "setup_hours", "cycle_hours"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("parts CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	timings := make(map[entities.PartNumber]map[entities.Revision]entities.PartTiming)
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("parts CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}

		pn := entities.PartNumber(strings.TrimSpace(record[0]))
		rev := entities.Revision(strings.TrimSpace(record[1]))
		setup, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: invalid setup_hours %q", i+2, record[2])
		}
		cycle, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: invalid cycle_hours %q", i+2, record[3])
		}
		timing, err := entities.NewPartTiming(setup, cycle)
		if err != nil {
			return nil, fmt.Errorf("parts CSV row %d: %w", i+2, err)
		}

		if timings[pn] == nil {
			timings[pn] = make(map[entities.Revision]entities.PartTiming)
		}
		timings[pn][rev] = timing
	}
	return timings, nil
}

func parseJob(record []string) (*entities.Job, error) {
	quantity, err := strconv.Atoi(record[5])
	if err != nil {
		return nil, fmt.Errorf("invalid quantity %q", record[5])
	}

	job := &entities.Job{
		ID:                  strings.TrimSpace(record[0]),
		PONumber:            strings.TrimSpace(record[1]),
		Customer:            strings.TrimSpace(record[2]),
		PartNumber:          entities.PartNumber(strings.TrimSpace(record[3])),
		Revision:            entities.Revision(strings.TrimSpace(record[4])),
		Quantity:            quantity,
		RequiredMachineType: strings.TrimSpace(record[7]),
		Machine:             entities.MachineID(strings.TrimSpace(record[8])),
	}

	if due := strings.TrimSpace(record[6]); due != "" {
		d, err := time.Parse("2006-01-02", due)
		if err != nil {
			return nil, fmt.Errorf("invalid due_date %q (expected YYYY-MM-DD)", due)
		}
		job.DueDate = &d
	}
	start, err := parseOptionalTime(record[9])
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_start %q", record[9])
	}
	end, err := parseOptionalTime(record[10])
	if err != nil {
		return nil, fmt.Errorf("invalid scheduled_end %q", record[10])
	}
	job.ScheduledStart = start
	job.ScheduledEnd = end

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return job, nil
}

func parseOptionalTime(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have a header and at least one data row", filename)
	}
	return records, nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, col := range expected {
		if strings.TrimSpace(strings.ToLower(header[i])) != col {
			return false
		}
	}
	return true
}
