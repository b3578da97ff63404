package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/grafiki-ochrony/guard-roster/backend/internal/domain"
	"github.com/grafiki-ochrony/guard-roster/backend/internal/repository"
)

// SeedEmployeesFromCSV imports a guard roster from a CSV file with the
// header first_name,last_name,contract_type,preference. Rows with
// unknown contract types or preferences are skipped with a log line.
func SeedEmployeesFromCSV(r *repository.Repository, path string) {
	file, err := os.Open(path)
	if err != nil {
		slog.Error("unable to open file", "path", path, "error", err)
		return
	}
	defer file.Close()

	reader := csv.NewReader(file)

	headers, err := reader.Read()
	if err != nil {
		slog.Error("unable to read header", "error", err)
		return
	}

	columns := make(map[string]int, len(headers))
	for i, header := range headers {
		columns[strings.TrimSpace(header)] = i
	}
	for _, required := range []string{"first_name", "last_name", "contract_type", "preference"} {
		if _, ok := columns[required]; !ok {
			slog.Error("missing column", "column", required)
			return
		}
	}

	inserted := 0
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			slog.Error("unable to read record", "line", line, "error", err)
			continue
		}

		employee, err := employeeFromRecord(record, columns)
		if err != nil {
			slog.Error("skipping record", "line", line, "error", err)
			continue
		}

		if err := r.CreateEmployee(employee); err != nil {
			slog.Error("unable to insert employee", "line", line, "error", err)
			continue
		}
		inserted++
	}

	slog.Info("employees imported", "count", inserted)
}

func employeeFromRecord(record []string, columns map[string]int) (*domain.Employee, error) {
	employee := &domain.Employee{
		FirstName:    strings.TrimSpace(record[columns["first_name"]]),
		LastName:     strings.TrimSpace(record[columns["last_name"]]),
		ContractType: domain.ContractType(strings.TrimSpace(record[columns["contract_type"]])),
		Preference:   domain.Preference(strings.TrimSpace(record[columns["preference"]])),
	}

	if employee.FirstName == "" || employee.LastName == "" {
		return nil, fmt.Errorf("empty name")
	}
	if !employee.ContractType.Valid() {
		return nil, fmt.Errorf("unknown contract type %q", employee.ContractType)
	}
	if !employee.Preference.Valid() {
		return nil, fmt.Errorf("unknown preference %q", employee.Preference)
	}

	return employee, nil
}
