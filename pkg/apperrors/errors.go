package apperrors

import "errors"

var (
	ErrUnknownRange = errors.New("unrecognized date range selector")
	ErrNoLeads      = errors.New("no leads to export")
	ErrNoValidRows  = errors.New("no valid leads found in CSV file")
	ErrEmptyCSV     = errors.New("CSV file is empty or has no data rows")
)
