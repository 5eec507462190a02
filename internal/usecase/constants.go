package usecase

const (
	// ConsistencyScanLimit bounds how many offending transactions a
	// single consistency check reports.
	ConsistencyScanLimit = 100
)
