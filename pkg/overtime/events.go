package overtime

import "github.com/klokku/overtime/pkg/timesheet"

// ReportGenerated is published on event_bus.ReportGenerated after every successful run.
type ReportGenerated struct {
	Report Report
}

// RecordsRejected is published on event_bus.RecordsRejected when a lenient run skipped records.
type RecordsRejected struct {
	RunID    string
	Team     string
	Rejected []timesheet.RejectedRecord
}
