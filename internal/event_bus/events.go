package event_bus

const (
	// ReportGenerated carries an overtime.ReportGenerated payload.
	ReportGenerated EventType = "overtime.report.generated"
	// RecordsRejected carries an overtime.RecordsRejected payload, published in lenient mode only.
	RecordsRejected EventType = "overtime.records.rejected"
)
