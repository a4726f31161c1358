package domain

// FlowStep шаг процесса бронирования
type FlowStep string

const (
	StepSelectOffice     FlowStep = "select_office"
	StepSelectService    FlowStep = "select_service"
	StepViewInstructions FlowStep = "view_instructions"
	StepUploadDocuments  FlowStep = "upload_documents"
	StepSelectDateTime   FlowStep = "select_date_time"
	StepDone             FlowStep = "done"
)
