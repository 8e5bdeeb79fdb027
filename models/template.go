package models

// StatusEmailTemplateData данные для шаблонов письма о смене статуса кандидата
type StatusEmailTemplateData struct {
	CandidateName string
	JobTitle      string
	Status        CandidateStatus
	TeamName      string
}

// ReportData данные для выгрузки отчета по кандидатам (xlsx/pdf)
type ReportData struct {
	TotalCandidates int
	ByStatus        map[string]int
	ByDepartment    map[string]int
	GeneratedAt     string
}
