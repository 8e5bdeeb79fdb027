package messagetemplate

import (
	"bytes"
	"recruit-portal/models"
	"text/template"
)

const (
	statusUpdateTitle = "Application Status Update"
	DefaultTeamName   = "Smart Recruit Team"
)

const statusDefaultTpl = `Dear {{.CandidateName}},

We hope this email finds you well. We are writing to inform you about your application for the {{.JobTitle}} position.

Your application status has been updated to: {{.Status}}

Best regards,
{{.TeamName}}`

const statusPreviewFallbackTpl = `Dear {{.CandidateName}},

We hope this email finds you well. We are writing to inform you about your application{{if .JobTitle}} for the {{.JobTitle}} position{{end}}.

Your application status has been updated to: {{.Status}}

Thank you for your interest in our organization.

Best regards,
{{.TeamName}}`

const statusFailureFallbackTpl = `Dear {{.CandidateName}},

We hope this email finds you well. We are writing to inform you about your application for the {{.JobTitle}} position.

Your application status has been updated to: {{.Status}}

We appreciate your interest in joining our team and thank you for taking the time to apply.

Best regards,
{{.TeamName}}`

var (
	statusDefault         = template.Must(template.New("status_default").Parse(statusDefaultTpl))
	statusPreviewFallback = template.Must(template.New("status_preview_fallback").Parse(statusPreviewFallbackTpl))
	statusFailureFallback = template.Must(template.New("status_failure_fallback").Parse(statusFailureFallbackTpl))
)

func GetStatusUpdateTitle() string {
	return statusUpdateTitle
}

// BuildStatusDefaultMsg текст письма, которым заполняется окно сразу при выборе статуса
func BuildStatusDefaultMsg(data models.StatusEmailTemplateData) (string, error) {
	return execute(statusDefault, data)
}

// BuildStatusPreviewFallbackMsg бэкенд вернул пустое превью
func BuildStatusPreviewFallbackMsg(data models.StatusEmailTemplateData) (string, error) {
	return execute(statusPreviewFallback, data)
}

// BuildStatusFailureFallbackMsg превью получить не удалось
func BuildStatusFailureFallbackMsg(data models.StatusEmailTemplateData) (string, error) {
	return execute(statusFailureFallback, data)
}

func execute(tpl *template.Template, data models.StatusEmailTemplateData) (string, error) {
	if data.TeamName == "" {
		data.TeamName = DefaultTeamName
	}
	buf := new(bytes.Buffer)
	err := tpl.Execute(buf, data)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
