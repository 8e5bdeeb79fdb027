package candidateapimodels

import (
	"net/url"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	"strings"
)

type Candidate struct {
	ID          apimodels.ID           `json:"id"`
	Fullname    string                 `json:"fullname"`
	Email       string                 `json:"email"`
	PhoneNumber string                 `json:"phoneNumber,omitempty"`
	GPA         interface{}            `json:"gpa,omitempty"` // бэкенд отдает и строкой, и числом
	Experience  string                 `json:"experience,omitempty"`
	Skills      string                 `json:"skills,omitempty"`
	CoverLetter string                 `json:"coverletter,omitempty"`
	JobTitle    string                 `json:"jobTitle"`
	Location    string                 `json:"location,omitempty"`
	Department  string                 `json:"department"`
	Status      models.CandidateStatus `json:"status"`
	ResumePath  string                 `json:"resumepath,omitempty"`
	Link        string                 `json:"link,omitempty"`
	CreatedAt   string                 `json:"createdAt,omitempty"`
	UpdatedAt   string                 `json:"updatedAt,omitempty"`
}

// CandidateFilter фильтры списка кандидатов
type CandidateFilter struct {
	Department  string `json:"department" query:"department"`
	Status      string `json:"status" query:"status"`
	Search      string `json:"search" query:"search"`
	AppliedDate string `json:"appliedDate" query:"appliedDate"`
}

func (f CandidateFilter) Query() url.Values {
	values := url.Values{}
	add := func(key, value string) {
		value = strings.TrimSpace(value)
		if value != "" && value != "all" {
			values.Set(key, value)
		}
	}
	add("department", f.Department)
	add("status", f.Status)
	add("search", f.Search)
	add("appliedDate", f.AppliedDate)
	return values
}

type CandidateStats struct {
	TotalCandidates int            `json:"totalCandidates"`
	ByStatus        map[string]int `json:"byStatus"`
	ByDepartment    map[string]int `json:"byDepartment"`
}

type ApplicationCheck struct {
	HasApplied bool   `json:"hasApplied"`
	Message    string `json:"message,omitempty"`
}

type UploadResponse struct {
	Path string `json:"path"`
}

type CandidatePage struct {
	Items      []Candidate `json:"items"`
	Page       int         `json:"page"`
	TotalPages int         `json:"total_pages"`
}
