package dashboardapimodels

import (
	authapimodels "recruit-portal/models/api/auth"
	candidateapimodels "recruit-portal/models/api/candidate"
	jobapimodels "recruit-portal/models/api/job"
	"time"
)

type DashboardStats struct {
	TotalJobs         int `json:"totalJobs"`
	ActiveJobs        int `json:"activeJobs"`
	TotalApplications int `json:"totalApplications"`
	NewToday          int `json:"newToday"`
}

// StatsSnapshot последний результат периодического обновления
type StatsSnapshot struct {
	Dashboard  *DashboardStats                    `json:"dashboard,omitempty"`
	Candidates *candidateapimodels.CandidateStats `json:"candidates,omitempty"`
	Jobs       jobapimodels.JobStats              `json:"jobs,omitempty"`
	UpdatedAt  time.Time                          `json:"updatedAt"`
}

type NavItem struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// ShellView данные каркаса админки
type ShellView struct {
	User            *authapimodels.SessionUser `json:"user,omitempty"`
	NavItems        []NavItem                  `json:"navItems"`
	Warning         string                     `json:"warning,omitempty"`
	LogoutInSeconds int                        `json:"logoutInSeconds,omitempty"`
}
