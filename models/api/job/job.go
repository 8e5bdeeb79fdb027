package jobapimodels

import (
	"context"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"math"
	"net/url"
	apimodels "recruit-portal/models/api"
	"strconv"
	"strings"
	"time"
)

type Job struct {
	ID             apimodels.ID `json:"id"`
	Title          string       `json:"title"`
	Company        string       `json:"company"`
	Department     string       `json:"department"`
	Location       string       `json:"location"`
	Deadline       string       `json:"deadline"`
	EmploymentType string       `json:"employmentType"`
	Description    string       `json:"description"`
	Requirements   string       `json:"requirements"`
	Skills         string       `json:"skills"`
	Salary         interface{}  `json:"salary,omitempty"`
	Experience     string       `json:"experience,omitempty"`
	IsActive       bool         `json:"isActive"`
	CreatedAt      string       `json:"createdAt,omitempty"`
	UpdatedAt      string       `json:"updatedAt,omitempty"`
}

// PublicJob вакансия на публичной странице
type PublicJob struct {
	Job
	Applied bool `json:"applied"`
}

type JobFilter struct {
	Department     string `json:"department" query:"department"`
	Location       string `json:"location" query:"location"`
	EmploymentType string `json:"employmentType" query:"employmentType"`
	Search         string `json:"search" query:"search"`
	IsActive       *bool  `json:"isActive" query:"isActive"`
}

func (f JobFilter) Query() url.Values {
	values := url.Values{}
	if f.Department != "" {
		values.Set("department", f.Department)
	}
	if f.Location != "" {
		values.Set("location", f.Location)
	}
	if f.EmploymentType != "" {
		values.Set("employmentType", f.EmploymentType)
	}
	if f.IsActive != nil {
		values.Set("isActive", strconv.FormatBool(*f.IsActive))
	}
	return values
}

// Match локальная фильтрация, которую публичная страница делает поверх ответа бэкенда
func (f JobFilter) Match(job Job) bool {
	if f.IsActive != nil && job.IsActive != *f.IsActive {
		return false
	}
	if f.Department != "" && !strings.EqualFold(job.Department, f.Department) {
		return false
	}
	if f.EmploymentType != "" && !strings.EqualFold(job.EmploymentType, f.EmploymentType) {
		return false
	}
	if f.Location != "" && !strings.Contains(strings.ToLower(job.Location), strings.ToLower(f.Location)) {
		return false
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	if search == "" {
		return true
	}
	for _, field := range []string{job.Title, job.Company, job.Description, job.Skills, job.Department} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

// JobForm создание и редактирование вакансии
type JobForm struct {
	Title          string `json:"title" validate:"notblank"`
	Company        string `json:"company" validate:"notblank"`
	Department     string `json:"department" validate:"notblank"`
	Location       string `json:"location" validate:"notblank"`
	Deadline       string `json:"deadline" validate:"notblank,deadline,future_deadline"`
	EmploymentType string `json:"employmentType" validate:"notblank"`
	Description    string `json:"description" validate:"notblank"`
	Requirements   string `json:"requirements" validate:"notblank"`
	Skills         string `json:"skills" validate:"notblank"`
	Salary         string `json:"salary" validate:"notblank,salary"`
	Experience     string `json:"experience"`
}

var jobFieldMessages = map[string]string{
	"Title.notblank":           "Title is required",
	"Company.notblank":         "Company is required",
	"Department.notblank":      "Department is required",
	"Location.notblank":        "Location is required",
	"Deadline.notblank":        "Deadline is required",
	"Deadline.deadline":        "Invalid deadline",
	"Deadline.future_deadline": "Deadline must be in the future",
	"EmploymentType.notblank":  "Employment type is required",
	"Description.notblank":     "Description is required",
	"Requirements.notblank":    "Requirements are required",
	"Skills.notblank":          "Skills are required",
	"Salary.notblank":          "Salary is required",
	"Salary.salary":            "Salary must be a number",
}

type nowKey struct{}

func init() {
	apimodels.RegisterRule("salary", func(fl validator.FieldLevel) bool {
		_, ok := parseSalary(fl.Field().String())
		return ok
	})
	apimodels.RegisterRule("deadline", func(fl validator.FieldLevel) bool {
		_, err := ParseDeadline(fl.Field().String())
		return err == nil
	})
	apimodels.RegisterRuleCtx("future_deadline", func(ctx context.Context, fl validator.FieldLevel) bool {
		now, ok := ctx.Value(nowKey{}).(time.Time)
		if !ok {
			now = time.Now()
		}
		deadline, err := ParseDeadline(fl.Field().String())
		return err == nil && !deadline.Before(now)
	})
}

var deadlineLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02",
}

func ParseDeadline(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("Invalid deadline: %v", value)
}

// parseSalary NaN и Inf бэкенду не передать: json их не кодирует
func parseSalary(value string) (float64, bool) {
	salary, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil || math.IsNaN(salary) || math.IsInf(salary, 0) {
		return 0, false
	}
	return salary, true
}

// Validate now - момент, после которого должен наступить срок вакансии
func (r JobForm) Validate(now time.Time) error {
	return apimodels.ValidateForm(context.WithValue(context.Background(), nowKey{}, now), r, jobFieldMessages)
}

// JobPayload тело запроса к бэкенду, зарплата передается числом
type JobPayload struct {
	Title          string  `json:"title"`
	Company        string  `json:"company"`
	Department     string  `json:"department"`
	Location       string  `json:"location"`
	Deadline       string  `json:"deadline"`
	EmploymentType string  `json:"employmentType"`
	Description    string  `json:"description"`
	Requirements   string  `json:"requirements"`
	Skills         string  `json:"skills"`
	Salary         float64 `json:"salary"`
	Experience     string  `json:"experience,omitempty"`
}

func (r JobForm) ToPayload() JobPayload {
	salary, _ := parseSalary(r.Salary)
	experience := r.Experience
	if experience == "" {
		experience = "0-1 years"
	}
	return JobPayload{
		Title:          strings.TrimSpace(r.Title),
		Company:        strings.TrimSpace(r.Company),
		Department:     strings.TrimSpace(r.Department),
		Location:       strings.TrimSpace(r.Location),
		Deadline:       strings.TrimSpace(r.Deadline),
		EmploymentType: r.EmploymentType,
		Description:    r.Description,
		Requirements:   r.Requirements,
		Skills:         r.Skills,
		Salary:         salary,
		Experience:     experience,
	}
}

// JobStats агрегаты бэкенда, структура ответа не фиксирована
type JobStats map[string]interface{}
