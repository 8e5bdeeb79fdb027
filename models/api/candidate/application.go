package candidateapimodels

import (
	"context"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	"regexp"
	"strconv"
	"strings"
)

const (
	MaxResumeSize  = 5 * 1024 * 1024
	MinGPA         = 0.5
	MaxGPA         = 4.0
	PhonePrefix    = "+251"
	minSkills      = 2
	minCoverLetter = 50
	maxCoverLetter = 1000
)

var ResumeContentTypes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

var (
	fullNameRegexp    = regexp.MustCompile(`^[A-Za-z]+(?:\s[A-Za-z]+)+$`)
	phoneRegexp       = regexp.MustCompile(`^[+]251\d{9}$`)
	sentenceEndRegexp = regexp.MustCompile(`[.!?](\s|$)`)
)

// ApplicationForm анкета кандидата со страницы вакансии
type ApplicationForm struct {
	FullName    string `json:"fullName" form:"fullName" validate:"required,fullname"`
	Email       string `json:"email" form:"email" validate:"required,portal_email"`
	PhoneNumber string `json:"phoneNumber" form:"phoneNumber" validate:"required,phone"`
	CoverLetter string `json:"coverLetter" form:"coverLetter" validate:"required,coverletter"`
	GPA         string `json:"gpa" form:"gpa" validate:"required,gpa"`
	ResumeLink  string `json:"resumeLink" form:"resumeLink" validate:"omitempty,url"`
	Experience  string `json:"experience" form:"experience" validate:"required"`
	Skills      string `json:"skills" form:"skills" validate:"required,skills"`
	JobTitle    string `json:"jobTitle" form:"jobTitle" validate:"required"`
	Department  string `json:"department" form:"department"`
	Location    string `json:"location" form:"location"`
}

var fieldMessages = map[string]string{
	"FullName.required":       "Full name is required",
	"FullName.fullname":       "Please enter a valid full name (only letters, at least first and last name)",
	"Email.required":          "Email is required",
	"Email.portal_email":      "Please enter a valid email address",
	"PhoneNumber.required":    "Phone number is required",
	"PhoneNumber.phone":       "Phone must be +251 followed by 9 digits",
	"CoverLetter.required":    "Cover letter is required",
	"CoverLetter.coverletter": "Cover letter must be between 50-1000 characters and contain complete sentences",
	"GPA.required":            "GPA is required",
	"GPA.gpa":                 "GPA must be between 0.5 and 4.0",
	"ResumeLink.url":          "Please enter a valid URL",
	"Experience.required":     "Experience is required",
	"Skills.required":         "Skills are required",
	"Skills.skills":           "Please enter at least 2 valid skills, separated by commas",
	"JobTitle.required":       "Job title is required",
}

func init() {
	apimodels.RegisterRule("fullname", func(fl validator.FieldLevel) bool {
		return fullNameRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	apimodels.RegisterRule("phone", func(fl validator.FieldLevel) bool {
		return phoneRegexp.MatchString(strings.TrimSpace(fl.Field().String()))
	})
	apimodels.RegisterRule("coverletter", func(fl validator.FieldLevel) bool {
		return isCoverLetter(fl.Field().String())
	})
	apimodels.RegisterRule("gpa", func(fl validator.FieldLevel) bool {
		_, ok := parseGPA(fl.Field().String())
		return ok
	})
	apimodels.RegisterRule("skills", func(fl validator.FieldLevel) bool {
		return len(SplitSkills(fl.Field().String())) >= minSkills
	})
}

func isCoverLetter(letter string) bool {
	trimmed := []rune(strings.TrimSpace(letter))
	return len(trimmed) >= minCoverLetter &&
		len(trimmed) <= maxCoverLetter &&
		sentenceEndRegexp.MatchString(letter)
}

func parseGPA(value string) (float64, bool) {
	gpa, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, false
	}
	return gpa, gpa >= MinGPA && gpa <= MaxGPA
}

func SplitSkills(skills string) []string {
	result := []string{}
	for _, skill := range strings.Split(skills, ",") {
		skill = strings.TrimSpace(skill)
		if skill != "" {
			result = append(result, skill)
		}
	}
	return result
}

// Validate hasResumeFile - к анкете приложен файл резюме
func (r ApplicationForm) Validate(hasResumeFile bool) error {
	formErrors := apimodels.FormErrors{}
	if err := apimodels.ValidateForm(context.Background(), r, fieldMessages); err != nil {
		if !errors.As(err, &formErrors) {
			return err
		}
	}
	if !hasResumeFile && strings.TrimSpace(r.ResumeLink) == "" {
		formErrors["file"] = "Please upload resume or provide a link"
	}
	if len(formErrors) > 0 {
		return formErrors
	}
	return nil
}

// ValidateResumeFile проверка типа и размера загружаемого резюме
func ValidateResumeFile(contentType string, size int64) error {
	allowed := false
	for _, item := range ResumeContentTypes {
		if strings.EqualFold(strings.TrimSpace(contentType), item) {
			allowed = true
			break
		}
	}
	if !allowed {
		return errors.New("Invalid file type. Please upload a PDF or Word document.")
	}
	if size > MaxResumeSize {
		return errors.New("File too large. Maximum size is 5MB.")
	}
	return nil
}

// CreateCandidateRequest тело создания кандидата на бэкенде
type CreateCandidateRequest struct {
	Fullname    string                 `json:"fullname"`
	Email       string                 `json:"email"`
	GPA         string                 `json:"gpa"`
	Experience  string                 `json:"experience"`
	Skills      string                 `json:"skills"`
	CoverLetter string                 `json:"coverletter"`
	JobTitle    string                 `json:"jobTitle"`
	Location    string                 `json:"location"`
	Department  string                 `json:"department"`
	Status      models.CandidateStatus `json:"status"`
	PhoneNumber string                 `json:"phoneNumber"`
	ResumePath  string                 `json:"resumepath,omitempty"`
	Link        string                 `json:"link,omitempty"`
}

// ToCreateRequest resumePath - путь загруженного файла, если он был
func (r ApplicationForm) ToCreateRequest(resumePath string) CreateCandidateRequest {
	gpa, _ := parseGPA(r.GPA)
	result := CreateCandidateRequest{
		Fullname:    strings.TrimSpace(r.FullName),
		Email:       strings.TrimSpace(r.Email),
		GPA:         strconv.FormatFloat(gpa, 'f', 2, 64),
		Experience:  r.Experience,
		Skills:      strings.TrimSpace(r.Skills),
		CoverLetter: strings.TrimSpace(r.CoverLetter),
		JobTitle:    r.JobTitle,
		Location:    r.Location,
		Department:  r.Department,
		Status:      models.CandidateReceived,
		PhoneNumber: strings.TrimSpace(r.PhoneNumber),
	}
	if result.Department == "" {
		result.Department = "Engineering"
	}
	if result.Location == "" {
		result.Location = "Ethiopia"
	}
	if resumePath != "" {
		result.ResumePath = resumePath
	} else if r.ResumeLink != "" {
		result.Link = strings.TrimSpace(r.ResumeLink)
	}
	return result
}
