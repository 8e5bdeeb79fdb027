package messagetemplate

import (
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-portal/models"
)

func TestStatusTemplates(t *testing.T) {
	data := models.StatusEmailTemplateData{
		CandidateName: "Jane Doe",
		JobTitle:      "Backend Engineer",
		Status:        models.CandidateInterview,
	}

	t.Run(`default message check`, func(t *testing.T) {
		msg, err := BuildStatusDefaultMsg(data)
		require.Nil(t, err)
		expected := "Dear Jane Doe,\n\nWe hope this email finds you well. We are writing to inform you about your application for the Backend Engineer position.\n\nYour application status has been updated to: Interview\n\nBest regards,\nSmart Recruit Team"
		require.Equal(t, expected, msg)
	})

	t.Run(`preview fallback without job title check`, func(t *testing.T) {
		noJob := data
		noJob.JobTitle = ""
		msg, err := BuildStatusPreviewFallbackMsg(noJob)
		require.Nil(t, err)
		require.Contains(t, msg, "about your application.\n")
		require.Contains(t, msg, "Thank you for your interest in our organization.")
	})

	t.Run(`failure fallback check`, func(t *testing.T) {
		msg, err := BuildStatusFailureFallbackMsg(data)
		require.Nil(t, err)
		require.Contains(t, msg, "Jane Doe")
		require.Contains(t, msg, "Interview")
		require.Contains(t, msg, "We appreciate your interest in joining our team")
	})

	t.Run(`title check`, func(t *testing.T) {
		require.Equal(t, "Application Status Update", GetStatusUpdateTitle())
	})
}
