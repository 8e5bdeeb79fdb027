package candidatelist

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	candidateapimodels "recruit-portal/models/api/candidate"
)

func candidates(n int) []candidateapimodels.Candidate {
	result := []candidateapimodels.Candidate{}
	for i := 1; i <= n; i++ {
		result = append(result, candidateapimodels.Candidate{
			ID:       apimodels.ID(fmt.Sprint(i)),
			Fullname: fmt.Sprintf("Candidate %d", i),
			Email:    fmt.Sprintf("c%d@example.com", i),
			JobTitle: "Engineer",
			Status:   models.CandidateReceived,
		})
	}
	return result
}

func TestList(t *testing.T) {
	t.Run(`SetStatus touches only status check`, func(t *testing.T) {
		list := New()
		list.Replace(candidates(3))
		before, _ := list.Find("2")
		require.True(t, list.SetStatus("2", models.CandidateInterview))
		after, ok := list.Find("2")
		require.True(t, ok)
		require.Equal(t, models.CandidateInterview, after.Status)
		after.Status = before.Status
		require.Equal(t, before, after)
		other, _ := list.Find("1")
		require.Equal(t, models.CandidateReceived, other.Status)
		require.False(t, list.SetStatus("42", models.CandidateInterview))
	})

	t.Run(`Replace copies input check`, func(t *testing.T) {
		items := candidates(1)
		list := New()
		list.Replace(items)
		items[0].Status = models.CandidateRejected
		found, _ := list.Find("1")
		require.Equal(t, models.CandidateReceived, found.Status)
	})

	t.Run(`Page check`, func(t *testing.T) {
		list := New()
		require.Equal(t, 0, list.Page(1).TotalPages)
		list.Replace(candidates(32))
		page := list.Page(1)
		require.Len(t, page.Items, ItemsPerPage)
		require.Equal(t, 3, page.TotalPages)
		page = list.Page(3)
		require.Len(t, page.Items, 2)
		require.Equal(t, "31", page.Items[0].ID.String())
		require.Equal(t, 3, list.Page(10).Page)
		require.Equal(t, 1, list.Page(0).Page)
		require.Equal(t, 32, list.Len())
	})

	t.Run(`Registry check`, func(t *testing.T) {
		registry := NewRegistry()
		first := registry.Get("c1")
		require.Same(t, first, registry.Get("c1"))
		require.NotSame(t, first, registry.Get("c2"))
		registry.Drop("c1")
		require.NotSame(t, first, registry.Get("c1"))
	})
}
