package candidateshandler

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"recruit-portal/lib/backend/client"
	"recruit-portal/models"
	apimodels "recruit-portal/models/api"
	candidateapimodels "recruit-portal/models/api/candidate"
)

type fakeBackend struct {
	candidates  []candidateapimodels.Candidate
	getCalls    int
	downloadErr error
	downloads   int
}

func (f *fakeBackend) ListCandidates(ctx context.Context, accessToken string, filter candidateapimodels.CandidateFilter) ([]candidateapimodels.Candidate, error) {
	return f.candidates, nil
}

func (f *fakeBackend) GetCandidate(ctx context.Context, accessToken, candidateID string) (*candidateapimodels.Candidate, error) {
	f.getCalls++
	for _, candidate := range f.candidates {
		if candidate.ID.String() == candidateID {
			result := candidate
			return &result, nil
		}
	}
	return nil, &client.APIError{StatusCode: http.StatusNotFound, Message: "Candidate not found"}
}

func (f *fakeBackend) DownloadResume(ctx context.Context, accessToken, fileName string) (*client.File, error) {
	f.downloads++
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return &client.File{Name: fileName, ContentType: "application/pdf", Content: []byte("%PDF")}, nil
}

type fakeMirror struct {
	files map[string]client.File
}

func (f *fakeMirror) PutResume(ctx context.Context, file client.File) error {
	f.files[file.Name] = file
	return nil
}

func (f *fakeMirror) GetResume(ctx context.Context, fileName string) (*client.File, bool, error) {
	file, ok := f.files[fileName]
	if !ok {
		return nil, false, nil
	}
	return &file, true, nil
}

func (f *fakeMirror) MakeBucket(ctx context.Context) error {
	return nil
}

func manyCandidates(count int) []candidateapimodels.Candidate {
	result := make([]candidateapimodels.Candidate, 0, count)
	for n := 1; n <= count; n++ {
		result = append(result, candidateapimodels.Candidate{
			ID:       apimodels.ID(strconv.Itoa(n)),
			Fullname: "Candidate " + strconv.Itoa(n),
			Status:   models.CandidateReceived,
		})
	}
	return result
}

func TestCandidates(t *testing.T) {
	t.Run(`fetch fills client list and pages by 15 check`, func(t *testing.T) {
		backend := &fakeBackend{candidates: manyCandidates(32)}
		handler := New(backend, nil, 10, time.Minute)
		page, err := handler.Fetch(context.TODO(), "c1", "token", candidateapimodels.CandidateFilter{}, 2)
		require.Nil(t, err)
		require.Equal(t, 2, page.Page)
		require.Equal(t, 3, page.TotalPages)
		require.Len(t, page.Items, 15)
		require.Equal(t, "16", page.Items[0].ID.String())

		last := handler.Page("c1", 10)
		require.Equal(t, 3, last.Page)
		require.Len(t, last.Items, 2)
		require.Equal(t, 0, handler.Page("c2", 1).TotalPages)

		handler.DropClient("c1")
		require.Equal(t, 0, handler.List("c1").Len())
	})

	t.Run(`detail cache and invalidate check`, func(t *testing.T) {
		backend := &fakeBackend{candidates: manyCandidates(2)}
		handler := New(backend, nil, 10, time.Minute)
		first, err := handler.Get(context.TODO(), "token", "1")
		require.Nil(t, err)
		require.Equal(t, "Candidate 1", first.Fullname)
		_, err = handler.Get(context.TODO(), "token", "1")
		require.Nil(t, err)
		require.Equal(t, 1, backend.getCalls)

		handler.Invalidate("1")
		_, err = handler.Get(context.TODO(), "token", "1")
		require.Nil(t, err)
		require.Equal(t, 2, backend.getCalls)

		_, err = handler.Get(context.TODO(), "token", "404")
		require.NotNil(t, err)
		require.Equal(t, http.StatusNotFound, client.StatusCode(err))
	})

	t.Run(`resume download messages check`, func(t *testing.T) {
		cases := []struct {
			err     error
			code    int
			message string
		}{
			{&client.APIError{StatusCode: http.StatusNotFound}, http.StatusNotFound, ResumeNotFoundMessage},
			{&client.APIError{StatusCode: http.StatusForbidden}, http.StatusForbidden, ResumeForbiddenMessage},
			{errors.Wrap(client.ErrNoResponse, "timeout"), http.StatusBadGateway, ResumeNetworkMessage},
			{&client.APIError{StatusCode: http.StatusInternalServerError, Message: "Disk failure"}, http.StatusInternalServerError, "Disk failure"},
			{&client.APIError{StatusCode: http.StatusInternalServerError}, http.StatusInternalServerError, ResumeFailedMessage},
		}
		for _, tc := range cases {
			handler := New(&fakeBackend{downloadErr: tc.err}, nil, 10, time.Minute)
			_, err := handler.DownloadResume(context.TODO(), "token", "cv.pdf")
			require.NotNil(t, err)
			require.Equal(t, tc.code, client.StatusCode(err))
			require.Equal(t, tc.message, client.UserMessage(err, ""))
		}
	})

	t.Run(`resume mirror check`, func(t *testing.T) {
		backend := &fakeBackend{}
		mirror := &fakeMirror{files: map[string]client.File{}}
		handler := New(backend, mirror, 10, time.Minute)
		file, err := handler.DownloadResume(context.TODO(), "token", "cv.pdf")
		require.Nil(t, err)
		require.Equal(t, []byte("%PDF"), file.Content)
		require.Contains(t, mirror.files, "cv.pdf")

		file, err = handler.DownloadResume(context.TODO(), "token", "cv.pdf")
		require.Nil(t, err)
		require.Equal(t, "application/pdf", file.ContentType)
		require.Equal(t, 1, backend.downloads)
	})
}
