package wsmodels

type EventCode string

const (
	EventCandidateStatusChanged EventCode = "candidate_status_changed"
	EventJobChanged             EventCode = "job_changed"
	EventSessionDeactivated     EventCode = "session_deactivated"
	EventSessionLoggedOut       EventCode = "session_logged_out"
)

type ServerMessage struct {
	ToClientID string      `json:"-"`
	Time       string      `json:"time"`           // время события
	Code       EventCode   `json:"code"`           // код события
	Msg        string      `json:"msg"`            // текст события
	Data       interface{} `json:"data,omitempty"` // полезная нагрузка события
}
