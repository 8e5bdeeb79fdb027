package models

type CandidateStatus string

const (
	CandidateUnderReview CandidateStatus = "Under Review"
	CandidateReceived    CandidateStatus = "Received"
	CandidateAccepted    CandidateStatus = "Accepted"
	CandidateRejected    CandidateStatus = "Rejected"
	CandidateInterview   CandidateStatus = "Interview"
	CandidateCallForExam CandidateStatus = "Call for exam"
)

// значения передаются бэкенду как есть
var candidateStatuses = []CandidateStatus{
	CandidateUnderReview,
	CandidateReceived,
	CandidateAccepted,
	CandidateRejected,
	CandidateInterview,
	CandidateCallForExam,
}

func CandidateStatuses() []CandidateStatus {
	list := make([]CandidateStatus, len(candidateStatuses))
	copy(list, candidateStatuses)
	return list
}

func (s CandidateStatus) IsValid() bool {
	for _, item := range candidateStatuses {
		if item == s {
			return true
		}
	}
	return false
}

func (s CandidateStatus) String() string {
	return string(s)
}
