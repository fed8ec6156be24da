package model

// RequestState is the phase of the current (or most recent) submission.
type RequestState string

const (
	StateIdle      RequestState = "IDLE"
	StateLoading   RequestState = "LOADING"
	StateSucceeded RequestState = "SUCCEEDED"
	StateFailed    RequestState = "FAILED"
)

// Lifecycle is a single point-in-time value. Results is set only when Succeeded,
// Message only when Failed.
type Lifecycle struct {
	State   RequestState  `json:"state" enum:"IDLE,LOADING,SUCCEEDED,FAILED"`
	Results []ScoredStock `json:"results,omitempty"`
	Message string        `json:"message,omitempty"`
}

func Idle() Lifecycle {
	return Lifecycle{State: StateIdle}
}

func Loading() Lifecycle {
	return Lifecycle{State: StateLoading}
}

func Succeeded(results []ScoredStock) Lifecycle {
	if results == nil {
		results = []ScoredStock{}
	}
	return Lifecycle{State: StateSucceeded, Results: results}
}

func Failed(message string) Lifecycle {
	return Lifecycle{State: StateFailed, Message: message}
}

// ScreenerView is what a presentation layer needs to draw the form.
type ScreenerView struct {
	Filters  ScreenerFilters `json:"filters"`
	State    RequestState    `json:"state" enum:"IDLE,LOADING,SUCCEEDED,FAILED"`
	Busy     bool            `json:"busy" doc:"Submission in progress; resubmission is disabled"`
	InFlight bool            `json:"inFlight"`
	Error    string          `json:"error,omitempty"`
	Rows     []ResultRow     `json:"rows,omitempty"`
}
