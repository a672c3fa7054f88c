package domain

// LoadState is the state of the news view
type LoadState string

// view states
const (
	StateIdle    LoadState = "idle"
	StateLoading LoadState = "loading"
	StateLoaded  LoadState = "loaded"
)

// ViewState is a snapshot of the news view
type ViewState struct {
	State      LoadState `json:"state"`
	Category   Category  `json:"category"`
	Articles   []Article `json:"articles"`
	Generation uint64    `json:"generation"`
}
