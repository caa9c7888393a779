package entities

// Phase is the one-way game lifecycle
type Phase string

// Phases
const (
	PhaseOnboarding Phase = "ONBOARDING"
	PhasePlaying    Phase = "PLAYING"
)

// EntryKind distinguishes player input from model narrative in the log
type EntryKind string

// Entry kinds
const (
	EntryPlayer    EntryKind = "player"
	EntryNarrative EntryKind = "narrative"
)

// StoryEntry is one line of the append-only story log
type StoryEntry struct {
	ID       int64     `json:"id"`
	Kind     EntryKind `json:"type"`
	Text     string    `json:"text"`
	ImageURL string    `json:"imageUrl,omitempty"`
}

// TimelineEvent is a significant world event. ImageURL may be back-filled by
// the scene image of the turn that logged it.
type TimelineEvent struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

// GameState is the session's progress
type GameState struct {
	Phase    Phase           `json:"phase"`
	Loading  bool            `json:"isLoading"`
	StoryLog []StoryEntry    `json:"storyLog"`
	Timeline []TimelineEvent `json:"timeline"`
}

// NewGameState returns a fresh onboarding session
func NewGameState() GameState {
	return GameState{
		Phase:    PhaseOnboarding,
		StoryLog: []StoryEntry{},
		Timeline: []TimelineEvent{},
	}
}

// RecentTimeline returns up to the last n events, oldest first
func (g *GameState) RecentTimeline(n int) []TimelineEvent {
	start := len(g.Timeline) - n
	if start < 0 {
		start = 0
	}
	return append([]TimelineEvent{}, g.Timeline[start:]...)
}

// BackfillLastEvent attaches url to the most recent timeline event when it
// has no image yet. Only the last event is considered.
func (g *GameState) BackfillLastEvent(url string) bool {
	if len(g.Timeline) == 0 || url == "" {
		return false
	}
	last := &g.Timeline[len(g.Timeline)-1]
	if last.ImageURL != "" {
		return false
	}
	last.ImageURL = url
	return true
}

// MaxID returns the largest story or timeline id in the log
func (g *GameState) MaxID() int64 {
	var max int64
	for _, e := range g.StoryLog {
		if e.ID > max {
			max = e.ID
		}
	}
	for _, e := range g.Timeline {
		if e.ID > max {
			max = e.ID
		}
	}
	return max
}

// Normalize fills nil collections
func (g *GameState) Normalize() {
	if g.StoryLog == nil {
		g.StoryLog = []StoryEntry{}
	}
	if g.Timeline == nil {
		g.Timeline = []TimelineEvent{}
	}
}

// Clone returns a deep copy
func (g GameState) Clone() GameState {
	out := g
	out.StoryLog = append([]StoryEntry{}, g.StoryLog...)
	out.Timeline = append([]TimelineEvent{}, g.Timeline...)
	return out
}
