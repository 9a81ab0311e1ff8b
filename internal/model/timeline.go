package model

// TimelineEvent is one entry of the running-history timeline.
// Year is free text ("1896", "early 1900s", "2019-10-12") so it stays a string.
// Position controls ordering; events sort by (position, year).
type TimelineEvent struct {
	ID          string              `json:"id"`
	Year        string              `json:"year"`
	Description string              `json:"description"`
	Position    int                 `json:"order"`
	References  []TimelineReference `json:"references"`
}

// TimelineReference is supporting material attached to a timeline event,
// with an optional Q&A pair shown on the reference card.
type TimelineReference struct {
	ID          string `json:"id"`
	EventID     string `json:"event"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Question    string `json:"question"`
	Answer      string `json:"answer"`
}
