package portfolio

// Identity returns the id the entity is addressed by within its section.
func (p Project) Identity() string        { return p.ID }
func (s Skill) Identity() string          { return s.ID }
func (e Experience) Identity() string     { return e.ID }
func (e Education) Identity() string      { return e.ID }
func (m VisitorMessage) Identity() string { return m.ID }

// Stats is the dashboard overview of a document.
type Stats struct {
	Projects        int              `json:"projects"`
	VisibleProjects int              `json:"visibleProjects"`
	Skills          int              `json:"skills"`
	Experience      int              `json:"experience"`
	Education       int              `json:"education"`
	Messages        int              `json:"messages"`
	UnreadMessages  int              `json:"unreadMessages"`
	RecentMessages  []VisitorMessage `json:"recentMessages"`
}

const recentMessageCount = 3

func (d *Document) Stats() Stats {
	recent := d.Messages
	if len(recent) > recentMessageCount {
		recent = recent[:recentMessageCount]
	}
	return Stats{
		Projects:        len(d.Projects),
		VisibleProjects: len(d.VisibleProjects()),
		Skills:          len(d.Skills),
		Experience:      len(d.Experience),
		Education:       len(d.Education),
		Messages:        len(d.Messages),
		UnreadMessages:  d.UnreadMessages(),
		RecentMessages:  append([]VisitorMessage{}, recent...),
	}
}
