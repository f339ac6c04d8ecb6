package portfolio

import "time"

// DefaultUserID is the owner id of the single portfolio a deployment serves.
const DefaultUserID = "default"

// Snapshot is the full portfolio aggregate returned by GET /portfolio and
// GET /export. Collections are ordered by their Order field.
type Snapshot struct {
	Portfolio    Profile         `json:"portfolio"`
	Skills       []SkillCategory `json:"skills"`
	Experiences  []Experience    `json:"experiences"`
	Projects     []Project       `json:"projects"`
	Achievements []Achievement   `json:"achievements"`
	Publications []Publication   `json:"publications"`
}

// Profile holds the singular portfolio document.
type Profile struct {
	ID        string       `json:"id" bson:"id"`
	UserID    string       `json:"userId" bson:"userId"`
	Personal  PersonalInfo `json:"personal" bson:"personal"`
	About     AboutSection `json:"about" bson:"about"`
	CreatedAt time.Time    `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt" bson:"updatedAt"`
}

// PersonalInfo is the contact and identity block shown in the page header.
type PersonalInfo struct {
	Name     string `json:"name" bson:"name"`
	Tagline  string `json:"tagline" bson:"tagline"`
	Email    string `json:"email" bson:"email"`
	GitHub   string `json:"github" bson:"github"`
	LinkedIn string `json:"linkedin" bson:"linkedin"`
	Kaggle   string `json:"kaggle" bson:"kaggle"`
}

// AboutSection is the free-form biography with education details.
type AboutSection struct {
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Education   Education `json:"education" bson:"education"`
}

// Education describes a degree.
type Education struct {
	Institution string `json:"institution" bson:"institution"`
	Degree      string `json:"degree" bson:"degree"`
	Duration    string `json:"duration" bson:"duration"`
}

// SkillCategory groups related skills under a title.
type SkillCategory struct {
	ID          string    `json:"id" bson:"id"`
	PortfolioID string    `json:"portfolioId" bson:"portfolioId"`
	Title       string    `json:"title" bson:"title"`
	Items       []string  `json:"items" bson:"items"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Experience is one position in the work history.
type Experience struct {
	ID          string    `json:"id" bson:"id"`
	PortfolioID string    `json:"portfolioId" bson:"portfolioId"`
	Title       string    `json:"title" bson:"title"`
	Company     string    `json:"company" bson:"company"`
	Location    string    `json:"location" bson:"location"`
	Duration    string    `json:"duration" bson:"duration"`
	Description string    `json:"description" bson:"description"`
	Current     bool      `json:"current" bson:"current"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Project is a showcased project. GitHub and Demo default to "#" when the
// project has no public link.
type Project struct {
	ID           string    `json:"id" bson:"id"`
	PortfolioID  string    `json:"portfolioId" bson:"portfolioId"`
	Title        string    `json:"title" bson:"title"`
	Description  string    `json:"description" bson:"description"`
	Technologies []string  `json:"technologies" bson:"technologies"`
	GitHub       string    `json:"github" bson:"github"`
	Demo         string    `json:"demo" bson:"demo"`
	Featured     bool      `json:"featured" bson:"featured"`
	Placeholder  bool      `json:"placeholder" bson:"placeholder"`
	Order        int       `json:"order" bson:"order"`
	CreatedAt    time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Achievement is an award or distinction.
type Achievement struct {
	ID          string    `json:"id" bson:"id"`
	PortfolioID string    `json:"portfolioId" bson:"portfolioId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Publication is a paper or book chapter. DOI is optional.
type Publication struct {
	ID          string    `json:"id" bson:"id"`
	PortfolioID string    `json:"portfolioId" bson:"portfolioId"`
	Title       string    `json:"title" bson:"title"`
	Authors     string    `json:"authors" bson:"authors"`
	Publication string    `json:"publication" bson:"publication"`
	Year        string    `json:"year" bson:"year"`
	DOI         *string   `json:"doi" bson:"doi"`
	Order       int       `json:"order" bson:"order"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// StatusCheck records a client ping against POST /status.
type StatusCheck struct {
	ID         string    `json:"id" bson:"id"`
	ClientName string    `json:"client_name" bson:"client_name"`
	Timestamp  time.Time `json:"timestamp" bson:"timestamp"`
}

// Message is the acknowledgement body returned by mutating endpoints.
type Message struct {
	Message string `json:"message"`
}

// Item is implemented by every ordered collection element.
type Item interface {
	ItemID() string
	ItemOrder() int
	ItemPortfolio() string
}

func (s SkillCategory) ItemID() string { return s.ID }
func (s SkillCategory) ItemOrder() int { return s.Order }
func (e Experience) ItemID() string    { return e.ID }
func (e Experience) ItemOrder() int    { return e.Order }
func (p Project) ItemID() string       { return p.ID }
func (p Project) ItemOrder() int       { return p.Order }
func (a Achievement) ItemID() string   { return a.ID }
func (a Achievement) ItemOrder() int   { return a.Order }
func (p Publication) ItemID() string   { return p.ID }
func (p Publication) ItemOrder() int   { return p.Order }

func (s SkillCategory) ItemPortfolio() string { return s.PortfolioID }
func (e Experience) ItemPortfolio() string    { return e.PortfolioID }
func (p Project) ItemPortfolio() string       { return p.PortfolioID }
func (a Achievement) ItemPortfolio() string   { return a.PortfolioID }
func (p Publication) ItemPortfolio() string   { return p.PortfolioID }

// Clone returns a deep copy of s with every collection non-nil. A nil
// receiver yields nil.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	out := *s
	out.Skills = make([]SkillCategory, len(s.Skills))
	for i, sk := range s.Skills {
		sk.Items = append([]string(nil), sk.Items...)
		out.Skills[i] = sk
	}
	out.Experiences = append(make([]Experience, 0, len(s.Experiences)), s.Experiences...)
	out.Projects = make([]Project, len(s.Projects))
	for i, p := range s.Projects {
		p.Technologies = append([]string(nil), p.Technologies...)
		out.Projects[i] = p
	}
	out.Achievements = append(make([]Achievement, 0, len(s.Achievements)), s.Achievements...)
	out.Publications = make([]Publication, len(s.Publications))
	for i, p := range s.Publications {
		if p.DOI != nil {
			doi := *p.DOI
			p.DOI = &doi
		}
		out.Publications[i] = p
	}
	return &out
}

// Counts summarizes the number of items per collection.
type Counts struct {
	Skills       int `json:"skills"`
	Experiences  int `json:"experiences"`
	Projects     int `json:"projects"`
	Achievements int `json:"achievements"`
	Publications int `json:"publications"`
}

// Counts returns the collection sizes of s.
func (s *Snapshot) Counts() Counts {
	if s == nil {
		return Counts{}
	}
	return Counts{
		Skills:       len(s.Skills),
		Experiences:  len(s.Experiences),
		Projects:     len(s.Projects),
		Achievements: len(s.Achievements),
		Publications: len(s.Publications),
	}
}

// Sections lists the collection names accepted by [Snapshot.Section].
var Sections = []string{"skills", "experiences", "projects", "achievements", "publications"}

// Section returns the items of the named collection, empty when s is nil
// or the collection has none. ok is false only for unknown names;
// "experience" is accepted as an alias of "experiences".
func (s *Snapshot) Section(name string) (items []Item, ok bool) {
	if s == nil {
		s = &Snapshot{}
	}
	switch name {
	case "skills":
		return toItems(s.Skills), true
	case "experiences", "experience":
		return toItems(s.Experiences), true
	case "projects":
		return toItems(s.Projects), true
	case "achievements":
		return toItems(s.Achievements), true
	case "publications":
		return toItems(s.Publications), true
	default:
		return []Item{}, false
	}
}

func toItems[T Item](in []T) []Item {
	out := make([]Item, len(in))
	for i, v := range in {
		out[i] = v
	}
	return out
}
