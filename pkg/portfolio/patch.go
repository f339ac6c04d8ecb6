package portfolio

// Patch is a partial update for values of type T.
type Patch[T any] interface {
	// Apply merges the set fields into v, leaving the others untouched.
	Apply(v *T)
	// Fields returns the set fields keyed by their stored field name.
	Fields() map[string]any
	// Empty reports whether no field is set.
	Empty() bool
}

type fieldSet map[string]any

func setField[V any](f fieldSet, key string, v *V) {
	if v != nil {
		f[key] = *v
	}
}

func setSlice(f fieldSet, key string, v []string) {
	if v != nil {
		f[key] = v
	}
}

func assign[V any](dst *V, src *V) {
	if src != nil {
		*dst = *src
	}
}

// PersonalInfoUpdate is the body of PUT /portfolio/personal.
type PersonalInfoUpdate struct {
	Name     *string `json:"name,omitempty"`
	Tagline  *string `json:"tagline,omitempty"`
	Email    *string `json:"email,omitempty"`
	GitHub   *string `json:"github,omitempty"`
	LinkedIn *string `json:"linkedin,omitempty"`
	Kaggle   *string `json:"kaggle,omitempty"`
}

func (u PersonalInfoUpdate) Apply(p *PersonalInfo) {
	assign(&p.Name, u.Name)
	assign(&p.Tagline, u.Tagline)
	assign(&p.Email, u.Email)
	assign(&p.GitHub, u.GitHub)
	assign(&p.LinkedIn, u.LinkedIn)
	assign(&p.Kaggle, u.Kaggle)
}

func (u PersonalInfoUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "name", u.Name)
	setField(f, "tagline", u.Tagline)
	setField(f, "email", u.Email)
	setField(f, "github", u.GitHub)
	setField(f, "linkedin", u.LinkedIn)
	setField(f, "kaggle", u.Kaggle)
	return f
}

func (u PersonalInfoUpdate) Empty() bool { return len(u.Fields()) == 0 }

// AboutSectionUpdate is the body of PUT /portfolio/about. Education is
// replaced as a whole when set.
type AboutSectionUpdate struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Education   *Education `json:"education,omitempty"`
}

func (u AboutSectionUpdate) Apply(a *AboutSection) {
	assign(&a.Title, u.Title)
	assign(&a.Description, u.Description)
	assign(&a.Education, u.Education)
}

func (u AboutSectionUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "title", u.Title)
	setField(f, "description", u.Description)
	setField(f, "education", u.Education)
	return f
}

func (u AboutSectionUpdate) Empty() bool { return len(u.Fields()) == 0 }

// SkillCategoryUpdate is the body of PUT /skills/{id}.
type SkillCategoryUpdate struct {
	Title *string  `json:"title,omitempty"`
	Items []string `json:"items,omitempty"`
	Order *int     `json:"order,omitempty"`
}

func (u SkillCategoryUpdate) Apply(s *SkillCategory) {
	assign(&s.Title, u.Title)
	if u.Items != nil {
		s.Items = append([]string(nil), u.Items...)
	}
	assign(&s.Order, u.Order)
}

func (u SkillCategoryUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "title", u.Title)
	setSlice(f, "items", u.Items)
	setField(f, "order", u.Order)
	return f
}

func (u SkillCategoryUpdate) Empty() bool { return len(u.Fields()) == 0 }

// ExperienceUpdate is the body of PUT /experience/{id}.
type ExperienceUpdate struct {
	Title       *string `json:"title,omitempty"`
	Company     *string `json:"company,omitempty"`
	Location    *string `json:"location,omitempty"`
	Duration    *string `json:"duration,omitempty"`
	Description *string `json:"description,omitempty"`
	Current     *bool   `json:"current,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

func (u ExperienceUpdate) Apply(e *Experience) {
	assign(&e.Title, u.Title)
	assign(&e.Company, u.Company)
	assign(&e.Location, u.Location)
	assign(&e.Duration, u.Duration)
	assign(&e.Description, u.Description)
	assign(&e.Current, u.Current)
	assign(&e.Order, u.Order)
}

func (u ExperienceUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "title", u.Title)
	setField(f, "company", u.Company)
	setField(f, "location", u.Location)
	setField(f, "duration", u.Duration)
	setField(f, "description", u.Description)
	setField(f, "current", u.Current)
	setField(f, "order", u.Order)
	return f
}

func (u ExperienceUpdate) Empty() bool { return len(u.Fields()) == 0 }

// ProjectUpdate is the body of PUT /projects/{id}.
type ProjectUpdate struct {
	Title        *string  `json:"title,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Technologies []string `json:"technologies,omitempty"`
	GitHub       *string  `json:"github,omitempty"`
	Demo         *string  `json:"demo,omitempty"`
	Featured     *bool    `json:"featured,omitempty"`
	Placeholder  *bool    `json:"placeholder,omitempty"`
	Order        *int     `json:"order,omitempty"`
}

func (u ProjectUpdate) Apply(p *Project) {
	assign(&p.Title, u.Title)
	assign(&p.Description, u.Description)
	if u.Technologies != nil {
		p.Technologies = append([]string(nil), u.Technologies...)
	}
	assign(&p.GitHub, u.GitHub)
	assign(&p.Demo, u.Demo)
	assign(&p.Featured, u.Featured)
	assign(&p.Placeholder, u.Placeholder)
	assign(&p.Order, u.Order)
}

func (u ProjectUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "title", u.Title)
	setField(f, "description", u.Description)
	setSlice(f, "technologies", u.Technologies)
	setField(f, "github", u.GitHub)
	setField(f, "demo", u.Demo)
	setField(f, "featured", u.Featured)
	setField(f, "placeholder", u.Placeholder)
	setField(f, "order", u.Order)
	return f
}

func (u ProjectUpdate) Empty() bool { return len(u.Fields()) == 0 }

// AchievementUpdate is the body of PUT /achievements/{id}.
type AchievementUpdate struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

func (u AchievementUpdate) Apply(a *Achievement) {
	assign(&a.Title, u.Title)
	assign(&a.Description, u.Description)
	assign(&a.Order, u.Order)
}

func (u AchievementUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "title", u.Title)
	setField(f, "description", u.Description)
	setField(f, "order", u.Order)
	return f
}

func (u AchievementUpdate) Empty() bool { return len(u.Fields()) == 0 }

// PublicationUpdate is the body of PUT /publications/{id}.
type PublicationUpdate struct {
	Title       *string `json:"title,omitempty"`
	Authors     *string `json:"authors,omitempty"`
	Publication *string `json:"publication,omitempty"`
	Year        *string `json:"year,omitempty"`
	DOI         *string `json:"doi,omitempty"`
	Order       *int    `json:"order,omitempty"`
}

func (u PublicationUpdate) Apply(p *Publication) {
	assign(&p.Title, u.Title)
	assign(&p.Authors, u.Authors)
	assign(&p.Publication, u.Publication)
	assign(&p.Year, u.Year)
	if u.DOI != nil {
		doi := *u.DOI
		p.DOI = &doi
	}
	assign(&p.Order, u.Order)
}

func (u PublicationUpdate) Fields() map[string]any {
	f := fieldSet{}
	setField(f, "title", u.Title)
	setField(f, "authors", u.Authors)
	setField(f, "publication", u.Publication)
	setField(f, "year", u.Year)
	setField(f, "doi", u.DOI)
	setField(f, "order", u.Order)
	return f
}

func (u PublicationUpdate) Empty() bool { return len(u.Fields()) == 0 }

var (
	_ Patch[PersonalInfo]  = PersonalInfoUpdate{}
	_ Patch[AboutSection]  = AboutSectionUpdate{}
	_ Patch[SkillCategory] = SkillCategoryUpdate{}
	_ Patch[Experience]    = ExperienceUpdate{}
	_ Patch[Project]       = ProjectUpdate{}
	_ Patch[Achievement]   = AchievementUpdate{}
	_ Patch[Publication]   = PublicationUpdate{}
)
