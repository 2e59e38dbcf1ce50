package catalog

import (
	"embed"
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/khoahotran/career-path/internal/domain/catalog"
)

//go:embed data/*.yaml
var dataFS embed.FS

const updateDateLayout = "2006-01-02"

type careersFile struct {
	Careers []catalog.Career `yaml:"careers"`
}

type scholarshipsFile struct {
	Scholarships []catalog.Scholarship `yaml:"scholarships"`
}

type coursesFile struct {
	Courses []catalog.Course `yaml:"courses"`
}

type updateRecord struct {
	ID          int    `yaml:"id"`
	Title       string `yaml:"title"`
	Category    string `yaml:"category"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Link        string `yaml:"link"`
	Priority    string `yaml:"priority"`
}

type updatesFile struct {
	Updates []updateRecord `yaml:"updates"`
}

type yamlRepo struct {
	careers      []catalog.Career
	scholarships []catalog.Scholarship
	courses      map[int]catalog.Course
	updates      []catalog.Update
}

// NewEmbeddedRepository decodes the catalog compiled into the binary.
func NewEmbeddedRepository() (catalog.Repository, error) {
	r := &yamlRepo{courses: make(map[int]catalog.Course)}

	var cf careersFile
	if err := decode("data/careers.yaml", &cf); err != nil {
		return nil, err
	}
	r.careers = cf.Careers

	var sf scholarshipsFile
	if err := decode("data/scholarships.yaml", &sf); err != nil {
		return nil, err
	}
	r.scholarships = sf.Scholarships

	var cof coursesFile
	if err := decode("data/courses.yaml", &cof); err != nil {
		return nil, err
	}
	for _, c := range cof.Courses {
		if _, dup := r.courses[c.ID]; dup {
			return nil, fmt.Errorf("duplicate course id %d", c.ID)
		}
		r.courses[c.ID] = c
	}

	var uf updatesFile
	if err := decode("data/updates.yaml", &uf); err != nil {
		return nil, err
	}
	for _, u := range uf.Updates {
		d, err := time.Parse(updateDateLayout, u.Date)
		if err != nil {
			return nil, fmt.Errorf("update %d has invalid date %q: %w", u.ID, u.Date, err)
		}
		r.updates = append(r.updates, catalog.Update{
			ID:          u.ID,
			Title:       u.Title,
			Category:    u.Category,
			Date:        d,
			Description: u.Description,
			Link:        u.Link,
			Priority:    catalog.Priority(u.Priority),
		})
	}

	return r, nil
}

func decode(name string, out any) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

func (r *yamlRepo) Careers() []catalog.Career {
	return slices.Clone(r.careers)
}

func (r *yamlRepo) CareerByID(id int) (catalog.Career, bool) {
	i := slices.IndexFunc(r.careers, func(c catalog.Career) bool { return c.ID == id })
	if i < 0 {
		return catalog.Career{}, false
	}
	return r.careers[i], true
}

func (r *yamlRepo) Scholarships() []catalog.Scholarship {
	return slices.Clone(r.scholarships)
}

func (r *yamlRepo) ScholarshipByID(id int) (catalog.Scholarship, bool) {
	i := slices.IndexFunc(r.scholarships, func(s catalog.Scholarship) bool { return s.ID == id })
	if i < 0 {
		return catalog.Scholarship{}, false
	}
	return r.scholarships[i], true
}

func (r *yamlRepo) CourseByID(id int) (catalog.Course, bool) {
	c, ok := r.courses[id]
	return c, ok
}

func (r *yamlRepo) Updates() []catalog.Update {
	return slices.Clone(r.updates)
}

func (r *yamlRepo) RoadmapSteps(courseID int, t catalog.Timeline) (int, bool) {
	c, ok := r.courses[courseID]
	if !ok {
		return 0, false
	}
	phases, ok := c.Roadmaps[t]
	if !ok {
		return 0, false
	}
	return len(phases), true
}
