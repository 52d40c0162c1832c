// Package rulestore provides read-only access to the legal reference data
// the contract logic engine evaluates against: civil-code contract
// templates, statute excerpts, the review checklist, penalty assessment
// rules, judicial discretion standards, risk patterns and suggestion
// templates.
//
// All data is compiled into the binary and parsed exactly once in Load.
// The resulting Store is immutable and safe for unsynchronized sharing
// across requests.
package rulestore

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"legalcn/internal/apperr"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFS embed.FS

// templateFrontmatter is the YAML frontmatter expected in contract
// template files.
type templateFrontmatter struct {
	ID     string   `yaml:"id"`
	Title  string   `yaml:"title"`
	Tags   []string `yaml:"tags"`
	Source string   `yaml:"source"`
}

// Store is the immutable rule store. Construct with Load; never mutate
// after that.
type Store struct {
	templates   map[string]RuleEntry
	templateIDs []string // sorted, for deterministic listings
	articles    map[string]RuleEntry
	articleIDs  []string
	clauseTags  map[string][]RuleEntry

	checklist   []ChecklistSection
	penalty     PenaltyRules
	discretion  DiscretionStandards
	patterns    map[string][]RiskPattern
	suggestions map[string]SuggestionTemplate

	loadedAt time.Time
}

// Load parses all embedded reference data and returns the store. It fails
// on duplicate identifiers or malformed data files: the binary shipped with
// bad reference data must not start.
func Load() (*Store, error) {
	s := &Store{
		templates:   make(map[string]RuleEntry),
		articles:    make(map[string]RuleEntry),
		clauseTags:  make(map[string][]RuleEntry),
		patterns:    make(map[string][]RiskPattern),
		suggestions: make(map[string]SuggestionTemplate),
		loadedAt:    time.Now().UTC(),
	}

	if err := s.loadTemplates(); err != nil {
		return nil, fmt.Errorf("loading contract templates: %w", err)
	}
	if err := s.loadArticles(); err != nil {
		return nil, fmt.Errorf("loading statute articles: %w", err)
	}
	if err := s.loadChecklist(); err != nil {
		return nil, fmt.Errorf("loading checklist: %w", err)
	}
	if err := s.loadPenaltyRules(); err != nil {
		return nil, fmt.Errorf("loading penalty rules: %w", err)
	}
	if err := s.loadDiscretionStandards(); err != nil {
		return nil, fmt.Errorf("loading discretion standards: %w", err)
	}
	if err := s.loadPatterns(); err != nil {
		return nil, fmt.Errorf("loading risk patterns: %w", err)
	}
	if err := s.loadSuggestions(); err != nil {
		return nil, fmt.Errorf("loading suggestion templates: %w", err)
	}

	return s, nil
}

func (s *Store) loadTemplates() error {
	entries, err := fs.ReadDir(dataFS, "data/templates")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		content, err := dataFS.ReadFile("data/templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("reading %s: %w", entry.Name(), err)
		}

		var matter templateFrontmatter
		body, err := frontmatter.Parse(bytes.NewReader(content), &matter)
		if err != nil {
			return fmt.Errorf("parsing frontmatter of %s: %w", entry.Name(), err)
		}
		if matter.ID == "" || matter.Title == "" {
			return fmt.Errorf("%s: frontmatter must set id and title", entry.Name())
		}
		if err := s.checkUniqueID(matter.ID); err != nil {
			return err
		}

		s.templates[matter.ID] = RuleEntry{
			ID:      matter.ID,
			Title:   matter.Title,
			Tags:    matter.Tags,
			Source:  matter.Source,
			Content: strings.TrimSpace(string(body)),
		}
		s.templateIDs = append(s.templateIDs, matter.ID)
	}

	if len(s.templates) == 0 {
		return fmt.Errorf("no contract templates found")
	}
	sort.Strings(s.templateIDs)
	return nil
}

func (s *Store) loadArticles() error {
	raw, err := dataFS.ReadFile("data/articles.yaml")
	if err != nil {
		return err
	}

	var doc struct {
		Articles []RuleEntry `yaml:"articles"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}

	for _, article := range doc.Articles {
		if article.ID == "" {
			return fmt.Errorf("article without id: %q", article.Title)
		}
		if err := s.checkUniqueID(article.ID); err != nil {
			return err
		}
		article.Content = strings.TrimSpace(article.Content)
		s.articles[article.ID] = article
		s.articleIDs = append(s.articleIDs, article.ID)

		for _, tag := range article.Tags {
			s.clauseTags[tag] = append(s.clauseTags[tag], article)
		}
	}
	sort.Strings(s.articleIDs)
	return nil
}

func (s *Store) loadChecklist() error {
	raw, err := dataFS.ReadFile("data/checklist.yaml")
	if err != nil {
		return err
	}

	var doc struct {
		ID       string             `yaml:"id"`
		Sections []ChecklistSection `yaml:"sections"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}
	if len(doc.Sections) == 0 {
		return fmt.Errorf("checklist has no sections")
	}

	s.checklist = doc.Sections
	return nil
}

func (s *Store) loadPenaltyRules() error {
	raw, err := dataFS.ReadFile("data/penalty.yaml")
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, &s.penalty); err != nil {
		return err
	}
	if s.penalty.CapRatio <= 0 || s.penalty.CapRatio >= 1 {
		return fmt.Errorf("penalty cap_ratio %v out of range (0,1)", s.penalty.CapRatio)
	}
	return nil
}

func (s *Store) loadDiscretionStandards() error {
	raw, err := dataFS.ReadFile("data/discretion.yaml")
	if err != nil {
		return err
	}
	return yaml.Unmarshal(raw, &s.discretion)
}

func (s *Store) loadPatterns() error {
	raw, err := dataFS.ReadFile("data/patterns.yaml")
	if err != nil {
		return err
	}

	var doc struct {
		Patterns []RiskPattern `yaml:"patterns"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}

	for _, p := range doc.Patterns {
		if p.Match != MatchAny && p.Match != MatchAbsent {
			return fmt.Errorf("pattern %s: unknown match mode %q", p.ID, p.Match)
		}
		if p.RuleID != "" && !s.hasEntry(p.RuleID) {
			return fmt.Errorf("pattern %s: references unknown rule %q", p.ID, p.RuleID)
		}
		s.patterns[p.Category] = append(s.patterns[p.Category], p)
	}
	return nil
}

func (s *Store) loadSuggestions() error {
	raw, err := dataFS.ReadFile("data/suggestions.yaml")
	if err != nil {
		return err
	}

	var doc struct {
		Suggestions []SuggestionTemplate `yaml:"suggestions"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return err
	}

	for _, sg := range doc.Suggestions {
		if sg.RiskType == "" {
			return fmt.Errorf("suggestion template without risk_type")
		}
		if _, dup := s.suggestions[sg.RiskType]; dup {
			return fmt.Errorf("duplicate suggestion template for %q", sg.RiskType)
		}
		s.suggestions[sg.RiskType] = sg
	}
	return nil
}

func (s *Store) checkUniqueID(id string) error {
	if s.hasEntry(id) {
		return fmt.Errorf("duplicate rule entry id %q", id)
	}
	return nil
}

func (s *Store) hasEntry(id string) bool {
	if _, ok := s.templates[id]; ok {
		return true
	}
	if _, ok := s.articles[id]; ok {
		return true
	}
	// Assessment rule documents are citable entries too.
	return id == "penalty-assessment" || id == "judicial-discretion"
}

// LoadedAt is the store construction time, used as the fixed dateCreated of
// static resource representations so repeated reads are byte-identical.
func (s *Store) LoadedAt() time.Time {
	return s.loadedAt
}

// ContractTemplate returns the civil-code contract template with the given
// identifier, or a NotFound error.
func (s *Store) ContractTemplate(id string) (RuleEntry, error) {
	entry, ok := s.templates[id]
	if !ok {
		return RuleEntry{}, apperr.NotFound("未知合同模板: %s", id)
	}
	return entry, nil
}

// TemplateIDs lists all contract template identifiers in sorted order.
func (s *Store) TemplateIDs() []string {
	out := make([]string, len(s.templateIDs))
	copy(out, s.templateIDs)
	return out
}

// Article returns the statute excerpt with the given identifier.
func (s *Store) Article(id string) (RuleEntry, error) {
	entry, ok := s.articles[id]
	if !ok {
		return RuleEntry{}, apperr.NotFound("未知法条: %s", id)
	}
	return entry, nil
}

// ArticleIDs lists all statute excerpt identifiers in sorted order.
func (s *Store) ArticleIDs() []string {
	out := make([]string, len(s.articleIDs))
	copy(out, s.articleIDs)
	return out
}

// Checklist returns the ordered contract review checklist.
func (s *Store) Checklist() []ChecklistSection {
	out := make([]ChecklistSection, len(s.checklist))
	copy(out, s.checklist)
	return out
}

// PenaltyRules returns the liquidated-damages assessment rules.
func (s *Store) PenaltyRules() PenaltyRules {
	return s.penalty
}

// DiscretionStandards returns the judicial discretion baseline.
func (s *Store) DiscretionStandards() DiscretionStandards {
	return s.discretion
}

// RiskPatterns returns the risk patterns registered for a category, in
// definition order. An unknown category yields nil: the risk checker
// treats unrecognized categories as selecting nothing.
func (s *Store) RiskPatterns(category string) []RiskPattern {
	return s.patterns[category]
}

// ClauseTagged reports whether any rule entry is tagged with the clause type.
func (s *Store) ClauseTagged(clauseType string) bool {
	return len(s.clauseTags[clauseType]) > 0
}

// ClauseRules returns the rule entries tagged with the clause type, in
// data-file order.
func (s *Store) ClauseRules(clauseType string) []RuleEntry {
	rules := s.clauseTags[clauseType]
	out := make([]RuleEntry, len(rules))
	copy(out, rules)
	return out
}

// SuggestionTemplate returns the remedy template for a risk type, or an
// UnknownRiskType error when none exists.
func (s *Store) SuggestionTemplate(riskType string) (SuggestionTemplate, error) {
	sg, ok := s.suggestions[riskType]
	if !ok {
		return SuggestionTemplate{}, apperr.UnknownRiskType(riskType)
	}
	return sg, nil
}
