package service

import (
	"log"
	"strconv"
	"strings"

	"kannadabaruthe/internal/excel"
	"kannadabaruthe/internal/models"
	"kannadabaruthe/internal/repository"
)

// dashboardOrder fixes the position of the well-known modules on the
// dashboard. Modules not listed here go after, in insertion order.
var dashboardOrder = []string{
	"greetings",
	"numbers",
	"smalltalk",
	"bangalore-slangs",
	"eating",
	"directions",
	"shopping",
	"home",
	"family",
}

// seedModules is the starter content installed on an empty database
var seedModules = []models.Module{
	{ID: "greetings", Title: "Greetings & Introductions", Icon: "🙏", Phrases: []models.Phrase{
		{ID: 1, En: "Hello", Kn: "Namaskara", Translit: "na-mas-ka-ra"},
	}},
	{ID: "numbers", Title: "Numbers & Time", Icon: "🔢", Phrases: []models.Phrase{
		{ID: 51, En: "One", Kn: "Ondu", Translit: "on-du"},
	}},
	{ID: "directions", Title: "Directions & Transport", Icon: "🚕", Phrases: []models.Phrase{
		{ID: 101, En: "Where is...?", Kn: "... ellide?", Translit: "el-li-de"},
	}},
	{ID: "eating", Title: "Eating Out", Icon: "🍽️", Phrases: []models.Phrase{
		{ID: 151, En: "Restaurant", Kn: "Upahara gruha", Translit: "u-pa-haa-ra gru-ha"},
	}},
	{ID: "shopping", Title: "Shopping & Money", Icon: "🛍️", Phrases: []models.Phrase{
		{ID: 201, En: "How much is this?", Kn: "Idara bele eshtu?", Translit: "i-da-ra be-le esh-tu"},
	}},
	{ID: "home", Title: "At Home & Chores", Icon: "🏠", Phrases: []models.Phrase{
		{ID: 251, En: "House", Kn: "Mane", Translit: "ma-ne"},
	}},
	{ID: "smalltalk", Title: "Social Small Talk", Icon: "💬", Phrases: []models.Phrase{
		{ID: 301, En: "How was your day?", Kn: "Nimma dina hegittu?", Translit: "nim-ma di-na he-git-tu"},
	}},
	{ID: "family", Title: "Family & Relationships", Icon: "👨‍👩‍👧‍👦", Phrases: []models.Phrase{
		{ID: 351, En: "Family", Kn: "Kutumba", Translit: "ku-tum-ba"},
	}},
}

// DashboardPosition returns the fixed position of a well-known module id,
// or -1 when the id is not part of the fixed ordering
func DashboardPosition(id string) int {
	for i, known := range dashboardOrder {
		if known == id {
			return i
		}
	}
	return -1
}

// ContentService owns the authoring surface: modules, phrases, trivia and
// spreadsheet imports
type ContentService struct {
	contentRepo *repository.ContentRepository
}

// NewContentService creates a new content service
func NewContentService(contentRepo *repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// SeedDefaultContent installs the starter modules on an empty database.
// A database with any module at all is left alone.
func (s *ContentService) SeedDefaultContent() error {
	count, err := s.contentRepo.CountModules()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	log.Printf("Seeding %d starter modules", len(seedModules))
	for i := range seedModules {
		module := seedModules[i]
		position := DashboardPosition(module.ID)
		if position < 0 {
			position = len(dashboardOrder) + i
		}
		if err := s.contentRepo.PutModule(&module, position); err != nil {
			return err
		}
	}
	return nil
}

// ListModules returns all modules in dashboard order
func (s *ContentService) ListModules() ([]models.Module, error) {
	return s.contentRepo.ListModules()
}

// GetModule returns one module, or a NotFoundError
func (s *ContentService) GetModule(id string) (*models.Module, error) {
	module, err := s.contentRepo.GetModule(id)
	if err != nil {
		return nil, err
	}
	if module == nil {
		return nil, &NotFoundError{Kind: "module", ID: id}
	}
	return module, nil
}

// CreateModule adds a new empty module. The id is trimmed and must be unique.
func (s *ContentService) CreateModule(id, title, icon string) (*models.Module, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, formatErrorf("module id must not be blank")
	}
	if strings.TrimSpace(title) == "" {
		return nil, formatErrorf("module title must not be blank")
	}

	existing, err := s.contentRepo.GetModule(id)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, formatErrorf("module already exists: %s", id)
	}

	module := &models.Module{ID: id, Title: title, Icon: icon, Phrases: []models.Phrase{}}
	position, err := s.contentRepo.ModulePosition(id)
	if err != nil {
		return nil, err
	}
	if fixed := DashboardPosition(id); fixed >= 0 {
		position = fixed
	}
	if err := s.contentRepo.PutModule(module, position); err != nil {
		return nil, err
	}
	return module, nil
}

// UpdateModule changes a module's title and icon
func (s *ContentService) UpdateModule(id, title, icon string) (*models.Module, error) {
	module, err := s.GetModule(id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) != "" {
		module.Title = title
	}
	if icon != "" {
		module.Icon = icon
	}
	return module, s.putModule(module)
}

// DeleteModule removes a module and its phrases
func (s *ContentService) DeleteModule(id string) error {
	if _, err := s.GetModule(id); err != nil {
		return err
	}
	return s.contentRepo.DeleteModule(id)
}

// AddPhrase appends a phrase to a module, assigning the next free id
func (s *ContentService) AddPhrase(moduleID, en, kn, translit, audioData string) (*models.Phrase, error) {
	if strings.TrimSpace(en) == "" || strings.TrimSpace(kn) == "" {
		return nil, formatErrorf("a phrase needs both English and Kannada text")
	}

	module, err := s.GetModule(moduleID)
	if err != nil {
		return nil, err
	}

	phrase := models.Phrase{
		ID:        module.NextPhraseID(),
		En:        strings.TrimSpace(en),
		Kn:        strings.TrimSpace(kn),
		Translit:  strings.TrimSpace(translit),
		AudioData: audioData,
	}
	module.Phrases = append(module.Phrases, phrase)
	if err := s.putModule(module); err != nil {
		return nil, err
	}
	return &phrase, nil
}

// UpdatePhrase replaces the text fields of an existing phrase
func (s *ContentService) UpdatePhrase(moduleID string, phrase models.Phrase) error {
	if strings.TrimSpace(phrase.En) == "" || strings.TrimSpace(phrase.Kn) == "" {
		return formatErrorf("a phrase needs both English and Kannada text")
	}

	module, err := s.GetModule(moduleID)
	if err != nil {
		return err
	}
	for i := range module.Phrases {
		if module.Phrases[i].ID == phrase.ID {
			module.Phrases[i] = phrase
			return s.putModule(module)
		}
	}
	return &NotFoundError{Kind: "phrase", ID: strconv.Itoa(phrase.ID)}
}

// DeletePhrase removes one phrase from a module
func (s *ContentService) DeletePhrase(moduleID string, phraseID int) error {
	module, err := s.GetModule(moduleID)
	if err != nil {
		return err
	}
	for i := range module.Phrases {
		if module.Phrases[i].ID == phraseID {
			module.Phrases = append(module.Phrases[:i], module.Phrases[i+1:]...)
			return s.putModule(module)
		}
	}
	return &NotFoundError{Kind: "phrase", ID: strconv.Itoa(phraseID)}
}

// ImportPhraseSheet appends the phrases of an uploaded spreadsheet to a
// module. Rows the importer rejects are reported back, not fatal.
func (s *ContentService) ImportPhraseSheet(moduleID, filePath string) (*excel.ImportResult, error) {
	module, err := s.GetModule(moduleID)
	if err != nil {
		return nil, err
	}

	result, err := excel.ImportPhrases(excel.DefaultImportConfig(filePath))
	if err != nil {
		return nil, err
	}

	for _, row := range result.Imported {
		module.Phrases = append(module.Phrases, models.Phrase{
			ID:       module.NextPhraseID(),
			En:       row.En,
			Kn:       row.Kn,
			Translit: row.Translit,
		})
	}
	if len(result.Imported) > 0 {
		if err := s.putModule(module); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// AddTrivia stores a new trivia question. The answer must be one of the options.
func (s *ContentService) AddTrivia(item models.TriviaItem) error {
	if strings.TrimSpace(item.Question) == "" {
		return formatErrorf("a trivia item needs a question")
	}
	if len(item.Options) < 2 {
		return formatErrorf("a trivia item needs at least two options")
	}
	valid := false
	for _, option := range item.Options {
		if option == item.Answer {
			valid = true
			break
		}
	}
	if !valid {
		return formatErrorf("the trivia answer must be one of the options")
	}

	_, err := s.contentRepo.AddTrivia(&item)
	return err
}

// ListTrivia returns the whole trivia pool
func (s *ContentService) ListTrivia() ([]models.TriviaItem, error) {
	return s.contentRepo.ListTrivia()
}

func (s *ContentService) putModule(module *models.Module) error {
	position, err := s.contentRepo.ModulePosition(module.ID)
	if err != nil {
		return err
	}
	return s.contentRepo.PutModule(module, position)
}
