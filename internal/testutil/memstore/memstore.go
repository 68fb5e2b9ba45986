// Package memstore keeps topics, newspapers and redactors in memory behind the
// same repository interfaces the gorm implementations satisfy. Deletes follow
// the relational rules: a topic takes its newspapers with it, and removing a
// newspaper or a redactor only drops their publisher links.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"newsagency.com/newsroom/internal/entity"
	newspaperRepo "newsagency.com/newsroom/internal/modules/newspaper/repository"
	redactorRepo "newsagency.com/newsroom/internal/modules/redactor/repository"
	topicRepo "newsagency.com/newsroom/internal/modules/topic/repository"
)

var (
	_ topicRepo.TopicRepository         = (*topicStore)(nil)
	_ newspaperRepo.NewspaperRepository = (*newspaperStore)(nil)
	_ redactorRepo.RedactorRepository   = (*redactorStore)(nil)
)

type link struct {
	newspaperID uint
	redactorID  uint
}

type DB struct {
	mu         sync.Mutex
	lastID     uint
	clock      time.Time
	topics     map[uint]entity.Topic
	newspapers map[uint]entity.Newspaper
	redactors  map[uint]entity.Redactor
	links      map[link]struct{}
}

func New() *DB {
	return &DB{
		clock:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
		topics:     make(map[uint]entity.Topic),
		newspapers: make(map[uint]entity.Newspaper),
		redactors:  make(map[uint]entity.Redactor),
		links:      make(map[link]struct{}),
	}
}

func (db *DB) Topics() topicRepo.TopicRepository {
	return &topicStore{db: db}
}

func (db *DB) Newspapers() newspaperRepo.NewspaperRepository {
	return &newspaperStore{db: db}
}

func (db *DB) Redactors() redactorRepo.RedactorRepository {
	return &redactorStore{db: db}
}

// LinkCount returns the number of newspaper/redactor links.
func (db *DB) LinkCount() int {
	db.mu.Lock()
	defer db.mu.Unlock()
	return len(db.links)
}

// nextID and tick must be called with mu held. IDs are unique across tables.
func (db *DB) nextID() uint {
	db.lastID++
	return db.lastID
}

func (db *DB) tick() time.Time {
	db.clock = db.clock.Add(time.Minute)
	return db.clock
}

func contains(value, search string) bool {
	return search == "" || strings.Contains(strings.ToLower(value), strings.ToLower(search))
}

func page[T any](items []T, offset, limit int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit >= 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

type topicStore struct {
	db *DB
}

func (s *topicStore) Create(_ context.Context, topic *entity.Topic) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	topic.ID = s.db.nextID()
	topic.CreatedAt = s.db.tick()
	stored := *topic
	stored.Newspapers = nil
	s.db.topics[topic.ID] = stored
	return nil
}

func (s *topicStore) FindByID(_ context.Context, id uint) (*entity.Topic, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	topic, ok := s.db.topics[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &topic, nil
}

func (s *topicStore) matching(search string) []*entity.Topic {
	out := make([]*entity.Topic, 0, len(s.db.topics))
	for _, topic := range s.db.topics {
		if contains(topic.Name, search) {
			t := topic
			out = append(out, &t)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *topicStore) Count(_ context.Context, search string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.matching(search))), nil
}

func (s *topicStore) FindAll(_ context.Context, search string, offset, limit int) ([]*entity.Topic, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return page(s.matching(search), offset, limit), nil
}

func (s *topicStore) Update(_ context.Context, topic *entity.Topic) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.topics[topic.ID]
	if !ok {
		return nil
	}
	stored.Name = topic.Name
	s.db.topics[topic.ID] = stored
	return nil
}

func (s *topicStore) Delete(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.topics[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for nid, newspaper := range s.db.newspapers {
		if newspaper.TopicID == id {
			s.db.removeNewspaper(nid)
		}
	}
	delete(s.db.topics, id)
	return nil
}

func (db *DB) removeNewspaper(id uint) {
	for l := range db.links {
		if l.newspaperID == id {
			delete(db.links, l)
		}
	}
	delete(db.newspapers, id)
}

type newspaperStore struct {
	db *DB
}

func (s *newspaperStore) Create(_ context.Context, newspaper *entity.Newspaper, publisherIDs []uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	newspaper.ID = s.db.nextID()
	newspaper.PublishedDate = s.db.tick()
	s.db.newspapers[newspaper.ID] = bare(*newspaper)
	s.db.setPublishers(newspaper.ID, publisherIDs)
	return nil
}

func bare(n entity.Newspaper) entity.Newspaper {
	n.Topic = nil
	n.Publishers = nil
	return n
}

func (db *DB) setPublishers(newspaperID uint, publisherIDs []uint) {
	for l := range db.links {
		if l.newspaperID == newspaperID {
			delete(db.links, l)
		}
	}
	for _, rid := range publisherIDs {
		db.links[link{newspaperID: newspaperID, redactorID: rid}] = struct{}{}
	}
}

// loadedNewspaper must be called with mu held.
func (db *DB) loadedNewspaper(n entity.Newspaper, withPublishers bool) *entity.Newspaper {
	if topic, ok := db.topics[n.TopicID]; ok {
		n.Topic = &topic
	}
	if withPublishers {
		for l := range db.links {
			if l.newspaperID != n.ID {
				continue
			}
			if r, ok := db.redactors[l.redactorID]; ok {
				n.Publishers = append(n.Publishers, r)
			}
		}
		sort.Slice(n.Publishers, func(i, j int) bool {
			return n.Publishers[i].Username < n.Publishers[j].Username
		})
	}
	return &n
}

func (s *newspaperStore) FindByID(_ context.Context, id uint) (*entity.Newspaper, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	n, ok := s.db.newspapers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return s.db.loadedNewspaper(n, true), nil
}

func newestFirst(out []*entity.Newspaper) {
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PublishedDate.Equal(out[j].PublishedDate) {
			return out[i].PublishedDate.After(out[j].PublishedDate)
		}
		return out[i].ID > out[j].ID
	})
}

func (s *newspaperStore) matching(search string) []*entity.Newspaper {
	out := make([]*entity.Newspaper, 0, len(s.db.newspapers))
	for _, n := range s.db.newspapers {
		if contains(n.Title, search) {
			out = append(out, s.db.loadedNewspaper(n, false))
		}
	}
	newestFirst(out)
	return out
}

func (s *newspaperStore) Count(_ context.Context, search string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.matching(search))), nil
}

func (s *newspaperStore) FindAll(_ context.Context, search string, offset, limit int) ([]*entity.Newspaper, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return page(s.matching(search), offset, limit), nil
}

func (s *newspaperStore) Update(_ context.Context, newspaper *entity.Newspaper, publisherIDs []uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.newspapers[newspaper.ID]
	if !ok {
		return nil
	}
	stored.Title = newspaper.Title
	stored.Content = newspaper.Content
	stored.TopicID = newspaper.TopicID
	s.db.newspapers[newspaper.ID] = stored
	s.db.setPublishers(newspaper.ID, publisherIDs)
	return nil
}

func (s *newspaperStore) Delete(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.newspapers[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	s.db.removeNewspaper(id)
	return nil
}

type redactorStore struct {
	db *DB
}

func (s *redactorStore) Create(_ context.Context, redactor *entity.Redactor) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, r := range s.db.redactors {
		if r.Username == redactor.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	redactor.ID = s.db.nextID()
	redactor.DateJoined = s.db.tick()
	stored := *redactor
	stored.Newspapers = nil
	s.db.redactors[redactor.ID] = stored
	return nil
}

func (s *redactorStore) FindByID(_ context.Context, id uint) (*entity.Redactor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r, ok := s.db.redactors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}

	var assigned []*entity.Newspaper
	for l := range s.db.links {
		if l.redactorID != id {
			continue
		}
		if n, ok := s.db.newspapers[l.newspaperID]; ok {
			assigned = append(assigned, s.db.loadedNewspaper(n, false))
		}
	}
	newestFirst(assigned)
	for _, n := range assigned {
		r.Newspapers = append(r.Newspapers, *n)
	}
	return &r, nil
}

func (s *redactorStore) FindAccount(_ context.Context, id uint) (*entity.Redactor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	r, ok := s.db.redactors[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &r, nil
}

func (s *redactorStore) FindByUsername(_ context.Context, username string) (*entity.Redactor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	for _, r := range s.db.redactors {
		if r.Username == username {
			return &r, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *redactorStore) FindByIDs(_ context.Context, ids []uint) ([]*entity.Redactor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	out := []*entity.Redactor{}
	seen := make(map[uint]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if r, ok := s.db.redactors[id]; ok {
			out = append(out, &r)
		}
	}
	sortByUsername(out)
	return out, nil
}

func sortByUsername(out []*entity.Redactor) {
	sort.Slice(out, func(i, j int) bool {
		return out[i].Username < out[j].Username
	})
}

func (s *redactorStore) matching(search string) []*entity.Redactor {
	out := make([]*entity.Redactor, 0, len(s.db.redactors))
	for _, r := range s.db.redactors {
		if contains(r.Username, search) {
			rc := r
			out = append(out, &rc)
		}
	}
	sortByUsername(out)
	return out
}

func (s *redactorStore) Count(_ context.Context, search string) (int64, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return int64(len(s.matching(search))), nil
}

func (s *redactorStore) FindAll(_ context.Context, search string, offset, limit int) ([]*entity.Redactor, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	return page(s.matching(search), offset, limit), nil
}

func (s *redactorStore) Update(_ context.Context, redactor *entity.Redactor) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	stored, ok := s.db.redactors[redactor.ID]
	if !ok {
		return nil
	}
	for id, r := range s.db.redactors {
		if id != redactor.ID && r.Username == redactor.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	stored.Username = redactor.Username
	stored.FirstName = redactor.FirstName
	stored.LastName = redactor.LastName
	stored.YearsOfExperience = redactor.YearsOfExperience
	s.db.redactors[redactor.ID] = stored
	return nil
}

func (s *redactorStore) Delete(_ context.Context, id uint) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.redactors[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	for l := range s.db.links {
		if l.redactorID == id {
			delete(s.db.links, l)
		}
	}
	delete(s.db.redactors, id)
	return nil
}

func (s *redactorStore) ToggleNewspaper(_ context.Context, redactorID, newspaperID uint) (bool, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	l := link{newspaperID: newspaperID, redactorID: redactorID}
	if _, ok := s.db.links[l]; ok {
		delete(s.db.links, l)
		return false, nil
	}
	s.db.links[l] = struct{}{}
	return true, nil
}
