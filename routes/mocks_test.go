package routes_test

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"portal/models"
)

/* ---------- in-memory repositories ---------- */

type MockUserRepo struct {
	Users map[string]models.User // keyed by email
}

func (m *MockUserRepo) Create(u *models.User) error {
	if _, ok := m.Users[u.Email]; ok {
		return errors.New("dup")
	}
	u.ID = int64(len(m.Users) + 1)
	m.Users[u.Email] = *u
	return nil
}

func (m *MockUserRepo) ValidateCredentials(email, plain string) (models.User, error) {
	u, ok := m.Users[email]
	if !ok {
		return models.User{}, errors.New("not found")
	}
	// mocks keep the password plain; the SQL repo owns the bcrypt round trip
	if u.Password != plain {
		return models.User{}, errors.New("bad")
	}
	return u, nil
}

func (m *MockUserRepo) GetByID(id int64) (models.User, error) {
	for _, u := range m.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

type MockEventRepo struct{ Items map[string]models.Event }

func (m *MockEventRepo) GetUpcoming(from time.Time, limit int64) ([]models.Event, error) {
	var out []models.Event
	for _, e := range m.Items {
		if !e.DateTime.Before(from) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockEventRepo) GetByID(id string) (models.Event, error) {
	e, ok := m.Items[id]
	if !ok {
		return models.Event{}, models.ErrNotFound
	}
	return e, nil
}

func (m *MockEventRepo) Create(e *models.Event) error { m.Items[e.ID] = *e; return nil }

func (m *MockEventRepo) Update(e *models.Event) error {
	if _, ok := m.Items[e.ID]; !ok {
		return models.ErrNotFound
	}
	m.Items[e.ID] = *e
	return nil
}

func (m *MockEventRepo) Delete(id string) error { delete(m.Items, id); return nil }

type MockPostRepo struct{ Items map[string]models.Post }

func (m *MockPostRepo) GetAll() ([]models.Post, error) {
	out := make([]models.Post, 0, len(m.Items))
	for _, p := range m.Items {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *MockPostRepo) GetByID(id string) (models.Post, error) {
	p, ok := m.Items[id]
	if !ok {
		return models.Post{}, models.ErrNotFound
	}
	return p, nil
}

func (m *MockPostRepo) Create(p *models.Post) error {
	p.CreatedAt = time.Now().UTC()
	m.Items[p.ID] = *p
	return nil
}

func (m *MockPostRepo) Update(p *models.Post) error {
	old, ok := m.Items[p.ID]
	if !ok {
		return models.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	m.Items[p.ID] = *p
	return nil
}

func (m *MockPostRepo) Delete(id string) error { delete(m.Items, id); return nil }

type MockRegRepo struct {
	Pairs map[string]bool // "userId:eventId"
	Fail  error
}

func (m *MockRegRepo) Register(uid int64, eid string) error {
	if m.Fail != nil {
		return m.Fail
	}
	k := regKey(uid, eid)
	if m.Pairs[k] {
		return models.ErrDuplicate
	}
	m.Pairs[k] = true
	return nil
}

func (m *MockRegRepo) Cancel(uid int64, eid string) error {
	delete(m.Pairs, regKey(uid, eid))
	return nil
}

func (m *MockRegRepo) ListByUser(uid int64) ([]string, error) {
	var ids []string
	prefix := fmt.Sprintf("%d:", uid)
	for k, ok := range m.Pairs {
		if ok && len(k) > len(prefix) && k[:len(prefix)] == prefix {
			ids = append(ids, k[len(prefix):])
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func regKey(uid int64, eid string) string { return fmt.Sprintf("%d:%s", uid, eid) }

/* ---------- notification sink ---------- */

type SentMail struct{ To, Code, Title string }

type MockSender struct {
	Sent chan SentMail
	Err  error
}

func NewMockSender() *MockSender { return &MockSender{Sent: make(chan SentMail, 8)} }

func (m *MockSender) SendVerificationCode(ctx context.Context, to, code, title string) error {
	m.Sent <- SentMail{To: to, Code: code, Title: title}
	return m.Err
}
