package service_test

import (
	"context"
	"errors"
	"sync"
	"time"

	appErrors "github.com/unclebandit/smsify-backend/internal/errors"
	"github.com/unclebandit/smsify-backend/internal/model"
	"github.com/unclebandit/smsify-backend/internal/queue"
	"github.com/unclebandit/smsify-backend/internal/telephony"
)

// --- Mock Repositories ---

type MockMessageRepo struct {
	mu       sync.Mutex
	bySID    map[string]*model.Message
	created  []*model.Message
	findErr  error
	status   map[string]model.MessageStatus
	createFn func(*model.Message) error
}

func newMockMessageRepo(msgs ...*model.Message) *MockMessageRepo {
	m := &MockMessageRepo{bySID: map[string]*model.Message{}, status: map[string]model.MessageStatus{}}
	for _, msg := range msgs {
		m.bySID[msg.ProviderMessageID] = msg
	}
	return m
}

func (m *MockMessageRepo) FindByProviderID(ctx context.Context, sid string) (*model.Message, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	msg, ok := m.bySID[sid]
	if !ok {
		return nil, appErrors.NewMessageNotFound(sid)
	}
	return msg, nil
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createFn != nil {
		if err := m.createFn(msg); err != nil {
			return err
		}
	}
	msg.ID = len(m.created) + 1
	m.created = append(m.created, msg)
	return nil
}

func (m *MockMessageRepo) UpdateStatusByProviderID(ctx context.Context, sid string, status model.MessageStatus) (int64, error) {
	if _, ok := m.bySID[sid]; !ok {
		return 0, nil
	}
	m.status[sid] = status
	return 1, nil
}

func (m *MockMessageRepo) ListByCampaign(ctx context.Context, campaignID int) ([]model.Message, error) {
	out := []model.Message{}
	for _, msg := range m.bySID {
		if msg.CampaignID == campaignID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

type MockReplyRepo struct {
	replies []*model.Reply
	err     error
	noID    bool
}

func (m *MockReplyRepo) Create(ctx context.Context, reply *model.Reply) error {
	if m.err != nil {
		return m.err
	}
	if !m.noID {
		reply.ID = 100 + len(m.replies)
	}
	m.replies = append(m.replies, reply)
	return nil
}

func (m *MockReplyRepo) ListByCampaign(ctx context.Context, userID, campaignID int) ([]model.ReplyWithMessage, error) {
	out := []model.ReplyWithMessage{}
	for _, r := range m.replies {
		out = append(out, model.ReplyWithMessage{Reply: *r})
	}
	return out, nil
}

type MockCategoryRepo struct {
	categories []model.Category
	listErr    error
	nextID     int
}

func (m *MockCategoryRepo) ListActiveByCampaign(ctx context.Context, campaignID int) ([]model.Category, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := []model.Category{}
	for _, c := range m.categories {
		if c.CampaignID == campaignID && c.DeletedAt == nil {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *MockCategoryRepo) GetActive(ctx context.Context, categoryID int) (*model.Category, error) {
	for i := range m.categories {
		if m.categories[i].ID == categoryID && m.categories[i].DeletedAt == nil {
			return &m.categories[i], nil
		}
	}
	return nil, appErrors.NewCategoryNotFound(categoryID)
}

func (m *MockCategoryRepo) Create(ctx context.Context, campaignID int, label string) (*model.Category, error) {
	m.nextID++
	c := model.Category{ID: m.nextID, CampaignID: campaignID, Label: label}
	m.categories = append(m.categories, c)
	return &c, nil
}

func (m *MockCategoryRepo) UpdateLabel(ctx context.Context, categoryID int, label string) (*model.Category, error) {
	c, err := m.GetActive(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	c.Label = label
	return c, nil
}

func (m *MockCategoryRepo) SoftDelete(ctx context.Context, categoryID int) (*model.Category, error) {
	c, err := m.GetActive(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	c.DeletedAt = &now
	return c, nil
}

type MockCategorizationRepo struct {
	links []model.ReplyCategorization
	err   error
}

func (m *MockCategorizationRepo) Create(ctx context.Context, replyID, categoryID int) (*model.ReplyCategorization, error) {
	if m.err != nil {
		return nil, m.err
	}
	rc := model.ReplyCategorization{ID: len(m.links) + 1, ReplyID: replyID, CategoryID: categoryID}
	m.links = append(m.links, rc)
	return &rc, nil
}

type MockCampaignRepo struct {
	campaigns map[int]*model.Campaign
	updates   map[string]any
}

func (m *MockCampaignRepo) GetOwned(ctx context.Context, userID, campaignID int) (*model.Campaign, error) {
	c, ok := m.campaigns[campaignID]
	if !ok || c.UserID != userID {
		return nil, appErrors.NewCampaignNotFound(campaignID)
	}
	return c, nil
}

func (m *MockCampaignRepo) Update(ctx context.Context, userID, campaignID int, updates map[string]any) (*model.Campaign, error) {
	c, err := m.GetOwned(ctx, userID, campaignID)
	if err != nil {
		return nil, err
	}
	m.updates = updates
	return c, nil
}

type MockContactRepo struct {
	contacts []model.Contact
}

func (m *MockContactRepo) ListByCampaign(ctx context.Context, campaignID int) ([]model.Contact, error) {
	out := []model.Contact{}
	for _, c := range m.contacts {
		if c.CampaignID == campaignID {
			out = append(out, c)
		}
	}
	return out, nil
}

// --- Mock collaborators ---

type MockCompleter struct {
	reply string
	err   error
	calls int
}

func (m *MockCompleter) Complete(ctx context.Context, system, prompt string) (string, error) {
	m.calls++
	return m.reply, m.err
}

type MockSender struct {
	mu   sync.Mutex
	sent []telephony.SendRequest
	fail map[string]bool
}

func (m *MockSender) Send(ctx context.Context, req telephony.SendRequest) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail[req.To] {
		return "", errors.New("invalid 'To' phone number")
	}
	m.sent = append(m.sent, req)
	return "SM" + req.To, nil
}

type MockQueue struct {
	published [][]byte
	failAfter int
}

func (m *MockQueue) Publish(ctx context.Context, topic string, payload []byte) error {
	if m.failAfter > 0 && len(m.published) >= m.failAfter {
		return errors.New("queue closed")
	}
	m.published = append(m.published, payload)
	return nil
}

func (m *MockQueue) Subscribe(topic string, handler queue.Handler) error {
	return nil
}

func (m *MockQueue) Close() error { return nil }
