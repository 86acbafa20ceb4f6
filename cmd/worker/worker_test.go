package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/smsify-backend/internal/metrics"
	"github.com/unclebandit/smsify-backend/internal/model"
	"github.com/unclebandit/smsify-backend/internal/queue"
	"github.com/unclebandit/smsify-backend/internal/service"
	"github.com/unclebandit/smsify-backend/internal/telephony"
)

// MockMessageRepo stores messages in memory
type MockMessageRepo struct {
	msgs []*model.Message
	mu   sync.Mutex
}

func (m *MockMessageRepo) Create(ctx context.Context, msg *model.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	msg.ID = len(m.msgs) + 1
	m.msgs = append(m.msgs, msg)
	return nil
}

type MockSender struct {
	fail bool
}

func (s MockSender) Send(ctx context.Context, req telephony.SendRequest) (string, error) {
	if s.fail {
		return "", errors.New("provider rejected message")
	}
	return "SM" + req.To, nil
}

func publish(t *testing.T, q queue.Queue, job service.SendJob) {
	t.Helper()
	payload, err := json.Marshal(job)
	require.NoError(t, err)
	require.NoError(t, q.Publish(context.Background(), service.DefaultSendTopic, payload))
}

func TestWorker(t *testing.T) {
	repo := &MockMessageRepo{}
	q := queue.NewInMemoryQueue()
	defer q.Close()

	require.NoError(t, startWorker(q, "", &service.Dispatcher{Sender: MockSender{}, Messages: repo}))

	publish(t, q, service.SendJob{CampaignID: 1, ContactID: 1, To: "+15550001", From: "+15559999", Body: "Want to renew?"})
	q.Wait()

	require.Len(t, repo.msgs, 1)
	assert.Equal(t, "SM+15550001", repo.msgs[0].ProviderMessageID)
	assert.Equal(t, model.MessageStatusPending, repo.msgs[0].Status)
	assert.Equal(t, "Want to renew?", repo.msgs[0].Content)
}

func TestWorker_FailedSendIsNotRecorded(t *testing.T) {
	repo := &MockMessageRepo{}
	q := queue.NewInMemoryQueue()
	defer q.Close()

	require.NoError(t, startWorker(q, service.DefaultSendTopic, &service.Dispatcher{Sender: MockSender{fail: true}, Messages: repo}))

	publish(t, q, service.SendJob{CampaignID: 1, ContactID: 1, To: "+15550001", From: "+15559999", Body: "hi"})
	q.Wait()

	assert.Empty(t, repo.msgs)
}

func TestWorker_MetricsAreScrapable(t *testing.T) {
	m := metrics.NewMetrics()
	q := queue.NewInMemoryQueue()
	defer q.Close()

	require.NoError(t, startWorker(q, "", &service.Dispatcher{Sender: MockSender{}, Messages: &MockMessageRepo{}, Metrics: m}))
	publish(t, q, service.SendJob{CampaignID: 1, ContactID: 1, To: "+15550001", From: "+15559999", Body: "hi"})
	q.Wait()

	w := httptest.NewRecorder()
	newMetricsServer(":0", m).Handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smsify_messages_sent_total 1")
}
