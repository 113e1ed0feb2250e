package audit_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	apperrors "github.com/Dijital-human/yusu-admin/internal"
	"github.com/Dijital-human/yusu-admin/internal/audit"
	auditDatamodel "github.com/Dijital-human/yusu-admin/internal/core/datamodel/audit"
	"github.com/Dijital-human/yusu-admin/internal/core/events"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestAudit(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Audit Suite")
}

// MockRepository implements audit.RepositoryAPI in memory. Appends are
// locked because the bus delivers them from subscriber goroutines.
type MockRepository struct {
	mu         sync.Mutex
	entries    []*auditDatamodel.Entry
	shouldFail bool
	failError  error
}

func (m *MockRepository) SetShouldFail(fail bool, err error) {
	m.shouldFail = fail
	m.failError = err
}

func (m *MockRepository) Append(entry *auditDatamodel.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.shouldFail {
		return m.failError
	}
	m.entries = append(m.entries, entry)
	return nil
}

func (m *MockRepository) Entries() []*auditDatamodel.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*auditDatamodel.Entry(nil), m.entries...)
}

func (m *MockRepository) List(filter audit.ListFilter) ([]*auditDatamodel.Entry, int64, error) {
	if m.shouldFail {
		return nil, 0, m.failError
	}
	var rows []*auditDatamodel.Entry
	for _, entry := range m.entries {
		if filter.Action != "" && entry.Action != filter.Action {
			continue
		}
		if filter.ResourceType != "" && entry.ResourceType != filter.ResourceType {
			continue
		}
		rows = append(rows, entry)
	}
	return rows, int64(len(rows)), nil
}

var _ = Describe("Audit", func() {
	var (
		mockRepo *MockRepository
		logger   *slog.Logger
		bus      *events.EventBus
		ctx      context.Context
	)

	BeforeEach(func() {
		mockRepo = &MockRepository{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		bus = events.NewEventBus(logger)
		ctx = context.Background()
	})

	Describe("persistence subscriber", func() {
		var record audit.Record

		BeforeEach(func() {
			audit.RegisterPersistence(bus, mockRepo, logger)
			record = audit.Record{
				ActorID:      7,
				Action:       audit.ActionBlockUser,
				ResourceType: audit.ResourceUser,
				ResourceID:   "42",
				Details:      map[string]interface{}{"reason": "spamming listings"},
			}
		})

		publish := func(rec audit.Record) {
			event := events.BaseEvent{
				ID:        "evt-1",
				Type:      audit.EventTypeRecorded,
				Timestamp: time.Now(),
				Data: map[string]interface{}{
					"actor_id":      rec.ActorID,
					"action":        rec.Action,
					"resource_type": rec.ResourceType,
					"resource_id":   rec.ResourceID,
					"details":       rec.Details,
				},
			}
			Expect(bus.PublishSync(ctx, event)).To(Succeed())
		}

		It("writes the entry with serialized details", func() {
			publish(record)

			Expect(mockRepo.entries).To(HaveLen(1))
			entry := mockRepo.entries[0]
			Expect(entry.ID).To(Equal("evt-1"))
			Expect(entry.ActorID).To(Equal(int64(7)))
			Expect(entry.Action).To(Equal(audit.ActionBlockUser))
			Expect(entry.ResourceType).To(Equal(audit.ResourceUser))
			Expect(entry.ResourceID).To(Equal("42"))
			Expect(entry.Details).To(ContainSubstring(`"reason":"spamming listings"`))
			Expect(entry.CreatedAt).NotTo(BeZero())
		})

		It("stores empty details as an empty string", func() {
			record.Details = nil
			publish(record)

			Expect(mockRepo.entries).To(HaveLen(1))
			Expect(mockRepo.entries[0].Details).To(BeEmpty())
		})

		It("swallows storage failures instead of failing the handler", func() {
			mockRepo.SetShouldFail(true, errors.New("disk full"))
			publish(record)

			Expect(mockRepo.entries).To(BeEmpty())
		})
	})

	Describe("BusRecorder", func() {
		It("delivers records through the bus to the subscriber", func() {
			audit.RegisterPersistence(bus, mockRepo, logger)
			recorder := audit.NewBusRecorder(bus, logger)

			recorder.Record(ctx, audit.Record{
				ActorID:      7,
				Action:       audit.ActionCreateCategory,
				ResourceType: audit.ResourceCategory,
				ResourceID:   "cat-1",
			})

			// delivery is asynchronous
			Eventually(func() int {
				return len(mockRepo.Entries())
			}).Should(Equal(1))
			Expect(mockRepo.Entries()[0].Action).To(Equal(audit.ActionCreateCategory))
		})
	})

	Describe("Service.List", func() {
		var service *audit.Service

		BeforeEach(func() {
			service = audit.NewService(mockRepo, logger)
			mockRepo.entries = []*auditDatamodel.Entry{
				{
					ID:           "evt-1",
					ActorID:      7,
					Action:       audit.ActionBlockUser,
					ResourceType: audit.ResourceUser,
					ResourceID:   "42",
					Details:      `{"reason":"spamming listings"}`,
					CreatedAt:    time.Now(),
				},
				{
					ID:           "evt-2",
					ActorID:      7,
					Action:       audit.ActionCreateCategory,
					ResourceType: audit.ResourceCategory,
					ResourceID:   "cat-1",
					CreatedAt:    time.Now(),
				},
			}
		})

		It("maps entries and deserializes details", func() {
			responses, total, err := service.List(audit.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(2)))
			Expect(responses).To(HaveLen(2))

			Expect(responses[0].Details).To(HaveKeyWithValue("reason", "spamming listings"))
			Expect(responses[1].Details).To(BeNil())
		})

		It("passes action and resource filters through", func() {
			responses, total, err := service.List(audit.ListFilter{Action: audit.ActionCreateCategory})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(responses[0].ResourceType).To(Equal(audit.ResourceCategory))
		})

		It("wraps repository failures", func() {
			mockRepo.SetShouldFail(true, errors.New("database down"))

			_, _, err := service.List(audit.ListFilter{})
			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.AsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
		})
	})
})
