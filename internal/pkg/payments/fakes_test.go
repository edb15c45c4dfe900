package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/nexthub-ai/flowwing-cms-sub001/app/models"
)

// fakeAuditRepo is an in-memory AuditRequestRepository whose conditional
// updates mirror the guarded SQL of the GORM implementation.
type fakeAuditRepo struct {
	mu         sync.Mutex
	records    map[string]*models.AuditRequest
	failCreate bool
	failUpdate bool
}

func newFakeAuditRepo() *fakeAuditRepo {
	return &fakeAuditRepo{records: map[string]*models.AuditRequest{}}
}

func (r *fakeAuditRepo) Create(a *models.AuditRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return errors.New("insert failed")
	}
	cp := *a
	r.records[a.ID] = &cp
	return nil
}

func (r *fakeAuditRepo) GetByID(id string) (*models.AuditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeAuditRepo) MarkPaymentReceived(id, paymentRef string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return false, errors.New("update failed")
	}
	rec, ok := r.records[id]
	if !ok {
		return false, nil
	}

	fromUnpaid := rec.Status == models.AuditStatusPending || rec.Status == models.AuditStatusPaymentFailed
	if paymentRef != "" {
		refMissing := rec.Status == models.AuditStatusPaymentReceived && rec.StripePaymentID == nil
		if !fromUnpaid && !refMissing {
			return false, nil
		}
		rec.Status = models.AuditStatusPaymentReceived
		ref := paymentRef
		rec.StripePaymentID = &ref
	} else {
		if !fromUnpaid {
			return false, nil
		}
		rec.Status = models.AuditStatusPaymentReceived
	}
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeAuditRepo) MarkPaymentFailed(id string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failUpdate {
		return false, errors.New("update failed")
	}
	rec, ok := r.records[id]
	if !ok || rec.Status != models.AuditStatusPending {
		return false, nil
	}
	rec.Status = models.AuditStatusPaymentFailed
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeAuditRepo) AdvanceStatus(id, from, to string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[id]
	if !ok || rec.Status != from {
		return false, nil
	}
	rec.Status = to
	rec.UpdatedAt = time.Now()
	return true, nil
}

func (r *fakeAuditRepo) List(offset, limit int) ([]models.AuditRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditRequest
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out, nil
}

func (r *fakeAuditRepo) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.records)), nil
}

func (r *fakeAuditRepo) CountByStatus(status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, rec := range r.records {
		if rec.Status == status {
			n++
		}
	}
	return n, nil
}

// fakeEventRepo is an in-memory WebhookEventRepository with the same
// (provider, provider_event_id) uniqueness the real table enforces.
type fakeEventRepo struct {
	mu         sync.Mutex
	events     map[string]*models.WebhookEvent
	nextID     uint
	failCreate bool
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[string]*models.WebhookEvent{}}
}

func (r *fakeEventRepo) CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failCreate {
		return false, nil, errors.New("insert failed")
	}
	key := event.Provider + "|" + event.ProviderEventID
	if stored, ok := r.events[key]; ok {
		cp := *stored
		return false, &cp, nil
	}
	r.nextID++
	cp := *event
	cp.ID = r.nextID
	r.events[key] = &cp
	out := cp
	return true, &out, nil
}

func (r *fakeEventRepo) MarkProcessed(id uint, processingError string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	for _, ev := range r.events {
		if ev.ID == id {
			ev.ProcessedAt = &now
			ev.ProcessingError = processingError
			return nil
		}
	}
	return errors.New("event not found")
}

// fakeGateway implements Gateway with an HMAC signature over the raw body
// and a trivial JSON event format used only by these tests.
type fakeGateway struct {
	mu           sync.Mutex
	secret       string
	customers    map[string]string
	customerSeq  int
	sessions     []SessionParams
	sessionSeq   int
	lookups      map[string]*Session
	failCustomer bool
	failSession  bool
	failLookup   bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		secret:    "whsec_test",
		customers: map[string]string{},
		lookups:   map[string]*Session{},
	}
}

type fakeEventPayload struct {
	ID         string            `json:"id"`
	Type       string            `json:"type"`
	Metadata   map[string]string `json:"metadata"`
	PaymentRef string            `json:"payment_ref"`
}

func (g *fakeGateway) sign(payload []byte) string {
	mac := hmac.New(sha256.New, []byte(g.secret))
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *fakeGateway) EnsureCustomer(ctx context.Context, email string) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failCustomer {
		return "", fmt.Errorf("%w: customer endpoint down", ErrGateway)
	}
	if id, ok := g.customers[email]; ok {
		return id, nil
	}
	g.customerSeq++
	id := fmt.Sprintf("cus_%d", g.customerSeq)
	g.customers[email] = id
	return id, nil
}

func (g *fakeGateway) CreateCheckoutSession(ctx context.Context, p SessionParams) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failSession {
		return nil, fmt.Errorf("%w: session endpoint down", ErrGateway)
	}
	g.sessions = append(g.sessions, p)
	g.sessionSeq++
	id := fmt.Sprintf("cs_%d", g.sessionSeq)
	return &Session{
		ID:  id,
		URL: "https://checkout.example.com/pay/" + id,
		Metadata: map[string]string{
			MetadataKeyType:    MetadataTypeAudit,
			MetadataKeyAuditID: p.AuditID,
		},
	}, nil
}

func (g *fakeGateway) GetCheckoutSession(ctx context.Context, id string) (*Session, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failLookup {
		return nil, fmt.Errorf("%w: session lookup down", ErrGateway)
	}
	if sess, ok := g.lookups[id]; ok {
		cp := *sess
		return &cp, nil
	}
	return &Session{ID: id}, nil
}

// setSessionState registers what a later GetCheckoutSession returns.
func (g *fakeGateway) setSessionState(sess *Session) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lookups[sess.ID] = sess
}

func (g *fakeGateway) VerifyWebhook(payload []byte, sigHeader string) (*Event, error) {
	if !hmac.Equal([]byte(sigHeader), []byte(g.sign(payload))) {
		return nil, fmt.Errorf("%w: header mismatch", ErrInvalidSignature)
	}
	var ev fakeEventPayload
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("parsing event payload: %w", err)
	}
	return &Event{
		ID:           ev.ID,
		Type:         ev.Type,
		AuditID:      ev.Metadata[MetadataKeyAuditID],
		MetadataType: ev.Metadata[MetadataKeyType],
		PaymentRef:   ev.PaymentRef,
		RawJSON:      payload,
	}, nil
}

// signedEvent builds a raw body plus valid signature for the fake gateway.
func signedEvent(g *fakeGateway, ev fakeEventPayload) ([]byte, string) {
	raw, err := json.Marshal(ev)
	if err != nil {
		panic(err)
	}
	return raw, g.sign(raw)
}

// recordingMailer captures confirmation mails sent by the processor.
type recordingMailer struct {
	mu   sync.Mutex
	sent []string
	fail bool
}

func (m *recordingMailer) Send(to, subject, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail {
		return errors.New("smtp down")
	}
	m.sent = append(m.sent, to)
	return nil
}
