package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"cerrajeria_backend/internal/conversation/domain"
	"cerrajeria_backend/internal/conversation/service"
	"cerrajeria_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

type memoryStore struct {
	sessions map[string]domain.Session
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: make(map[string]domain.Session)}
}

func (m *memoryStore) Get(ctx context.Context, senderID string) (domain.Session, error) {
	if sess, ok := m.sessions[senderID]; ok {
		return sess, nil
	}
	return domain.NewSession(), nil
}

func (m *memoryStore) Save(ctx context.Context, senderID string, sess domain.Session) error {
	m.sessions[senderID] = sess
	return nil
}

func (m *memoryStore) Delete(ctx context.Context, senderID string) error {
	delete(m.sessions, senderID)
	return nil
}

type noopCommitter struct{}

func (noopCommitter) CommitOrder(ctx context.Context, req service.CommitRequest) (int64, error) {
	return 1, nil
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.New("development")
	svc := service.New(newMemoryStore(), noopCommitter{}, log, 20)
	h := New(svc, log)

	engine := gin.New()
	engine.POST("/webhook/whatsapp", h.HandleInbound)
	return engine
}

func postForm(t *testing.T, engine *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestHandleInbound_FirstMessageReturnsWelcomeTwiML(t *testing.T) {
	engine := newTestRouter()

	rec := postForm(t, engine, url.Values{
		"From":       {"whatsapp:+573001112233"},
		"Body":       {"hola"},
		"MessageSid": {"SM1"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/xml") {
		t.Fatalf("expected XML content type, got %q", ct)
	}

	body := rec.Body.String()
	if !strings.HasPrefix(body, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Errorf("missing XML declaration: %q", body)
	}
	if !strings.Contains(body, "<Message>") || !strings.Contains(body, "Bienvenido") {
		t.Errorf("expected welcome message in envelope: %q", body)
	}
}

func TestHandleInbound_DuplicateDeliveryGetsEmptyEnvelope(t *testing.T) {
	engine := newTestRouter()
	form := url.Values{
		"From":       {"whatsapp:+573001112233"},
		"Body":       {"hola"},
		"MessageSid": {"SM1"},
	}

	postForm(t, engine, form)
	rec := postForm(t, engine, form)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for duplicate, got %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<Message>") {
		t.Errorf("expected empty envelope for duplicate, got %q", body)
	}
	if !strings.Contains(body, "<Response") {
		t.Errorf("expected well-formed envelope, got %q", body)
	}
}

func TestHandleInbound_MissingFromStillReplies(t *testing.T) {
	engine := newTestRouter()

	rec := postForm(t, engine, url.Values{
		"Body":       {"hola"},
		"MessageSid": {"SM1"},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "<Message>") {
		t.Errorf("expected a reply for anonymous sender, got %q", rec.Body.String())
	}
}

func TestRenderTwiML(t *testing.T) {
	got := RenderTwiML("Hola")
	want := `<?xml version="1.0" encoding="UTF-8"?><Response><Message>Hola</Message></Response>`
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	empty := RenderTwiML("")
	wantEmpty := `<?xml version="1.0" encoding="UTF-8"?><Response></Response>`
	if empty != wantEmpty {
		t.Errorf("got %q, want %q", empty, wantEmpty)
	}
}
