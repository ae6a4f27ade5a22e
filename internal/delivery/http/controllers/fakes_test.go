package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"portalevents/internal/delivery/http/helpers"
	"portalevents/internal/delivery/http/middleware"
	"portalevents/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeEventService implements domain.EventService for handler tests.
type fakeEventService struct {
	createErr    error
	publishErr   error
	listErr      error
	deleteErr    error
	events       []*domain.Event
	lastDraft    domain.EventDraft
	lastFiles    []domain.ImageFile
	lastCategory domain.Category
	lastDeleteID string
}

func (f *fakeEventService) CreateEvent(_ context.Context, d domain.EventDraft) (*domain.Event, error) {
	f.lastDraft = d
	if f.createErr != nil {
		return nil, f.createErr
	}
	e := domain.NewEvent(d)
	e.ID = "ev-created"
	e.CreatedAt = time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	return e, nil
}

func (f *fakeEventService) PublishEvent(_ context.Context, d domain.EventDraft, files []domain.ImageFile) (*domain.Event, error) {
	f.lastDraft = d
	f.lastFiles = files
	if f.publishErr != nil {
		return nil, f.publishErr
	}
	d.Images = make([]string, len(files))
	for i, file := range files {
		d.Images[i] = "https://cdn.test/" + file.Name
	}
	e := domain.NewEvent(d)
	e.ID = "ev-published"
	return e, nil
}

func (f *fakeEventService) ListEventsByCategory(_ context.Context, c domain.Category) ([]*domain.Event, error) {
	f.lastCategory = c
	if f.listErr != nil {
		return nil, f.listErr
	}
	if f.events == nil {
		return []*domain.Event{}, nil
	}
	return f.events, nil
}

func (f *fakeEventService) DeleteEvent(_ context.Context, id string) error {
	f.lastDeleteID = id
	return f.deleteErr
}

func (f *fakeEventService) ListCategories() []domain.CategoryInfo { return domain.Categories() }

// fakeImageService implements domain.ImageService.
type fakeImageService struct {
	err          error
	lastCategory domain.Category
	lastFiles    []domain.ImageFile
}

func (f *fakeImageService) UploadImages(_ context.Context, files []domain.ImageFile, c domain.Category) ([]string, error) {
	f.lastCategory = c
	f.lastFiles = files
	if f.err != nil {
		return nil, f.err
	}
	urls := make([]string, len(files))
	for i, file := range files {
		urls[i] = "https://cdn.test/" + string(c) + "/" + file.Name
	}
	return urls, nil
}

// fakeInquiryService implements domain.InquiryService.
type fakeInquiryService struct {
	err  error
	last domain.Inquiry
}

func (f *fakeInquiryService) SendInquiry(_ context.Context, in domain.Inquiry) (*domain.DispatchReceipt, error) {
	f.last = in
	if f.err != nil {
		return nil, f.err
	}
	return &domain.DispatchReceipt{ID: "msg-1", Provider: "noop"}, nil
}

// fakeSessionService implements domain.SessionService.
type fakeSessionService struct {
	loginErr   error
	logoutID   string
	lastEmail  string
	lastPasswd string
}

func (f *fakeSessionService) Login(_ context.Context, email, password string) (*domain.LoginResult, error) {
	f.lastEmail, f.lastPasswd = email, password
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &domain.LoginResult{
		Token: "tok-1",
		Session: &domain.Session{
			ID:        "sess-1",
			Operator:  domain.Operator{ID: "demo-user-id", Email: email, Name: "Demo User"},
			Mode:      domain.ModeDemo,
			ExpiresAt: time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		},
	}, nil
}

func (f *fakeSessionService) Logout(_ context.Context, id string) error {
	f.logoutID = id
	return nil
}

func (f *fakeSessionService) Authenticate(context.Context, string) (*domain.Session, error) {
	return nil, domain.ErrUnauthorized
}

func withSession(r *http.Request) *http.Request {
	return r.WithContext(middleware.SetSession(r.Context(), &domain.Session{
		ID:       "sess-1",
		Operator: domain.Operator{ID: "demo-user-id", Email: "admin@demo.com"},
		Mode:     domain.ModeDemo,
	}))
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

type formFile struct {
	name string
	data []byte
}

// multipartRequest builds a multipart POST with the given text fields and files under "images".
func multipartRequest(t *testing.T, target string, fields map[string]string, files []formFile) *http.Request {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	for _, f := range files {
		fw, err := mw.CreateFormFile("images", f.name)
		require.NoError(t, err)
		_, err = fw.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodeEnvelope(t *testing.T, rr *httptest.ResponseRecorder, data any) *helpers.APIError {
	t.Helper()
	var envelope struct {
		Data  json.RawMessage   `json:"data"`
		Error *helpers.APIError `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
	if data != nil && envelope.Error == nil {
		require.NoError(t, json.Unmarshal(envelope.Data, data))
	}
	return envelope.Error
}
