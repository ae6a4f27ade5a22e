package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"portalevents/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

const testTimeout = 5 * time.Second

// fakeEventRepo is an in-memory EventRepository for tests.
type fakeEventRepo struct {
	byID    map[string]*domain.Event
	order   []string
	nextID  int
	err     error // if set, every method returns this error
	creates int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{
		byID:   make(map[string]*domain.Event),
		nextID: 1,
	}
}

func (f *fakeEventRepo) Create(ctx context.Context, e *domain.Event) error {
	f.creates++
	if f.err != nil {
		return f.err
	}
	e.ID = fmt.Sprintf("ev-%d", f.nextID)
	e.CreatedAt = time.Date(2025, 1, 1, 0, f.nextID, 0, 0, time.UTC)
	f.nextID++
	f.byID[e.ID] = e
	f.order = append([]string{e.ID}, f.order...)
	return nil
}

func (f *fakeEventRepo) ListByCategory(ctx context.Context, category domain.Category) ([]*domain.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.Event
	for _, id := range f.order {
		if e := f.byID[id]; e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	for i, o := range f.order {
		if o == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// fakeImageStore returns one URL per file, or err.
type fakeImageStore struct {
	err   error
	calls int
	short bool
}

func (f *fakeImageStore) StoreBatch(_ context.Context, category domain.Category, files []domain.ImageFile) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	urls := make([]string, 0, len(files))
	for _, file := range files {
		urls = append(urls, fmt.Sprintf("https://cdn.test/%s/%s", category, file.Name))
	}
	if f.short {
		urls = urls[:len(urls)-1]
	}
	return urls, nil
}

func (f *fakeImageStore) Provider() string { return "fake" }

// fakeMailer records sent messages.
type fakeMailer struct {
	sent []domain.Message
	err  error
}

func (f *fakeMailer) Send(_ context.Context, msg domain.Message) (string, error) {
	f.sent = append(f.sent, msg)
	if f.err != nil {
		return "", f.err
	}
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func (f *fakeMailer) Provider() string { return "fake" }

// fakeRenderer renders a fixed subject and echoes the inquiry name.
type fakeRenderer struct {
	err  error
	data any
}

func (f *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	f.data = data
	if f.err != nil {
		return "", "", "", f.err
	}
	d, ok := data.(domain.InquiryEmailData)
	if !ok {
		return "", "", "", errors.New("unexpected data")
	}
	return "subject:" + name, "<p>" + d.Name + "</p>", d.Name, nil
}

// fakeAuthenticator accepts one email/password pair.
type fakeAuthenticator struct {
	email, password string
	err             error
}

func (f *fakeAuthenticator) SignIn(_ context.Context, email, password string) (*domain.Operator, error) {
	if f.err != nil {
		return nil, f.err
	}
	if email != f.email || password != f.password {
		return nil, domain.ErrInvalidCredentials
	}
	return &domain.Operator{ID: "op-1", Email: email, Name: "Admin"}, nil
}

func (f *fakeAuthenticator) Mode() domain.Mode { return domain.ModeDemo }

// fakeTokens uses the session id itself as the token.
type fakeTokens struct {
	issueErr error
}

func (f *fakeTokens) Issue(sessionID string, _ *domain.Operator, _, _ time.Time) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	return "tok." + sessionID, nil
}

func (f *fakeTokens) Verify(token string) (string, error) {
	const prefix = "tok."
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrUnauthorized
	}
	return token[len(prefix):], nil
}
