package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/maheshrc27/postbridge/internal/models"
	"github.com/maheshrc27/postbridge/internal/publisher"
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/pkg/utils"
	"github.com/stretchr/testify/require"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[int64]*models.SocialAccount
	nextID   int64
	err      error
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[int64]*models.SocialAccount{}, nextID: 1}
}

// add stores an account whose credentials are encrypted with testSecretKey.
func (r *fakeAccountRepo) add(t *testing.T, userID int64, platform string, creds any, active bool) int64 {
	t.Helper()
	plain, err := json.Marshal(creds)
	require.NoError(t, err)
	enc, err := utils.Encrypt(plain, []byte(testSecretKey))
	require.NoError(t, err)

	id, err := r.Create(context.Background(), &models.SocialAccount{
		UserID:               userID,
		Platform:             platform,
		AccountName:          platform + " account",
		EncryptedCredentials: enc,
		IsActive:             active,
	})
	require.NoError(t, err)
	return id
}

func (r *fakeAccountRepo) Create(ctx context.Context, sa *models.SocialAccount) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return 0, r.err
	}
	cp := *sa
	cp.ID = r.nextID
	r.nextID++
	r.accounts[cp.ID] = &cp
	return cp.ID, nil
}

func (r *fakeAccountRepo) GetActiveByIDForUser(ctx context.Context, id, userID int64) (*models.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	sa, ok := r.accounts[id]
	if !ok || sa.UserID != userID || !sa.IsActive {
		return nil, nil
	}
	cp := *sa
	return &cp, nil
}

func (r *fakeAccountRepo) ListInfoByUserID(ctx context.Context, userID int64) ([]*models.SocialAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.SocialAccount
	for _, sa := range r.accounts {
		if sa.UserID == userID {
			cp := *sa
			cp.EncryptedCredentials = ""
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeAccountRepo) CheckByUserID(ctx context.Context, accountID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sa, ok := r.accounts[accountID]
	return ok && sa.UserID == userID, nil
}

func (r *fakeAccountRepo) SetActive(ctx context.Context, id, userID int64, active bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	sa, ok := r.accounts[id]
	if !ok || sa.UserID != userID {
		return repository.ErrNoRowsAffected
	}
	sa.IsActive = active
	return nil
}

func (r *fakeAccountRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.accounts, id)
	return nil
}

type fakePostRepo struct {
	mu        sync.Mutex
	posts     map[int64]*models.Post
	nextID    int64
	writes    int
	markErr   error
	createErr error
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*models.Post{}, nextID: 1}
}

func (r *fakePostRepo) add(userID int64, status string) int64 {
	id, _ := r.Create(context.Background(), &models.Post{UserID: userID, Content: "draft", Status: status})
	r.mu.Lock()
	r.writes = 0
	r.mu.Unlock()
	return id
}

func (r *fakePostRepo) status(id int64) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[id]; ok {
		return p.Status
	}
	return ""
}

func (r *fakePostRepo) Create(ctx context.Context, post *models.Post) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return 0, r.createErr
	}
	cp := *post
	cp.ID = r.nextID
	r.nextID++
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.posts[cp.ID] = &cp
	r.writes++
	return cp.ID, nil
}

func (r *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePostRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePostRepo) CheckByUserID(ctx context.Context, postID, userID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	return ok && p.UserID == userID, nil
}

func (r *fakePostRepo) MarkPublished(ctx context.Context, postID, userID, accountID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.writes++
	if r.markErr != nil {
		return r.markErr
	}
	p, ok := r.posts[postID]
	if !ok || p.UserID != userID {
		return repository.ErrNoRowsAffected
	}
	p.Status = models.PostStatusPublished
	p.PlatformAccountID = &accountID
	return nil
}

func (r *fakePostRepo) ClaimScheduled(ctx context.Context, postID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[postID]
	if !ok || p.Status != models.PostStatusScheduled {
		return false, nil
	}
	p.Status = models.PostStatusPublishing
	r.writes++
	return true, nil
}

func (r *fakePostRepo) MarkFailed(ctx context.Context, postID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.posts[postID]; ok && p.Status == models.PostStatusPublishing {
		p.Status = models.PostStatusFailed
		r.writes++
	}
	return nil
}

func (r *fakePostRepo) ListStalePublishing(ctx context.Context, before time.Time) ([]*models.Post, error) {
	return nil, nil
}

func (r *fakePostRepo) FailIfStillPublishing(ctx context.Context, postID int64, before time.Time) (bool, error) {
	return false, nil
}

func (r *fakePostRepo) Remove(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.posts, id)
	return nil
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	entries []*models.PostingHistory
}

func (r *fakeHistoryRepo) Create(ctx context.Context, ph *models.PostingHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *ph
	cp.ID = int64(len(r.entries) + 1)
	r.entries = append(r.entries, &cp)
	return cp.ID, nil
}

func (r *fakeHistoryRepo) GetByPostID(ctx context.Context, postID int64) ([]*models.PostingHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.PostingHistory
	for _, e := range r.entries {
		if e.PostID == postID {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeKeyRepo struct {
	keys   []*models.ApiKey
	nextID int64
}

func (r *fakeKeyRepo) GetUserIDByKey(ctx context.Context, apiKey string) (int64, bool, error) {
	for _, k := range r.keys {
		if k.ApiKey == apiKey {
			return k.UserID, true, nil
		}
	}
	return 0, false, nil
}

func (r *fakeKeyRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	var out []*models.ApiKey
	for _, k := range r.keys {
		if k.UserID == userID {
			cp := *k
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeKeyRepo) Create(ctx context.Context, apiKey *models.ApiKey) (int64, error) {
	r.nextID++
	cp := *apiKey
	cp.ID = r.nextID
	r.keys = append(r.keys, &cp)
	return cp.ID, nil
}

func (r *fakeKeyRepo) CheckByUserID(ctx context.Context, keyID, userID int64) (bool, error) {
	for _, k := range r.keys {
		if k.ID == keyID && k.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeKeyRepo) Remove(ctx context.Context, id int64) error {
	for i, k := range r.keys {
		if k.ID == id {
			r.keys = append(r.keys[:i], r.keys[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeScheduler struct {
	scheduled map[int64]time.Time
	err       error
}

func (s *fakeScheduler) SchedulePublish(ctx context.Context, postID int64, at time.Time) error {
	if s.err != nil {
		return s.err
	}
	if s.scheduled == nil {
		s.scheduled = map[int64]time.Time{}
	}
	s.scheduled[postID] = at
	return nil
}

type recordedCall struct {
	Path   string
	Header http.Header
	Body   string
}

// platformServer stands in for every social API at once. Responses are keyed
// by request path.
type platformServer struct {
	*httptest.Server
	mu        sync.Mutex
	calls     []recordedCall
	responses map[string]cannedResponse
}

type cannedResponse struct {
	status int
	body   string
}

func newPlatformServer(t *testing.T) *platformServer {
	ps := &platformServer{responses: map[string]cannedResponse{
		"/2/tweets":          {http.StatusCreated, `{"data":{"id":"1","text":"hi"}}`},
		"/v18.0/page-1/feed": {http.StatusOK, `{"id":"page-1_99"}`},
		"/v2/ugcPosts":       {http.StatusCreated, `{"id":"urn:li:share:7"}`},
	}}
	ps.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		ps.mu.Lock()
		ps.calls = append(ps.calls, recordedCall{Path: r.URL.Path, Header: r.Header.Clone(), Body: string(body)})
		resp, ok := ps.responses[r.URL.Path]
		ps.mu.Unlock()
		if !ok {
			resp = cannedResponse{http.StatusNotFound, `{"error":"unknown path"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(ps.Close)
	return ps
}

func (ps *platformServer) respond(path string, status int, body string) {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	ps.responses[path] = cannedResponse{status, body}
}

func (ps *platformServer) recorded() []recordedCall {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return append([]recordedCall(nil), ps.calls...)
}

func (ps *platformServer) registry() *publisher.Registry {
	client := ps.Client()
	return publisher.NewRegistry(
		publisher.NewTwitterPublisher(client, ps.URL),
		publisher.NewFacebookPublisher(client, ps.URL),
		publisher.NewLinkedInPublisher(client, ps.URL),
		publisher.NewInstagramPublisher(),
	)
}

var twitterCreds = &publisher.TwitterCredentials{
	ConsumerKey:       "ck",
	ConsumerSecret:    "cs",
	AccessToken:       "at",
	AccessTokenSecret: "ats",
}

var (
	facebookCreds = &publisher.FacebookCredentials{PageID: "page-1", AccessToken: "fb-token"}
	linkedinCreds = &publisher.LinkedInCredentials{PersonURN: "urn:li:person:abc", AccessToken: "li-token"}
)
