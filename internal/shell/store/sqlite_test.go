package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/artpar/portfolio/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

// =============================================================================
// Test Helpers
// =============================================================================

func setupTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

func createTestProject(t *testing.T, store Store, title string, at time.Time) *domain.Project {
	t.Helper()
	p, err := domain.NewProject(domain.ProjectInput{
		Title:        title,
		Description:  "A project",
		Technologies: []string{"Go", "SQLite"},
		Category:     domain.CategoryWeb,
	}, at)
	require.NoError(t, err)
	require.NoError(t, store.CreateProject(context.Background(), p))
	return p
}

func createTestBlog(t *testing.T, store Store, title string, published bool) *domain.Blog {
	t.Helper()
	b, err := domain.NewBlog(domain.BlogInput{
		Title:     title,
		Excerpt:   "An excerpt",
		Content:   "<p>hello world</p>",
		Tags:      []string{"go"},
		Published: published,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, store.CreateBlog(context.Background(), b))
	return b
}

func spotlightIDs(t *testing.T, store Store) []int {
	t.Helper()
	projects, err := store.ListProjects(context.Background(), DefaultListOptions())
	require.NoError(t, err)
	var ids []int
	for _, p := range projects {
		if p.IsSpotlight {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// =============================================================================
// Project CRUD Tests
// =============================================================================

func TestCreateProject_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p := createTestProject(t, store, "My Project", testNow)
	assert.NotZero(t, p.ID)

	got, err := store.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, "my-project", got.Slug)
	assert.Equal(t, []string{"Go", "SQLite"}, got.Technologies)
	assert.Equal(t, domain.StatusCompleted, got.Status)
}

func TestCreateProject_IgnoresSpotlightFlag(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	p, err := domain.NewProject(domain.ProjectInput{
		Title:       "Flagged",
		Description: "d",
		Category:    domain.CategoryOther,
		IsSpotlight: true,
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, store.CreateProject(ctx, p))

	assert.False(t, p.IsSpotlight)
	assert.Empty(t, spotlightIDs(t, store))
}

func TestCreateProject_DuplicateSlug(t *testing.T) {
	store := setupTestStore(t)
	createTestProject(t, store, "Same Title", testNow)

	p, err := domain.NewProject(domain.ProjectInput{
		Title:       "Same Title",
		Description: "d",
		Category:    domain.CategoryWeb,
	}, testNow)
	require.NoError(t, err)

	err = store.CreateProject(context.Background(), p)
	assert.ErrorIs(t, err, ErrDuplicateSlug)

	var storeErr *StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "CreateProject", storeErr.Op)
}

func TestGetProject_NotFound(t *testing.T) {
	store := setupTestStore(t)

	_, err := store.GetProject(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetProjectBySlug(t *testing.T) {
	store := setupTestStore(t)
	p := createTestProject(t, store, "Slug Lookup", testNow)

	got, err := store.GetProjectBySlug(context.Background(), "slug-lookup")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = store.GetProjectBySlug(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateProject_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, store, "Before", testNow)

	later := testNow.Add(time.Hour)
	require.NoError(t, p.Apply(domain.ProjectInput{
		Title:       "After",
		Slug:        "after-custom",
		Description: "changed",
		Category:    domain.CategoryMobile,
		Status:      domain.StatusPlanned,
	}, later))
	require.NoError(t, store.UpdateProject(ctx, p))

	got, err := store.GetProject(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "After", got.Title)
	assert.Equal(t, "after-custom", got.Slug)
	assert.Equal(t, domain.StatusPlanned, got.Status)
	assert.Equal(t, testNow, got.CreatedAt)
	assert.Equal(t, later, got.UpdatedAt)
}

func TestUpdateProject_DoesNotTouchSpotlight(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, store, "Holder", testNow)
	require.NoError(t, store.ClaimSpotlight(ctx, p.ID))

	p.IsSpotlight = false
	p.Description = "edited"
	require.NoError(t, store.UpdateProject(ctx, p))

	assert.Equal(t, []int{p.ID}, spotlightIDs(t, store))
}

func TestUpdateProject_DuplicateSlug(t *testing.T) {
	store := setupTestStore(t)
	createTestProject(t, store, "First", testNow)
	second := createTestProject(t, store, "Second", testNow)

	second.Slug = "first"
	err := store.UpdateProject(context.Background(), second)
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestUpdateProject_NotFound(t *testing.T) {
	store := setupTestStore(t)
	p, err := domain.NewProject(domain.ProjectInput{Title: "Ghost", Description: "d", Category: domain.CategoryWeb}, testNow)
	require.NoError(t, err)
	p.ID = 42

	err = store.UpdateProject(context.Background(), p)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, store, "Doomed", testNow)

	require.NoError(t, store.DeleteProject(ctx, p.ID))
	_, err := store.GetProject(ctx, p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.DeleteProject(ctx, p.ID), ErrNotFound)
}

func TestListProjects_NewestFirst(t *testing.T) {
	store := setupTestStore(t)
	old := createTestProject(t, store, "Old", testNow.Add(-48*time.Hour))
	newest := createTestProject(t, store, "Newest", testNow)
	mid := createTestProject(t, store, "Mid", testNow.Add(-time.Hour))

	projects, err := store.ListProjects(context.Background(), DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, projects, 3)
	assert.Equal(t, []int{newest.ID, mid.ID, old.ID}, []int{projects[0].ID, projects[1].ID, projects[2].ID})
}

func TestListProjects_WithPagination(t *testing.T) {
	store := setupTestStore(t)
	for i, title := range []string{"A", "B", "C", "D", "E"} {
		createTestProject(t, store, title, testNow.Add(time.Duration(i)*time.Minute))
	}

	page, err := store.ListProjects(context.Background(), ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "D", page[0].Title)
	assert.Equal(t, "C", page[1].Title)

	empty, err := store.ListProjects(context.Background(), ListOptions{Limit: 10, Offset: 50})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListProjects_AllRows(t *testing.T) {
	store := setupTestStore(t)
	for i, title := range []string{"A", "B", "C"} {
		createTestProject(t, store, title, testNow.Add(time.Duration(i)*time.Minute))
	}

	all, err := store.ListProjects(context.Background(), AllRows())
	require.NoError(t, err)
	assert.Len(t, all, 3)

	rest, err := store.ListProjects(context.Background(), ListOptions{Limit: NoLimit, Offset: 1})
	require.NoError(t, err)
	require.Len(t, rest, 2)
	assert.Equal(t, "B", rest[0].Title)
}

func TestListOptions_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   ListOptions
		want ListOptions
	}{
		{"zero limit", ListOptions{}, ListOptions{Limit: 100}},
		{"too large", ListOptions{Limit: 5000}, ListOptions{Limit: 1000}},
		{"negative offset", ListOptions{Limit: 10, Offset: -3}, ListOptions{Limit: 10}},
		{"unchanged", ListOptions{Limit: 10, Offset: 20}, ListOptions{Limit: 10, Offset: 20}},
		{"no limit", ListOptions{Limit: NoLimit, Offset: -2}, ListOptions{Limit: NoLimit}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

// =============================================================================
// Spotlight Tests
// =============================================================================

func TestClaimSpotlight_Single(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	p := createTestProject(t, store, "Star", testNow)

	require.NoError(t, store.ClaimSpotlight(ctx, p.ID))

	got, err := store.GetSpotlightProject(ctx)
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, got.IsSpotlight)
}

func TestClaimSpotlight_Takeover(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := createTestProject(t, store, "A", testNow)
	b := createTestProject(t, store, "B", testNow)
	c := createTestProject(t, store, "C", testNow)

	require.NoError(t, store.ClaimSpotlight(ctx, a.ID))
	require.NoError(t, store.ClaimSpotlight(ctx, b.ID))
	assert.Equal(t, []int{b.ID}, spotlightIDs(t, store))

	require.NoError(t, store.ClaimSpotlight(ctx, c.ID))
	assert.Equal(t, []int{c.ID}, spotlightIDs(t, store))

	// Reclaiming the current holder is a no-op.
	require.NoError(t, store.ClaimSpotlight(ctx, c.ID))
	assert.Equal(t, []int{c.ID}, spotlightIDs(t, store))
}

func TestClaimSpotlight_MissingTargetKeepsHolder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := createTestProject(t, store, "A", testNow)
	require.NoError(t, store.ClaimSpotlight(ctx, a.ID))

	err := store.ClaimSpotlight(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []int{a.ID}, spotlightIDs(t, store))
}

func TestClaimSpotlight_Concurrent(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var ids []int
	for _, title := range []string{"P1", "P2", "P3", "P4", "P5", "P6"} {
		ids = append(ids, createTestProject(t, store, title, testNow).ID)
	}

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			assert.NoError(t, store.ClaimSpotlight(ctx, id))
		}(id)
	}
	wg.Wait()

	assert.Len(t, spotlightIDs(t, store), 1)
}

func TestSpotlightIndex_RejectsSecondHolder(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := createTestProject(t, store, "A", testNow)
	b := createTestProject(t, store, "B", testNow)
	require.NoError(t, store.ClaimSpotlight(ctx, a.ID))

	_, err := store.db.ExecContext(ctx, `UPDATE projects SET is_spotlight = 1 WHERE id = ?`, b.ID)
	require.Error(t, err)
	_, ok := uniqueViolation(err)
	assert.True(t, ok)
}

func TestReleaseSpotlight(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := createTestProject(t, store, "A", testNow)
	require.NoError(t, store.ClaimSpotlight(ctx, a.ID))

	require.NoError(t, store.ReleaseSpotlight(ctx, a.ID))
	_, err := store.GetSpotlightProject(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, store.ReleaseSpotlight(ctx, 999), ErrNotFound)
}

func TestDeleteProject_ClearsSpotlight(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	a := createTestProject(t, store, "A", testNow)
	b := createTestProject(t, store, "B", testNow)
	require.NoError(t, store.ClaimSpotlight(ctx, a.ID))

	require.NoError(t, store.DeleteProject(ctx, a.ID))
	_, err := store.GetSpotlightProject(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.ClaimSpotlight(ctx, b.ID))
	assert.Equal(t, []int{b.ID}, spotlightIDs(t, store))
}

// =============================================================================
// Blog Tests
// =============================================================================

func TestCreateBlog_Success(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	b := createTestBlog(t, store, "First Post", true)

	got, err := store.GetBlog(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, got)
	require.NotNil(t, got.PublishedAt)
	assert.Equal(t, testNow, *got.PublishedAt)
	assert.Equal(t, 1, got.ReadTime)
	assert.Equal(t, 0, got.Views)
}

func TestCreateBlog_Draft(t *testing.T) {
	store := setupTestStore(t)
	b := createTestBlog(t, store, "Draft Post", false)

	got, err := store.GetBlogBySlug(context.Background(), "draft-post")
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Nil(t, got.PublishedAt)
	assert.False(t, got.Published)
}

func TestCreateBlog_DuplicateSlug(t *testing.T) {
	store := setupTestStore(t)
	createTestBlog(t, store, "Dup", true)

	b, err := domain.NewBlog(domain.BlogInput{Title: "Dup", Excerpt: "e"}, testNow)
	require.NoError(t, err)
	assert.ErrorIs(t, store.CreateBlog(context.Background(), b), ErrDuplicateSlug)
}

func TestUpdateBlog_KeepsViews(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	b := createTestBlog(t, store, "Counted", true)

	_, err := store.IncrementBlogViews(ctx, b.ID)
	require.NoError(t, err)

	b.Views = 0
	b.Excerpt = "new excerpt"
	require.NoError(t, store.UpdateBlog(ctx, b))

	got, err := store.GetBlog(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "new excerpt", got.Excerpt)
	assert.Equal(t, 1, got.Views)
}

func TestIncrementBlogViews(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	b := createTestBlog(t, store, "Popular", true)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := store.IncrementBlogViews(ctx, b.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	views, err := store.IncrementBlogViews(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 21, views)

	_, err = store.IncrementBlogViews(ctx, 999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteBlog(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	b := createTestBlog(t, store, "Gone", true)

	require.NoError(t, store.DeleteBlog(ctx, b.ID))
	_, err := store.GetBlog(ctx, b.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBlogs(t *testing.T) {
	store := setupTestStore(t)
	createTestBlog(t, store, "One", true)
	createTestBlog(t, store, "Two", false)

	blogs, err := store.ListBlogs(context.Background(), DefaultListOptions())
	require.NoError(t, err)
	assert.Len(t, blogs, 2)
}

// =============================================================================
// Experience and Research Tests
// =============================================================================

func TestExperienceCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	e, err := domain.NewExperience(domain.ExperienceInput{
		Company:   "Acme",
		Role:      "Engineer",
		StartDate: "Jan 2021",
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, store.CreateExperience(ctx, e))

	got, err := store.GetExperience(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, e, got)
	assert.Equal(t, "Present", got.EndDate)
	assert.Equal(t, "2021", got.Year)
	assert.Equal(t, "Jan 2021 - Present", got.Duration)

	require.NoError(t, e.Apply(domain.ExperienceInput{
		Company:   "Acme",
		Role:      "Lead",
		StartDate: "Jan 2021",
		EndDate:   "Mar 2024",
	}, testNow))
	require.NoError(t, store.UpdateExperience(ctx, e))

	got, err = store.GetExperience(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jan 2021 - Mar 2024", got.Duration)

	list, err := store.ListExperiences(ctx, DefaultListOptions())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, store.DeleteExperience(ctx, e.ID))
	_, err = store.GetExperience(ctx, e.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResearchCRUD(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	r, err := domain.NewResearch(domain.ResearchInput{
		Title:     "A Paper",
		Authors:   []string{"B. Author", "A. Author"},
		Journal:   "Journal of Things",
		Date:      "12 March 2023",
		Citations: 4,
		Tags:      []string{"ml"},
	}, testNow)
	require.NoError(t, err)
	require.NoError(t, store.CreateResearch(ctx, r))

	got, err := store.GetResearch(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r, got)
	assert.Equal(t, []string{"B. Author", "A. Author"}, got.Authors)
	assert.Equal(t, "2023", got.Year)

	r.Citations = -1
	assert.ErrorIs(t, store.UpdateResearch(ctx, r), ErrConstraint)

	r.Citations = 10
	require.NoError(t, store.UpdateResearch(ctx, r))

	list, err := store.ListResearch(ctx, DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 10, list[0].Citations)

	require.NoError(t, store.DeleteResearch(ctx, r.ID))
	assert.ErrorIs(t, store.DeleteResearch(ctx, r.ID), ErrNotFound)
}

// =============================================================================
// User and Session Tests
// =============================================================================

func createTestUser(t *testing.T, store Store) *domain.User {
	t.Helper()
	u := &domain.User{
		Email:        "Admin@Example.com ",
		PasswordHash: "$2a$12$hash",
		Name:         "Admin",
		Role:         "admin",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	}
	require.NoError(t, store.CreateUser(context.Background(), u))
	return u
}

func TestCreateUser_NormalizesEmail(t *testing.T) {
	store := setupTestStore(t)
	u := createTestUser(t, store)
	assert.Equal(t, "admin@example.com", u.Email)

	got, err := store.GetUserByEmail(context.Background(), "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "$2a$12$hash", got.PasswordHash)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := setupTestStore(t)
	createTestUser(t, store)

	err := store.CreateUser(context.Background(), &domain.User{
		Email:        "admin@example.com",
		PasswordHash: "x",
		CreatedAt:    testNow,
		UpdatedAt:    testNow,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUser(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, store)

	u.PasswordHash = "$2a$12$other"
	require.NoError(t, store.UpdateUser(ctx, u))

	got, err := store.GetUserByEmail(ctx, u.Email)
	require.NoError(t, err)
	assert.Equal(t, "$2a$12$other", got.PasswordHash)
}

func TestSessionLifecycle(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, store)

	s := domain.NewSession("token-1", *u, time.Hour, testNow)
	require.NoError(t, store.CreateSession(ctx, &s))

	got, err := store.GetSession(ctx, "token-1")
	require.NoError(t, err)
	assert.Equal(t, &s, got)

	require.NoError(t, store.DeleteSession(ctx, "token-1"))
	_, err = store.GetSession(ctx, "token-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateSession_UnknownUser(t *testing.T) {
	store := setupTestStore(t)
	s := domain.NewSession("orphan", domain.User{ID: 404}, time.Hour, testNow)

	err := store.CreateSession(context.Background(), &s)
	assert.ErrorIs(t, err, ErrConstraint)
}

func TestDeleteExpiredSessions(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	u := createTestUser(t, store)

	expired := domain.NewSession("old", *u, time.Minute, testNow.Add(-time.Hour))
	live := domain.NewSession("new", *u, time.Hour, testNow)
	require.NoError(t, store.CreateSession(ctx, &expired))
	require.NoError(t, store.CreateSession(ctx, &live))

	n, err := store.DeleteExpiredSessions(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = store.GetSession(ctx, "new")
	assert.NoError(t, err)
}

// =============================================================================
// Transaction Tests
// =============================================================================

func TestWithTx_CommitSuccess(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()

	var createdID int
	err := store.WithTx(ctx, func(txStore Store) error {
		p, err := domain.NewProject(domain.ProjectInput{Title: "Tx", Description: "d", Category: domain.CategoryWeb}, testNow)
		if err != nil {
			return err
		}
		if err := txStore.CreateProject(ctx, p); err != nil {
			return err
		}
		createdID = p.ID
		return txStore.ClaimSpotlight(ctx, p.ID)
	})
	require.NoError(t, err)

	got, err := store.GetProject(ctx, createdID)
	require.NoError(t, err)
	assert.True(t, got.IsSpotlight)
}

func TestWithTx_RollbackOnError(t *testing.T) {
	store := setupTestStore(t)
	ctx := context.Background()
	holder := createTestProject(t, store, "Holder", testNow)
	require.NoError(t, store.ClaimSpotlight(ctx, holder.ID))

	var createdID int
	err := store.WithTx(ctx, func(txStore Store) error {
		p, err := domain.NewProject(domain.ProjectInput{Title: "Rollback", Description: "d", Category: domain.CategoryWeb}, testNow)
		if err != nil {
			return err
		}
		if err := txStore.CreateProject(ctx, p); err != nil {
			return err
		}
		createdID = p.ID
		if err := txStore.ClaimSpotlight(ctx, p.ID); err != nil {
			return err
		}
		return assert.AnError
	})
	require.ErrorIs(t, err, assert.AnError)

	_, err = store.GetProject(ctx, createdID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, []int{holder.ID}, spotlightIDs(t, store))
}

func TestWithTx_ContextCancellation(t *testing.T) {
	store := setupTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())

	err := store.WithTx(ctx, func(txStore Store) error {
		cancel()
		p, err := domain.NewProject(domain.ProjectInput{Title: "Cancelled", Description: "d", Category: domain.CategoryWeb}, testNow)
		if err != nil {
			return err
		}
		return txStore.CreateProject(ctx, p)
	})
	require.Error(t, err)
}

func TestPing(t *testing.T) {
	store := setupTestStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestStoreError_Format(t *testing.T) {
	err := NewStoreError("GetProject", "project", "7", "project not found", ErrNotFound)
	assert.Equal(t, "GetProject project 7: project not found", err.Error())
	assert.ErrorIs(t, err, ErrNotFound)

	err = NewStoreError("ListProjects", "project", "", "boom", nil)
	assert.Equal(t, "ListProjects project: boom", err.Error())

	err = NewStoreError("WithTx", "", "", "failed", ErrTxFailed)
	assert.Equal(t, "WithTx: failed", err.Error())
}
