package usecase

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/tinylink-dashboard/internal/entity"

	usecaseMock "github.com/vadimbarashkov/tinylink-dashboard/mocks/usecase"
)

func hasDeadline(ctx context.Context) bool {
	_, ok := ctx.Deadline()
	return ok
}

type ListViewTestSuite struct {
	suite.Suite
	errUnknown error
	links      []entity.Link
	apiMock    *usecaseMock.MockLinkAPI
	lv         *ListView
}

func (suite *ListViewTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.links = []entity.Link{
		{Code: "abc123", Target: "https://example.com", Clicks: 2},
		{Code: "xyz789", Target: "https://example.org"},
	}
}

func (suite *ListViewTestSuite) SetupSubTest() {
	suite.apiMock = usecaseMock.NewMockLinkAPI(suite.T())
	suite.lv = NewListView(suite.apiMock, WithShortURLBase("https://sho.rt/r/"))
}

func (suite *ListViewTestSuite) load() {
	suite.apiMock.On("ListLinks", mock.Anything).Once().Return(suite.links, nil)
	suite.apiMock.On("GetHealth", mock.Anything).Once().Return(entity.Health{Status: "ok", Uptime: 10})

	suite.Require().NoError(suite.lv.Load(context.Background()))
}

func (suite *ListViewTestSuite) TestNewListView() {
	suite.Run("initial state", func() {
		state := suite.lv.State()

		suite.NotNil(state.Links)
		suite.Empty(state.Links)
		suite.Equal(HealthStatusLoading, state.Health.Status)
		suite.Empty(state.Error)
	})
}

func (suite *ListViewTestSuite) TestLoad() {
	suite.Run("list error keeps health", func() {
		suite.apiMock.On("ListLinks", mock.Anything).Once().Return(nil, suite.errUnknown)
		suite.apiMock.On("GetHealth", mock.Anything).Once().Return(entity.Health{Status: "ok", Uptime: 5})

		err := suite.lv.Load(context.Background())

		suite.Error(err)
		suite.ErrorIs(err, suite.errUnknown)

		state := suite.lv.State()
		suite.Equal("Failed to load links", state.Error)
		suite.Empty(state.Links)
		suite.False(state.Loading)
		suite.Equal(entity.Health{Status: "ok", Uptime: 5}, state.Health)
	})

	suite.Run("health down keeps links", func() {
		suite.apiMock.On("ListLinks", mock.Anything).Once().Return(suite.links, nil)
		suite.apiMock.On("GetHealth", mock.Anything).Once().Return(entity.HealthDown)

		suite.NoError(suite.lv.Load(context.Background()))

		state := suite.lv.State()
		suite.Equal(suite.links, state.Links)
		suite.Equal(entity.HealthDown, state.Health)
		suite.Empty(state.Error)
	})

	suite.Run("success", func() {
		suite.load()

		state := suite.lv.State()
		suite.Equal(suite.links, state.Links)
		suite.False(state.Loading)
		suite.True(state.Health.OK())
	})

	suite.Run("closed view", func() {
		suite.apiMock.On("GetHealth", mock.Anything).Once().Return(entity.HealthDown)

		suite.lv.Close()
		err := suite.lv.Load(context.Background())

		suite.ErrorIs(err, ErrViewClosed)
		suite.Equal(HealthStatusLoading, suite.lv.State().Health.Status)
		suite.apiMock.AssertNotCalled(suite.T(), "ListLinks", mock.Anything)
	})
}

func (suite *ListViewTestSuite) TestLoadStaleResponse() {
	suite.Run("latest fetch wins", func() {
		started := make(chan struct{})
		release := make(chan struct{})
		stale := []entity.Link{{Code: "old001", Target: "https://old.example.com"}}

		suite.apiMock.
			On("ListLinks", mock.Anything).
			Once().
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(stale, nil)
		suite.apiMock.
			On("ListLinks", mock.Anything).
			Once().
			Return(suite.links, nil)

		errCh := make(chan error, 1)
		go func() {
			errCh <- suite.lv.refresh(context.Background())
		}()

		<-started
		suite.NoError(suite.lv.refresh(context.Background()))
		close(release)

		suite.ErrorIs(<-errCh, ErrStaleResponse)
		suite.Equal(suite.links, suite.lv.State().Links)
	})
}

func (suite *ListViewTestSuite) TestCreate() {
	suite.Run("target required", func() {
		link, err := suite.lv.Create(context.Background(), "", "")

		var verr *ValidationError
		suite.Require().ErrorAs(err, &verr)
		suite.Equal("target", verr.Field)
		suite.Nil(link)
		suite.Equal("Target URL required", suite.lv.State().Error)
		suite.apiMock.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
	})

	suite.Run("invalid url", func() {
		_, err := suite.lv.Create(context.Background(), "not a url", "")

		var verr *ValidationError
		suite.Require().ErrorAs(err, &verr)
		suite.Equal("Invalid URL", suite.lv.State().Error)
		suite.Equal("not a url", suite.lv.State().Target)
		suite.apiMock.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
	})

	suite.Run("code too short", func() {
		_, err := suite.lv.Create(context.Background(), "https://example.com", "ab")

		var verr *ValidationError
		suite.Require().ErrorAs(err, &verr)
		suite.Equal("code", verr.Field)
		suite.Equal("Code must be 6-8 alphanumeric characters", suite.lv.State().Error)
		suite.apiMock.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
	})

	suite.Run("code with symbols", func() {
		_, err := suite.lv.Create(context.Background(), "https://example.com", "abc-123")

		var verr *ValidationError
		suite.ErrorAs(err, &verr)
		suite.apiMock.AssertNotCalled(suite.T(), "CreateLink", mock.Anything, mock.Anything)
	})

	suite.Run("code exists", func() {
		suite.load()
		suite.apiMock.
			On("CreateLink", mock.Anything, entity.CreateLinkParams{Target: "https://example.com", Code: "abc123"}).
			Once().
			Return(nil, &entity.HTTPError{StatusCode: http.StatusConflict, Body: map[string]any{"error": "taken"}})

		link, err := suite.lv.Create(context.Background(), "https://example.com", "abc123")

		suite.ErrorIs(err, entity.ErrCodeExists)
		suite.Nil(link)

		state := suite.lv.State()
		suite.Equal("Code already exists", state.Error)
		suite.Equal(suite.links, state.Links)
		suite.Equal("abc123", state.Code)
		suite.False(state.FormLoading)
	})

	suite.Run("server message", func() {
		suite.apiMock.
			On("CreateLink", mock.Anything, mock.Anything).
			Once().
			Return(nil, &entity.HTTPError{StatusCode: http.StatusBadRequest, Body: map[string]any{"error": "Target not allowed"}})

		_, err := suite.lv.Create(context.Background(), "https://example.com", "")

		suite.Error(err)
		suite.Equal("Target not allowed", suite.lv.State().Error)
	})

	suite.Run("network error", func() {
		suite.apiMock.
			On("CreateLink", mock.Anything, mock.Anything).
			Once().
			Return(nil, &entity.NetworkError{Op: "POST /", Err: suite.errUnknown})

		_, err := suite.lv.Create(context.Background(), "https://example.com", "")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Equal("Failed to create link", suite.lv.State().Error)
	})

	suite.Run("success", func() {
		suite.load()

		created := &entity.Link{Code: "new123", Target: "https://example.net", CreatedAt: time.Now()}
		suite.apiMock.
			On("CreateLink", mock.Anything, entity.CreateLinkParams{Target: "https://example.net", Code: "new123"}).
			Once().
			Return(created, nil)

		link, err := suite.lv.Create(context.Background(), " https://example.net ", "new123")

		suite.NoError(err)
		suite.Equal(created, link)

		state := suite.lv.State()
		suite.Require().Len(state.Links, 3)
		suite.Equal("new123", state.Links[0].Code)
		suite.Equal(created, state.Created)
		suite.Empty(state.Target)
		suite.Empty(state.Code)
		suite.Empty(state.Error)
		suite.NotEmpty(state.Notice)
		suite.apiMock.AssertNumberOfCalls(suite.T(), "ListLinks", 1)
	})
}

func (suite *ListViewTestSuite) TestCreateFailureKeepsNewerList() {
	suite.Run("refresh during create wins", func() {
		suite.load()

		started := make(chan struct{})
		release := make(chan struct{})
		newer := []entity.Link{{Code: "new222", Target: "https://new.example.com"}, suite.links[0], suite.links[1]}

		suite.apiMock.
			On("CreateLink", mock.Anything, mock.Anything).
			Once().
			Run(func(mock.Arguments) {
				close(started)
				<-release
			}).
			Return(nil, suite.errUnknown)
		suite.apiMock.On("ListLinks", mock.Anything).Once().Return(newer, nil)

		errCh := make(chan error, 1)
		go func() {
			_, err := suite.lv.Create(context.Background(), "https://example.com", "")
			errCh <- err
		}()

		<-started
		suite.NoError(suite.lv.refresh(context.Background()))
		close(release)

		suite.ErrorIs(<-errCh, suite.errUnknown)

		state := suite.lv.State()
		suite.Equal(newer, state.Links)
		suite.Equal("Failed to create link", state.Error)
	})
}

func (suite *ListViewTestSuite) TestDelete() {
	suite.Run("failure leaves state", func() {
		suite.load()
		suite.apiMock.
			On("DeleteLink", mock.Anything, "abc123").
			Once().
			Return(&entity.HTTPError{StatusCode: http.StatusNotFound, Body: map[string]any{}})

		err := suite.lv.Delete(context.Background(), "abc123")

		suite.ErrorIs(err, entity.ErrLinkNotFound)
		suite.Equal("Delete failed", suite.lv.State().Error)
		suite.Equal(suite.links, suite.lv.State().Links)
	})

	suite.Run("success", func() {
		suite.load()
		suite.apiMock.On("DeleteLink", mock.Anything, "abc123").Once().Return(nil)

		suite.NoError(suite.lv.Delete(context.Background(), "abc123"))

		state := suite.lv.State()
		suite.Require().Len(state.Links, 1)
		suite.Equal("xyz789", state.Links[0].Code)
		suite.Len(suite.links, 2)
	})
}

func (suite *ListViewTestSuite) TestClick() {
	suite.Run("failure does not open", func() {
		suite.load()
		suite.apiMock.
			On("ClickLink", mock.MatchedBy(hasDeadline), "abc123").
			Once().
			Return(nil, suite.errUnknown)

		target, err := suite.lv.Click(context.Background(), "abc123")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Empty(target)
		suite.Equal(suite.links, suite.lv.State().Links)
		suite.apiMock.AssertNumberOfCalls(suite.T(), "ListLinks", 1)
	})

	suite.Run("success re-fetches", func() {
		suite.load()

		now := time.Now()
		clicked := entity.Link{Code: "abc123", Target: "https://example.com", Clicks: 3, LastClicked: &now}
		refreshed := []entity.Link{clicked, suite.links[1]}

		suite.apiMock.
			On("ClickLink", mock.MatchedBy(hasDeadline), "abc123").
			Once().
			Return(&clicked, nil)
		suite.apiMock.On("ListLinks", mock.Anything).Once().Return(refreshed, nil)

		target, err := suite.lv.Click(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com", target)
		suite.Equal(refreshed, suite.lv.State().Links)
		suite.apiMock.AssertNumberOfCalls(suite.T(), "ListLinks", 2)
	})

	suite.Run("refresh failure keeps patched link", func() {
		suite.load()

		clicked := entity.Link{Code: "abc123", Target: "https://example.com", Clicks: 3}
		suite.apiMock.On("ClickLink", mock.Anything, "abc123").Once().Return(&clicked, nil)
		suite.apiMock.On("ListLinks", mock.Anything).Once().Return(nil, suite.errUnknown)

		target, err := suite.lv.Click(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal("https://example.com", target)
		suite.Equal(int64(3), suite.lv.State().Links[0].Clicks)
	})

	suite.Run("timeout does not open", func() {
		lv := NewListView(suite.apiMock, WithClickTimeout(10*time.Millisecond))

		suite.apiMock.
			On("ClickLink", mock.Anything, "abc123").
			Once().
			Return(func(ctx context.Context, _ string) (*entity.Link, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})

		target, err := lv.Click(context.Background(), "abc123")

		suite.ErrorIs(err, context.DeadlineExceeded)
		suite.Empty(target)
	})
}

func (suite *ListViewTestSuite) TestCheckHealth() {
	suite.Run("updates badge only", func() {
		suite.apiMock.On("GetHealth", mock.Anything).Once().Return(entity.Health{Status: "ok", Uptime: 3})

		suite.lv.CheckHealth(context.Background())

		state := suite.lv.State()
		suite.Equal(entity.Health{Status: "ok", Uptime: 3}, state.Health)
		suite.apiMock.AssertNotCalled(suite.T(), "ListLinks", mock.Anything)
	})
}

func (suite *ListViewTestSuite) TestShortURL() {
	suite.Run("joins base and code", func() {
		suite.Equal("https://sho.rt/r/abc123", suite.lv.ShortURL("abc123"))
	})
}

func TestListView(t *testing.T) {
	suite.Run(t, new(ListViewTestSuite))
}

func TestValidateCreateLink(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, ValidateCreateLink(" https://example.com ", " abc123 "))
		assert.NoError(t, ValidateCreateLink("https://example.com", ""))
	})

	t.Run("invalid code", func(t *testing.T) {
		err := ValidateCreateLink("https://example.com", "ab")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "code", verr.Field)
		assert.Equal(t, "Code must be 6-8 alphanumeric characters", verr.Message)
	})

	t.Run("blank target", func(t *testing.T) {
		err := ValidateCreateLink("   ", "")

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Target URL required", verr.Message)
	})
}
