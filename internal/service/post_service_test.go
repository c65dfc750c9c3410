package service

import (
	"encoding/base64"
	stderrors "errors"
	"os"
	"testing"
	"time"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/model"
	"musicshare-backend/internal/storage"
	"musicshare-backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	util.InitLogger("error")
	os.Exit(m.Run())
}

func newPostServiceWithMocks() (*PostService, *MockPostRepository, *MockUserRepository, *MockObjectStorage) {
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	store := new(MockObjectStorage)
	return NewPostService(postRepo, userRepo, store), postRepo, userRepo, store
}

func validCreatePostInput() CreatePostInput {
	return CreatePostInput{
		ImageBase64:   base64.StdEncoding.EncodeToString([]byte("fake-image")),
		ImageFileType: "image/png",
		MusicBase64:   base64.StdEncoding.EncodeToString([]byte("fake-audio")),
		MusicFileType: "audio/mpeg",
		Caption:       "first track",
	}
}

func TestCreatePost_Success(t *testing.T) {
	svc, postRepo, userRepo, store := newPostServiceWithMocks()

	store.On("UploadBytes", []byte("fake-image"), "image/png", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "https://cdn.example.com/covers/a.png", ObjectKey: "covers/a.png"}, nil)
	store.On("UploadBytes", []byte("fake-audio"), "audio/mpeg", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "https://cdn.example.com/audio/a.mp3", ObjectKey: "audio/a.mp3"}, nil)

	postRepo.On("Create", mock.AnythingOfType("*model.MusicPost")).Run(func(args mock.Arguments) {
		post := args.Get(0).(*model.MusicPost)
		post.ID = 7
		post.CreatedAt = time.Now()
	}).Return(nil)

	avatar := "https://cdn.example.com/avatars/alice.png"
	userRepo.On("FindByID", 3).Return(&model.User{ID: 3, Username: "alice", AvatarURL: &avatar}, nil)

	resp, err := svc.CreatePost(3, validCreatePostInput())

	assert.NoError(t, err)
	assert.Equal(t, 7, resp.ID)
	assert.Equal(t, "https://cdn.example.com/covers/a.png", resp.CoverImageURL)
	assert.Equal(t, "https://cdn.example.com/audio/a.mp3", resp.MusicURL)
	assert.Equal(t, "first track", *resp.Caption)
	assert.Equal(t, "alice", resp.Username)
	store.AssertNotCalled(t, "Delete", mock.Anything)
	postRepo.AssertExpectations(t)
}

func TestCreatePost_DataURIPrefixStripped(t *testing.T) {
	svc, postRepo, userRepo, store := newPostServiceWithMocks()

	input := validCreatePostInput()
	input.ImageBase64 = "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("fake-image"))

	// 带 data URI 前缀时解码出的字节应与裸 base64 一致
	store.On("UploadBytes", []byte("fake-image"), "image/png", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "u1", ObjectKey: "k1"}, nil)
	store.On("UploadBytes", []byte("fake-audio"), "audio/mpeg", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "u2", ObjectKey: "k2"}, nil)
	postRepo.On("Create", mock.AnythingOfType("*model.MusicPost")).Return(nil)
	userRepo.On("FindByID", 3).Return(&model.User{ID: 3, Username: "alice"}, nil)

	_, err := svc.CreatePost(3, input)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestCreatePost_InvalidImageType(t *testing.T) {
	svc, _, _, store := newPostServiceWithMocks()

	input := validCreatePostInput()
	input.ImageFileType = "text/plain"

	_, err := svc.CreatePost(3, input)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	assert.Equal(t, "imageBase64 and a valid imageFileType are required.", appErr.Message)
	store.AssertNotCalled(t, "UploadBytes", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreatePost_InvalidMusicType(t *testing.T) {
	svc, _, _, _ := newPostServiceWithMocks()

	input := validCreatePostInput()
	input.MusicFileType = "video/mp4"

	_, err := svc.CreatePost(3, input)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "musicFileType must be a valid audio type.", appErr.Message)
}

func TestCreatePost_MissingMusic(t *testing.T) {
	svc, _, _, _ := newPostServiceWithMocks()

	input := validCreatePostInput()
	input.MusicBase64 = ""

	_, err := svc.CreatePost(3, input)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "musicBase64 is required when musicFileType is provided.", appErr.Message)
}

func TestCreatePost_MusicUploadFailureCleansUpCover(t *testing.T) {
	svc, postRepo, _, store := newPostServiceWithMocks()

	store.On("UploadBytes", []byte("fake-image"), "image/png", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "u1", ObjectKey: "covers/a.png"}, nil)
	store.On("UploadBytes", []byte("fake-audio"), "audio/mpeg", mock.AnythingOfType("string")).
		Return(nil, stderrors.New("bucket unavailable"))
	store.On("Delete", "covers/a.png").Return(nil)

	_, err := svc.CreatePost(3, validCreatePostInput())

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrStorage, appErr.Code)
	store.AssertCalled(t, "Delete", "covers/a.png")
	postRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreatePost_InsertFailureCleansUpBothObjects(t *testing.T) {
	svc, postRepo, _, store := newPostServiceWithMocks()

	store.On("UploadBytes", []byte("fake-image"), "image/png", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "u1", ObjectKey: "covers/a.png"}, nil)
	store.On("UploadBytes", []byte("fake-audio"), "audio/mpeg", mock.AnythingOfType("string")).
		Return(&storage.UploadResult{ObjectURL: "u2", ObjectKey: "audio/a.mp3"}, nil)
	store.On("Delete", "covers/a.png").Return(nil)
	store.On("Delete", "audio/a.mp3").Return(nil)
	postRepo.On("Create", mock.AnythingOfType("*model.MusicPost")).Return(stderrors.New("insert failed"))

	_, err := svc.CreatePost(3, validCreatePostInput())

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrDatabase, appErr.Code)
	store.AssertCalled(t, "Delete", "covers/a.png")
	store.AssertCalled(t, "Delete", "audio/a.mp3")
}

func TestGetFeedPosts_MissingAuthorFallsBackToUnknown(t *testing.T) {
	svc, postRepo, _, _ := newPostServiceWithMocks()

	caption := "hello"
	postRepo.On("ListFeed", 10, 0).Return([]*model.MusicPost{
		{ID: 1, CoverImageURL: "c1", AudioURL: "a1", Caption: &caption, UserID: 3,
			Author: &model.User{ID: 3, Username: "alice"}},
		{ID: 2, CoverImageURL: "c2", AudioURL: "a2", UserID: 4, Author: nil},
	}, nil)

	posts, err := svc.GetFeedPosts(10, 0)

	assert.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, "alice", posts[0].Username)
	assert.Equal(t, "unknown", posts[1].Username)
	assert.Nil(t, posts[1].Caption)
}

func TestSearchPosts_EmptyQuery(t *testing.T) {
	svc, postRepo, _, _ := newPostServiceWithMocks()

	_, err := svc.SearchPosts("   ", 10, 0)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrValidation, appErr.Code)
	assert.Equal(t, "Search query cannot be empty", appErr.Message)
	postRepo.AssertNotCalled(t, "SearchByCaption", mock.Anything, mock.Anything, mock.Anything)
}

func TestSearchPosts_FiltersOrphanRows(t *testing.T) {
	svc, postRepo, _, _ := newPostServiceWithMocks()

	caption := "lofi beats"
	postRepo.On("SearchByCaption", "lofi", 10, 0).Return([]*model.MusicPost{
		{ID: 1, Caption: &caption, UserID: 3, Author: &model.User{ID: 3, Username: "alice"}},
		{ID: 2, Caption: nil, UserID: 3, Author: &model.User{ID: 3, Username: "alice"}},
		{ID: 3, Caption: &caption, UserID: 4, Author: nil},
	}, nil)

	posts, err := svc.SearchPosts("lofi", 10, 0)

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].ID)
}

func TestGetPostByID_NotFound(t *testing.T) {
	svc, postRepo, _, _ := newPostServiceWithMocks()

	postRepo.On("FindByID", 99).Return(nil, nil)

	_, err := svc.GetPostByID(99)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
	assert.Equal(t, "Post not found", appErr.Message)
}
