package service

import (
	"musicshare-backend/internal/model"
	"musicshare-backend/internal/repository/interfaces"
	"musicshare-backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository 是 UserRepository 接口的模拟实现
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*model.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(username string) (*model.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

var _ interfaces.UserRepository = (*MockUserRepository)(nil)

// MockPostRepository 是 PostRepository 接口的模拟实现
type MockPostRepository struct {
	mock.Mock
}

func (m *MockPostRepository) Create(post *model.MusicPost) error {
	args := m.Called(post)
	return args.Error(0)
}

func (m *MockPostRepository) FindByID(id int) (*model.MusicPost, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MusicPost), args.Error(1)
}

func (m *MockPostRepository) Exists(id int) (bool, error) {
	args := m.Called(id)
	return args.Bool(0), args.Error(1)
}

func (m *MockPostRepository) ListFeed(limit, offset int) ([]*model.MusicPost, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MusicPost), args.Error(1)
}

func (m *MockPostRepository) SearchByCaption(query string, limit, offset int) ([]*model.MusicPost, error) {
	args := m.Called(query, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MusicPost), args.Error(1)
}

func (m *MockPostRepository) ListByAuthor(userID int) ([]*model.MusicPost, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.MusicPost), args.Error(1)
}

var _ interfaces.PostRepository = (*MockPostRepository)(nil)

// MockInteractionRepository 是 InteractionRepository 接口的模拟实现
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) CreateLike(like *model.Like) error {
	args := m.Called(like)
	return args.Error(0)
}

func (m *MockInteractionRepository) DeleteLikes(postID, userID int) error {
	args := m.Called(postID, userID)
	return args.Error(0)
}

func (m *MockInteractionRepository) FindLikedPostIDs(userID int, postIDs []int) ([]int, error) {
	args := m.Called(userID, postIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockInteractionRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockInteractionRepository) ListComments(postID, limit, offset int) ([]*model.Comment, error) {
	args := m.Called(postID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Comment), args.Error(1)
}

var _ interfaces.InteractionRepository = (*MockInteractionRepository)(nil)

// MockFollowRepository 是 FollowRepository 接口的模拟实现
type MockFollowRepository struct {
	mock.Mock
}

func (m *MockFollowRepository) Create(follow *model.Follow) error {
	args := m.Called(follow)
	return args.Error(0)
}

func (m *MockFollowRepository) Delete(followerID, followedID int) error {
	args := m.Called(followerID, followedID)
	return args.Error(0)
}

func (m *MockFollowRepository) ListFollowers(userID, limit, offset int) ([]*model.User, error) {
	args := m.Called(userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.User), args.Error(1)
}

var _ interfaces.FollowRepository = (*MockFollowRepository)(nil)

// MockObjectStorage 是 ObjectStorage 接口的模拟实现
type MockObjectStorage struct {
	mock.Mock
}

func (m *MockObjectStorage) UploadBytes(data []byte, contentType, key string) (*storage.UploadResult, error) {
	args := m.Called(data, contentType, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.UploadResult), args.Error(1)
}

func (m *MockObjectStorage) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

var _ storage.ObjectStorage = (*MockObjectStorage)(nil)
