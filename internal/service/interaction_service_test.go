package service

import (
	"testing"
	"time"

	"musicshare-backend/internal/errors"
	"musicshare-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newInteractionServiceWithMocks() (*InteractionService, *MockInteractionRepository, *MockPostRepository, *MockUserRepository) {
	interactionRepo := new(MockInteractionRepository)
	postRepo := new(MockPostRepository)
	userRepo := new(MockUserRepository)
	return NewInteractionService(interactionRepo, postRepo, userRepo), interactionRepo, postRepo, userRepo
}

func TestLikePost_PostNotFound(t *testing.T) {
	svc, interactionRepo, postRepo, _ := newInteractionServiceWithMocks()

	postRepo.On("Exists", 99).Return(false, nil)

	err := svc.LikePost(3, 99)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
	assert.Equal(t, "Post not found.", appErr.Message)
	interactionRepo.AssertNotCalled(t, "CreateLike", mock.Anything)
}

// 重复点赞不做去重，每次调用都会写入一条新记录
func TestLikePost_DuplicateLikesAreRecorded(t *testing.T) {
	svc, interactionRepo, postRepo, userRepo := newInteractionServiceWithMocks()

	postRepo.On("Exists", 1).Return(true, nil)
	userRepo.On("FindByID", 3).Return(&model.User{ID: 3, Username: "alice"}, nil)
	interactionRepo.On("CreateLike", mock.AnythingOfType("*model.Like")).Return(nil)

	assert.NoError(t, svc.LikePost(3, 1))
	assert.NoError(t, svc.LikePost(3, 1))

	interactionRepo.AssertNumberOfCalls(t, "CreateLike", 2)
}

func TestUnlikePost_Idempotent(t *testing.T) {
	svc, interactionRepo, _, _ := newInteractionServiceWithMocks()

	// 没有点赞记录时 DELETE 影响 0 行，同样视为成功
	interactionRepo.On("DeleteLikes", 1, 3).Return(nil)

	assert.NoError(t, svc.UnlikePost(3, 1))
	assert.NoError(t, svc.UnlikePost(3, 1))
	interactionRepo.AssertNumberOfCalls(t, "DeleteLikes", 2)
}

func TestCreateComment_PostNotFound(t *testing.T) {
	svc, interactionRepo, postRepo, _ := newInteractionServiceWithMocks()

	postRepo.On("Exists", 99).Return(false, nil)

	_, err := svc.CreateComment(3, 99, "nice track")

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
	interactionRepo.AssertNotCalled(t, "CreateComment", mock.Anything)
}

func TestCreateComment_ReturnsAuthorSnapshot(t *testing.T) {
	svc, interactionRepo, postRepo, userRepo := newInteractionServiceWithMocks()

	avatar := "https://cdn.example.com/avatars/alice.png"
	postRepo.On("Exists", 1).Return(true, nil)
	userRepo.On("FindByID", 3).Return(&model.User{ID: 3, Username: "alice", AvatarURL: &avatar}, nil)
	interactionRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Run(func(args mock.Arguments) {
		comment := args.Get(0).(*model.Comment)
		comment.ID = 42
		comment.CreatedAt = time.Now()
	}).Return(nil)

	resp, err := svc.CreateComment(3, 1, "nice track")

	assert.NoError(t, err)
	assert.Equal(t, 42, resp.ID)
	assert.Equal(t, "nice track", resp.Text)
	assert.Equal(t, 3, resp.UserID)
	assert.Equal(t, 1, resp.PostID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, avatar, *resp.AvatarURL)
}

func TestGetComments_PostNotFound(t *testing.T) {
	svc, _, postRepo, _ := newInteractionServiceWithMocks()

	postRepo.On("Exists", 99).Return(false, nil)

	_, err := svc.GetComments(99, 10, 0)

	var appErr *errors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, errors.ErrPostNotFound, appErr.Code)
}

func TestGetComments_FiltersCommentsWithoutAuthor(t *testing.T) {
	svc, interactionRepo, postRepo, _ := newInteractionServiceWithMocks()

	postRepo.On("Exists", 1).Return(true, nil)
	interactionRepo.On("ListComments", 1, 10, 0).Return([]*model.Comment{
		{ID: 1, Content: "great", UserID: 3, PostID: 1, Author: &model.User{ID: 3, Username: "alice"}},
		{ID: 2, Content: "orphaned", UserID: 4, PostID: 1, Author: nil},
	}, nil)

	comments, err := svc.GetComments(1, 10, 0)

	assert.NoError(t, err)
	assert.Len(t, comments, 1)
	assert.Equal(t, "great", comments[0].Text)
	assert.Equal(t, "alice", comments[0].Username)
}
