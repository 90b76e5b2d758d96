package queue

import (
	"github.com/maheshrc27/postbridge/internal/repository"
	"github.com/maheshrc27/postbridge/internal/service"
)

type Queue struct {
	pr        repository.PostRepository
	ph        repository.PostingHistoryRepository
	publisher service.PublishService
}

func NewQueue(
	pr repository.PostRepository,
	ph repository.PostingHistoryRepository,
	publisher service.PublishService) *Queue {
	return &Queue{
		pr:        pr,
		ph:        ph,
		publisher: publisher,
	}
}

const TaskTypePublishPost = "publish:post"

type PublishPostPayload struct {
	PostID int64 `json:"post_id"`
}
